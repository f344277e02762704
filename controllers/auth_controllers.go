package controllers

import (
	"errors"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/yeremiapane/cafe-booking/utils"
)

// AuthController handles admin login. Credentials come from the
// environment: ADMIN_USERNAME plus either ADMIN_PASSWORD_HASH (bcrypt)
// or, for development, a plain ADMIN_PASSWORD hashed at startup.
type AuthController struct {
	username     string
	passwordHash []byte
}

func NewAuthController() *AuthController {
	username := os.Getenv("ADMIN_USERNAME")
	if username == "" {
		username = "admin"
	}

	hash := []byte(os.Getenv("ADMIN_PASSWORD_HASH"))
	if len(hash) == 0 {
		plain := os.Getenv("ADMIN_PASSWORD")
		if plain == "" {
			plain = "admin123"
			utils.InfoLogger.Println("Warning: ADMIN_PASSWORD not set, using development default")
		}
		hashed, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
		if err == nil {
			hash = hashed
		}
	}

	return &AuthController{username: username, passwordHash: hash}
}

// Login -> checks credentials and returns a 24h admin JWT.
func (ac *AuthController) Login(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("username and password are required"))
		return
	}

	if input.Username != ac.username ||
		bcrypt.CompareHashAndPassword(ac.passwordHash, []byte(input.Password)) != nil {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("invalid credentials"))
		return
	}

	token, err := utils.GenerateToken(ac.username, "admin")
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Admin %s logged in", ac.username)
	utils.RespondJSON(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"user": gin.H{
			"username": ac.username,
			"role":     "admin",
		},
	})
}

// Verify -> confirms the presented token is still valid.
func (ac *AuthController) Verify(c *gin.Context) {
	username, _ := c.Get("username")
	role, _ := c.Get("role")

	utils.RespondJSON(c, http.StatusOK, "Token is valid", gin.H{
		"username": username,
		"role":     role,
	})
}

// Logout -> stateless tokens, nothing to revoke server-side.
func (ac *AuthController) Logout(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Logout successful", nil)
}
