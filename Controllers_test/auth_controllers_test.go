package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/yeremiapane/cafe-booking/controllers"
	"github.com/yeremiapane/cafe-booking/middlewares"
	"github.com/yeremiapane/cafe-booking/utils"
)

func setupAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	utils.InitLogger()
	authCtrl := controllers.NewAuthController()

	router := gin.New()
	router.POST("/auth", authCtrl.Login)
	router.GET("/auth/verify", middlewares.AuthMiddleware(), authCtrl.Verify)
	return router
}

func postLogin(t *testing.T, router *gin.Engine, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(map[string]string{
		"username": username,
		"password": password,
	})
	assert.NoError(t, err)

	req, err := http.NewRequest("POST", "/auth", bytes.NewBuffer(payload))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestLoginSuccess(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "owner")
	t.Setenv("ADMIN_PASSWORD", "sup3rsecret")
	router := setupAuthRouter()

	w := postLogin(t, router, "owner", "sup3rsecret")
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.NotEmpty(t, data["token"])
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "owner", user["username"])
	assert.Equal(t, "admin", user["role"])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "owner")
	t.Setenv("ADMIN_PASSWORD", "sup3rsecret")
	router := setupAuthRouter()

	w := postLogin(t, router, "owner", "wrong-password")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = postLogin(t, router, "intruder", "sup3rsecret")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginMissingFields(t *testing.T) {
	router := setupAuthRouter()

	payload := []byte(`{"username":"owner"}`)
	req, err := http.NewRequest("POST", "/auth", bytes.NewBuffer(payload))
	assert.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestVerifyWithToken(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "owner")
	t.Setenv("ADMIN_PASSWORD", "sup3rsecret")
	router := setupAuthRouter()

	w := postLogin(t, router, "owner", "sup3rsecret")
	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	token := response["data"].(map[string]interface{})["token"].(string)

	req, err := http.NewRequest("GET", "/auth/verify", nil)
	assert.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "owner", data["username"])
	assert.Equal(t, "admin", data["role"])
}

func TestVerifyWithoutToken(t *testing.T) {
	router := setupAuthRouter()

	req, err := http.NewRequest("GET", "/auth/verify", nil)
	assert.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
