package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/cafe-booking/models"
	"github.com/yeremiapane/cafe-booking/repositories"
	"github.com/yeremiapane/cafe-booking/utils"
)

type CustomerController struct {
	Store repositories.EntityStore
}

func NewCustomerController(store repositories.EntityStore) *CustomerController {
	return &CustomerController{Store: store}
}

// GetAllCustomers -> admin list ordered by name, bookings included.
func (cc *CustomerController) GetAllCustomers(c *gin.Context) {
	customers, err := cc.Store.GetAllCustomers()
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of customers", customers)
}

// CreateCustomer -> manual admin entry; booking creation normally
// creates customers implicitly.
func (cc *CustomerController) CreateCustomer(c *gin.Context) {
	var req struct {
		Name  string `json:"name" binding:"required"`
		Email string `json:"email" binding:"required,email"`
		Phone string `json:"phone"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondErrorCode(c, http.StatusBadRequest, "validation_error", err)
		return
	}

	customer := models.Customer{
		Name:  req.Name,
		Email: req.Email,
	}
	if req.Phone != "" {
		customer.Phone = &req.Phone
	}

	if err := cc.Store.CreateCustomer(&customer); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			utils.RespondErrorCode(c, http.StatusConflict, "conflict",
				errors.New("customer with this email already exists"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Customer created: %s", customer.Email)
	utils.RespondJSON(c, http.StatusCreated, "Customer created successfully", customer)
}

// GetCustomerByID -> detail with booking history.
func (cc *CustomerController) GetCustomerByID(c *gin.Context) {
	id, err := parseID(c.Param("customer_id"))
	if err != nil {
		utils.RespondErrorCode(c, http.StatusBadRequest, "validation_error", err)
		return
	}

	customer, err := cc.Store.GetCustomerByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.RespondErrorCode(c, http.StatusNotFound, "not_found", err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	bookings, err := cc.Store.GetBookingsByCustomer(customer.ID)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	customer.Bookings = bookings

	utils.RespondJSON(c, http.StatusOK, "Customer detail", customer)
}
