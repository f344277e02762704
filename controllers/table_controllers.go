package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/yeremiapane/cafe-booking/live"
	"github.com/yeremiapane/cafe-booking/models"
	"github.com/yeremiapane/cafe-booking/repositories"
	"github.com/yeremiapane/cafe-booking/services"
	"github.com/yeremiapane/cafe-booking/utils"
)

type TableController struct {
	Store   repositories.EntityStore
	Service *services.BookingService
}

func NewTableController(store repositories.EntityStore, service *services.BookingService) *TableController {
	return &TableController{Store: store, Service: service}
}

// GetActiveTables -> public list of bookable tables, number ascending.
func (tc *TableController) GetActiveTables(c *gin.Context) {
	tables, err := tc.Store.GetAllTables(true)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", gin.H{
		"tables": tables,
		"total":  len(tables),
	})
}

// GetAvailability -> tables free for ?date=&partySize=, used by the
// selection step of the booking wizard.
func (tc *TableController) GetAvailability(c *gin.Context) {
	dateStr := c.Query("date")
	sizeStr := c.Query("partySize")
	if dateStr == "" || sizeStr == "" {
		utils.RespondErrorCode(c, http.StatusBadRequest, "validation_error",
			errors.New("date and partySize are required"))
		return
	}

	date, err := parseDateTime(dateStr)
	if err != nil {
		utils.RespondErrorCode(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	partySize, err := strconv.Atoi(sizeStr)
	if err != nil {
		utils.RespondErrorCode(c, http.StatusBadRequest, "validation_error",
			errors.New("partySize must be a number"))
		return
	}

	tables, err := tc.Service.AvailableTablesFor(date, partySize)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Available tables", gin.H{
		"tables": tables,
		"total":  len(tables),
	})
}

// GetAllTables -> admin view including inactive tables.
func (tc *TableController) GetAllTables(c *gin.Context) {
	tables, err := tc.Store.GetAllTables(false)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// GetTableByID -> detail of one table.
func (tc *TableController) GetTableByID(c *gin.Context) {
	id, err := parseID(c.Param("table_id"))
	if err != nil {
		utils.RespondErrorCode(c, http.StatusBadRequest, "validation_error", err)
		return
	}

	table, err := tc.Store.GetTableByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.RespondErrorCode(c, http.StatusNotFound, "not_found", err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// CreateTable -> adds a table to the floor plan.
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		Number      int    `json:"number" binding:"required"`
		Capacity    int    `json:"capacity" binding:"required"`
		Location    string `json:"location"`
		Description string `json:"description"`
		IsActive    *bool  `json:"isActive"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondErrorCode(c, http.StatusBadRequest, "validation_error", err)
		return
	}
	if req.Capacity < 1 {
		utils.RespondErrorCode(c, http.StatusBadRequest, "validation_error",
			errors.New("capacity must be at least 1"))
		return
	}

	table := models.Table{
		Number:      req.Number,
		Capacity:    req.Capacity,
		Location:    req.Location,
		Description: req.Description,
		IsActive:    true,
	}
	if req.IsActive != nil {
		table.IsActive = *req.IsActive
	}

	if err := tc.Store.CreateTable(&table); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			utils.RespondErrorCode(c, http.StatusConflict, "conflict",
				errors.New("table number already in use"))
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	live.BroadcastTableUpdate(live.EventTableCreate, table, nil)

	utils.InfoLogger.Printf("New table created: %d (capacity=%d)", table.Number, table.Capacity)
	utils.RespondJSON(c, http.StatusCreated, "Table created successfully", table)
}

// UpdateTable -> admin edit of capacity, location or activity flag.
func (tc *TableController) UpdateTable(c *gin.Context) {
	id, err := parseID(c.Param("table_id"))
	if err != nil {
		utils.RespondErrorCode(c, http.StatusBadRequest, "validation_error", err)
		return
	}

	var req struct {
		Number      *int    `json:"number"`
		Capacity    *int    `json:"capacity"`
		Location    *string `json:"location"`
		Description *string `json:"description"`
		IsActive    *bool   `json:"isActive"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondErrorCode(c, http.StatusBadRequest, "validation_error", err)
		return
	}

	table, err := tc.Store.GetTableByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.RespondErrorCode(c, http.StatusNotFound, "not_found", err)
			return
		}
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	if req.Number != nil {
		table.Number = *req.Number
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			utils.RespondErrorCode(c, http.StatusBadRequest, "validation_error",
				errors.New("capacity must be at least 1"))
			return
		}
		table.Capacity = *req.Capacity
	}
	if req.Location != nil {
		table.Location = *req.Location
	}
	if req.Description != nil {
		table.Description = *req.Description
	}
	if req.IsActive != nil {
		table.IsActive = *req.IsActive
	}

	if err := tc.Store.UpdateTable(table); err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	live.BroadcastTableUpdate(live.EventTableUpdate, *table, nil)

	utils.InfoLogger.Printf("Table %d updated (active=%t)", table.Number, table.IsActive)
	utils.RespondJSON(c, http.StatusOK, "Table updated successfully", table)
}
