package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ridersafe/internal/services"
	"ridersafe/internal/utils"
)

type VehicleHandler struct {
	vehicleService services.VehicleService
}

func NewVehicleHandler(vehicleService services.VehicleService) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
	}
}

// ListVehicles returns every vehicle registered to the current user.
func (h *VehicleHandler) ListVehicles(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	states, err := h.vehicleService.ListVehicles(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "VEHICLE_LIST_FAILED", "Failed to list vehicles: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Vehicles retrieved", states)
}

func (h *VehicleHandler) GetState(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	state, err := h.vehicleService.GetState(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, vehicleStatus(err), "VEHICLE_STATE_FAILED", err.Error())
		return
	}

	utils.SuccessResponse(c, "Vehicle state retrieved", state)
}

func (h *VehicleHandler) Rename(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request struct {
		FriendlyName string `json:"friendly_name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.vehicleService.Rename(c.Request.Context(), userID, c.Param("id"), request.FriendlyName); err != nil {
		utils.ErrorResponse(c, vehicleStatus(err), "VEHICLE_RENAME_FAILED", err.Error())
		return
	}

	utils.SuccessResponse(c, "Vehicle renamed", nil)
}

func (h *VehicleHandler) GetHistory(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	history, err := h.vehicleService.GetHistory(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, vehicleStatus(err), "VEHICLE_HISTORY_FAILED", err.Error())
		return
	}

	utils.SuccessResponse(c, "History retrieved", history)
}

func vehicleStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrVehicleNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrVehicleNotOwned):
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}
