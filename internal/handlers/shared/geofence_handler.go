package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ridersafe/internal/services"
	"ridersafe/internal/utils"
)

type GeofenceHandler struct {
	geofenceService services.GeofenceService
	vehicleService  services.VehicleService
}

func NewGeofenceHandler(geofenceService services.GeofenceService, vehicleService services.VehicleService) *GeofenceHandler {
	return &GeofenceHandler{
		geofenceService: geofenceService,
		vehicleService:  vehicleService,
	}
}

func (h *GeofenceHandler) ListGeofences(c *gin.Context) {
	_, vehicleID, ok := h.authorize(c)
	if !ok {
		return
	}

	fences, err := h.geofenceService.ListGeofences(c.Request.Context(), vehicleID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "GEOFENCE_LIST_FAILED", err.Error())
		return
	}

	utils.SuccessResponse(c, "Geofences retrieved", fences)
}

// SaveGeofence creates a fence in the first free slot, or updates the slot
// named in the request.
func (h *GeofenceHandler) SaveGeofence(c *gin.Context) {
	_, vehicleID, ok := h.authorize(c)
	if !ok {
		return
	}

	var request services.SaveGeofenceRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	request.VehicleID = vehicleID

	fence, err := h.geofenceService.SaveGeofence(c.Request.Context(), &request)
	if err != nil {
		utils.ErrorResponse(c, geofenceStatus(err), "GEOFENCE_SAVE_FAILED", err.Error())
		return
	}

	utils.SuccessResponse(c, "Geofence saved", fence)
}

func (h *GeofenceHandler) ToggleGeofence(c *gin.Context) {
	_, vehicleID, ok := h.authorize(c)
	if !ok {
		return
	}

	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid slot")
		return
	}

	var request struct {
		Active bool `json:"active"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.geofenceService.ToggleGeofence(c.Request.Context(), vehicleID, slot, request.Active); err != nil {
		utils.ErrorResponse(c, geofenceStatus(err), "GEOFENCE_TOGGLE_FAILED", err.Error())
		return
	}

	utils.SuccessResponse(c, "Geofence updated", nil)
}

func (h *GeofenceHandler) RemoveGeofence(c *gin.Context) {
	_, vehicleID, ok := h.authorize(c)
	if !ok {
		return
	}

	slot, err := strconv.Atoi(c.Param("slot"))
	if err != nil {
		utils.BadRequestResponse(c, "Invalid slot")
		return
	}

	if err := h.geofenceService.RemoveGeofence(c.Request.Context(), vehicleID, slot); err != nil {
		utils.ErrorResponse(c, geofenceStatus(err), "GEOFENCE_REMOVE_FAILED", err.Error())
		return
	}

	utils.SuccessResponse(c, "Geofence removed", nil)
}

// authorize confirms the vehicle belongs to the caller before any fence
// operation runs.
func (h *GeofenceHandler) authorize(c *gin.Context) (primitive.ObjectID, string, bool) {
	userID, ok := currentUserID(c)
	if !ok {
		return primitive.NilObjectID, "", false
	}

	vehicleID := c.Param("id")
	if _, err := h.vehicleService.GetVehicle(c.Request.Context(), userID, vehicleID); err != nil {
		utils.ErrorResponse(c, vehicleStatus(err), "VEHICLE_ACCESS_DENIED", err.Error())
		return primitive.NilObjectID, "", false
	}
	return userID, vehicleID, true
}

func geofenceStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrNoFreeSlot):
		return http.StatusConflict
	case errors.Is(err, services.ErrSlotNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidRadius):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
