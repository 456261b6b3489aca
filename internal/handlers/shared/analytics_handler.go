package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ridersafe/internal/services"
	"ridersafe/internal/utils"
)

type AnalyticsHandler struct {
	analyticsService services.AnalyticsService
	vehicleService   services.VehicleService
}

func NewAnalyticsHandler(analyticsService services.AnalyticsService, vehicleService services.VehicleService) *AnalyticsHandler {
	return &AnalyticsHandler{
		analyticsService: analyticsService,
		vehicleService:   vehicleService,
	}
}

// GetReport computes the KPI dashboard for one vehicle.
func (h *AnalyticsHandler) GetReport(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	vehicleID := c.Param("id")
	if _, err := h.vehicleService.GetVehicle(c.Request.Context(), userID, vehicleID); err != nil {
		utils.ErrorResponse(c, vehicleStatus(err), "VEHICLE_ACCESS_DENIED", err.Error())
		return
	}

	report, err := h.analyticsService.Report(c.Request.Context(), vehicleID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "ANALYTICS_FAILED", "Failed to compute report: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Report computed", report)
}
