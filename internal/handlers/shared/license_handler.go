package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ridersafe/internal/services"
	"ridersafe/internal/utils"
)

type LicenseHandler struct {
	licenseService services.LicenseService
}

func NewLicenseHandler(licenseService services.LicenseService) *LicenseHandler {
	return &LicenseHandler{
		licenseService: licenseService,
	}
}

// Activate consumes an activation code and registers the vehicle.
func (h *LicenseHandler) Activate(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request services.ActivateRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}
	request.UserID = userID

	vehicle, err := h.licenseService.Activate(c.Request.Context(), &request)
	if err != nil {
		utils.ErrorResponse(c, licenseStatus(err), "ACTIVATION_FAILED", err.Error())
		return
	}

	utils.CreatedResponse(c, "License activated", vehicle.StateView())
}

func (h *LicenseHandler) CreateCheckout(c *gin.Context) {
	var request services.CheckoutRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	response, err := h.licenseService.CreateCheckout(c.Request.Context(), &request)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "CHECKOUT_FAILED", "Failed to create checkout session: "+err.Error())
		return
	}

	utils.SuccessResponse(c, "Checkout session created", response)
}

func licenseStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidCode):
		return http.StatusNotFound
	case errors.Is(err, services.ErrCodeConsumed), errors.Is(err, services.ErrCodeForeign):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
