package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"ridersafe/internal/services"
	"ridersafe/internal/utils"
	"ridersafe/pkg/logger"
)

type PaymentHandler struct {
	licenseService services.LicenseService
	logger         *logger.Logger
}

func NewPaymentHandler(licenseService services.LicenseService, log *logger.Logger) *PaymentHandler {
	return &PaymentHandler{
		licenseService: licenseService,
		logger:         log,
	}
}

// HandleWebhook receives payment provider callbacks. The raw body is
// required for signature verification.
func (h *PaymentHandler) HandleWebhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<16))
	if err != nil {
		utils.BadRequestResponse(c, "Failed to read payload")
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if signature == "" {
		utils.BadRequestResponse(c, "Missing signature")
		return
	}

	if err := h.licenseService.HandleWebhook(c.Request.Context(), payload, signature); err != nil {
		h.logger.WithError(err).Error("Webhook processing failed")
		utils.ErrorResponse(c, http.StatusBadRequest, "WEBHOOK_FAILED", "Webhook processing failed")
		return
	}

	c.Status(http.StatusOK)
}
