package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ridersafe/internal/services"
	"ridersafe/internal/utils"
)

type ContactHandler struct {
	contactService services.ContactService
}

func NewContactHandler(contactService services.ContactService) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
	}
}

func (h *ContactHandler) Submit(c *gin.Context) {
	var request services.ContactRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.contactService.Submit(c.Request.Context(), &request); err != nil {
		if strings.Contains(err.Error(), "validation failed") || strings.Contains(err.Error(), "invalid") {
			utils.BadRequestResponse(c, err.Error())
			return
		}
		utils.ErrorResponse(c, http.StatusInternalServerError, "CONTACT_FAILED", "Failed to send message")
		return
	}

	utils.SuccessResponse(c, "Mensaje enviado. Te responderemos pronto.", nil)
}
