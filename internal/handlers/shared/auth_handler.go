package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"ridersafe/internal/services"
	"ridersafe/internal/utils"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register creates a new account and sends the verification email.
func (h *AuthHandler) Register(c *gin.Context) {
	var request services.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &request)
	if err != nil {
		utils.ErrorResponse(c, authStatus(err), "REGISTRATION_FAILED", services.UserMessage(err))
		return
	}

	utils.CreatedResponse(c, "Cuenta creada. Revisa tu correo para verificarla.", user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var request services.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	response, err := h.authService.Login(c.Request.Context(), &request)
	if err != nil {
		utils.ErrorResponse(c, authStatus(err), "LOGIN_FAILED", services.UserMessage(err))
		return
	}

	utils.SuccessResponse(c, "Sesión iniciada", response)
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		utils.BadRequestResponse(c, "Verification token is required")
		return
	}

	if err := h.authService.VerifyEmail(c.Request.Context(), token); err != nil {
		utils.ErrorResponse(c, http.StatusBadRequest, "VERIFICATION_FAILED", services.UserMessage(err))
		return
	}

	utils.SuccessResponse(c, "Correo verificado", nil)
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var request struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.authService.ForgotPassword(c.Request.Context(), request.Email); err != nil {
		utils.ErrorResponse(c, authStatus(err), "RESET_REQUEST_FAILED", services.UserMessage(err))
		return
	}

	// Same response whether or not the account exists.
	utils.SuccessResponse(c, "Si el correo existe, recibirás instrucciones para restablecer tu contraseña.", nil)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var request struct {
		Token    string `json:"token" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.authService.ResetPassword(c.Request.Context(), request.Token, request.Password); err != nil {
		utils.ErrorResponse(c, authStatus(err), "RESET_FAILED", services.UserMessage(err))
		return
	}

	utils.SuccessResponse(c, "Contraseña actualizada", nil)
}

func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	user, err := h.authService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "PROFILE_FAILED", services.UserMessage(err))
		return
	}

	utils.SuccessResponse(c, "Profile retrieved", user)
}

func (h *AuthHandler) UpdateFCMToken(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var request struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&request); err != nil {
		utils.BadRequestResponse(c, "Invalid request: "+err.Error())
		return
	}

	if err := h.authService.UpdateFCMToken(c.Request.Context(), userID, request.Token); err != nil {
		utils.ErrorResponse(c, http.StatusInternalServerError, "FCM_UPDATE_FAILED", services.UserMessage(err))
		return
	}

	utils.SuccessResponse(c, "Token updated", nil)
}

func authStatus(err error) int {
	switch {
	case errors.Is(err, services.ErrBadCredentials), errors.Is(err, services.ErrNotVerified):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrEmailInUse):
		return http.StatusConflict
	case errors.Is(err, services.ErrTooManyAttempts):
		return http.StatusTooManyRequests
	case errors.Is(err, services.ErrInvalidEmail), errors.Is(err, services.ErrWeakPassword), errors.Is(err, services.ErrInvalidToken):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
