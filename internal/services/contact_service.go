package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ridersafe/internal/config"
	"ridersafe/internal/models"
	"ridersafe/internal/utils"
	"ridersafe/pkg/email"
	"ridersafe/pkg/logger"
)

type ContactService interface {
	Submit(ctx context.Context, request *ContactRequest) error
}

type ContactRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Email   string `json:"email" validate:"required"`
	Phone   string `json:"phone"`
	Subject string `json:"subject" validate:"max=150"`
	Message string `json:"message" validate:"required,min=10,max=3000"`
}

type contactService struct {
	emailSender *email.Sender
	smtpConfig  *config.SMTPConfig
	logger      *logger.Logger
}

func NewContactService(emailSender *email.Sender, smtpConfig *config.SMTPConfig, log *logger.Logger) ContactService {
	return &contactService{
		emailSender: emailSender,
		smtpConfig:  smtpConfig,
		logger:      log,
	}
}

func (s *contactService) Submit(ctx context.Context, request *ContactRequest) error {
	if err := utils.ValidateStruct(request); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if !utils.IsValidEmail(request.Email) {
		return fmt.Errorf("invalid email address")
	}
	// Phone is optional but must look like one when present.
	if request.Phone != "" && !utils.IsValidPhone(request.Phone) {
		return fmt.Errorf("invalid phone number")
	}

	message := models.ContactMessage{
		Name:      strings.TrimSpace(request.Name),
		Email:     utils.NormalizeEmail(request.Email),
		Phone:     strings.TrimSpace(request.Phone),
		Subject:   strings.TrimSpace(request.Subject),
		Message:   strings.TrimSpace(request.Message),
		CreatedAt: time.Now(),
	}

	if s.emailSender == nil {
		s.logger.Warn("Contact message received but email delivery is disabled")
		return nil
	}

	if err := s.emailSender.SendContactMessage(s.smtpConfig.ContactInbox, email.ContactMessageData{
		Name:      message.Name,
		Email:     message.Email,
		Phone:     message.Phone,
		Subject:   message.Subject,
		Message:   message.Message,
		Submitted: message.CreatedAt,
	}); err != nil {
		return fmt.Errorf("failed to deliver contact message: %w", err)
	}

	s.logger.WithField("from", utils.MaskEmail(message.Email)).Info("Contact message forwarded")
	return nil
}
