package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"ridersafe/internal/config"
	"ridersafe/internal/models"
	"ridersafe/internal/repositories/interfaces"
	"ridersafe/internal/utils"
	"ridersafe/pkg/database"
	"ridersafe/pkg/email"
	"ridersafe/pkg/logger"
	"ridersafe/pkg/payment"
)

var (
	ErrInvalidCode  = errors.New("activation code does not exist")
	ErrCodeConsumed = errors.New("activation code has already been used")
	ErrCodeForeign  = errors.New("activation code belongs to a different purchase")
	ErrUnknownPlan  = errors.New("unknown plan")
)

type LicenseService interface {
	Activate(ctx context.Context, request *ActivateRequest) (*models.Vehicle, error)
	Generate(ctx context.Context, plan, purchaseID string) (*models.License, error)
	CreateCheckout(ctx context.Context, request *CheckoutRequest) (*payment.CheckoutResponse, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
}

type ActivateRequest struct {
	UserID primitive.ObjectID `json:"-"`
	Code   string             `json:"code" validate:"required"`
	Name   string             `json:"name"`
}

type CheckoutRequest struct {
	Plan          string `json:"plan" validate:"required,plan"`
	CustomerEmail string `json:"customer_email" validate:"required,email"`
}

type licenseService struct {
	db              *database.MongoDB
	licenseRepo     interfaces.LicenseRepository
	userRepo        interfaces.UserRepository
	vehicleRepo     interfaces.VehicleRepository
	paymentProvider payment.PaymentProvider
	emailSender     *email.Sender
	paymentConfig   *config.PaymentConfig
	logger          *logger.Logger
	audit           *logger.AuditLogger
}

func NewLicenseService(
	db *database.MongoDB,
	licenseRepo interfaces.LicenseRepository,
	userRepo interfaces.UserRepository,
	vehicleRepo interfaces.VehicleRepository,
	paymentProvider payment.PaymentProvider,
	emailSender *email.Sender,
	paymentConfig *config.PaymentConfig,
	log *logger.Logger,
	audit *logger.AuditLogger,
) LicenseService {
	return &licenseService{
		db:              db,
		licenseRepo:     licenseRepo,
		userRepo:        userRepo,
		vehicleRepo:     vehicleRepo,
		paymentProvider: paymentProvider,
		emailSender:     emailSender,
		paymentConfig:   paymentConfig,
		logger:          log,
		audit:           audit,
	}
}

// Activate consumes a license code and registers the vehicle for the user.
// The code flip, the device upsert and the user bookkeeping commit as one
// transaction; concurrent activations of the same code settle to exactly
// one winner.
func (s *licenseService) Activate(ctx context.Context, request *ActivateRequest) (*models.Vehicle, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	code := strings.ToUpper(strings.TrimSpace(request.Code))

	license, err := s.licenseRepo.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, err
	}
	if license.Active {
		return nil, ErrCodeConsumed
	}
	if !license.UserID.IsZero() && license.UserID != request.UserID {
		return nil, ErrCodeForeign
	}

	plan := PlanForCode(license.Plan, code)
	now := time.Now()
	vehicleID := newVehicleID(request.UserID, now)

	result, err := s.db.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		if err := s.licenseRepo.MarkActivated(sessCtx, code, request.UserID, vehicleID, plan, now); err != nil {
			if errors.Is(err, interfaces.ErrNotFound) {
				// Raced by another activation between the read and the write.
				return nil, ErrCodeConsumed
			}
			return nil, err
		}

		vehicle := &models.Vehicle{
			ID:           vehicleID,
			UserID:       request.UserID,
			LicenseCode:  code,
			FriendlyName: request.Name,
			Plan:         plan,
			Battery:      utils.DefaultDeviceBattery,
			Locked:       true,
			Location: &models.GeoPoint{
				Lat: utils.DefaultDeviceLat,
				Lng: utils.DefaultDeviceLng,
			},
		}
		if err := s.vehicleRepo.Create(sessCtx, vehicle); err != nil {
			return nil, err
		}

		product := utils.ProductPrefix + "-" + plan
		if err := s.userRepo.AppendActivation(sessCtx, request.UserID, vehicleID, code, product); err != nil {
			return nil, err
		}

		return vehicle, nil
	})
	if err != nil {
		return nil, err
	}

	vehicle := result.(*models.Vehicle)

	s.logger.LogVehicleEvent(vehicle.ID, "license_activated", map[string]interface{}{
		"user_id": request.UserID.Hex(),
		"plan":    plan,
	})
	if s.audit != nil {
		s.audit.LogActivation(request.UserID, code, vehicle.ID, plan)
	}

	return vehicle, nil
}

// Generate mints an unused activation code for a completed purchase.
func (s *licenseService) Generate(ctx context.Context, plan, purchaseID string) (*models.License, error) {
	if plan != utils.PlanBasic && plan != utils.PlanPlus {
		return nil, ErrUnknownPlan
	}

	var license *models.License
	for attempt := 0; attempt < utils.MaxCodeGenAttempts; attempt++ {
		code := utils.GenerateLicenseCode(utils.LicenseCodeLength)
		exists, err := s.licenseRepo.Exists(ctx, code)
		if err != nil {
			return nil, err
		}
		if exists {
			continue
		}

		candidate := &models.License{
			Code:       code,
			Plan:       plan,
			Active:     false,
			PurchaseID: purchaseID,
			CreatedAt:  time.Now(),
		}
		if err := s.licenseRepo.Create(ctx, candidate); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				// Lost an insert race for this code, mint another.
				continue
			}
			return nil, err
		}

		license = candidate
		break
	}
	if license == nil {
		return nil, fmt.Errorf("failed to generate a unique code after %d attempts", utils.MaxCodeGenAttempts)
	}

	s.logger.LogPurchaseEvent(purchaseID, "license_generated", 0, "")

	return license, nil
}

func (s *licenseService) CreateCheckout(ctx context.Context, request *CheckoutRequest) (*payment.CheckoutResponse, error) {
	if err := utils.ValidateStruct(request); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	amount := s.paymentConfig.BasicPrice
	if request.Plan == utils.PlanPlus {
		amount = s.paymentConfig.PlusPrice
	}

	response, err := s.paymentProvider.CreateCheckoutSession(ctx, &payment.CheckoutRequest{
		Plan:          request.Plan,
		ProductName:   productName(request.Plan),
		Amount:        amount,
		Currency:      s.paymentConfig.Currency,
		CustomerEmail: request.CustomerEmail,
		SuccessURL:    s.paymentConfig.SuccessURL,
		CancelURL:     s.paymentConfig.CancelURL,
		Metadata: map[string]string{
			"plan": request.Plan,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create checkout session: %w", err)
	}

	s.logger.LogPurchaseEvent(response.SessionID, "checkout_created", amount, s.paymentConfig.Currency)

	return response, nil
}

// HandleWebhook processes checkout completion: verify the signature, mint
// a license for the purchased plan, mail the code to the buyer. Replayed
// events are absorbed by the existing-purchase lookup.
func (s *licenseService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	event, err := s.paymentProvider.ValidateWebhook(ctx, payload, signature)
	if err != nil {
		return fmt.Errorf("webhook validation failed: %w", err)
	}

	if event.EventType != "checkout.session.completed" {
		s.logger.WithField("event_type", event.EventType).Debug("Ignoring payment event")
		return nil
	}

	sessionID, _ := event.Data["id"].(string)
	customerEmail := webhookEmail(event.Data)
	plan := webhookPlan(event.Data)

	if _, err := s.licenseRepo.GetByPurchaseID(ctx, sessionID); err == nil {
		s.logger.WithField("purchase_id", sessionID).Info("Purchase already fulfilled, skipping")
		return nil
	} else if !errors.Is(err, interfaces.ErrNotFound) {
		return err
	}

	license, err := s.Generate(ctx, plan, sessionID)
	if err != nil {
		return err
	}
	if s.audit != nil {
		s.audit.LogPurchase(sessionID, plan, customerEmail)
	}

	if customerEmail != "" && s.emailSender != nil {
		if err := s.emailSender.SendLicenseCode(customerEmail, email.LicenseCodeData{
			Code: license.Code,
			Plan: license.Plan,
		}); err != nil {
			s.logger.WithError(err).WithField("purchase_id", sessionID).Error("Failed to send license code email")
		}
	}

	return nil
}

// newVehicleID mints the device document id for an activation. The owner
// and the activation instant make it unique; clients never supply ids.
func newVehicleID(userID primitive.ObjectID, at time.Time) string {
	return fmt.Sprintf("vehicle_%s_%d", userID.Hex(), at.UnixMilli())
}

// PlanForCode resolves the plan of an activation: the stored plan wins,
// codes carrying the PLUS marker fall back to plus, everything else basic.
func PlanForCode(stored, code string) string {
	if stored != "" {
		return stored
	}
	if strings.Contains(strings.ToUpper(code), "PLUS") {
		return utils.PlanPlus
	}
	return utils.PlanBasic
}

func productName(plan string) string {
	if plan == utils.PlanPlus {
		return "RiderSafe Plus"
	}
	return "RiderSafe Basic"
}

func webhookEmail(data map[string]interface{}) string {
	if details, ok := data["customer_details"].(map[string]interface{}); ok {
		if addr, ok := details["email"].(string); ok {
			return addr
		}
	}
	if addr, ok := data["customer_email"].(string); ok {
		return addr
	}
	return ""
}

func webhookPlan(data map[string]interface{}) string {
	if meta, ok := data["metadata"].(map[string]interface{}); ok {
		if plan, ok := meta["plan"].(string); ok && plan != "" {
			return plan
		}
	}
	return utils.PlanBasic
}
