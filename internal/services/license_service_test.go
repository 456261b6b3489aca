package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"ridersafe/internal/models"
	"ridersafe/internal/repositories/interfaces"
	"ridersafe/internal/utils"
)

// mockLicenseRepo implements interfaces.LicenseRepository for testing.
type mockLicenseRepo struct {
	licenses    map[string]*models.License
	createCalls int
	dupRemain   int
}

func newMockLicenseRepo() *mockLicenseRepo {
	return &mockLicenseRepo{licenses: make(map[string]*models.License)}
}

func (m *mockLicenseRepo) Create(_ context.Context, license *models.License) error {
	m.createCalls++
	if m.dupRemain > 0 {
		m.dupRemain--
		return mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
	}
	m.licenses[license.Code] = license
	return nil
}

func (m *mockLicenseRepo) GetByCode(_ context.Context, code string) (*models.License, error) {
	license, ok := m.licenses[code]
	if !ok {
		return nil, interfaces.ErrNotFound
	}
	return license, nil
}

func (m *mockLicenseRepo) Exists(_ context.Context, code string) (bool, error) {
	_, ok := m.licenses[code]
	return ok, nil
}

func (m *mockLicenseRepo) GetByPurchaseID(_ context.Context, purchaseID string) (*models.License, error) {
	for _, license := range m.licenses {
		if license.PurchaseID == purchaseID {
			return license, nil
		}
	}
	return nil, interfaces.ErrNotFound
}

func (m *mockLicenseRepo) MarkActivated(_ context.Context, code string, userID primitive.ObjectID, vehicleID, plan string, at time.Time) error {
	license, ok := m.licenses[code]
	if !ok || license.Active {
		return interfaces.ErrNotFound
	}
	license.Active = true
	license.UserID = userID
	license.VehicleID = vehicleID
	license.Plan = plan
	return nil
}

func TestPlanForCode(t *testing.T) {
	tests := []struct {
		name   string
		stored string
		code   string
		want   string
	}{
		{"stored plan wins", utils.PlanPlus, "AAAA-BBBB-CCCC-DDDD", utils.PlanPlus},
		{"stored basic wins over PLUS code", utils.PlanBasic, "PLUS-BBBB-CCCC-DDDD", utils.PlanBasic},
		{"PLUS in code infers plus", "", "PLUS-BBBB-CCCC-DDDD", utils.PlanPlus},
		{"lowercase plus still matches", "", "xplusx-bbbb", utils.PlanPlus},
		{"plain code infers basic", "", "AAAA-BBBB-CCCC-DDDD", utils.PlanBasic},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PlanForCode(tt.stored, tt.code))
		})
	}
}

func TestWebhookEmail(t *testing.T) {
	t.Run("prefers customer details", func(t *testing.T) {
		data := map[string]interface{}{
			"customer_details": map[string]interface{}{"email": "rider@example.com"},
			"customer_email":   "other@example.com",
		}
		assert.Equal(t, "rider@example.com", webhookEmail(data))
	})

	t.Run("falls back to customer_email", func(t *testing.T) {
		data := map[string]interface{}{"customer_email": "rider@example.com"}
		assert.Equal(t, "rider@example.com", webhookEmail(data))
	})

	t.Run("empty when neither present", func(t *testing.T) {
		assert.Equal(t, "", webhookEmail(map[string]interface{}{}))
	})
}

func TestWebhookPlan(t *testing.T) {
	t.Run("reads metadata plan", func(t *testing.T) {
		data := map[string]interface{}{
			"metadata": map[string]interface{}{"plan": utils.PlanPlus},
		}
		assert.Equal(t, utils.PlanPlus, webhookPlan(data))
	})

	t.Run("empty metadata defaults to basic", func(t *testing.T) {
		data := map[string]interface{}{
			"metadata": map[string]interface{}{"plan": ""},
		}
		assert.Equal(t, utils.PlanBasic, webhookPlan(data))
	})

	t.Run("missing metadata defaults to basic", func(t *testing.T) {
		assert.Equal(t, utils.PlanBasic, webhookPlan(map[string]interface{}{}))
	})
}

func TestGenerate(t *testing.T) {
	ctx := context.Background()

	newService := func(repo *mockLicenseRepo) LicenseService {
		return NewLicenseService(nil, repo, nil, nil, nil, nil, nil, testLogger(t), nil)
	}

	t.Run("rejects unknown plan", func(t *testing.T) {
		svc := newService(newMockLicenseRepo())
		_, err := svc.Generate(ctx, "premium", "cs_123")
		assert.ErrorIs(t, err, ErrUnknownPlan)
	})

	t.Run("mints and stores a code", func(t *testing.T) {
		repo := newMockLicenseRepo()
		svc := newService(repo)

		license, err := svc.Generate(ctx, utils.PlanPlus, "cs_123")
		require.NoError(t, err)
		assert.Regexp(t, `^[0-9A-Z]{4}-[0-9A-Z]{4}-[0-9A-Z]{4}-[0-9A-Z]{4}$`, license.Code)
		assert.Equal(t, utils.PlanPlus, license.Plan)
		assert.Equal(t, "cs_123", license.PurchaseID)
		assert.False(t, license.Active)
		assert.Contains(t, repo.licenses, license.Code)
	})

	t.Run("retries when the insert collides", func(t *testing.T) {
		repo := newMockLicenseRepo()
		repo.dupRemain = 2
		svc := newService(repo)

		license, err := svc.Generate(ctx, utils.PlanBasic, "cs_456")
		require.NoError(t, err)
		assert.Equal(t, 3, repo.createCalls)
		assert.Contains(t, repo.licenses, license.Code)
	})

	t.Run("gives up after the attempt cap", func(t *testing.T) {
		repo := newMockLicenseRepo()
		repo.dupRemain = utils.MaxCodeGenAttempts
		svc := newService(repo)

		_, err := svc.Generate(ctx, utils.PlanBasic, "cs_789")
		assert.Error(t, err)
		assert.Empty(t, repo.licenses)
	})
}

func TestNewVehicleID(t *testing.T) {
	userID := primitive.NewObjectID()
	at := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	id := newVehicleID(userID, at)
	assert.Equal(t, "vehicle_"+userID.Hex()+"_1788091200000", id)

	// Different activation instants never collide for the same owner.
	later := newVehicleID(userID, at.Add(time.Millisecond))
	assert.NotEqual(t, id, later)
}

func TestProductName(t *testing.T) {
	assert.Equal(t, "RiderSafe Plus", productName(utils.PlanPlus))
	assert.Equal(t, "RiderSafe Basic", productName(utils.PlanBasic))
	assert.Equal(t, "RiderSafe Basic", productName("unknown"))
}
