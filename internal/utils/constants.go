package utils

import "time"

// Application Constants
const (
	AppName    = "RiderSafe"
	AppVersion = "1.0.0"

	// Default values
	DefaultLanguage = "es"
	DefaultTimeZone = "America/Mexico_City"

	// Pagination
	DefaultPageSize = 20
	MaxPageSize     = 100
	MinPageSize     = 1

	// Authentication
	JWTAccessTokenTTL  = 24 * time.Hour
	JWTRefreshTokenTTL = 7 * 24 * time.Hour
	PasswordMinLength  = 6
	VerifyTokenTTL     = 24 * time.Hour
	ResetTokenTTL      = 1 * time.Hour

	// Geofences
	MaxGeofenceSlots      = 3
	MinGeofenceRadius     = 50.0 // meters
	EarthRadiusMeters     = 6371000.0
	DefaultGeofenceRadius = 100.0

	// Telemetry
	LivenessTimeout      = 10 * time.Second
	AlertDismissAfter    = 5 * time.Second
	AnalyticsPingLimit   = 100
	AnalyticsEventLimit  = 50
	AnalyticsHistoryDays = 7

	// Licenses
	LicenseCodeLength  = 16
	LicenseCodeGroup   = 4
	MaxCodeGenAttempts = 5

	// New device defaults
	DefaultDeviceBattery = 85.0
	DefaultDeviceLat     = 20.138
	DefaultDeviceLng     = -99.2015

	// Rate Limiting
	DefaultRateLimit = 100
	LoginRateLimit   = 5

	// Reviews
	MinReviewRating = 1
	MaxReviewRating = 5
)

// Product plans
const (
	PlanBasic = "basic"
	PlanPlus  = "plus"

	ProductPrefix = "ridersafe"
)

// HTTP Status Messages
const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// KPI traffic-light statuses
const (
	KPIStatusGreen  = "green"
	KPIStatusAmber  = "amber"
	KPIStatusRed    = "red"
	KPIStatusNoData = "no_data"
)

// User-facing auth error messages. Vendor error codes collapse into this
// fixed set; anything unmapped falls back to ErrMsgGeneric.
const (
	ErrMsgBadCredentials  = "Correo electrónico o contraseña incorrectos."
	ErrMsgInvalidEmail    = "El formato del correo electrónico no es válido."
	ErrMsgEmailInUse      = "Este correo electrónico ya está registrado."
	ErrMsgWeakPassword    = "La contraseña debe tener al menos 6 caracteres."
	ErrMsgTooManyAttempts = "Demasiados intentos fallidos. Inténtalo de nuevo más tarde."
	ErrMsgNotVerified     = "Tu cuenta aún no ha sido verificada. Por favor, revisa tu correo."
	ErrMsgGeneric         = "Ocurrió un error inesperado. Por favor, intenta de nuevo."
)
