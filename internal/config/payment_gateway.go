package config

type PaymentConfig struct {
	Stripe     *StripeConfig `yaml:"stripe"`
	Currency   string        `yaml:"currency"`
	BasicPrice float64       `yaml:"basic_price"`
	PlusPrice  float64       `yaml:"plus_price"`
	SuccessURL string        `yaml:"success_url"`
	CancelURL  string        `yaml:"cancel_url"`
}

type StripeConfig struct {
	PublishableKey string `yaml:"publishable_key"`
	SecretKey      string `yaml:"secret_key"`
	WebhookSecret  string `yaml:"webhook_secret"`
}

func loadPaymentConfig() *PaymentConfig {
	return &PaymentConfig{
		Stripe: &StripeConfig{
			PublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),
			SecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret:  getEnv("STRIPE_WEBHOOK_SECRET", ""),
		},
		Currency:   getEnv("PAYMENT_CURRENCY", "MXN"),
		BasicPrice: getEnvAsFloat64("PLAN_BASIC_PRICE", 999),
		PlusPrice:  getEnvAsFloat64("PLAN_PLUS_PRICE", 1499),
		SuccessURL: getEnv("CHECKOUT_SUCCESS_URL", "http://localhost:8080/purchase/success"),
		CancelURL:  getEnv("CHECKOUT_CANCEL_URL", "http://localhost:8080/purchase/cancel"),
	}
}
