package config

type SMTPConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	Username     string `yaml:"username"`
	Password     string `yaml:"password"`
	FromEmail    string `yaml:"from_email"`
	FromName     string `yaml:"from_name"`
	TLS          bool   `yaml:"tls"`
	ContactInbox string `yaml:"contact_inbox"`
}

func loadSMTPConfig() *SMTPConfig {
	return &SMTPConfig{
		Host:         getEnv("SMTP_HOST", "smtp.gmail.com"),
		Port:         getEnvAsInt("SMTP_PORT", 587),
		Username:     getEnv("SMTP_USERNAME", ""),
		Password:     getEnv("SMTP_PASSWORD", ""),
		FromEmail:    getEnv("SMTP_FROM_EMAIL", "noreply@ridersafe.mx"),
		FromName:     getEnv("SMTP_FROM_NAME", "RiderSafe"),
		TLS:          getEnvAsBool("SMTP_TLS", true),
		ContactInbox: getEnv("CONTACT_INBOX", "contacto@ridersafe.mx"),
	}
}
