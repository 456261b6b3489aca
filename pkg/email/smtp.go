package email

import (
	"bytes"
	"crypto/tls"
	"embed"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"ridersafe/pkg/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	TLS      bool
}

func (c *SMTPConfig) Validate() error {
	if c.Host == "" {
		return fmt.Errorf("smtp host is required")
	}
	if c.Port == 0 {
		return fmt.Errorf("smtp port is required")
	}
	if c.From == "" {
		return fmt.Errorf("smtp from address is required")
	}
	return nil
}

// Sender delivers application mail over SMTP using embedded HTML templates.
type Sender struct {
	config    *SMTPConfig
	templates *template.Template
	logger    *logger.Logger
}

func NewSender(config *SMTPConfig, log *logger.Logger) (*Sender, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid smtp config: %w", err)
	}

	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse email templates: %w", err)
	}

	return &Sender{
		config:    config,
		templates: tmpl,
		logger:    log.WithField("component", "email_sender"),
	}, nil
}

type VerificationData struct {
	FullName  string
	VerifyURL string
	ExpiresIn string
}

type PasswordResetData struct {
	FullName string
	ResetURL string
	ExpiresIn string
}

type LicenseCodeData struct {
	FullName string
	Code     string
	Plan     string
}

type ContactMessageData struct {
	Name      string
	Email     string
	Phone     string
	Subject   string
	Message   string
	Submitted time.Time
}

func (s *Sender) SendVerification(to string, data VerificationData) error {
	return s.sendTemplate([]string{to}, "Verify your RiderSafe account", "verification.html", data)
}

func (s *Sender) SendPasswordReset(to string, data PasswordResetData) error {
	return s.sendTemplate([]string{to}, "Reset your RiderSafe password", "password_reset.html", data)
}

func (s *Sender) SendLicenseCode(to string, data LicenseCodeData) error {
	return s.sendTemplate([]string{to}, "Your RiderSafe activation code", "license_code.html", data)
}

func (s *Sender) SendContactMessage(to string, data ContactMessageData) error {
	subject := fmt.Sprintf("Contact form: %s", data.Subject)
	return s.sendTemplate([]string{to}, subject, "contact_message.html", data)
}

func (s *Sender) sendTemplate(to []string, subject, templateName string, data interface{}) error {
	var body bytes.Buffer
	if err := s.templates.ExecuteTemplate(&body, templateName, data); err != nil {
		return fmt.Errorf("execute template %s: %w", templateName, err)
	}

	return s.send(to, subject, body.String())
}

func (s *Sender) send(to []string, subject, htmlBody string) error {
	msg := s.buildMessage(to, subject, htmlBody)
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	var err error
	if s.config.TLS {
		err = s.sendTLS(addr, to, msg)
	} else {
		err = s.sendPlain(addr, to, msg)
	}

	if err != nil {
		s.logger.WithError(err).WithField("subject", subject).Error("Failed to send email")
		return fmt.Errorf("send email: %w", err)
	}

	s.logger.WithField("subject", subject).Debug("Email sent")
	return nil
}

func (s *Sender) buildMessage(to []string, subject, htmlBody string) []byte {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("From: %s\r\n", s.config.From))
	buf.WriteString(fmt.Sprintf("To: %s\r\n", to[0]))
	buf.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=\"UTF-8\"\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(htmlBody)
	return buf.Bytes()
}

// sendPlain sends email without TLS (for port 25 or trusted networks)
func (s *Sender) sendPlain(addr string, to []string, msg []byte) error {
	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	return smtp.SendMail(addr, auth, s.config.From, to, msg)
}

// sendTLS sends email with TLS (for port 465 or STARTTLS on port 587)
func (s *Sender) sendTLS(addr string, to []string, msg []byte) error {
	tlsConfig := &tls.Config{
		ServerName: s.config.Host,
		MinVersion: tls.VersionTLS12,
	}

	conn, err := tls.Dial("tcp", addr, tlsConfig)
	if err != nil {
		return fmt.Errorf("tls dial: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, s.config.Host)
	if err != nil {
		return fmt.Errorf("create smtp client: %w", err)
	}
	defer client.Close()

	if s.config.Username != "" {
		auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}

	if err := client.Mail(s.config.From); err != nil {
		return fmt.Errorf("smtp mail: %w", err)
	}
	for _, recipient := range to {
		if err := client.Rcpt(recipient); err != nil {
			return fmt.Errorf("smtp rcpt: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("smtp data: %w", err)
	}
	if _, err := w.Write(msg); err != nil {
		return fmt.Errorf("smtp write: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("smtp close data: %w", err)
	}

	return client.Quit()
}
