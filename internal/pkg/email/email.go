package email

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"net/smtp"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/internlink/backend/internal/app/models"
)

// Mailer defines the interface for email operations
type Mailer interface {
	SendVerificationCode(toEmail, toName, code string) error
	SendRoleNotice(toEmail string, role models.Role, name string) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
}

// SMTPMailer implements Mailer over plain SMTP
type SMTPMailer struct {
	config SMTPConfig
	logger zerolog.Logger
}

// NewSMTPMailer creates a new SMTPMailer
func NewSMTPMailer(config SMTPConfig, logger zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{
		config: config,
		logger: logger,
	}
}

// SendVerificationCode emails the 5-digit account verification code.
// The same code path serves password resets.
func (m *SMTPMailer) SendVerificationCode(toEmail, toName, code string) error {
	// Without SMTP credentials the code is logged instead (for development)
	if m.config.Username == "" || m.config.Password == "" {
		m.logger.Warn().
			Str("toEmail", toEmail).
			Str("code", code).
			Msg("SMTP credentials not configured - verification email not sent. Use the code above for testing.")
		return nil
	}

	subject := "Your account verification code"
	body := fmt.Sprintf("Hello %s,\n\nHere is your verification code: %s\n\nThe code expires in 10 minutes.\n\nBest regards, InternLink.", toName, code)

	return m.send(toEmail, subject, body)
}

// SendRoleNotice emails a short role-specific notice about a review event:
// enterprises learn their offer was reviewed, students that a new offer was
// approved for their department, teachers that a new offer awaits review.
func (m *SMTPMailer) SendRoleNotice(toEmail string, role models.Role, name string) error {
	if m.config.Username == "" || m.config.Password == "" {
		m.logger.Warn().
			Str("toEmail", toEmail).
			Str("role", string(role)).
			Msg("SMTP credentials not configured - notice email not sent.")
		return nil
	}

	var subject, content string
	switch role {
	case models.RoleEnterprise:
		subject = "Offer validation"
		content = fmt.Sprintf("Dear %s,\n\nWe would like to inform you that your internship offer has been reviewed.", name)
	case models.RoleStudent:
		subject = "New Offer Approved"
		content = fmt.Sprintf("Dear %s,\n\nWe would like to inform you that one internship offer has been approved by a teacher of your department.", name)
	case models.RoleTeacher:
		subject = "New Offer Arrival"
		content = fmt.Sprintf("Dear %s,\n\nWe would like to inform you there is a new offer to review regarding your department.", name)
	default:
		subject = "InternLink notice"
		content = fmt.Sprintf("Dear %s,\n\nThere is activity on your InternLink account.", name)
	}

	return m.send(toEmail, subject, content+"\n\nBest regards, InternLink.")
}

// send delivers a plain-text message over SMTP
func (m *SMTPMailer) send(toEmail, subject, body string) error {
	message := fmt.Sprintf("From: %s <%s>\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		m.config.FromName, m.config.FromEmail, toEmail, subject, body)

	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
	serverAddress := m.config.Host + ":" + strconv.Itoa(m.config.Port)

	err := smtp.SendMail(
		serverAddress,
		auth,
		m.config.FromEmail,
		[]string{toEmail},
		[]byte(message),
	)
	if err != nil {
		m.logger.Error().Err(err).Str("server", serverAddress).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// GenerateCode generates a 5-digit numeric verification code
func GenerateCode() string {
	n, err := rand.Int(rand.Reader, big.NewInt(90000))
	if err != nil {
		// crypto/rand read failures are not recoverable here
		panic(fmt.Sprintf("failed to generate verification code: %v", err))
	}
	return strconv.FormatInt(n.Int64()+10000, 10)
}
