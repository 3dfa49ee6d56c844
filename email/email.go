package email

import (
	"context"
	"fmt"
	"mime"
	"net/smtp"
	"strings"
	"time"

	"relationship-dashboard/config"
	"relationship-dashboard/utils"

	"github.com/google/uuid"
	"github.com/resend/resend-go/v2"
	"github.com/rs/zerolog/log"
)

// Message is one HTML email.
type Message struct {
	From    string
	To      []string
	Subject string
	HTML    string
}

// Sender hands a message to a delivery service and returns its message id.
type Sender interface {
	Send(ctx context.Context, msg Message) (string, error)
}

// NewSender picks the delivery provider from configuration. Missing
// credentials surface as utils.ErrEmailNotConfigured at send time so the
// rest of the dashboard still starts.
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.Enabled {
		return DisabledSender{}
	}

	switch strings.ToLower(cfg.Provider) {
	case "smtp":
		return NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)
	default:
		return NewResendSender(cfg.ResendAPIKey)
	}
}

func validate(msg Message) error {
	if msg.From == "" {
		return fmt.Errorf("%w: missing from address", utils.ErrEmailNotConfigured)
	}
	if len(msg.To) == 0 {
		return fmt.Errorf("%w: no recipients", utils.ErrEmailNotConfigured)
	}
	return nil
}

// DisabledSender logs instead of delivering, for local development.
type DisabledSender struct{}

func (DisabledSender) Send(ctx context.Context, msg Message) (string, error) {
	log.Warn().
		Strs("to", msg.To).
		Str("subject", msg.Subject).
		Int("html_bytes", len(msg.HTML)).
		Msg("Email service disabled - digest not sent")
	return "disabled", nil
}

// emailAPI is the part of the Resend client used here.
type emailAPI interface {
	Send(params *resend.SendEmailRequest) (*resend.SendEmailResponse, error)
}

// ResendSender delivers through the Resend HTTP API.
type ResendSender struct {
	emails emailAPI
}

// NewResendSender creates a Resend-backed sender. An empty key yields a
// sender that always reports ErrEmailNotConfigured.
func NewResendSender(apiKey string) *ResendSender {
	if apiKey == "" {
		return &ResendSender{}
	}
	return &ResendSender{emails: resend.NewClient(apiKey).Emails}
}

func (rs *ResendSender) Send(ctx context.Context, msg Message) (string, error) {
	if rs.emails == nil {
		return "", fmt.Errorf("%w: RESEND_API_KEY not set", utils.ErrEmailNotConfigured)
	}
	if err := validate(msg); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	sent, err := rs.emails.Send(&resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		Html:    msg.HTML,
	})
	if err != nil {
		log.Error().Err(err).Strs("to", msg.To).Msg("Failed to send email")
		return "", fmt.Errorf("send via resend: %w", err)
	}

	log.Info().Strs("to", msg.To).Str("subject", msg.Subject).Str("id", sent.Id).Msg("Email sent successfully")
	return sent.Id, nil
}

// SMTPSender handles sending emails over SMTP
type SMTPSender struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string

	sendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
	now      func() time.Time
}

// NewSMTPSender creates a new SMTP sender
func NewSMTPSender(host, port, username, password string) *SMTPSender {
	return &SMTPSender{
		SMTPHost:     host,
		SMTPPort:     port,
		SMTPUsername: username,
		SMTPPassword: password,
		sendMail:     smtp.SendMail,
		now:          time.Now,
	}
}

func (ss *SMTPSender) Send(ctx context.Context, msg Message) (string, error) {
	if ss.SMTPHost == "" {
		return "", fmt.Errorf("%w: smtp_host not set", utils.ErrEmailNotConfigured)
	}
	if err := validate(msg); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	id := fmt.Sprintf("%s@%s", uuid.NewString(), ss.SMTPHost)
	body := buildMIME(msg, id, ss.now())

	var auth smtp.Auth
	if ss.SMTPUsername != "" {
		auth = smtp.PlainAuth("", ss.SMTPUsername, ss.SMTPPassword, ss.SMTPHost)
	}
	addr := fmt.Sprintf("%s:%s", ss.SMTPHost, ss.SMTPPort)

	if err := ss.sendMail(addr, auth, envelopeAddress(msg.From), msg.To, body); err != nil {
		log.Error().Err(err).Strs("to", msg.To).Msg("Failed to send email")
		return "", fmt.Errorf("send via smtp: %w", err)
	}

	log.Info().Strs("to", msg.To).Str("subject", msg.Subject).Str("id", id).Msg("Email sent successfully")
	return id, nil
}

// envelopeAddress extracts addr from "Name <addr>".
func envelopeAddress(from string) string {
	if start := strings.LastIndex(from, "<"); start >= 0 {
		if end := strings.LastIndex(from, ">"); end > start {
			return from[start+1 : end]
		}
	}
	return strings.TrimSpace(from)
}

func buildMIME(msg Message, id string, at time.Time) []byte {
	return []byte(fmt.Sprintf(
		"From: %s\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"Date: %s\r\n"+
			"Message-ID: <%s>\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s\r\n",
		msg.From, strings.Join(msg.To, ", "), mime.QEncoding.Encode("utf-8", msg.Subject), at.Format(time.RFC1123Z), id, msg.HTML,
	))
}
