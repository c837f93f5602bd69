package notify

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/wolfman30/portfolio-contact/pkg/logging"
)

var (
	// ErrNotConfigured is returned when a provider's credential is missing.
	ErrNotConfigured = errors.New("notify: email provider not configured")
	// ErrUnknownProvider is returned for an EMAIL_PROVIDER value with no adapter.
	ErrUnknownProvider = errors.New("notify: unknown email provider")
)

// EmailSender defines the interface for sending emails.
// Implementations can be swapped (Resend, SendGrid, SES) without changing callers.
type EmailSender interface {
	Send(ctx context.Context, msg EmailMessage) error
}

// EmailMessage represents an email to be sent.
type EmailMessage struct {
	From    string // Optional "Name <addr>" override of the sender's default identity
	To      string
	ToName  string
	ReplyTo string
	Subject string
	Body    string // Plain text body
	HTML    string // Optional HTML body
}

// SendGridSender sends emails via SendGrid API.
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
	logger    *logging.Logger
}

// SendGridConfig holds configuration for SendGrid.
type SendGridConfig struct {
	APIKey    string
	FromEmail string
	FromName  string
	Host      string // overrides https://api.sendgrid.com, used in tests
}

// NewSendGridSender creates a new SendGrid email sender.
func NewSendGridSender(cfg SendGridConfig, logger *logging.Logger) *SendGridSender {
	if cfg.APIKey == "" {
		return nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	client := sendgrid.NewSendClient(cfg.APIKey)
	if cfg.Host != "" {
		request := sendgrid.GetRequest(cfg.APIKey, "/v3/mail/send", cfg.Host)
		request.Method = "POST"
		client = &sendgrid.Client{Request: request}
	}
	return &SendGridSender{
		client:    client,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
	}
}

// Send sends an email via SendGrid.
func (s *SendGridSender) Send(ctx context.Context, msg EmailMessage) error {
	if s.client == nil {
		return fmt.Errorf("notify: sendgrid client not configured")
	}

	fromName, fromEmail := splitAddress(msg.From, s.fromName, s.fromEmail)
	from := sgmail.NewEmail(fromName, fromEmail)
	to := sgmail.NewEmail(msg.ToName, msg.To)

	// Body carries submitter input; it only goes out as text/plain.
	contents := []*sgmail.Content{sgmail.NewContent("text/plain", msg.Body)}
	if msg.HTML != "" {
		contents = append(contents, sgmail.NewContent("text/html", msg.HTML))
	}
	message := sgmail.NewV3MailInit(from, msg.Subject, to, contents...)
	if msg.ReplyTo != "" {
		message.SetReplyTo(sgmail.NewEmail("", msg.ReplyTo))
	}

	response, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		s.logger.Error("sendgrid send failed", "error", logging.RedactError(err))
		return fmt.Errorf("notify: sendgrid send failed: %w", err)
	}

	if response.StatusCode >= 400 {
		s.logger.Error("sendgrid returned error status", "status", response.StatusCode, "body", logging.Redact(response.Body))
		return fmt.Errorf("notify: sendgrid returned status %d", response.StatusCode)
	}

	s.logger.Info("email sent via sendgrid", "status", response.StatusCode)
	return nil
}

// StubEmailSender is a no-op sender for local development.
type StubEmailSender struct {
	logger *logging.Logger
}

// NewStubEmailSender creates a stub email sender that logs but doesn't send.
func NewStubEmailSender(logger *logging.Logger) *StubEmailSender {
	if logger == nil {
		logger = logging.Default()
	}
	return &StubEmailSender{logger: logger}
}

// Send logs the email but doesn't actually send it.
func (s *StubEmailSender) Send(ctx context.Context, msg EmailMessage) error {
	s.logger.Info("stub email sender: would send email", "body_bytes", len(msg.Body))
	return nil
}

// splitAddress parses a "Name <addr>" override, falling back to the defaults
// when the override is empty or unparseable.
func splitAddress(override, defaultName, defaultEmail string) (string, string) {
	override = strings.TrimSpace(override)
	if override == "" {
		return defaultName, defaultEmail
	}
	addr, err := mail.ParseAddress(override)
	if err != nil {
		return defaultName, defaultEmail
	}
	return addr.Name, addr.Address
}

// formatAddress renders name and email as a From header value.
func formatAddress(name, email string) string {
	if strings.TrimSpace(name) == "" {
		return email
	}
	return fmt.Sprintf("%s <%s>", name, email)
}

var (
	_ EmailSender = (*SendGridSender)(nil)
	_ EmailSender = (*StubEmailSender)(nil)
)
