package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/resend/resend-go/v2"
	"github.com/wolfman30/portfolio-contact/pkg/logging"
)

// ResendSender sends emails through the Resend API.
type ResendSender struct {
	client    *resend.Client
	fromEmail string
	fromName  string
	logger    *logging.Logger
}

// ResendConfig holds configuration for Resend.
type ResendConfig struct {
	APIKey     string
	FromEmail  string
	FromName   string
	BaseURL    string // overrides https://api.resend.com/, used in tests
	HTTPClient *http.Client
}

// NewResendSender creates a Resend sender, or nil when no API key is set.
func NewResendSender(cfg ResendConfig, logger *logging.Logger) (*ResendSender, error) {
	if cfg.APIKey == "" {
		return nil, nil
	}
	if logger == nil {
		logger = logging.Default()
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	client := resend.NewCustomClient(httpClient, cfg.APIKey)
	if cfg.BaseURL != "" {
		base, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("notify: parse resend base url: %w", err)
		}
		client.BaseURL = base
	}
	return &ResendSender{
		client:    client,
		fromEmail: cfg.FromEmail,
		fromName:  cfg.FromName,
		logger:    logger,
	}, nil
}

// Send sends an email via Resend.
func (s *ResendSender) Send(ctx context.Context, msg EmailMessage) error {
	if s.client == nil {
		return fmt.Errorf("notify: resend client not configured")
	}

	from := msg.From
	if from == "" {
		from = formatAddress(s.fromName, s.fromEmail)
	}
	params := &resend.SendEmailRequest{
		From:    from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		ReplyTo: msg.ReplyTo,
		Text:    msg.Body,
		Html:    msg.HTML,
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		s.logger.Error("resend send failed", "error", logging.RedactError(err))
		return fmt.Errorf("notify: resend send failed: %w", err)
	}

	s.logger.Info("email sent via resend", "message_id", sent.Id)
	return nil
}

var _ EmailSender = (*ResendSender)(nil)
