package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/wolfman30/portfolio-contact/pkg/logging"
)

// Provider names accepted in EMAIL_PROVIDER.
const (
	ProviderResend   = "resend"
	ProviderSendGrid = "sendgrid"
	ProviderSES      = "ses"
	ProviderStub     = "stub"
)

// ProviderConfig selects and configures the email adapter.
type ProviderConfig struct {
	Provider       string
	ResendAPIKey   string
	SendGridAPIKey string
	FromEmail      string
	FromName       string
	SESClient      SESAPI
	HTTPClient     *http.Client

	// Endpoint overrides, empty in production.
	ResendBaseURL string
	SendGridHost  string
}

// Provider builds the configured sender on demand. Construction happens per
// call so a missing credential fails the caller's request instead of startup.
type Provider struct {
	cfg    ProviderConfig
	logger *logging.Logger
}

// NewProvider returns a provider for cfg.
func NewProvider(cfg ProviderConfig, logger *logging.Logger) *Provider {
	if logger == nil {
		logger = logging.Default()
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.Provider == "" {
		cfg.Provider = ProviderResend
	}
	return &Provider{cfg: cfg, logger: logger}
}

// Name reports the selected provider.
func (p *Provider) Name() string {
	return p.cfg.Provider
}

// SenderFor returns a ready sender or ErrNotConfigured.
func (p *Provider) SenderFor(ctx context.Context) (EmailSender, error) {
	switch p.cfg.Provider {
	case ProviderResend:
		if strings.TrimSpace(p.cfg.ResendAPIKey) == "" {
			return nil, fmt.Errorf("%w: RESEND_API_KEY is not configured", ErrNotConfigured)
		}
		sender, err := NewResendSender(ResendConfig{
			APIKey:     p.cfg.ResendAPIKey,
			FromEmail:  p.cfg.FromEmail,
			FromName:   p.cfg.FromName,
			BaseURL:    p.cfg.ResendBaseURL,
			HTTPClient: p.cfg.HTTPClient,
		}, p.logger)
		if err != nil {
			return nil, err
		}
		return sender, nil
	case ProviderSendGrid:
		if strings.TrimSpace(p.cfg.SendGridAPIKey) == "" {
			return nil, fmt.Errorf("%w: SENDGRID_API_KEY is not configured", ErrNotConfigured)
		}
		return NewSendGridSender(SendGridConfig{
			APIKey:    p.cfg.SendGridAPIKey,
			FromEmail: p.cfg.FromEmail,
			FromName:  p.cfg.FromName,
			Host:      p.cfg.SendGridHost,
		}, p.logger), nil
	case ProviderSES:
		if p.cfg.SESClient == nil {
			return nil, fmt.Errorf("%w: SES client unavailable", ErrNotConfigured)
		}
		return NewSESSender(p.cfg.SESClient, SESConfig{
			FromEmail: p.cfg.FromEmail,
			FromName:  p.cfg.FromName,
		}, p.logger), nil
	case ProviderStub:
		return NewStubEmailSender(p.logger), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, p.cfg.Provider)
	}
}
