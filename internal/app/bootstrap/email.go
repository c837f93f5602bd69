package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"

	appconfig "github.com/wolfman30/portfolio-contact/internal/config"
	"github.com/wolfman30/portfolio-contact/internal/notify"
	"github.com/wolfman30/portfolio-contact/pkg/logging"
)

// AWSConfigLoader loads the shared AWS SDK configuration.
type AWSConfigLoader func(ctx context.Context, cfg *appconfig.Config) (aws.Config, error)

// BuildEmailProvider wires the configured email adapter. AWS configuration is
// only loaded when SES is selected.
func BuildEmailProvider(ctx context.Context, cfg *appconfig.Config, loadAWS AWSConfigLoader, logger *logging.Logger) (*notify.Provider, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	if ctx == nil {
		ctx = context.Background()
	}

	providerCfg := notify.ProviderConfig{
		Provider:       cfg.EmailProvider,
		ResendAPIKey:   cfg.ResendAPIKey,
		SendGridAPIKey: cfg.SendGridAPIKey,
		FromEmail:      cfg.FromEmail,
		FromName:       cfg.FromName,
	}

	if strings.EqualFold(strings.TrimSpace(cfg.EmailProvider), notify.ProviderSES) {
		if loadAWS == nil {
			return nil, fmt.Errorf("bootstrap: aws config loader is required for ses")
		}
		awsCfg, err := loadAWS(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("bootstrap: load aws config: %w", err)
		}
		providerCfg.SESClient = sesv2.NewFromConfig(awsCfg, func(o *sesv2.Options) {
			if endpoint := strings.TrimSpace(cfg.AWSEndpointOverride); endpoint != "" {
				o.BaseEndpoint = aws.String(endpoint)
			}
		})
	}

	provider := notify.NewProvider(providerCfg, logger)
	logger.Info("email provider selected", "provider", provider.Name())
	return provider, nil
}
