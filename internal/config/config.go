package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	// Email dispatch
	EmailProvider   string
	ResendAPIKey    string
	SendGridAPIKey  string
	ContactEmail    string
	FromEmail       string
	FromName        string
	SiteName        string
	DispatchTimeout time.Duration

	// HTTP surface
	CORSAllowedOrigins []string
	ContactRateLimit   int
	ContactRateWindow  time.Duration
	MetricsEnabled     bool

	// Optional Redis store for the contact rate limiter
	RedisAddr     string
	RedisPassword string
	RedisTLS      bool

	// AWS (SES provider)
	AWSRegion           string
	AWSAccessKeyID      string
	AWSSecretAccessKey  string
	AWSEndpointOverride string
}

// Defaults for the contact pipeline.
const (
	DefaultContactEmail = "hello@mikeyoung.ai"
	DefaultFromEmail    = "noreply@mikeyoung.ai"
	DefaultSiteName     = "mikeyoung.ai"
)

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		EmailProvider:   strings.ToLower(strings.TrimSpace(getEnv("EMAIL_PROVIDER", "resend"))),
		ResendAPIKey:    getEnv("RESEND_API_KEY", ""),
		SendGridAPIKey:  getEnv("SENDGRID_API_KEY", ""),
		ContactEmail:    getEnv("CONTACT_EMAIL", DefaultContactEmail),
		FromEmail:       getEnv("CONTACT_FROM_EMAIL", DefaultFromEmail),
		FromName:        getEnv("CONTACT_FROM_NAME", DefaultSiteName),
		SiteName:        getEnv("SITE_NAME", DefaultSiteName),
		DispatchTimeout: getEnvAsDuration("CONTACT_DISPATCH_TIMEOUT", 10*time.Second),

		CORSAllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS"),
		ContactRateLimit:   getEnvAsInt("CONTACT_RATE_LIMIT", 5),
		ContactRateWindow:  getEnvAsDuration("CONTACT_RATE_WINDOW", time.Minute),
		MetricsEnabled:     getEnvAsBool("METRICS_ENABLED", true),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisTLS:      getEnvAsBool("REDIS_TLS", false),

		AWSRegion:           getEnv("AWS_REGION", "us-east-1"),
		AWSAccessKeyID:      getEnv("AWS_ACCESS_KEY_ID", ""),
		AWSSecretAccessKey:  getEnv("AWS_SECRET_ACCESS_KEY", ""),
		AWSEndpointOverride: getEnv("AWS_ENDPOINT_OVERRIDE", ""),
	}
}

// Sender returns the RFC 5322 display form of the configured sender.
func (c *Config) Sender() string {
	if strings.TrimSpace(c.FromName) == "" {
		return c.FromEmail
	}
	return c.FromName + " <" + c.FromEmail + ">"
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsBool retrieves an environment variable as a boolean or returns a default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	if value, err := time.ParseDuration(valueStr); err == nil && value > 0 {
		return value
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	raw := strings.TrimSpace(getEnv(key, ""))
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
