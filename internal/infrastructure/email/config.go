package email

import (
	"errors"
	"strings"
)

// DefaultAPIBaseURL is the hosted email provider's API endpoint
const DefaultAPIBaseURL = "https://api.resend.com"

// Config holds configuration for the transactional email provider
type Config struct {
	// APIBaseURL is the provider endpoint; override for sandboxes and tests
	APIBaseURL string
	// APIKey authenticates against the provider
	APIKey string
	// FromAddress is the sender identity, e.g. "PackMart <no-reply@packmart.tn>"
	FromAddress string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// Errors for email configuration
var (
	ErrEmailConfigMissingAPIKey = errors.New("email: api key is required")
	ErrEmailConfigMissingFrom   = errors.New("email: from address is required")
)

// NewConfig creates a new email configuration with defaults
func NewConfig(apiKey, fromAddress string) *Config {
	return &Config{
		APIBaseURL:     DefaultAPIBaseURL,
		APIKey:         apiKey,
		FromAddress:    fromAddress,
		TimeoutSeconds: 30,
	}
}

// Validate validates the email configuration
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrEmailConfigMissingAPIKey
	}
	if strings.TrimSpace(c.FromAddress) == "" {
		return ErrEmailConfigMissingFrom
	}
	if c.APIBaseURL == "" {
		c.APIBaseURL = DefaultAPIBaseURL
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}
