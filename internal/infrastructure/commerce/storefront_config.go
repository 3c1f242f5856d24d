package commerce

import (
	"errors"
	"fmt"
	"strings"
)

// StorefrontConfig holds configuration for the hosted Storefront GraphQL API
type StorefrontConfig struct {
	// StoreDomain is the shop's myshopify domain, e.g. "packmart.myshopify.com"
	StoreDomain string
	// AccessToken is the public Storefront API access token
	AccessToken string
	// APIVersion is the Storefront API version, e.g. "2024-10"
	APIVersion string
	// TimeoutSeconds is the HTTP request timeout
	TimeoutSeconds int
}

// DefaultAPIVersion is used when no Storefront API version is configured
const DefaultAPIVersion = "2024-10"

// Errors for Storefront configuration
var (
	ErrStorefrontConfigMissingDomain = errors.New("storefront: store domain is required")
	ErrStorefrontConfigMissingToken  = errors.New("storefront: access token is required")
)

// NewStorefrontConfig creates a new Storefront configuration with defaults
func NewStorefrontConfig(storeDomain, accessToken string) *StorefrontConfig {
	return &StorefrontConfig{
		StoreDomain:    storeDomain,
		AccessToken:    accessToken,
		APIVersion:     DefaultAPIVersion,
		TimeoutSeconds: 30,
	}
}

// Validate validates the Storefront configuration
func (c *StorefrontConfig) Validate() error {
	if strings.TrimSpace(c.StoreDomain) == "" {
		return ErrStorefrontConfigMissingDomain
	}
	if strings.TrimSpace(c.AccessToken) == "" {
		return ErrStorefrontConfigMissingToken
	}
	if c.APIVersion == "" {
		c.APIVersion = DefaultAPIVersion
	}
	if c.TimeoutSeconds <= 0 {
		c.TimeoutSeconds = 30
	}
	return nil
}

// Endpoint returns the GraphQL endpoint URL for the configured shop
func (c *StorefrontConfig) Endpoint() string {
	domain := strings.TrimSuffix(c.StoreDomain, "/")
	if !strings.Contains(domain, "://") {
		domain = "https://" + domain
	}
	return fmt.Sprintf("%s/api/%s/graphql.json", domain, c.APIVersion)
}
