package commerce

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/packmart/backend/internal/domain/catalog"
	"github.com/packmart/backend/internal/domain/shared"
)

// maxResponseSize is the maximum allowed response size from the Storefront API (10MB)
const maxResponseSize = 10 * 1024 * 1024

// defaultSearchLimit caps search results when the caller passes no limit
const defaultSearchLimit = 20

// maxSearchLimit is the Storefront API page-size ceiling
const maxSearchLimit = 250

// Sentinel errors for upstream failures. These never reach API clients;
// the adapter folds them into the envelope and they are logged server-side.
var (
	ErrStorefrontUnavailable     = errors.New("storefront: upstream unavailable")
	ErrStorefrontRequestFailed   = errors.New("storefront: request failed")
	ErrStorefrontInvalidResponse = errors.New("storefront: invalid response")
)

// StorefrontAdapter implements catalog.Gateway against the hosted
// Storefront GraphQL API. Every call reaches upstream; there is no cache.
type StorefrontAdapter struct {
	config     *StorefrontConfig
	httpClient *http.Client
	logger     *zap.Logger
}

// NewStorefrontAdapter creates a new Storefront adapter with the given configuration
func NewStorefrontAdapter(config *StorefrontConfig, logger *zap.Logger) (*StorefrontAdapter, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &StorefrontAdapter{
		config: config,
		httpClient: &http.Client{
			Timeout: time.Duration(config.TimeoutSeconds) * time.Second,
		},
		logger: logger.Named("storefront"),
	}, nil
}

// FetchByHandle looks up a product or collection by its canonical handle.
// The raw handle is normalized first, so percent-encoded and legacy
// double-encoded handles resolve to the same catalog entity.
func (a *StorefrontAdapter) FetchByHandle(ctx context.Context, handle string, kind catalog.Kind) (*catalog.Envelope, error) {
	if !kind.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown catalog kind %q", kind))
	}

	normalized := NormalizeHandle(handle)
	if normalized == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Handle is required")
	}

	query := productByHandleQuery
	rootField := "product"
	if kind == catalog.KindCollection {
		query = collectionByHandleQuery
		rootField = "collection"
	}

	data, err := a.doRequest(ctx, query, map[string]any{"handle": normalized})
	if err != nil {
		a.logger.Error("catalog lookup failed",
			zap.String("handle", normalized),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return catalog.NewErrorEnvelope(http.StatusInternalServerError, "Catalog service unavailable"), nil
	}

	if isNullField(data, rootField) {
		return catalog.NewErrorEnvelope(http.StatusNotFound, fmt.Sprintf("No %s found for handle %q", rootField, normalized)), nil
	}

	return catalog.NewEnvelope(http.StatusOK, data), nil
}

// Search runs a free-text product search upstream. An empty query is
// rejected before any network call is made.
func (a *StorefrontAdapter) Search(ctx context.Context, query string, limit int) (*catalog.Envelope, error) {
	if query == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "Search query is required")
	}
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	data, err := a.doRequest(ctx, searchProductsQuery, map[string]any{
		"query": query,
		"first": limit,
	})
	if err != nil {
		a.logger.Error("catalog search failed", zap.String("query", query), zap.Error(err))
		return catalog.NewErrorEnvelope(http.StatusInternalServerError, "Catalog service unavailable"), nil
	}

	return catalog.NewEnvelope(http.StatusOK, data), nil
}

// doRequest posts a GraphQL query and returns the raw data node
func (a *StorefrontAdapter) doRequest(ctx context.Context, query string, variables map[string]any) (json.RawMessage, error) {
	payload, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("storefront: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.config.Endpoint(), bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("storefront: failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", a.config.AccessToken)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorefrontUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("storefront: failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrStorefrontRequestFailed, resp.StatusCode)
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(body, &gqlResp); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorefrontInvalidResponse, err)
	}
	if len(gqlResp.Errors) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrStorefrontRequestFailed, gqlResp.Errors[0].Message)
	}
	if len(gqlResp.Data) == 0 {
		return nil, fmt.Errorf("%w: missing data node", ErrStorefrontInvalidResponse)
	}

	return gqlResp.Data, nil
}

// isNullField reports whether the named root field of the data node is null
func isNullField(data json.RawMessage, field string) bool {
	var node map[string]json.RawMessage
	if err := json.Unmarshal(data, &node); err != nil {
		return true
	}
	raw, ok := node[field]
	if !ok {
		return true
	}
	return string(bytes.TrimSpace(raw)) == "null"
}

var _ catalog.Gateway = (*StorefrontAdapter)(nil)
