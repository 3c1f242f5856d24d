package catalog

import (
	"context"

	"github.com/packmart/backend/internal/domain/catalog"
	"github.com/packmart/backend/internal/infrastructure/telemetry"
)

// CatalogService fronts the hosted catalog gateway for storefront pages.
// It owns no state and adds no caching; every call reaches upstream.
type CatalogService struct {
	gateway catalog.Gateway
}

// NewCatalogService creates a new CatalogService
func NewCatalogService(gateway catalog.Gateway) *CatalogService {
	return &CatalogService{gateway: gateway}
}

// FetchProduct looks up a product by its storefront handle
func (s *CatalogService) FetchProduct(ctx context.Context, handle string) (*catalog.Envelope, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "fetch_product")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrHandle, handle)

	env, err := s.gateway.FetchByHandle(ctx, handle, catalog.KindProduct)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return env, nil
}

// FetchCollection looks up a collection by its storefront handle
func (s *CatalogService) FetchCollection(ctx context.Context, handle string) (*catalog.Envelope, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "fetch_collection")
	defer span.End()
	telemetry.SetAttributes(span, telemetry.SpanAttrHandle, handle)

	env, err := s.gateway.FetchByHandle(ctx, handle, catalog.KindCollection)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return env, nil
}

// Search runs a free-text product search
func (s *CatalogService) Search(ctx context.Context, query string, limit int) (*catalog.Envelope, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "catalog", "search")
	defer span.End()
	telemetry.SetAttributes(span, "query", query, "limit", limit)

	env, err := s.gateway.Search(ctx, query, limit)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	return env, nil
}
