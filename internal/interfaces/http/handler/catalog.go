package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	catalogapp "github.com/packmart/backend/internal/application/catalog"
	"github.com/packmart/backend/internal/domain/catalog"
	"github.com/packmart/backend/internal/infrastructure/telemetry"
)

// catalogContentType is returned for all proxied catalog payloads. The
// upstream provider always answers JSON; error envelopes are JSON too.
const catalogContentType = "application/json; charset=utf-8"

// CatalogHandler proxies storefront catalog lookups to the hosted commerce
// provider. Responses are passed through as-is so the storefront sees the
// provider's own payload shape.
type CatalogHandler struct {
	BaseHandler
	catalogService *catalogapp.CatalogService
	metrics        *telemetry.StoreMetrics
}

// NewCatalogHandler creates a new CatalogHandler. Metrics may be nil when
// telemetry is disabled.
func NewCatalogHandler(catalogService *catalogapp.CatalogService, metrics *telemetry.StoreMetrics) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		metrics:        metrics,
	}
}

// GetProduct returns a single product by its URL handle
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	start := time.Now()
	envelope, err := h.catalogService.FetchProduct(c.Request.Context(), c.Param("handle"))
	if err != nil {
		h.recordLookup(c, catalog.KindProduct, "invalid", time.Since(start))
		h.HandleError(c, err)
		return
	}

	h.recordLookup(c, catalog.KindProduct, outcomeFor(envelope), time.Since(start))
	h.writeEnvelope(c, envelope)
}

// GetCollection returns a single collection by its URL handle
func (h *CatalogHandler) GetCollection(c *gin.Context) {
	start := time.Now()
	envelope, err := h.catalogService.FetchCollection(c.Request.Context(), c.Param("handle"))
	if err != nil {
		h.recordLookup(c, catalog.KindCollection, "invalid", time.Since(start))
		h.HandleError(c, err)
		return
	}

	h.recordLookup(c, catalog.KindCollection, outcomeFor(envelope), time.Since(start))
	h.writeEnvelope(c, envelope)
}

// Search runs a full-text product search against the provider. The
// parameter is named query; q is accepted as a short alias.
func (h *CatalogHandler) Search(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.BadRequest(c, "limit must be a positive integer")
			return
		}
		limit = parsed
	}

	query := c.Query("query")
	if query == "" {
		query = c.Query("q")
	}

	start := time.Now()
	envelope, err := h.catalogService.Search(c.Request.Context(), query, limit)
	if err != nil {
		h.recordSearch(c, "invalid", time.Since(start))
		h.HandleError(c, err)
		return
	}

	h.recordSearch(c, outcomeFor(envelope), time.Since(start))
	h.writeEnvelope(c, envelope)
}

// RegisterRoutes registers the public catalog routes
func (h *CatalogHandler) RegisterRoutes(rg *gin.RouterGroup) {
	catalogGroup := rg.Group("/catalog")
	{
		catalogGroup.GET("/products/:handle", h.GetProduct)
		catalogGroup.GET("/collections/:handle", h.GetCollection)
		catalogGroup.GET("/search", h.Search)
	}
}

// writeEnvelope relays the envelope verbatim. The envelope status doubles as
// the HTTP status, so a provider 404 stays a 404 for the storefront.
func (h *CatalogHandler) writeEnvelope(c *gin.Context, envelope *catalog.Envelope) {
	c.Data(envelope.Status, catalogContentType, envelope.Body)
}

func (h *CatalogHandler) recordLookup(c *gin.Context, kind catalog.Kind, outcome string, elapsed time.Duration) {
	if h.metrics == nil {
		return
	}
	h.metrics.RecordCatalogRequest(c.Request.Context(), string(kind), outcome, elapsed)
}

func (h *CatalogHandler) recordSearch(c *gin.Context, outcome string, elapsed time.Duration) {
	if h.metrics == nil {
		return
	}
	h.metrics.RecordCatalogRequest(c.Request.Context(), "search", outcome, elapsed)
}

func outcomeFor(envelope *catalog.Envelope) string {
	switch {
	case envelope.Status == http.StatusNotFound:
		return "not_found"
	case envelope.IsError():
		return "upstream_error"
	default:
		return "ok"
	}
}
