package telemetry

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// UnreadCountProvider reports the current number of unread contact
// messages. Implemented by the contact repository.
type UnreadCountProvider interface {
	UnreadCount(ctx context.Context) (int64, error)
}

// StoreMetrics tracks storefront business metrics: contact inquiry volume,
// hosted-catalog traffic and order flow.
type StoreMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	contactSubmittedTotal *Counter
	contactRepliedTotal   *Counter
	catalogRequestsTotal  *Counter
	catalogDuration       *Histogram
	orderRecordedTotal    *Counter
	orderStatusTotal      *Counter

	contactUnreadGauge *Gauge

	stopChan    chan struct{}
	stopOnce    sync.Once
	collectOnce sync.Once

	unreadProvider UnreadCountProvider
}

// StoreMetricsConfig holds configuration for store metrics
type StoreMetricsConfig struct {
	Meter           metric.Meter
	Logger          *zap.Logger
	CollectInterval time.Duration // Default: 1 minute
	UnreadProvider  UnreadCountProvider
}

// NewStoreMetrics creates a new StoreMetrics instance
func NewStoreMetrics(cfg StoreMetricsConfig) (*StoreMetrics, error) {
	if cfg.Meter == nil {
		return nil, fmt.Errorf("NewStoreMetrics: %w", ErrMeterNil)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	sm := &StoreMetrics{
		meter:          cfg.Meter,
		logger:         logger,
		stopChan:       make(chan struct{}),
		unreadProvider: cfg.UnreadProvider,
	}

	var err error

	sm.contactSubmittedTotal, err = NewCounter(
		cfg.Meter,
		"shop_contact_submitted_total",
		"Total number of contact form submissions",
		"{messages}",
	)
	if err != nil {
		return nil, err
	}

	sm.contactRepliedTotal, err = NewCounter(
		cfg.Meter,
		"shop_contact_replied_total",
		"Total number of operator replies sent",
		"{messages}",
	)
	if err != nil {
		return nil, err
	}

	sm.catalogRequestsTotal, err = NewCounter(
		cfg.Meter,
		"shop_catalog_upstream_requests_total",
		"Total requests to the hosted catalog platform",
		"{requests}",
	)
	if err != nil {
		return nil, err
	}

	sm.catalogDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "shop_catalog_upstream_duration_seconds",
		Description: "Latency of hosted catalog requests",
		Unit:        "s",
		Boundaries:  UpstreamDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	sm.orderRecordedTotal, err = NewCounter(
		cfg.Meter,
		"shop_order_recorded_total",
		"Total number of orders recorded from the hosted platform",
		"{orders}",
	)
	if err != nil {
		return nil, err
	}

	sm.orderStatusTotal, err = NewCounter(
		cfg.Meter,
		"shop_order_status_transitions_total",
		"Total order status transitions",
		"{transitions}",
	)
	if err != nil {
		return nil, err
	}

	sm.contactUnreadGauge, err = NewGauge(
		cfg.Meter,
		"shop_contact_unread_messages",
		"Current number of unread contact messages",
		"{messages}",
	)
	if err != nil {
		return nil, err
	}

	if cfg.UnreadProvider != nil {
		interval := cfg.CollectInterval
		if interval == 0 {
			interval = time.Minute
		}
		sm.startCollector(interval)
	}

	return sm, nil
}

// RecordContactSubmitted counts a contact form submission
func (sm *StoreMetrics) RecordContactSubmitted(ctx context.Context) {
	sm.contactSubmittedTotal.Inc(ctx)
}

// RecordContactReplied counts an operator reply
func (sm *StoreMetrics) RecordContactReplied(ctx context.Context) {
	sm.contactRepliedTotal.Inc(ctx)
}

// RecordCatalogRequest counts a hosted catalog request and its latency.
// kind is "product", "collection" or "search"; outcome is "ok",
// "not_found" or "error".
func (sm *StoreMetrics) RecordCatalogRequest(ctx context.Context, kind, outcome string, duration time.Duration) {
	sm.catalogRequestsTotal.Inc(ctx,
		AttrCatalogKind.String(kind),
		AttrCatalogOutcome.String(outcome),
	)
	sm.catalogDuration.RecordDuration(ctx, duration,
		AttrCatalogKind.String(kind),
		AttrCatalogOutcome.String(outcome),
	)
}

// RecordOrderRecorded counts a newly recorded order
func (sm *StoreMetrics) RecordOrderRecorded(ctx context.Context) {
	sm.orderRecordedTotal.Inc(ctx)
}

// RecordOrderStatusChange counts a fulfilment state transition
func (sm *StoreMetrics) RecordOrderStatusChange(ctx context.Context, status string) {
	sm.orderStatusTotal.Inc(ctx, AttrOrderStatus.String(status))
}

// startCollector starts the periodic unread-count collection loop
func (sm *StoreMetrics) startCollector(interval time.Duration) {
	sm.collectOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for {
				select {
				case <-ticker.C:
					sm.collectUnread()
				case <-sm.stopChan:
					return
				}
			}
		}()
	})
}

func (sm *StoreMetrics) collectUnread() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := sm.unreadProvider.UnreadCount(ctx)
	if err != nil {
		sm.logger.Warn("failed to collect unread message count", zap.Error(err))
		return
	}
	sm.contactUnreadGauge.Record(ctx, count)
}

// Stop stops the periodic collector
func (sm *StoreMetrics) Stop() {
	sm.stopOnce.Do(func() {
		close(sm.stopChan)
	})
}
