package telemetry

import (
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing
type DBTracingConfig struct {
	Enabled bool
	// WithVariables includes query variables in spans. Leave off in
	// production; contact messages carry personal data.
	WithVariables bool
	DBName        string
}

// DefaultDBTracingConfig returns default configuration for database tracing
func DefaultDBTracingConfig() DBTracingConfig {
	return DBTracingConfig{
		Enabled:       false,
		WithVariables: false,
		DBName:        "postgres",
	}
}

// RegisterDBTracing registers the otelgorm plugin with the given GORM DB
// instance so every query becomes a child span of the request trace.
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{
		otelgorm.WithDBName(cfg.DBName),
	}
	if !cfg.WithVariables {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}

	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.String("db_name", cfg.DBName),
		zap.Bool("with_variables", cfg.WithVariables),
	)
	return nil
}
