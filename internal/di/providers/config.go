// Package providers contiene los providers de DI del servicio.
package providers

import (
	"time"

	"github.com/samber/do/v2"

	"pet-spa-booking/internal/platform/config"
	"pet-spa-booking/internal/platform/logger"
	"pet-spa-booking/internal/platform/metrics"
)

const shutdownTimeout = 15 * time.Second

func ProvideConfig(i do.Injector) (*config.Config, error) {
	return config.Load()
}

func ProvideLogger(i do.Injector) (logger.Logger, error) {
	cfg := do.MustInvoke[*config.Config](i)

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	log.Info("starting", map[string]any{
		"db_driver": string(cfg.DBDriver),
		"auth_mode": string(cfg.AuthMode),
		"timezone":  cfg.Timezone.String(),
	})
	return log, nil
}

func ProvideMetrics(i do.Injector) (*metrics.Metrics, error) {
	return metrics.New(), nil
}
