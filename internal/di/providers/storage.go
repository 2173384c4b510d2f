package providers

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/samber/do/v2"

	"pet-spa-booking/internal/adapters/storage/postgres"
	"pet-spa-booking/internal/adapters/storage/sqlite"
	"pet-spa-booking/internal/platform/config"
	"pet-spa-booking/internal/platform/logger"
	"pet-spa-booking/internal/router"
)

// DatabaseHandle: DB es nil con el driver en memoria.
type DatabaseHandle struct {
	DB *sqlx.DB
}

// Shutdown implementa do.Shutdownable.
func (h *DatabaseHandle) Shutdown() error {
	if h.DB == nil {
		return nil
	}
	return h.DB.Close()
}

func ProvideDatabase(i do.Injector) (*DatabaseHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[logger.Logger](i)
	ctx := context.Background()

	var (
		db  *sqlx.DB
		err error
	)
	switch cfg.DBDriver {
	case config.DriverPostgres:
		db, err = postgres.Open(ctx, cfg.DBDSN)
	case config.DriverSQLite:
		db, err = sqlite.Open(ctx, cfg.DBDSN)
	default:
		log.Warn("using in-memory storage; data is lost on restart", nil)
		return &DatabaseHandle{}, nil
	}
	if err != nil {
		return nil, err
	}

	log.Info("database ready", map[string]any{"driver": string(cfg.DBDriver)})
	return &DatabaseHandle{DB: db}, nil
}

func ProvideRepos(i do.Injector) (router.Repos, error) {
	h := do.MustInvoke[*DatabaseHandle](i)
	if h.DB == nil {
		return router.MemoryRepos(), nil
	}
	return router.SQLRepos(h.DB), nil
}
