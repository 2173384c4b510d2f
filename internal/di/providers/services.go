package providers

import (
	"context"
	"time"

	"github.com/samber/do/v2"

	"pet-spa-booking/internal/adapters/auth/password"
	"pet-spa-booking/internal/domain/schedule"
	"pet-spa-booking/internal/platform/config"
	"pet-spa-booking/internal/platform/logger"
	"pet-spa-booking/internal/router"
)

func ProvideSlotValidator(i do.Injector) (*schedule.Validator, error) {
	cfg := do.MustInvoke[*config.Config](i)
	return schedule.NewValidator(time.Now, cfg.Timezone), nil
}

func ProvideServices(i do.Injector) (router.Services, error) {
	repos := do.MustInvoke[router.Repos](i)
	hasher := do.MustInvoke[*password.Hasher](i)
	slots := do.MustInvoke[*schedule.Validator](i)
	return router.NewServices(repos, hasher, slots), nil
}

// BootstrapAdmin indica si se creó el primer admin en este arranque.
type BootstrapAdmin struct {
	Created bool
}

// ProvideBootstrapAdmin crea el admin inicial si no hay empleados y hay
// credenciales configuradas.
func ProvideBootstrapAdmin(i do.Injector) (*BootstrapAdmin, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[logger.Logger](i)
	svcs := do.MustInvoke[router.Services](i)

	created, err := svcs.Employees.EnsureBootstrapAdmin(context.Background(), cfg.BootstrapAdminEmail, cfg.BootstrapAdminPassword)
	if err != nil {
		return nil, err
	}
	if created {
		log.Info("bootstrap admin created", map[string]any{"email": cfg.BootstrapAdminEmail})
	}
	return &BootstrapAdmin{Created: created}, nil
}
