// Package di arma el grafo de dependencias con samber/do.
package di

import (
	"fmt"

	"github.com/samber/do/v2"

	"pet-spa-booking/internal/di/providers"
)

func NewContainer() *do.RootScope {
	injector := do.New()

	// Infra
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideMetrics)

	// Storage
	do.Provide(injector, providers.ProvideDatabase)
	do.Provide(injector, providers.ProvideRepos)

	// Auth
	do.Provide(injector, providers.ProvidePasswordHasher)
	do.Provide(injector, providers.ProvideAuth)

	// Dominio
	do.Provide(injector, providers.ProvideSlotValidator)
	do.Provide(injector, providers.ProvideServices)
	do.Provide(injector, providers.ProvideBootstrapAdmin)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap fuerza la inicialización en orden; el server queda escuchando.
func Bootstrap(injector *do.RootScope) error {
	if _, err := do.Invoke[*providers.BootstrapAdmin](injector); err != nil {
		return fmt.Errorf("bootstrap admin: %w", err)
	}
	if _, err := do.Invoke[*providers.HTTPServerHandle](injector); err != nil {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}
