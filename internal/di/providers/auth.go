package providers

import (
	"github.com/samber/do/v2"

	"pet-spa-booking/internal/adapters/auth/password"
	"pet-spa-booking/internal/adapters/auth/remote"
	"pet-spa-booking/internal/adapters/auth/tokens"
	"pet-spa-booking/internal/domain/employees"
	"pet-spa-booking/internal/platform/config"
	"pet-spa-booking/internal/platform/logger"
	"pet-spa-booking/internal/ports/auth"
)

// Auth: en modo dev ambos son nil; en remote solo hay Verifier.
type Auth struct {
	Verifier auth.AuthVerifier
	Issuer   employees.TokenIssuer
}

func ProvidePasswordHasher(i do.Injector) (*password.Hasher, error) {
	return password.NewHasher(password.DefaultParams), nil
}

func ProvideAuth(i do.Injector) (*Auth, error) {
	cfg := do.MustInvoke[*config.Config](i)

	switch cfg.AuthMode {
	case config.AuthToken:
		svc, err := tokens.NewService(cfg.TokenKey, cfg.TokenTTL)
		if err != nil {
			return nil, err
		}
		return &Auth{Verifier: svc, Issuer: svc}, nil
	case config.AuthRemote:
		v, err := remote.NewVerifier(remote.Config{BaseURL: cfg.IAMBaseURL, APIKey: cfg.IAMAPIKey})
		if err != nil {
			return nil, err
		}
		return &Auth{Verifier: v}, nil
	default:
		log := do.MustInvoke[logger.Logger](i)
		log.Warn("AUTH_MODE=dev: X-Debug-* headers grant any role, never expose this server", map[string]any{
			"headers": []string{"X-Debug-User-ID", "X-Debug-Role", "X-Debug-Owned-ID"},
		})
		return &Auth{}, nil
	}
}
