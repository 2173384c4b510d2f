package providers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/samber/do/v2"

	"pet-spa-booking/internal/platform/config"
	"pet-spa-booking/internal/platform/logger"
	"pet-spa-booking/internal/platform/metrics"
	"pet-spa-booking/internal/platform/ratelimit"
	"pet-spa-booking/internal/router"
)

type HTTPServerHandle struct {
	*http.Server
}

// Shutdown implementa do.Shutdownable.
func (h *HTTPServerHandle) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.Server.Shutdown(ctx)
}

// ProvideHTTPServer arma el router y empieza a escuchar en background.
func ProvideHTTPServer(i do.Injector) (*HTTPServerHandle, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[logger.Logger](i)
	authn := do.MustInvoke[*Auth](i)

	handler := router.NewRouter(router.Options{
		Services:     do.MustInvoke[router.Services](i),
		Log:          log,
		AuthVerifier: authn.Verifier,
		TokenIssuer:  authn.Issuer,
		LoginLimiter: ratelimit.New(cfg.LoginRPS, cfg.LoginBurst),
		Metrics:      do.MustInvoke[*metrics.Metrics](i),
		CORSOrigins:  cfg.CORSOrigins,
		TrustProxy:   cfg.TrustProxy,
	})

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("http server listening", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server stopped", map[string]any{"error": err.Error()})
		}
	}()

	return &HTTPServerHandle{Server: srv}, nil
}
