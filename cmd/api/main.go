package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	_ "pet-spa-booking/docs"
	"pet-spa-booking/internal/di"
	"pet-spa-booking/internal/platform/logger"
)

// @title Pet Spa Booking API
// @version 1.0
// @description Reservas y turnos de una spa de mascotas.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	injector := di.NewContainer()

	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "failed to start: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[logger.Logger](injector)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down", nil)
	if err := injector.Shutdown(); err != nil {
		log.Error("shutdown error", map[string]any{"error": err})
	}
}
