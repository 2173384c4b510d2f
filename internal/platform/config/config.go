// Package config carga la configuración desde variables de entorno.
// Si existe un archivo .env en el directorio de trabajo se carga primero; las
// variables ya definidas en el entorno tienen prioridad.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

type DBDriver string

const (
	DriverMemory   DBDriver = "memory"
	DriverPostgres DBDriver = "postgres"
	DriverSQLite   DBDriver = "sqlite"
)

type AuthMode string

const (
	AuthDev    AuthMode = "dev"    // headers X-Debug-*
	AuthToken  AuthMode = "token"  // PASETO emitido por /auth/login
	AuthRemote AuthMode = "remote" // IAM externo
)

type Config struct {
	Port string

	DBDriver DBDriver
	DBDSN    string

	LogLevel  string
	LogFormat string
	AppName   string

	Timezone *time.Location

	AuthMode   AuthMode
	TokenKey   string // 64 hex
	TokenTTL   time.Duration
	IAMBaseURL string
	IAMAPIKey  string

	CORSOrigins []string
	TrustProxy  bool // X-Forwarded-For confiable (detrás de un proxy propio)

	LoginRPS   float64
	LoginBurst int

	BootstrapAdminEmail    string
	BootstrapAdminPassword string
}

// Load lee .env (opcional) y el entorno.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	return FromEnv()
}

// FromEnv construye la config solo desde el entorno.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Port:      env("PORT", "8080"),
		DBDSN:     env("DB_DSN", ""),
		LogLevel:  env("LOG_LEVEL", "info"),
		LogFormat: env("LOG_FORMAT", "text"),
		AppName:   env("APP_NAME", "pet-spa-booking"),

		TokenKey:   env("TOKEN_KEY", ""),
		IAMBaseURL: env("IAM_BASE_URL", ""),
		IAMAPIKey:  env("IAM_API_KEY", ""),

		BootstrapAdminEmail:    env("BOOTSTRAP_ADMIN_EMAIL", ""),
		BootstrapAdminPassword: env("BOOTSTRAP_ADMIN_PASSWORD", ""),
	}

	// Sin DB_DRIVER: postgres si hay DSN, memoria si no (como antes con DB_DSN).
	driver := strings.ToLower(env("DB_DRIVER", ""))
	switch {
	case driver == "" && cfg.DBDSN != "":
		cfg.DBDriver = DriverPostgres
	case driver == "":
		cfg.DBDriver = DriverMemory
	default:
		cfg.DBDriver = DBDriver(driver)
	}
	switch cfg.DBDriver {
	case DriverMemory:
	case DriverPostgres, DriverSQLite:
		if cfg.DBDSN == "" {
			return nil, fmt.Errorf("DB_DSN is required for driver %q", cfg.DBDriver)
		}
	default:
		return nil, fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	tz := env("SPA_TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid SPA_TIMEZONE %q: %w", tz, err)
	}
	cfg.Timezone = loc

	// dev acepta cualquier rol por header: tiene que pedirse explícitamente.
	cfg.AuthMode = AuthMode(strings.ToLower(env("AUTH_MODE", string(AuthToken))))
	switch cfg.AuthMode {
	case AuthDev:
	case AuthToken:
		if len(cfg.TokenKey) != 64 {
			return nil, errors.New("TOKEN_KEY must be 64 hex characters in token mode (set AUTH_MODE=dev for local headers)")
		}
	case AuthRemote:
		if cfg.IAMBaseURL == "" || cfg.IAMAPIKey == "" {
			return nil, errors.New("IAM_BASE_URL and IAM_API_KEY are required in remote mode")
		}
	default:
		return nil, fmt.Errorf("unknown AUTH_MODE %q", cfg.AuthMode)
	}

	if cfg.TokenTTL, err = time.ParseDuration(env("TOKEN_TTL", "12h")); err != nil {
		return nil, fmt.Errorf("invalid TOKEN_TTL: %w", err)
	}
	if cfg.LoginRPS, err = strconv.ParseFloat(env("LOGIN_RPS", "1"), 64); err != nil {
		return nil, fmt.Errorf("invalid LOGIN_RPS: %w", err)
	}
	if cfg.LoginBurst, err = strconv.Atoi(env("LOGIN_BURST", "5")); err != nil {
		return nil, fmt.Errorf("invalid LOGIN_BURST: %w", err)
	}

	if cfg.TrustProxy, err = strconv.ParseBool(env("TRUST_PROXY", "false")); err != nil {
		return nil, fmt.Errorf("invalid TRUST_PROXY: %w", err)
	}

	for _, o := range strings.Split(env("CORS_ORIGINS", "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, o)
		}
	}

	return cfg, nil
}

func (c *Config) Addr() string {
	return ":" + c.Port
}

func env(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}
