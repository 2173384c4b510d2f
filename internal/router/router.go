package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	httpSwagger "github.com/swaggo/http-swagger"

	mem "pet-spa-booking/internal/adapters/storage/memory"
	"pet-spa-booking/internal/adapters/storage/sqlstore"
	"pet-spa-booking/internal/domain/bookings"
	"pet-spa-booking/internal/domain/catalog"
	"pet-spa-booking/internal/domain/clients"
	"pet-spa-booking/internal/domain/employees"
	"pet-spa-booking/internal/domain/pets"
	"pet-spa-booking/internal/domain/rosters"
	"pet-spa-booking/internal/domain/schedule"
	"pet-spa-booking/internal/middleware"
	"pet-spa-booking/internal/platform/logger"
	"pet-spa-booking/internal/platform/metrics"
	"pet-spa-booking/internal/platform/ratelimit"
	"pet-spa-booking/internal/platform/validation"
	"pet-spa-booking/internal/ports/auth"
)

// Repos agrupa los repositorios de todos los módulos.
type Repos struct {
	Clients   clients.Repository
	Pets      pets.Repository
	Employees employees.Repository
	Services  catalog.Repository
	Bookings  bookings.Repository
	Rosters   rosters.Repository
}

// MemoryRepos enlaza los repos en memoria con las cascadas del esquema SQL.
func MemoryRepos() Repos {
	st := mem.NewStore()
	return Repos{
		Clients:   st.Clients,
		Pets:      st.Pets,
		Employees: st.Employees,
		Services:  st.Services,
		Bookings:  st.Bookings,
		Rosters:   st.Rosters,
	}
}

// SQLRepos sirve tanto para Postgres como para SQLite.
func SQLRepos(db *sqlx.DB) Repos {
	return Repos{
		Clients:   sqlstore.NewClientRepo(db),
		Pets:      sqlstore.NewPetRepo(db),
		Employees: sqlstore.NewEmployeeRepo(db),
		Services:  sqlstore.NewServiceRepo(db),
		Bookings:  sqlstore.NewBookingRepo(db),
		Rosters:   sqlstore.NewRosterRepo(db),
	}
}

// Services por módulo, ya cableados entre sí.
type Services struct {
	Clients   *clients.Service
	Pets      *pets.Service
	Employees *employees.Service
	Catalog   *catalog.Catalog
	Bookings  *bookings.Service
	Rosters   *rosters.Service
}

func NewServices(repos Repos, hasher employees.PasswordHasher, slots *schedule.Validator) Services {
	clientsSvc := clients.NewService(repos.Clients)
	petsSvc := pets.NewService(repos.Pets, clientsSvc)
	employeesSvc := employees.NewService(repos.Employees, hasher)
	cat := catalog.NewCatalog(repos.Services)

	return Services{
		Clients:   clientsSvc,
		Pets:      petsSvc,
		Employees: employeesSvc,
		Catalog:   cat,
		Bookings: bookings.NewService(bookings.Deps{
			Repo:      repos.Bookings,
			Pets:      petsSvc,
			Employees: employeesSvc,
			Services:  cat,
			Slots:     slots,
		}),
		Rosters: rosters.NewService(repos.Rosters, employeesSvc, slots),
	}
}

type Options struct {
	Services Services
	Log      logger.Logger

	AuthVerifier auth.AuthVerifier       // nil: modo dev (headers X-Debug-*)
	TokenIssuer  employees.TokenIssuer   // nil: sin /auth/login
	LoginLimiter *ratelimit.KeyedLimiter // opcional

	Metrics     *metrics.Metrics // opcional
	CORSOrigins []string

	// TrustProxy: tomar la IP de X-Forwarded-For/X-Real-IP. Solo detrás de
	// un proxy propio; si no, el cliente elige su clave de rate limit.
	TrustProxy bool
}

func NewRouter(opts Options) http.Handler {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}
	v := validation.New()

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	if opts.TrustProxy {
		r.Use(chimw.RealIP)
	}
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))
	if opts.Metrics != nil {
		r.Use(opts.Metrics.Middleware)
	}
	if len(opts.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: opts.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{
				"Accept", "Authorization", "Content-Type",
				middleware.HeaderDebugUserID, middleware.HeaderDebugRole, middleware.HeaderDebugOwnedID,
			},
			ExposedHeaders: []string{"Retry-After"},
			MaxAge:         300,
		}))
	}

	r.Use(middleware.AuthContext(opts.AuthVerifier, log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics.Handler())
	}
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	svc := opts.Services

	// Rutas por módulo
	clients.RegisterRoutes(r, svc.Clients, v, log)
	pets.RegisterRoutes(r, svc.Pets, v, log)
	employees.RegisterRoutes(r, svc.Employees, v, log)
	catalog.RegisterRoutes(r, svc.Catalog, v, log)
	bookings.RegisterRoutes(r, svc.Bookings, v, log)
	rosters.RegisterRoutes(r, svc.Rosters, v, log)

	if opts.TokenIssuer != nil {
		var limit func(http.Handler) http.Handler
		if opts.LoginLimiter != nil {
			limit = opts.LoginLimiter.Middleware
		}
		employees.RegisterLoginRoute(r, svc.Employees, opts.TokenIssuer, limit, v, log)
	}

	return r
}
