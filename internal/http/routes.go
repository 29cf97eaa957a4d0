package httpx

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/target/garage-api/config"
	"github.com/target/garage-api/internal/observability/statsd"
	"github.com/target/garage-api/internal/service"
)

// RouterServices holds the services and settings the HTTP router needs.
type RouterServices struct {
	Auth  *service.AuthService
	Users *service.UserService
	Cars  *service.CarService

	Allowlist      *Allowlist
	CookieName     string
	CookieDomain   string
	LoginDelivery  config.LoginDelivery
	AllowedOrigins []string
	Logger         *slog.Logger
	Metrics        statsd.Sink // Optional
}

// NewRouter builds the API handler: middleware, then /healthz, then the gate
// in front of every other route.
func NewRouter(services RouterServices) (http.Handler, error) {
	if services.Auth == nil || services.Users == nil || services.Cars == nil {
		return nil, errors.New("auth, user and car services are required")
	}
	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	api := routeMux{ServeMux: http.NewServeMux(), metrics: services.Metrics}
	authHandlers := &AuthHandlers{
		Svc:          services.Auth,
		CookieName:   services.CookieName,
		CookieDomain: services.CookieDomain,
		Delivery:     services.LoginDelivery,
		Logger:       logger,
	}
	registerAuthRoutes(api, authHandlers)

	users := &UserHandlers{Svc: services.Users, Logger: logger}
	registerCRUD(api, crudRoutes{
		Base:    "/users",
		Create:  users.Create,
		List:    users.List,
		GetByID: users.GetByID,
		Update:  users.Update,
		Delete:  users.Delete,
	})

	cars := &CarHandlers{Svc: services.Cars, Logger: logger}
	registerCRUD(api, crudRoutes{
		Base:    "/cars",
		Create:  cars.Create,
		List:    cars.List,
		GetByID: cars.GetByID,
		Update:  cars.Update,
		Delete:  cars.Delete,
	})
	api.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		WriteError(w, ErrorParams{Code: http.StatusNotFound, ErrCode: "not_found", Err: errors.New("route not found")})
	})

	root := http.NewServeMux()
	root.Handle("GET /healthz", Instrument(services.Metrics, "GET /healthz")(http.HandlerFunc(healthHandler)))
	root.Handle("/", Gate(GateOptions{
		Allowlist:  services.Allowlist,
		Resolver:   services.Auth,
		CookieName: services.CookieName,
		Logger:     logger,
		Metrics:    services.Metrics,
	})(api))

	return Chain(root,
		Logging(logger),
		Recover(logger),
		CORS(services.AllowedOrigins),
	), nil
}

// routeMux registers handlers instrumented under their own pattern.
type routeMux struct {
	*http.ServeMux
	metrics statsd.Sink
}

func (m routeMux) handle(pattern string, h http.Handler) {
	m.Handle(pattern, Instrument(m.metrics, pattern)(h))
}

func registerAuthRoutes(mux routeMux, h *AuthHandlers) {
	mux.handle("POST /users/login", http.HandlerFunc(h.Login))
	mux.handle("POST /users/logout", http.HandlerFunc(h.Logout))
	mux.handle("GET /users/me", http.HandlerFunc(h.Me))
}

type crudRoutes struct {
	Base       string
	Create     http.HandlerFunc
	List       http.HandlerFunc
	GetByID    http.HandlerFunc
	Update     http.HandlerFunc
	Delete     http.HandlerFunc
	Middleware func(http.Handler) http.Handler
}

func registerCRUD(mux routeMux, cfg crudRoutes) {
	if cfg.Base == "" {
		panic("registerCRUD: Base must not be empty") //nolint:forbidigo // Fail fast during server setup.
	}
	if cfg.Create == nil ||
		cfg.List == nil ||
		cfg.GetByID == nil ||
		cfg.Update == nil ||
		cfg.Delete == nil {
		panic("registerCRUD: nil handler for base " + cfg.Base) //nolint:forbidigo // Fail fast during server setup.
	}

	wrap := func(h http.HandlerFunc) http.Handler {
		if cfg.Middleware != nil {
			return cfg.Middleware(h)
		}
		return h
	}
	mux.handle("POST "+cfg.Base, wrap(cfg.Create))
	mux.handle("GET "+cfg.Base, wrap(cfg.List))
	mux.handle("GET "+cfg.Base+"/{id}", wrap(cfg.GetByID))
	mux.handle("PUT "+cfg.Base+"/{id}", wrap(cfg.Update))
	mux.handle("DELETE "+cfg.Base+"/{id}", wrap(cfg.Delete))
}
