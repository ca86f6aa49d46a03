package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/fedgate/fedgate/internal/fedgate/obs"
	"github.com/fedgate/fedgate/internal/fedgate/service"
	"github.com/fedgate/fedgate/internal/fedgate/store"
	"github.com/fedgate/fedgate/pkg/httpx"
	"github.com/fedgate/fedgate/pkg/slogx"

	_ "github.com/fedgate/fedgate/api/fedgate" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store             store.Store
	FederationService *service.FederationService

	// SuccessRedirect and ErrorRedirect are where the sign-in callback sends
	// the browser after completing (or failing) a federated login.
	SuccessRedirect string
	ErrorRedirect   string
}

func NewRouter(buildVersion string, st store.Store, logger *slog.Logger) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		obs.Instrument,
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerCallback()
	r.registerFederation()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Fedgate Federation Service API
//	@version		0.1.0
//	@description	External identity federation service: redeems OpenID Connect authorization codes against an upstream provider, enriches identities with directory claims, and provisions local accounts.
//
//	@license.name	MIT
//	@license.url	https://opensource.org/licenses/MIT
//
//	@host			localhost:8080
//	@BasePath		/
//
//	@schemes		http https
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerCallback() {
	h := &CallbackHandler{
		FederationService: r.FederationService,
		SuccessRedirect:   r.SuccessRedirect,
		ErrorRedirect:     r.ErrorRedirect,
	}

	// Both methods are strictly limited: each request burns a round-trip to
	// the external provider's token endpoint.
	r.Mux.Handle("GET /signin-oidc",
		httpx.Chain(http.HandlerFunc(h.ServeHTTP),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
	r.Mux.Handle("POST /signin-oidc",
		httpx.Chain(http.HandlerFunc(h.ServeHTTP),
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerFederation() {
	h := &FederationUsersHandler{FederationService: r.FederationService}

	r.Mux.Handle("POST /v1/federation/users",
		httpx.Chain(h,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)

	r.Mux.Handle("GET /metrics", obs.Handler())
}
