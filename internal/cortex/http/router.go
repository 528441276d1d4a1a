package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/cortexhq/cortex/internal/cortex/service"
	"github.com/cortexhq/cortex/internal/cortex/store"
	"github.com/cortexhq/cortex/pkg/httpx"
	"github.com/cortexhq/cortex/pkg/jwtx"
	"github.com/cortexhq/cortex/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store            store.Store
	AuthService      *service.AuthService
	UserService      *service.UserService
	ContentService   *service.ContentService
	EventService     *service.EventService
	TermService      *service.TermService
	BootstrapService *service.BootstrapService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
		httpx.CORS(),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerWelcome()
	r.registerAuth()
	r.registerUsers()
	r.registerContents()
	r.registerEvents()
	r.registerTerms()
	r.registerSystem()
	r.registerBootstrap()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerWelcome() {
	r.Mux.Handle("GET /{$}", WelcomeHandler())

	// GET /api - protected greeting, proves the caller's token verifies
	r.Mux.Handle("GET /api",
		httpx.Chain(APIWelcomeHandler(),
			httpx.TokenMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAuth() {
	// POST /api/authenticate - strict rate limit (credential guessing)
	authHandler := &AuthenticateHandler{AuthService: r.AuthService}
	r.Mux.Handle("POST /api/authenticate",
		httpx.Chain(authHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// GET /api/user - echoes the verified claims back to the caller
	r.Mux.Handle("GET /api/user",
		httpx.Chain(TokenInfoHandler(),
			httpx.TokenMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)

	// GET /api/me - full record for the authenticated user
	meHandler := &MeHandler{UserService: r.UserService}
	r.Mux.Handle("GET /api/me",
		httpx.Chain(meHandler,
			httpx.TokenMiddleware(r.verifier),
			httpx.RequireUser(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	// Listing every account is a dashboard-only operation.
	r.Mux.Handle("GET /api/users",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.TokenMiddleware(r.verifier),
			httpx.RequireDashEntry(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("GET /api/users/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.TokenMiddleware(r.verifier),
			httpx.RequireUser(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("POST /api/users",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.TokenMiddleware(r.verifier),
			httpx.RequireUser(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /api/users/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.TokenMiddleware(r.verifier),
			httpx.RequireUser(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /api/users/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.TokenMiddleware(r.verifier),
			httpx.RequireDashEntry(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerContents() {
	h := &ContentsHandler{ContentService: r.ContentService}

	r.Mux.Handle("GET /api/contents",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.TokenMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /api/contents/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.TokenMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /api/contents",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.TokenMiddleware(r.verifier),
			httpx.RequireUser(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /api/contents/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.TokenMiddleware(r.verifier),
			httpx.RequireUser(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /api/contents/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.TokenMiddleware(r.verifier),
			httpx.RequireUser(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerEvents() {
	h := &EventsHandler{EventService: r.EventService}

	r.Mux.Handle("GET /api/events",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.TokenMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /api/events/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.TokenMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /api/events",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.TokenMiddleware(r.verifier),
			httpx.RequireUser(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /api/events/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.TokenMiddleware(r.verifier),
			httpx.RequireUser(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /api/events/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.TokenMiddleware(r.verifier),
			httpx.RequireUser(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerTerms() {
	h := &TermsHandler{TermService: r.TermService}

	r.Mux.Handle("GET /api/terms",
		httpx.Chain(http.HandlerFunc(h.HandleList),
			httpx.TokenMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /api/terms/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			httpx.TokenMiddleware(r.verifier),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("POST /api/terms",
		httpx.Chain(http.HandlerFunc(h.HandleCreate),
			httpx.TokenMiddleware(r.verifier),
			httpx.RequireUser(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("PUT /api/terms/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			httpx.TokenMiddleware(r.verifier),
			httpx.RequireUser(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
	r.Mux.Handle("DELETE /api/terms/{id}",
		httpx.Chain(http.HandlerFunc(h.HandleDelete),
			httpx.TokenMiddleware(r.verifier),
			httpx.RequireUser(),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerBootstrap() {
	// POST /api/bootstrap - very strict rate limit by IP (one-time setup endpoint)
	bootstrapHandler := &BootstrapHandler{BootstrapService: r.BootstrapService}
	r.Mux.Handle("POST /api/bootstrap",
		httpx.Chain(bootstrapHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
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
}
