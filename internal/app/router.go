package app

import (
	"log/slog"
	"net/http"

	"github.com/heartmarshall/userdict/internal/auth"
	"github.com/heartmarshall/userdict/internal/config"
	"github.com/heartmarshall/userdict/internal/transport/middleware"
	"github.com/heartmarshall/userdict/internal/transport/rest"
)

// NewRouter builds the HTTP handler. The returned cleanup stops background
// work started for the router.
func NewRouter(c *Components, cfg *config.Config, logger *slog.Logger) (http.Handler, func()) {
	health := map[string]rest.Pinger{"storage": c.Store}
	if c.Analyzer != nil {
		health["analyzer"] = c.Analyzer
	}
	healthHandler := rest.NewHealthHandler(health, BuildVersion())
	dict := rest.NewUserDictHandler(c.Service, logger, cfg.Server.MaxBodyBytes)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.CleanupInterval)

	var authenticate, requireAuth middleware.Middleware
	if cfg.Auth.Enabled() {
		authenticate = middleware.Auth(auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer))
		requireAuth = middleware.RequireAuth
	}

	// Mutating routes are rate limited and, when a secret is configured,
	// require a bearer token.
	mutating := middleware.Chain(requireAuth, limiter.Limit(cfg.RateLimit.MutationsPerMinute))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /live", healthHandler.Live)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /health", healthHandler.Health)

	mux.HandleFunc("GET /user_dict", dict.List)
	mux.Handle("POST /user_dict_word", mutating(http.HandlerFunc(dict.Add)))
	mux.Handle("PUT /user_dict_word/{word_uuid}", mutating(http.HandlerFunc(dict.Update)))
	mux.Handle("DELETE /user_dict_word/{word_uuid}", mutating(http.HandlerFunc(dict.Delete)))
	mux.Handle("POST /import_user_dict", mutating(http.HandlerFunc(dict.Import)))
	mux.Handle("POST /user_dict/apply", mutating(http.HandlerFunc(dict.Apply)))

	if c.Analyzer != nil {
		mux.HandleFunc("GET /tokenize", rest.NewTokenizeHandler(c.Analyzer).Tokenize)
	}

	// Logger runs inside Auth so the access log carries the token subject.
	global := middleware.Chain(
		middleware.RequestID(),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		authenticate,
		middleware.Logger(logger),
	)

	return global(mux), limiter.Stop
}
