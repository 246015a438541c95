package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/hongminglow/leads-api/internal/auth"
	"github.com/hongminglow/leads-api/internal/config"
	"github.com/hongminglow/leads-api/internal/http/handlers"
	"github.com/hongminglow/leads-api/internal/logging"
	"github.com/hongminglow/leads-api/internal/middleware"
	"github.com/hongminglow/leads-api/internal/storage"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires up the auth flows, middleware and routes and returns a ready server.
// Invalid auth settings (empty secret, out-of-range cost) are reported here so
// the process fails before it starts listening.
func New(cfg config.Config, store storage.AccountStore, log logging.Logger) (*Server, error) {
	handler, err := NewHandler(cfg, store, log)
	if err != nil {
		return nil, err
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if sl, ok := log.(interface{ Slog() *slog.Logger }); ok {
		httpServer.ErrorLog = slog.NewLogLogger(sl.Slog().Handler(), slog.LevelError)
	}

	return &Server{inner: httpServer}, nil
}

// NewHandler builds the routed handler. Each flow is constructed exactly once here.
func NewHandler(cfg config.Config, store storage.AccountStore, log logging.Logger) (http.Handler, error) {
	hasher, err := auth.NewPasswordHasher(cfg.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("init password hasher: %w", err)
	}
	tokens, err := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTTTL)
	if err != nil {
		return nil, fmt.Errorf("init token manager: %w", err)
	}

	signUp := auth.NewSignUpService(store, hasher)
	signIn, err := auth.NewSignInService(store, hasher, tokens)
	if err != nil {
		return nil, fmt.Errorf("init sign-in: %w", err)
	}

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewAuthHandler(signUp, signIn, log).Register(mux)

	guard := middleware.Authenticate(tokens, log)
	mux.Handle("GET /leads", guard(handlers.NewLeadsHandler(log)))

	var handler http.Handler = mux
	handler = middleware.Recover(log, handler)
	handler = middleware.Logging(log, handler)
	handler = middleware.CORS(cfg.CORSOrigins, []string{handlers.AccessTokenHeader}, handler)
	return handler, nil
}

// Addr is the address the server binds to.
func (s *Server) Addr() string {
	return s.inner.Addr
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
