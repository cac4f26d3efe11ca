// Package server implements the interview bot HTTP API.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/jialekhooo/interviewbot/internal/config"
	"github.com/jialekhooo/interviewbot/internal/db"
	"github.com/jialekhooo/interviewbot/internal/interview"
	"github.com/jialekhooo/interviewbot/internal/llm"
	"github.com/jialekhooo/interviewbot/internal/server/middleware"
	"github.com/jialekhooo/interviewbot/internal/server/ratelimit"
)

// Server wires the interview controller, database and auth services behind
// an http.Server. The database is optional; when it is absent the /sessions
// and /auth routes are not registered and the interview endpoints run
// stateless.
type Server struct {
	config      *config.Config
	controller  *interview.Controller
	backend     llm.Client
	database    *db.DB
	rateLimiter *ratelimit.Limiter
	auth        *AuthHandler
	jwt         *JWTService
	httpServer  *http.Server
}

// New builds a fully wired server from the merged configuration.
func New(ctx context.Context, cfg *config.Config) (*Server, error) {
	backend, err := llm.NewClient(ctx, llm.DefaultConfig().WithModel(cfg.Model), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("creating generation backend: %w", err)
	}

	controller := interview.NewController(backend)
	if cfg.TimeoutSecs > 0 {
		controller = controller.WithTimeout(time.Duration(cfg.TimeoutSecs) * time.Second)
	}

	s := &Server{
		config:      cfg,
		controller:  controller,
		backend:     backend,
		rateLimiter: ratelimit.NewLimiter(ratelimit.LoadConfig()),
	}

	if cfg.DatabaseURL != "" {
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("connecting to database: %w", err)
		}
		s.database = database

		jwtCfg, err := config.NewJWTConfig()
		if err != nil {
			return nil, err
		}
		pwCfg, err := config.NewPasswordConfig()
		if err != nil {
			return nil, err
		}
		s.jwt = NewJWTService(jwtCfg)
		s.auth = NewAuthHandler(NewUserService(database, pwCfg), s.jwt)
	} else {
		log.Printf("[SERVER] no database configured, running stateless")
	}

	s.httpServer = &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(s.routes()))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s, nil
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /interview/start", s.handleInterviewStart)
	mux.HandleFunc("POST /interview/answer", s.handleInterviewAnswer)
	mux.HandleFunc("POST /interview/feedback", s.handleInterviewFeedback)

	if s.database != nil {
		mux.HandleFunc("POST /auth/register", s.auth.Register)
		mux.HandleFunc("POST /auth/login", s.auth.Login)

		requireAuth := middleware.Auth(s.jwt)
		mux.Handle("PUT /auth/password", requireAuth(http.HandlerFunc(s.auth.UpdatePassword)))
		mux.Handle("POST /sessions", requireAuth(http.HandlerFunc(s.handleCreateSession)))
		mux.Handle("GET /sessions", requireAuth(http.HandlerFunc(s.handleListSessions)))
		mux.Handle("GET /sessions/{id}", requireAuth(http.HandlerFunc(s.handleGetSession)))
		mux.Handle("DELETE /sessions/{id}", requireAuth(http.HandlerFunc(s.handleDeleteSession)))
		mux.Handle("POST /sessions/{id}/turns", requireAuth(http.HandlerFunc(s.handleAddTurn)))
		mux.Handle("GET /sessions/{id}/turns", requireAuth(http.HandlerFunc(s.handleListTurns)))
		mux.Handle("POST /sessions/{id}/feedback", requireAuth(http.HandlerFunc(s.handleSaveFeedback)))
		mux.Handle("GET /sessions/{id}/feedback", requireAuth(http.HandlerFunc(s.handleGetFeedback)))
	}

	return mux
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully.
func (s *Server) Start() error {
	errCh := make(chan error, 1)
	go func() {
		log.Printf("[SERVER] listening on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Printf("[SERVER] received %v, shutting down", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	err := s.httpServer.Shutdown(ctx)
	s.rateLimiter.Stop()
	if s.backend != nil {
		s.backend.Close()
	}
	if s.database != nil {
		s.database.Close()
	}
	return err
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("[HTTP] %s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := extractClientID(r)
		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		setRateLimitHeaders(w, info)
		if !allowed {
			w.Header().Set("Retry-After", strconv.Itoa(int(info.RetryAfter.Seconds())))
			errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// extractClientID identifies the caller for rate limiting, preferring the
// forwarded address set by a reverse proxy.
func extractClientID(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		return fwd
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit < 0 {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(info.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(info.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(info.ResetTime.Unix(), 10))
}

func jsonResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("[HTTP] failed to encode response: %v", err)
	}
}

func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"error": message})
}
