// Package server provides the HTTP REST API for the resume builder.
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
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/martin/resumeai/internal/ai"
	"github.com/martin/resumeai/internal/config"
	"github.com/martin/resumeai/internal/db"
	"github.com/martin/resumeai/internal/server/middleware"
	"github.com/martin/resumeai/internal/server/ratelimit"
	"github.com/martin/resumeai/internal/types"
)

// freePlanResumeLimit is the number of AI-generated resumes a free user may
// create before generation requires a Pro subscription.
const freePlanResumeLimit = 2

// Database is the persistence surface the server depends on. *db.DB
// satisfies it; tests substitute a mock.
type Database interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdateUser(ctx context.Context, id uuid.UUID, name, phone string) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error

	CreateResume(ctx context.Context, userID uuid.UUID, title string, content json.RawMessage, aiGenerated bool, aiScore int) (uuid.UUID, error)
	GetResume(ctx context.Context, id uuid.UUID) (*db.Resume, error)
	ListResumes(ctx context.Context, userID uuid.UUID) ([]db.Resume, error)
	UpdateResume(ctx context.Context, id uuid.UUID, title string, content json.RawMessage) error
	DeleteResume(ctx context.Context, id uuid.UUID) error
	CountAIResumes(ctx context.Context, userID uuid.UUID) (int, error)

	CreateCoverLetter(ctx context.Context, userID uuid.UUID, title string, content json.RawMessage) (uuid.UUID, error)
	GetCoverLetter(ctx context.Context, id uuid.UUID) (*db.CoverLetter, error)
	ListCoverLetters(ctx context.Context, userID uuid.UUID) ([]db.CoverLetter, error)
	DeleteCoverLetter(ctx context.Context, id uuid.UUID) error

	GetSubscription(ctx context.Context, userID uuid.UUID) (*db.Subscription, error)
	UpsertSubscription(ctx context.Context, userID uuid.UUID, plan, status string) error
}

// ContentGenerator produces AI-generated document content. *ai.Gateway
// satisfies it; tests substitute a stub.
type ContentGenerator interface {
	GenerateResumeContent(ctx context.Context, input types.ResumeInput, provider string) (*ai.GeneratedResume, error)
	GenerateCoverLetterContent(ctx context.Context, input types.CoverLetterInput, provider string) (types.NormalizedContent, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	db          Database
	dbConn      *db.DB
	registry    *ai.Registry
	gateway     ContentGenerator
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
	userService *UserService
	authHandler *AuthHandler
}

// New creates a new server instance
func New(cfg *config.Config) (*Server, error) {
	database, err := db.Connect(context.Background(), cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	registry := ai.NewRegistry()

	s := &Server{
		db:       database,
		dbConn:   database,
		registry: registry,
		gateway:  ai.NewGateway(registry),
	}

	s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())

	passwordConfig, err := config.NewPasswordConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create password config: %w", err)
	}
	s.userService = NewUserService(database, passwordConfig)

	jwtConfig, err := config.NewJWTConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT config: %w", err)
	}
	s.jwtService = NewJWTService(jwtConfig)
	s.authHandler = NewAuthHandler(s.userService, s.jwtService)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.routes(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // AI generation can be slow
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// routes assembles the full handler tree with middleware applied.
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("POST /auth/register", s.authHandler.Register)
	mux.HandleFunc("POST /auth/login", s.authHandler.Login)

	// Provider discovery and document rendering need no account.
	mux.HandleFunc("GET /providers", s.handleListProviders)
	mux.HandleFunc("POST /documents/resume", s.handleRenderResume)

	authed := middleware.Auth(s.jwtService.AsTokenValidator())

	// AI generation endpoints are rate limited per client.
	mux.Handle("POST /resumes/generate", authed(s.withRateLimit(http.HandlerFunc(s.handleGenerateResume))))
	mux.Handle("POST /cover-letters/generate", authed(s.withRateLimit(http.HandlerFunc(s.handleGenerateCoverLetter))))

	// Resume CRUD
	mux.Handle("POST /resumes", authed(http.HandlerFunc(s.handleCreateResume)))
	mux.Handle("GET /resumes", authed(http.HandlerFunc(s.handleListResumes)))
	mux.Handle("GET /resumes/{id}", authed(http.HandlerFunc(s.handleGetResume)))
	mux.Handle("PUT /resumes/{id}", authed(http.HandlerFunc(s.handleUpdateResume)))
	mux.Handle("DELETE /resumes/{id}", authed(http.HandlerFunc(s.handleDeleteResume)))

	// Cover letter CRUD
	mux.Handle("POST /cover-letters", authed(http.HandlerFunc(s.handleCreateCoverLetter)))
	mux.Handle("GET /cover-letters", authed(http.HandlerFunc(s.handleListCoverLetters)))
	mux.Handle("GET /cover-letters/{id}", authed(http.HandlerFunc(s.handleGetCoverLetter)))
	mux.Handle("DELETE /cover-letters/{id}", authed(http.HandlerFunc(s.handleDeleteCoverLetter)))

	// Account
	mux.Handle("GET /users/me", authed(http.HandlerFunc(s.handleGetMe)))
	mux.Handle("PUT /users/me", authed(http.HandlerFunc(s.handleUpdateMe)))
	mux.Handle("PUT /users/me/password", authed(http.HandlerFunc(s.handleUpdatePassword)))
	mux.Handle("GET /users/me/subscription", authed(http.HandlerFunc(s.handleGetSubscription)))

	return s.withLogging(s.withCORS(mux))
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-stop
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}

	if s.dbConn != nil {
		s.dbConn.Close()
	}
	log.Println("Server stopped")
	return nil
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit limits request rate per client IP
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !s.rateLimiter.Allow(s.extractClientID(r)) {
			s.errorResponse(w, http.StatusTooManyRequests, "rate limit exceeded, try again later")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failureResponse maps err to a status and writes the response. Client errors
// keep their specific message; server-side and upstream failures are logged
// and the caller's generic message goes to the client instead, so backend
// payloads and parse causes never leak.
func (s *Server) failureResponse(w http.ResponseWriter, err error, message string) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		log.Printf("Error: %v", err)
		s.errorResponse(w, status, message)
		return
	}
	s.errorResponse(w, status, err.Error())
}

// extractClientID extracts the client identifier (IP) from the request.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
