// Package httpserver exposes the recipe API over HTTP/JSON using gorilla/mux.
package httpserver

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/dmitrijs2005/culinaryshare/internal/logging"
	"github.com/dmitrijs2005/culinaryshare/internal/server/metrics"
	"github.com/dmitrijs2005/culinaryshare/internal/server/models"
	"github.com/dmitrijs2005/culinaryshare/internal/server/services"
)

// UserService is the subset of services.UserService used by the handlers.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*services.Session, error)
	Login(ctx context.Context, email, password string) (*services.Session, error)
	Authenticate(ctx context.Context, token string) (*models.User, error)
	GetProfile(ctx context.Context, userID string) (*models.User, error)
}

// RecipeService is the subset of services.RecipeService used by the handlers.
type RecipeService interface {
	List(ctx context.Context) ([]*models.Recipe, error)
	Get(ctx context.Context, id string) (*models.Recipe, error)
	Create(ctx context.Context, userID string, in models.RecipeInput) (*models.Recipe, error)
	Update(ctx context.Context, userID, id string, upd models.RecipeUpdate) (*models.Recipe, error)
	Delete(ctx context.Context, userID, id string) error
	Save(ctx context.Context, userID, recipeID string) error
	Unsave(ctx context.Context, userID, recipeID string) error
	Saved(ctx context.Context, userID string) ([]*models.Recipe, error)
}

type Server struct {
	address         string
	logger          logging.Logger
	users           UserService
	recipes         RecipeService
	metrics         *metrics.Metrics
	allowedOrigins  []string
	shutdownTimeout time.Duration
	handler         http.Handler
}

// Options carries the server settings that do not come from services.
type Options struct {
	Address         string
	AllowedOrigins  []string
	ShutdownTimeout time.Duration
}

func New(opts Options, l logging.Logger, us UserService, rs RecipeService, m *metrics.Metrics) *Server {
	s := &Server{
		address:         opts.Address,
		logger:          l.With("module", "http_server"),
		users:           us,
		recipes:         rs,
		metrics:         m,
		allowedOrigins:  opts.AllowedOrigins,
		shutdownTimeout: opts.ShutdownTimeout,
	}
	// cors wraps the router so that preflight requests, which match no
	// method route, are still answered.
	s.handler = s.cors(s.routes())
	return s
}

// Handler returns the fully wired router.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.Serve(ctx, listen)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		timeout := s.shutdownTimeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	<-done

	return nil
}
