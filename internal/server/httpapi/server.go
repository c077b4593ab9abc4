// Package httpapi exposes the authentication service over JSON/HTTP. The
// handlers are thin request/response mapping; all decisions live in the
// services package.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/devops25/userauth/internal/logging"
	"github.com/devops25/userauth/internal/server/services"
)

const shutdownTimeout = 5 * time.Second

type Server struct {
	address  string
	auth     *services.AuthService
	sessions *services.SessionService
	log      logging.Logger
}

func NewServer(address string, log logging.Logger, auth *services.AuthService, sessions *services.SessionService) *Server {
	return &Server{
		address:  address,
		auth:     auth,
		sessions: sessions,
		log:      log.With("module", "http_server"),
	}
}

// Router builds the gin engine with all routes mounted.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	api := r.Group("/api/auth")
	api.GET("/ping", s.handlePing)
	api.POST("/register", s.handleRegister)
	api.POST("/login", s.handleLogin)
	api.POST("/logout", s.handleLogout)

	protected := api.Group("")
	protected.Use(s.requireAuth())
	protected.GET("/me", s.handleMe)

	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.address,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.log.Info(ctx, "stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.log.Info(ctx, "starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
