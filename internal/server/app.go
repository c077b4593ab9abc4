// Package server initializes and runs the user service: it wires the
// credential store, the token codec, the revocation registry, and the HTTP
// transport, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/devops25/userauth/internal/logging"
	"github.com/devops25/userauth/internal/server/blacklist"
	"github.com/devops25/userauth/internal/server/config"
	"github.com/devops25/userauth/internal/server/db"
	"github.com/devops25/userauth/internal/server/httpapi"
	"github.com/devops25/userauth/internal/server/password"
	"github.com/devops25/userauth/internal/server/repositories/users"
	"github.com/devops25/userauth/internal/server/services"
	"github.com/devops25/userauth/internal/server/token"
)

type App struct {
	config  *config.Config
	logger  logging.Logger
	revoked *blacklist.Blacklist
	httpSrv *httpapi.Server
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	sl := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(sl)

	conn, err := db.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	codec := token.NewCodec([]byte(cfg.SecretKey), cfg.TokenTTL)
	revoked := blacklist.New(logger)
	hasher := password.NewBcryptHasher(cfg.BcryptCost)

	authService := services.NewAuthService(users.NewPostgresRepository(conn), hasher, codec, logger)
	sessionService := services.NewSessionService(codec, revoked, logger)

	httpSrv := httpapi.NewServer(cfg.EndpointAddr, logger, authService, sessionService)

	return &App{
		config:  cfg,
		logger:  logger,
		revoked: revoked,
		httpSrv: httpSrv,
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.revoked.Run(ctx, app.config.BlacklistPruneInterval)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := app.httpSrv.Run(ctx); err != nil {
			app.logger.Error(ctx, err.Error())
			cancelFunc()
		}
	}()

	wg.Wait()
}
