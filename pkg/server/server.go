package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/maximthomas/meetnow-auth/pkg/authn"
	"github.com/maximthomas/meetnow-auth/pkg/config"
	"github.com/maximthomas/meetnow-auth/pkg/controller"
	"github.com/maximthomas/meetnow-auth/pkg/credentials"
	"github.com/maximthomas/meetnow-auth/pkg/log"
	"github.com/maximthomas/meetnow-auth/pkg/middleware"
	"github.com/maximthomas/meetnow-auth/pkg/user"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	cors "github.com/rs/cors/wrapper/gin"
)

const shutdownTimeout = 10 * time.Second

// App holds the wired components of the service.
type App struct {
	Store    user.Store
	Resolver credentials.Resolver
	Manager  *authn.Manager
}

func (a *App) Close() error {
	return user.Close(a.Store)
}

// NewApp connects the configured user store and builds the resolver and
// authentication manager on top of it.
func NewApp(ctx context.Context, conf config.Config) (*App, error) {
	store, err := user.NewStore(ctx, conf.UserDataStore)
	if err != nil {
		return nil, errors.Wrap(err, "error creating user store")
	}
	return newApp(store, conf), nil
}

func newApp(store user.Store, conf config.Config) *App {
	resolver := credentials.NewResolver(store,
		credentials.WithAuthorities(conf.AuthoritiesPolicy()),
		credentials.WithLogger(log.WithField("module", "credentials")),
	)
	return &App{
		Store:    store,
		Resolver: resolver,
		Manager:  authn.NewManager(resolver, log.WithField("module", "authn")),
	}
}

func SetupRouter(conf config.Config, auth controller.Authenticator) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	c := cors.New(cors.Options{
		AllowedOrigins:   conf.Server.Cors.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"Content-Type", middleware.RequestIDHeader},
		AllowCredentials: true,
		Debug:            gin.IsDebugging(),
	})

	router.Use(c, middleware.NewRequestIDMiddleware(), middleware.NewRequestURIMiddleware())
	var lc = controller.NewLoginController(auth, log.Logger())

	v1 := router.Group("/meetnow/v1")
	{
		v1.GET("/health", controller.Health)
		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/login", lc.Login)
		}
	}
	return router
}

// RunServer serves the login API until ctx is cancelled.
func RunServer(ctx context.Context, conf config.Config) error {
	logger := log.WithField("module", "server")
	app, err := NewApp(ctx, conf)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			logger.Warnf("error closing user store %v", err)
		}
	}()

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(conf.Server.Port),
		Handler:           SetupRouter(conf, app.Manager),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("listening on %v", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errors.Wrap(err, "http server failed")
	case <-ctx.Done():
	}

	logger.Info("shutdown signal received")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err = srv.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "graceful shutdown failed")
	}
	logger.Info("server stopped cleanly")
	return nil
}
