package bootstrap

import (
	"context"
	"embed"
	"net/http"

	"github.com/david-caro/wm-what/internal/config"
	"github.com/david-caro/wm-what/internal/metrics"
	"github.com/david-caro/wm-what/internal/services"
	"github.com/david-caro/wm-what/internal/store"

	"github.com/appleboy/graceful"
	"github.com/gin-gonic/gin"
)

// Application holds all initialized components
type Application struct {
	Config *config.Config

	// Core infrastructure
	DB              *store.Store
	MetricsRecorder metrics.Recorder

	// Services
	Glossary *services.Glossary

	// HTTP
	HandlerSet  handlerSet
	Router      *gin.Engine
	Server      *http.Server
	TemplatesFS embed.FS
}

// Run initializes and starts the application
func Run(cfg *config.Config, templatesFS embed.FS) error {
	app := &Application{
		Config:      cfg,
		TemplatesFS: templatesFS,
	}

	// Phase 1: Validate configuration
	validateAllConfiguration(cfg)

	// Phase 2: Initialize infrastructure
	if err := app.initializeInfrastructure(); err != nil {
		return err
	}

	// Phase 3: Initialize business layer
	app.initializeBusinessLayer()

	// Phase 4: Initialize HTTP layer
	app.initializeHTTPLayer()

	// Phase 5: Start server with graceful shutdown
	app.startWithGracefulShutdown()

	return nil
}

// initializeInfrastructure sets up the database and metrics
func (app *Application) initializeInfrastructure() error {
	var err error

	app.DB, err = initializeDatabase(context.Background(), app.Config)
	if err != nil {
		return err
	}

	app.MetricsRecorder = initializeMetrics(app.Config)

	return nil
}

// initializeBusinessLayer sets up services
func (app *Application) initializeBusinessLayer() {
	app.Glossary = services.NewGlossary(app.DB)
}

// initializeHTTPLayer sets up handlers, router, and server
func (app *Application) initializeHTTPLayer() {
	oauthProvider := initializeOAuthProvider(app.Config)
	oauthHTTPClient := createOAuthHTTPClient(app.Config)

	app.HandlerSet = initializeHandlers(
		app.Config,
		app.Glossary,
		oauthProvider,
		oauthHTTPClient,
		app.MetricsRecorder,
	)

	app.Router = setupRouter(
		app.Config,
		app.DB,
		app.HandlerSet,
		app.MetricsRecorder,
		app.TemplatesFS,
	)

	app.Server = createHTTPServer(app.Config, app.Router)
}

// startWithGracefulShutdown starts the server and handles graceful shutdown
func (app *Application) startWithGracefulShutdown() {
	m := graceful.NewManager()

	addServerRunningJob(m, app.Server)
	addServerShutdownJob(m, app.Server)

	// Wait for graceful shutdown
	<-m.Done()
}
