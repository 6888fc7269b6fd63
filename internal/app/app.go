package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hulukipedia/gateway/internal/config"
	"github.com/hulukipedia/gateway/internal/database"
	"github.com/hulukipedia/gateway/internal/errors"
	"github.com/hulukipedia/gateway/internal/handlers"
	"github.com/hulukipedia/gateway/internal/httpclient"
	"github.com/hulukipedia/gateway/internal/logger"
	"github.com/hulukipedia/gateway/internal/registry"
	"github.com/hulukipedia/gateway/internal/router"
	"github.com/hulukipedia/gateway/internal/selector"
	"github.com/hulukipedia/gateway/internal/vendors"
)

// App centralizes the application's dependencies and configuration. Every
// field is built before the server accepts traffic and never mutated after.
type App struct {
	Settings    *config.Settings
	Document    *config.Document
	Registry    *registry.Registry
	Resolver    *selector.Resolver
	Upstream    *vendors.Router
	Usage       *database.UsageLogger
	APIHandlers *handlers.APIHandlers
}

// NewApp loads the routing document named by settings and wires every
// dependency. A missing or unparsable document is returned as a
// configuration error.
func NewApp(ctx context.Context, settings *config.Settings) (*App, error) {
	ctx = logger.WithComponent(ctx, logger.ComponentNames.App)
	ctx = logger.WithStage(ctx, logger.LogStages.Initialization)

	doc, err := config.LoadDocument(settings.ConfigPath)
	if err != nil {
		return nil, errors.NewConfigurationError(fmt.Sprintf("failed to load routing configuration: %v", err))
	}

	reg := registry.Build(ctx, doc.ModelList)
	resolver := selector.NewResolver(doc.Defaults)

	httpClients := httpclient.NewFactory(httpclient.Options{Timeout: vendors.DefaultTimeout})
	upstream := vendors.NewRouter(ctx, vendors.NewFactory(httpClients), doc.ModelList)

	usage := database.NewUsageLogger(ctx,
		database.NewDatabaseConfig(settings.MongoURI, settings.ServiceName, settings.Environment))

	logger.Info(ctx, "Application initialized",
		"config_path", settings.ConfigPath,
		"aliases", reg.Len(),
		"routes", upstream.Len(),
		"agent_defaults", len(doc.Defaults),
		"usage_logging", usage.Enabled(),
	)

	return &App{
		Settings:    settings,
		Document:    doc,
		Registry:    reg,
		Resolver:    resolver,
		Upstream:    upstream,
		Usage:       usage,
		APIHandlers: handlers.NewAPIHandlers(reg, resolver, upstream, usage),
	}, nil
}

// SetupRoutes returns the HTTP handler for the application
func (a *App) SetupRoutes() http.Handler {
	return router.SetupRoutes(a.APIHandlers, router.Options{EnableSwagger: a.Settings.EnableSwagger})
}

// Close flushes pending usage records and releases the database connection.
func (a *App) Close(ctx context.Context) error {
	return a.Usage.Close(ctx)
}
