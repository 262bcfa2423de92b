// Package sharecraft is a social-preview rewriting proxy built with Go and
// Echo. It sits in front of a content origin and serves every visitor the
// original page, except social-media link-preview crawlers, which get the
// page with its Open Graph and Twitter Card metadata replaced by per-path
// overrides managed through an admin dashboard and JSON API.
package sharecraft

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// App is the central sharecraft application. It wires together the
// override store, resolver, rewriter, blob store, KV store, template
// cache, middleware, and routes.
type App struct {
	Config    Config
	Echo      *echo.Echo
	Store     *Store
	Resolver  *Resolver
	Rewriter  *Rewriter
	Templates *TemplateCache
	Blobs     BlobStore
	KV        KV

	originClient    *http.Client
	customRoutes    []func(*App)
	metricsRegistry *prometheus.Registry
}

// New creates a sharecraft App with the given configuration.
func New(cfg Config, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config:       cfg,
		Echo:         echo.New(),
		Rewriter:     NewRewriter(),
		Templates:    newAdminTemplateCache(),
		originClient: &http.Client{Timeout: 30 * time.Second},
	}

	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Start initializes the stores, middleware, and routes, then runs the
// server until it shuts down.
func (a *App) Start() error {
	if err := a.setup(); err != nil {
		return err
	}
	if err := a.Echo.Start(a.Config.Addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// setup wires everything short of listening. Split out so tests can drive
// the Echo instance directly.
func (a *App) setup() error {
	if a.Config.OriginURL == "" {
		return fmt.Errorf("sharecraft: OriginURL is required")
	}
	if a.Config.AdminPassword == "" {
		return fmt.Errorf("sharecraft: AdminPassword is required")
	}

	store, err := NewStore(a.Config.DatabasePath)
	if err != nil {
		return fmt.Errorf("sharecraft: init store: %w", err)
	}
	a.Store = store
	a.Resolver = NewResolver(store)

	if a.KV == nil {
		a.KV = NewMemoryKV(time.Minute)
	}

	if a.Blobs == nil {
		if a.Config.S3.Bucket != "" {
			blobs, err := NewS3BlobStore(context.Background(), a.Config.S3)
			if err != nil {
				return fmt.Errorf("sharecraft: init s3 blob store: %w", err)
			}
			a.Blobs = blobs
		} else {
			blobs, err := NewFSBlobStore(a.Config.UploadsDir)
			if err != nil {
				return fmt.Errorf("sharecraft: init blob store: %w", err)
			}
			a.Blobs = blobs
		}
	}

	a.setupMiddleware()
	a.setupRoutes()

	for _, fn := range a.customRoutes {
		fn(a)
	}
	return nil
}

// setupRoutes registers the four route families. Echo matches static
// prefixes before the catch-all, which gives the required priority: API,
// then admin, then images, then the page pipeline.
func (a *App) setupRoutes() {
	e := a.Echo

	api := e.Group("/api", a.requireSession(false))
	api.GET("/posts", a.handleListPosts)
	api.POST("/posts", a.handleCreatePost)
	api.PUT("/posts/:id", a.handleUpdatePost)
	api.DELETE("/posts/:id", a.handleDeletePost)
	api.POST("/upload", a.handleUpload)

	// The login routes stay outside the gated group.
	e.GET("/admin/login", a.handleLoginPage)
	e.POST("/admin/login", a.handleLogin)

	admin := e.Group("/admin", a.requireSession(true))
	admin.GET("", a.handleDashboard)
	admin.GET("/add", a.handleAddPage)
	admin.GET("/edit", a.handleEditPage)
	admin.POST("/logout", a.handleLogout)

	e.GET("/images/:name", a.handleImage)

	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, a.metricsRegistry},
	}))

	e.GET("/*", a.handlePage)
}

// Close cleans up resources. Call this when the app is shutting down.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
