package bootstrap

import (
	"embed"
	"html/template"
	"log"
	"net/http"

	"github.com/david-caro/wm-what/internal/config"
	"github.com/david-caro/wm-what/internal/metrics"
	"github.com/david-caro/wm-what/internal/middleware"
	"github.com/david-caro/wm-what/internal/store"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// setupRouter configures the Gin router with all routes and middleware
func setupRouter(
	cfg *config.Config,
	db *store.Store,
	h handlerSet,
	prometheusMetrics metrics.Recorder,
	templatesFS embed.FS,
) *gin.Engine {
	// Setup Gin mode
	setupGinMode(cfg)
	r := gin.New()

	// Setup middleware
	r.Use(metrics.HTTPMetricsMiddleware(prometheusMetrics))
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(middleware.IPMiddleware())

	// Setup session middleware
	setupSessionMiddleware(r, cfg)

	// Load embedded HTML templates
	loadTemplates(r, templatesFS)

	// Health check endpoint
	r.GET("/health", createHealthCheckHandler(db))

	// Setup metrics endpoint
	setupMetricsEndpoint(r, cfg)

	// Setup all routes
	setupAllRoutes(r, h)

	// Log server startup info
	logServerStartup(cfg)

	return r
}

// setupSessionMiddleware configures session handling middleware
func setupSessionMiddleware(r *gin.Engine, cfg *config.Config) {
	sessionStore := cookie.NewStore([]byte(cfg.SessionSecret))
	sessionStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode, // Lax mode required for OAuth callbacks
	})
	r.Use(sessions.Sessions("wm_what_session", sessionStore))
}

// loadTemplates parses the embedded HTML templates into the renderer
func loadTemplates(r *gin.Engine, templatesFS embed.FS) {
	tmpl, err := template.ParseFS(templatesFS, "internal/templates/html/*.html")
	if err != nil {
		log.Fatalf("Failed to parse templates: %v", err)
	}
	r.SetHTMLTemplate(tmpl)
}

// setupMetricsEndpoint configures the Prometheus metrics endpoint
func setupMetricsEndpoint(r *gin.Engine, cfg *config.Config) {
	switch {
	case !cfg.MetricsEnabled:
		log.Printf("Prometheus metrics disabled")
	default:
		log.Printf("Prometheus metrics enabled at /metrics")
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}
}

// setupAllRoutes configures all application routes
func setupAllRoutes(r *gin.Engine, h handlerSet) {
	// Public web pages
	r.GET("/", h.web.Splash)
	r.GET("/search", h.web.Search)
	r.GET("/term/:name", h.web.TermPage)

	// Login routes
	r.GET("/login", h.auth.Login)
	r.GET("/oauth_callback", h.auth.Callback)
	r.GET("/logout", h.auth.Logout)

	// Protected web routes (require login)
	protected := r.Group("")
	protected.Use(middleware.RequireAuth())
	{
		protected.POST("/term", h.web.CreateTerm)
		protected.POST("/definition", h.web.CreateDefinition)
		protected.POST("/definition/:id", h.web.UpdateDefinition)
		protected.DELETE("/definition", h.web.DeleteDefinition)
	}

	// JSON API routes
	api := r.Group("/api/v1")
	{
		api.GET("/terms", h.api.GetTerms)
		api.GET("/terms/:name", h.api.GetTerm)
		api.GET("/definition/:id", h.api.GetDefinition)
	}

	apiProtected := r.Group("/api/v1")
	apiProtected.Use(middleware.RequireAuth())
	{
		apiProtected.POST("/definition", h.api.CreateDefinition)
		apiProtected.POST("/definition/:id", h.api.UpdateDefinition)
		apiProtected.DELETE("/definition/:id", h.api.DeleteDefinition)
	}
}

// createHealthCheckHandler creates health check endpoint handler
func createHealthCheckHandler(db *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch err := db.Health(); err {
		case nil:
			c.JSON(http.StatusOK, gin.H{
				"status":   "healthy",
				"database": "connected",
			})
		default:
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "unhealthy",
				"database": "disconnected",
			})
		}
	}
}

// setupGinMode sets Gin mode based on environment configuration
func setupGinMode(cfg *config.Config) {
	mode := ginModeMap[cfg.IsProduction()]
	gin.SetMode(mode)
	log.Printf("Gin mode: %s", ginModeLogMessage[cfg.IsProduction()])
}

var ginModeMap = map[bool]string{
	true:  gin.ReleaseMode,
	false: gin.DebugMode,
}

var ginModeLogMessage = map[bool]string{
	true:  "Release (production)",
	false: "Debug (development)",
}

// logServerStartup logs server startup information
func logServerStartup(cfg *config.Config) {
	log.Printf("Glossary server starting on %s", cfg.ServerAddr)
	log.Printf("Splash page: %s/", cfg.BaseURL)
	if cfg.UseLoginBypass() {
		log.Printf("Login bypass enabled, visit %s/login to become the dev user", cfg.BaseURL)
	}
}
