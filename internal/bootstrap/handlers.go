package bootstrap

import (
	"log"
	"net/http"

	"github.com/david-caro/wm-what/internal/auth"
	"github.com/david-caro/wm-what/internal/config"
	"github.com/david-caro/wm-what/internal/handlers"
	"github.com/david-caro/wm-what/internal/metrics"
	"github.com/david-caro/wm-what/internal/services"
)

// handlerSet groups all HTTP handlers
type handlerSet struct {
	auth *handlers.AuthHandler
	api  *handlers.GlossaryHandler
	web  *handlers.WebHandler
}

// initializeHandlers creates all HTTP handlers
func initializeHandlers(
	cfg *config.Config,
	glossary *services.Glossary,
	provider *auth.Provider,
	oauthHTTPClient *http.Client,
	m metrics.Recorder,
) handlerSet {
	return handlerSet{
		auth: handlers.NewAuthHandler(provider, cfg, oauthHTTPClient, m),
		api:  handlers.NewGlossaryHandler(glossary, m),
		web:  handlers.NewWebHandler(glossary, m),
	}
}

// initializeOAuthProvider creates the identity provider client
func initializeOAuthProvider(cfg *config.Config) *auth.Provider {
	provider := auth.NewProvider(auth.ProviderConfig{
		ClientID:     cfg.OAuthClientID,
		ClientSecret: cfg.OAuthClientSecret,
		RedirectURL:  cfg.BaseURL + "/oauth_callback",
	}, cfg.OAuthBaseURL)

	log.Printf("OAuth provider configured: %s", cfg.OAuthBaseURL)
	return provider
}

// createOAuthHTTPClient creates an HTTP client for OAuth requests with a
// finite timeout so a stuck provider cannot hold callbacks open forever.
func createOAuthHTTPClient(cfg *config.Config) *http.Client {
	return &http.Client{
		Timeout: cfg.OAuthTimeout,
	}
}

// initializeMetrics sets up the metrics recorder
func initializeMetrics(cfg *config.Config) metrics.Recorder {
	m := metrics.Init(cfg.MetricsEnabled)
	if cfg.MetricsEnabled {
		log.Println("Prometheus metrics initialized")
	} else {
		log.Println("Metrics disabled (using noop implementation)")
	}
	return m
}
