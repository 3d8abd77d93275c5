package bootstrap

import (
	"log"

	"github.com/david-caro/wm-what/internal/config"
)

// validateAllConfiguration validates all configuration settings
func validateAllConfiguration(cfg *config.Config) {
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	if cfg.UseLoginBypass() {
		log.Printf("Development login bypass active, logins resolve to the dev user")
	}
	if !cfg.UseLoginBypass() && (cfg.OAuthClientID == "" || cfg.OAuthClientSecret == "") {
		log.Printf("Warning: OAuth login enabled but CLIENT_ID or CLIENT_SECRET missing")
	}
}
