package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/david-caro/wm-what/internal/auth"
	"github.com/david-caro/wm-what/internal/config"
	"github.com/david-caro/wm-what/internal/metrics"
	"github.com/david-caro/wm-what/internal/middleware"
	"github.com/david-caro/wm-what/internal/util"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
)

const stateLength = 32

// devUsername is the fixed identity established by the development bypass.
const devUsername = "devuser"

// AuthHandler drives the OAuth2 login handshake and the session identity.
type AuthHandler struct {
	provider   *auth.Provider
	cfg        *config.Config
	httpClient *http.Client // custom HTTP client with a finite timeout
	metrics    metrics.Recorder
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(
	provider *auth.Provider,
	cfg *config.Config,
	httpClient *http.Client,
	m metrics.Recorder,
) *AuthHandler {
	return &AuthHandler{
		provider:   provider,
		cfg:        cfg,
		httpClient: httpClient,
		metrics:    m,
	}
}

// Login initiates the OAuth2 handshake: issue a single-use state, bind it to
// the session and redirect the user-agent to the provider's authorize URL.
// In development the real flow is skipped unless FORCE_OAUTH_LOGIN is set.
func (h *AuthHandler) Login(c *gin.Context) {
	session := sessions.Default(c)

	// Remember where to send the user after the callback
	if redirect := c.Query("redirect"); redirect != "" &&
		util.IsRedirectSafe(redirect, h.cfg.BaseURL) {
		session.Set(middleware.SessionRedirect, redirect)
	}

	if h.cfg.UseLoginBypass() {
		if err := session.Save(); err != nil {
			log.Printf("[OAuth] Failed to save session: %v", err)
			c.String(http.StatusInternalServerError, "Failed to save session")
			return
		}
		c.Redirect(http.StatusFound, "/oauth_callback")
		return
	}

	state, err := util.RandomState(stateLength)
	if err != nil {
		log.Printf("[OAuth] Failed to generate state: %v", err)
		c.String(http.StatusInternalServerError, "Failed to initiate OAuth login")
		return
	}

	session.Set(middleware.SessionOAuthState, state)
	if err := session.Save(); err != nil {
		log.Printf("[OAuth] Failed to save session: %v", err)
		c.String(http.StatusInternalServerError, "Failed to save session")
		return
	}

	c.Redirect(http.StatusFound, h.provider.AuthCodeURL(state))
}

// Callback finishes the handshake: validate the state, exchange the code for
// tokens, fetch the identity and establish the session. A missing code is
// recoverable (redirect home); a failed exchange is not and is surfaced to
// the operator.
func (h *AuthHandler) Callback(c *gin.Context) {
	session := sessions.Default(c)

	if h.cfg.UseLoginBypass() {
		session.Set(middleware.SessionUsername, devUsername)
		redirect := popLoginRedirect(session)
		if err := session.Save(); err != nil {
			log.Printf("[OAuth] Failed to save session: %v", err)
			c.String(http.StatusInternalServerError, "Failed to save session")
			return
		}
		h.metrics.RecordLogin("bypass")
		c.Redirect(http.StatusFound, redirect)
		return
	}

	savedState := session.Get(middleware.SessionOAuthState)
	if savedState == nil || c.Query("state") != savedState.(string) {
		h.metrics.RecordOAuthCallback(false)
		c.String(http.StatusUnauthorized, "Invalid state received in oauth2 callback")
		return
	}

	// The state is single-use: drop it the moment it matches so a replayed
	// callback fails the check above.
	session.Delete(middleware.SessionOAuthState)
	if err := session.Save(); err != nil {
		log.Printf("[OAuth] Failed to save session: %v", err)
		c.String(http.StatusInternalServerError, "Failed to save session")
		return
	}

	code := c.Query("code")
	if code == "" {
		log.Printf("[OAuth] Callback failed: no code received")
		c.Redirect(http.StatusFound, "/")
		return
	}

	ctx := context.WithValue(c.Request.Context(), oauth2.HTTPClient, h.httpClient)

	token, err := h.provider.Exchange(ctx, code)
	if err != nil {
		h.metrics.RecordOAuthCallback(false)
		log.Printf("[OAuth] Token request failed: %v", err)
		c.String(http.StatusInternalServerError, "OAuth token request failed")
		return
	}

	profile, err := h.provider.Profile(ctx, token)
	if err != nil {
		h.metrics.RecordOAuthCallback(false)
		log.Printf("[OAuth] Identity request failed: %v", err)
		c.String(http.StatusInternalServerError, "OAuth identity request failed")
		return
	}

	if profile.Blocked {
		h.metrics.RecordLogin("blocked")
		log.Printf("[OAuth] User %q is blocked", profile.Username)
		c.String(http.StatusUnauthorized, "Unauthorized, your user is blocked in wikimedia.")
		return
	}

	session.Set(middleware.SessionAccessToken, token.AccessToken)
	session.Set(middleware.SessionRefreshToken, token.RefreshToken)
	session.Set(middleware.SessionUsername, profile.Username)
	redirect := popLoginRedirect(session)
	if err := session.Save(); err != nil {
		log.Printf("[OAuth] Failed to save session: %v", err)
		c.String(http.StatusInternalServerError, "Failed to save session")
		return
	}

	h.metrics.RecordOAuthCallback(true)
	h.metrics.RecordLogin("success")
	log.Printf("[OAuth] Identity confirmed: %s", profile.Username)
	c.Redirect(http.StatusFound, redirect)
}

// Logout clears all session-held identity and tokens.
func (h *AuthHandler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		log.Printf("[OAuth] Failed to clear session: %v", err)
	}
	h.metrics.RecordLogout()
	c.Redirect(http.StatusFound, "/")
}

// popLoginRedirect consumes the stored post-login redirect, defaulting to
// the splash page.
func popLoginRedirect(session sessions.Session) string {
	redirect := "/"
	if saved := session.Get(middleware.SessionRedirect); saved != nil {
		redirect = saved.(string)
		session.Delete(middleware.SessionRedirect)
	}
	return redirect
}
