package middleware

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Session keys shared between the login flow and the guard.
const (
	SessionUsername     = "username"
	SessionAccessToken  = "access_token"
	SessionRefreshToken = "refresh_token"
	SessionOAuthState   = "oauth2_state"
	SessionRedirect     = "login_redirect"
)

// ContextUsername is the gin context key the guard sets for handlers.
const ContextUsername = "username"

// RequireAuth is a middleware that requires a logged-in session. Requests
// without one are rejected with 401 and a pointer at the login entry point;
// otherwise the identity is forwarded to the handler via the context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		username := session.Get(SessionUsername)

		if username == nil {
			c.String(
				http.StatusUnauthorized,
				"Unauthorized, you might want to login first at /login",
			)
			c.Abort()
			return
		}

		c.Set(ContextUsername, username.(string))
		c.Next()
	}
}

// CurrentUsername returns the session identity, or "" when anonymous.
func CurrentUsername(c *gin.Context) string {
	if username, exists := c.Get(ContextUsername); exists {
		return username.(string)
	}
	session := sessions.Default(c)
	if username := session.Get(SessionUsername); username != nil {
		return username.(string)
	}
	return ""
}
