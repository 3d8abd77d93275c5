package handlers

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/david-caro/wm-what/internal/metrics"
	"github.com/david-caro/wm-what/internal/middleware"
	"github.com/david-caro/wm-what/internal/services"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupWebRouter(glossary *services.Glossary) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.LoadHTMLGlob("../templates/html/*.html")

	sessionStore := cookie.NewStore([]byte("test-secret"))
	r.Use(sessions.Sessions("test_session", sessionStore))

	r.GET("/test/login/:user", func(c *gin.Context) {
		session := sessions.Default(c)
		session.Set(middleware.SessionUsername, c.Param("user"))
		_ = session.Save()
		c.String(http.StatusOK, "OK")
	})

	h := NewWebHandler(glossary, metrics.NewNoopMetrics())

	r.GET("/", h.Splash)
	r.GET("/search", h.Search)
	r.GET("/term/:name", h.TermPage)

	protected := r.Group("")
	protected.Use(middleware.RequireAuth())
	{
		protected.POST("/term", h.CreateTerm)
		protected.POST("/definition", h.CreateDefinition)
		protected.POST("/definition/:id", h.UpdateDefinition)
		protected.DELETE("/definition", h.DeleteDefinition)
	}

	return r
}

func TestSplash(t *testing.T) {
	glossary := setupTestGlossary(t)
	r := setupWebRouter(glossary)

	_, err := glossary.AddTerm(context.Background(), "wmcs")
	require.NoError(t, err)

	w := doForm(r, http.MethodGet, "/", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "wmcs")
}

func TestSearch(t *testing.T) {
	glossary := setupTestGlossary(t)
	r := setupWebRouter(glossary)
	ctx := context.Background()

	for _, name := range []string{"wmcs", "wm_what", "other"} {
		_, err := glossary.AddTerm(ctx, name)
		require.NoError(t, err)
	}

	t.Run("single match redirects to the term page", func(t *testing.T) {
		w := doForm(r, http.MethodGet, "/search?term_name=other", nil, nil)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/term/other", w.Header().Get("Location"))
	})

	t.Run("multiple matches list results", func(t *testing.T) {
		w := doForm(r, http.MethodGet, "/search?term_name=wm", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "wmcs")
		assert.Contains(t, w.Body.String(), "wm_what")
	})

	t.Run("no match shows example terms", func(t *testing.T) {
		w := doForm(r, http.MethodGet, "/search?term_name=zzz", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "No terms found")
		assert.Contains(t, w.Body.String(), "example terms")
	})
}

func TestTermPage(t *testing.T) {
	glossary := setupTestGlossary(t)
	r := setupWebRouter(glossary)
	ctx := context.Background()

	_, err := glossary.AddTerm(ctx, "wmcs")
	require.NoError(t, err)
	_, err = glossary.AddDefinition(ctx, "wmcs", "alice", "Wikimedia Cloud Services.")
	require.NoError(t, err)

	t.Run("renders the term with definitions", func(t *testing.T) {
		w := doForm(r, http.MethodGet, "/term/wmcs", nil, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Wikimedia Cloud Services.")
		assert.Contains(t, w.Body.String(), "alice")
	})

	t.Run("unknown term yields 404", func(t *testing.T) {
		w := doForm(r, http.MethodGet, "/term/nope", nil, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Contains(t, w.Body.String(), "Term with name 'nope' not found.")
	})
}

func TestCreateTermWeb(t *testing.T) {
	glossary := setupTestGlossary(t)
	r := setupWebRouter(glossary)

	cookies := loginAs(t, r, "alice")

	t.Run("requires a session", func(t *testing.T) {
		w := doForm(r, http.MethodPost, "/term", url.Values{
			"term_name": {"wmcs"},
			"content":   {"Wikimedia Cloud Services."},
		}, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing content yields 403", func(t *testing.T) {
		w := doForm(r, http.MethodPost, "/term", url.Values{
			"term_name": {"wmcs"},
		}, cookies)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "missing content in post payload")
	})

	t.Run("creates the term with its first definition", func(t *testing.T) {
		w := doForm(r, http.MethodPost, "/term", url.Values{
			"term_name": {"wmcs"},
			"content":   {"Wikimedia Cloud Services."},
		}, cookies)
		require.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/term/wmcs", w.Header().Get("Location"))

		term, err := glossary.GetTerm(context.Background(), "wmcs")
		require.NoError(t, err)
		require.Len(t, term.Definitions, 1)
		assert.Equal(t, "alice", term.Definitions[0].Author)
	})

	t.Run("duplicate term yields 409", func(t *testing.T) {
		w := doForm(r, http.MethodPost, "/term", url.Values{
			"term_name": {"wmcs"},
			"content":   {"Another take."},
		}, cookies)
		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestUpdateDefinitionWeb(t *testing.T) {
	glossary := setupTestGlossary(t)
	r := setupWebRouter(glossary)
	ctx := context.Background()

	_, err := glossary.AddTerm(ctx, "wmcs")
	require.NoError(t, err)
	definition, err := glossary.AddDefinition(ctx, "wmcs", "alice", "First take.")
	require.NoError(t, err)

	alice := loginAs(t, r, "alice")

	w := doForm(r, http.MethodPost, "/definition/"+itoa(definition.ID), url.Values{
		"term_name": {"wmcs"},
		"content":   {"Second take."},
	}, alice)
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/term/wmcs", w.Header().Get("Location"))

	got, err := glossary.GetDefinition(ctx, definition.ID)
	require.NoError(t, err)
	assert.Equal(t, "Second take.", got.Content)
}

func TestDeleteDefinitionWeb(t *testing.T) {
	glossary := setupTestGlossary(t)
	r := setupWebRouter(glossary)
	ctx := context.Background()

	_, err := glossary.AddTerm(ctx, "wmcs")
	require.NoError(t, err)
	definition, err := glossary.AddDefinition(ctx, "wmcs", "alice", "Alice's take.")
	require.NoError(t, err)

	alice := loginAs(t, r, "alice")

	t.Run("missing id yields 403", func(t *testing.T) {
		w := doForm(r, http.MethodDelete, "/definition", nil, alice)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "missing id in payload")
	})

	t.Run("owner can delete", func(t *testing.T) {
		w := doForm(r, http.MethodDelete, "/definition?id="+itoa(definition.ID), nil, alice)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Definition deleted", w.Body.String())
	})
}
