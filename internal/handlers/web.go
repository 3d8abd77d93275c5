package handlers

import (
	"net/http"
	"net/url"
	"strconv"

	"github.com/david-caro/wm-what/internal/metrics"
	"github.com/david-caro/wm-what/internal/middleware"
	"github.com/david-caro/wm-what/internal/models"
	"github.com/david-caro/wm-what/internal/services"

	"github.com/gin-gonic/gin"
)

// How many terms the splash and empty search pages show as examples.
const exampleTermsLimit = 25

// WebHandler renders the HTML surface. Write routes re-validate the required
// form fields independently of the service's own validation.
type WebHandler struct {
	glossary *services.Glossary
	metrics  metrics.Recorder
}

// NewWebHandler creates a new web handler.
func NewWebHandler(glossary *services.Glossary, m metrics.Recorder) *WebHandler {
	return &WebHandler{glossary: glossary, metrics: m}
}

// Splash renders the home page with a handful of example terms.
func (h *WebHandler) Splash(c *gin.Context) {
	terms, err := h.glossary.ListTerms(c.Request.Context(), "", exampleTermsLimit)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	c.HTML(http.StatusOK, "splash.html", gin.H{
		"ExampleTerms": termViews(terms),
		"User":         middleware.CurrentUsername(c),
	})
}

// Search lists terms matching the given substring. A single hit goes
// straight to the term page.
func (h *WebHandler) Search(c *gin.Context) {
	searchValue := c.Query("term_name")
	terms, err := h.glossary.ListTerms(c.Request.Context(), searchValue, 0)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	if len(terms) == 1 {
		c.Redirect(http.StatusFound, termPath(terms[0].Name))
		return
	}

	var exampleTerms []models.TermView
	if len(terms) == 0 {
		examples, err := h.glossary.ListTerms(c.Request.Context(), "", exampleTermsLimit)
		if err != nil {
			abortWithServiceError(c, err)
			return
		}
		exampleTerms = termViews(examples)
	}

	exactMatch := false
	for i := range terms {
		if terms[i].Name == searchValue {
			exactMatch = true
			break
		}
	}

	c.HTML(http.StatusOK, "search_results.html", gin.H{
		"Terms":        termViews(terms),
		"SearchValue":  searchValue,
		"ExampleTerms": exampleTerms,
		"ExactMatch":   exactMatch,
		"User":         middleware.CurrentUsername(c),
	})
}

// TermPage renders a term with all its definitions.
func (h *WebHandler) TermPage(c *gin.Context) {
	name := c.Param("name")
	term, err := h.glossary.GetTerm(c.Request.Context(), name)
	if err != nil {
		c.String(http.StatusNotFound, "Term with name '%s' not found.", name)
		return
	}

	username := middleware.CurrentUsername(c)
	hasDefinition := false
	for i := range term.Definitions {
		if term.Definitions[i].Author == username && username != "" {
			hasDefinition = true
			break
		}
	}

	c.HTML(http.StatusOK, "term.html", gin.H{
		"Term":          models.NewTermView(term),
		"HasDefinition": hasDefinition,
		"User":          username,
	})
}

// CreateTerm creates a term together with its first definition.
func (h *WebHandler) CreateTerm(c *gin.Context) {
	termName := c.PostForm("term_name")
	content := c.PostForm("content")
	if termName == "" {
		c.String(http.StatusForbidden, "Bad request, missing term_name in post payload")
		return
	}
	if content == "" {
		c.String(http.StatusForbidden, "Bad request, missing content in post payload")
		return
	}

	ctx := c.Request.Context()
	if _, err := h.glossary.AddTerm(ctx, termName); err != nil {
		abortWithServiceError(c, err)
		return
	}

	author := middleware.CurrentUsername(c)
	if _, err := h.glossary.AddDefinition(ctx, termName, author, content); err != nil {
		h.metrics.RecordDefinitionWrite("create", false)
		abortWithServiceError(c, err)
		return
	}

	h.metrics.RecordDefinitionWrite("create", true)
	c.Redirect(http.StatusFound, termPath(termName))
}

// CreateDefinition attaches a definition to an existing term.
func (h *WebHandler) CreateDefinition(c *gin.Context) {
	termName := c.PostForm("term_name")
	content := c.PostForm("content")
	if termName == "" {
		c.String(http.StatusForbidden, "Bad request, missing term_name in post payload")
		return
	}
	if content == "" {
		c.String(http.StatusForbidden, "Bad request, missing content in post payload")
		return
	}

	author := middleware.CurrentUsername(c)
	if _, err := h.glossary.AddDefinition(c.Request.Context(), termName, author, content); err != nil {
		h.metrics.RecordDefinitionWrite("create", false)
		abortWithServiceError(c, err)
		return
	}

	h.metrics.RecordDefinitionWrite("create", true)
	c.Redirect(http.StatusFound, termPath(termName))
}

// UpdateDefinition replaces the content of one of the user's definitions and
// returns to the term page.
func (h *WebHandler) UpdateDefinition(c *gin.Context) {
	termName := c.PostForm("term_name")
	content := c.PostForm("content")
	if termName == "" {
		c.String(http.StatusForbidden, "Bad request, missing term_name in post payload")
		return
	}
	if content == "" {
		c.String(http.StatusForbidden, "Bad request, missing content in post payload")
		return
	}

	id, ok := parseDefinitionID(c, c.Param("id"))
	if !ok {
		return
	}

	author := middleware.CurrentUsername(c)
	if _, err := h.glossary.UpdateDefinition(c.Request.Context(), termName, id, author, content); err != nil {
		h.metrics.RecordDefinitionWrite("update", false)
		abortWithServiceError(c, err)
		return
	}

	h.metrics.RecordDefinitionWrite("update", true)
	c.Redirect(http.StatusFound, termPath(termName))
}

// DeleteDefinition removes one of the user's definitions; the id comes in as
// a query parameter on this surface.
func (h *WebHandler) DeleteDefinition(c *gin.Context) {
	rawID := c.Query("id")
	if rawID == "" {
		c.String(http.StatusForbidden, "Bad request, missing id in payload")
		return
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "Unable to find a definition with id %s", rawID)
		return
	}

	author := middleware.CurrentUsername(c)
	if err := h.glossary.DeleteDefinition(c.Request.Context(), id, author); err != nil {
		h.metrics.RecordDefinitionWrite("delete", false)
		abortWithServiceError(c, err)
		return
	}

	h.metrics.RecordDefinitionWrite("delete", true)
	c.String(http.StatusOK, "Definition deleted")
}

func termPath(name string) string {
	return "/term/" + url.PathEscape(name)
}

func termViews(terms []models.Term) []models.TermView {
	views := make([]models.TermView, 0, len(terms))
	for i := range terms {
		views = append(views, models.NewTermView(&terms[i]))
	}
	return views
}
