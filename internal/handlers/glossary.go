package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/david-caro/wm-what/internal/metrics"
	"github.com/david-caro/wm-what/internal/middleware"
	"github.com/david-caro/wm-what/internal/models"
	"github.com/david-caro/wm-what/internal/services"

	"github.com/gin-gonic/gin"
)

// GlossaryHandler exposes the term/definition operations as the JSON API.
// It is the single place translating domain errors to HTTP status codes.
type GlossaryHandler struct {
	glossary *services.Glossary
	metrics  metrics.Recorder
}

// NewGlossaryHandler creates a new glossary API handler.
func NewGlossaryHandler(glossary *services.Glossary, m metrics.Recorder) *GlossaryHandler {
	return &GlossaryHandler{glossary: glossary, metrics: m}
}

// statusForError maps a service error to the HTTP status contract:
// NotFound→404, Unauthorized→401, Validation→403, Conflict→409, rest→500.
func statusForError(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrValidation):
		return http.StatusForbidden
	case errors.Is(err, services.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// abortWithServiceError writes the mapped status with the error text as the
// body; unexpected errors get a generic body instead of internals.
func abortWithServiceError(c *gin.Context, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		c.String(status, "Internal server error")
		return
	}
	c.String(status, "%v", err)
}

// GetTerms returns the list of known term names. An optional name_filter
// query selects terms containing it as a substring; limit caps the result.
func (h *GlossaryHandler) GetTerms(c *gin.Context) {
	limit := 0
	if rawLimit := c.Query("limit"); rawLimit != "" {
		if parsed, err := strconv.Atoi(rawLimit); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	terms, err := h.glossary.ListTerms(c.Request.Context(), c.Query("name_filter"), limit)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}

	names := make([]string, 0, len(terms))
	for i := range terms {
		names = append(names, terms[i].Name)
	}
	c.JSON(http.StatusOK, gin.H{"terms": names})
}

// GetTerm returns a term with its definitions.
func (h *GlossaryHandler) GetTerm(c *gin.Context) {
	term, err := h.glossary.GetTerm(c.Request.Context(), c.Param("name"))
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewTermView(term))
}

// GetDefinition returns a single definition.
func (h *GlossaryHandler) GetDefinition(c *gin.Context) {
	id, ok := parseDefinitionID(c, c.Param("id"))
	if !ok {
		return
	}

	definition, err := h.glossary.GetDefinition(c.Request.Context(), id)
	if err != nil {
		abortWithServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.NewDefinitionView(definition))
}

// CreateDefinition attaches a new definition, authored by the session
// identity, to an existing term.
func (h *GlossaryHandler) CreateDefinition(c *gin.Context) {
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

	definition, err := h.glossary.AddDefinition(
		c.Request.Context(),
		termName,
		middleware.CurrentUsername(c),
		content,
	)
	if err != nil {
		h.metrics.RecordDefinitionWrite("create", false)
		abortWithServiceError(c, err)
		return
	}

	h.metrics.RecordDefinitionWrite("create", true)
	c.JSON(http.StatusOK, models.NewDefinitionView(definition))
}

// UpdateDefinition replaces the content of a definition owned by the session
// identity. Definitions cannot change author or move between terms.
func (h *GlossaryHandler) UpdateDefinition(c *gin.Context) {
	id, ok := parseDefinitionID(c, c.Param("id"))
	if !ok {
		return
	}

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

	definition, err := h.glossary.UpdateDefinition(
		c.Request.Context(),
		termName,
		id,
		middleware.CurrentUsername(c),
		content,
	)
	if err != nil {
		h.metrics.RecordDefinitionWrite("update", false)
		abortWithServiceError(c, err)
		return
	}

	h.metrics.RecordDefinitionWrite("update", true)
	c.JSON(http.StatusOK, models.NewDefinitionView(definition))
}

// DeleteDefinition removes a definition owned by the session identity; the
// ownership check is enforced by the service.
func (h *GlossaryHandler) DeleteDefinition(c *gin.Context) {
	id, ok := parseDefinitionID(c, c.Param("id"))
	if !ok {
		return
	}

	err := h.glossary.DeleteDefinition(c.Request.Context(), id, middleware.CurrentUsername(c))
	if err != nil {
		h.metrics.RecordDefinitionWrite("delete", false)
		abortWithServiceError(c, err)
		return
	}

	h.metrics.RecordDefinitionWrite("delete", true)
	c.String(http.StatusOK, "Definition deleted")
}

// parseDefinitionID parses a definition id; a non-numeric id matches no
// definition and is reported as 404 like any other missing one.
func parseDefinitionID(c *gin.Context, raw string) (int64, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.String(http.StatusNotFound, "Unable to find a definition with id %s", raw)
		return 0, false
	}
	return id, true
}
