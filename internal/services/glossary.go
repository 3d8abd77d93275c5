package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/david-caro/wm-what/internal/models"
	"github.com/david-caro/wm-what/internal/store"
)

const (
	maxTermNameLength = 80
	maxContentLength  = 256
)

// Glossary implements the term/definition business rules on top of the
// store: lookups, creation, update with ownership check, deletion.
type Glossary struct {
	db *store.Store
}

// NewGlossary creates a new glossary service.
func NewGlossary(db *store.Store) *Glossary {
	return &Glossary{db: db}
}

// ListTerms returns terms whose name contains nameFilter as a substring
// (all terms when empty), at most limit when limit > 0, ordered by name
// ascending.
func (g *Glossary) ListTerms(ctx context.Context, nameFilter string, limit int) ([]models.Term, error) {
	return g.db.ListTerms(ctx, nameFilter, limit)
}

// GetTerm returns the term with the given name and its definitions, or
// ErrNotFound.
func (g *Glossary) GetTerm(ctx context.Context, name string) (*models.Term, error) {
	term, err := g.db.GetTerm(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unable to find a term with name %q", ErrNotFound, name)
		}
		return nil, err
	}
	return term, nil
}

// GetDefinition returns the definition with the given id, or ErrNotFound.
func (g *Glossary) GetDefinition(ctx context.Context, id int64) (*models.Definition, error) {
	definition, err := g.db.GetDefinition(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unable to find a definition with id %d", ErrNotFound, id)
		}
		return nil, err
	}
	return definition, nil
}

// AddTerm creates a new term with no definitions. A duplicate name fails
// with ErrConflict; the primary-key constraint is the only uniqueness check.
func (g *Glossary) AddTerm(ctx context.Context, name string) (*models.Term, error) {
	if err := validateTermName(name); err != nil {
		return nil, err
	}

	term := &models.Term{Name: name}
	if err := g.db.CreateTerm(ctx, term); err != nil {
		if errors.Is(err, store.ErrDuplicateTerm) {
			return nil, fmt.Errorf("%w: a term with name %q already exists", ErrConflict, name)
		}
		return nil, err
	}
	return g.GetTerm(ctx, name)
}

// AddDefinition attaches a new definition to an existing term. The term must
// pre-exist or ErrNotFound is returned. The created definition is re-read
// after the commit so the generated id and timestamps are populated.
func (g *Glossary) AddDefinition(ctx context.Context, termName, author, content string) (*models.Definition, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}
	if _, err := g.GetTerm(ctx, termName); err != nil {
		return nil, err
	}

	definition := &models.Definition{
		TermName: termName,
		Author:   author,
		Content:  content,
	}
	// single commit, then re-read to pick up the generated id
	if err := g.db.CreateDefinition(ctx, definition); err != nil {
		return nil, err
	}
	return g.GetDefinition(ctx, definition.ID)
}

// UpdateDefinition replaces the content of a definition owned by author.
// It fails with ErrNotFound if the term or the definition is missing, and
// with ErrUnauthorized if author is not the definition's author or the
// definition does not belong to termName. A definition cannot be moved to a
// different term.
func (g *Glossary) UpdateDefinition(
	ctx context.Context,
	termName string,
	definitionID int64,
	author, content string,
) (*models.Definition, error) {
	if err := validateContent(content); err != nil {
		return nil, err
	}
	if _, err := g.GetTerm(ctx, termName); err != nil {
		return nil, err
	}

	current, err := g.GetDefinition(ctx, definitionID)
	if err != nil {
		return nil, err
	}

	if current.Author != author {
		return nil, fmt.Errorf(
			"%w: author %q is not the author of definition %d",
			ErrUnauthorized, author, definitionID,
		)
	}
	if current.TermName != termName {
		return nil, fmt.Errorf(
			"%w: term %q is not the term of definition %d (%s)",
			ErrUnauthorized, termName, definitionID, current.TermName,
		)
	}

	current.Content = content
	if err := g.db.SaveDefinition(ctx, current); err != nil {
		return nil, err
	}
	return g.GetDefinition(ctx, definitionID)
}

// DeleteDefinition removes a definition owned by requestingAuthor. The
// ownership check lives here so no caller can forget it; route-layer checks
// are defense-in-depth only.
func (g *Glossary) DeleteDefinition(ctx context.Context, id int64, requestingAuthor string) error {
	definition, err := g.GetDefinition(ctx, id)
	if err != nil {
		return err
	}
	if definition.Author != requestingAuthor {
		return fmt.Errorf(
			"%w: %q is not the user that created definition %d",
			ErrUnauthorized, requestingAuthor, id,
		)
	}
	return g.db.DeleteDefinition(ctx, id)
}

func validateTermName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: term name must not be empty", ErrValidation)
	}
	if len(name) > maxTermNameLength {
		return fmt.Errorf(
			"%w: term name exceeds %d characters",
			ErrValidation, maxTermNameLength,
		)
	}
	return nil
}

func validateContent(content string) error {
	if content == "" {
		return fmt.Errorf("%w: content must not be empty", ErrValidation)
	}
	if len(content) > maxContentLength {
		return fmt.Errorf(
			"%w: content exceeds %d characters",
			ErrValidation, maxContentLength,
		)
	}
	return nil
}
