package store

import (
	"context"
	"testing"

	"github.com/david-caro/wm-what/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(context.Background(), "sqlite", ":memory:", false)
	require.NoError(t, err)
	return s
}

func TestCreateAndGetTerm(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateTerm(ctx, &models.Term{Name: "wmcs"}))

	term, err := s.GetTerm(ctx, "wmcs")
	require.NoError(t, err)
	assert.Equal(t, "wmcs", term.Name)
	assert.Empty(t, term.Definitions)
}

func TestCreateTermDuplicate(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateTerm(ctx, &models.Term{Name: "wmcs"}))

	err := s.CreateTerm(ctx, &models.Term{Name: "wmcs"})
	assert.ErrorIs(t, err, ErrDuplicateTerm)
}

func TestGetTermNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.GetTerm(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestListTerms(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"wm_what", "other", "wmcs"} {
		require.NoError(t, s.CreateTerm(ctx, &models.Term{Name: name}))
	}

	t.Run("returns all terms ordered by name", func(t *testing.T) {
		terms, err := s.ListTerms(ctx, "", 0)
		require.NoError(t, err)
		require.Len(t, terms, 3)
		assert.Equal(t, "other", terms[0].Name)
		assert.Equal(t, "wm_what", terms[1].Name)
		assert.Equal(t, "wmcs", terms[2].Name)
	})

	t.Run("filters by substring", func(t *testing.T) {
		terms, err := s.ListTerms(ctx, "wm", 0)
		require.NoError(t, err)
		require.Len(t, terms, 2)
		assert.Equal(t, "wm_what", terms[0].Name)
		assert.Equal(t, "wmcs", terms[1].Name)
	})

	t.Run("caps results at limit", func(t *testing.T) {
		terms, err := s.ListTerms(ctx, "", 2)
		require.NoError(t, err)
		assert.Len(t, terms, 2)
	})

	t.Run("no match yields empty list", func(t *testing.T) {
		terms, err := s.ListTerms(ctx, "zzz", 0)
		require.NoError(t, err)
		assert.Empty(t, terms)
	})
}

func TestListTermsPreloadsDefinitions(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateTerm(ctx, &models.Term{Name: "wmcs"}))
	require.NoError(t, s.CreateDefinition(ctx, &models.Definition{
		TermName: "wmcs",
		Author:   "alice",
		Content:  "Wikimedia Cloud Services.",
	}))

	terms, err := s.ListTerms(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, terms, 1)
	require.Len(t, terms[0].Definitions, 1)
	assert.Equal(t, "alice", terms[0].Definitions[0].Author)
}

func TestDefinitionLifecycle(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateTerm(ctx, &models.Term{Name: "wmcs"}))

	definition := &models.Definition{
		TermName: "wmcs",
		Author:   "alice",
		Content:  "Wikimedia Cloud Services.",
	}
	require.NoError(t, s.CreateDefinition(ctx, definition))
	require.NotZero(t, definition.ID)

	got, err := s.GetDefinition(ctx, definition.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Author)
	assert.False(t, got.Created.IsZero())

	got.Content = "Updated content."
	require.NoError(t, s.SaveDefinition(ctx, got))

	updated, err := s.GetDefinition(ctx, definition.ID)
	require.NoError(t, err)
	assert.Equal(t, "Updated content.", updated.Content)

	require.NoError(t, s.DeleteDefinition(ctx, definition.ID))
	_, err = s.GetDefinition(ctx, definition.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)
}

func TestSeedData(t *testing.T) {
	s, err := New(context.Background(), "sqlite", ":memory:", true)
	require.NoError(t, err)

	terms, err := s.ListTerms(context.Background(), "", 0)
	require.NoError(t, err)
	assert.NotEmpty(t, terms)

	// Seeding an already populated database must not duplicate anything
	require.NoError(t, s.seedData(context.Background()))
	again, err := s.ListTerms(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Len(t, again, len(terms))
}

func TestGetDialectorUnknownDriver(t *testing.T) {
	_, err := GetDialector("oracle", "whatever")
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	s := setupTestStore(t)
	assert.NoError(t, s.Health())
}
