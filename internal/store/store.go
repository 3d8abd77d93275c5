package store

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/david-caro/wm-what/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Store struct {
	db *gorm.DB
}

// New opens the database, runs migrations and returns a ready Store.
// seedExamples creates a handful of sample terms on an empty development
// database so the splash page has something to show.
func New(ctx context.Context, driver, dsn string, seedExamples bool) (*Store, error) {
	dialector, err := GetDialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	db = db.WithContext(ctx)

	if err := db.AutoMigrate(
		&models.Term{},
		&models.Definition{},
	); err != nil {
		return nil, err
	}

	store := &Store{db: db}

	if seedExamples {
		if err := store.seedData(ctx); err != nil {
			log.Printf("Warning: failed to seed data: %v", err)
		}
	}

	return store, nil
}

// seedData inserts a few sample terms on an empty database.
func (s *Store) seedData(ctx context.Context) error {
	var termCount int64
	if err := s.db.WithContext(ctx).Model(&models.Term{}).Count(&termCount).Error; err != nil {
		return err
	}
	if termCount > 0 {
		return nil
	}

	samples := []models.Term{
		{Name: "wmcs", Definitions: []models.Definition{
			{Author: "devuser", Content: "Wikimedia Cloud Services."},
		}},
		{Name: "sre", Definitions: []models.Definition{
			{Author: "devuser", Content: "Site Reliability Engineering."},
		}},
	}
	for i := range samples {
		if err := s.db.WithContext(ctx).Create(&samples[i]).Error; err != nil {
			return err
		}
	}
	log.Printf("Seeded %d example terms", len(samples))
	return nil
}

// Term operations

// ListTerms returns terms whose name contains nameFilter as a substring
// (all terms when empty), capped at limit when limit > 0. Results are
// ordered by name ascending so listings are deterministic.
func (s *Store) ListTerms(ctx context.Context, nameFilter string, limit int) ([]models.Term, error) {
	query := s.db.WithContext(ctx).Model(&models.Term{}).Preload("Definitions")
	if nameFilter != "" {
		query = query.Where("name LIKE ?", "%"+nameFilter+"%")
	}
	if limit > 0 {
		query = query.Limit(limit)
	}

	var terms []models.Term
	if err := query.Order("name ASC").Find(&terms).Error; err != nil {
		return nil, err
	}
	return terms, nil
}

// GetTerm retrieves a term by name with its definitions.
func (s *Store) GetTerm(ctx context.Context, name string) (*models.Term, error) {
	var term models.Term
	err := s.db.WithContext(ctx).Preload("Definitions").
		Where("name = ?", name).
		First(&term).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &term, nil
}

// CreateTerm inserts a new term. A duplicate name fails with
// ErrDuplicateTerm; there is no uniqueness pre-check beyond the primary key.
func (s *Store) CreateTerm(ctx context.Context, term *models.Term) error {
	if err := s.db.WithContext(ctx).Create(term).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateTerm
		}
		return fmt.Errorf("failed to create term: %w", err)
	}
	return nil
}

// Definition operations

// GetDefinition retrieves a definition by id.
func (s *Store) GetDefinition(ctx context.Context, id int64) (*models.Definition, error) {
	var definition models.Definition
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&definition).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &definition, nil
}

// CreateDefinition inserts a new definition; the generated id, Created and
// Updated timestamps are populated on the passed struct after the commit.
func (s *Store) CreateDefinition(ctx context.Context, definition *models.Definition) error {
	return s.db.WithContext(ctx).Create(definition).Error
}

// SaveDefinition persists changes to an existing definition, refreshing
// its Updated timestamp.
func (s *Store) SaveDefinition(ctx context.Context, definition *models.Definition) error {
	return s.db.WithContext(ctx).Save(definition).Error
}

// DeleteDefinition removes a definition by id.
func (s *Store) DeleteDefinition(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Delete(&models.Definition{}, id).Error
}

// Health checks the database connection
func (s *Store) Health() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// DB returns the underlying GORM database connection (for transactions)
func (s *Store) DB() *gorm.DB {
	return s.db
}
