package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"

	"github.com/bizdir/bizdirapi/internal/db/models"
)

// BunBusinessRepository implements BusinessRepository using Bun ORM
type BunBusinessRepository struct {
	db *bun.DB
}

var _ BusinessRepository = (*BunBusinessRepository)(nil)

// NewBunBusinessRepository creates a new Bun-based business repository
func NewBunBusinessRepository(db *bun.DB) *BunBusinessRepository {
	return &BunBusinessRepository{db: db}
}

// Create inserts a new business into the database
func (r *BunBusinessRepository) Create(ctx context.Context, business *models.Business) error {
	if err := business.ValidateForCreate(); err != nil {
		return err
	}
	_, err := r.db.NewInsert().
		Model(business).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create business: %w", err)
	}
	return nil
}

// GetByID retrieves a business with its manager relation loaded.
func (r *BunBusinessRepository) GetByID(ctx context.Context, id string) (*models.Business, error) {
	business := new(models.Business)
	err := r.db.NewSelect().
		Model(business).
		Relation("Manager").
		Where("b.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("business %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("get business by id: %w", err)
	}
	return business, nil
}

// Update updates an existing business
func (r *BunBusinessRepository) Update(ctx context.Context, business *models.Business) error {
	business.UpdatedAt = time.Now()
	result, err := r.db.NewUpdate().
		Model(business).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update business: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("business %s: %w", business.ID, ErrNotFound)
	}
	return nil
}

// Delete removes a business by id. Children are left in place; the platform
// accepts orphaned rows rather than cascading deletes.
func (r *BunBusinessRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.NewDelete().
		Model((*models.Business)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete business: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("business %s: %w", id, ErrNotFound)
	}
	return nil
}

// List retrieves businesses sorted by name, with any scoping mods applied.
func (r *BunBusinessRepository) List(ctx context.Context, mods ...QueryMod) ([]models.Business, error) {
	var businesses []models.Business
	q := r.db.NewSelect().
		Model(&businesses).
		Order("name ASC")
	for _, mod := range mods {
		if mod != nil {
			q = mod(q)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list businesses: %w", err)
	}
	return businesses, nil
}
