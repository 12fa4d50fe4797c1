package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// BunEntityRepository implements EntityRepository for any bun model type.
type BunEntityRepository[T any] struct {
	db        *bun.DB
	entity    string
	relations []string
	order     string
}

// RepoOption customises a generic repository at construction time.
type RepoOption[T any] func(*BunEntityRepository[T])

// WithRelations preloads the named bun relations on reads.
func WithRelations[T any](relations ...string) RepoOption[T] {
	return func(r *BunEntityRepository[T]) {
		r.relations = relations
	}
}

// WithOrder overrides the default "created_at DESC" list ordering.
func WithOrder[T any](order string) RepoOption[T] {
	return func(r *BunEntityRepository[T]) {
		r.order = order
	}
}

// NewBunEntityRepository creates a generic Bun-backed repository. The entity
// name is used in error messages only.
func NewBunEntityRepository[T any](db *bun.DB, entity string, opts ...RepoOption[T]) *BunEntityRepository[T] {
	r := &BunEntityRepository[T]{
		db:     db,
		entity: entity,
		order:  "created_at DESC",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Create inserts a new record.
func (r *BunEntityRepository[T]) Create(ctx context.Context, item *T) error {
	_, err := r.db.NewInsert().
		Model(item).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("create %s: %w", r.entity, err)
	}
	return nil
}

// GetByID retrieves a record by primary key, preloading configured relations.
func (r *BunEntityRepository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	item := new(T)
	q := r.db.NewSelect().
		Model(item).
		Where("?TableAlias.id = ?", id)
	for _, rel := range r.relations {
		q = q.Relation(rel)
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s %s: %w", r.entity, id, ErrNotFound)
		}
		return nil, fmt.Errorf("get %s by id: %w", r.entity, err)
	}
	return item, nil
}

// Update persists all columns of an existing record.
func (r *BunEntityRepository[T]) Update(ctx context.Context, item *T) error {
	result, err := r.db.NewUpdate().
		Model(item).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("update %s: %w", r.entity, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", r.entity, ErrNotFound)
	}
	return nil
}

// Delete removes a record by primary key.
func (r *BunEntityRepository[T]) Delete(ctx context.Context, id string) error {
	result, err := r.db.NewDelete().
		Model((*T)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("delete %s: %w", r.entity, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s %s: %w", r.entity, id, ErrNotFound)
	}
	return nil
}

// List retrieves records, newest first by default, with any row-scoping
// mods applied on top.
func (r *BunEntityRepository[T]) List(ctx context.Context, mods ...QueryMod) ([]T, error) {
	var items []T
	q := r.db.NewSelect().
		Model(&items).
		Order(r.order)
	for _, rel := range r.relations {
		q = q.Relation(rel)
	}
	for _, mod := range mods {
		if mod != nil {
			q = mod(q)
		}
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("list %s: %w", r.entity, err)
	}
	return items, nil
}
