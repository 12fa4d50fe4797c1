package repository

import (
	"context"
	"errors"

	"github.com/uptrace/bun"

	"github.com/bizdir/bizdirapi/internal/db/models"
)

// ErrNotFound is wrapped by repositories when a lookup misses. The server
// layer maps it to a 404; a scoped lookup that misses is indistinguishable
// from an absent row.
var ErrNotFound = errors.New("not found")

// QueryMod narrows or orders a select query. Row-scoping filters are
// expressed as mods so the same repository serves admin (unscoped) and
// manager/guest (scoped) callers.
type QueryMod = func(*bun.SelectQuery) *bun.SelectQuery

// UserRepository exposes persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, mods ...QueryMod) ([]models.User, error)
	CountByRole(ctx context.Context, role models.Role) (int, error)
}

// BusinessRepository exposes persistence operations for businesses.
type BusinessRepository interface {
	Create(ctx context.Context, business *models.Business) error
	GetByID(ctx context.Context, id string) (*models.Business, error)
	Update(ctx context.Context, business *models.Business) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, mods ...QueryMod) ([]models.Business, error)
}

// EntityRepository is the generic CRUD contract shared by the remaining
// directory entities (products, images, feedback, replies, job listings).
// One generic implementation replaces the near-duplicate per-entity
// repositories the data model would otherwise require.
type EntityRepository[T any] interface {
	Create(ctx context.Context, item *T) error
	GetByID(ctx context.Context, id string) (*T, error)
	Update(ctx context.Context, item *T) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, mods ...QueryMod) ([]T, error)
}
