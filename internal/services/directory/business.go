package directory

import (
	"context"
	"errors"

	"github.com/bizdir/bizdirapi/internal/auth"
	"github.com/bizdir/bizdirapi/internal/db/bunx"
	"github.com/bizdir/bizdirapi/internal/db/models"
	"github.com/bizdir/bizdirapi/internal/repository"
)

var (
	errInvalidEntityType     = errors.New("entity_type is not a known value")
	errInvalidEmploymentType = errors.New("employment_type is not a known value")
)

// CreateBusiness inserts a new listing, assigning its id.
func (s *Service) CreateBusiness(ctx context.Context, business *models.Business) error {
	if business.ID == "" {
		business.ID = bunx.NewUUIDv7()
	}
	return s.businesses.Create(ctx, business)
}

// GetBusiness fetches one listing with its manager loaded.
func (s *Service) GetBusiness(ctx context.Context, id string) (*models.Business, error) {
	return s.businesses.GetByID(ctx, id)
}

// ListBusinesses returns listings; managerID, when set, narrows to one
// manager's holdings.
func (s *Service) ListBusinesses(ctx context.Context, managerID string) ([]models.Business, error) {
	var mods []repository.QueryMod
	if managerID != "" {
		mods = append(mods, repository.BusinessManagedScope(managerID))
	}
	return s.businesses.List(ctx, mods...)
}

// UpdateBusiness persists changes to a listing the caller owns.
func (s *Service) UpdateBusiness(ctx context.Context, principal auth.Principal, business *models.Business) error {
	if err := s.authorizeUpdate(ctx, principal, auth.ObjectBusiness, business.ID); err != nil {
		return err
	}
	if !business.EntityType.Valid() {
		return errInvalidEntityType
	}
	return s.businesses.Update(ctx, business)
}

// DeleteBusiness removes a listing. Child rows stay behind with dangling
// references; scoped queries simply stop matching them.
func (s *Service) DeleteBusiness(ctx context.Context, id string) error {
	return s.businesses.Delete(ctx, id)
}
