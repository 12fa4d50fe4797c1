package directory

import (
	"context"

	"github.com/bizdir/bizdirapi/internal/auth"
	"github.com/bizdir/bizdirapi/internal/db/bunx"
	"github.com/bizdir/bizdirapi/internal/db/models"
	"github.com/bizdir/bizdirapi/internal/repository"
)

// CreateProduct inserts a product after validation.
func (s *Service) CreateProduct(ctx context.Context, product *models.Product) error {
	if err := product.ValidateForCreate(); err != nil {
		return err
	}
	if product.ID == "" {
		product.ID = bunx.NewUUIDv7()
	}
	return s.products.Create(ctx, product)
}

// GetProduct fetches one product with its images.
func (s *Service) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

// ListProducts returns products, optionally narrowed to one business.
func (s *Service) ListProducts(ctx context.Context, businessID string) ([]models.Product, error) {
	var mods []repository.QueryMod
	if businessID != "" {
		mods = append(mods, repository.ForBusiness(businessID))
	}
	return s.products.List(ctx, mods...)
}

// UpdateProduct persists changes to a product the caller's business owns.
func (s *Service) UpdateProduct(ctx context.Context, principal auth.Principal, product *models.Product) error {
	if err := s.authorizeUpdate(ctx, principal, auth.ObjectProduct, product.ID); err != nil {
		return err
	}
	return s.products.Update(ctx, product)
}

// DeleteProduct removes a product.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	return s.products.Delete(ctx, id)
}

// CreateImage records an uploaded product image. The file itself is written
// by the storage layer before this is called.
func (s *Service) CreateImage(ctx context.Context, image *models.ProductImage) error {
	if image.ID == "" {
		image.ID = bunx.NewUUIDv7()
	}
	return s.images.Create(ctx, image)
}

// GetImage fetches one image record.
func (s *Service) GetImage(ctx context.Context, id string) (*models.ProductImage, error) {
	return s.images.GetByID(ctx, id)
}

// ListImages returns image records, optionally narrowed to one product.
func (s *Service) ListImages(ctx context.Context, productID string) ([]models.ProductImage, error) {
	var mods []repository.QueryMod
	if productID != "" {
		mods = append(mods, repository.ForProduct(productID))
	}
	return s.images.List(ctx, mods...)
}

// UpdateImage persists changes to an image record.
func (s *Service) UpdateImage(ctx context.Context, principal auth.Principal, image *models.ProductImage) error {
	if err := s.authorizeUpdate(ctx, principal, auth.ObjectImage, image.ID); err != nil {
		return err
	}
	return s.images.Update(ctx, image)
}

// DeleteImage removes an image record. The file on disk is reaped separately.
func (s *Service) DeleteImage(ctx context.Context, id string) error {
	return s.images.Delete(ctx, id)
}
