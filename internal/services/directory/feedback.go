package directory

import (
	"context"

	"github.com/bizdir/bizdirapi/internal/auth"
	"github.com/bizdir/bizdirapi/internal/db/bunx"
	"github.com/bizdir/bizdirapi/internal/db/models"
	"github.com/bizdir/bizdirapi/internal/repository"
)

// Feedback entities: reviews, complaints and quote requests against a
// business, plus their product-level counterparts. Creation stamps the
// authoring user from the session, never from the payload.

// CreateReview inserts a review authored by the principal.
func (s *Service) CreateReview(ctx context.Context, principal auth.Principal, review *models.Review) error {
	if err := review.ValidateForCreate(); err != nil {
		return err
	}
	if review.ID == "" {
		review.ID = bunx.NewUUIDv7()
	}
	review.UserID = &principal.ID
	return s.reviews.Create(ctx, review)
}

// GetReview fetches one review.
func (s *Service) GetReview(ctx context.Context, id string) (*models.Review, error) {
	return s.reviews.GetByID(ctx, id)
}

// ListReviews returns reviews, optionally narrowed to one business.
func (s *Service) ListReviews(ctx context.Context, businessID string) ([]models.Review, error) {
	var mods []repository.QueryMod
	if businessID != "" {
		mods = append(mods, repository.ForBusiness(businessID))
	}
	return s.reviews.List(ctx, mods...)
}

// UpdateReview persists review changes, typically moderation decisions by
// the business manager.
func (s *Service) UpdateReview(ctx context.Context, principal auth.Principal, review *models.Review) error {
	if err := s.authorizeUpdate(ctx, principal, auth.ObjectReview, review.ID); err != nil {
		return err
	}
	return s.reviews.Update(ctx, review)
}

// DeleteReview removes a review.
func (s *Service) DeleteReview(ctx context.Context, id string) error {
	return s.reviews.Delete(ctx, id)
}

// CreateComplaint inserts a complaint authored by the principal.
func (s *Service) CreateComplaint(ctx context.Context, principal auth.Principal, complaint *models.Complaint) error {
	if err := complaint.ValidateForCreate(); err != nil {
		return err
	}
	if complaint.ID == "" {
		complaint.ID = bunx.NewUUIDv7()
	}
	complaint.UserID = &principal.ID
	return s.complaints.Create(ctx, complaint)
}

// GetComplaint fetches one complaint.
func (s *Service) GetComplaint(ctx context.Context, id string) (*models.Complaint, error) {
	return s.complaints.GetByID(ctx, id)
}

// ListComplaints returns complaints, optionally narrowed to one business.
func (s *Service) ListComplaints(ctx context.Context, businessID string) ([]models.Complaint, error) {
	var mods []repository.QueryMod
	if businessID != "" {
		mods = append(mods, repository.ForBusiness(businessID))
	}
	return s.complaints.List(ctx, mods...)
}

// UpdateComplaint persists complaint changes such as status transitions.
func (s *Service) UpdateComplaint(ctx context.Context, principal auth.Principal, complaint *models.Complaint) error {
	if err := s.authorizeUpdate(ctx, principal, auth.ObjectComplaint, complaint.ID); err != nil {
		return err
	}
	return s.complaints.Update(ctx, complaint)
}

// DeleteComplaint removes a complaint.
func (s *Service) DeleteComplaint(ctx context.Context, id string) error {
	return s.complaints.Delete(ctx, id)
}

// CreateQuote inserts a quote request authored by the principal.
func (s *Service) CreateQuote(ctx context.Context, principal auth.Principal, quote *models.Quote) error {
	if quote.ID == "" {
		quote.ID = bunx.NewUUIDv7()
	}
	if quote.Status == "" {
		quote.Status = models.QuotePending
	}
	quote.UserID = &principal.ID
	return s.quotes.Create(ctx, quote)
}

// GetQuote fetches one quote request.
func (s *Service) GetQuote(ctx context.Context, id string) (*models.Quote, error) {
	return s.quotes.GetByID(ctx, id)
}

// ListQuotes returns quote requests, optionally narrowed to one business.
func (s *Service) ListQuotes(ctx context.Context, businessID string) ([]models.Quote, error) {
	var mods []repository.QueryMod
	if businessID != "" {
		mods = append(mods, repository.ForBusiness(businessID))
	}
	return s.quotes.List(ctx, mods...)
}

// UpdateQuote persists quote changes such as marking it replied.
func (s *Service) UpdateQuote(ctx context.Context, principal auth.Principal, quote *models.Quote) error {
	if err := s.authorizeUpdate(ctx, principal, auth.ObjectQuote, quote.ID); err != nil {
		return err
	}
	return s.quotes.Update(ctx, quote)
}

// DeleteQuote removes a quote request.
func (s *Service) DeleteQuote(ctx context.Context, id string) error {
	return s.quotes.Delete(ctx, id)
}

// CreateProductReview inserts product feedback authored by the principal.
func (s *Service) CreateProductReview(ctx context.Context, principal auth.Principal, review *models.ProductReview) error {
	if err := review.ValidateForCreate(); err != nil {
		return err
	}
	if review.ID == "" {
		review.ID = bunx.NewUUIDv7()
	}
	review.UserID = &principal.ID
	return s.productReviews.Create(ctx, review)
}

// GetProductReview fetches one product review.
func (s *Service) GetProductReview(ctx context.Context, id string) (*models.ProductReview, error) {
	return s.productReviews.GetByID(ctx, id)
}

// ListProductReviews returns product reviews, optionally for one product.
func (s *Service) ListProductReviews(ctx context.Context, productID string) ([]models.ProductReview, error) {
	var mods []repository.QueryMod
	if productID != "" {
		mods = append(mods, repository.ForProduct(productID))
	}
	return s.productReviews.List(ctx, mods...)
}

// UpdateProductReview persists product review changes.
func (s *Service) UpdateProductReview(ctx context.Context, principal auth.Principal, review *models.ProductReview) error {
	if err := s.authorizeUpdate(ctx, principal, auth.ObjectProductReview, review.ID); err != nil {
		return err
	}
	return s.productReviews.Update(ctx, review)
}

// DeleteProductReview removes a product review.
func (s *Service) DeleteProductReview(ctx context.Context, id string) error {
	return s.productReviews.Delete(ctx, id)
}

// CreateProductComplaint inserts a product complaint authored by the principal.
func (s *Service) CreateProductComplaint(ctx context.Context, principal auth.Principal, complaint *models.ProductComplaint) error {
	if err := complaint.ValidateForCreate(); err != nil {
		return err
	}
	if complaint.ID == "" {
		complaint.ID = bunx.NewUUIDv7()
	}
	complaint.UserID = &principal.ID
	return s.productComplaints.Create(ctx, complaint)
}

// GetProductComplaint fetches one product complaint.
func (s *Service) GetProductComplaint(ctx context.Context, id string) (*models.ProductComplaint, error) {
	return s.productComplaints.GetByID(ctx, id)
}

// ListProductComplaints returns product complaints, optionally for one product.
func (s *Service) ListProductComplaints(ctx context.Context, productID string) ([]models.ProductComplaint, error) {
	var mods []repository.QueryMod
	if productID != "" {
		mods = append(mods, repository.ForProduct(productID))
	}
	return s.productComplaints.List(ctx, mods...)
}

// UpdateProductComplaint persists product complaint changes.
func (s *Service) UpdateProductComplaint(ctx context.Context, principal auth.Principal, complaint *models.ProductComplaint) error {
	if err := s.authorizeUpdate(ctx, principal, auth.ObjectProductComplaint, complaint.ID); err != nil {
		return err
	}
	return s.productComplaints.Update(ctx, complaint)
}

// DeleteProductComplaint removes a product complaint.
func (s *Service) DeleteProductComplaint(ctx context.Context, id string) error {
	return s.productComplaints.Delete(ctx, id)
}
