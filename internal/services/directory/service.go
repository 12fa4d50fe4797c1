package directory

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/bizdir/bizdirapi/internal/auth"
	"github.com/bizdir/bizdirapi/internal/db/models"
	"github.com/bizdir/bizdirapi/internal/repository"
)

// Service orchestrates the directory entities: businesses, their products
// and images, public feedback, business replies and job listings. Operation
// gates (who may create/update/delete at all) are enforced before requests
// reach the service; the service enforces row ownership on updates.
type Service struct {
	businesses repository.BusinessRepository
	products   repository.EntityRepository[models.Product]
	images     repository.EntityRepository[models.ProductImage]

	reviews           repository.EntityRepository[models.Review]
	complaints        repository.EntityRepository[models.Complaint]
	quotes            repository.EntityRepository[models.Quote]
	productReviews    repository.EntityRepository[models.ProductReview]
	productComplaints repository.EntityRepository[models.ProductComplaint]

	reviewReplies    repository.EntityRepository[models.ReviewReply]
	complaintReplies repository.EntityRepository[models.ComplaintReply]
	quoteReplies     repository.EntityRepository[models.QuoteReply]

	jobListings repository.EntityRepository[models.JobListing]

	resolver *repository.OwnershipResolver
}

// NewService wires the directory service onto the shared database handle.
func NewService(db *bun.DB) *Service {
	return &Service{
		businesses: repository.NewBunBusinessRepository(db),
		products: repository.NewBunEntityRepository[models.Product](db, "product",
			repository.WithRelations[models.Product]("Images")),
		images: repository.NewBunEntityRepository[models.ProductImage](db, "image"),

		reviews:           repository.NewBunEntityRepository[models.Review](db, "review"),
		complaints:        repository.NewBunEntityRepository[models.Complaint](db, "complaint"),
		quotes:            repository.NewBunEntityRepository[models.Quote](db, "quote"),
		productReviews:    repository.NewBunEntityRepository[models.ProductReview](db, "product review"),
		productComplaints: repository.NewBunEntityRepository[models.ProductComplaint](db, "product complaint"),

		reviewReplies:    repository.NewBunEntityRepository[models.ReviewReply](db, "review reply"),
		complaintReplies: repository.NewBunEntityRepository[models.ComplaintReply](db, "complaint reply"),
		quoteReplies:     repository.NewBunEntityRepository[models.QuoteReply](db, "quote reply"),

		jobListings: repository.NewBunEntityRepository[models.JobListing](db, "job listing",
			repository.WithOrder[models.JobListing]("created_at DESC")),

		resolver: repository.NewOwnershipResolver(db),
	}
}

// authorizeUpdate admits admins unconditionally and managers only for rows
// reachable through their businesses. Everyone else is denied.
func (s *Service) authorizeUpdate(ctx context.Context, principal auth.Principal, object, id string) error {
	if principal.IsAdmin() {
		return nil
	}
	owned, err := s.resolver.ManagedBy(ctx, object, id, principal.ID)
	if err != nil {
		return fmt.Errorf("resolve ownership: %w", err)
	}
	if !owned {
		return auth.ErrPermissionDenied
	}
	return nil
}
