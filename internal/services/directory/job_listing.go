package directory

import (
	"context"

	"github.com/bizdir/bizdirapi/internal/auth"
	"github.com/bizdir/bizdirapi/internal/db/bunx"
	"github.com/bizdir/bizdirapi/internal/db/models"
	"github.com/bizdir/bizdirapi/internal/repository"
)

// CreateJobListing inserts a job posting after validation.
func (s *Service) CreateJobListing(ctx context.Context, listing *models.JobListing) error {
	if err := listing.ValidateForCreate(); err != nil {
		return err
	}
	if listing.ID == "" {
		listing.ID = bunx.NewUUIDv7()
	}
	return s.jobListings.Create(ctx, listing)
}

// GetJobListing fetches one job posting.
func (s *Service) GetJobListing(ctx context.Context, id string) (*models.JobListing, error) {
	return s.jobListings.GetByID(ctx, id)
}

// ListJobListings returns job postings, optionally for one business.
func (s *Service) ListJobListings(ctx context.Context, businessID string) ([]models.JobListing, error) {
	var mods []repository.QueryMod
	if businessID != "" {
		mods = append(mods, repository.ForBusiness(businessID))
	}
	return s.jobListings.List(ctx, mods...)
}

// UpdateJobListing persists changes to a posting the caller's business owns.
func (s *Service) UpdateJobListing(ctx context.Context, principal auth.Principal, listing *models.JobListing) error {
	if err := s.authorizeUpdate(ctx, principal, auth.ObjectJobListing, listing.ID); err != nil {
		return err
	}
	if !listing.EmploymentType.Valid() {
		return errInvalidEmploymentType
	}
	return s.jobListings.Update(ctx, listing)
}

// DeleteJobListing removes a job posting.
func (s *Service) DeleteJobListing(ctx context.Context, id string) error {
	return s.jobListings.Delete(ctx, id)
}
