package directory

import (
	"context"
	"errors"
	"log"

	"github.com/bizdir/bizdirapi/internal/auth"
	"github.com/bizdir/bizdirapi/internal/db/bunx"
	"github.com/bizdir/bizdirapi/internal/db/models"
	"github.com/bizdir/bizdirapi/internal/repository"
)

// Reply creation copies the parent's business_id onto the reply so that
// manager-scoped queries reach replies in a single hop. The copy happens
// here and only here: caller-supplied business ids are discarded. When the
// parent cannot be found the miss is logged and the reply is created with a
// NULL business_id, which keeps it out of every manager scope until fixed.

// CreateReviewReply inserts a reply to a review.
func (s *Service) CreateReviewReply(ctx context.Context, reply *models.ReviewReply) error {
	if err := reply.ValidateForCreate(); err != nil {
		return err
	}
	if reply.ID == "" {
		reply.ID = bunx.NewUUIDv7()
	}

	reply.BusinessID = nil
	if reply.ReviewID != nil {
		parent, err := s.reviews.GetByID(ctx, *reply.ReviewID)
		switch {
		case err == nil:
			reply.BusinessID = parent.BusinessID
		case errors.Is(err, repository.ErrNotFound):
			log.Printf("WARNING: review %s not found while denormalizing reply %s, business_id left unset", *reply.ReviewID, reply.ID)
		default:
			return err
		}
	} else {
		log.Printf("WARNING: reply %s created without a parent review, business_id left unset", reply.ID)
	}

	return s.reviewReplies.Create(ctx, reply)
}

// GetReviewReply fetches one review reply.
func (s *Service) GetReviewReply(ctx context.Context, id string) (*models.ReviewReply, error) {
	return s.reviewReplies.GetByID(ctx, id)
}

// ListReviewReplies returns review replies, optionally for one review.
func (s *Service) ListReviewReplies(ctx context.Context, reviewID string) ([]models.ReviewReply, error) {
	var mods []repository.QueryMod
	if reviewID != "" {
		mods = append(mods, repository.ForParent("review_id", reviewID))
	}
	return s.reviewReplies.List(ctx, mods...)
}

// UpdateReviewReply edits a reply's content. The denormalized business_id
// is pinned to its stored value.
func (s *Service) UpdateReviewReply(ctx context.Context, principal auth.Principal, reply *models.ReviewReply) error {
	if err := s.authorizeUpdate(ctx, principal, auth.ObjectReviewReply, reply.ID); err != nil {
		return err
	}
	stored, err := s.reviewReplies.GetByID(ctx, reply.ID)
	if err != nil {
		return err
	}
	reply.ReviewID = stored.ReviewID
	reply.BusinessID = stored.BusinessID
	return s.reviewReplies.Update(ctx, reply)
}

// DeleteReviewReply removes a review reply.
func (s *Service) DeleteReviewReply(ctx context.Context, id string) error {
	return s.reviewReplies.Delete(ctx, id)
}

// CreateComplaintReply inserts a reply to a complaint.
func (s *Service) CreateComplaintReply(ctx context.Context, reply *models.ComplaintReply) error {
	if err := reply.ValidateForCreate(); err != nil {
		return err
	}
	if reply.ID == "" {
		reply.ID = bunx.NewUUIDv7()
	}

	reply.BusinessID = nil
	if reply.ComplaintID != nil {
		parent, err := s.complaints.GetByID(ctx, *reply.ComplaintID)
		switch {
		case err == nil:
			reply.BusinessID = parent.BusinessID
		case errors.Is(err, repository.ErrNotFound):
			log.Printf("WARNING: complaint %s not found while denormalizing reply %s, business_id left unset", *reply.ComplaintID, reply.ID)
		default:
			return err
		}
	} else {
		log.Printf("WARNING: reply %s created without a parent complaint, business_id left unset", reply.ID)
	}

	return s.complaintReplies.Create(ctx, reply)
}

// GetComplaintReply fetches one complaint reply.
func (s *Service) GetComplaintReply(ctx context.Context, id string) (*models.ComplaintReply, error) {
	return s.complaintReplies.GetByID(ctx, id)
}

// ListComplaintReplies returns complaint replies, optionally for one complaint.
func (s *Service) ListComplaintReplies(ctx context.Context, complaintID string) ([]models.ComplaintReply, error) {
	var mods []repository.QueryMod
	if complaintID != "" {
		mods = append(mods, repository.ForParent("complaint_id", complaintID))
	}
	return s.complaintReplies.List(ctx, mods...)
}

// UpdateComplaintReply edits a reply's content.
func (s *Service) UpdateComplaintReply(ctx context.Context, principal auth.Principal, reply *models.ComplaintReply) error {
	if err := s.authorizeUpdate(ctx, principal, auth.ObjectComplaintReply, reply.ID); err != nil {
		return err
	}
	stored, err := s.complaintReplies.GetByID(ctx, reply.ID)
	if err != nil {
		return err
	}
	reply.ComplaintID = stored.ComplaintID
	reply.BusinessID = stored.BusinessID
	return s.complaintReplies.Update(ctx, reply)
}

// DeleteComplaintReply removes a complaint reply.
func (s *Service) DeleteComplaintReply(ctx context.Context, id string) error {
	return s.complaintReplies.Delete(ctx, id)
}

// CreateQuoteReply inserts a reply to a quote request and marks the quote
// replied.
func (s *Service) CreateQuoteReply(ctx context.Context, reply *models.QuoteReply) error {
	if err := reply.ValidateForCreate(); err != nil {
		return err
	}
	if reply.ID == "" {
		reply.ID = bunx.NewUUIDv7()
	}

	reply.BusinessID = nil
	var parent *models.Quote
	if reply.QuoteID != nil {
		var err error
		parent, err = s.quotes.GetByID(ctx, *reply.QuoteID)
		switch {
		case err == nil:
			reply.BusinessID = parent.BusinessID
		case errors.Is(err, repository.ErrNotFound):
			parent = nil
			log.Printf("WARNING: quote %s not found while denormalizing reply %s, business_id left unset", *reply.QuoteID, reply.ID)
		default:
			return err
		}
	} else {
		log.Printf("WARNING: reply %s created without a parent quote, business_id left unset", reply.ID)
	}

	if err := s.quoteReplies.Create(ctx, reply); err != nil {
		return err
	}

	if parent != nil && parent.Status != models.QuoteReplied {
		parent.Status = models.QuoteReplied
		if err := s.quotes.Update(ctx, parent); err != nil {
			log.Printf("WARNING: failed to mark quote %s replied: %v", parent.ID, err)
		}
	}
	return nil
}

// GetQuoteReply fetches one quote reply.
func (s *Service) GetQuoteReply(ctx context.Context, id string) (*models.QuoteReply, error) {
	return s.quoteReplies.GetByID(ctx, id)
}

// ListQuoteReplies returns quote replies, optionally for one quote.
func (s *Service) ListQuoteReplies(ctx context.Context, quoteID string) ([]models.QuoteReply, error) {
	var mods []repository.QueryMod
	if quoteID != "" {
		mods = append(mods, repository.ForParent("quote_id", quoteID))
	}
	return s.quoteReplies.List(ctx, mods...)
}

// UpdateQuoteReply edits a reply's content.
func (s *Service) UpdateQuoteReply(ctx context.Context, principal auth.Principal, reply *models.QuoteReply) error {
	if err := s.authorizeUpdate(ctx, principal, auth.ObjectQuoteReply, reply.ID); err != nil {
		return err
	}
	stored, err := s.quoteReplies.GetByID(ctx, reply.ID)
	if err != nil {
		return err
	}
	reply.QuoteID = stored.QuoteID
	reply.BusinessID = stored.BusinessID
	return s.quoteReplies.Update(ctx, reply)
}

// DeleteQuoteReply removes a quote reply.
func (s *Service) DeleteQuoteReply(ctx context.Context, id string) error {
	return s.quoteReplies.Delete(ctx, id)
}
