package models

import (
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// Replies carry a denormalized business_id copied from their parent record
// at creation time so manager-scoped filters can reach them in one hop.
// The value is never taken from caller input.

// ComplaintReply answers a Complaint.
type ComplaintReply struct {
	bun.BaseModel `bun:"table:complaint_replies,alias:crp"`

	ID          string    `bun:"id,pk,type:uuid" json:"id"`
	ComplaintID *string   `bun:"complaint_id,type:uuid" json:"complaintId,omitempty"`
	BusinessID  *string   `bun:"business_id,type:uuid" json:"businessId,omitempty"`
	Content     string    `bun:"content,notnull" json:"content"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`

	Complaint *Complaint `bun:"rel:belongs-to,join:complaint_id=id" json:"complaint,omitempty"`
	Business  *Business  `bun:"rel:belongs-to,join:business_id=id" json:"business,omitempty"`
}

// ValidateForCreate verifies the record is well formed before insertion.
func (r *ComplaintReply) ValidateForCreate() error {
	if r.Content == "" {
		return errors.New("content is required")
	}
	return nil
}

// ReviewReply answers a Review.
type ReviewReply struct {
	bun.BaseModel `bun:"table:review_replies,alias:rrp"`

	ID         string    `bun:"id,pk,type:uuid" json:"id"`
	ReviewID   *string   `bun:"review_id,type:uuid" json:"reviewId,omitempty"`
	BusinessID *string   `bun:"business_id,type:uuid" json:"businessId,omitempty"`
	Content    string    `bun:"content,notnull" json:"content"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`

	Review   *Review   `bun:"rel:belongs-to,join:review_id=id" json:"review,omitempty"`
	Business *Business `bun:"rel:belongs-to,join:business_id=id" json:"business,omitempty"`
}

// ValidateForCreate verifies the record is well formed before insertion.
func (r *ReviewReply) ValidateForCreate() error {
	if r.Content == "" {
		return errors.New("content is required")
	}
	return nil
}

// QuoteReply answers a Quote request.
type QuoteReply struct {
	bun.BaseModel `bun:"table:quote_replies,alias:qrp"`

	ID         string    `bun:"id,pk,type:uuid" json:"id"`
	QuoteID    *string   `bun:"quote_id,type:uuid" json:"quoteId,omitempty"`
	BusinessID *string   `bun:"business_id,type:uuid" json:"businessId,omitempty"`
	Content    string    `bun:"content,notnull" json:"content"`
	CreatedAt  time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`

	Quote    *Quote    `bun:"rel:belongs-to,join:quote_id=id" json:"quote,omitempty"`
	Business *Business `bun:"rel:belongs-to,join:business_id=id" json:"business,omitempty"`
}

// ValidateForCreate verifies the record is well formed before insertion.
func (r *QuoteReply) ValidateForCreate() error {
	if r.Content == "" {
		return errors.New("content is required")
	}
	return nil
}
