package models

import (
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// ModerationStatus gates public visibility of reviews. The numeric values
// mirror the legacy data set.
type ModerationStatus int

const (
	ModerationApproved ModerationStatus = 0
	ModerationDenied   ModerationStatus = 1
	ModerationPending  ModerationStatus = 2
)

// ComplaintStatus tracks complaint resolution.
type ComplaintStatus int

const (
	ComplaintClosed  ComplaintStatus = 0
	ComplaintPending ComplaintStatus = 1
)

// QuoteStatus tracks quote-request handling.
type QuoteStatus string

const (
	QuotePending QuoteStatus = "pending"
	QuoteReplied QuoteStatus = "replied"
)

// Review is business feedback authored by a user, moderated before display.
type Review struct {
	bun.BaseModel `bun:"table:reviews,alias:rv"`

	ID               string           `bun:"id,pk,type:uuid" json:"id"`
	UserID           *string          `bun:"user_id,type:uuid" json:"userId,omitempty"`
	BusinessID       *string          `bun:"business_id,type:uuid" json:"businessId,omitempty"`
	IsAnonymous      bool             `bun:"is_anonymous,notnull,default:false" json:"isAnonymous"`
	Rating           int              `bun:"rating,notnull,default:5" json:"rating"`
	Content          string           `bun:"content" json:"content,omitempty"`
	ModerationStatus ModerationStatus `bun:"moderation_status,notnull,default:2" json:"moderationStatus"`
	CreatedAt        time.Time        `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`

	User     *User     `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Business *Business `bun:"rel:belongs-to,join:business_id=id" json:"business,omitempty"`
}

// ValidateForCreate verifies the record is well formed before insertion.
func (r *Review) ValidateForCreate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	return nil
}

// Complaint is a grievance filed against a business.
type Complaint struct {
	bun.BaseModel `bun:"table:complaints,alias:c"`

	ID          string          `bun:"id,pk,type:uuid" json:"id"`
	UserID      *string         `bun:"user_id,type:uuid" json:"userId,omitempty"`
	BusinessID  *string         `bun:"business_id,type:uuid" json:"businessId,omitempty"`
	IsAnonymous bool            `bun:"is_anonymous,notnull,default:false" json:"isAnonymous"`
	Subject     string          `bun:"subject,notnull" json:"subject"`
	Content     string          `bun:"content" json:"content,omitempty"`
	Status      ComplaintStatus `bun:"status,notnull,default:1" json:"status"`
	CreatedAt   time.Time       `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`

	User     *User     `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Business *Business `bun:"rel:belongs-to,join:business_id=id" json:"business,omitempty"`
}

// ValidateForCreate verifies the record is well formed before insertion.
func (c *Complaint) ValidateForCreate() error {
	if c.Subject == "" {
		return errors.New("subject is required")
	}
	return nil
}

// Quote is a service-quote request directed at a business.
type Quote struct {
	bun.BaseModel `bun:"table:quotes,alias:q"`

	ID         string      `bun:"id,pk,type:uuid" json:"id"`
	UserID     *string     `bun:"user_id,type:uuid" json:"userId,omitempty"`
	BusinessID *string     `bun:"business_id,type:uuid" json:"businessId,omitempty"`
	Service    string      `bun:"service" json:"service,omitempty"`
	Message    string      `bun:"message" json:"message,omitempty"`
	Status     QuoteStatus `bun:"status,notnull,default:'pending'" json:"status"`
	CreatedAt  time.Time   `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`

	User     *User     `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Business *Business `bun:"rel:belongs-to,join:business_id=id" json:"business,omitempty"`
}

// ProductReview is product-level feedback, same shape as Review but scoped
// to a product.
type ProductReview struct {
	bun.BaseModel `bun:"table:product_reviews,alias:prv"`

	ID               string           `bun:"id,pk,type:uuid" json:"id"`
	UserID           *string          `bun:"user_id,type:uuid" json:"userId,omitempty"`
	ProductID        *string          `bun:"product_id,type:uuid" json:"productId,omitempty"`
	Rating           int              `bun:"rating,notnull,default:5" json:"rating"`
	Content          string           `bun:"content" json:"content,omitempty"`
	ModerationStatus ModerationStatus `bun:"moderation_status,notnull,default:2" json:"moderationStatus"`
	CreatedAt        time.Time        `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`

	User    *User    `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Product *Product `bun:"rel:belongs-to,join:product_id=id" json:"product,omitempty"`
}

// ValidateForCreate verifies the record is well formed before insertion.
func (r *ProductReview) ValidateForCreate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return errors.New("rating must be between 1 and 5")
	}
	return nil
}

// ProductComplaint is a grievance filed against a specific product.
type ProductComplaint struct {
	bun.BaseModel `bun:"table:product_complaints,alias:pc"`

	ID        string          `bun:"id,pk,type:uuid" json:"id"`
	UserID    *string         `bun:"user_id,type:uuid" json:"userId,omitempty"`
	ProductID *string         `bun:"product_id,type:uuid" json:"productId,omitempty"`
	Subject   string          `bun:"subject,notnull" json:"subject"`
	Content   string          `bun:"content" json:"content,omitempty"`
	Status    ComplaintStatus `bun:"status,notnull,default:1" json:"status"`
	CreatedAt time.Time       `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`

	User    *User    `bun:"rel:belongs-to,join:user_id=id" json:"user,omitempty"`
	Product *Product `bun:"rel:belongs-to,join:product_id=id" json:"product,omitempty"`
}

// ValidateForCreate verifies the record is well formed before insertion.
func (c *ProductComplaint) ValidateForCreate() error {
	if c.Subject == "" {
		return errors.New("subject is required")
	}
	return nil
}
