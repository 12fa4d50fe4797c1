package models

import (
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// Product belongs to one business and carries its images and feedback.
type Product struct {
	bun.BaseModel `bun:"table:products,alias:p"`

	ID          string    `bun:"id,pk,type:uuid" json:"id"`
	BusinessID  *string   `bun:"business_id,type:uuid" json:"businessId,omitempty"`
	Name        string    `bun:"name,notnull" json:"name"`
	Description string    `bun:"description" json:"description,omitempty"`
	PriceCents  int64     `bun:"price_cents,notnull" json:"priceCents"`
	Stock       int       `bun:"stock,notnull,default:0" json:"stock"`
	CreatedAt   time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`

	Business *Business      `bun:"rel:belongs-to,join:business_id=id" json:"business,omitempty"`
	Images   []*ProductImage `bun:"rel:has-many,join:id=product_id" json:"images,omitempty"`
}

// PriceDollars converts the stored cent value for API responses.
func (p *Product) PriceDollars() float64 {
	return float64(p.PriceCents) / 100
}

// ValidateForCreate verifies the record is well formed before insertion.
func (p *Product) ValidateForCreate() error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.PriceCents < 0 {
		return errors.New("price_cents cannot be negative")
	}
	if p.Stock < 0 {
		return errors.New("stock cannot be negative")
	}
	return nil
}

// ProductImage is an uploaded image stored on local disk and served under
// the /images route.
type ProductImage struct {
	bun.BaseModel `bun:"table:product_images,alias:pi"`

	ID        string    `bun:"id,pk,type:uuid" json:"id"`
	ProductID *string   `bun:"product_id,type:uuid" json:"productId,omitempty"`
	FileName  string    `bun:"file_name,notnull" json:"fileName"`
	URL       string    `bun:"url,notnull" json:"url"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`

	Product *Product `bun:"rel:belongs-to,join:product_id=id" json:"product,omitempty"`
}
