package models

import (
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// EntityType is the legal structure of a business.
type EntityType string

const (
	EntityTypeLLC            EntityType = "LLC"
	EntityTypeCorporation    EntityType = "corporation"
	EntityTypePartnership    EntityType = "partnership"
	EntityTypeSoleProprietor EntityType = "sole_proprietorship"
)

// Valid reports whether the entity type is a known value. Empty is allowed.
func (e EntityType) Valid() bool {
	switch e {
	case "", EntityTypeLLC, EntityTypeCorporation, EntityTypePartnership, EntityTypeSoleProprietor:
		return true
	}
	return false
}

// Business is a directory listing owned by at most one managing user.
type Business struct {
	bun.BaseModel `bun:"table:businesses,alias:b"`

	ID               string     `bun:"id,pk,type:uuid" json:"id"`
	Name             string     `bun:"name,notnull" json:"name"`
	Description      string     `bun:"description" json:"description,omitempty"`
	Industry         string     `bun:"industry" json:"industry,omitempty"`
	ContactEmail     string     `bun:"contact_email,notnull" json:"contactEmail"`
	ContactPhone     string     `bun:"contact_phone" json:"contactPhone,omitempty"`
	Website          string     `bun:"website" json:"website,omitempty"`
	Location         string     `bun:"location" json:"location,omitempty"`
	Address          string     `bun:"address" json:"address,omitempty"`
	YearFounded      int        `bun:"year_founded" json:"yearFounded,omitempty"`
	EntityType       EntityType `bun:"entity_type" json:"entityType,omitempty"`
	BusinessHours    string     `bun:"business_hours" json:"businessHours,omitempty"`
	Revenue          int64      `bun:"revenue" json:"revenue,omitempty"`
	EmployeeCount    int        `bun:"employee_count" json:"employeeCount,omitempty"`
	Keywords         string     `bun:"keywords" json:"keywords,omitempty"`
	CompanyLinkedIn  string     `bun:"company_linkedin" json:"companyLinkedIn,omitempty"`
	CompanyFacebook  string     `bun:"company_facebook" json:"companyFacebook,omitempty"`
	CompanyTwitter   string     `bun:"company_twitter" json:"companyTwitter,omitempty"`
	TechnologiesUsed string     `bun:"technologies_used" json:"technologiesUsed,omitempty"`
	SICCodes         string     `bun:"sic_codes" json:"sicCodes,omitempty"`
	ManagerID        *string    `bun:"manager_id,type:uuid" json:"managerId,omitempty"`
	CreatedAt        time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt        time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`

	Manager *User `bun:"rel:belongs-to,join:manager_id=id" json:"manager,omitempty"`
}

// ValidateForCreate verifies the record is well formed before insertion.
func (b *Business) ValidateForCreate() error {
	if b.Name == "" {
		return errors.New("name is required")
	}
	if b.ContactEmail == "" {
		return errors.New("contact_email is required")
	}
	if !b.EntityType.Valid() {
		return errors.New("entity_type is not a known value")
	}
	return nil
}

// ManagedBy reports whether the given user id is the owning manager.
func (b *Business) ManagedBy(userID string) bool {
	return b.ManagerID != nil && *b.ManagerID == userID && userID != ""
}
