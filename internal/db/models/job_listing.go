package models

import (
	"context"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

// EmploymentType is the contract form of a job listing.
type EmploymentType string

const (
	EmploymentFullTime EmploymentType = "full_time"
	EmploymentPartTime EmploymentType = "part_time"
	EmploymentContract EmploymentType = "contract"
	EmploymentIntern   EmploymentType = "internship"
)

// Valid reports whether the employment type is a known value. Empty is allowed.
func (e EmploymentType) Valid() bool {
	switch e {
	case "", EmploymentFullTime, EmploymentPartTime, EmploymentContract, EmploymentIntern:
		return true
	}
	return false
}

// JobListing is a position advertised by a business. Timestamps are set by
// the model hook rather than column defaults.
type JobListing struct {
	bun.BaseModel `bun:"table:job_listings,alias:jl"`

	ID             string         `bun:"id,pk,type:uuid" json:"id"`
	BusinessID     *string        `bun:"business_id,type:uuid" json:"businessId,omitempty"`
	Title          string         `bun:"title,notnull" json:"title"`
	Description    string         `bun:"description" json:"description,omitempty"`
	Location       string         `bun:"location" json:"location,omitempty"`
	EmploymentType EmploymentType `bun:"employment_type" json:"employmentType,omitempty"`
	SalaryRange    string         `bun:"salary_range" json:"salaryRange,omitempty"`
	CreatedAt      time.Time      `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt      time.Time      `bun:"updated_at,notnull" json:"updatedAt"`

	Business *Business `bun:"rel:belongs-to,join:business_id=id" json:"business,omitempty"`
}

var _ bun.BeforeAppendModelHook = (*JobListing)(nil)

// BeforeAppendModel maintains created_at/updated_at on insert and update.
func (j *JobListing) BeforeAppendModel(_ context.Context, query bun.Query) error {
	now := time.Now()
	switch query.(type) {
	case *bun.InsertQuery:
		if j.CreatedAt.IsZero() {
			j.CreatedAt = now
		}
		j.UpdatedAt = now
	case *bun.UpdateQuery:
		j.UpdatedAt = now
	}
	return nil
}

// ValidateForCreate verifies the record is well formed before insertion.
func (j *JobListing) ValidateForCreate() error {
	if j.Title == "" {
		return errors.New("title is required")
	}
	if !j.EmploymentType.Valid() {
		return errors.New("employment_type is not a known value")
	}
	return nil
}
