package repository

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/bizdir/bizdirapi/internal/auth"
)

// Row-scoping filters. Each is a pure query restriction; combined with the
// casbin operation gates they form the full policy table. An empty result
// under a scope is the normal "no access" outcome, not an error.

// UserSelfScope restricts a user query to the caller's own row.
func UserSelfScope(userID string) QueryMod {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.id = ?", userID)
	}
}

// BusinessManagedScope restricts businesses to those owned by the caller.
func BusinessManagedScope(userID string) QueryMod {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.manager_id = ?", userID)
	}
}

// ForBusiness restricts business-scoped children to one business.
func ForBusiness(businessID string) QueryMod {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.business_id = ?", businessID)
	}
}

// ForProduct restricts product-scoped children to one product.
func ForProduct(productID string) QueryMod {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.product_id = ?", productID)
	}
}

// ForParent restricts replies to one parent record. The column carrying the
// parent id differs per reply table.
func ForParent(column, parentID string) QueryMod {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("? = ?", bun.Ident(column), parentID)
	}
}

// OwnershipResolver answers "may this manager touch this row" questions.
// Admin callers never reach it; guests only ever pass the user/self case.
// Each check is a single EXISTS query walking the ownership chain
// (e.g. image -> product -> business -> manager).
type OwnershipResolver struct {
	db *bun.DB
}

// NewOwnershipResolver creates an ownership resolver on the shared handle.
func NewOwnershipResolver(db *bun.DB) *OwnershipResolver {
	return &OwnershipResolver{db: db}
}

// ManagedBy reports whether the row identified by (object, id) belongs to a
// business managed by userID. For ObjectUser it degenerates to the self
// check. Unknown object types are a programming error.
func (r *OwnershipResolver) ManagedBy(ctx context.Context, object, id, userID string) (bool, error) {
	if id == "" || userID == "" {
		return false, nil
	}

	var q *bun.SelectQuery
	switch object {
	case auth.ObjectUser:
		return id == userID, nil

	case auth.ObjectBusiness:
		q = r.db.NewSelect().
			TableExpr("businesses AS b").
			Where("b.id = ?", id).
			Where("b.manager_id = ?", userID)

	case auth.ObjectProduct:
		q = r.db.NewSelect().
			TableExpr("products AS p").
			Join("JOIN businesses AS b ON b.id = p.business_id").
			Where("p.id = ?", id).
			Where("b.manager_id = ?", userID)

	case auth.ObjectImage:
		q = r.db.NewSelect().
			TableExpr("product_images AS pi").
			Join("JOIN products AS p ON p.id = pi.product_id").
			Join("JOIN businesses AS b ON b.id = p.business_id").
			Where("pi.id = ?", id).
			Where("b.manager_id = ?", userID)

	case auth.ObjectReview, auth.ObjectComplaint, auth.ObjectQuote, auth.ObjectJobListing:
		q = r.db.NewSelect().
			TableExpr("? AS t", bun.Ident(businessChildTable(object))).
			Join("JOIN businesses AS b ON b.id = t.business_id").
			Where("t.id = ?", id).
			Where("b.manager_id = ?", userID)

	case auth.ObjectProductReview, auth.ObjectProductComplaint:
		q = r.db.NewSelect().
			TableExpr("? AS t", bun.Ident(productChildTable(object))).
			Join("JOIN products AS p ON p.id = t.product_id").
			Join("JOIN businesses AS b ON b.id = p.business_id").
			Where("t.id = ?", id).
			Where("b.manager_id = ?", userID)

	case auth.ObjectReviewReply, auth.ObjectComplaintReply, auth.ObjectQuoteReply:
		// Replies rely on the denormalized business_id set by the
		// create hook; a reply whose hook found no parent business is
		// invisible to manager scopes.
		q = r.db.NewSelect().
			TableExpr("? AS t", bun.Ident(replyTable(object))).
			Join("JOIN businesses AS b ON b.id = t.business_id").
			Where("t.id = ?", id).
			Where("b.manager_id = ?", userID)

	default:
		return false, fmt.Errorf("ownership check for unknown object type %q", object)
	}

	exists, err := q.Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("ownership check %s/%s: %w", object, id, err)
	}
	return exists, nil
}

func businessChildTable(object string) string {
	switch object {
	case auth.ObjectReview:
		return "reviews"
	case auth.ObjectComplaint:
		return "complaints"
	case auth.ObjectQuote:
		return "quotes"
	case auth.ObjectJobListing:
		return "job_listings"
	}
	return ""
}

func productChildTable(object string) string {
	switch object {
	case auth.ObjectProductReview:
		return "product_reviews"
	case auth.ObjectProductComplaint:
		return "product_complaints"
	}
	return ""
}

func replyTable(object string) string {
	switch object {
	case auth.ObjectReviewReply:
		return "review_replies"
	case auth.ObjectComplaintReply:
		return "complaint_replies"
	case auth.ObjectQuoteReply:
		return "quote_replies"
	}
	return ""
}
