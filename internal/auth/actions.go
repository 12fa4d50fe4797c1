package auth

// Operation kinds gated by the policy table. Every API request maps to
// exactly one (object, action) pair before enforcement.
const (
	ActionQuery  = "query"
	ActionCreate = "create"
	ActionUpdate = "update"
	ActionDelete = "delete"

	// ActionWildcard grants all actions on an object.
	ActionWildcard = "*"
)

// Object types for policy rules, one per directory entity.
const (
	ObjectUser             = "user"
	ObjectBusiness         = "business"
	ObjectProduct          = "product"
	ObjectImage            = "image"
	ObjectReview           = "review"
	ObjectComplaint        = "complaint"
	ObjectQuote            = "quote"
	ObjectProductReview    = "product-review"
	ObjectProductComplaint = "product-complaint"
	ObjectReviewReply      = "review-reply"
	ObjectComplaintReply   = "complaint-reply"
	ObjectQuoteReply       = "quote-reply"
	ObjectJobListing       = "job-listing"

	// ObjectWildcard matches every object type.
	ObjectWildcard = "*"
)

// Objects lists every concrete object type, in policy-table order.
func Objects() []string {
	return []string{
		ObjectUser,
		ObjectBusiness,
		ObjectProduct,
		ObjectImage,
		ObjectReview,
		ObjectComplaint,
		ObjectQuote,
		ObjectProductReview,
		ObjectProductComplaint,
		ObjectReviewReply,
		ObjectComplaintReply,
		ObjectQuoteReply,
		ObjectJobListing,
	}
}

// ValidateAction checks if an action string is valid.
// This prevents typos when creating/updating policies.
func ValidateAction(action string) bool {
	switch action {
	case ActionQuery, ActionCreate, ActionUpdate, ActionDelete, ActionWildcard:
		return true
	}
	return false
}

// ValidateObject checks if an object string is a known entity type.
func ValidateObject(object string) bool {
	if object == ObjectWildcard {
		return true
	}
	for _, o := range Objects() {
		if o == object {
			return true
		}
	}
	return false
}

// ExpandWildcard expands wildcard actions to their concrete actions.
// Example: "*" -> ["query", "create", "update", "delete"]
func ExpandWildcard(action string) []string {
	if action == ActionWildcard {
		return []string{ActionQuery, ActionCreate, ActionUpdate, ActionDelete}
	}
	return []string{action}
}
