package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/casbin/casbin/v2"

	"github.com/bizdir/bizdirapi/internal/auth"
)

// pathObjects maps the first path segment under /api to its policy object.
var pathObjects = map[string]string{
	"users":              auth.ObjectUser,
	"businesses":         auth.ObjectBusiness,
	"products":           auth.ObjectProduct,
	"images":             auth.ObjectImage,
	"reviews":            auth.ObjectReview,
	"complaints":         auth.ObjectComplaint,
	"quotes":             auth.ObjectQuote,
	"product-reviews":    auth.ObjectProductReview,
	"product-complaints": auth.ObjectProductComplaint,
	"review-replies":     auth.ObjectReviewReply,
	"complaint-replies":  auth.ObjectComplaintReply,
	"quote-replies":      auth.ObjectQuoteReply,
	"job-listings":       auth.ObjectJobListing,
}

// methodActions maps HTTP verbs to policy actions.
var methodActions = map[string]string{
	http.MethodGet:    auth.ActionQuery,
	http.MethodHead:   auth.ActionQuery,
	http.MethodPost:   auth.ActionCreate,
	http.MethodPut:    auth.ActionUpdate,
	http.MethodPatch:  auth.ActionUpdate,
	http.MethodDelete: auth.ActionDelete,
}

// EnforcePolicy gates each /api request by (role, object, action). It runs
// after RequireSession, so a missing principal is a server wiring bug and is
// rejected outright. Row scoping happens below, in the services.
func EnforcePolicy(enforcer casbin.IEnforcer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal, ok := auth.PrincipalFromContext(r.Context())
			if !ok {
				writeJSONError(w, http.StatusUnauthorized, "authentication required")
				return
			}

			object, ok := objectForPath(r.URL.Path)
			if !ok {
				// Not a policy-gated resource (e.g. /api/auth/whoami);
				// session presence is all that is required.
				next.ServeHTTP(w, r)
				return
			}
			action, ok := methodActions[r.Method]
			if !ok {
				writeJSONError(w, http.StatusMethodNotAllowed, "method not allowed")
				return
			}

			allowed, err := enforcer.Enforce(string(principal.Role), object, action)
			if err != nil {
				log.Printf("ERROR: policy evaluation failed for %s %s: %v", r.Method, r.URL.Path, err)
				writeJSONError(w, http.StatusInternalServerError, "authorization failed")
				return
			}
			if !allowed {
				writeJSONError(w, http.StatusForbidden, "permission denied")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// objectForPath extracts the policy object from an /api path.
func objectForPath(path string) (string, bool) {
	rest := strings.TrimPrefix(path, "/api/")
	if rest == path {
		return "", false
	}
	segment, _, _ := strings.Cut(rest, "/")
	object, ok := pathObjects[segment]
	return object, ok
}
