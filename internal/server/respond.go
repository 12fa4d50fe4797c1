package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/bizdir/bizdirapi/internal/auth"
	"github.com/bizdir/bizdirapi/internal/repository"
	"github.com/bizdir/bizdirapi/internal/services/iam"
	"github.com/bizdir/bizdirapi/internal/storage"
)

const maxBodyBytes = 1 << 20 // 1 MiB for JSON payloads

// respondJSON writes a JSON response body with the given status.
func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("ERROR: encode response: %v", err)
		}
	}
}

// respondError maps service errors onto HTTP statuses. Unrecognized errors
// become opaque 500s; their detail stays in the server log.
func respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondJSON(w, http.StatusNotFound, map[string]string{"error": "not found"})
	case errors.Is(err, auth.ErrPermissionDenied):
		respondJSON(w, http.StatusForbidden, map[string]string{"error": "permission denied"})
	case errors.Is(err, iam.ErrInvalidCredentials):
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid email or password"})
	case errors.Is(err, iam.ErrAccountDisabled):
		respondJSON(w, http.StatusUnauthorized, map[string]string{"error": "account is disabled"})
	case errors.Is(err, iam.ErrEmailTaken):
		respondJSON(w, http.StatusConflict, map[string]string{"error": "email is already registered"})
	case errors.Is(err, storage.ErrUnsupportedType):
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	default:
		log.Printf("ERROR: request failed: %v", err)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

// respondBadRequest reports a client-side payload problem.
func respondBadRequest(w http.ResponseWriter, err error) {
	respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}

// decodeValidated reads the request body, checks it against the named
// schema, and unmarshals it into dst.
func (s *Server) decodeValidated(r *http.Request, schema string, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read request body: %w", err)
	}
	if err := s.validator.Validate(schema, body); err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// decodeOnto reads a partial update body onto an already-loaded record,
// giving merge semantics for PATCH-style updates.
func decodeOnto(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read request body: %w", err)
	}
	if len(body) == 0 {
		return errors.New("request body is required")
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode request body: %w", err)
	}
	return nil
}

// principalOr500 pulls the principal set by the session middleware. Its
// absence past the middleware is a wiring bug.
func principalOr500(w http.ResponseWriter, r *http.Request) (auth.Principal, bool) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		log.Printf("ERROR: handler reached without principal: %s %s", r.Method, r.URL.Path)
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
	return principal, ok
}
