package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bizdir/bizdirapi/internal/db/models"
)

func (s *Server) handleListJobListings(w http.ResponseWriter, r *http.Request) {
	listings, err := s.directory.ListJobListings(r.Context(), r.URL.Query().Get("businessId"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listings)
}

func (s *Server) handleCreateJobListing(w http.ResponseWriter, r *http.Request) {
	var listing models.JobListing
	if err := s.decodeValidated(r, "job_listing_create", &listing); err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := s.directory.CreateJobListing(r.Context(), &listing); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, listing)
}

func (s *Server) handleGetJobListing(w http.ResponseWriter, r *http.Request) {
	listing, err := s.directory.GetJobListing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listing)
}

func (s *Server) handleUpdateJobListing(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOr500(w, r)
	if !ok {
		return
	}
	listing, err := s.directory.GetJobListing(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if err := decodeOnto(r, listing); err != nil {
		respondBadRequest(w, err)
		return
	}
	listing.ID = chi.URLParam(r, "id")
	if err := s.directory.UpdateJobListing(r.Context(), principal, listing); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, listing)
}

func (s *Server) handleDeleteJobListing(w http.ResponseWriter, r *http.Request) {
	if err := s.directory.DeleteJobListing(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
