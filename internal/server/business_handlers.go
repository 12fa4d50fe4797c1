package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bizdir/bizdirapi/internal/db/models"
)

func (s *Server) handleListBusinesses(w http.ResponseWriter, r *http.Request) {
	managerID := r.URL.Query().Get("managerId")
	businesses, err := s.directory.ListBusinesses(r.Context(), managerID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, businesses)
}

func (s *Server) handleCreateBusiness(w http.ResponseWriter, r *http.Request) {
	var business models.Business
	if err := s.decodeValidated(r, "business_create", &business); err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := s.directory.CreateBusiness(r.Context(), &business); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, business)
}

func (s *Server) handleGetBusiness(w http.ResponseWriter, r *http.Request) {
	business, err := s.directory.GetBusiness(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, business)
}

func (s *Server) handleUpdateBusiness(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOr500(w, r)
	if !ok {
		return
	}

	business, err := s.directory.GetBusiness(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if err := decodeOnto(r, business); err != nil {
		respondBadRequest(w, err)
		return
	}
	// Path wins over any id smuggled in the body.
	business.ID = chi.URLParam(r, "id")

	if err := s.directory.UpdateBusiness(r.Context(), principal, business); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, business)
}

func (s *Server) handleDeleteBusiness(w http.ResponseWriter, r *http.Request) {
	if err := s.directory.DeleteBusiness(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
