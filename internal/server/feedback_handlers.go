package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bizdir/bizdirapi/internal/db/models"
)

func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.directory.ListReviews(r.Context(), r.URL.Query().Get("businessId"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reviews)
}

func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOr500(w, r)
	if !ok {
		return
	}
	var review models.Review
	if err := s.decodeValidated(r, "review_create", &review); err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := s.directory.CreateReview(r.Context(), principal, &review); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, review)
}

func (s *Server) handleGetReview(w http.ResponseWriter, r *http.Request) {
	review, err := s.directory.GetReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, review)
}

func (s *Server) handleUpdateReview(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOr500(w, r)
	if !ok {
		return
	}
	review, err := s.directory.GetReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if err := decodeOnto(r, review); err != nil {
		respondBadRequest(w, err)
		return
	}
	review.ID = chi.URLParam(r, "id")
	if err := s.directory.UpdateReview(r.Context(), principal, review); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, review)
}

func (s *Server) handleDeleteReview(w http.ResponseWriter, r *http.Request) {
	if err := s.directory.DeleteReview(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListComplaints(w http.ResponseWriter, r *http.Request) {
	complaints, err := s.directory.ListComplaints(r.Context(), r.URL.Query().Get("businessId"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, complaints)
}

func (s *Server) handleCreateComplaint(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOr500(w, r)
	if !ok {
		return
	}
	var complaint models.Complaint
	if err := s.decodeValidated(r, "complaint_create", &complaint); err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := s.directory.CreateComplaint(r.Context(), principal, &complaint); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, complaint)
}

func (s *Server) handleGetComplaint(w http.ResponseWriter, r *http.Request) {
	complaint, err := s.directory.GetComplaint(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, complaint)
}

func (s *Server) handleUpdateComplaint(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOr500(w, r)
	if !ok {
		return
	}
	complaint, err := s.directory.GetComplaint(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if err := decodeOnto(r, complaint); err != nil {
		respondBadRequest(w, err)
		return
	}
	complaint.ID = chi.URLParam(r, "id")
	if err := s.directory.UpdateComplaint(r.Context(), principal, complaint); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, complaint)
}

func (s *Server) handleDeleteComplaint(w http.ResponseWriter, r *http.Request) {
	if err := s.directory.DeleteComplaint(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListQuotes(w http.ResponseWriter, r *http.Request) {
	quotes, err := s.directory.ListQuotes(r.Context(), r.URL.Query().Get("businessId"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, quotes)
}

func (s *Server) handleCreateQuote(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOr500(w, r)
	if !ok {
		return
	}
	var quote models.Quote
	if err := s.decodeValidated(r, "quote_create", &quote); err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := s.directory.CreateQuote(r.Context(), principal, &quote); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, quote)
}

func (s *Server) handleGetQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := s.directory.GetQuote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, quote)
}

func (s *Server) handleUpdateQuote(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOr500(w, r)
	if !ok {
		return
	}
	quote, err := s.directory.GetQuote(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if err := decodeOnto(r, quote); err != nil {
		respondBadRequest(w, err)
		return
	}
	quote.ID = chi.URLParam(r, "id")
	if err := s.directory.UpdateQuote(r.Context(), principal, quote); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, quote)
}

func (s *Server) handleDeleteQuote(w http.ResponseWriter, r *http.Request) {
	if err := s.directory.DeleteQuote(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListProductReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := s.directory.ListProductReviews(r.Context(), r.URL.Query().Get("productId"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reviews)
}

func (s *Server) handleCreateProductReview(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOr500(w, r)
	if !ok {
		return
	}
	var review models.ProductReview
	if err := s.decodeValidated(r, "review_create", &review); err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := s.directory.CreateProductReview(r.Context(), principal, &review); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, review)
}

func (s *Server) handleGetProductReview(w http.ResponseWriter, r *http.Request) {
	review, err := s.directory.GetProductReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, review)
}

func (s *Server) handleUpdateProductReview(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOr500(w, r)
	if !ok {
		return
	}
	review, err := s.directory.GetProductReview(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if err := decodeOnto(r, review); err != nil {
		respondBadRequest(w, err)
		return
	}
	review.ID = chi.URLParam(r, "id")
	if err := s.directory.UpdateProductReview(r.Context(), principal, review); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, review)
}

func (s *Server) handleDeleteProductReview(w http.ResponseWriter, r *http.Request) {
	if err := s.directory.DeleteProductReview(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListProductComplaints(w http.ResponseWriter, r *http.Request) {
	complaints, err := s.directory.ListProductComplaints(r.Context(), r.URL.Query().Get("productId"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, complaints)
}

func (s *Server) handleCreateProductComplaint(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOr500(w, r)
	if !ok {
		return
	}
	var complaint models.ProductComplaint
	if err := s.decodeValidated(r, "complaint_create", &complaint); err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := s.directory.CreateProductComplaint(r.Context(), principal, &complaint); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, complaint)
}

func (s *Server) handleGetProductComplaint(w http.ResponseWriter, r *http.Request) {
	complaint, err := s.directory.GetProductComplaint(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, complaint)
}

func (s *Server) handleUpdateProductComplaint(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOr500(w, r)
	if !ok {
		return
	}
	complaint, err := s.directory.GetProductComplaint(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if err := decodeOnto(r, complaint); err != nil {
		respondBadRequest(w, err)
		return
	}
	complaint.ID = chi.URLParam(r, "id")
	if err := s.directory.UpdateProductComplaint(r.Context(), principal, complaint); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, complaint)
}

func (s *Server) handleDeleteProductComplaint(w http.ResponseWriter, r *http.Request) {
	if err := s.directory.DeleteProductComplaint(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
