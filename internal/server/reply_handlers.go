package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bizdir/bizdirapi/internal/db/models"
)

func (s *Server) handleListReviewReplies(w http.ResponseWriter, r *http.Request) {
	replies, err := s.directory.ListReviewReplies(r.Context(), r.URL.Query().Get("reviewId"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, replies)
}

func (s *Server) handleCreateReviewReply(w http.ResponseWriter, r *http.Request) {
	var reply models.ReviewReply
	if err := s.decodeValidated(r, "reply_create", &reply); err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := s.directory.CreateReviewReply(r.Context(), &reply); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, reply)
}

func (s *Server) handleGetReviewReply(w http.ResponseWriter, r *http.Request) {
	reply, err := s.directory.GetReviewReply(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reply)
}

func (s *Server) handleUpdateReviewReply(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOr500(w, r)
	if !ok {
		return
	}
	reply, err := s.directory.GetReviewReply(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if err := decodeOnto(r, reply); err != nil {
		respondBadRequest(w, err)
		return
	}
	reply.ID = chi.URLParam(r, "id")
	if err := s.directory.UpdateReviewReply(r.Context(), principal, reply); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reply)
}

func (s *Server) handleDeleteReviewReply(w http.ResponseWriter, r *http.Request) {
	if err := s.directory.DeleteReviewReply(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListComplaintReplies(w http.ResponseWriter, r *http.Request) {
	replies, err := s.directory.ListComplaintReplies(r.Context(), r.URL.Query().Get("complaintId"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, replies)
}

func (s *Server) handleCreateComplaintReply(w http.ResponseWriter, r *http.Request) {
	var reply models.ComplaintReply
	if err := s.decodeValidated(r, "reply_create", &reply); err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := s.directory.CreateComplaintReply(r.Context(), &reply); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, reply)
}

func (s *Server) handleGetComplaintReply(w http.ResponseWriter, r *http.Request) {
	reply, err := s.directory.GetComplaintReply(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reply)
}

func (s *Server) handleUpdateComplaintReply(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOr500(w, r)
	if !ok {
		return
	}
	reply, err := s.directory.GetComplaintReply(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if err := decodeOnto(r, reply); err != nil {
		respondBadRequest(w, err)
		return
	}
	reply.ID = chi.URLParam(r, "id")
	if err := s.directory.UpdateComplaintReply(r.Context(), principal, reply); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reply)
}

func (s *Server) handleDeleteComplaintReply(w http.ResponseWriter, r *http.Request) {
	if err := s.directory.DeleteComplaintReply(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListQuoteReplies(w http.ResponseWriter, r *http.Request) {
	replies, err := s.directory.ListQuoteReplies(r.Context(), r.URL.Query().Get("quoteId"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, replies)
}

func (s *Server) handleCreateQuoteReply(w http.ResponseWriter, r *http.Request) {
	var reply models.QuoteReply
	if err := s.decodeValidated(r, "reply_create", &reply); err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := s.directory.CreateQuoteReply(r.Context(), &reply); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, reply)
}

func (s *Server) handleGetQuoteReply(w http.ResponseWriter, r *http.Request) {
	reply, err := s.directory.GetQuoteReply(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reply)
}

func (s *Server) handleUpdateQuoteReply(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOr500(w, r)
	if !ok {
		return
	}
	reply, err := s.directory.GetQuoteReply(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if err := decodeOnto(r, reply); err != nil {
		respondBadRequest(w, err)
		return
	}
	reply.ID = chi.URLParam(r, "id")
	if err := s.directory.UpdateQuoteReply(r.Context(), principal, reply); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, reply)
}

func (s *Server) handleDeleteQuoteReply(w http.ResponseWriter, r *http.Request) {
	if err := s.directory.DeleteQuoteReply(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
