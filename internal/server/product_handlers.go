package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bizdir/bizdirapi/internal/db/models"
)

const maxUploadBytes = 10 << 20 // 10 MiB per image upload

func (s *Server) handleListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.directory.ListProducts(r.Context(), r.URL.Query().Get("businessId"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, products)
}

func (s *Server) handleCreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := s.decodeValidated(r, "product_create", &product); err != nil {
		respondBadRequest(w, err)
		return
	}
	if err := s.directory.CreateProduct(r.Context(), &product); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, product)
}

func (s *Server) handleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := s.directory.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (s *Server) handleUpdateProduct(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalOr500(w, r)
	if !ok {
		return
	}

	product, err := s.directory.GetProduct(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if err := decodeOnto(r, product); err != nil {
		respondBadRequest(w, err)
		return
	}
	product.ID = chi.URLParam(r, "id")

	if err := s.directory.UpdateProduct(r.Context(), principal, product); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, product)
}

func (s *Server) handleDeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := s.directory.DeleteProduct(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (s *Server) handleListImages(w http.ResponseWriter, r *http.Request) {
	images, err := s.directory.ListImages(r.Context(), r.URL.Query().Get("productId"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, images)
}

// handleUploadImage accepts a multipart form with a "file" part and an
// optional "productId" field, stores the file and records it.
func (s *Server) handleUploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondBadRequest(w, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respondBadRequest(w, err)
		return
	}
	defer file.Close()

	fileName, url, err := s.images.Save(header.Filename, file)
	if err != nil {
		respondError(w, err)
		return
	}

	image := &models.ProductImage{FileName: fileName, URL: url}
	if productID := r.FormValue("productId"); productID != "" {
		image.ProductID = &productID
	}
	if err := s.directory.CreateImage(r.Context(), image); err != nil {
		// The record is authoritative; reap the orphaned file.
		_ = s.images.Remove(fileName)
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, image)
}

func (s *Server) handleGetImage(w http.ResponseWriter, r *http.Request) {
	image, err := s.directory.GetImage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, image)
}

func (s *Server) handleDeleteImage(w http.ResponseWriter, r *http.Request) {
	image, err := s.directory.GetImage(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	if err := s.directory.DeleteImage(r.Context(), image.ID); err != nil {
		respondError(w, err)
		return
	}
	if err := s.images.Remove(image.FileName); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
