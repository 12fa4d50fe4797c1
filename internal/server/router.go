package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bizdir/bizdirapi/internal/middleware"
)

// Router builds the full route tree. Everything under /api requires a
// session and passes the policy gate; login, image files and health stay
// public.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)

	if len(s.cfg.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   s.cfg.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/auth/login", s.handleLogin)

	// Uploaded images are public content.
	fileServer := http.StripPrefix("/images/", http.FileServer(http.Dir(s.images.Root())))
	r.Get("/images/*", fileServer.ServeHTTP)

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.RequireSession(s.iam))
		api.Use(middleware.EnforcePolicy(s.enforcer))

		api.Get("/auth/whoami", s.handleWhoAmI)

		api.Route("/users", func(rt chi.Router) {
			rt.Get("/", s.handleListUsers)
			rt.Post("/", s.handleCreateUser)
			rt.Get("/{id}", s.handleGetUser)
			rt.Patch("/{id}", s.handleUpdateUser)
			rt.Delete("/{id}", s.handleDeleteUser)
		})

		api.Route("/businesses", func(rt chi.Router) {
			rt.Get("/", s.handleListBusinesses)
			rt.Post("/", s.handleCreateBusiness)
			rt.Get("/{id}", s.handleGetBusiness)
			rt.Patch("/{id}", s.handleUpdateBusiness)
			rt.Delete("/{id}", s.handleDeleteBusiness)
		})

		api.Route("/products", func(rt chi.Router) {
			rt.Get("/", s.handleListProducts)
			rt.Post("/", s.handleCreateProduct)
			rt.Get("/{id}", s.handleGetProduct)
			rt.Patch("/{id}", s.handleUpdateProduct)
			rt.Delete("/{id}", s.handleDeleteProduct)
		})

		api.Route("/images", func(rt chi.Router) {
			rt.Get("/", s.handleListImages)
			rt.Post("/", s.handleUploadImage)
			rt.Get("/{id}", s.handleGetImage)
			rt.Delete("/{id}", s.handleDeleteImage)
		})

		api.Route("/reviews", func(rt chi.Router) {
			rt.Get("/", s.handleListReviews)
			rt.Post("/", s.handleCreateReview)
			rt.Get("/{id}", s.handleGetReview)
			rt.Patch("/{id}", s.handleUpdateReview)
			rt.Delete("/{id}", s.handleDeleteReview)
		})

		api.Route("/complaints", func(rt chi.Router) {
			rt.Get("/", s.handleListComplaints)
			rt.Post("/", s.handleCreateComplaint)
			rt.Get("/{id}", s.handleGetComplaint)
			rt.Patch("/{id}", s.handleUpdateComplaint)
			rt.Delete("/{id}", s.handleDeleteComplaint)
		})

		api.Route("/quotes", func(rt chi.Router) {
			rt.Get("/", s.handleListQuotes)
			rt.Post("/", s.handleCreateQuote)
			rt.Get("/{id}", s.handleGetQuote)
			rt.Patch("/{id}", s.handleUpdateQuote)
			rt.Delete("/{id}", s.handleDeleteQuote)
		})

		api.Route("/product-reviews", func(rt chi.Router) {
			rt.Get("/", s.handleListProductReviews)
			rt.Post("/", s.handleCreateProductReview)
			rt.Get("/{id}", s.handleGetProductReview)
			rt.Patch("/{id}", s.handleUpdateProductReview)
			rt.Delete("/{id}", s.handleDeleteProductReview)
		})

		api.Route("/product-complaints", func(rt chi.Router) {
			rt.Get("/", s.handleListProductComplaints)
			rt.Post("/", s.handleCreateProductComplaint)
			rt.Get("/{id}", s.handleGetProductComplaint)
			rt.Patch("/{id}", s.handleUpdateProductComplaint)
			rt.Delete("/{id}", s.handleDeleteProductComplaint)
		})

		api.Route("/review-replies", func(rt chi.Router) {
			rt.Get("/", s.handleListReviewReplies)
			rt.Post("/", s.handleCreateReviewReply)
			rt.Get("/{id}", s.handleGetReviewReply)
			rt.Patch("/{id}", s.handleUpdateReviewReply)
			rt.Delete("/{id}", s.handleDeleteReviewReply)
		})

		api.Route("/complaint-replies", func(rt chi.Router) {
			rt.Get("/", s.handleListComplaintReplies)
			rt.Post("/", s.handleCreateComplaintReply)
			rt.Get("/{id}", s.handleGetComplaintReply)
			rt.Patch("/{id}", s.handleUpdateComplaintReply)
			rt.Delete("/{id}", s.handleDeleteComplaintReply)
		})

		api.Route("/quote-replies", func(rt chi.Router) {
			rt.Get("/", s.handleListQuoteReplies)
			rt.Post("/", s.handleCreateQuoteReply)
			rt.Get("/{id}", s.handleGetQuoteReply)
			rt.Patch("/{id}", s.handleUpdateQuoteReply)
			rt.Delete("/{id}", s.handleDeleteQuoteReply)
		})

		api.Route("/job-listings", func(rt chi.Router) {
			rt.Get("/", s.handleListJobListings)
			rt.Post("/", s.handleCreateJobListing)
			rt.Get("/{id}", s.handleGetJobListing)
			rt.Patch("/{id}", s.handleUpdateJobListing)
			rt.Delete("/{id}", s.handleDeleteJobListing)
		})
	})

	return r
}
