package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/casbin/casbin/v2"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/bizdir/bizdirapi/internal/config"
	"github.com/bizdir/bizdirapi/internal/services/directory"
	"github.com/bizdir/bizdirapi/internal/services/iam"
	"github.com/bizdir/bizdirapi/internal/storage"
	"github.com/bizdir/bizdirapi/internal/validation"
)

// Server ties the HTTP surface to the services behind it.
type Server struct {
	cfg       *config.Config
	iam       *iam.Service
	directory *directory.Service
	images    *storage.LocalImageStore
	enforcer  casbin.IEnforcer
	validator *validation.Validator

	httpServer *http.Server
}

// New assembles the server. The validator is compiled here so schema
// problems fail startup rather than the first request.
func New(cfg *config.Config, iamSvc *iam.Service, dirSvc *directory.Service, images *storage.LocalImageStore, enforcer casbin.IEnforcer) (*Server, error) {
	validator, err := validation.New()
	if err != nil {
		return nil, fmt.Errorf("compile request schemas: %w", err)
	}

	s := &Server{
		cfg:       cfg,
		iam:       iamSvc,
		directory: dirSvc,
		images:    images,
		enforcer:  enforcer,
		validator: validator,
	}

	// h2c lets HTTP/2 clients connect without TLS; a proxy terminates TLS
	// in front of this process.
	s.httpServer = &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           h2c.NewHandler(s.Router(), &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// ListenAndServe blocks serving requests until the server is shut down.
func (s *Server) ListenAndServe() error {
	log.Printf("INFO: listening on %s", s.cfg.ServerAddr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
