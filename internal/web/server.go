// Package web is the HTTP surface: route wiring, the soft credential
// gate, the view-state resolver and the thin template presentation.
package web

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"linkdrop/internal/auth"
	"linkdrop/internal/capture"
	"linkdrop/internal/config"
	"linkdrop/internal/lifecycle"
)

// Server wires the core services to their routes.
type Server struct {
	cfg       config.Config
	capture   *capture.Service
	lifecycle *lifecycle.Manager
	auth      *auth.Service
	mux       *http.ServeMux
	views     *Templates
	log       logrus.FieldLogger
}

// NewServer builds the HTTP surface over the given services.
func NewServer(cfg config.Config, captureSvc *capture.Service, lifecycleMgr *lifecycle.Manager, authSvc *auth.Service, logger logrus.FieldLogger) *Server {
	s := &Server{
		cfg:       cfg,
		capture:   captureSvc,
		lifecycle: lifecycleMgr,
		auth:      authSvc,
		mux:       http.NewServeMux(),
		views:     MustParseTemplates(),
		log:       logger.WithField("component", "web"),
	}
	s.routes()
	return s
}

// Handler returns the full handler chain, every route behind the soft
// credential gate except where routes() says otherwise.
func (s *Server) Handler() http.Handler {
	return s.gate(s.mux)
}

func (s *Server) verifyToken(token string) (auth.Identity, error) {
	return auth.VerifyToken(token, []byte(s.cfg.JWTSecret))
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /{$}", s.handleFront)
	s.mux.HandleFunc("GET /by/{tag}", s.handleByTag)
	s.mux.HandleFunc("GET /archive", s.handleArchive)
	s.mux.HandleFunc("GET /archive/{tag}", s.handleArchive)
	s.mux.HandleFunc("GET /contents/{id}", s.handleContents)
	s.mux.HandleFunc("GET /editor/{id}", s.handleEditor)
	s.mux.HandleFunc("GET /starred/{id}", s.handleToggleStarred)
	s.mux.HandleFunc("GET /archived/{id}", s.handleToggleArchived)
	s.mux.HandleFunc("GET /remove/{id}", s.handleRemove)
	s.mux.HandleFunc("GET /save", s.handleSave)
	s.mux.HandleFunc("GET /login", s.handleLoginForm)
	s.mux.HandleFunc("POST /login", s.handleLogin)
	s.mux.HandleFunc("POST /register", s.handleRegister)
	s.mux.HandleFunc("GET /logout", s.handleLogout)
}
