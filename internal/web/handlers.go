package web

import (
	"errors"
	"net/http"
	"time"

	"linkdrop/internal/auth"
	"linkdrop/internal/domain"
	"linkdrop/internal/storage"
)

func (s *Server) render(w http.ResponseWriter, name string, data PageData) {
	if err := s.views.Render(w, name, data); err != nil {
		s.log.WithError(err).WithField("template", name).Error("Template render failed")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// redirectBack sends the client to the referring page, or the front
// page when there is none. Mutating routes use it so a toggle from any
// listing lands back on the same listing.
func redirectBack(w http.ResponseWriter, r *http.Request) {
	refer := r.Referer()
	if refer == "" {
		refer = "/"
	}
	http.Redirect(w, r, refer, http.StatusFound)
}

// listPage renders a listing with the view resolved from the gate
// outcome and the ?view hint. A query failure degrades to an empty
// listing with the error flagged, never a blank 500.
func (s *Server) listPage(w http.ResponseWriter, r *http.Request, url, tag string, archive bool, links []domain.Link, queryErr error) {
	outcome := OutcomeFrom(r.Context())
	view := ResolveView(outcome.Authenticated, r.URL.Query().Get("view"))

	data := PageData{
		Links:   links,
		Tags:    domain.TagCatalog,
		Tag:     tag,
		Archive: archive,
		View:    SwitchView(view, url),
	}
	if queryErr != nil {
		s.log.WithError(queryErr).Error("Link query failed")
		data.Links = nil
		data.Error = "could not load links"
	}
	s.render(w, view, data)
}

// GET /
func (s *Server) handleFront(w http.ResponseWriter, r *http.Request) {
	links, err := s.lifecycle.ListStarred(r.Context())
	s.listPage(w, r, "/", "", false, links, err)
}

// GET /by/{tag}
func (s *Server) handleByTag(w http.ResponseWriter, r *http.Request) {
	tag := r.PathValue("tag")
	links, err := s.lifecycle.ListByTag(r.Context(), tag)
	s.listPage(w, r, "/by/"+tag, tag, false, links, err)
}

// GET /archive and GET /archive/{tag}
func (s *Server) handleArchive(w http.ResponseWriter, r *http.Request) {
	tag := r.PathValue("tag")
	url := "/archive"
	if tag == "" {
		tag = domain.DefaultTag
	} else {
		url += "/" + tag
	}
	links, err := s.lifecycle.ListArchived(r.Context(), tag)
	s.listPage(w, r, url, tag, true, links, err)
}

// GET /contents/{id}
func (s *Server) handleContents(w http.ResponseWriter, r *http.Request) {
	if !OutcomeFrom(r.Context()).Authenticated {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	link, err := s.lifecycle.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.log.WithError(err).Error("Failed to load link detail")
		s.render(w, "error", PageData{Error: "link not found"})
		return
	}
	s.render(w, "contents", PageData{Link: link})
}

// GET /editor/{id}
func (s *Server) handleEditor(w http.ResponseWriter, r *http.Request) {
	if !OutcomeFrom(r.Context()).Authenticated {
		w.WriteHeader(http.StatusUnauthorized)
		s.render(w, "error", PageData{Error: "you must be logged in to edit"})
		return
	}
	link, err := s.lifecycle.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		s.log.WithError(err).Error("Failed to load link for editing")
		w.WriteHeader(http.StatusNotFound)
		s.render(w, "error", PageData{Error: "link not found"})
		return
	}
	s.render(w, "editor", PageData{Link: link})
}

// GET /starred/{id}
func (s *Server) handleToggleStarred(w http.ResponseWriter, r *http.Request) {
	if !OutcomeFrom(r.Context()).Authenticated {
		redirectBack(w, r)
		return
	}
	if _, err := s.lifecycle.ToggleStarred(r.Context(), r.PathValue("id")); err != nil {
		s.log.WithError(err).Error("Failed to toggle starred")
	}
	redirectBack(w, r)
}

// GET /archived/{id}
func (s *Server) handleToggleArchived(w http.ResponseWriter, r *http.Request) {
	if !OutcomeFrom(r.Context()).Authenticated {
		redirectBack(w, r)
		return
	}
	if _, err := s.lifecycle.ToggleArchived(r.Context(), r.PathValue("id")); err != nil {
		s.log.WithError(err).Error("Failed to toggle archived")
	}
	redirectBack(w, r)
}

// GET /remove/{id}
func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	if !OutcomeFrom(r.Context()).Authenticated {
		redirectBack(w, r)
		return
	}
	if err := s.lifecycle.Remove(r.Context(), r.PathValue("id")); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.log.WithField("id", r.PathValue("id")).Warn("Delete of unknown link")
		} else {
			s.log.WithError(err).Error("Failed to delete link")
		}
	}
	redirectBack(w, r)
}

// GET /save?url=...&tag=...
func (s *Server) handleSave(w http.ResponseWriter, r *http.Request) {
	if !OutcomeFrom(r.Context()).Authenticated {
		redirectBack(w, r)
		return
	}
	srcURL := r.URL.Query().Get("url")
	if srcURL == "" {
		s.log.Warn("Save request without url parameter")
		redirectBack(w, r)
		return
	}
	if _, err := s.capture.Capture(r.Context(), srcURL, r.URL.Query().Get("tag")); err != nil {
		s.log.WithError(err).WithField("url", srcURL).Error("Capture failed")
	}
	redirectBack(w, r)
}

// GET /login
func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	s.render(w, "login", PageData{})
}

// POST /login
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	token, _, err := s.auth.Login(r.Context(), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		s.render(w, "error", PageData{Error: loginErrorMessage(err)})
		return
	}
	s.setSessionCookie(w, token)
	http.Redirect(w, r, "/", http.StatusFound)
}

// POST /register
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	token, _, err := s.auth.Register(r.Context(), r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		s.render(w, "error", PageData{Error: loginErrorMessage(err)})
		return
	}
	s.setSessionCookie(w, token)
	http.Redirect(w, r, "/", http.StatusFound)
}

// GET /logout
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Now().Add(-time.Hour),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	redirectBack(w, r)
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(s.cfg.SessionCookieTTL),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// loginErrorMessage maps credential errors to what the user sees,
// keeping unknown-email and wrong-password indistinguishable and
// hiding everything else behind a generic message.
func loginErrorMessage(err error) string {
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		return auth.ErrInvalidCredentials.Error()
	case errors.Is(err, auth.ErrValidation):
		return err.Error()
	case errors.Is(err, auth.ErrEmailTaken):
		return auth.ErrEmailTaken.Error()
	default:
		return "something went wrong, please try again"
	}
}
