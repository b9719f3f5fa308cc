package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"portfolio/internal/database"
	"portfolio/internal/intake"
)

// pageParam reads the page query parameter. Anything unparseable falls
// back to page 1; out-of-range values are clamped later by pagination.
func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		return 1
	}
	return page
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	home, err := s.views.Home(r.Context())
	if err != nil {
		s.serverError(w, "home view", err)
		return
	}
	s.writeJSON(w, http.StatusOK, home)
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	about, err := s.views.About(r.Context())
	if err != nil {
		s.serverError(w, "about view", err)
		return
	}
	s.writeJSON(w, http.StatusOK, about)
}

func (s *Server) handleSkills(w http.ResponseWriter, r *http.Request) {
	groups, err := s.views.SkillsGrouped(r.Context())
	if err != nil {
		s.serverError(w, "skills view", err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{"skill_groups": groups})
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	list, err := s.views.ListProjects(r.Context(), r.URL.Query().Get("search"), pageParam(r))
	if err != nil {
		s.serverError(w, "project listing", err)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleProjectDetail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseUint(r.PathValue("id"), 10, 32)
	if err != nil {
		s.writeError(w, http.StatusNotFound, "project not found")
		return
	}
	detail, err := s.views.GetProject(r.Context(), uint(id))
	if errors.Is(err, database.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "project not found")
		return
	}
	if err != nil {
		s.serverError(w, "project detail", err)
		return
	}
	s.writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleBlog(w http.ResponseWriter, r *http.Request) {
	list, err := s.views.ListPosts(r.Context(), r.URL.Query().Get("search"), pageParam(r))
	if err != nil {
		s.serverError(w, "blog listing", err)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

func (s *Server) handleBlogDetail(w http.ResponseWriter, r *http.Request) {
	detail, err := s.views.GetPost(r.Context(), r.PathValue("slug"))
	if errors.Is(err, database.ErrNotFound) {
		s.writeError(w, http.StatusNotFound, "post not found")
		return
	}
	if err != nil {
		s.serverError(w, "blog detail", err)
		return
	}
	s.writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var sub intake.Submission
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	} else {
		if err := r.ParseForm(); err != nil {
			s.writeError(w, http.StatusBadRequest, "invalid form data")
			return
		}
		sub = intake.Submission{
			Name:    r.PostFormValue("name"),
			Email:   r.PostFormValue("email"),
			Subject: r.PostFormValue("subject"),
			Message: r.PostFormValue("message"),
		}
	}

	_, err := s.intake.Submit(r.Context(), clientAddr(r), sub)
	var verr *intake.ValidationError
	switch {
	case errors.As(err, &verr):
		s.writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, intake.ErrThrottled):
		s.writeError(w, http.StatusTooManyRequests, "please wait before sending another message")
	case err != nil:
		s.serverError(w, "contact submission", err)
	default:
		s.writeJSON(w, http.StatusCreated, map[string]string{
			"status":  "ok",
			"message": "Thank you for your message! I will get back to you soon.",
		})
	}
}

func (s *Server) serverError(w http.ResponseWriter, op string, err error) {
	s.log.Error(op, zap.Error(err))
	s.writeError(w, http.StatusInternalServerError, "internal server error")
}
