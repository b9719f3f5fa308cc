// Package web exposes the portfolio over HTTP: public page-data
// endpoints, the contact form, and the token-protected admin API.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/cors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"portfolio/internal/config"
	"portfolio/internal/intake"
	"portfolio/internal/view"
)

// Server wires the services behind the HTTP routes.
type Server struct {
	cfg    config.Config
	log    *zap.Logger
	db     *gorm.DB
	views  *view.Service
	intake *intake.Handler
}

func NewServer(cfg config.Config, logger *zap.Logger, db *gorm.DB) *Server {
	return &Server{
		cfg:    cfg,
		log:    logger,
		db:     db,
		views:  view.NewService(db),
		intake: intake.NewHandler(db, time.Duration(cfg.Contact.CooldownSeconds)*time.Second),
	}
}

// Handler builds the full route table wrapped in CORS and access
// logging.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/home", s.handleHome)
	mux.HandleFunc("GET /api/about", s.handleAbout)
	mux.HandleFunc("GET /api/skills", s.handleSkills)
	mux.HandleFunc("GET /api/projects", s.handleProjects)
	mux.HandleFunc("GET /api/projects/{id}", s.handleProjectDetail)
	mux.HandleFunc("GET /api/blog", s.handleBlog)
	mux.HandleFunc("GET /api/blog/{slug}", s.handleBlogDetail)
	mux.HandleFunc("POST /api/contact", s.handleContact)

	mux.HandleFunc("POST /api/admin/login", s.handleLogin)
	mux.HandleFunc("GET /api/admin/contacts", s.requireAuth(s.handleListContacts))
	mux.HandleFunc("POST /api/admin/contacts/mark-read", s.requireAuth(s.handleMarkContacts(true)))
	mux.HandleFunc("POST /api/admin/contacts/mark-unread", s.requireAuth(s.handleMarkContacts(false)))
	mux.HandleFunc("GET /api/admin/{entity}", s.requireAuth(s.handleAdminList))
	mux.HandleFunc("POST /api/admin/{entity}", s.requireAuth(s.handleAdminCreate))
	mux.HandleFunc("GET /api/admin/{entity}/{id}", s.requireAuth(s.handleAdminGet))
	mux.HandleFunc("PUT /api/admin/{entity}/{id}", s.requireAuth(s.handleAdminUpdate))
	mux.HandleFunc("DELETE /api/admin/{entity}/{id}", s.requireAuth(s.handleAdminDelete))

	c := cors.New(cors.Options{
		AllowedOrigins: s.cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"*"},
	})
	return s.withAccessLog(c.Handler(mux))
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.cfg.ListenAddr,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", zap.String("addr", s.cfg.ListenAddr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
