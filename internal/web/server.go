// Package web serves the compliance dashboard: a static page, JSON report
// and chart endpoints behind the login gate, and CSV export.
package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Habeebu-abbi/fleetwatch/internal/auth"
	"github.com/Habeebu-abbi/fleetwatch/internal/compliance"
)

//go:embed static/*
var staticFiles embed.FS

// ReportBuilder produces the compliance report a render is built from.
type ReportBuilder interface {
	BuildReport(ctx context.Context) *compliance.Report
}

type Server struct {
	router  *http.ServeMux
	port    int
	reports ReportBuilder
	auth    *auth.Authenticator
	log     *log.Logger
}

func NewServer(port int, reports ReportBuilder, authenticator *auth.Authenticator, logger *log.Logger) *Server {
	s := &Server{
		router:  http.NewServeMux(),
		port:    port,
		reports: reports,
		auth:    authenticator,
		log:     logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to create static filesystem: %v", err))
	}
	s.router.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.router.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Login flow
	s.router.HandleFunc("GET /login", s.handleLogin)
	s.router.HandleFunc("GET /oauth/start", s.auth.HandleStart)
	s.router.HandleFunc("GET /oauth/callback", s.auth.HandleCallback)
	s.router.HandleFunc("POST /logout", s.auth.HandleLogout)

	// Dashboard page
	s.router.Handle("GET /{$}", s.protected(s.handleDashboard))

	// API endpoints consumed by the page
	s.router.Handle("GET /api/report", s.protected(s.handleAPIReport))
	s.router.Handle("GET /api/charts/{name}", s.protected(s.handleAPIChart))

	// Export
	s.router.Handle("GET /api/export/{name}", s.protected(s.handleAPIExport))
}

func (s *Server) protected(h http.HandlerFunc) http.Handler {
	return s.auth.RequireUser(h)
}

func (s *Server) Start(ctx context.Context) error {
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.log.Info("starting server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	// Handle graceful shutdown
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.log.Error("server shutdown error", "err", err)
		}
	}()

	err := server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil // Graceful shutdown
	}
	return err
}

// Handler exposes the routing table, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}
