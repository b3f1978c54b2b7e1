package web

import "net/http"

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.serveStaticPage(w, r, "static/index.html")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	s.serveStaticPage(w, r, "static/login.html")
}

func (s *Server) serveStaticPage(w http.ResponseWriter, r *http.Request, name string) {
	page, err := staticFiles.ReadFile(name)
	if err != nil {
		http.Error(w, "page not found", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(page)
}
