// ABOUTME: Template rendering functions for the page endpoints
// ABOUTME: Loads templates from the embedded filesystem; notice copy is markdown

package web

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/yuin/goldmark"

	"github.com/2389/paperdesk/internal/pagecopy"
	"github.com/2389/paperdesk/internal/store"
)

// Template data types
type loginData struct {
	Title string
	Error string
}

type noticeData struct {
	Title   string
	Message template.HTML
}

type indexData struct {
	Title     string
	FirstName string
	ThirdName string
}

type leaveFormData struct {
	Title    string
	Requests []*store.LeaveRequest
}

// renderPage executes the named content template over the base layout.
func (s *Server) renderPage(w http.ResponseWriter, status int, page string, data any) {
	tmpl := template.Must(template.ParseFS(templateFS, "templates/base.html", "templates/"+page))

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "base", data); err != nil {
		s.logger.Error("failed to render page", "page", page, "error", err)
	}
}

// renderNotice renders the title/message notice page for the given copy
// key. The message copy is treated as markdown so editors can use links
// and emphasis without touching templates.
func (s *Server) renderNotice(w http.ResponseWriter, r *http.Request, copyPage string) {
	title := s.copy.Get(r.Context(), copyPage, pagecopy.FieldTitle)
	message := s.copy.Get(r.Context(), copyPage, pagecopy.FieldMessage)

	s.renderPage(w, http.StatusOK, "notice.html", noticeData{
		Title:   title,
		Message: s.renderMarkdown(message),
	})
}

// renderMarkdown converts markdown copy to HTML for the notice body.
// Conversion failures fall back to the raw text, escaped.
func (s *Server) renderMarkdown(md string) template.HTML {
	if md == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		s.logger.Warn("markdown conversion failed", "error", err)
		return template.HTML(template.HTMLEscapeString(md))
	}
	return template.HTML(buf.String())
}

// renderError401 answers with the 401 error page and a Bearer challenge.
func (s *Server) renderError401(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	s.renderPage(w, http.StatusUnauthorized, "error_401.html", noticeData{Title: "Not signed in"})
}

// renderError404 answers with the 404 error page.
func (s *Server) renderError404(w http.ResponseWriter) {
	s.renderPage(w, http.StatusNotFound, "error_404.html", noticeData{Title: "Not found"})
}
