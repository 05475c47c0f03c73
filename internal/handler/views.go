package handler

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/mzeinebou/edusmart/internal/i18n"
	"github.com/mzeinebou/edusmart/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(
	template.New("").Funcs(template.FuncMap{
		"T": i18n.T,
	}).ParseFS(templateFS, "templates/*.html"),
)

// pageData is the data passed to every page template.
type pageData struct {
	Ctx      context.Context
	Identity *model.Identity
	Error    string
	Busy     bool

	History []model.Activity
	Quiz    *model.QuizResult
	Grading *model.GradingResult

	GradeLabel string

	// Login form echo values.
	Email     string
	FirstName string
	LastName  string
	Role      model.Role
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data pageData) {
	h.renderStatus(w, r, http.StatusOK, name, data)
}

func (h *Handler) renderStatus(w http.ResponseWriter, r *http.Request, status int, name string, data pageData) {
	data.Ctx = r.Context()
	if data.Identity == nil {
		data.Identity = model.IdentityFromContext(r.Context())
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pageTmpl.ExecuteTemplate(w, name, data); err != nil {
		slog.Error("render error", "template", name, "error", err)
	}
}
