// Package handler wires the HTTP surface: login, dashboard, the quiz and
// grading flows, and PDF exports.
package handler

import (
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/mzeinebou/edusmart/internal/ai"
	"github.com/mzeinebou/edusmart/internal/auth"
	"github.com/mzeinebou/edusmart/internal/flow"
	"github.com/mzeinebou/edusmart/internal/model"
	"github.com/mzeinebou/edusmart/internal/session"
	"github.com/mzeinebou/edusmart/internal/store"
)

// Config holds handler-level settings.
type Config struct {
	SecureCookies bool
}

// resultSlot holds the last result of a flow together with its submission
// tracker. Each flow instance has exactly one in-flight request at a time.
type resultSlot[T any] struct {
	tracker flow.Tracker

	mu     sync.Mutex
	result *T
}

func (s *resultSlot[T]) set(v *T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.result = v
}

func (s *resultSlot[T]) get() *T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Handler holds shared dependencies for HTTP handlers.
type Handler struct {
	session *session.Session
	store   *store.Store
	ai      *ai.Client
	policy  auth.Policy
	config  Config

	login  flow.Tracker
	quiz   resultSlot[model.QuizResult]
	grader resultSlot[model.GradingResult]
}

// New creates a new Handler.
func New(sess *session.Session, st *store.Store, client *ai.Client, policy auth.Policy, cfg Config) *Handler {
	return &Handler{session: sess, store: st, ai: client, policy: policy, config: cfg}
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/login", h.handleLoginPage)
	r.Post("/login", h.handleLogin)
	r.Post("/logout", h.handleLogout)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Get("/", h.handleDashboard)
		r.Get("/quiz", h.handleQuizPage)
		r.Post("/quiz/generate", h.handleQuizGenerate)
		r.Post("/quiz/topic", h.handleQuizTopic)
		r.Get("/quiz/export", h.handleQuizExport)

		r.Group(func(r chi.Router) {
			r.Use(h.requireGrader)
			r.Get("/grader", h.handleGraderPage)
			r.Post("/grader/grade", h.handleGrade)
			r.Get("/grader/export", h.handleGraderExport)
		})
	})
}

func (h *Handler) handleDashboard(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "dashboard.html", pageData{History: h.session.History()})
}
