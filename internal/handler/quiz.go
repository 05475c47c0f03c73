package handler

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/mzeinebou/edusmart/internal/model"
	"github.com/mzeinebou/edusmart/internal/report"
)

func (h *Handler) handleQuizPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "quiz.html", pageData{
		Quiz: h.quiz.get(),
		Busy: h.quiz.tracker.Busy(),
	})
}

func (h *Handler) handleQuizGenerate(w http.ResponseWriter, r *http.Request) {
	source := strings.TrimSpace(r.FormValue("source"))
	quizType := model.QuizType(r.FormValue("type"))
	difficulty := parseDifficulty(r.FormValue("difficulty"))

	if source == "" || !quizType.Valid() {
		h.renderQuizError(w, r)
		return
	}

	seq, ok := h.quiz.tracker.Begin()
	if !ok {
		h.render(w, r, "quiz.html", pageData{Error: "ErrBusy", Quiz: h.quiz.get(), Busy: true})
		return
	}

	result, err := h.ai.GenerateQuizFromText(r.Context(), source, quizType, difficulty)
	if !h.quiz.tracker.Finish(seq) {
		// The flow moved on while we were waiting; drop the result.
		http.Redirect(w, r, "/quiz", http.StatusSeeOther)
		return
	}
	if err != nil {
		slog.Error("quiz generation failed", "error", err)
		h.renderQuizError(w, r)
		return
	}

	h.finishQuiz(w, r, result)
}

func (h *Handler) handleQuizTopic(w http.ResponseWriter, r *http.Request) {
	topic := strings.TrimSpace(r.FormValue("topic"))
	difficulty := parseDifficulty(r.FormValue("difficulty"))

	if topic == "" {
		h.renderQuizError(w, r)
		return
	}

	seq, ok := h.quiz.tracker.Begin()
	if !ok {
		h.render(w, r, "quiz.html", pageData{Error: "ErrBusy", Quiz: h.quiz.get(), Busy: true})
		return
	}

	result, err := h.ai.GenerateQuizFromTopic(r.Context(), topic, difficulty)
	if !h.quiz.tracker.Finish(seq) {
		http.Redirect(w, r, "/quiz", http.StatusSeeOther)
		return
	}
	if err != nil {
		slog.Error("quiz generation failed", "topic", topic, "error", err)
		h.renderQuizError(w, r)
		return
	}

	h.finishQuiz(w, r, result)
}

// finishQuiz records exactly one activity and then renders the result.
func (h *Handler) finishQuiz(w http.ResponseWriter, r *http.Request, result *model.QuizResult) {
	activity := model.NewActivity(model.ActivityQuiz, result.Title,
		fmt.Sprintf("%d Q", len(result.Questions)))
	if err := h.session.RecordActivity(activity); err != nil {
		slog.Error("record activity failed", "error", err)
	}
	h.quiz.set(result)
	h.render(w, r, "quiz.html", pageData{Quiz: result})
}

func (h *Handler) renderQuizError(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "quiz.html", pageData{Error: "ErrGeneration", Quiz: h.quiz.get()})
}

func (h *Handler) handleQuizExport(w http.ResponseWriter, r *http.Request) {
	quiz := h.quiz.get()
	if quiz == nil {
		http.Redirect(w, r, "/quiz", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		`attachment; filename="Quiz_`+sanitizeFilename(quiz.Title)+`.pdf"`)
	if err := report.WriteQuiz(w, *quiz); err != nil {
		slog.Error("quiz export failed", "error", err)
	}
}

func parseDifficulty(s string) model.Difficulty {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 3
	}
	return model.Difficulty(n)
}

// sanitizeFilename keeps download filenames header-safe.
func sanitizeFilename(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '"', '\\', '/', '\n', '\r':
			return '_'
		default:
			return r
		}
	}, s)
}
