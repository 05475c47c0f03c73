package handler

import (
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/mzeinebou/edusmart/internal/model"
	"github.com/mzeinebou/edusmart/internal/report"
)

// maxUploadBytes bounds the scanned copy upload (8 MiB).
const maxUploadBytes = 8 << 20

func (h *Handler) handleGraderPage(w http.ResponseWriter, r *http.Request) {
	h.renderGrader(w, r, pageData{
		Grading: h.grader.get(),
		Busy:    h.grader.tracker.Busy(),
	})
}

func (h *Handler) handleGrade(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		h.renderGraderError(w, r)
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		h.renderGraderError(w, r)
		return
	}
	defer file.Close()
	image, err := io.ReadAll(file)
	if err != nil || len(image) == 0 {
		h.renderGraderError(w, r)
		return
	}

	subject := strings.TrimSpace(r.FormValue("subject"))
	level := strings.TrimSpace(r.FormValue("level"))
	if subject == "" || level == "" {
		h.renderGraderError(w, r)
		return
	}

	var manualGrade *float64
	if raw := strings.TrimSpace(r.FormValue("manual_grade")); raw != "" {
		g, err := strconv.ParseFloat(raw, 64)
		if err != nil || g < 0 || g > model.GradeScale {
			h.renderGraderError(w, r)
			return
		}
		manualGrade = &g
	}

	seq, ok := h.grader.tracker.Begin()
	if !ok {
		h.renderGrader(w, r, pageData{Error: "ErrBusy", Grading: h.grader.get(), Busy: true})
		return
	}

	result, err := h.ai.GradeWork(r.Context(), image, subject, level, manualGrade)
	if !h.grader.tracker.Finish(seq) {
		http.Redirect(w, r, "/grader", http.StatusSeeOther)
		return
	}
	if err != nil {
		slog.Error("grading failed", "subject", subject, "error", err)
		h.renderGraderError(w, r)
		return
	}

	activity := model.NewActivity(model.ActivityGrading,
		subject+" - "+level, report.GradeLabel(result.Grade))
	if err := h.session.RecordActivity(activity); err != nil {
		slog.Error("record activity failed", "error", err)
	}
	h.grader.set(result)
	h.renderGrader(w, r, pageData{Grading: result})
}

func (h *Handler) handleGraderExport(w http.ResponseWriter, r *http.Request) {
	result := h.grader.get()
	if result == nil {
		http.Redirect(w, r, "/grader", http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		`attachment; filename="Evaluation_`+sanitizeFilename(result.Subject)+`.pdf"`)
	if err := report.WriteGrading(w, *result); err != nil {
		slog.Error("grading export failed", "error", err)
	}
}

func (h *Handler) renderGrader(w http.ResponseWriter, r *http.Request, data pageData) {
	if data.Grading != nil {
		data.GradeLabel = report.GradeLabel(data.Grading.Grade)
	}
	h.render(w, r, "grader.html", data)
}

func (h *Handler) renderGraderError(w http.ResponseWriter, r *http.Request) {
	h.renderGrader(w, r, pageData{Error: "ErrGrading", Grading: h.grader.get()})
}
