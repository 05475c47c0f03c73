// Package report renders quiz and grading results as paginated PDF
// documents. It is a pure layout transformation: result data is never
// altered, and rendering the same result twice produces identical bytes.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/mzeinebou/edusmart/internal/model"
)

// Fixed metadata dates keep the output deterministic.
var fixedDate = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

const (
	pageBreakY = 260.0
	topY       = 20.0
)

func newDoc() (*fpdf.Fpdf, func(string) string) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCreationDate(fixedDate)
	pdf.SetModificationDate(fixedDate)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	return pdf, tr
}

// WriteQuiz lays out a quiz: title, then numbered question blocks with a
// bracketed checkbox per option, breaking to a new page when vertical space
// runs out.
func WriteQuiz(w io.Writer, quiz model.QuizResult) error {
	pdf, tr := newDoc()

	pdf.SetFont("Helvetica", "", 22)
	pdf.SetTextColor(2, 132, 199)
	pdf.Text(20, topY, tr(quiz.Title))

	pdf.SetFontSize(12)
	pdf.SetTextColor(50, 50, 50)

	y := 35.0
	for i, q := range quiz.Questions {
		if y > pageBreakY {
			pdf.AddPage()
			y = topY
		}
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Text(20, y, tr(fmt.Sprintf("%d. %s", i+1, q.Text)))
		y += 10
		pdf.SetFont("Helvetica", "", 12)
		for _, opt := range q.Options {
			pdf.Text(25, y, tr("[ ] "+opt))
			y += 7
		}
		y += 5
	}

	return pdf.Output(w)
}

// WriteGrading lays out a grading report: header with subject, level and the
// grade, then bulleted strengths and improvements and a word-wrapped
// feedback block.
func WriteGrading(w io.Writer, g model.GradingResult) error {
	pdf, tr := newDoc()

	pdf.SetFont("Helvetica", "", 22)
	pdf.SetTextColor(2, 132, 199)
	pdf.Text(20, topY, tr("Rapport d'Évaluation EduSmart"))

	pdf.SetFontSize(14)
	pdf.SetTextColor(50, 50, 50)
	pdf.Text(20, 35, tr("Matière : "+g.Subject))
	pdf.Text(20, 42, tr("Niveau : "+g.Level))

	pdf.SetFontSize(28)
	pdf.SetTextColor(22, 163, 74)
	pdf.Text(160, 40, tr(GradeLabel(g.Grade)))

	pdf.SetFontSize(16)
	pdf.SetTextColor(0, 0, 0)
	pdf.Text(20, 60, tr("Points Forts :"))
	pdf.SetFontSize(12)
	for i, s := range g.Strengths {
		pdf.Text(25, 70+float64(i)*7, tr("- "+s))
	}

	pdf.SetFontSize(16)
	pdf.Text(20, 110, tr("Points à améliorer :"))
	pdf.SetFontSize(12)
	for i, s := range g.Improvements {
		pdf.Text(25, 120+float64(i)*7, tr("- "+s))
	}

	pdf.SetFontSize(16)
	pdf.Text(20, 160, tr("Feedback détaillé :"))
	pdf.SetFontSize(11)
	y := 170.0
	for _, line := range wrapFeedback(pdf, tr, g.DetailedFeedback, 170) {
		if y > pageBreakY {
			pdf.AddPage()
			y = topY
		}
		pdf.Text(20, y, line)
		y += 6
	}

	return pdf.Output(w)
}

// GradeLabel formats a grade as "G/20" without trailing zeros.
func GradeLabel(grade float64) string {
	return strconv.FormatFloat(grade, 'f', -1, 64) + "/" + strconv.Itoa(model.GradeScale)
}

// wrapFeedback splits feedback on line breaks (each line is an action item)
// and wraps each to the given width.
func wrapFeedback(pdf *fpdf.Fpdf, tr func(string) string, text string, width float64) []string {
	var out []string
	for _, para := range strings.Split(text, "\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		out = append(out, pdf.SplitText(tr(para), width)...)
	}
	return out
}
