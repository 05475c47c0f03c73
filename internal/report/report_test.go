package report

import (
	"bytes"
	"testing"

	"github.com/mzeinebou/edusmart/internal/model"
)

func sampleQuiz() model.QuizResult {
	questions := make([]model.Question, 0, 40)
	for i := 0; i < 40; i++ {
		questions = append(questions, model.Question{
			ID:          "q",
			Text:        "Quelle est la capitale de la Mauritanie ?",
			Options:     []string{"Nouakchott", "Dakar", "Rabat", "Tunis"},
			Answer:      "Nouakchott",
			Explanation: "Nouakchott est la capitale depuis 1960.",
		})
	}
	return model.QuizResult{Title: "Géographie de l'Afrique", Questions: questions}
}

func sampleGrading() model.GradingResult {
	return model.GradingResult{
		Grade:        14.5,
		Strengths:    []string{"Raisonnement clair", "Bonne maîtrise des formules"},
		Improvements: []string{"Soigner la rédaction", "Vérifier les unités"},
		DetailedFeedback: "Plan d'action :\n" +
			"1. Reprendre les exercices du chapitre 3.\n" +
			"2. Refaire les démonstrations en détaillant chaque étape.",
		Subject: "Mathématiques",
		Level:   "Lycée",
	}
}

func TestWriteQuizDeterministic(t *testing.T) {
	quiz := sampleQuiz()

	var first, second bytes.Buffer
	if err := WriteQuiz(&first, quiz); err != nil {
		t.Fatalf("WriteQuiz: %v", err)
	}
	if err := WriteQuiz(&second, quiz); err != nil {
		t.Fatalf("WriteQuiz: %v", err)
	}

	if first.Len() == 0 {
		t.Fatal("empty output")
	}
	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("two exports of the same quiz should be byte-identical")
	}
	if !bytes.HasPrefix(first.Bytes(), []byte("%PDF")) {
		t.Error("output should be a PDF document")
	}
}

func TestWriteQuizDoesNotMutateResult(t *testing.T) {
	quiz := sampleQuiz()
	title := quiz.Title
	optionCount := len(quiz.Questions[0].Options)

	var buf bytes.Buffer
	if err := WriteQuiz(&buf, quiz); err != nil {
		t.Fatalf("WriteQuiz: %v", err)
	}

	if quiz.Title != title || len(quiz.Questions) != 40 || len(quiz.Questions[0].Options) != optionCount {
		t.Error("exporter must not alter result data")
	}
}

func TestWriteGradingDeterministic(t *testing.T) {
	grading := sampleGrading()

	var first, second bytes.Buffer
	if err := WriteGrading(&first, grading); err != nil {
		t.Fatalf("WriteGrading: %v", err)
	}
	if err := WriteGrading(&second, grading); err != nil {
		t.Fatalf("WriteGrading: %v", err)
	}

	if !bytes.Equal(first.Bytes(), second.Bytes()) {
		t.Error("two exports of the same grading should be byte-identical")
	}
	if !bytes.HasPrefix(first.Bytes(), []byte("%PDF")) {
		t.Error("output should be a PDF document")
	}
}

func TestGradeLabel(t *testing.T) {
	tests := []struct {
		grade float64
		want  string
	}{
		{15, "15/20"},
		{14.5, "14.5/20"},
		{0, "0/20"},
		{20, "20/20"},
	}
	for _, tt := range tests {
		if got := GradeLabel(tt.grade); got != tt.want {
			t.Errorf("GradeLabel(%v) = %q, want %q", tt.grade, got, tt.want)
		}
	}
}
