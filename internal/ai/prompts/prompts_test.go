package prompts

import (
	"strings"
	"testing"

	"github.com/mzeinebou/edusmart/internal/model"
)

func TestQuizFromText(t *testing.T) {
	prompt, err := QuizFromText(model.QuizTrueFalse, 4, "Le cycle de l'eau")
	if err != nil {
		t.Fatalf("QuizFromText: %v", err)
	}
	if !strings.Contains(prompt, "Le cycle de l'eau") {
		t.Error("prompt should contain the source text")
	}
	if !strings.Contains(prompt, "Vrai/Faux") {
		t.Error("prompt should name the question type")
	}
	if !strings.Contains(prompt, "4/5") {
		t.Error("prompt should state the difficulty")
	}
}

func TestQuizFromTopic(t *testing.T) {
	prompt, err := QuizFromTopic("La Révolution française", 2, 5)
	if err != nil {
		t.Fatalf("QuizFromTopic: %v", err)
	}
	if !strings.Contains(prompt, `"La Révolution française"`) {
		t.Error("prompt should quote the topic")
	}
	if !strings.Contains(prompt, "QCM") {
		t.Error("topic mode is always multiple choice")
	}
	if !strings.Contains(prompt, "au moins 5 questions") {
		t.Error("prompt should ask for the minimum question count")
	}
	if !strings.Contains(prompt, "2/5") {
		t.Error("prompt should state the difficulty")
	}
}

func TestGrading(t *testing.T) {
	t.Run("without manual grade", func(t *testing.T) {
		prompt, err := Grading("Math", "Lycée", nil)
		if err != nil {
			t.Fatalf("Grading: %v", err)
		}
		if !strings.Contains(prompt, "Math") || !strings.Contains(prompt, "Lycée") {
			t.Error("prompt should contain subject and level")
		}
		if !strings.Contains(prompt, "Donne une note sur 20") {
			t.Error("prompt should ask the model for its own grade")
		}
		if strings.Contains(prompt, "déjà attribué") {
			t.Error("prompt should not mention a pre-assigned grade")
		}
	})

	t.Run("with manual grade", func(t *testing.T) {
		manual := 15.0
		prompt, err := Grading("Math", "Lycée", &manual)
		if err != nil {
			t.Fatalf("Grading: %v", err)
		}
		if !strings.Contains(prompt, "la note de 15/20") {
			t.Error("prompt should state the pre-assigned grade")
		}
		if strings.Contains(prompt, "Donne une note sur 20") {
			t.Error("prompt should not ask for a new grade")
		}
	})
}

func TestTypeLabel(t *testing.T) {
	tests := []struct {
		qt   model.QuizType
		want string
	}{
		{model.QuizMCQ, "QCM"},
		{model.QuizTrueFalse, "Vrai/Faux"},
		{model.QuizFillBlanks, "Trous"},
	}
	for _, tt := range tests {
		if got := TypeLabel(tt.qt); got != tt.want {
			t.Errorf("TypeLabel(%q) = %q, want %q", tt.qt, got, tt.want)
		}
	}
}
