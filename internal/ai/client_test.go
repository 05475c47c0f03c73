package ai

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	openai "github.com/sashabaranov/go-openai"
)

const gradingPayload = `{
	"grade": 11.5,
	"strengths": ["Bonne méthode"],
	"improvements": ["Revoir les unités"],
	"detailedFeedback": "Plan d'action:\n1. Refaire les exercices",
	"subject": "Math",
	"level": "High School"
}`

func TestParseGradingManualOverride(t *testing.T) {
	manual := 15.0
	result, err := parseGrading(gradingPayload, &manual)
	if err != nil {
		t.Fatalf("parseGrading: %v", err)
	}
	// The supplied value replaces the model's grade exactly.
	if result.Grade != 15 {
		t.Errorf("grade = %v, want 15", result.Grade)
	}
	// Qualitative feedback from the model is kept.
	if len(result.Strengths) != 1 || result.Strengths[0] != "Bonne méthode" {
		t.Errorf("strengths = %v", result.Strengths)
	}
	if result.Subject != "Math" || result.Level != "High School" {
		t.Errorf("subject/level = %q/%q", result.Subject, result.Level)
	}
}

func TestParseGradingNoOverride(t *testing.T) {
	result, err := parseGrading(gradingPayload, nil)
	if err != nil {
		t.Fatalf("parseGrading: %v", err)
	}
	if result.Grade != 11.5 {
		t.Errorf("grade = %v, want model's 11.5", result.Grade)
	}
}

func TestParseGradingMalformed(t *testing.T) {
	_, err := parseGrading("not json at all", nil)
	var mErr *MalformedResponseError
	if !errors.As(err, &mErr) {
		t.Fatalf("expected MalformedResponseError, got %v", err)
	}
	if mErr.Raw != "not json at all" {
		t.Errorf("Raw = %q", mErr.Raw)
	}
}

func TestParseQuiz(t *testing.T) {
	raw := `{
		"title": "La photosynthèse",
		"questions": [
			{"id": "1", "question": "Quel gaz ?", "options": ["O2", "CO2"], "answer": "CO2", "explanation": "..."},
			{"id": "2", "question": "Vrai ou faux ?", "answer": "Vrai", "explanation": "..."}
		]
	}`
	quiz, err := parseQuiz(raw)
	if err != nil {
		t.Fatalf("parseQuiz: %v", err)
	}
	if quiz.Title != "La photosynthèse" {
		t.Errorf("title = %q", quiz.Title)
	}
	if len(quiz.Questions) != 2 {
		t.Fatalf("len = %d", len(quiz.Questions))
	}
	if len(quiz.Questions[0].Options) != 2 {
		t.Errorf("first question options = %v", quiz.Questions[0].Options)
	}
	if quiz.Questions[1].Options != nil {
		t.Errorf("second question should have no options, got %v", quiz.Questions[1].Options)
	}
}

func TestParseQuizMalformed(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"bad json", `{"title": `},
		{"no questions", `{"title": "x", "questions": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseQuiz(tt.raw)
			var mErr *MalformedResponseError
			if !errors.As(err, &mErr) {
				t.Fatalf("expected MalformedResponseError, got %v", err)
			}
		})
	}
}

func TestQuizSchemaRequiredFields(t *testing.T) {
	s := quizSchema(false)
	if len(s.Required) != 2 {
		t.Fatalf("top-level required = %v", s.Required)
	}
	q := s.Properties["questions"].Items
	if q == nil {
		t.Fatal("questions item schema missing")
	}
	for _, field := range []string{"id", "question", "answer", "explanation"} {
		if !contains(q.Required, field) {
			t.Errorf("question schema should require %q", field)
		}
	}
	if contains(q.Required, "options") {
		t.Error("options should not be required outside multiple choice")
	}

	mcq := quizSchema(true)
	if !contains(mcq.Properties["questions"].Items.Required, "options") {
		t.Error("multiple-choice schema should require options")
	}
}

func TestGradingSchemaRequiredFields(t *testing.T) {
	s := gradingSchema()
	for _, field := range []string{"grade", "strengths", "improvements", "detailedFeedback", "subject", "level"} {
		if !contains(s.Required, field) {
			t.Errorf("grading schema should require %q", field)
		}
	}
}

// newTestClient points a Client at an in-process fake completion endpoint.
func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(srv.URL+"/v1", "test", "m", "m")
}

func TestGenerateEmptyResponse(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"no choices", `{"choices": []}`},
		{"blank content", `{"choices": [{"index": 0, "message": {"role": "assistant", "content": " \n "}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				io.WriteString(w, tt.body)
			})
			_, err := c.GenerateQuizFromTopic(context.Background(), "Histoire", 3)
			if !errors.Is(err, ErrEmptyResponse) {
				t.Fatalf("err = %v, want ErrEmptyResponse", err)
			}
		})
	}
}

func TestGenerateTransportErrorUnmodified(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, `{"error": {"message": "boom", "type": "server_error"}}`)
	})

	_, err := c.GenerateQuizFromTopic(context.Background(), "Histoire", 3)
	var apiErr *openai.APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %T (%v), want the endpoint's error passed through", err, err)
	}
	if apiErr.Message != "boom" {
		t.Errorf("message = %q, want boom", apiErr.Message)
	}
}

func TestGenerateQuizFromTopicSuccess(t *testing.T) {
	payload := `{"title": "La Révolution française", "questions": [` +
		`{"id": "1", "question": "En quelle année ?", "options": ["1789", "1815"], "answer": "1789", "explanation": "..."}]}`
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"choices": [{"index": 0, "message": {"role": "assistant", "content": `+
			quote(payload)+`}}]}`)
	})

	quiz, err := c.GenerateQuizFromTopic(context.Background(), "La Révolution française", 3)
	if err != nil {
		t.Fatalf("GenerateQuizFromTopic: %v", err)
	}
	if quiz.Title != "La Révolution française" || len(quiz.Questions) != 1 {
		t.Errorf("quiz = %+v", quiz)
	}
}

// quote embeds s as a JSON string literal.
func quote(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
