package model

import (
	"context"
	"strconv"
	"time"
)

// Role represents a user's profile for the session.
type Role string

const (
	// RoleStudent is a student profile.
	RoleStudent Role = "student"
	// RoleTeacher is a teacher profile; only teachers may grade work.
	RoleTeacher Role = "teacher"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTeacher
}

// View identifies a top-level application view.
type View string

const (
	ViewDashboard View = "dashboard"
	ViewQuiz      View = "quiz"
	ViewGrader    View = "grader"
)

// ResolveView maps a requested view to the view the user is allowed to see.
// It is total: any unknown view, and the grader view for non-teachers,
// resolves to the dashboard.
func ResolveView(role Role, requested View) View {
	switch requested {
	case ViewDashboard:
		return ViewDashboard
	case ViewQuiz:
		return ViewQuiz
	case ViewGrader:
		if role == RoleTeacher {
			return ViewGrader
		}
		return ViewDashboard
	default:
		return ViewDashboard
	}
}

// Identity is the authenticated user for the current session.
// It is created at login and never mutated afterwards.
type Identity struct {
	Email       string `json:"email"`
	Role        Role   `json:"role"`
	DisplayName string `json:"name"`
}

// IsTeacher reports whether the identity carries the teacher role.
func (i Identity) IsTeacher() bool {
	return i.Role == RoleTeacher
}

// ActivityKind distinguishes the two kinds of recorded operations.
type ActivityKind string

const (
	ActivityQuiz    ActivityKind = "quiz"
	ActivityGrading ActivityKind = "grading"
)

// HistoryLimit is the maximum number of activities kept in the log.
const HistoryLimit = 10

// Activity records one completed quiz generation or grading operation.
type Activity struct {
	ID         string       `json:"id"`
	Kind       ActivityKind `json:"kind"`
	Timestamp  string       `json:"timestamp"`
	Title      string       `json:"title"`
	ScoreLabel string       `json:"score,omitempty"`
}

// NewActivity builds an activity stamped with the current time.
// The ID is derived from the timestamp at nanosecond precision.
func NewActivity(kind ActivityKind, title, scoreLabel string) Activity {
	now := time.Now()
	return Activity{
		ID:         strconv.FormatInt(now.UnixNano(), 10),
		Kind:       kind,
		Timestamp:  now.Format(time.RFC3339),
		Title:      title,
		ScoreLabel: scoreLabel,
	}
}

// QuizType selects the style of generated questions.
type QuizType string

const (
	QuizMCQ        QuizType = "mcq"
	QuizTrueFalse  QuizType = "true_false"
	QuizFillBlanks QuizType = "fill_blanks"
)

// Valid reports whether t is one of the known quiz types.
func (t QuizType) Valid() bool {
	return t == QuizMCQ || t == QuizTrueFalse || t == QuizFillBlanks
}

// Difficulty is the requested quiz difficulty on a 1-5 scale.
type Difficulty int

const (
	DifficultyMin Difficulty = 1
	DifficultyMax Difficulty = 5
)

// Valid reports whether d is within the 1-5 scale.
func (d Difficulty) Valid() bool {
	return d >= DifficultyMin && d <= DifficultyMax
}

// Question is a single generated quiz question. Options is nil for
// true/false and fill-in-the-blank questions.
type Question struct {
	ID          string   `json:"id"`
	Text        string   `json:"question"`
	Options     []string `json:"options,omitempty"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

// QuizResult is the output of one quiz generation call.
// It lives only in transient flow state and is never persisted.
type QuizResult struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

// GradeScale is the denominator of all grades.
const GradeScale = 20

// GradingResult is the output of one grading call.
//
// When the caller supplied a manual grade, Grade equals that value exactly;
// the model's own numeric suggestion is discarded while its qualitative
// feedback is kept.
type GradingResult struct {
	Grade            float64  `json:"grade"`
	Strengths        []string `json:"strengths"`
	Improvements     []string `json:"improvements"`
	DetailedFeedback string   `json:"detailedFeedback"`
	Subject          string   `json:"subject"`
	Level            string   `json:"level"`
}

type identityCtxKey struct{}

// ContextWithIdentity stores the authenticated identity in the request context.
func ContextWithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, id)
}

// IdentityFromContext retrieves the authenticated identity from context, or nil.
func IdentityFromContext(ctx context.Context) *Identity {
	id, _ := ctx.Value(identityCtxKey{}).(*Identity)
	return id
}
