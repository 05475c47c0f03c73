// Package prompts builds the natural-language instructions sent to the
// model. Templates are embedded and parsed once.
package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"sync"
	"text/template"

	"github.com/mzeinebou/edusmart/internal/model"
)

//go:embed templates/*.txt
var templateFS embed.FS

var (
	loadOnce      sync.Once
	loadErr       error
	quizTextTmpl  *template.Template
	quizTopicTmpl *template.Template
	gradingTmpl   *template.Template
)

func load() error {
	loadOnce.Do(func() {
		parse := func(name string) *template.Template {
			if loadErr != nil {
				return nil
			}
			data, err := templateFS.ReadFile("templates/" + name)
			if err != nil {
				loadErr = fmt.Errorf("read prompt template %s: %w", name, err)
				return nil
			}
			tmpl, err := template.New(name).Parse(string(data))
			if err != nil {
				loadErr = fmt.Errorf("parse prompt template %s: %w", name, err)
				return nil
			}
			return tmpl
		}
		quizTextTmpl = parse("quiz_text.txt")
		quizTopicTmpl = parse("quiz_topic.txt")
		gradingTmpl = parse("grading.txt")
	})
	return loadErr
}

type quizTextData struct {
	TypeLabel  string
	Difficulty int
	Source     string
}

type quizTopicData struct {
	Topic        string
	MinQuestions int
	Difficulty   int
}

type gradingData struct {
	Subject        string
	Level          string
	HasManualGrade bool
	ManualGrade    float64
}

// QuizFromText builds the prompt for quiz generation from source material.
func QuizFromText(qt model.QuizType, d model.Difficulty, source string) (string, error) {
	if err := load(); err != nil {
		return "", err
	}
	return render(quizTextTmpl, quizTextData{
		TypeLabel:  TypeLabel(qt),
		Difficulty: int(d),
		Source:     source,
	})
}

// QuizFromTopic builds the prompt for quiz generation from a bare topic.
func QuizFromTopic(topic string, d model.Difficulty, minQuestions int) (string, error) {
	if err := load(); err != nil {
		return "", err
	}
	return render(quizTopicTmpl, quizTopicData{
		Topic:        topic,
		MinQuestions: minQuestions,
		Difficulty:   int(d),
	})
}

// Grading builds the instruction accompanying a scanned copy. When manual is
// non-nil the model is told the grade is already decided and asked only for
// the qualitative justification.
func Grading(subject, level string, manual *float64) (string, error) {
	if err := load(); err != nil {
		return "", err
	}
	data := gradingData{Subject: subject, Level: level}
	if manual != nil {
		data.HasManualGrade = true
		data.ManualGrade = *manual
	}
	return render(gradingTmpl, data)
}

// TypeLabel returns the French label for a quiz type, as shown to the model.
func TypeLabel(qt model.QuizType) string {
	switch qt {
	case model.QuizTrueFalse:
		return "Vrai/Faux"
	case model.QuizFillBlanks:
		return "Trous"
	default:
		return "QCM"
	}
}

func render(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
