// Package ai talks to the external generative model through an
// OpenAI-compatible API, using schema-constrained requests. It performs no
// retries; transport and remote errors go back to the caller unmodified.
package ai

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"

	"github.com/mzeinebou/edusmart/internal/ai/prompts"
	"github.com/mzeinebou/edusmart/internal/model"
)

// MinTopicQuestions is the minimum number of questions requested in
// topic mode.
const MinTopicQuestions = 5

// Client wraps an OpenAI-compatible API client. Quiz generation and grading
// may use different models (grading needs a vision-capable one).
type Client struct {
	api         *openai.Client
	textModel   string
	visionModel string
}

// New creates a new model client.
func New(baseURL, apiKey, textModel, visionModel string) *Client {
	config := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		config.BaseURL = baseURL
	}
	return &Client{
		api:         openai.NewClientWithConfig(config),
		textModel:   textModel,
		visionModel: visionModel,
	}
}

// GenerateQuizFromText generates a quiz from free-text source material.
// The question type is caller-selectable.
func (c *Client) GenerateQuizFromText(ctx context.Context, source string, qt model.QuizType, d model.Difficulty) (*model.QuizResult, error) {
	if !qt.Valid() {
		return nil, fmt.Errorf("unknown quiz type %q", qt)
	}
	if !d.Valid() {
		return nil, fmt.Errorf("difficulty %d out of range", d)
	}

	prompt, err := prompts.QuizFromText(qt, d, source)
	if err != nil {
		return nil, err
	}

	raw, err := c.complete(ctx, c.textModel, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}, "quiz", quizSchema(qt == model.QuizMCQ))
	if err != nil {
		return nil, err
	}
	return parseQuiz(raw)
}

// GenerateQuizFromTopic generates a multiple-choice quiz from a bare topic,
// asking for at least MinTopicQuestions questions.
func (c *Client) GenerateQuizFromTopic(ctx context.Context, topic string, d model.Difficulty) (*model.QuizResult, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("difficulty %d out of range", d)
	}

	prompt, err := prompts.QuizFromTopic(topic, d, MinTopicQuestions)
	if err != nil {
		return nil, err
	}

	raw, err := c.complete(ctx, c.textModel, []openai.ChatCompletionMessage{
		{Role: openai.ChatMessageRoleUser, Content: prompt},
	}, "quiz", quizSchema(true))
	if err != nil {
		return nil, err
	}
	return parseQuiz(raw)
}

// GradeWork grades a scanned student copy. The image travels as an embedded
// JPEG payload next to the instruction text. When manualGrade is non-nil the
// returned grade equals it exactly, whatever the model answered.
func (c *Client) GradeWork(ctx context.Context, imageJPEG []byte, subject, level string, manualGrade *float64) (*model.GradingResult, error) {
	prompt, err := prompts.Grading(subject, level, manualGrade)
	if err != nil {
		return nil, err
	}

	imageURL := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(imageJPEG)
	raw, err := c.complete(ctx, c.visionModel, []openai.ChatCompletionMessage{
		{
			Role: openai.ChatMessageRoleUser,
			MultiContent: []openai.ChatMessagePart{
				{
					Type:     openai.ChatMessagePartTypeImageURL,
					ImageURL: &openai.ChatMessageImageURL{URL: imageURL},
				},
				{Type: openai.ChatMessagePartTypeText, Text: prompt},
			},
		},
	}, "grading", gradingSchema())
	if err != nil {
		return nil, err
	}
	return parseGrading(raw, manualGrade)
}

// complete runs one chat completion constrained to the given JSON schema.
func (c *Client) complete(ctx context.Context, modelName string, messages []openai.ChatCompletionMessage, schemaName string, schema jsonschema.Definition) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:    modelName,
		Messages: messages,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name: schemaName,
				// Definition implements json.Marshaler on the pointer receiver.
				Schema: &schema,
				Strict: true,
			},
		},
		Temperature: 0.3,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	raw := resp.Choices[0].Message.Content
	if strings.TrimSpace(raw) == "" {
		return "", ErrEmptyResponse
	}
	slog.Debug("model response", "schema", schemaName, "raw", raw)
	return raw, nil
}

func parseQuiz(raw string) (*model.QuizResult, error) {
	var result model.QuizResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}
	if len(result.Questions) == 0 {
		return nil, &MalformedResponseError{Raw: raw, Err: fmt.Errorf("no questions in payload")}
	}
	return &result, nil
}

// parseGrading parses a grading payload and applies the manual-grade
// override. The override is a hard invariant: the supplied value replaces
// the model's numeric output bit for bit.
func parseGrading(raw string, manualGrade *float64) (*model.GradingResult, error) {
	var result model.GradingResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return nil, &MalformedResponseError{Raw: raw, Err: err}
	}
	if manualGrade != nil {
		result.Grade = *manualGrade
	}
	return &result, nil
}
