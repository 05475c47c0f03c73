package ai

import "github.com/sashabaranov/go-openai/jsonschema"

// quizSchema describes the quiz payload the model must produce.
// optionsRequired is set for multiple-choice quizzes, where every question
// carries an options list.
func quizSchema(optionsRequired bool) jsonschema.Definition {
	questionRequired := []string{"id", "question", "answer", "explanation"}
	if optionsRequired {
		questionRequired = append(questionRequired, "options")
	}
	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"title": {Type: jsonschema.String},
			"questions": {
				Type: jsonschema.Array,
				Items: &jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"id":       {Type: jsonschema.String},
						"question": {Type: jsonschema.String},
						"options": {
							Type:        jsonschema.Array,
							Description: "Choix proposés, pour les QCM uniquement",
							Items:       &jsonschema.Definition{Type: jsonschema.String},
						},
						"answer":      {Type: jsonschema.String},
						"explanation": {Type: jsonschema.String},
					},
					Required: questionRequired,
				},
			},
		},
		Required: []string{"title", "questions"},
	}
}

// gradingSchema describes the grading payload the model must produce.
func gradingSchema() jsonschema.Definition {
	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"grade": {Type: jsonschema.Number},
			"strengths": {
				Type:  jsonschema.Array,
				Items: &jsonschema.Definition{Type: jsonschema.String},
			},
			"improvements": {
				Type:  jsonschema.Array,
				Items: &jsonschema.Definition{Type: jsonschema.String},
			},
			"detailedFeedback": {Type: jsonschema.String},
			"subject":          {Type: jsonschema.String},
			"level":            {Type: jsonschema.String},
		},
		Required: []string{"grade", "strengths", "improvements", "detailedFeedback", "subject", "level"},
	}
}
