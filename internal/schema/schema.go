// Package schema defines the typed shapes exchanged with the completion
// gateway, together with the JSON schema each structured response must satisfy
// and the default-fill policy applied to missing fields.
package schema

// EssayContent is the content payload of an essay assessment.
type EssayContent struct {
	Prompt         string `json:"prompt"`
	ExpectedAnswer string `json:"expected_answer"`
}

// MCQQuestion is one generated multiple choice question. The correct answer is
// tracked separately from the distractors; a consumer inserts it at any
// position, so distractor order is shuffled once at generation time.
type MCQQuestion struct {
	Question      string   `json:"question"`
	Distractors   []string `json:"distractors"`
	CorrectAnswer string   `json:"correct_answer"`
}

// MCQContent is the content payload of an MCQ assessment.
type MCQContent struct {
	Questions []MCQQuestion `json:"questions"`
}

// EssayGradingResponse carries the model's verdict on an essay. For essays the
// model is the authority on the score.
type EssayGradingResponse struct {
	Score    float64 `json:"score"` // 0-100
	Feedback string  `json:"feedback"`
}

// MCQGradingResponse carries per-question explanatory feedback only; the MCQ
// score is computed mechanically and never taken from the model.
type MCQGradingResponse struct {
	Feedback []string `json:"feedback"`
}

// SummaryResponse is the result of the summarize task.
type SummaryResponse struct {
	Summary string `json:"summary"`
	Keyword string `json:"keyword"`
}

// FeedbackWithScore is the grading result handed back to the grade endpoint.
type FeedbackWithScore struct {
	Feedback []string `json:"feedback"`
	Score    float64  `json:"score"`
}

// JSON schema documents the gateway validates structured model output against
// before unmarshalling. Fields absent from `required` follow the default-fill
// policy below.
const (
	// Defaults: prompt -> "", expected_answer -> "".
	EssayContentSchema = `{
		"type": "object",
		"properties": {
			"prompt": {"type": "string"},
			"expected_answer": {"type": "string"}
		},
		"required": ["prompt"]
	}`

	// Defaults: distractors -> [], correct_answer -> "". An empty questions
	// list is schema-valid; generation treats it as a failed generation.
	MCQContentSchema = `{
		"type": "object",
		"properties": {
			"questions": {
				"type": "array",
				"items": {
					"type": "object",
					"properties": {
						"question": {"type": "string"},
						"distractors": {"type": "array", "items": {"type": "string"}},
						"correct_answer": {"type": "string"}
					},
					"required": ["question"]
				}
			}
		},
		"required": ["questions"]
	}`

	// Defaults: feedback -> "". Score is clamped to [0,100] after parsing.
	EssayGradingSchema = `{
		"type": "object",
		"properties": {
			"score": {"type": "number", "minimum": 0, "maximum": 100},
			"feedback": {"type": "string"}
		},
		"required": ["score"]
	}`

	// Defaults: feedback -> [].
	MCQGradingSchema = `{
		"type": "object",
		"properties": {
			"feedback": {"type": "array", "items": {"type": "string"}}
		},
		"required": ["feedback"]
	}`

	// Defaults: summary -> "", keyword -> "".
	SummarySchema = `{
		"type": "object",
		"properties": {
			"summary": {"type": "string"},
			"keyword": {"type": "string"}
		},
		"required": ["summary"]
	}`
)
