package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/MamiyevR/i-Learner/config"
	"github.com/MamiyevR/i-Learner/internal/schema"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
	"github.com/xeipuuv/gojsonschema"
)

// ErrDegraded marks a gateway result that is a deterministic placeholder
// rather than real model output. The placeholder is always usable, so callers
// may ignore the error where graceful degradation is wanted, but they can
// distinguish it from well-formed content.
var ErrDegraded = errors.New("ai provider returned degraded content")

// AIProvider is the completion gateway. One typed method per task; the task
// set is closed at compile time.
type AIProvider interface {
	GenerateEssay(ctx context.Context, content string) (schema.EssayContent, error)
	GenerateMCQ(ctx context.Context, content string) (schema.MCQContent, error)
	GradeEssay(ctx context.Context, essay, prompt, expectedAnswer, content string) (schema.EssayGradingResponse, error)
	GradeMCQ(ctx context.Context, questions, userAnswers, correctAnswers []string) (schema.MCQGradingResponse, error)
	Chat(ctx context.Context, message, assessmentContent string) (string, error)
	Summarize(ctx context.Context, content string) (schema.SummaryResponse, error)
}

type openAIProvider struct {
	client *openai.Client
	model  string
}

func NewAIProvider(cfg *config.Config) AIProvider {
	if cfg.OpenAI.ApiKey == "" {
		log.Warn().Msg("OPENAI_API_KEY is not set. AIProvider will return placeholder results.")
		return &openAIProvider{client: nil, model: cfg.OpenAI.Model}
	}
	return &openAIProvider{
		client: openai.NewClient(cfg.OpenAI.ApiKey),
		model:  cfg.OpenAI.Model,
	}
}

// createCompletion performs one chat completion. jsonMode requests a JSON
// object response and appends the schema instruction to the system prompt.
func (p *openAIProvider) createCompletion(ctx context.Context, systemPrompt, userPrompt string, jsonMode bool) (string, error) {
	if p.client == nil {
		return "", fmt.Errorf("openai client not initialized: %w", ErrDegraded)
	}

	req := openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	}
	if jsonMode {
		req.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, req)
	if err != nil {
		log.Error().Err(err).Msg("OpenAI completion failed")
		return "", fmt.Errorf("openai completion failed: %w", ErrDegraded)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		log.Warn().Msg("OpenAI returned no content")
		return "", fmt.Errorf("openai returned no content: %w", ErrDegraded)
	}
	return resp.Choices[0].Message.Content, nil
}

// structuredCompletion runs a completion in JSON mode and validates the reply
// against the task's schema before unmarshalling into out.
func (p *openAIProvider) structuredCompletion(ctx context.Context, systemPrompt, userPrompt, schemaDoc string, out interface{}) error {
	systemPrompt += "\nYou must respond with a JSON object that matches the following JSON schema:\n" + schemaDoc

	raw, err := p.createCompletion(ctx, systemPrompt, userPrompt, true)
	if err != nil {
		return err
	}

	jsonStr := extractJSON(raw)
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaDoc),
		gojsonschema.NewStringLoader(jsonStr),
	)
	if err != nil {
		log.Warn().Err(err).Str("raw", raw).Msg("Failed to validate model response")
		return fmt.Errorf("invalid model response: %w", ErrDegraded)
	}
	if !result.Valid() {
		log.Warn().Interface("violations", result.Errors()).Str("raw", raw).Msg("Model response does not match schema")
		return fmt.Errorf("model response does not match schema: %w", ErrDegraded)
	}

	if err := json.Unmarshal([]byte(jsonStr), out); err != nil {
		log.Warn().Err(err).Str("raw", raw).Msg("Failed to unmarshal model response")
		return fmt.Errorf("failed to unmarshal model response: %w", ErrDegraded)
	}
	return nil
}

func (p *openAIProvider) GenerateEssay(ctx context.Context, content string) (schema.EssayContent, error) {
	var essay schema.EssayContent
	err := p.structuredCompletion(ctx, essaySystemPrompt,
		fmt.Sprintf("Generate an essay prompt and expected answer based on the following content:\n\n%s", content),
		schema.EssayContentSchema, &essay)
	if err != nil {
		return schema.EssayContent{
			Prompt:         "Failed to generate essay prompt",
			ExpectedAnswer: "No answer generated",
		}, err
	}
	return essay, nil
}

func (p *openAIProvider) GenerateMCQ(ctx context.Context, content string) (schema.MCQContent, error) {
	var mcq schema.MCQContent
	err := p.structuredCompletion(ctx, mcqSystemPrompt,
		fmt.Sprintf("Generate 20 multiple choice questions based on the following content:\n\n%s", content),
		schema.MCQContentSchema, &mcq)
	if err != nil {
		return schema.MCQContent{Questions: []schema.MCQQuestion{}}, err
	}
	return mcq, nil
}

func (p *openAIProvider) GradeEssay(ctx context.Context, essay, prompt, expectedAnswer, content string) (schema.EssayGradingResponse, error) {
	var grading schema.EssayGradingResponse
	systemPrompt := fmt.Sprintf(gradeEssaySystemPrompt, prompt, content, expectedAnswer)
	err := p.structuredCompletion(ctx, systemPrompt,
		fmt.Sprintf("Grade this essay:\n\n%s", essay),
		schema.EssayGradingSchema, &grading)
	if err != nil {
		return schema.EssayGradingResponse{Score: 0, Feedback: ""}, err
	}

	// Clamp, in case the model ignores the schema bounds.
	if grading.Score < 0 {
		grading.Score = 0
	}
	if grading.Score > 100 {
		grading.Score = 100
	}
	return grading, nil
}

func (p *openAIProvider) GradeMCQ(ctx context.Context, questions, userAnswers, correctAnswers []string) (schema.MCQGradingResponse, error) {
	var grading schema.MCQGradingResponse
	systemPrompt := fmt.Sprintf(gradeMCQSystemPrompt, formatList(questions), formatList(correctAnswers))
	err := p.structuredCompletion(ctx, systemPrompt,
		fmt.Sprintf("Grade these answers:\n\n%s", formatList(userAnswers)),
		schema.MCQGradingSchema, &grading)
	if err != nil {
		return schema.MCQGradingResponse{Feedback: []string{}}, err
	}
	return grading, nil
}

func (p *openAIProvider) Chat(ctx context.Context, message, assessmentContent string) (string, error) {
	systemPrompt := fmt.Sprintf(chatSystemPrompt, assessmentContent)
	reply, err := p.createCompletion(ctx, systemPrompt, message, false)
	if err != nil {
		return "The AI tutor is unavailable right now. Please try again later.", err
	}
	return reply, nil
}

func (p *openAIProvider) Summarize(ctx context.Context, content string) (schema.SummaryResponse, error) {
	var summary schema.SummaryResponse
	err := p.structuredCompletion(ctx, summarySystemPrompt,
		fmt.Sprintf("Summarize the following content:\n\n%s", content),
		schema.SummarySchema, &summary)
	if err != nil {
		return schema.SummaryResponse{Summary: "", Keyword: ""}, err
	}
	return summary, nil
}

// extractJSON strips markdown code fences and surrounding prose so the object
// can be validated and unmarshalled.
func extractJSON(content string) string {
	content = strings.TrimSpace(content)

	if strings.HasPrefix(content, "```") {
		start := 3
		if newlineIdx := strings.Index(content[start:], "\n"); newlineIdx != -1 {
			start += newlineIdx + 1
		}
		if endIdx := strings.Index(content[start:], "```"); endIdx != -1 {
			content = content[start : start+endIdx]
		} else {
			content = content[start:]
		}
	}

	content = strings.TrimSpace(content)

	if startIdx := strings.Index(content, "{"); startIdx != -1 {
		if endIdx := strings.LastIndex(content, "}"); endIdx != -1 && endIdx > startIdx {
			content = content[startIdx : endIdx+1]
		}
	}

	return strings.TrimSpace(content)
}

func formatList(items []string) string {
	data, err := json.Marshal(items)
	if err != nil {
		return strings.Join(items, ", ")
	}
	return string(data)
}
