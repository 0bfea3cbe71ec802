package llm

import (
	"context"
	"fmt"
)

// Provider defines the interface for generative text model backends
type Provider interface {
	// Name returns the provider name
	Name() string

	// Answer generates an answer to a question grounded in the supplied
	// dataset context
	Answer(ctx context.Context, req AnswerRequest) (*AnswerResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// AnswerRequest contains the input for answer generation
type AnswerRequest struct {
	// Question is the user's natural-language question
	Question string

	// ContextJSON is the serialized dataset slice the model must ground
	// every number in
	ContextJSON string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// AnswerResponse contains the generated answer
type AnswerResponse struct {
	// Text is the generated answer
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g. Ollama, OpenAI-compatible gateways)
	BaseURL string

	// Timeout for API requests
	Timeout int // seconds

	// MaxTokens for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Model:     "",
		Timeout:   30,
		MaxTokens: 1500,
	}
}

// analystSystemPrompt steers the model toward grounded, structured MMM
// analysis. Every number in the answer must come from the supplied JSON;
// the verification engine downstream holds it to that.
const analystSystemPrompt = `You are an expert Marketing Mix Modeling (MMM) analyst. Your purpose is to translate complex MMM data from a structured JSON document into clear, actionable insights for a business user.

Core task: analyze the provided JSON data to answer user questions.

Step-by-step thought process:
1. Identify the core question (channel performance, budget allocation, reasons for underperformance).
2. Locate all relevant metrics in the JSON (ROI, mROI, spend, contribution, Hill parameters, adstock).
3. Synthesize the story: connect the metrics instead of listing them; relate high spend to diminishing returns and marginal ROI.
4. State the main takeaway at the very beginning.
5. Explain the "why" behind the answer using the numbers you found, with comparisons between channels for context.
6. Suggest a clear, justifiable action.
7. State the observed spend range for the channels mentioned to prevent incorrect assumptions at other spending levels.
8. Double-check that all numbers are from the JSON and the reasoning is sound.

Rules:
- Be clear and concise. Explain adstock (the carryover effect of ads) and saturation (where more spending stops producing proportional returns) in simple terms.
- Ground every claim in specific numbers from the JSON.
- Explain why a channel underperforms, not just that it does.

Output format:
Answer: a one-sentence direct answer.
Explanation: a paragraph with the reasoning; bullet points when comparing more than two channels.
Recommendations: a clear, actionable list.
Guardrails: the observed spend range for the relevant channels.
Source: the model version and the data period.
Confidence: High, Medium, or Low, based on model diagnostics like R² and MAPE.`

// BuildPrompt constructs the user prompt for answer generation
func BuildPrompt(question, contextJSON string) string {
	return fmt.Sprintf("User question: %s\nHere is the data: %s", question, contextJSON)
}
