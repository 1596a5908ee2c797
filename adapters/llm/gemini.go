package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/timbra-ai/voicebridge/domain/repositories"
)

const (
	defaultModel           = "gemini-2.0-flash"
	defaultTemperature     = 0.7
	defaultTopP            = 0.95
	defaultMaxOutputTokens = 256
)

// GeminiConfig holds configuration for the GeminiResponder.
// Required fields:
// - APIKey: Google AI API key
// Optional fields with defaults:
// - Model: the Gemini model ID (default: "gemini-2.0-flash")
// - Temperature: sampling temperature between 0 and 1 (default: 0.7)
// - TopP: nucleus sampling value between 0 and 1 (default: 0.95)
// - MaxOutputTokens: reply length cap (default: 256, short replies read
//   better over the phone)
type GeminiConfig struct {
	APIKey          string
	Model           string
	Temperature     float32
	TopP            float32
	MaxOutputTokens int
}

// ValidateGeminiConfig validates the GeminiConfig
func ValidateGeminiConfig(config GeminiConfig) error {
	if config.APIKey == "" {
		return fmt.Errorf("Google AI API key is required")
	}

	if config.Temperature != 0 && (config.Temperature < 0 || config.Temperature > 1) {
		return fmt.Errorf("temperature must be between 0 and 1, got %f", config.Temperature)
	}

	if config.TopP != 0 && (config.TopP < 0 || config.TopP > 1) {
		return fmt.Errorf("topP must be between 0 and 1, got %f", config.TopP)
	}

	if config.MaxOutputTokens < 0 {
		return fmt.Errorf("maxOutputTokens must be positive, got %d", config.MaxOutputTokens)
	}

	return nil
}

// GeminiResponder implements the Responder interface using Google's Gemini
// API. The session controller owns the conversation history, so every call
// ships the full message list; the responder itself is stateless and safe
// for concurrent sessions.
type GeminiResponder struct {
	client          *genai.Client
	logger          *zap.Logger
	model           string
	temperature     float32
	topP            float32
	maxOutputTokens int
}

var _ repositories.Responder = (*GeminiResponder)(nil)

// NewGeminiResponder creates a new Gemini responder instance
func NewGeminiResponder(ctx context.Context, config GeminiConfig, logger *zap.Logger) (*GeminiResponder, error) {
	if err := ValidateGeminiConfig(config); err != nil {
		return nil, err
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := config.Model
	if model == "" {
		model = defaultModel
		logger.Info("Using default model", zap.String("model", model))
	}

	temperature := config.Temperature
	if temperature == 0 {
		temperature = float32(defaultTemperature)
	}

	topP := config.TopP
	if topP == 0 {
		topP = float32(defaultTopP)
	}

	maxOutputTokens := config.MaxOutputTokens
	if maxOutputTokens == 0 {
		maxOutputTokens = defaultMaxOutputTokens
	}

	return &GeminiResponder{
		client:          client,
		logger:          logger,
		model:           model,
		temperature:     temperature,
		topP:            topP,
		maxOutputTokens: maxOutputTokens,
	}, nil
}

// Respond generates the assistant reply for the given conversation context.
// A leading system message becomes the model's system instruction; the rest
// maps onto Gemini user/model contents in order.
func (g *GeminiResponder) Respond(ctx context.Context, messages []repositories.Message) (string, error) {
	system, contents := splitMessages(messages)

	if len(contents) == 0 {
		return "", &repositories.ResponderError{Err: fmt.Errorf("no conversation content to respond to")}
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(g.temperature),
		TopP:            genai.Ptr(g.topP),
		MaxOutputTokens: int32(g.maxOutputTokens),
	}
	if system != "" {
		config.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	response, err := g.client.Models.GenerateContent(ctx, g.model, contents, config)
	if err != nil {
		g.logger.Error("Failed to generate content", zap.Error(err))
		return "", &repositories.ResponderError{Err: err}
	}

	text := extractText(response)
	if text == "" {
		g.logger.Warn("Gemini returned no text content")
		return "", &repositories.ResponderError{Err: fmt.Errorf("empty response from model %s", g.model)}
	}

	return text, nil
}

// splitMessages separates a leading system message from the dialog turns and
// converts the turns to Gemini contents.
func splitMessages(messages []repositories.Message) (system string, contents []*genai.Content) {
	for i, msg := range messages {
		if i == 0 && msg.Role == repositories.RoleSystem {
			system = msg.Content
			continue
		}

		var role genai.Role = genai.RoleUser
		if msg.Role == repositories.RoleAssistant {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(msg.Content, role))
	}
	return system, contents
}

// extractText concatenates the text parts of the first candidate.
func extractText(response *genai.GenerateContentResponse) string {
	if len(response.Candidates) == 0 || response.Candidates[0].Content == nil {
		return ""
	}

	var text string
	for _, part := range response.Candidates[0].Content.Parts {
		if part != nil {
			text += part.Text
		}
	}
	return text
}
