package chatbot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// SystemPrompt frames every Gemini request
const SystemPrompt = `You are CEMS AI Assistant, a helpful and friendly AI chatbot for the College Event Management System (CEMS). Your role is to help students, event coordinators, and administrators with:

1. **Event Discovery**: Help users find events by category (Technical, Cultural, Sports, Workshop), date, venue, or college
2. **Event Registration**: Guide students on how to register for events, check registration status, and unregister
3. **Event Management**: Assist event coordinators in creating and managing events
4. **Platform Navigation**: Help users navigate the CEMS platform features
5. **Account Support**: Guide users with login, signup, and profile management

**Key Features of CEMS:**
- Browse events by category (Technical, Cultural, Sports, Workshop)
- Register for events as a student
- Create and manage events as an event coordinator
- View registered events in Student Dashboard
- Admin panel for overall management
- Real-time event updates and notifications

**User Roles:**
- Student: Can browse and register for events
- Event Member/Coordinator: Can create and manage events
- Admin: Full system access and management

**Important Guidelines:**
- Be friendly, concise, and helpful
- Provide step-by-step instructions when needed
- Suggest relevant actions (e.g., "Would you like me to show you how to register?")
- If you don't know something specific, guide users to contact support
- Keep responses brief (2-3 sentences max unless detailed explanation needed)

Respond naturally and helpfully to user queries about the CEMS platform.`

// Generation parameters sent with every request
const (
	Temperature     float32 = 0.7
	TopK            float32 = 40
	TopP            float32 = 0.95
	MaxOutputTokens int32   = 512

	// SampleSize is the number of upcoming events quoted in the prompt
	SampleSize = 5
)

// ErrEmptyCompletion is returned when the model produced no text
var ErrEmptyCompletion = errors.New("no valid response from AI")

// TextGenerator is an opaque text-in, text-out model
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator calls the Gemini API through the genai SDK
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a Gemini API client for model
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate implements TextGenerator
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(Temperature),
		TopK:            genai.Ptr(TopK),
		TopP:            genai.Ptr(TopP),
		MaxOutputTokens: MaxOutputTokens,
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
			{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
		},
	})
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", ErrEmptyCompletion
	}
	return text, nil
}

// LLMResponder asks a TextGenerator and falls back to another Responder on
// any error or timeout
type LLMResponder struct {
	gen      TextGenerator
	fallback Responder
	events   EventSource
	timeout  time.Duration
	logger   zerolog.Logger
	now      func() time.Time
}

// NewLLMResponder creates an LLMResponder
func NewLLMResponder(gen TextGenerator, fallback Responder, events EventSource, timeout time.Duration, logger zerolog.Logger) *LLMResponder {
	return &LLMResponder{
		gen:      gen,
		fallback: fallback,
		events:   events,
		timeout:  timeout,
		logger:   logger,
		now:      time.Now,
	}
}

// BuildPrompt assembles the system prompt, the event sample and the query
func BuildPrompt(sample, query string) string {
	var b strings.Builder
	b.WriteString(SystemPrompt)
	if sample != "" {
		b.WriteString("\n\n**Current Events:**\n")
		b.WriteString(sample)
	}
	b.WriteString("\n\nUser: ")
	b.WriteString(query)
	b.WriteString("\n\nAssistant:")
	return b.String()
}

// eventSample lists the next few events, one per line
func (r *LLMResponder) eventSample(ctx context.Context) string {
	events, err := r.events.ListUpcoming(ctx, r.now(), SampleSize)
	if err != nil {
		r.logger.Warn().Err(err).Msg("Could not load events for chatbot prompt")
		return ""
	}
	lines := make([]string, 0, len(events))
	for _, e := range events {
		lines = append(lines, fmt.Sprintf("- %s (%s) on %s at %s, %s", e.Title, e.Category, e.Date.Format(dateLayout), e.Time, e.Venue))
	}
	return strings.Join(lines, "\n")
}

// Respond implements Responder
func (r *LLMResponder) Respond(ctx context.Context, query string) string {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	reply, err := r.gen.Generate(ctx, BuildPrompt(r.eventSample(ctx), query))
	if err != nil {
		r.logger.Warn().Err(err).Msg("LLM call failed, using rule responder")
		return r.fallback.Respond(context.WithoutCancel(ctx), query)
	}
	return reply
}
