package advisor

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

// GeminiChat is a single-conversation Gemini client. The chat session is
// created lazily on first use so the server can start without network
// access to the model API.
type GeminiChat struct {
	client *genai.Client
	model  string
	log    zerolog.Logger

	mu   sync.Mutex
	chat *genai.Chat
}

// NewGeminiChat creates a Gemini-backed chat client
func NewGeminiChat(ctx context.Context, apiKey, model string, log zerolog.Logger) (*GeminiChat, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &GeminiChat{
		client: client,
		model:  model,
		log:    log.With().Str("client", "gemini").Logger(),
	}, nil
}

func (g *GeminiChat) session(ctx context.Context) (*genai.Chat, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.chat != nil {
		return g.chat, nil
	}

	temperature := float32(0.7)
	config := &genai.GenerateContentConfig{
		Temperature: &temperature,
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{Text: systemInstruction}},
		},
	}

	chat, err := g.client.Chats.Create(ctx, g.model, config, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create chat session: %w", err)
	}
	g.chat = chat

	return chat, nil
}

// Send forwards one user message to the running conversation and returns
// the model's text reply
func (g *GeminiChat) Send(ctx context.Context, message string) (string, error) {
	chat, err := g.session(ctx)
	if err != nil {
		return "", err
	}

	resp, err := chat.Send(ctx, &genai.Part{Text: message})
	if err != nil {
		return "", fmt.Errorf("chat send failed: %w", err)
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from model")
	}

	return resp.Candidates[0].Content.Parts[0].Text, nil
}
