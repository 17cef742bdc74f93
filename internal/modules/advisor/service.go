package advisor

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// ErrNotConfigured is returned when no model API key is available
var ErrNotConfigured = errors.New("advisor is not configured")

// ChatClient sends one user message to the conversation and returns the
// model's reply
type ChatClient interface {
	Send(ctx context.Context, message string) (string, error)
}

// ChatResponse is one simulator exchange. Projection is present only when
// the question described a concrete contribution plan.
type ChatResponse struct {
	Reply      string      `json:"reply"`
	FollowUps  []string    `json:"follow_ups"`
	Projection *Projection `json:"projection,omitempty"`
}

// SectorExplainer is one beginner-facing sector description
type SectorExplainer struct {
	Sector      string `json:"sector"`
	Description string `json:"description"`
}

// Rotating educational one-liners shown alongside the account
var educationTips = []string{
	"Tip: Diversify your investments.",
	"Don't panic when the market drops!",
	"Review your portfolio weekly.",
	"Long-term thinking wins.",
}

var sectorExplainers = []SectorExplainer{
	{Sector: "Tech", Description: "Fast-growing companies like Apple (AAPL), Microsoft (MSFT), and Nvidia."},
	{Sector: "ETFs", Description: "Bundles of stocks, safer for beginners (e.g., SPY, QQQ)."},
	{Sector: "Banking", Description: "Big banks like JPMorgan (JPM) and Bank of America (BAC)."},
	{Sector: "Green Energy", Description: "Clean energy companies (e.g., ICLN, TSLA, ENPH)."},
	{Sector: "Crypto", Description: "Digital assets like Bitcoin (BTC) and Ethereum (ETH). Highly volatile!"},
}

// Service runs the what-if simulator and serves the education content.
// The chat client may be nil; Chat then fails with ErrNotConfigured while
// projections and education content keep working.
type Service struct {
	chat    ChatClient
	log     zerolog.Logger
	tipNext atomic.Uint64
}

// NewService creates a new advisor service
func NewService(chat ChatClient, log zerolog.Logger) *Service {
	return &Service{
		chat: chat,
		log:  log.With().Str("service", "advisor").Logger(),
	}
}

// Chat runs one simulator exchange: the question is cleaned, sent to the
// model, and the sanitized reply is returned with follow-up suggestions
// and, when the question described a contribution plan, a projection.
func (s *Service) Chat(ctx context.Context, message string) (ChatResponse, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return ChatResponse{}, errors.New("message is empty")
	}
	if s.chat == nil {
		return ChatResponse{}, ErrNotConfigured
	}

	cleaned := cleanUserInput(message)

	reply, err := s.chat.Send(ctx, cleaned)
	if err != nil {
		s.log.Error().Err(err).Msg("Chat exchange failed")
		return ChatResponse{}, err
	}

	response := ChatResponse{
		Reply:     sanitizeResponse(reply),
		FollowUps: followUpSuggestions(message),
	}

	if projection, ok := projectionFromQuestion(message); ok {
		response.Projection = &projection
	}

	return response, nil
}

// Project runs a compound growth simulation for an explicit plan
func (s *Service) Project(monthlyAmount float64, months int, annualReturn float64, crash bool, crashMonth int) (Projection, error) {
	if monthlyAmount <= 0 {
		return Projection{}, errors.New("monthly amount must be positive")
	}
	if months <= 0 {
		return Projection{}, errors.New("months must be positive")
	}

	return buildProjection(monthlyAmount, months, annualReturn, crash, crashMonth), nil
}

// NextTip returns the next educational tip, cycling through the list
func (s *Service) NextTip() string {
	n := s.tipNext.Add(1) - 1
	return educationTips[n%uint64(len(educationTips))]
}

// Tips returns all educational tips
func (s *Service) Tips() []string {
	tips := make([]string, len(educationTips))
	copy(tips, educationTips)
	return tips
}

// SectorExplainers returns the beginner sector descriptions
func (s *Service) SectorExplainers() []SectorExplainer {
	explainers := make([]SectorExplainer, len(sectorExplainers))
	copy(explainers, sectorExplainers)
	return explainers
}
