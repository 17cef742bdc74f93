package advisor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zentra/paper-trader/pkg/logger"
)

type stubChat struct {
	reply string
	err   error
	sent  []string
}

func (s *stubChat) Send(ctx context.Context, message string) (string, error) {
	s.sent = append(s.sent, message)
	return s.reply, s.err
}

func newTestAdvisor(chat ChatClient) *Service {
	log := logger.New(logger.Config{Level: "error", Pretty: false})
	return NewService(chat, log)
}

func TestChatSanitizesAndSuggests(t *testing.T) {
	stub := &stubChat{reply: "You might see growth by Year2 with steady saving."}
	svc := newTestAdvisor(stub)

	resp, err := svc.Chat(context.Background(), "How does compounding work?")
	require.NoError(t, err)

	assert.Equal(t, "You might see growth by Year 2 with steady saving.", resp.Reply)
	assert.Len(t, resp.FollowUps, 3)
	assert.Nil(t, resp.Projection)
}

func TestChatCleansInputBeforeSending(t *testing.T) {
	stub := &stubChat{reply: "ok"}
	svc := newTestAdvisor(stub)

	_, err := svc.Chat(context.Background(), "invest 1, 000 monthly?")
	require.NoError(t, err)

	require.Len(t, stub.sent, 1)
	assert.Equal(t, "invest 1000 monthly?", stub.sent[0])
}

func TestChatAttachesProjection(t *testing.T) {
	stub := &stubChat{reply: "Steady contributions add up over time."}
	svc := newTestAdvisor(stub)

	resp, err := svc.Chat(context.Background(), "What if I invest $200 per month for 10 years?")
	require.NoError(t, err)

	require.NotNil(t, resp.Projection)
	assert.Equal(t, 120, resp.Projection.Months)
	assert.Equal(t, 200.0, resp.Projection.MonthlyAmount)
}

func TestChatNotConfigured(t *testing.T) {
	svc := newTestAdvisor(nil)

	_, err := svc.Chat(context.Background(), "hello")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestChatEmptyMessage(t *testing.T) {
	svc := newTestAdvisor(&stubChat{})

	_, err := svc.Chat(context.Background(), "   ")
	assert.Error(t, err)
}

func TestChatPropagatesModelFailure(t *testing.T) {
	svc := newTestAdvisor(&stubChat{err: errors.New("quota exceeded")})

	_, err := svc.Chat(context.Background(), "What is an ETF?")
	assert.Error(t, err)
}

func TestProjectValidation(t *testing.T) {
	svc := newTestAdvisor(nil)

	_, err := svc.Project(0, 12, 0.07, false, 0)
	assert.Error(t, err)

	_, err = svc.Project(100, 0, 0.07, false, 0)
	assert.Error(t, err)

	p, err := svc.Project(100, 12, 0, false, 0)
	require.NoError(t, err)
	assert.InDelta(t, defaultAnnualReturn, p.AnnualReturn, 1e-9)
}

func TestNextTipCycles(t *testing.T) {
	svc := newTestAdvisor(nil)

	seen := make([]string, 0, len(educationTips)+1)
	for i := 0; i <= len(educationTips); i++ {
		seen = append(seen, svc.NextTip())
	}

	assert.Equal(t, educationTips[0], seen[0])
	assert.Equal(t, educationTips[0], seen[len(educationTips)], "tips wrap around")
}

func TestSectorExplainersCoverAllSectors(t *testing.T) {
	svc := newTestAdvisor(nil)

	explainers := svc.SectorExplainers()
	require.Len(t, explainers, 5)

	sectors := make(map[string]bool)
	for _, e := range explainers {
		sectors[e.Sector] = true
	}
	for _, want := range []string{"Tech", "ETFs", "Banking", "Green Energy", "Crypto"} {
		assert.True(t, sectors[want], "missing %s", want)
	}
}
