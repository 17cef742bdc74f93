package advisor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSimulateGrowthCompoundsMonthly(t *testing.T) {
	balances := simulateGrowth(100, 2, 0.07)
	require.Len(t, balances, 2)

	monthly := 1 + 0.07/12
	assert.InDelta(t, 100*monthly, balances[0], 1e-9)
	assert.InDelta(t, (100*monthly+100)*monthly, balances[1], 1e-9)
}

func TestSimulateCrashAppliesDrawdown(t *testing.T) {
	plain := simulateGrowth(100, 24, 0.07)
	crashed := simulateCrash(100, 24, 0.07, 24, 0.3)

	require.Len(t, crashed, 24)
	assert.InDelta(t, plain[23]*0.7, crashed[23], 1e-9)
	assert.InDelta(t, plain[22], crashed[22], 1e-9, "months before the crash are unchanged")
}

func TestBuildProjectionSummary(t *testing.T) {
	p := buildProjection(200, 120, 0.07, false, 0)

	assert.Equal(t, 120, p.Months)
	assert.Len(t, p.Balances, 120)
	assert.Len(t, p.YearMilestones, 10)
	assert.InDelta(t, 24000, p.Summary.TotalInvested, 1e-9)
	assert.Equal(t, p.Balances[119], p.Summary.FinalBalance)
	assert.InDelta(t, p.Summary.FinalBalance-24000, p.Summary.Gain, 1e-9)
	assert.Greater(t, p.Summary.GainPercent, 0.0)
	assert.Nil(t, p.CrashMonth)
}

func TestProjectionFromQuestion(t *testing.T) {
	p, ok := projectionFromQuestion("What if I invest $200 per month for 10 years?")
	require.True(t, ok)
	assert.Equal(t, 200.0, p.MonthlyAmount)
	assert.Equal(t, 120, p.Months)
	assert.Nil(t, p.CrashMonth)

	p, ok = projectionFromQuestion("What if I invest $500 for 5 years and markets crash?")
	require.True(t, ok)
	require.NotNil(t, p.CrashMonth)
	assert.Equal(t, defaultCrashMonth, *p.CrashMonth)
}

func TestProjectionFromQuestionNotTriggered(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{name: "no growth keyword", text: "What if I buy a house for $500 in 5 years?"},
		{name: "no amount", text: "What if I invest for 5 years?"},
		{name: "no horizon", text: "What if I invest $200?"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := projectionFromQuestion(tt.text)
			assert.False(t, ok)
		})
	}
}

func TestFollowUpSuggestions(t *testing.T) {
	versus := followUpSuggestions("lump sum versus monthly investing")
	assert.Contains(t, versus[0], "50/50")

	stopped := followUpSuggestions("what if I stop investing at 40?")
	assert.Contains(t, stopped[0], "resume investing")

	generic := followUpSuggestions("how does compounding work?")
	assert.Contains(t, generic[0], "monthly contributions")
}

func TestSanitizeResponse(t *testing.T) {
	got := sanitizeResponse("You could have `about` $1000by Year2")
	assert.Equal(t, "You could have about $1000 by Year 2", got)

	got = sanitizeResponse("_emphasis_ stays plain")
	assert.Equal(t, "emphasis stays plain", got)
}

func TestCleanUserInput(t *testing.T) {
	got := cleanUserInput("invest 1, 000 monthly")
	assert.Equal(t, "invest 1000 monthly", got)

	got = cleanUserInput("100now or later")
	assert.Equal(t, "100 now or later", got)
}
