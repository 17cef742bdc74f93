package advisor

import (
	"regexp"
	"strconv"
	"strings"
)

const (
	defaultAnnualReturn = 0.07
	defaultCrashMonth   = 24
	defaultCrashPercent = 0.3
)

// ProjectionSummary totals a simulated contribution plan
type ProjectionSummary struct {
	TotalInvested float64 `json:"total_invested"`
	FinalBalance  float64 `json:"final_balance"`
	Gain          float64 `json:"gain"`
	GainPercent   float64 `json:"gain_percent"`
}

// Projection is a month-by-month compound growth simulation
type Projection struct {
	Title          string            `json:"title"`
	MonthlyAmount  float64           `json:"monthly_amount"`
	Months         int               `json:"months"`
	AnnualReturn   float64           `json:"annual_return"`
	CrashMonth     *int              `json:"crash_month,omitempty"`
	Balances       []float64         `json:"balances"`
	YearMilestones []float64         `json:"year_milestones"`
	Summary        ProjectionSummary `json:"summary"`
}

// simulateGrowth compounds a fixed monthly contribution at the given annual
// rate, returning the balance after each month
func simulateGrowth(monthlyAmount float64, months int, annualReturn float64) []float64 {
	balances := make([]float64, 0, months)
	total := 0.0
	for i := 0; i < months; i++ {
		total += monthlyAmount
		total *= 1 + annualReturn/12
		balances = append(balances, total)
	}
	return balances
}

// simulateCrash runs the same plan but knocks the balance down by
// crashPercent at the crash month
func simulateCrash(monthlyAmount float64, months int, annualReturn float64, crashMonth int, crashPercent float64) []float64 {
	balances := make([]float64, 0, months)
	total := 0.0
	for i := 1; i <= months; i++ {
		total += monthlyAmount
		total *= 1 + annualReturn/12
		if i == crashMonth {
			total *= 1 - crashPercent
		}
		balances = append(balances, total)
	}
	return balances
}

// buildProjection runs the simulation and totals it
func buildProjection(monthlyAmount float64, months int, annualReturn float64, crash bool, crashMonth int) Projection {
	if annualReturn <= 0 {
		annualReturn = defaultAnnualReturn
	}

	var balances []float64
	var title string
	var crashAt *int
	if crash {
		if crashMonth <= 0 {
			crashMonth = defaultCrashMonth
		}
		balances = simulateCrash(monthlyAmount, months, annualReturn, crashMonth, defaultCrashPercent)
		title = "Simulated Growth with Market Crash"
		crashAt = &crashMonth
	} else {
		balances = simulateGrowth(monthlyAmount, months, annualReturn)
		title = "Simulated Growth (7% Annual Return)"
	}

	milestones := make([]float64, 0, months/12)
	for m := 12; m <= len(balances); m += 12 {
		milestones = append(milestones, balances[m-1])
	}

	totalInvested := monthlyAmount * float64(months)
	finalBalance := 0.0
	if len(balances) > 0 {
		finalBalance = balances[len(balances)-1]
	}
	gain := finalBalance - totalInvested
	gainPercent := 0.0
	if totalInvested > 0 {
		gainPercent = gain / totalInvested * 100
	}

	return Projection{
		Title:          title,
		MonthlyAmount:  monthlyAmount,
		Months:         months,
		AnnualReturn:   annualReturn,
		CrashMonth:     crashAt,
		Balances:       balances,
		YearMilestones: milestones,
		Summary: ProjectionSummary{
			TotalInvested: totalInvested,
			FinalBalance:  finalBalance,
			Gain:          gain,
			GainPercent:   gainPercent,
		},
	}
}

var (
	growthKeywords = []string{"invest", "save", "compound", "interest", "return", "growth"}
	amountRe       = regexp.MustCompile(`\$?(\d{2,5})`)
	horizonRe      = regexp.MustCompile(`(\d{1,2})\s*(year|month)`)
)

// projectionFromQuestion extracts a contribution plan from free text. The
// second return is false when the text does not describe one: no growth
// keyword, no amount, or no time horizon.
func projectionFromQuestion(text string) (Projection, bool) {
	lowered := strings.ToLower(text)

	triggered := false
	for _, keyword := range growthKeywords {
		if strings.Contains(lowered, keyword) {
			triggered = true
			break
		}
	}
	if !triggered {
		return Projection{}, false
	}

	amountMatch := amountRe.FindStringSubmatch(text)
	horizonMatch := horizonRe.FindStringSubmatch(lowered)
	if amountMatch == nil || horizonMatch == nil {
		return Projection{}, false
	}

	amount, err := strconv.Atoi(amountMatch[1])
	if err != nil {
		return Projection{}, false
	}
	horizon, err := strconv.Atoi(horizonMatch[1])
	if err != nil {
		return Projection{}, false
	}

	months := horizon * 12
	if strings.Contains(horizonMatch[2], "month") {
		months = horizon
	}

	crash := strings.Contains(lowered, "crash")
	return buildProjection(float64(amount), months, defaultAnnualReturn, crash, defaultCrashMonth), true
}

// followUpSuggestions offers the next what-if questions based on the shape
// of the one just asked
func followUpSuggestions(text string) []string {
	lowered := strings.ToLower(text)

	switch {
	case strings.Contains(lowered, "versus"):
		return []string{
			"What if I split my investment 50/50 between lump sum and monthly?",
			"What if I delay my lump sum investment by 6 months?",
			"What if markets crash right after my lump sum investment?",
		}
	case strings.Contains(lowered, "stop investing"):
		return []string{
			"What if I resume investing after 5 years?",
			"What happens if I withdraw everything at retirement?",
			"What if I switch to safer assets after stopping?",
		}
	default:
		return []string{
			"What if I increase my monthly contributions?",
			"What if returns average only 3 percent instead of 7 percent?",
			"What if inflation outpaces my investment returns?",
		}
	}
}
