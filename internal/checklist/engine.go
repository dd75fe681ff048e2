package checklist

import (
	"fmt"
	"math"

	"github.com/minhobin/mtt/internal/contracts"
	"github.com/minhobin/mtt/pkg/logger"
)

const (
	maShortWindow = 50
	maMidWindow   = 150
	maLongWindow  = 200

	// trailing points for the 52-week range
	yearWindow = 252

	// how far back the 200일선 is compared for the "rising" check
	monthOffset = 21

	minRank = 70.0
)

// Descriptions of the eight trend-template conditions, in evaluation
// order. Report numbering depends on this order; never reorder.
var descriptions = [8]string{
	"주가 > 150/200일선",
	"150일선 > 200일선",
	"200일선 1개월 상승",
	"50일선 > 150/200일선",
	"주가 > 50일선",
	"52주 저가 대비 +30%",
	"52주 고가 대비 -25% 이내",
	"상대강도 RS ≥ 70",
}

// Engine evaluates the 8-point Minervini trend template against an
// ordered price series and a relative-strength rank.
// ⭐ SSOT: MTT 체크리스트 평가는 여기서만
type Engine struct {
	logger *logger.Logger
}

// NewEngine creates a checklist engine
func NewEngine(log *logger.Logger) *Engine {
	return &Engine{logger: log}
}

// Evaluate computes the checklist for a price series ordered oldest to
// newest. The series must cover at least 200 points so the longest
// moving average is defined; a shorter 52-week window only shrinks the
// range check, per the template's degradation rules.
func (e *Engine) Evaluate(prices []contracts.PricePoint, rank float64) (contracts.ChecklistResult, error) {
	n := len(prices)
	if n < maLongWindow {
		return contracts.ChecklistResult{}, contracts.NewError(
			contracts.FailInsufficientHistory,
			fmt.Sprintf("have %d price points, need %d", n, maLongWindow),
		)
	}

	closes := make([]float64, n)
	for i, p := range prices {
		closes[i] = p.Close
	}

	latest := closes[n-1]
	ma50 := trailingMean(closes, maShortWindow, n-1)
	ma150 := trailingMean(closes, maMidWindow, n-1)
	ma200 := trailingMean(closes, maLongWindow, n-1)
	prev200, prevDefined := prev200For(closes)

	min52, max52 := rangeMinMax(closes, yearWindow)

	items := []contracts.ChecklistItem{
		{Description: descriptions[0], Passed: latest > ma150 && latest > ma200},
		{Description: descriptions[1], Passed: ma150 > ma200},
		{Description: descriptions[2], Passed: !prevDefined || ma200 > prev200},
		{Description: descriptions[3], Passed: ma50 > ma150 && ma50 > ma200},
		{Description: descriptions[4], Passed: latest > ma50},
		{Description: descriptions[5], Passed: min52 > 0 && (latest-min52)/min52 >= 0.30},
		{Description: descriptions[6], Passed: max52 > 0 && (max52-latest)/max52 <= 0.25},
		{Description: descriptions[7], Passed: rank >= minRank},
	}

	result := contracts.ChecklistResult{
		Items: items,
		Date:  prices[n-1].Date,
		Rank:  rank,
	}

	e.logger.WithFields(map[string]interface{}{
		"date":   result.Date.Format("2006-01-02"),
		"rank":   rank,
		"passed": result.PassedCount(),
	}).Debug("Evaluated trend template")

	return result, nil
}

// trailingMean is the simple moving average of the window points
// ending at idx. Callers must not ask for undefined positions
// (idx+1 < window); that is guarded at the call sites.
func trailingMean(closes []float64, window, idx int) float64 {
	sum := 0.0
	for i := idx - window + 1; i <= idx; i++ {
		sum += closes[i]
	}
	return sum / float64(window)
}

// prev200For returns the 200일선 value one month of trading days back.
// When the series is too short for that position's average to be
// defined, ok is false and the "rising" check holds vacuously rather
// than reading an undefined average.
func prev200For(closes []float64) (float64, bool) {
	n := len(closes)
	prevIdx := n - monthOffset
	if prevIdx < maLongWindow-1 {
		return 0, false
	}
	return trailingMean(closes, maLongWindow, prevIdx), true
}

// rangeMinMax returns the min and max close over the trailing window
// points (or the whole series when shorter)
func rangeMinMax(closes []float64, window int) (float64, float64) {
	start := len(closes) - window
	if start < 0 {
		start = 0
	}

	min, max := math.Inf(1), math.Inf(-1)
	for _, c := range closes[start:] {
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
	}
	return min, max
}
