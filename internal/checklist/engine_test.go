package checklist

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhobin/mtt/internal/contracts"
	"github.com/minhobin/mtt/pkg/config"
	"github.com/minhobin/mtt/pkg/logger"
)

func testEngine() *Engine {
	return NewEngine(logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"}))
}

// series builds a price history from closes, one trading day apart,
// ending 2026-08-28
func series(closes []float64) []contracts.PricePoint {
	end := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	prices := make([]contracts.PricePoint, len(closes))
	for i, c := range closes {
		prices[i] = contracts.PricePoint{
			Date:  end.AddDate(0, 0, i-len(closes)+1),
			Close: c,
		}
	}
	return prices
}

func ascending(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = float64(i + 1)
	}
	return closes
}

func descending(n int) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = float64(n - i)
	}
	return closes
}

func flat(n int, v float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = v
	}
	return closes
}

func TestEvaluateAllPass(t *testing.T) {
	// 꾸준한 상승 추세 + RS 72 -> 8개 전부 통과
	result, err := testEngine().Evaluate(series(ascending(260)), 72)
	require.NoError(t, err)

	require.Len(t, result.Items, 8)
	for i, item := range result.Items {
		assert.True(t, item.Passed, "condition %d (%s) should pass", i+1, item.Description)
	}
	assert.True(t, result.AllPassed())
	assert.Equal(t, 8, result.PassedCount())
	assert.Equal(t, 72.0, result.Rank)
	assert.Equal(t, time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), result.Date)
}

func TestEvaluateLowRankFailsOnlyRankCheck(t *testing.T) {
	// 동일한 상승 추세에서 RS만 50 -> 8번 조건만 실패 (7/8)
	result, err := testEngine().Evaluate(series(ascending(260)), 50)
	require.NoError(t, err)

	assert.Equal(t, 7, result.PassedCount())
	assert.False(t, result.Items[7].Passed)
	for i := 0; i < 7; i++ {
		assert.True(t, result.Items[i].Passed, "condition %d should pass", i+1)
	}
}

func TestEvaluateDowntrendFailsAll(t *testing.T) {
	result, err := testEngine().Evaluate(series(descending(260)), 10)
	require.NoError(t, err)

	assert.Equal(t, 0, result.PassedCount())
}

func TestEvaluateFlatSeries(t *testing.T) {
	// 완전 횡보: 엄격 부등호라 추세 조건은 모두 실패, 52주 고가
	// 근접(7번)과 RS(8번)만 통과
	result, err := testEngine().Evaluate(series(flat(260, 100)), 80)
	require.NoError(t, err)

	assert.Equal(t, 2, result.PassedCount())
	assert.True(t, result.Items[6].Passed)
	assert.True(t, result.Items[7].Passed)
}

func TestEvaluateInsufficientHistory(t *testing.T) {
	_, err := testEngine().Evaluate(series(ascending(199)), 72)
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrInsufficientHistory))
}

func TestEvaluatePrev200FallbackShortHistory(t *testing.T) {
	// 205개: 21일 전 위치의 200일선이 정의되지 않아 현재값을 재사용
	// -> 하락 추세여도 3번 조건은 공허하게 참
	result, err := testEngine().Evaluate(series(descending(205)), 10)
	require.NoError(t, err)

	assert.True(t, result.Items[2].Passed, "condition 3 should be vacuously true")

	// 220개부터는 실제 과거값과 비교되어 하락 추세에서 실패
	result, err = testEngine().Evaluate(series(descending(220)), 10)
	require.NoError(t, err)
	assert.False(t, result.Items[2].Passed)
}

func TestEvaluateLowGuardZeroMin(t *testing.T) {
	// 52주 저가가 0이면 6번 조건은 가드로 실패 처리 (0으로 나누지 않음)
	closes := make([]float64, 252)
	for i := range closes {
		closes[i] = float64(i) // starts at 0
	}

	result, err := testEngine().Evaluate(series(closes), 72)
	require.NoError(t, err)
	assert.False(t, result.Items[5].Passed)
}

func TestEvaluateNaNRankFailsRankCheck(t *testing.T) {
	result, err := testEngine().Evaluate(series(ascending(260)), math.NaN())
	require.NoError(t, err)
	assert.False(t, result.Items[7].Passed)
}

func TestEvaluateOrderAndCountInvariant(t *testing.T) {
	inputs := [][]float64{ascending(260), descending(260), flat(300, 55), ascending(200)}

	for _, closes := range inputs {
		result, err := testEngine().Evaluate(series(closes), 70)
		require.NoError(t, err)
		require.Len(t, result.Items, 8)
		for i, item := range result.Items {
			assert.Equal(t, descriptions[i], item.Description)
		}
	}
}

func TestEvaluateIdempotent(t *testing.T) {
	prices := series(ascending(260))

	first, err := testEngine().Evaluate(prices, 65)
	require.NoError(t, err)

	second, err := testEngine().Evaluate(prices, 65)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestTrailingMean(t *testing.T) {
	closes := []float64{1, 2, 3, 4, 5}

	assert.Equal(t, 4.0, trailingMean(closes, 3, 4)) // (3+4+5)/3
	assert.Equal(t, 3.0, trailingMean(closes, 5, 4))
	assert.Equal(t, 5.0, trailingMean(closes, 1, 4))
}

func TestRangeMinMax(t *testing.T) {
	closes := []float64{10, 1, 5, 8, 2}

	min, max := rangeMinMax(closes, 3)
	assert.Equal(t, 2.0, min)
	assert.Equal(t, 8.0, max)

	// 윈도우가 시리즈보다 길면 전체를 본다
	min, max = rangeMinMax(closes, 100)
	assert.Equal(t, 1.0, min)
	assert.Equal(t, 10.0, max)
}
