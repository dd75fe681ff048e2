package locator

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minhobin/mtt/internal/contracts"
	"github.com/minhobin/mtt/pkg/config"
	"github.com/minhobin/mtt/pkg/logger"
)

type fakeProber struct {
	rankDates  map[string]bool
	priceDates map[string]bool
	probed     []string // rank-probe order
	err        error
}

func (f *fakeProber) RankDocExists(ctx context.Context, date string) (bool, error) {
	f.probed = append(f.probed, date)
	if f.err != nil {
		return false, f.err
	}
	return f.rankDates[date], nil
}

func (f *fakeProber) PriceDocExists(ctx context.Context, date, code, name string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.priceDates[date], nil
}

func testLogger() *logger.Logger {
	return logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
}

func fixedClock() func() time.Time {
	return func() time.Time {
		return time.Date(2026, 8, 28, 15, 0, 0, 0, time.UTC) // 금요일
	}
}

func TestLocateMostRecentDate(t *testing.T) {
	probe := &fakeProber{
		rankDates:  map[string]bool{"2026-08-27": true, "2026-08-26": true},
		priceDates: map[string]bool{"2026-08-27": true, "2026-08-26": true},
	}

	l := New(probe, testLogger(), 30).WithClock(fixedClock())

	date, err := l.Locate(context.Background(), "005930", "삼성전자")
	require.NoError(t, err)

	// 오늘(8/28)은 데이터가 없으므로 가장 최근인 8/27이 선택된다
	assert.Equal(t, "2026-08-27", date)
	assert.Equal(t, []string{"2026-08-28", "2026-08-27"}, probe.probed)
}

func TestLocateRequiresBothDatasets(t *testing.T) {
	// RS 문서만 있고 가격 CSV가 없는 날짜는 거부
	probe := &fakeProber{
		rankDates:  map[string]bool{"2026-08-28": true, "2026-08-27": true},
		priceDates: map[string]bool{"2026-08-27": true},
	}

	l := New(probe, testLogger(), 30).WithClock(fixedClock())

	date, err := l.Locate(context.Background(), "005930", "삼성전자")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-27", date)
}

func TestLocateAllDatesExhausted(t *testing.T) {
	probe := &fakeProber{
		rankDates:  map[string]bool{},
		priceDates: map[string]bool{},
	}

	l := New(probe, testLogger(), 5).WithClock(fixedClock())

	_, err := l.Locate(context.Background(), "005930", "삼성전자")
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrAllDatesExhausted))

	// 정확히 window만큼, 최신 날짜부터 순서대로 탐색
	assert.Equal(t, []string{
		"2026-08-28", "2026-08-27", "2026-08-26", "2026-08-25", "2026-08-24",
	}, probe.probed)
}

func TestLocateProbeErrorsContinueSearch(t *testing.T) {
	probe := &fakeProber{err: errors.New("network down")}

	l := New(probe, testLogger(), 3).WithClock(fixedClock())

	_, err := l.Locate(context.Background(), "005930", "삼성전자")
	assert.True(t, errors.Is(err, contracts.ErrAllDatesExhausted))
	assert.Len(t, probe.probed, 3)
}

func TestLocateContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	probe := &fakeProber{}
	l := New(probe, testLogger(), 30).WithClock(fixedClock())

	_, err := l.Locate(ctx, "005930", "삼성전자")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, probe.probed)
}
