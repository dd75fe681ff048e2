package locator

import (
	"context"
	"fmt"
	"time"

	"github.com/minhobin/mtt/internal/contracts"
	"github.com/minhobin/mtt/pkg/logger"
)

// DateFormat is the date key used by every published RS document
const DateFormat = "2006-01-02"

// Prober answers existence questions about the two per-date datasets.
// Probes must be side-effect-free (HEAD, no body download).
type Prober interface {
	RankDocExists(ctx context.Context, date string) (bool, error)
	PriceDocExists(ctx context.Context, date, code, name string) (bool, error)
}

// Locator finds the most recent date for which both the RS ranking
// document and a stock's price history are published. The two feeds
// update independently with lag and gaps (holidays, late publication),
// so the locator walks backward day by day until both exist.
// ⭐ SSOT: 분석 기준일 탐색은 여기서만
type Locator struct {
	probe  Prober
	logger *logger.Logger
	window int // 최대 탐색 일수

	// now is injectable for tests; defaults to time.Now
	now func() time.Time
}

// New creates a locator with the given lookback window (calendar days)
func New(probe Prober, log *logger.Logger, window int) *Locator {
	return &Locator{
		probe:  probe,
		logger: log,
		window: window,
		now:    time.Now,
	}
}

// WithClock overrides the "today" anchor, for tests
func (l *Locator) WithClock(now func() time.Time) *Locator {
	l.now = now
	return l
}

// Locate walks backward from today one calendar day at a time and
// returns the first (most recent) date where both datasets exist.
// Probe failures on a candidate date continue the search rather than
// aborting it; only window exhaustion is terminal.
func (l *Locator) Locate(ctx context.Context, code, name string) (string, error) {
	today := l.now()

	for i := 0; i < l.window; i++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		date := today.AddDate(0, 0, -i).Format(DateFormat)

		rankOK, err := l.probe.RankDocExists(ctx, date)
		if err != nil {
			l.logger.WithError(err).WithField("date", date).Warn("Rank doc probe failed")
			continue
		}

		priceOK, err := l.probe.PriceDocExists(ctx, date, code, name)
		if err != nil {
			l.logger.WithError(err).WithField("date", date).Warn("Price doc probe failed")
			continue
		}

		l.logger.WithFields(map[string]interface{}{
			"date":  date,
			"rank":  rankOK,
			"price": priceOK,
		}).Debug("Probed dataset availability")

		// 두 데이터가 모두 있는 날짜만 채택
		if rankOK && priceOK {
			return date, nil
		}
	}

	return "", contracts.NewError(
		contracts.FailAllDatesExhausted,
		fmt.Sprintf("%s: no date with both datasets in last %d days", code, l.window),
	)
}
