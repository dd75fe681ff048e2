package mttlist

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/minhobin/mtt/internal/contracts"
	"github.com/minhobin/mtt/internal/locator"
	"github.com/minhobin/mtt/pkg/logger"
)

// entryPattern extracts (code, name, RS) rows from the published
// trend-template markdown table
var entryPattern = regexp.MustCompile(`\[(\d{6})\]\(https://finance\.daum\.net/quotes/A\d{6}\)\|([^|]+)\|[^|]+\|(\d{1,3})\|`)

// DocSource provides the daily trend-template markdown documents
type DocSource interface {
	TrendTemplateDocExists(ctx context.Context, date string) (bool, error)
	FetchTrendTemplateDoc(ctx context.Context, date string) (string, error)
}

// Service maintains the daily MTT all-pass list: the stocks that
// already pass all eight conditions, as published upstream. Each
// refresh fetches the latest available list and the previous trading
// day's list, marks new entrants and caches the snapshot for the API.
// ⭐ SSOT: MTT ALL PASS 리스트 관리는 여기서만
type Service struct {
	source DocSource
	logger *logger.Logger
	window int // 이전 거래일 탐색 한도 (일)

	now func() time.Time

	mu       sync.RWMutex
	snapshot *contracts.ListSnapshot
}

// NewService creates a list service with the given lookback window
func NewService(source DocSource, log *logger.Logger, window int) *Service {
	return &Service{
		source: source,
		logger: log,
		window: window,
		now:    time.Now,
	}
}

// WithClock overrides the "today" anchor, for tests
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// Latest returns the cached snapshot, if a refresh has completed
func (s *Service) Latest() (*contracts.ListSnapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.snapshot == nil {
		return nil, false
	}
	return s.snapshot, true
}

// Refresh fetches the most recent published list, diffs it against the
// previous trading day's list and caches the result
func (s *Service) Refresh(ctx context.Context) (*contracts.ListSnapshot, error) {
	today := s.now()

	// 1. 오늘자 리스트, 없으면 가장 최근 거래일로 대체
	date := today.Format(locator.DateFormat)
	entries, err := s.fetchEntries(ctx, date)
	if err != nil {
		date, err = s.latestListDate(ctx, today)
		if err != nil {
			return nil, err
		}
		entries, err = s.fetchEntries(ctx, date)
		if err != nil {
			return nil, err
		}
	}

	// 2. 비교 대상 전 거래일 (date보다 더 전)
	anchor, _ := time.Parse(locator.DateFormat, date)
	prevDate, err := s.latestListDate(ctx, anchor)
	if err != nil {
		// 이전 리스트가 없으면 신규 표시 없이 현재 리스트만 제공
		s.logger.WithError(err).Warn("No previous trend-template list, skipping diff")
		prevDate = ""
	}

	var prevCodes map[string]bool
	if prevDate != "" {
		prevEntries, err := s.fetchEntries(ctx, prevDate)
		if err != nil {
			return nil, fmt.Errorf("fetch previous list for %s: %w", prevDate, err)
		}
		prevCodes = make(map[string]bool, len(prevEntries))
		for _, e := range prevEntries {
			prevCodes[e.Code] = true
		}
	}

	// 3. 신규 진입 표시 후 신규 우선, RS 내림차순 정렬
	for i := range entries {
		entries[i].IsNew = prevCodes != nil && !prevCodes[entries[i].Code]
	}
	sortEntries(entries)

	snapshot := &contracts.ListSnapshot{
		Date:      date,
		PrevDate:  prevDate,
		Entries:   entries,
		FetchedAt: s.now(),
	}

	s.mu.Lock()
	s.snapshot = snapshot
	s.mu.Unlock()

	s.logger.WithFields(map[string]interface{}{
		"date":      date,
		"prev_date": prevDate,
		"count":     len(entries),
	}).Info("Refreshed MTT all-pass list")

	return snapshot, nil
}

// latestListDate finds the most recent date strictly before the anchor
// for which a trend-template document is published
func (s *Service) latestListDate(ctx context.Context, before time.Time) (string, error) {
	for i := 1; i <= s.window; i++ {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		date := before.AddDate(0, 0, -i).Format(locator.DateFormat)

		ok, err := s.source.TrendTemplateDocExists(ctx, date)
		if err != nil {
			s.logger.WithError(err).WithField("date", date).Warn("Trend-template probe failed")
			continue
		}
		if ok {
			return date, nil
		}
	}

	return "", contracts.NewError(
		contracts.FailAllDatesExhausted,
		fmt.Sprintf("no trend-template list in %d days before %s", s.window, before.Format(locator.DateFormat)),
	)
}

// fetchEntries downloads and parses one date's list
func (s *Service) fetchEntries(ctx context.Context, date string) ([]contracts.ListEntry, error) {
	doc, err := s.source.FetchTrendTemplateDoc(ctx, date)
	if err != nil {
		return nil, err
	}
	return ParseListDoc(doc), nil
}

// ParseListDoc extracts all (code, name, RS) entries from a
// trend-template markdown document
func ParseListDoc(doc string) []contracts.ListEntry {
	matches := entryPattern.FindAllStringSubmatch(doc, -1)

	entries := make([]contracts.ListEntry, 0, len(matches))
	for _, m := range matches {
		rank, err := strconv.ParseFloat(m[3], 64)
		if err != nil {
			continue
		}
		entries = append(entries, contracts.ListEntry{
			Code: m[1],
			Name: m[2],
			Rank: rank,
		})
	}
	return entries
}

// sortEntries orders new entrants first, then RS descending within
// each group
func sortEntries(entries []contracts.ListEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsNew != entries[j].IsNew {
			return entries[i].IsNew
		}
		return entries[i].Rank > entries[j].Rank
	})
}
