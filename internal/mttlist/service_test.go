package mttlist

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

const todayDoc = `---
layout: post
title: Trend Template 2026-08-28
---

|종목|이름|차트|RS|
|---|---|---|---|
|[005930](https://finance.daum.net/quotes/A005930)|삼성전자|img|91|
|[000660](https://finance.daum.net/quotes/A000660)|SK하이닉스|img|88|
|[035420](https://finance.daum.net/quotes/A035420)|NAVER|img|95|
`

const prevDoc = `|종목|이름|차트|RS|
|---|---|---|---|
|[005930](https://finance.daum.net/quotes/A005930)|삼성전자|img|90|
|[000660](https://finance.daum.net/quotes/A000660)|SK하이닉스|img|89|
`

type fakeDocSource struct {
	docs map[string]string // date -> doc
}

func (f *fakeDocSource) TrendTemplateDocExists(ctx context.Context, date string) (bool, error) {
	_, ok := f.docs[date]
	return ok, nil
}

func (f *fakeDocSource) FetchTrendTemplateDoc(ctx context.Context, date string) (string, error) {
	doc, ok := f.docs[date]
	if !ok {
		return "", contracts.NewError(contracts.FailResourceNotFound, date)
	}
	return doc, nil
}

func testService(docs map[string]string) *Service {
	log := logger.New(&config.Config{Env: "development", LogLevel: "error", LogFormat: "json"})
	return NewService(&fakeDocSource{docs: docs}, log, 14).WithClock(func() time.Time {
		return time.Date(2026, 8, 28, 18, 0, 0, 0, time.UTC)
	})
}

func TestParseListDoc(t *testing.T) {
	entries := ParseListDoc(todayDoc)

	require.Len(t, entries, 3)
	assert.Equal(t, "005930", entries[0].Code)
	assert.Equal(t, "삼성전자", entries[0].Name)
	assert.Equal(t, 91.0, entries[0].Rank)
}

func TestParseListDocEmpty(t *testing.T) {
	assert.Empty(t, ParseListDoc("표 없는 본문"))
}

func TestRefreshDiffsAgainstPreviousDay(t *testing.T) {
	s := testService(map[string]string{
		"2026-08-28": todayDoc,
		"2026-08-27": prevDoc,
	})

	snapshot, err := s.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2026-08-28", snapshot.Date)
	assert.Equal(t, "2026-08-27", snapshot.PrevDate)
	require.Len(t, snapshot.Entries, 3)

	// NAVER는 전일 리스트에 없어 신규 -> 맨 앞
	assert.Equal(t, "035420", snapshot.Entries[0].Code)
	assert.True(t, snapshot.Entries[0].IsNew)

	// 기존 종목은 RS 내림차순
	assert.Equal(t, "005930", snapshot.Entries[1].Code)
	assert.False(t, snapshot.Entries[1].IsNew)
	assert.Equal(t, "000660", snapshot.Entries[2].Code)

	// 캐시 확인
	cached, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, snapshot.Date, cached.Date)
}

func TestRefreshFallsBackWhenTodayMissing(t *testing.T) {
	// 오늘(8/28) 문서가 없으면 가장 최근 거래일(8/26)로 대체하고
	// 그 전 거래일(8/25)과 비교한다
	s := testService(map[string]string{
		"2026-08-26": todayDoc,
		"2026-08-25": prevDoc,
	})

	snapshot, err := s.Refresh(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2026-08-26", snapshot.Date)
	assert.Equal(t, "2026-08-25", snapshot.PrevDate)
}

func TestRefreshNoPreviousList(t *testing.T) {
	s := testService(map[string]string{
		"2026-08-28": todayDoc,
	})

	snapshot, err := s.Refresh(context.Background())
	require.NoError(t, err)

	assert.Empty(t, snapshot.PrevDate)
	for _, e := range snapshot.Entries {
		assert.False(t, e.IsNew)
	}
}

func TestRefreshAllDatesExhausted(t *testing.T) {
	s := testService(map[string]string{})

	_, err := s.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrAllDatesExhausted))
}

func TestLatestBeforeRefresh(t *testing.T) {
	s := testService(map[string]string{})

	_, ok := s.Latest()
	assert.False(t, ok)
}
