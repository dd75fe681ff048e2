package analyzer

import (
	"context"
	"fmt"

	"github.com/minhobin/mtt/internal/checklist"
	"github.com/minhobin/mtt/internal/contracts"
	"github.com/minhobin/mtt/internal/resolver"
	"github.com/minhobin/mtt/pkg/logger"
)

// DateLocator finds the evaluation reference date
type DateLocator interface {
	Locate(ctx context.Context, code, name string) (string, error)
}

// DataSource fetches the per-date documents for an accepted date
type DataSource interface {
	FetchRankRecord(ctx context.Context, date, code string) (contracts.RankRecord, error)
	FetchPrices(ctx context.Context, date, code, name string) ([]contracts.PricePoint, error)
}

// Analyzer coordinates the analysis pipeline:
// Resolver -> Locator -> {RS 테이블, 가격 이력} -> Checklist Engine.
// Each query is synchronous and self-contained; the only shared state
// is the immutable reference table inside the resolver.
// ⭐ SSOT: 분석 파이프라인 조율은 여기서만
type Analyzer struct {
	resolver *resolver.Resolver
	locator  DateLocator
	source   DataSource
	engine   *checklist.Engine
	logger   *logger.Logger
}

// New creates an analyzer
func New(res *resolver.Resolver, loc DateLocator, source DataSource, engine *checklist.Engine, log *logger.Logger) *Analyzer {
	return &Analyzer{
		resolver: res,
		locator:  loc,
		source:   source,
		engine:   engine,
		logger:   log,
	}
}

// Analyze runs one full trend-template evaluation for free-text input.
// Every failure is a typed contracts.Error; nothing is retried here.
func (a *Analyzer) Analyze(ctx context.Context, input string) (*contracts.AnalysisReport, error) {
	stock, ok := a.resolver.Resolve(input)
	if !ok {
		return nil, contracts.NewError(contracts.FailStockNotFound, input)
	}

	log := a.logger.WithFields(map[string]interface{}{
		"code": stock.Code,
		"name": stock.Name,
	})
	log.Debug("Resolved stock")

	date, err := a.locator.Locate(ctx, stock.Code, stock.Name)
	if err != nil {
		return nil, fmt.Errorf("locate data date: %w", err)
	}

	rank, err := a.source.FetchRankRecord(ctx, date, stock.Code)
	if err != nil {
		return nil, fmt.Errorf("fetch rank: %w", err)
	}

	prices, err := a.source.FetchPrices(ctx, date, stock.Code, stock.Name)
	if err != nil {
		return nil, fmt.Errorf("fetch prices: %w", err)
	}

	result, err := a.engine.Evaluate(prices, rank.Score)
	if err != nil {
		return nil, fmt.Errorf("evaluate checklist: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"date":   date,
		"rank":   rank.Score,
		"passed": result.PassedCount(),
	}).Info("Analysis completed")

	return &contracts.AnalysisReport{
		Stock:     stock,
		DataDate:  date,
		Rank:      rank.Score,
		Checklist: result,
	}, nil
}

// Suggest exposes reference-table suggestions for the auto-suggest
// endpoint
func (a *Analyzer) Suggest(query string, limit int) []contracts.Stock {
	return a.resolver.Suggest(query, limit)
}
