package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/minhobin/mtt/internal/analyzer"
	"github.com/minhobin/mtt/internal/checklist"
	"github.com/minhobin/mtt/internal/external/rsdata"
	"github.com/minhobin/mtt/internal/locator"
	"github.com/minhobin/mtt/internal/report"
	"github.com/minhobin/mtt/internal/resolver"
	"github.com/minhobin/mtt/pkg/httputil"
	"github.com/minhobin/mtt/pkg/logger"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze <종목명 또는 종목코드>",
	Short: "추세 템플릿 체크리스트 분석",
	Long: `한 종목에 대해 8개 항목의 추세 템플릿 체크리스트를 평가하고
결과 리포트를 출력합니다.

입력은 종목명("삼성전자"), 6자리 종목코드("005930"), 또는 둘을
포함한 자유 텍스트("삼성전자 분석해줘") 모두 가능합니다.

Example:
  go run ./cmd/mtt analyze 삼성전자
  go run ./cmd/mtt analyze 005930`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)
	httpClient := httputil.New(cfg, log).WithRateLimit(5, 2)
	dataClient := rsdata.NewClient(httpClient, log, cfg.RSData)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	stocks, err := dataClient.FetchStockList(ctx)
	if err != nil {
		return fmt.Errorf("fetch stock list: %w", err)
	}

	res := resolver.New(stocks)
	loc := locator.New(dataClient, log, cfg.Lookback.AnalyzeDays)
	anl := analyzer.New(res, loc, dataClient, checklist.NewEngine(log), log)

	result, err := anl.Analyze(ctx, strings.Join(args, " "))
	if err != nil {
		return fmt.Errorf("analyze: %w", err)
	}

	fmt.Println(report.Format(result.Stock.Name, result.DataDate, result.Checklist))
	return nil
}
