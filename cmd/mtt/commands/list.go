package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/minhobin/mtt/internal/external/rsdata"
	"github.com/minhobin/mtt/internal/mttlist"
	"github.com/minhobin/mtt/pkg/httputil"
	"github.com/minhobin/mtt/pkg/logger"
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "MTT 전체 통과 목록 조회",
	Long: `최근 발행된 일별 추세 템플릿 문서에서 8개 항목을 모두 통과한
종목 목록을 가져와 출력합니다.

신규 진입 종목(전 거래일 목록에 없던 종목)이 먼저, 나머지는
RS 내림차순으로 정렬됩니다.

Example:
  go run ./cmd/mtt list`,
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)
	httpClient := httputil.New(cfg, log).WithRateLimit(5, 2)
	dataClient := rsdata.NewClient(httpClient, log, cfg.RSData)
	service := mttlist.NewService(dataClient, log, cfg.Lookback.ListDays)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	snapshot, err := service.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh list: %w", err)
	}

	fmt.Printf("[MTT 전체 통과 목록 - %s]\n", snapshot.Date)
	if snapshot.PrevDate != "" {
		fmt.Printf("(신규 기준일: %s)\n", snapshot.PrevDate)
	}
	fmt.Println()

	for i, e := range snapshot.Entries {
		marker := "  "
		if e.IsNew {
			marker = "🆕"
		}
		fmt.Printf("%3d. %s %s (%s) RS %.0f\n", i+1, marker, e.Name, e.Code, e.Rank)
	}

	fmt.Printf("\n총 %d 종목\n", len(snapshot.Entries))
	return nil
}
