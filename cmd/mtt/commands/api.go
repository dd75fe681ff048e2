package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/minhobin/mtt/internal/analyzer"
	"github.com/minhobin/mtt/internal/api"
	"github.com/minhobin/mtt/internal/api/handlers"
	"github.com/minhobin/mtt/internal/checklist"
	"github.com/minhobin/mtt/internal/external/rsdata"
	"github.com/minhobin/mtt/internal/locator"
	"github.com/minhobin/mtt/internal/mttlist"
	"github.com/minhobin/mtt/internal/resolver"
	"github.com/minhobin/mtt/internal/scheduler"
	"github.com/minhobin/mtt/internal/scheduler/jobs"
	"github.com/minhobin/mtt/pkg/httputil"
	"github.com/minhobin/mtt/pkg/logger"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

이 명령어는:
- HTTP API 서버 시작
- 체크리스트 분석 엔드포인트 제공
- MTT 전체 통과 목록 엔드포인트 제공
- 스케줄러가 켜진 경우 목록 자동 갱신

Endpoints:
  GET  /health           - Health check
  POST /api/analyze      - 추세 템플릿 체크리스트 분석
  GET  /api/suggest      - 종목 자동완성
  GET  /api/mtt/latest   - 최신 전체 통과 목록

Example:
  go run ./cmd/mtt api
  go run ./cmd/mtt api --port 8080`,
	RunE: runAPIServer,
}

var (
	apiPort string
)

func init() {
	rootCmd.AddCommand(apiCmd)

	// Flags
	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	fmt.Println("=== MTT API Server ===")

	// 1. Load config
	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Override port if flag is set
	if apiPort != "" {
		cfg.Port = apiPort
	}

	// 2. Initialize logger
	log := logger.New(cfg)

	log.WithFields(map[string]interface{}{
		"port": cfg.Port,
		"env":  cfg.Env,
	}).Info("Initializing API server")

	// 3. Create HTTP client (GitHub raw는 과도한 요청을 차단하므로 제한)
	httpClient := httputil.New(cfg, log).WithRateLimit(5, 2)

	// 4. Create data source client
	dataClient := rsdata.NewClient(httpClient, log, cfg.RSData)

	// 5. Load reference table and build resolver
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	stocks, err := dataClient.FetchStockList(ctx)
	cancel()
	if err != nil {
		return fmt.Errorf("fetch stock list: %w", err)
	}

	res := resolver.New(stocks)
	log.WithField("stocks", res.Size()).Info("Loaded reference table")

	// 6. Create analysis pipeline
	loc := locator.New(dataClient, log, cfg.Lookback.AnalyzeDays)
	engine := checklist.NewEngine(log)
	anl := analyzer.New(res, loc, dataClient, engine, log)

	// 7. Create MTT list service
	listService := mttlist.NewService(dataClient, log, cfg.Lookback.ListDays)

	// 8. Create handlers and router
	analysisHandler := handlers.NewAnalysisHandler(anl, log)
	listHandler := handlers.NewListHandler(listService, log)
	router := api.NewRouter(analysisHandler, listHandler, log)

	// 9. Create server
	server := api.New(cfg, log, router)

	// 10. Start scheduler if enabled
	var sched *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		sched = scheduler.New(log)
		job := jobs.NewListRefreshJob(listService, log, cfg.Scheduler.ListRefreshCron)
		if err := sched.AddJob(job); err != nil {
			return fmt.Errorf("register list refresh job: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	// 11. Start server with graceful shutdown
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  POST /api/analyze")
	fmt.Println("  GET  /api/suggest")
	fmt.Println("  GET  /api/mtt/latest")
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
