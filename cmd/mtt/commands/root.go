package commands

import (
	"github.com/spf13/cobra"

	"github.com/minhobin/mtt/pkg/config"
)

var (
	// Global flags
	env     string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mtt",
	Short: "MTT - 미너비니 추세 템플릿 체크리스트",
	Long: `MTT Unified CLI

한국 주식 종목에 대해 8개 항목의 추세 템플릿 체크리스트를 평가합니다.
데이터는 dalinaum/rs 저장소의 일별 RS 문서와 가격 CSV를 사용합니다.

Usage:
  go run ./cmd/mtt [command]

Examples:
  go run ./cmd/mtt analyze 삼성전자
  go run ./cmd/mtt analyze 005930
  go run ./cmd/mtt list
  go run ./cmd/mtt api`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&env, "env", "", "environment (development|staging|production)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the environment config and applies global flag
// overrides
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if env != "" {
		cfg.Env = env
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	return cfg, nil
}
