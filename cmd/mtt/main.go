package main

import (
	"os"

	"github.com/minhobin/mtt/cmd/mtt/commands"
)

// main is the entry point for the MTT CLI
// ⭐ 통합 CLI 진입점: go run ./cmd/mtt [command]
func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
