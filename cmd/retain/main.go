package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/retain-hq/retain/internal/interfaces/cli/admin"
	"github.com/retain-hq/retain/internal/interfaces/cli/migrate"
	"github.com/retain-hq/retain/internal/interfaces/cli/server"
	"github.com/retain-hq/retain/internal/interfaces/cli/worker"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "retain",
		Short: "Retain - subscription lifecycle and retention engine",
		Long:  `Retain manages subscription records, save flows, selling plans, and data integrity checks for multi-tenant commerce stores.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		worker.NewCommand(),
		migrate.NewCommand(),
		admin.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
