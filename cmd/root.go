package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "sqlcore",
	Short: "sqlcore analyzes SQL statements and plans DDL changes against a catalog snapshot.",
	Long: `sqlcore is a query-processing core for a PostgreSQL-wire-compatible
SQL engine: it parses and analyzes DML/DDL statements against a catalog
snapshot, and plans schema changes as an explicit sequence of steps.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
