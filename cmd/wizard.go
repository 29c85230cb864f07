package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sqlcore/sqlcore/internal/wizard"
)

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactively compose a CREATE TABLE plan",
	Long: `wizard walks through naming a schema and table and adding columns
one at a time, then plans and dry-runs the resulting CREATE TABLE intent
against a fresh in-memory catalog snapshot.`,
	Run: runWizard,
}

func init() {
	rootCmd.AddCommand(wizardCmd)
}

func runWizard(cmd *cobra.Command, args []string) {
	if err := wizard.Run(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
