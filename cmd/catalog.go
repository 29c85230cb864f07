package cmd

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"
)

var (
	catalogEnvironment string
	catalogTimeout     time.Duration
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Introspect an environment's database and print its catalog snapshot",
	Long: `catalog connects to the database named by an environment in
sqlcore.toml (or its .env.<name> file), introspects every schema and
table it can see, and prints the result as the same JSON document
internal/catalog round-trips through UnmarshalSnapshotJSON.`,
	Example: `  sqlcore catalog --environment local
  sqlcore catalog --environment production > snapshot.json`,
	Run: runCatalog,
}

func init() {
	rootCmd.AddCommand(catalogCmd)
	catalogCmd.Flags().StringVar(&catalogEnvironment, "environment", "", "Named environment to introspect (default: sqlcore.toml's default, else \"local\")")
	catalogCmd.Flags().DurationVar(&catalogTimeout, "timeout", 10*time.Second, "Timeout for the introspection connection")
}

func runCatalog(cmd *cobra.Command, args []string) {
	cat, err := loadCatalogForEnvironment(catalogEnvironment, catalogTimeout)
	if err != nil {
		log.Fatalf("sqlcore: loading catalog: %v", err)
	}

	out, err := json.MarshalIndent(cat, "", "  ")
	if err != nil {
		log.Fatalf("sqlcore: rendering catalog: %v", err)
	}
	fmt.Println(string(out))
}
