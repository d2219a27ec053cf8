// cmd/tools/catalog-cli/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"matching-workers/internal/catalog"
	"matching-workers/internal/common/config"
	"matching-workers/internal/models"
)

var (
	cfgFile     string
	catalogFile string
	logLevel    string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "catalog-cli",
		Short: "Operate the matching catalog",
		Long: `catalog-cli validates catalog files, seeds the Postgres and Elasticsearch
catalog backends and runs matches locally against a catalog.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (defaults to configs/config.yaml)")
	root.PersistentFlags().StringVarP(&catalogFile, "file", "f", "", "catalog JSON file (defaults to the embedded catalog)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level written to stderr")

	root.AddCommand(newValidateCmd(), newSeedPostgresCmd(), newIndexElasticsearchCmd(), newMatchCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFromFile(cfgFile)
	}
	return config.Load()
}

// catalogSource is the --file catalog, or the embedded one.
func catalogSource() catalog.Source {
	if catalogFile != "" {
		return catalog.NewFileSource(catalogFile)
	}
	return catalog.NewEmbeddedSource()
}

// readCatalog loads and checks the selected catalog.
func readCatalog(ctx context.Context) (models.Catalog, string, error) {
	src := catalogSource()
	c, err := src.Load(ctx)
	if err != nil {
		return models.Catalog{}, "", fmt.Errorf("load %s: %w", src.Name(), err)
	}
	if _, err := catalog.NewSnapshot(c, src.Name()); err != nil {
		return models.Catalog{}, "", fmt.Errorf("check %s: %w", src.Name(), err)
	}
	return c, src.Name(), nil
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
