// cmd/tools/catalog-cli/seed.go
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"matching-workers/internal/catalog"
	"matching-workers/internal/common/database"
)

func newSeedPostgresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed-postgres",
		Short: "Create the catalog table and upsert every record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			c, name, err := readCatalog(ctx)
			if err != nil {
				return err
			}

			db, err := database.OpenPostgres(ctx, cfg.Database.Postgres)
			if err != nil {
				return err
			}
			defer db.Close()

			src := catalog.NewPostgresSource(db)
			if err := src.Migrate(ctx); err != nil {
				return err
			}
			n, err := src.Seed(ctx, c)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "seeded %d records from %s\n", n, name)
			return nil
		},
	}
}

func newIndexElasticsearchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "index-elasticsearch",
		Short: "Bulk index every record into the catalog indices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			c, name, err := readCatalog(ctx)
			if err != nil {
				return err
			}

			es, err := database.OpenElasticsearch(ctx, cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}

			src := catalog.NewElasticsearchSource(es, cfg.Catalog.Index.Tools, cfg.Catalog.Index.Products)
			n, err := src.Index(ctx, c)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "indexed %d records from %s\n", n, name)
			return nil
		},
	}
}
