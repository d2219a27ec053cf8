// cmd/tools/catalog-cli/validate.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"matching-workers/internal/catalog"
	"matching-workers/internal/common/validation"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check a catalog file against the catalog schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if catalogFile == "" {
				return fmt.Errorf("--file is required")
			}
			data, err := os.ReadFile(catalogFile)
			if err != nil {
				return err
			}
			return validateCatalog(cmd, data)
		},
	}
}

func validateCatalog(cmd *cobra.Command, data []byte) error {
	out := cmd.OutOrStdout()

	result := validation.ValidateJSON(data, validation.CatalogFileSchema())
	if !result.Valid {
		for _, e := range result.Errors {
			fmt.Fprintf(out, "%s: %s (%s)\n", e.Field, e.Message, e.Code)
		}
		return fmt.Errorf("%d schema violations", len(result.Errors))
	}

	c, err := catalog.ParseCatalog(data)
	if err != nil {
		return err
	}
	snap, err := catalog.NewSnapshot(c, "file:"+catalogFile)
	if err != nil {
		return err
	}

	info := snap.Info()
	fmt.Fprintf(out, "ok: %d tools, %d products\n", info.Tools.Count, info.Products.Count)
	return nil
}
