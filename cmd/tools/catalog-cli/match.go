// cmd/tools/catalog-cli/match.go
package main

import (
	"context"

	"github.com/spf13/cobra"

	"matching-workers/internal/catalog"
	"matching-workers/internal/common/logger"
	"matching-workers/internal/matching/recommend"
)

var topN int

func newMatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "match",
		Short: "Run a match against the catalog and print the bundle",
	}
	cmd.PersistentFlags().IntVarP(&topN, "top", "n", recommend.DefaultTopN, "number of recommendations")
	cmd.AddCommand(newMatchCompanyCmd(), newMatchIndividualCmd())
	return cmd
}

func newMatchCompanyCmd() *cobra.Command {
	var req recommend.CompanyRequest
	cmd := &cobra.Command{
		Use:   "company <friction point>",
		Short: "Recommend AI tools for a business problem",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			req.FrictionPoint = args[0]
			rec, err := svc.MatchCompany(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rec)
		},
	}
	cmd.Flags().StringVar(&req.CompanySize, "size", "", "company size (startup, small, medium, enterprise)")
	cmd.Flags().StringVar(&req.Industry, "industry", "", "industry sector")
	cmd.Flags().StringSliceVar(&req.TechnicalConstraints, "constraint", nil, "technical constraint, repeatable")
	return cmd
}

func newMatchIndividualCmd() *cobra.Command {
	var req recommend.IndividualRequest
	cmd := &cobra.Command{
		Use:   "individual <need>",
		Short: "Recommend hardware for a personal need",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := newService(cmd.Context())
			if err != nil {
				return err
			}
			req.Need = args[0]
			rec, err := svc.MatchIndividual(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), rec)
		},
	}
	cmd.Flags().StringVar(&req.BudgetRange, "budget", "", "budget range (budget, mid-range, premium, unlimited)")
	cmd.Flags().StringVar(&req.EcosystemPreference, "ecosystem", "", "ecosystem preference (apple, windows, linux, samsung)")
	cmd.Flags().StringSliceVar(&req.PrimaryUseCases, "use-case", nil, "primary use case, repeatable")
	return cmd
}

func newService(ctx context.Context) (*recommend.Service, error) {
	log := logger.NewStructured(logLevel, "console")
	store := catalog.NewStore(catalogSource(), catalog.WithLogger(log))
	if err := store.Load(ctx); err != nil {
		return nil, err
	}
	return recommend.NewService(store, recommend.Options{
		TopN:   topN,
		Logger: log,
	}), nil
}
