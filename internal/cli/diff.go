package cli

import (
	"context"

	"github.com/spf13/cobra"

	"composer-reconcile/internal/adapters"
	"composer-reconcile/internal/app"
)

type diffOptions struct {
	Manifest string
	Against  string
	Color    bool
}

func newDiffCommand() *cobra.Command {
	opts := diffOptions{}
	cmd := &cobra.Command{
		Use:   "diff",
		Short: "Show the structural difference between two composer manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDiff(cmd.Context(), cmd, opts)
		},
	}
	cmd.Flags().StringVar(&opts.Manifest, "manifest", "", "Original manifest path")
	cmd.Flags().StringVar(&opts.Against, "against", "", "Manifest to compare against")
	cmd.Flags().BoolVar(&opts.Color, "color", true, "Colour the diff output")
	cmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
		return bindViperFlags(cmd,
			flagBinding{Key: "manifest", Flag: "manifest"},
			flagBinding{Key: "against", Flag: "against"},
			flagBinding{Key: "color", Flag: "color"},
		)
	}
	return cmd
}

func runDiff(ctx context.Context, cmd *cobra.Command, opts diffOptions) error {
	service := newAppService()
	result, err := service.Diff(ctx, app.DiffRequest{
		ManifestPath: resolveString(cmd, opts.Manifest, "manifest", "manifest"),
		AgainstPath:  resolveString(cmd, opts.Against, "against", "against"),
	})
	if err != nil {
		return err
	}
	printer := adapters.NewDiffPrinterAdapter(resolveBool(cmd, opts.Color, "color", "color"))
	return printer.PrintDiff(cmd.OutOrStdout(), result.Diff)
}
