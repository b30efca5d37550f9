package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"composer-reconcile/internal/adapters"
	"composer-reconcile/internal/app"
	"composer-reconcile/internal/policies"
)

type migrateOptions struct {
	Source        string
	Destination   string
	Yes           bool
	NoBackup      bool
	LibrariesDir  string
	LibrariesPath string
	Color         bool
}

func newMigrateCommand() *cobra.Command {
	opts := migrateOptions{}
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Merge source modules, themes and libraries into the destination composer.json",
		Long: "Merge the repositories, drupal.org projects and front-end libraries of a source\n" +
			"project into the composer.json of a destination project. Without --yes the\n" +
			"changes are only printed.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd.Context(), cmd, opts, resolveBool(cmd, opts.Yes, "yes", "yes"))
		},
	}
	bindMigrateFlags(cmd, &opts)
	cmd.Flags().BoolVar(&opts.Yes, "yes", false, "Write the reconciled manifest")
	cmd.Flags().BoolVar(&opts.NoBackup, "no-backup", false, "Do not back up the destination manifest before writing")
	cmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
		return bindViperFlags(cmd, append(migrateBindings,
			flagBinding{Key: "yes", Flag: "yes"},
			flagBinding{Key: "no_backup", Flag: "no-backup"},
		)...)
	}
	return cmd
}

func newPlanCommand() *cobra.Command {
	opts := migrateOptions{}
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show what migrate would change without writing",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd.Context(), cmd, opts, false)
		},
	}
	bindMigrateFlags(cmd, &opts)
	cmd.PreRunE = func(cmd *cobra.Command, _ []string) error {
		return bindViperFlags(cmd, migrateBindings...)
	}
	return cmd
}

// migrateBindings are the viper keys shared by migrate and plan, bound in
// PreRunE of whichever one runs.
var migrateBindings = []flagBinding{
	{Key: "source", Flag: "source"},
	{Key: "destination", Flag: "destination"},
	{Key: "libraries_dir", Flag: "libraries-dir"},
	{Key: "libraries_path", Flag: "libraries-path"},
	{Key: "color", Flag: "color"},
}

func bindMigrateFlags(cmd *cobra.Command, opts *migrateOptions) {
	cmd.Flags().StringVar(&opts.Source, "source", "", "Source project directory")
	cmd.Flags().StringVar(&opts.Destination, "destination", "", "Destination project directory")
	cmd.Flags().StringVar(&opts.LibrariesDir, "libraries-dir", adapters.DefaultLibrariesDir, "Directory name front-end libraries live in")
	cmd.Flags().StringVar(&opts.LibrariesPath, "libraries-path", policies.DefaultLibrariesPath, "Installer path registered for asset packages")
	cmd.Flags().BoolVar(&opts.Color, "color", true, "Colour the diff output")
}

func runMigrate(ctx context.Context, cmd *cobra.Command, opts migrateOptions, apply bool) error {
	service := newAppService()
	result, err := service.Migrate(ctx, app.MigrateRequest{
		SourceDir:      resolveString(cmd, opts.Source, "source", "source"),
		DestinationDir: resolveString(cmd, opts.Destination, "destination", "destination"),
		LibrariesDir:   resolveString(cmd, opts.LibrariesDir, "libraries_dir", "libraries-dir"),
		LibrariesPath:  resolveString(cmd, opts.LibrariesPath, "libraries_path", "libraries-path"),
		Apply:          apply,
		Backup:         !resolveBool(cmd, opts.NoBackup, "no_backup", "no-backup"),
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	printer := adapters.NewDiffPrinterAdapter(resolveBool(cmd, opts.Color, "color", "color"))
	if err := printer.PrintDiff(out, result.Diff); err != nil {
		return err
	}
	printSkipped(out, result)
	switch {
	case result.Written && result.BackupPath != "":
		fmt.Fprintf(out, "backed up: %s\n", result.BackupPath)
		fmt.Fprintf(out, "wrote: %s\n", result.DestinationPath)
	case result.Written:
		fmt.Fprintf(out, "wrote: %s\n", result.DestinationPath)
	case result.Diff.Empty():
		fmt.Fprintf(out, "up to date: %s\n", result.DestinationPath)
	default:
		fmt.Fprintf(out, "dry run: %s not written (re-run migrate with --yes)\n", result.DestinationPath)
	}
	return nil
}

func printSkipped(out io.Writer, result app.MigrateResult) {
	if len(result.Skipped) == 0 {
		return
	}
	fmt.Fprintf(out, "skipped %d descriptor(s), add them to require by hand:\n", len(result.Skipped))
	for _, skipped := range result.Skipped {
		fmt.Fprintf(out, "  %s: %s\n", skipped.Path, skipped.Reason)
	}
}
