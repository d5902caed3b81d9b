package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cursortools/cursorup/internal/update"
)

func newUpdateCmd() *cobra.Command {
	var (
		force    bool
		noBackup bool
		check    bool
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update Cursor to the latest release",
		Long: `Update checks the release endpoint for a newer Cursor build and installs it.

The current installation is backed up to a timestamped directory first;
pass --no-backup to skip that. --check reports availability and exits
without touching anything.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(update.Options{
				Force:      force,
				SkipBackup: noBackup,
				CheckOnly:  check,
			})
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Update even if already up to date")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip backing up the existing installation")
	cmd.Flags().BoolVar(&check, "check", false, "Only check for updates, don't install")

	return cmd
}

func runUpdate(opts update.Options) error {
	// Ctrl-C cancels the in-flight download/request; cleanup still runs.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := update.New(cfg).Run(ctx, opts)
	if err != nil {
		return err
	}

	if opts.CheckOnly {
		return writeCheckReport(os.Stdout, result)
	}

	switch result.Outcome {
	case update.OutcomeUpToDate:
		fmt.Println("✓ Already up to date.")
	case update.OutcomeUpdated:
		fmt.Printf("\n✓ Cursor has been upgraded to version %s\n", result.Latest)
		fmt.Println("  Run `cursor` to launch")
	}
	return nil
}
