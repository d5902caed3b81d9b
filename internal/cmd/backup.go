package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cursortools/cursorup/internal/backup"
	"github.com/cursortools/cursorup/internal/priv"
)

func newBackupCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Manage installation backups",
		Long: `Backup manages the timestamped copies of the Cursor installation that
cursorup creates before each update.

Backups live under ` + "`/opt/cursor_backups`" + ` (configurable) and are never
removed automatically; use 'cursorup backup prune' to reclaim space.`,
	}

	cmd.AddCommand(newBackupListCmd())
	cmd.AddCommand(newBackupPruneCmd())
	cmd.AddCommand(newBackupDeleteCmd())

	return cmd
}

func backupManager() *backup.Manager {
	return backup.NewManager(cfg.BackupDir, "cursor", priv.NewSudo())
}

func newBackupListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all backups",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackupList()
		},
	}
}

func runBackupList() error {
	backups, err := backupManager().List()
	if err != nil {
		return err
	}

	if len(backups) == 0 {
		fmt.Println("No backups found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tPATH")
	for _, b := range backups {
		fmt.Fprintf(w, "%s\t%s\t%s\n", b.ID, b.CreatedAt.Format("2006-01-02 15:04:05"), b.Path)
	}
	return w.Flush()
}

func newBackupPruneCmd() *cobra.Command {
	var keep int

	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove old backups, keeping the most recent ones",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBackupPrune(keep)
		},
	}

	cmd.Flags().IntVar(&keep, "keep", backup.DefaultKeepCount, "Number of backups to keep")

	return cmd
}

func runBackupPrune(keep int) error {
	mgr := backupManager()
	if err := mgr.Sudo().Ensure(); err != nil {
		return err
	}

	result, err := mgr.Prune(keep)
	if err != nil {
		return err
	}

	for _, b := range result.Deleted {
		fmt.Printf("Deleted %s\n", b.ID)
	}
	fmt.Printf("Kept %d backup(s)\n", result.Kept)
	return nil
}

func newBackupDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a backup by ID",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr := backupManager()
			if err := mgr.Sudo().Ensure(); err != nil {
				return err
			}
			if err := mgr.Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("Deleted %s\n", args[0])
			return nil
		},
	}
}
