// Package cmd wires the cursorup command-line interface.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/cursortools/cursorup/internal/config"
	"github.com/cursortools/cursorup/internal/logging"
)

var (
	// Global flags
	outputFormat string
	configPath   string
	verbose      bool

	// cfg is resolved once before any command runs.
	cfg config.Config

	// cursorupVersion is the build version injected from main.
	cursorupVersion = "dev"
)

func Execute(version, commit, date string) error {
	cursorupVersion = version

	rootCmd := &cobra.Command{
		Use:   "cursorup",
		Short: "Keep the Cursor editor up to date on Linux",
		Long: `cursorup installs and updates the Cursor editor from its release endpoint.

It reads the installed version from the bundle's desktop file, resolves the
latest build for this platform, and, when the remote build is newer, backs
up the current installation, downloads the new AppImage, extracts it, and
swaps it into place under /opt.

Filesystem mutations outside your home directory run through sudo. Run only
one cursorup instance at a time against the same installation.`,
		Version:      version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			logging.Init(verbose, cfg.LogFile)
			return nil
		},
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "text", "Output format: text, json, yaml")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newUpdateCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newBackupCmd())
	rootCmd.AddCommand(newVersionCmd(commit, date))
	rootCmd.AddCommand(newCompletionCmd())

	// Register completion function for output flag
	_ = rootCmd.RegisterFlagCompletionFunc("output", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "json", "yaml"}, cobra.ShellCompDirectiveNoFileComp
	})

	return rootCmd.Execute()
}
