package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVersionCmd(commit, date string) *cobra.Command {
	var long bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE: func(cmd *cobra.Command, args []string) error {
			if long {
				fmt.Printf("cursorup version %s (commit %s, built %s)\n", cursorupVersion, commit, date)
				return nil
			}
			fmt.Printf("cursorup version %s\n", cursorupVersion)
			return nil
		},
	}

	cmd.Flags().BoolVar(&long, "long", false, "Include commit and build date")

	return cmd
}
