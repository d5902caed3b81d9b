package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/cursortools/cursorup/internal/output"
	"github.com/cursortools/cursorup/internal/update"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check for a newer Cursor release without installing",
		Long: `Check resolves the latest release and reports whether an update is
available. Nothing is downloaded or modified.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUpdate(update.Options{CheckOnly: true})
		},
	}
}

// checkReport is one of the fixed report shapes a check-only run produces.
type checkReport struct {
	Status    string `json:"status" yaml:"status"`
	Installed string `json:"installed,omitempty" yaml:"installed,omitempty"`
	Latest    string `json:"latest,omitempty" yaml:"latest,omitempty"`
}

const (
	statusUpToDate        = "up-to-date"
	statusNotInstalled    = "not-installed"
	statusLatestUnknown   = "latest-unknown"
	statusUpdateAvailable = "update-available"
)

func (r checkReport) String() string {
	switch r.Status {
	case statusNotInstalled:
		return fmt.Sprintf("Cursor not installed. Latest version available: %s", r.Latest)
	case statusLatestUnknown:
		return fmt.Sprintf("Currently installed: %s. Cannot determine latest version.", r.Installed)
	case statusUpdateAvailable:
		return fmt.Sprintf("Update available: %s → %s", r.Installed, r.Latest)
	default:
		return "✓ Already up to date."
	}
}

// buildCheckReport maps a run result onto its report shape.
func buildCheckReport(result *update.Result) checkReport {
	report := checkReport{
		Installed: result.Installed,
		Latest:    result.Latest,
	}
	switch {
	case result.Outcome == update.OutcomeUpToDate:
		report.Status = statusUpToDate
	case result.Installed == "":
		report.Status = statusNotInstalled
	case result.Latest == update.UnknownVersion:
		report.Status = statusLatestUnknown
	default:
		report.Status = statusUpdateAvailable
	}
	return report
}

func writeCheckReport(w io.Writer, result *update.Result) error {
	format, err := output.ParseFormat(outputFormat)
	if err != nil {
		return err
	}
	return output.NewWriter(w, format).Write(buildCheckReport(result))
}
