package update

import "context"

// Options controls a single orchestrator run.
type Options struct {
	Force      bool // Update even when already up to date
	SkipBackup bool // Skip the backup step entirely
	CheckOnly  bool // Report availability without mutating anything
}

// Outcome is the terminal state of a run. Exactly one applies.
type Outcome string

const (
	// OutcomeUpToDate means the installed version is already current.
	OutcomeUpToDate Outcome = "up-to-date"
	// OutcomeCheckOnly means a dry-run check was requested and reported.
	OutcomeCheckOnly Outcome = "check-only"
	// OutcomeUpdated means a new version was installed.
	OutcomeUpdated Outcome = "updated"
	// OutcomeAborted means the run stopped on an unrecoverable failure.
	OutcomeAborted Outcome = "aborted"
)

// Result reports how a run ended.
type Result struct {
	Outcome   Outcome `json:"outcome" yaml:"outcome"`
	Installed string  `json:"installed,omitempty" yaml:"installed,omitempty"`
	Latest    string  `json:"latest,omitempty" yaml:"latest,omitempty"`
	Backup    string  `json:"backup,omitempty" yaml:"backup,omitempty"`
}

// ReleaseResolver queries the remote endpoint for the latest release.
type ReleaseResolver interface {
	Resolve(ctx context.Context, platform string) (*Release, error)
}

// ArtifactFetcher downloads a release artifact to a temporary file.
type ArtifactFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// BundleInstaller extracts an artifact and swaps it into the install
// directory.
type BundleInstaller interface {
	Install(artifactPath, installDir string) error
}

// Relinker repoints the launch symlink and refreshes desktop integration.
type Relinker interface {
	Relink(installDir, symlink string) error
}

// BackupCreator snapshots the install directory before mutation.
type BackupCreator interface {
	Create(sourceDir string) (string, error)
}

// Privileges verifies privilege escalation before destructive steps.
type Privileges interface {
	Ensure() error
}

// Confirmer asks the user a yes/no question on a terminal.
type Confirmer interface {
	// IsTerminal reports whether a prompt can actually reach the user.
	IsTerminal() bool
	Confirm(question string) bool
}
