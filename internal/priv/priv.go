// Package priv wraps the privileged filesystem operations the updater
// delegates to sudo. Every mutation outside the user's home directory goes
// through this seam so it can be faked in tests and, eventually, swapped for
// a more transactional primitive without touching orchestration logic.
package priv

import (
	"fmt"
	"os/exec"
	"strings"

	log "github.com/sirupsen/logrus"
)

// CommandRunner is an interface for running external commands.
// This allows for mocking in tests.
type CommandRunner interface {
	Run(name string, args ...string) ([]byte, error)
	// RunIn runs the command with dir as its working directory.
	RunIn(dir, name string, args ...string) ([]byte, error)
}

// ExecRunner uses os/exec to run commands.
type ExecRunner struct{}

func (r *ExecRunner) Run(name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	return cmd.CombinedOutput()
}

func (r *ExecRunner) RunIn(dir, name string, args ...string) ([]byte, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Sudo provides elevated filesystem operations backed by the sudo binary.
type Sudo struct {
	runner CommandRunner
}

// NewSudo creates a Sudo capability backed by real command execution.
func NewSudo() *Sudo {
	return &Sudo{runner: &ExecRunner{}}
}

// NewSudoWithRunner creates a Sudo capability with a custom runner (for testing).
func NewSudoWithRunner(runner CommandRunner) *Sudo {
	return &Sudo{runner: runner}
}

// run executes a sudo command and wraps failures with the captured output.
func (s *Sudo) run(args ...string) error {
	log.Debugf("running: sudo %s", strings.Join(args, " "))
	output, err := s.runner.Run("sudo", args...)
	if err != nil {
		return fmt.Errorf("sudo %s: %w\noutput: %s", strings.Join(args, " "), err, strings.TrimSpace(string(output)))
	}
	return nil
}

// Ensure verifies sudo access by refreshing the credential cache.
// Called once before any destructive step; a failure here must abort the run.
func (s *Sudo) Ensure() error {
	if err := s.run("-v"); err != nil {
		return fmt.Errorf("sudo privileges are required: %w", err)
	}
	return nil
}

// MkdirAll creates a directory and any missing parents.
func (s *Sudo) MkdirAll(path string) error {
	return s.run("mkdir", "-p", path)
}

// CopyTree recursively copies src to dst.
func (s *Sudo) CopyTree(src, dst string) error {
	return s.run("cp", "-R", src, dst)
}

// RemoveTree recursively removes path.
func (s *Sudo) RemoveTree(path string) error {
	return s.run("rm", "-rf", path)
}

// MoveTree renames src to dst.
func (s *Sudo) MoveTree(src, dst string) error {
	return s.run("mv", src, dst)
}

// ChownRoot sets root:root ownership on path.
func (s *Sudo) ChownRoot(path string) error {
	return s.run("chown", "root:root", path)
}

// Chmod sets the given octal mode string (e.g. "4755") on path.
func (s *Sudo) Chmod(mode, path string) error {
	return s.run("chmod", mode, path)
}

// RemoveFile removes a single file or symlink, ignoring absence.
func (s *Sudo) RemoveFile(path string) error {
	return s.run("rm", "-f", path)
}

// Symlink creates or replaces a symlink at link pointing to target.
func (s *Sudo) Symlink(target, link string) error {
	return s.run("ln", "-sf", target, link)
}

// requiredTools are the external commands the update pipeline shells out to.
var requiredTools = []string{"sudo", "update-desktop-database"}

// CheckDependencies returns the names of required external commands that are
// not present on PATH.
func CheckDependencies() []string {
	var missing []string
	for _, tool := range requiredTools {
		if _, err := exec.LookPath(tool); err != nil {
			missing = append(missing, tool)
		}
	}
	return missing
}
