package update

import (
	"os"
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/cursortools/cursorup/internal/priv"
)

// payloadDirName is the directory the bundle's self-extraction produces.
const payloadDirName = "squashfs-root"

// sandboxRelPath locates the privileged sandboxing helper inside the
// extracted payload. Electron's chrome-sandbox must be root-owned setuid to
// work on kernels without unprivileged user namespaces.
const sandboxRelPath = "usr/share/cursor/chrome-sandbox"

// Installer extracts a downloaded bundle and swaps it into the install
// directory.
type Installer struct {
	sudo   *priv.Sudo
	runner priv.CommandRunner
}

// NewInstaller creates an installer that performs privileged mutations
// through sudo and runs the bundle's self-extraction through runner.
func NewInstaller(sudo *priv.Sudo, runner priv.CommandRunner) *Installer {
	return &Installer{sudo: sudo, runner: runner}
}

// Install extracts the artifact's payload and replaces installDir with it.
//
// The remove-then-move at the end is the pipeline's accepted atomicity gap:
// between the two steps no install directory exists. The preceding backup is
// the only mitigation.
func (i *Installer) Install(artifactPath, installDir string) error {
	const op = "install bundle"

	tmpDir, err := os.MkdirTemp("", "cursorup-extract-")
	if err != nil {
		return errf(KindExtraction, op, "creating extraction directory: %w", err)
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			log.Warnf("could not remove extraction directory %s: %v", tmpDir, err)
		}
	}()

	log.Info("Extracting AppImage...")
	if output, err := i.runner.RunIn(tmpDir, artifactPath, "--appimage-extract"); err != nil {
		return errf(KindExtraction, op, "self-extraction failed: %w\noutput: %s", err, output)
	}

	payload := filepath.Join(tmpDir, payloadDirName)
	if _, err := os.Stat(payload); err != nil {
		return errf(KindExtraction, op, "extraction produced no %s directory", payloadDirName)
	}

	if err := i.fixSandboxPermissions(payload); err != nil {
		return err
	}

	if _, err := os.Stat(installDir); err == nil {
		log.Infof("Removing old installation at %s", installDir)
		if err := i.sudo.RemoveTree(installDir); err != nil {
			return errf(KindInstall, op, "removing old installation: %w", err)
		}
	}

	log.Infof("Installing to %s", installDir)
	if err := i.sudo.MoveTree(payload, installDir); err != nil {
		return errf(KindInstall, op, "moving new installation into place: %w", err)
	}

	return nil
}

// fixSandboxPermissions makes the embedded sandboxing helper root-owned
// setuid. A missing helper is a warning, not a failure; the application can
// still run without its sandbox.
func (i *Installer) fixSandboxPermissions(payload string) error {
	const op = "install bundle"

	sandbox := filepath.Join(payload, sandboxRelPath)
	if _, err := os.Stat(sandbox); err != nil {
		log.Warn("chrome-sandbox not found; application may need --no-sandbox")
		return nil
	}

	log.Info("Setting chrome-sandbox permissions")
	if err := i.sudo.ChownRoot(sandbox); err != nil {
		return errf(KindInstall, op, "setting sandbox ownership: %w", err)
	}
	if err := i.sudo.Chmod("4755", sandbox); err != nil {
		return errf(KindInstall, op, "setting sandbox permissions: %w", err)
	}
	return nil
}
