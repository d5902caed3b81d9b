package update

import (
	"path/filepath"

	log "github.com/sirupsen/logrus"

	"github.com/cursortools/cursorup/internal/desktop"
	"github.com/cursortools/cursorup/internal/priv"
)

// entryPointName is the bundle's launch executable inside the install
// directory.
const entryPointName = "AppRun"

// Linker repoints the public launch symlink and refreshes the user's
// desktop-integration database.
type Linker struct {
	sudo   *priv.Sudo
	runner priv.CommandRunner
}

// NewLinker creates a linker backed by sudo for the symlink rewrite and by
// runner for the unprivileged desktop database refresh.
func NewLinker(sudo *priv.Sudo, runner priv.CommandRunner) *Linker {
	return &Linker{sudo: sudo, runner: runner}
}

// Relink replaces the symlink (including a broken one) with a link to the
// install directory's entry point, then refreshes the desktop database.
// Failures here never roll back the install; the application is already
// usable by direct invocation.
func (l *Linker) Relink(installDir, symlink string) error {
	const op = "update symlink"

	log.Infof("Creating symlink at %s", symlink)
	if err := l.sudo.RemoveFile(symlink); err != nil {
		return errf(KindLink, op, "removing existing symlink: %w", err)
	}
	if err := l.sudo.Symlink(filepath.Join(installDir, entryPointName), symlink); err != nil {
		return errf(KindLink, op, "creating symlink: %w", err)
	}

	if err := desktop.RefreshDatabase(l.runner); err != nil {
		return errf(KindLink, op, "refreshing desktop database: %w", err)
	}

	return nil
}
