// Package desktop reads installed bundle metadata and refreshes the user's
// desktop-integration database.
package desktop

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/cursortools/cursorup/internal/priv"
)

// versionKey is the marker the bundle's .desktop file carries for the
// installed AppImage version.
const versionKey = "X-AppImage-Version"

// InstalledVersion reads the installed version from the bundle's .desktop
// file. A missing file, a missing version entry, or an unreadable file all
// return "", which the caller treats as "not installed" and proceeds as a
// fresh install.
func InstalledVersion(desktopPath string) string {
	data, err := os.ReadFile(desktopPath)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Warnf("could not read desktop file %s: %v", desktopPath, err)
		}
		return ""
	}

	for _, line := range strings.Split(string(data), "\n") {
		if strings.HasPrefix(line, versionKey+"=") {
			return strings.TrimSpace(strings.SplitN(line, "=", 2)[1])
		}
	}
	return ""
}

// ApplicationsDir returns the current user's desktop applications directory.
func ApplicationsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".local/share/applications")
}

// RefreshDatabase reindexes the user's desktop applications directory if it
// exists. Runs unprivileged; the directory belongs to the invoking user.
func RefreshDatabase(runner priv.CommandRunner) error {
	dir := ApplicationsDir()
	if dir == "" {
		return nil
	}
	if _, err := os.Stat(dir); err != nil {
		return nil
	}

	log.Info("Updating desktop database")
	output, err := runner.Run("update-desktop-database", dir)
	if err != nil {
		return fmt.Errorf("update-desktop-database failed: %w\noutput: %s", err, strings.TrimSpace(string(output)))
	}
	return nil
}
