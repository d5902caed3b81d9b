// Package backup snapshots the install directory before destructive updates.
//
// Backups are full timestamped copies of the install tree, stored as
// siblings under a dedicated backup root (e.g.
// /opt/cursor_backups/cursor_20250101_120000). The update pipeline only ever
// creates backups; pruning happens solely through explicit user commands.
package backup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/cursortools/cursorup/internal/priv"
)

// timestampLayout names backup directories, e.g. cursor_20250101_120000.
const timestampLayout = "20060102_150405"

// Entry describes one backup directory under the backup root.
type Entry struct {
	ID        string    `json:"id" yaml:"id"`
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	Path      string    `json:"path" yaml:"path"`
}

// Manager handles backup operations for one application.
type Manager struct {
	root    string
	appName string
	sudo    *priv.Sudo
	now     func() time.Time
}

// NewManager creates a backup manager rooted at root.
func NewManager(root, appName string, sudo *priv.Sudo) *Manager {
	return &Manager{
		root:    root,
		appName: appName,
		sudo:    sudo,
		now:     time.Now,
	}
}

// Sudo exposes the manager's privilege capability so callers can verify
// access before running destructive backup commands.
func (m *Manager) Sudo() *priv.Sudo {
	return m.sudo
}

// Create copies sourceDir into a new timestamped directory under the backup
// root and returns its path. A missing sourceDir succeeds trivially with an
// empty path: there is nothing to back up.
func (m *Manager) Create(sourceDir string) (string, error) {
	if _, err := os.Stat(sourceDir); err != nil {
		log.Info("No existing installation to backup")
		return "", nil
	}

	if _, err := os.Stat(m.root); err != nil {
		log.Infof("Creating backup directory: %s", m.root)
		if err := m.sudo.MkdirAll(m.root); err != nil {
			return "", fmt.Errorf("failed to create backup directory: %w", err)
		}
	}

	dest := filepath.Join(m.root, fmt.Sprintf("%s_%s", m.appName, m.now().Format(timestampLayout)))
	log.Infof("Backing up %s to %s", sourceDir, dest)
	if err := m.sudo.CopyTree(sourceDir, dest); err != nil {
		return "", fmt.Errorf("failed to copy installation: %w", err)
	}

	return dest, nil
}

// List returns all backups sorted by creation time (newest first). A missing
// backup root yields an empty list.
func (m *Manager) List() ([]Entry, error) {
	entries, err := os.ReadDir(m.root)
	if err != nil {
		if os.IsNotExist(err) {
			return []Entry{}, nil
		}
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	prefix := m.appName + "_"
	var backups []Entry
	for _, entry := range entries {
		if !entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}

		createdAt, err := time.ParseInLocation(timestampLayout, strings.TrimPrefix(entry.Name(), prefix), time.Local)
		if err != nil {
			continue
		}

		backups = append(backups, Entry{
			ID:        entry.Name(),
			CreatedAt: createdAt,
			Path:      filepath.Join(m.root, entry.Name()),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		return backups[i].CreatedAt.After(backups[j].CreatedAt)
	})

	return backups, nil
}

// Delete removes a backup by ID (the backup directory's name).
func (m *Manager) Delete(id string) error {
	if !strings.HasPrefix(id, m.appName+"_") {
		return fmt.Errorf("invalid backup id: %s", id)
	}

	path := filepath.Join(m.root, id)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("backup not found: %s", id)
	}

	if err := m.sudo.RemoveTree(path); err != nil {
		return fmt.Errorf("failed to delete backup: %w", err)
	}

	return nil
}
