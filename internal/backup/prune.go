package backup

import (
	"fmt"
)

// DefaultKeepCount is the default number of backups to retain when pruning.
const DefaultKeepCount = 5

// PruneResult contains information about what was pruned.
type PruneResult struct {
	Deleted []Entry
	Kept    int
}

// Prune removes old backups, keeping only the most recent N. Prune is only
// ever invoked by an explicit user command, never by the update pipeline.
func (m *Manager) Prune(keep int) (*PruneResult, error) {
	if keep < 0 {
		return nil, fmt.Errorf("keep count must be non-negative")
	}

	backups, err := m.List()
	if err != nil {
		return nil, err
	}

	result := &PruneResult{}

	// Backups are already sorted newest first
	if len(backups) <= keep {
		result.Kept = len(backups)
		return result, nil
	}

	toDelete := backups[keep:]
	result.Kept = keep

	for _, entry := range toDelete {
		if err := m.Delete(entry.ID); err != nil {
			return nil, fmt.Errorf("failed to delete backup %s: %w", entry.ID, err)
		}
		result.Deleted = append(result.Deleted, entry)
	}

	return result, nil
}
