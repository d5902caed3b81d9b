package backup

import (
	"os"
	"path/filepath"
	"testing"
)

func seedBackups(t *testing.T, root string, ids []string) {
	t.Helper()
	for _, id := range ids {
		if err := os.MkdirAll(filepath.Join(root, id), 0755); err != nil {
			t.Fatal(err)
		}
	}
}

func TestPruneKeepsNewest(t *testing.T) {
	m, root := newTestManager(t, nil)
	seedBackups(t, root, []string{
		"cursor_20230101_000000",
		"cursor_20240101_000000",
		"cursor_20250101_000000",
		"cursor_20250601_000000",
	})

	result, err := m.Prune(2)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}

	if result.Kept != 2 {
		t.Errorf("Kept = %d, want 2", result.Kept)
	}
	if len(result.Deleted) != 2 {
		t.Fatalf("Deleted %d backups, want 2", len(result.Deleted))
	}

	// The two oldest must be gone, the two newest must remain.
	for _, id := range []string{"cursor_20230101_000000", "cursor_20240101_000000"} {
		if _, err := os.Stat(filepath.Join(root, id)); !os.IsNotExist(err) {
			t.Errorf("backup %s should have been pruned", id)
		}
	}
	for _, id := range []string{"cursor_20250101_000000", "cursor_20250601_000000"} {
		if _, err := os.Stat(filepath.Join(root, id)); err != nil {
			t.Errorf("backup %s should have been kept: %v", id, err)
		}
	}
}

func TestPruneNothingToDo(t *testing.T) {
	m, root := newTestManager(t, nil)
	seedBackups(t, root, []string{"cursor_20250101_000000"})

	result, err := m.Prune(5)
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if result.Kept != 1 || len(result.Deleted) != 0 {
		t.Errorf("Prune() = kept %d deleted %d, want kept 1 deleted 0", result.Kept, len(result.Deleted))
	}
}

func TestPruneNegativeKeep(t *testing.T) {
	m, _ := newTestManager(t, nil)

	if _, err := m.Prune(-1); err == nil {
		t.Fatal("expected error for negative keep count")
	}
}
