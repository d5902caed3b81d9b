package backup

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cursortools/cursorup/internal/priv"
)

// fsRunner executes the privileged filesystem commands directly, without
// sudo, so tests can observe real filesystem effects.
type fsRunner struct {
	failures map[string]error
}

func (r *fsRunner) Run(name string, args ...string) ([]byte, error) {
	if name != "sudo" || len(args) == 0 {
		return nil, fmt.Errorf("unexpected command: %s", name)
	}

	key := args[0]
	if err, ok := r.failures[key]; ok {
		return nil, err
	}

	switch key {
	case "-v":
		return nil, nil
	case "mkdir":
		return nil, os.MkdirAll(args[len(args)-1], 0755)
	case "cp":
		return nil, copyTree(args[2], args[3])
	case "rm":
		return nil, os.RemoveAll(args[len(args)-1])
	default:
		return nil, fmt.Errorf("unexpected sudo command: %v", args)
	}
}

func (r *fsRunner) RunIn(dir, name string, args ...string) ([]byte, error) {
	return r.Run(name, args...)
}

// copyTree is a plain recursive copy used in place of cp -R.
func copyTree(src, dst string) error {
	return filepath.Walk(src, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if info.IsDir() {
			return os.MkdirAll(target, info.Mode())
		}
		in, err := os.Open(path)
		if err != nil {
			return err
		}
		defer in.Close()
		out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode())
		if err != nil {
			return err
		}
		defer out.Close()
		_, err = io.Copy(out, in)
		return err
	})
}

func newTestManager(t *testing.T, failures map[string]error) (*Manager, string) {
	t.Helper()
	root := filepath.Join(t.TempDir(), "backups")
	sudo := priv.NewSudoWithRunner(&fsRunner{failures: failures})
	m := NewManager(root, "cursor", sudo)
	m.now = func() time.Time {
		return time.Date(2025, 1, 2, 15, 4, 5, 0, time.Local)
	}
	return m, root
}

func writeSampleInstall(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "cursor")
	if err := os.MkdirAll(filepath.Join(dir, "usr/share/cursor"), 0755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		"AppRun":                  "#!/bin/sh\nexec cursor\n",
		"cursor.desktop":          "X-AppImage-Version=0.42.0\n",
		"usr/share/cursor/binary": "binary contents",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestCreateCopiesTreeByteIdentical(t *testing.T) {
	m, root := newTestManager(t, nil)
	source := writeSampleInstall(t)

	dest, err := m.Create(source)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	want := filepath.Join(root, "cursor_20250102_150405")
	if dest != want {
		t.Errorf("Create() dest = %q, want %q", dest, want)
	}

	// cp -R with a nonexistent dest creates dest as a copy of source.
	for _, rel := range []string{"AppRun", "cursor.desktop", "usr/share/cursor/binary"} {
		original, err := os.ReadFile(filepath.Join(source, rel))
		if err != nil {
			t.Fatal(err)
		}
		copied, err := os.ReadFile(filepath.Join(dest, rel))
		if err != nil {
			t.Fatalf("backup missing %s: %v", rel, err)
		}
		if string(copied) != string(original) {
			t.Errorf("backup of %s differs from original", rel)
		}
	}
}

func TestCreateMissingSourceSucceedsTrivially(t *testing.T) {
	m, root := newTestManager(t, nil)

	dest, err := m.Create(filepath.Join(t.TempDir(), "absent"))
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if dest != "" {
		t.Errorf("Create() dest = %q, want empty", dest)
	}
	if _, err := os.Stat(root); !os.IsNotExist(err) {
		t.Error("backup root should not be created when there is nothing to back up")
	}
}

func TestCreateCopyFailure(t *testing.T) {
	m, _ := newTestManager(t, map[string]error{"cp": fmt.Errorf("disk full")})
	source := writeSampleInstall(t)

	if _, err := m.Create(source); err == nil {
		t.Fatal("expected error when copy fails")
	}
}

func TestListSortedNewestFirst(t *testing.T) {
	m, root := newTestManager(t, nil)
	for _, id := range []string{"cursor_20240101_000000", "cursor_20250101_000000", "cursor_20230101_000000"} {
		if err := os.MkdirAll(filepath.Join(root, id), 0755); err != nil {
			t.Fatal(err)
		}
	}
	// Noise that must be ignored.
	if err := os.MkdirAll(filepath.Join(root, "other_20250101_000000"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "cursor_notatimestamp"), nil, 0644); err != nil {
		t.Fatal(err)
	}

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	want := []string{"cursor_20250101_000000", "cursor_20240101_000000", "cursor_20230101_000000"}
	if len(backups) != len(want) {
		t.Fatalf("List() returned %d backups, want %d", len(backups), len(want))
	}
	for i, id := range want {
		if backups[i].ID != id {
			t.Errorf("backups[%d].ID = %q, want %q", i, backups[i].ID, id)
		}
	}
}

func TestListMissingRoot(t *testing.T) {
	m, _ := newTestManager(t, nil)

	backups, err := m.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("List() returned %d backups, want 0", len(backups))
	}
}

func TestDelete(t *testing.T) {
	m, root := newTestManager(t, nil)
	id := "cursor_20250101_000000"
	if err := os.MkdirAll(filepath.Join(root, id), 0755); err != nil {
		t.Fatal(err)
	}

	if err := m.Delete(id); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, id)); !os.IsNotExist(err) {
		t.Error("backup directory still exists after Delete")
	}
}

func TestDeleteRejectsForeignID(t *testing.T) {
	m, _ := newTestManager(t, nil)

	if err := m.Delete("somethingelse_20250101_000000"); err == nil {
		t.Fatal("expected error for id with wrong prefix")
	}
	if err := m.Delete("cursor_19990101_000000"); err == nil {
		t.Fatal("expected error for missing backup")
	}
}
