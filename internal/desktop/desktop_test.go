package desktop

import (
	"os"
	"path/filepath"
	"testing"
)

func writeDesktopFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cursor.desktop")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestInstalledVersion(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name: "version present",
			content: `[Desktop Entry]
Name=Cursor
Exec=/opt/cursor/AppRun
X-AppImage-Version=0.42.0
`,
			want: "0.42.0",
		},
		{
			name: "version with surrounding whitespace",
			content: `X-AppImage-Version= 0.42.3
`,
			want: "0.42.3",
		},
		{
			name: "version key missing",
			content: `[Desktop Entry]
Name=Cursor
`,
			want: "",
		},
		{
			name:    "empty file",
			content: "",
			want:    "",
		},
		{
			name: "prefix of key does not match",
			content: `X-AppImage-Version-Extra=9.9.9
X-AppImage-Version=1.2.3
`,
			want: "1.2.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeDesktopFile(t, tt.content)
			if got := InstalledVersion(path); got != tt.want {
				t.Errorf("InstalledVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInstalledVersionMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "does-not-exist.desktop")
	if got := InstalledVersion(path); got != "" {
		t.Errorf("InstalledVersion() = %q, want empty for missing file", got)
	}
}
