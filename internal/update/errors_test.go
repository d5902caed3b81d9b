package update

import (
	"errors"
	"fmt"
	"testing"
)

func TestIsKind(t *testing.T) {
	base := errf(KindDownload, "download artifact", "stream interrupted")
	wrapped := fmt.Errorf("download failed: %w", base)

	if !IsKind(base, KindDownload) {
		t.Error("IsKind should match the error's own kind")
	}
	if !IsKind(wrapped, KindDownload) {
		t.Error("IsKind should see through fmt.Errorf wrapping")
	}
	if IsKind(wrapped, KindInstall) {
		t.Error("IsKind must not match a different kind")
	}
	if IsKind(errors.New("plain"), KindDownload) {
		t.Error("IsKind must not match unclassified errors")
	}
}

func TestErrorMessage(t *testing.T) {
	err := errf(KindProtocol, "resolve latest release", "downloadUrl missing from response")
	want := "resolve latest release: downloadUrl missing from response"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("connection refused")
	err := &Error{Kind: KindNetwork, Op: "resolve latest release", Err: inner}

	if !errors.Is(err, inner) {
		t.Error("Unwrap should expose the inner error")
	}
}

func TestKindString(t *testing.T) {
	kinds := map[Kind]string{
		KindNetwork:    "network",
		KindProtocol:   "protocol",
		KindBackup:     "backup",
		KindDownload:   "download",
		KindExtraction: "extraction",
		KindInstall:    "install",
		KindLink:       "link",
	}
	for kind, want := range kinds {
		if kind.String() != want {
			t.Errorf("Kind(%d).String() = %q, want %q", kind, kind.String(), want)
		}
	}
}
