package update

import (
	"errors"
	"fmt"
)

// Kind classifies a pipeline failure so the orchestrator can tell fatal
// failures from recoverable ones without string matching.
type Kind int

const (
	// KindNetwork is a transport-level failure reaching the release endpoint.
	KindNetwork Kind = iota
	// KindProtocol is a malformed or incomplete release endpoint response.
	KindProtocol
	// KindBackup is a failed backup; recoverable via user confirmation.
	KindBackup
	// KindDownload is a failed or interrupted artifact download.
	KindDownload
	// KindExtraction is a failed bundle self-extraction.
	KindExtraction
	// KindInstall is a failed install-directory swap; the system may be left
	// without an active install.
	KindInstall
	// KindLink is a failed symlink or desktop-database refresh; a warning.
	KindLink
)

func (k Kind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindProtocol:
		return "protocol"
	case KindBackup:
		return "backup"
	case KindDownload:
		return "download"
	case KindExtraction:
		return "extraction"
	case KindInstall:
		return "install"
	case KindLink:
		return "link"
	default:
		return "unknown"
	}
}

// Error is a classified pipeline failure.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s error", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// errf builds a classified error with a formatted message.
func errf(kind Kind, op, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Op: op, Err: fmt.Errorf(format, args...)}
}

// IsKind reports whether err is (or wraps) a pipeline Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == kind
}
