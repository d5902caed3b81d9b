package update

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"

	log "github.com/sirupsen/logrus"
)

// Fetcher downloads release artifacts to temporary files.
type Fetcher struct {
	client   *http.Client
	progress io.Writer
}

// NewFetcher creates a fetcher that writes progress to the given writer.
// The download itself carries no overall timeout; cancellation comes from
// the caller's context.
func NewFetcher(progress io.Writer) *Fetcher {
	return &Fetcher{
		client:   &http.Client{},
		progress: progress,
	}
}

// Fetch streams the artifact at url into a uniquely named temporary file and
// marks it executable. The caller owns the returned path and must remove it
// on every exit path. On failure the partial temporary file is removed here
// and an empty path is returned.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	const op = "download artifact"

	log.Infof("Downloading from %s", url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errf(KindDownload, op, "building request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", errf(KindDownload, op, "request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errf(KindDownload, op, "server returned status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp("", "cursorup-*.AppImage")
	if err != nil {
		return "", errf(KindDownload, op, "creating temporary file: %w", err)
	}

	counter := &progressWriter{
		out:   f.progress,
		total: resp.ContentLength,
	}

	_, copyErr := io.Copy(io.MultiWriter(tmp, counter), resp.Body)
	counter.finish()
	closeErr := tmp.Close()

	if copyErr != nil {
		os.Remove(tmp.Name())
		return "", errf(KindDownload, op, "stream interrupted: %w", copyErr)
	}
	if closeErr != nil {
		os.Remove(tmp.Name())
		return "", errf(KindDownload, op, "closing temporary file: %w", closeErr)
	}

	if err := markExecutable(tmp.Name()); err != nil {
		os.Remove(tmp.Name())
		return "", errf(KindDownload, op, "marking artifact executable: %w", err)
	}

	return tmp.Name(), nil
}

// markExecutable adds the owner-execute bit to the file's current mode.
func markExecutable(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.Chmod(path, info.Mode()|0o100)
}

// progressWriter reports received bytes against the declared content length.
// A zero or unknown content length disables percentage reporting but never
// fails the download.
type progressWriter struct {
	out      io.Writer
	total    int64
	received int64
	lastPct  int64
}

func (p *progressWriter) Write(b []byte) (int, error) {
	p.received += int64(len(b))
	if p.out == nil || p.total <= 0 {
		return len(b), nil
	}

	pct := p.received * 100 / p.total
	if pct != p.lastPct {
		p.lastPct = pct
		fmt.Fprintf(p.out, "\rDownload progress: %d%% [%d / %d bytes]", pct, p.received, p.total)
	}
	return len(b), nil
}

// finish terminates the progress line if any was printed.
func (p *progressWriter) finish() {
	if p.out != nil && p.total > 0 {
		fmt.Fprintln(p.out)
	}
}
