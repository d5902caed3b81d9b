package update

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

// UnknownVersion is the sentinel used when no version can be derived from a
// release's download URL. The pipeline continues and lets the comparator
// degrade gracefully.
const UnknownVersion = "Unknown"

// userAgent identifies this tool to the release endpoint.
const userAgent = "Cursor-Version-Checker"

var versionPattern = regexp.MustCompile(`\b(\d+\.\d+\.\d+)\b`)

// Release describes the latest remote build for a platform. Resolved once
// per run and immutable for the run's duration.
type Release struct {
	DownloadURL string
	Version     string
}

// Resolver queries the remote release endpoint for the latest build.
type Resolver struct {
	endpoint string
	client   *http.Client
}

// NewResolver creates a resolver against the given endpoint with a bounded
// request timeout.
func NewResolver(endpoint string, timeout time.Duration) *Resolver {
	return &Resolver{
		endpoint: endpoint,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// releaseResponse is the endpoint's JSON body. Only downloadUrl is consumed;
// the endpoint is not guaranteed to return a version field.
type releaseResponse struct {
	DownloadURL string `json:"downloadUrl"`
}

// Resolve asks the endpoint for the latest release on the given platform.
// The release's version is derived from the download URL, not trusted from
// the response body.
func (r *Resolver) Resolve(ctx context.Context, platform string) (*Release, error) {
	const op = "resolve latest release"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.endpoint, nil)
	if err != nil {
		return nil, errf(KindNetwork, op, "building request: %w", err)
	}

	q := url.Values{}
	q.Set("platform", platform)
	q.Set("releaseTrack", "latest")
	req.URL.RawQuery = q.Encode()

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, errf(KindNetwork, op, "request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errf(KindNetwork, op, "endpoint returned status %d", resp.StatusCode)
	}

	var body releaseResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errf(KindProtocol, op, "failed to decode response: %w", err)
	}

	if body.DownloadURL == "" {
		return nil, errf(KindProtocol, op, "downloadUrl missing from response")
	}

	return &Release{
		DownloadURL: body.DownloadURL,
		Version:     ExtractVersion(body.DownloadURL),
	}, nil
}

// ExtractVersion pulls the first dotted numeric triple (e.g. 0.43.1) out of
// a download URL. Returns UnknownVersion if none is found.
func ExtractVersion(downloadURL string) string {
	if m := versionPattern.FindStringSubmatch(downloadURL); m != nil {
		return m[1]
	}
	return UnknownVersion
}
