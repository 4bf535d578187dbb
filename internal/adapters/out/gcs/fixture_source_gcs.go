// internal/adapters/out/gcs/fixture_source_gcs.go
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
)

// ErrFixtureNotFound is returned when the object does not exist.
var ErrFixtureNotFound = errors.New("gcs: fixture object not found")

// maxFixtureBytes caps a single fixture download.
const maxFixtureBytes = 64 << 20

// FixtureSourceGCS reads fixture JSON from Cloud Storage.
type FixtureSourceGCS struct {
	Client *storage.Client
}

func NewFixtureSourceGCS(client *storage.Client) *FixtureSourceGCS {
	return &FixtureSourceGCS{Client: client}
}

// Read downloads the object named by uri (gs://bucket/object or a storage.googleapis.com URL).
func (s *FixtureSourceGCS) Read(ctx context.Context, uri string) ([]byte, error) {
	if s == nil || s.Client == nil {
		return nil, errors.New("gcs: storage client is nil")
	}
	bucket, object, ok := ParseObjectURI(uri)
	if !ok {
		return nil, fmt.Errorf("gcs: invalid object uri %q", uri)
	}

	r, err := s.Client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrFixtureNotFound, uri)
		}
		return nil, fmt.Errorf("gcs: open %s: %w", uri, err)
	}
	defer r.Close()

	b, err := io.ReadAll(io.LimitReader(r, maxFixtureBytes))
	if err != nil {
		return nil, fmt.Errorf("gcs: read %s: %w", uri, err)
	}
	return b, nil
}

// IsObjectURI reports whether uri points at Cloud Storage.
func IsObjectURI(uri string) bool {
	_, _, ok := ParseObjectURI(uri)
	return ok
}

// ParseObjectURI returns (bucket, objectPath, ok) for
//   - gs://<bucket>/<object> (scheme is case-insensitive)
//   - http(s)://storage.googleapis.com/<bucket>/<object>
//   - http(s)://storage.cloud.google.com/<bucket>/<object>
func ParseObjectURI(uri string) (string, string, bool) {
	parsed, err := url.Parse(strings.TrimSpace(uri))
	if err != nil {
		return "", "", false
	}

	var p string
	switch strings.ToLower(parsed.Scheme) {
	case "gs":
		p = parsed.Host + "/" + strings.TrimLeft(parsed.EscapedPath(), "/")
	case "https", "http":
		host := strings.ToLower(parsed.Host)
		if host != "storage.googleapis.com" && host != "storage.cloud.google.com" {
			return "", "", false
		}
		p = strings.TrimLeft(parsed.EscapedPath(), "/")
	default:
		return "", "", false
	}

	bucket, rest, found := strings.Cut(p, "/")
	if !found || bucket == "" || rest == "" {
		return "", "", false
	}
	objectPath, err := url.PathUnescape(rest)
	if err != nil {
		return "", "", false
	}
	return bucket, objectPath, true
}
