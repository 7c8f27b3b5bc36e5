package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrObjectNotFound is returned when the requested key does not exist in the bucket.
var ErrObjectNotFound = errors.New("object not found")

// Service reads objects from remote object storage.
type Service interface {
	Fetch(ctx context.Context, bucket, key string) ([]byte, error)
}

// Location is a parsed s3://bucket/prefix reference.
type Location struct {
	Bucket string
	Prefix string
}

// IsLocation reports whether raw uses the s3:// scheme.
func IsLocation(raw string) bool {
	return strings.HasPrefix(raw, "s3://")
}

// ParseLocation splits an s3://bucket[/prefix] reference. The prefix has no surrounding slashes.
func ParseLocation(raw string) (Location, error) {
	if !IsLocation(raw) {
		return Location{}, fmt.Errorf("invalid s3 location %q", raw)
	}
	rest := strings.TrimPrefix(raw, "s3://")
	parts := strings.SplitN(rest, "/", 2)
	if parts[0] == "" {
		return Location{}, fmt.Errorf("invalid s3 location %q: bucket missing", raw)
	}

	loc := Location{Bucket: parts[0]}
	if len(parts) == 2 {
		loc.Prefix = strings.Trim(parts[1], "/")
	}
	return loc, nil
}

// Key joins the location prefix and name into an object key.
func (l Location) Key(name string) string {
	if l.Prefix == "" {
		return name
	}
	return l.Prefix + "/" + name
}
