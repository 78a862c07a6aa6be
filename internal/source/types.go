// Package source delivers the raw bytes of capture files by key from a local
// directory, memory, an S3-compatible bucket or a SQL capture catalog.
package source

import (
	"context"
	"errors"
	"path"
	"strings"
	"time"
)

// Driver identifies a concrete capture source implementation.
type Driver string

const (
	DriverFilesystem Driver = "fs"       // local directory (default)
	DriverMemory     Driver = "memory"   // in-memory (tests)
	DriverS3         Driver = "s3"       // S3 / MinIO compatible
	DriverSQLite     Driver = "sqlite"   // captures table in a SQLite file
	DriverPostgres   Driver = "postgres" // captures table in Postgres
)

// Info describes one stored capture.
type Info struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size_bytes"`
	LastModified time.Time `json:"last_modified"`
}

// Source is a read side over stored capture files.
type Source interface {
	Fetch(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]Info, error)
	Driver() Driver
}

// ErrNotFound is returned by Fetch for unknown keys.
var ErrNotFound = errors.New("capture not found")

// captureExts are the file types the viewer can ingest.
var captureExts = map[string]struct{}{".json": {}, ".h": {}, ".c": {}, ".txt": {}}

// IsCapture reports whether key names a file the viewer can ingest.
func IsCapture(key string) bool {
	_, ok := captureExts[strings.ToLower(path.Ext(key))]
	return ok
}
