package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // register pgx as a database/sql driver
	_ "modernc.org/sqlite"             // pure go sqlite driver
)

const (
	defaultSQLitePath  = "captures.db"
	defaultPostgresDSN = "postgres://localhost/cubeview?sslmode=disable"
)

// Catalog serves captures stored in a SQL table:
//
//	captures(name TEXT PRIMARY KEY, payload <blob>, updated_ns BIGINT)
type Catalog struct {
	db     *sql.DB
	driver Driver
}

// NewSQLiteCatalog opens (creating if needed) a SQLite capture catalog.
func NewSQLiteCatalog(ctx context.Context, path string) (*Catalog, error) {
	if path == "" {
		path = defaultSQLitePath
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	return newCatalog(ctx, db, DriverSQLite)
}

// NewPostgresCatalog opens a Postgres capture catalog using dsn.
func NewPostgresCatalog(ctx context.Context, dsn string) (*Catalog, error) {
	if dsn == "" {
		dsn = defaultPostgresDSN
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return newCatalog(ctx, db, DriverPostgres)
}

func newCatalog(ctx context.Context, db *sql.DB, d Driver) (*Catalog, error) {
	blob := "BLOB"
	if d == DriverPostgres {
		blob = "BYTEA"
	}
	ddl := `CREATE TABLE IF NOT EXISTS captures (
		name TEXT PRIMARY KEY,
		payload ` + blob + ` NOT NULL,
		updated_ns BIGINT NOT NULL
	)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create captures table: %w", err)
	}
	return &Catalog{db: db, driver: d}, nil
}

func (c *Catalog) Driver() Driver { return c.driver }

// DB exposes the underlying sql.DB for tooling and tests.
func (c *Catalog) DB() *sql.DB { return c.db }

func (c *Catalog) Close() error { return c.db.Close() }

// ph returns the n-th (1-based) bind placeholder of the catalog's dialect.
func (c *Catalog) ph(n int) string {
	if c.driver == DriverPostgres {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// Put stores payload under name, replacing an existing capture.
func (c *Catalog) Put(ctx context.Context, name string, payload []byte) error {
	q := fmt.Sprintf(`INSERT INTO captures (name, payload, updated_ns) VALUES (%s, %s, %s)
		ON CONFLICT (name) DO UPDATE SET payload = excluded.payload, updated_ns = excluded.updated_ns`,
		c.ph(1), c.ph(2), c.ph(3))
	if _, err := c.db.ExecContext(ctx, q, name, payload, time.Now().UnixNano()); err != nil {
		return fmt.Errorf("store capture %s: %w", name, err)
	}
	return nil
}

func (c *Catalog) Fetch(ctx context.Context, key string) ([]byte, error) {
	var payload []byte
	err := c.db.QueryRowContext(ctx, `SELECT payload FROM captures WHERE name = `+c.ph(1), key).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%s: %w", key, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select capture %s: %w", key, err)
	}
	return payload, nil
}

func (c *Catalog) List(ctx context.Context, prefix string) ([]Info, error) {
	rows, err := c.db.QueryContext(ctx, `SELECT name, length(payload), updated_ns FROM captures`)
	if err != nil {
		return nil, fmt.Errorf("select captures: %w", err)
	}
	defer func() { _ = rows.Close() }()
	var infos []Info
	for rows.Next() {
		var in Info
		var ns int64
		if err := rows.Scan(&in.Key, &in.Size, &ns); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		in.LastModified = time.Unix(0, ns).UTC()
		if prefix == "" || strings.HasPrefix(in.Key, prefix) {
			infos = append(infos, in)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}
