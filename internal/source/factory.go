package source

import (
	"context"
	"fmt"
	"os"
)

// Open selects a Source implementation using environment variables.
//
//	CUBEVIEW_SOURCE_DRIVER: fs|memory|s3|sqlite|postgres (default fs)
//	CUBEVIEW_SOURCE_FS_ROOT: directory root when driver=fs (default .)
//	CUBEVIEW_SOURCE_SQLITE_PATH: database file when driver=sqlite (default captures.db)
//	CUBEVIEW_SOURCE_POSTGRES_DSN: connection string when driver=postgres
//	(S3 specific variables documented in s3.go)
func Open(ctx context.Context) (Source, error) {
	driver := os.Getenv("CUBEVIEW_SOURCE_DRIVER")
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	var (
		src Source
		err error
	)
	switch Driver(driver) {
	case DriverFilesystem:
		src, err = NewFilesystem(os.Getenv("CUBEVIEW_SOURCE_FS_ROOT"))
	case DriverMemory:
		src = NewMemory()
	case DriverS3:
		src, err = OpenS3FromEnv(ctx)
	case DriverSQLite:
		src, err = NewSQLiteCatalog(ctx, os.Getenv("CUBEVIEW_SOURCE_SQLITE_PATH"))
	case DriverPostgres:
		src, err = NewPostgresCatalog(ctx, os.Getenv("CUBEVIEW_SOURCE_POSTGRES_DSN"))
	default:
		return nil, fmt.Errorf("unknown source driver %s", driver)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s source: %w", driver, err)
	}
	return src, nil
}
