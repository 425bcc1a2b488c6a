package blob

import (
	"context"
	"fmt"
	"os"

	"pgmanager/internal/infra/blob/fs"
	"pgmanager/internal/infra/blob/memory"
	infraS3 "pgmanager/internal/infra/blob/s3"
)

// Open selects a blob.Store implementation using environment variables.
//
//	PGMANAGER_BLOB_DRIVER: fs|s3|memory (default fs)
//	PGMANAGER_BLOB_FS_ROOT: directory root when driver=fs (default ./backups)
//	(S3 specific variables documented in internal/infra/blob/s3)
func Open(ctx context.Context) (Store, error) {
	driver := os.Getenv("PGMANAGER_BLOB_DRIVER")
	if driver == "" {
		driver = string(DriverFilesystem)
	}
	switch Driver(driver) {
	case DriverFilesystem:
		return NewFilesystem(os.Getenv("PGMANAGER_BLOB_FS_ROOT"))
	case DriverS3:
		st, err := infraS3.OpenFromEnv(ctx)
		if err != nil {
			return nil, err
		}
		return st, nil
	case DriverMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %s", driver)
	}
}

// NewFilesystem constructs a filesystem-backed blob.Store rooted at the provided path.
func NewFilesystem(root string) (Store, error) {
	st, err := fs.New(root)
	if err != nil {
		return nil, err
	}
	return st, nil
}

// NewMemory returns an in-memory blob.Store.
func NewMemory() Store { return memory.New() }

// NewS3 constructs an S3-backed blob.Store from explicit configuration.
func NewS3(ctx context.Context, cfg infraS3.Config) (Store, error) {
	st, err := infraS3.New(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return st, nil
}
