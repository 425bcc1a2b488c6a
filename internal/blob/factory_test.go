package blob

import (
	"context"
	"testing"
)

func TestOpenSelectsDriver(t *testing.T) {
	ctx := context.Background()

	t.Setenv("PGMANAGER_BLOB_DRIVER", "memory")
	store, err := Open(ctx)
	if err != nil || store.Driver() != DriverMemory {
		t.Fatalf("memory driver: %v %v", store, err)
	}

	t.Setenv("PGMANAGER_BLOB_DRIVER", "")
	t.Setenv("PGMANAGER_BLOB_FS_ROOT", t.TempDir())
	store, err = Open(ctx)
	if err != nil || store.Driver() != DriverFilesystem {
		t.Fatalf("default fs driver: %v %v", store, err)
	}

	t.Setenv("PGMANAGER_BLOB_DRIVER", "s3")
	t.Setenv("PGMANAGER_BLOB_S3_BUCKET", "")
	if _, err := Open(ctx); err == nil {
		t.Fatalf("expected s3 driver to require a bucket")
	}

	t.Setenv("PGMANAGER_BLOB_DRIVER", "tape")
	if _, err := Open(ctx); err == nil {
		t.Fatalf("expected unknown driver error")
	}
}
