package core

import (
	"context"
	"database/sql"
	"io"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"pgmanager/internal/infra/persistence/memory"
	"pgmanager/internal/infra/persistence/postgres"
	pgtestutil "pgmanager/internal/infra/persistence/postgres/testutil"
	"pgmanager/internal/infra/persistence/sqlite"
	"pgmanager/testutil"
)

func TestOpenSlotStoreDrivers(t *testing.T) {
	ctx := context.Background()

	t.Setenv("PGMANAGER_STORAGE_DRIVER", "memory")
	st, err := OpenSlotStore(ctx)
	require.NoError(t, err)
	require.IsType(t, &memory.Store{}, st)

	path := filepath.Join(t.TempDir(), "pg.db")
	t.Setenv("PGMANAGER_STORAGE_DRIVER", "")
	t.Setenv("PGMANAGER_SQLITE_PATH", path)
	st, err = OpenSlotStore(ctx)
	require.NoError(t, err)
	sq, ok := st.(*sqlite.Store)
	require.True(t, ok)
	require.Equal(t, path, sq.Path())
	require.NoError(t, st.(io.Closer).Close())

	db, _ := pgtestutil.NewStubDB()
	t.Cleanup(postgres.OverrideSQLOpen(func(_, _ string) (*sql.DB, error) { return db, nil }))
	t.Setenv("PGMANAGER_STORAGE_DRIVER", "postgres")
	st, err = OpenSlotStore(ctx)
	require.NoError(t, err)
	require.IsType(t, &postgres.Store{}, st)

	t.Setenv("PGMANAGER_STORAGE_DRIVER", "redis")
	_, err = OpenSlotStore(ctx)
	require.ErrorContains(t, err, "unknown storage driver redis")
}

func TestSQLiteBackedStoreSurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "restart.db")
	first, err := sqlite.NewStore(path)
	require.NoError(t, err)
	svc := NewService(NewStore(first, nil))
	_, err = svc.IssueReceipt(ctx, receiptDraft("Asha", "101"))
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := sqlite.NewStore(path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.Close() })
	store := NewStore(second, nil)
	store.Load(ctx)
	require.Len(t, store.Receipts(), 1)
	require.Equal(t, "Asha", store.Receipts()[0].ResidentName)
}

func TestCoreLayering(t *testing.T) {
	testutil.AssertNoDirectImports(t, ".", testutil.PresentationImportForbidden, "core must not depend on the gateway, renderer or CLI")
	testutil.AssertNoDirectImports(t, ".", testutil.BlobImportForbidden, "core persists to slots only")
}
