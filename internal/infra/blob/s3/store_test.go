package s3

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"pgmanager/internal/blob/core"
)

func TestS3StoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMockForTests()
	if store.Driver() != core.DriverS3 {
		t.Fatalf("unexpected driver %s", store.Driver())
	}
	info, err := store.Put(ctx, "backups/a.json", strings.NewReader(`{"floors":[]}`), core.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"app": "pgmanager"},
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Size != int64(len(`{"floors":[]}`)) || info.ContentType != "application/json" {
		t.Fatalf("unexpected info %+v", info)
	}
	if info.ETag == "" {
		t.Fatalf("expected etag")
	}
	if info.Metadata["app"] != "pgmanager" {
		t.Fatalf("expected metadata round trip, got %+v", info.Metadata)
	}

	_, rc, err := store.Get(ctx, "backups/a.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != `{"floors":[]}` {
		t.Fatalf("unexpected body %q", body)
	}

	if _, err := store.Put(ctx, "backups/a.json", bytes.NewReader([]byte("x")), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected ErrExists, got %v", err)
	}
	if _, err := store.Put(ctx, "backups/a.json", bytes.NewReader([]byte("xy")), core.PutOptions{Overwrite: true}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	head, err := store.Head(ctx, "backups/a.json")
	if err != nil || head.Size != 2 {
		t.Fatalf("expected overwritten size 2, got %+v err=%v", head, err)
	}

	deleted, err := store.Delete(ctx, "backups/a.json")
	if err != nil || !deleted {
		t.Fatalf("delete: deleted=%v err=%v", deleted, err)
	}
	deleted, err = store.Delete(ctx, "backups/a.json")
	if err != nil || deleted {
		t.Fatalf("second delete should report missing: deleted=%v err=%v", deleted, err)
	}
}

func TestS3StoreNotFound(t *testing.T) {
	ctx := context.Background()
	store := NewMockForTests()
	if _, err := store.Head(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("head: expected ErrNotFound, got %v", err)
	}
	if _, _, err := store.Get(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("get: expected ErrNotFound, got %v", err)
	}
}

func TestS3StoreListPaginates(t *testing.T) {
	ctx := context.Background()
	store := NewMockForTests()
	for _, k := range []string{"backups/c.json", "backups/a.json", "other/x.json", "backups/b.json"} {
		if _, err := store.Put(ctx, k, strings.NewReader(k), core.PutOptions{}); err != nil {
			t.Fatalf("put %s: %v", k, err)
		}
	}
	infos, err := store.List(ctx, "backups/")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var keys []string
	for _, info := range infos {
		keys = append(keys, info.Key)
	}
	if strings.Join(keys, ",") != "backups/a.json,backups/b.json,backups/c.json" {
		t.Fatalf("unexpected keys %v", keys)
	}
}

func TestS3PresignURL(t *testing.T) {
	ctx := context.Background()
	store := NewMockForTests()
	url, err := store.PresignURL(ctx, "backups/a.json", core.SignedURLOptions{})
	if err != nil {
		t.Fatalf("presign: %v", err)
	}
	if !strings.Contains(url, "backups/a.json") || !strings.Contains(url, "X-Amz-Signature") {
		t.Fatalf("unexpected url %s", url)
	}
	if _, err := store.PresignURL(ctx, "k", core.SignedURLOptions{Method: "PUT"}); !errors.Is(err, core.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got %v", err)
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatalf("expected bucket error")
	}
	t.Setenv("PGMANAGER_BLOB_S3_BUCKET", "")
	if _, err := OpenFromEnv(context.Background()); err == nil {
		t.Fatalf("expected env bucket error")
	}
}
