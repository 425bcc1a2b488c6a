package memory

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"pgmanager/internal/blob/core"
)

func TestStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New()
	if _, err := s.Put(ctx, "backups/b.json", strings.NewReader("{}"), core.PutOptions{Metadata: map[string]string{"floors": "1"}}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if _, err := s.Put(ctx, "backups/b.json", strings.NewReader("{}"), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Fatalf("expected exists error, got %v", err)
	}
	if _, err := s.Put(ctx, "backups/b.json", strings.NewReader(`{"v":2}`), core.PutOptions{Overwrite: true}); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	info, rc, err := s.Get(ctx, "backups/b.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	b, _ := io.ReadAll(rc)
	if string(b) != `{"v":2}` || info.Metadata != nil {
		t.Fatalf("unexpected content %s %+v", b, info)
	}
	if _, err := s.Put(ctx, "other/c.json", strings.NewReader("x"), core.PutOptions{}); err != nil {
		t.Fatalf("put other: %v", err)
	}
	list, _ := s.List(ctx, "backups/")
	if len(list) != 1 {
		t.Fatalf("expected prefix filter, got %+v", list)
	}
	if _, err := s.PresignURL(ctx, "backups/b.json", core.SignedURLOptions{}); !errors.Is(err, core.ErrUnsupported) {
		t.Fatalf("expected unsupported presign")
	}
	if ok, _ := s.Delete(ctx, "backups/b.json"); !ok {
		t.Fatalf("expected delete true")
	}
	if _, err := s.Head(ctx, "backups/b.json"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
