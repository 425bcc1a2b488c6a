// Package backup exports the floor tree and receipt ledger as a single JSON
// document, imports such documents back with per-record validation, archives
// them to a blob store, and performs the confirmed full reset.
package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"pgmanager/internal/blob"
	"pgmanager/internal/core"
	"pgmanager/pkg/domain"
)

const (
	// AppName is stamped into every exported document.
	AppName = "Hari PG Manager"
	// ResetToken must be typed exactly to confirm a reset.
	ResetToken = "DELETE"
	// ArchivePrefix is the blob key prefix for archived backups.
	ArchivePrefix = "backups/"
)

var (
	// ErrInvalidBackup is returned when an import source is not a JSON object.
	ErrInvalidBackup = errors.New("invalid backup file")
	// ErrResetNotConfirmed is returned when the reset token does not match.
	ErrResetNotConfirmed = errors.New("reset not confirmed")
	// ErrArchiveUnavailable is returned by archive operations when no blob store is configured.
	ErrArchiveUnavailable = errors.New("backup archive not configured")
)

// Document is the backup file layout.
type Document struct {
	Floors     []domain.Floor   `json:"floors"`
	Receipts   []domain.Receipt `json:"receipts"`
	ExportDate string           `json:"exportDate"`
	AppName    string           `json:"appName"`
}

// Gateway moves state between the core store and backup documents.
type Gateway struct {
	store   *core.Store
	archive blob.Store
	now     func() time.Time
	logger  logrus.FieldLogger
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithArchive enables Archive, ListArchives and Restore against store.
func WithArchive(store blob.Store) Option {
	return func(g *Gateway) { g.archive = store }
}

// WithClock overrides the export timestamp source.
func WithClock(now func() time.Time) Option {
	return func(g *Gateway) {
		if now != nil {
			g.now = now
		}
	}
}

// WithLogger sets the gateway logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(g *Gateway) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// New returns a gateway over store.
func New(store *core.Store, opts ...Option) *Gateway {
	l := logrus.New()
	l.SetOutput(io.Discard)
	g := &Gateway{store: store, now: time.Now, logger: l}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Export snapshots both collections.
func (g *Gateway) Export(_ context.Context) (Document, error) {
	return Document{
		Floors:     g.store.Floors(),
		Receipts:   g.store.Receipts(),
		ExportDate: g.now().UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		AppName:    AppName,
	}, nil
}

// WriteTo encodes doc as JSON indented by two spaces.
func WriteTo(w io.Writer, doc Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode backup: %w", err)
	}
	return nil
}

// FileName is the date-stamped download name for a backup taken at t.
func FileName(t time.Time) string {
	return "hari_pg_backup_" + t.UTC().Format(domain.DateLayout) + ".json"
}

// BackupName is FileName for the gateway's current time.
func (g *Gateway) BackupName() string {
	return FileName(g.now())
}

// Reset clears all data when token equals ResetToken.
func (g *Gateway) Reset(ctx context.Context, token string) error {
	if token != ResetToken {
		return ErrResetNotConfirmed
	}
	if err := g.store.Clear(ctx); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	g.logger.Info("all data reset")
	return nil
}

// Archive exports the current state to ArchivePrefix + FileName, replacing a
// backup taken earlier the same day.
func (g *Gateway) Archive(ctx context.Context) (blob.Info, error) {
	if g.archive == nil {
		return blob.Info{}, ErrArchiveUnavailable
	}
	doc, err := g.Export(ctx)
	if err != nil {
		return blob.Info{}, err
	}
	var buf bytes.Buffer
	if err := WriteTo(&buf, doc); err != nil {
		return blob.Info{}, err
	}
	key := ArchivePrefix + g.BackupName()
	info, err := g.archive.Put(ctx, key, &buf, blob.PutOptions{
		ContentType: "application/json",
		Metadata:    map[string]string{"app": AppName, "export-date": doc.ExportDate},
		Overwrite:   true,
	})
	if err != nil {
		return blob.Info{}, fmt.Errorf("archive %s: %w", key, err)
	}
	if info.URL == "" {
		url, err := g.archive.PresignURL(ctx, key, blob.SignedURLOptions{Expiry: time.Hour})
		switch {
		case err == nil:
			info.URL = url
		case !errors.Is(err, blob.ErrUnsupported):
			g.logger.WithError(err).WithField("key", key).Warn("presign failed")
		}
	}
	g.logger.WithFields(logrus.Fields{
		"key":      key,
		"driver":   string(g.archive.Driver()),
		"floors":   len(doc.Floors),
		"receipts": len(doc.Receipts),
	}).Info("backup archived")
	return info, nil
}

// ListArchives returns archived backups sorted by key, so oldest first.
func (g *Gateway) ListArchives(ctx context.Context) ([]blob.Info, error) {
	if g.archive == nil {
		return nil, ErrArchiveUnavailable
	}
	return g.archive.List(ctx, ArchivePrefix)
}

// Restore imports the archived backup at key.
func (g *Gateway) Restore(ctx context.Context, key string) (ImportReport, error) {
	if g.archive == nil {
		return ImportReport{}, ErrArchiveUnavailable
	}
	_, rc, err := g.archive.Get(ctx, key)
	if err != nil {
		return ImportReport{}, fmt.Errorf("restore %s: %w", key, err)
	}
	defer func() { _ = rc.Close() }()
	return g.Import(ctx, rc)
}
