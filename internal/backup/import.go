package backup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"pgmanager/pkg/domain"
)

// KeyStatus is the outcome of importing one top-level key.
type KeyStatus string

const (
	// KeyAbsent means the key was missing or null; the collection is unchanged.
	KeyAbsent KeyStatus = "absent"
	// KeyNotArray means the key held something other than an array; the collection is unchanged.
	KeyNotArray KeyStatus = "not_array"
	// KeyRejected means at least one record failed validation; the collection is unchanged.
	KeyRejected KeyStatus = "rejected"
	// KeyReplaced means the collection was replaced and committed.
	KeyReplaced KeyStatus = "replaced"
)

// RecordIssue explains why the record at Index was rejected.
type RecordIssue struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// KeyReport describes the import of one top-level key.
type KeyReport struct {
	Key     string        `json:"key"`
	Status  KeyStatus     `json:"status"`
	Records int           `json:"records"`
	Issues  []RecordIssue `json:"issues,omitempty"`
}

// ImportReport covers both collections.
type ImportReport struct {
	Floors   KeyReport `json:"floors"`
	Receipts KeyReport `json:"receipts"`
}

// Applied reports whether any collection was replaced.
func (r ImportReport) Applied() bool {
	return r.Floors.Status == KeyReplaced || r.Receipts.Status == KeyReplaced
}

// Import reads a backup document from r. Each of floors and receipts is handled
// on its own: a key is applied only when it is an array whose every record
// passes validation. Invalid JSON leaves all state untouched.
func (g *Gateway) Import(ctx context.Context, r io.Reader) (ImportReport, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return ImportReport{}, fmt.Errorf("read backup: %w", err)
	}
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return ImportReport{}, fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	report := ImportReport{}
	floors, floorsReport := decodeKey(top, "floors", decodeFloor)
	report.Floors = floorsReport
	receipts, receiptsReport := decodeKey(top, "receipts", decodeReceipt)
	report.Receipts = receiptsReport

	if report.Floors.Status == KeyReplaced {
		if err := g.store.CommitFloors(ctx, floors); err != nil {
			return report, fmt.Errorf("import floors: %w", err)
		}
	}
	if report.Receipts.Status == KeyReplaced {
		if err := g.store.CommitReceipts(ctx, receipts); err != nil {
			return report, fmt.Errorf("import receipts: %w", err)
		}
	}
	for _, kr := range []KeyReport{report.Floors, report.Receipts} {
		entry := g.logger.WithFields(logrus.Fields{"key": kr.Key, "status": string(kr.Status), "records": kr.Records})
		if len(kr.Issues) > 0 {
			entry.WithField("issues", len(kr.Issues)).Warn("backup key rejected")
		} else {
			entry.Info("backup key imported")
		}
	}
	return report, nil
}

func decodeFloor(raw json.RawMessage) (domain.Floor, string, error) {
	var f domain.Floor
	if err := json.Unmarshal(raw, &f); err != nil {
		return domain.Floor{}, "", err
	}
	if err := domain.ValidateFloor(f); err != nil {
		return domain.Floor{}, "", err
	}
	return domain.CloneFloor(f), f.ID, nil
}

func decodeReceipt(raw json.RawMessage) (domain.Receipt, string, error) {
	var rec domain.Receipt
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Receipt{}, "", err
	}
	if err := domain.ValidateReceipt(rec); err != nil {
		return domain.Receipt{}, "", err
	}
	return rec, rec.ID, nil
}

// decodeKey validates every record under key. It returns the decoded records
// only when the key is an array and all of them are valid.
func decodeKey[T any](top map[string]json.RawMessage, key string, decode func(json.RawMessage) (T, string, error)) ([]T, KeyReport) {
	report := KeyReport{Key: key, Status: KeyAbsent}
	raw, ok := top[key]
	trimmed := bytes.TrimSpace(raw)
	if !ok || bytes.Equal(trimmed, []byte("null")) {
		return nil, report
	}
	if len(trimmed) == 0 || trimmed[0] != '[' {
		report.Status = KeyNotArray
		return nil, report
	}
	var items []json.RawMessage
	if err := json.Unmarshal(trimmed, &items); err != nil {
		report.Status = KeyNotArray
		return nil, report
	}
	report.Records = len(items)
	out := make([]T, 0, len(items))
	seen := make(map[string]int, len(items))
	for i, item := range items {
		rec, id, err := decode(item)
		if err != nil {
			report.Issues = append(report.Issues, RecordIssue{Index: i, Reason: err.Error()})
			continue
		}
		if first, dup := seen[id]; dup {
			report.Issues = append(report.Issues, RecordIssue{Index: i, Reason: fmt.Sprintf("duplicate id %q (first at index %d)", id, first)})
			continue
		}
		seen[id] = i
		out = append(out, rec)
	}
	if len(report.Issues) > 0 {
		report.Status = KeyRejected
		return nil, report
	}
	report.Status = KeyReplaced
	return out, report
}
