package core

import (
	"strings"

	"pgmanager/pkg/domain"
)

// CreateReceipt validates draft and prepends it, so the newest receipt is first.
func CreateReceipt(receipts []domain.Receipt, id string, draft domain.ReceiptDraft) ([]domain.Receipt, error) {
	rec, err := draft.Validate()
	if err != nil {
		return nil, err
	}
	rec.ID = id
	next := make([]domain.Receipt, 0, len(receipts)+1)
	next = append(next, rec)
	return append(next, receipts...), nil
}

// UpdateReceipt replaces the record matching id, keeping its id and position.
func UpdateReceipt(receipts []domain.Receipt, id string, draft domain.ReceiptDraft) ([]domain.Receipt, error) {
	rec, err := draft.Validate()
	if err != nil {
		return nil, err
	}
	i := receiptIndex(receipts, id)
	if i < 0 {
		return nil, domain.ErrNotFound{Entity: domain.EntityReceipt, ID: id}
	}
	rec.ID = id
	next := domain.CloneReceipts(receipts)
	next[i] = rec
	return next, nil
}

// DeleteReceipt removes the record matching id.
func DeleteReceipt(receipts []domain.Receipt, id string) ([]domain.Receipt, error) {
	i := receiptIndex(receipts, id)
	if i < 0 {
		return nil, domain.ErrNotFound{Entity: domain.EntityReceipt, ID: id}
	}
	next := make([]domain.Receipt, 0, len(receipts)-1)
	next = append(next, receipts[:i]...)
	return append(next, receipts[i+1:]...), nil
}

// FindReceipt returns the record matching id.
func FindReceipt(receipts []domain.Receipt, id string) (domain.Receipt, error) {
	i := receiptIndex(receipts, id)
	if i < 0 {
		return domain.Receipt{}, domain.ErrNotFound{Entity: domain.EntityReceipt, ID: id}
	}
	return receipts[i], nil
}

// SearchReceipts returns, in ledger order, the receipts whose resident name or
// room number contains query, ignoring case. An empty query matches everything.
func SearchReceipts(receipts []domain.Receipt, query string) []domain.Receipt {
	if query == "" {
		return domain.CloneReceipts(receipts)
	}
	q := strings.ToLower(query)
	out := []domain.Receipt{}
	for _, r := range receipts {
		if strings.Contains(strings.ToLower(r.ResidentName), q) || strings.Contains(strings.ToLower(r.RoomNumber), q) {
			out = append(out, r)
		}
	}
	return out
}

func receiptIndex(receipts []domain.Receipt, id string) int {
	for i, r := range receipts {
		if r.ID == id {
			return i
		}
	}
	return -1
}
