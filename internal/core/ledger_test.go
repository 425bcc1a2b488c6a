package core

import (
	"testing"

	"github.com/stretchr/testify/require"

	"pgmanager/pkg/domain"
)

func receiptDraft(name, room string) domain.ReceiptDraft {
	return domain.ReceiptDraft{ResidentName: name, RoomNumber: room, MobileNumber: "9999", Amount: "5000", Date: "2024-01-01"}
}

func sampleLedger(t *testing.T) []domain.Receipt {
	t.Helper()
	var receipts []domain.Receipt
	var err error
	for i, d := range []domain.ReceiptDraft{receiptDraft("Asha", "101"), receiptDraft("Ravi", "201"), receiptDraft("Meera", "A-101")} {
		receipts, err = CreateReceipt(receipts, []string{"c1", "c2", "c3"}[i], d)
		require.NoError(t, err)
	}
	return receipts
}

func TestCreateReceiptPrepends(t *testing.T) {
	receipts := sampleLedger(t)
	next, err := CreateReceipt(receipts, "c4", receiptDraft("Asha", "101"))
	require.NoError(t, err)
	require.Len(t, next, len(receipts)+1)
	require.Equal(t, "c4", next[0].ID)
	require.Equal(t, 5000.0, next[0].Amount)
	require.Equal(t, receipts, next[1:])
}

func TestCreateReceiptValidates(t *testing.T) {
	d := receiptDraft("Asha", "101")
	d.MobileNumber = ""
	d.Date = "01/01/2024"
	next, err := CreateReceipt(nil, "c1", d)
	require.Nil(t, next)
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.True(t, verrs.Has("mobileNumber"))
	require.True(t, verrs.Has("date"))
}

func TestCreateReceiptAllowsZeroAndNegativeAmounts(t *testing.T) {
	d := receiptDraft("Asha", "101")
	d.Amount = "-250"
	next, err := CreateReceipt(nil, "c1", d)
	require.NoError(t, err)
	require.Equal(t, -250.0, next[0].Amount)
}

func TestUpdateReceiptKeepsPosition(t *testing.T) {
	receipts := sampleLedger(t)
	d := receiptDraft("Ravi Kumar", "202")
	d.Notes = "March"
	next, err := UpdateReceipt(receipts, "c2", d)
	require.NoError(t, err)
	require.Equal(t, domain.Receipt{ID: "c2", ResidentName: "Ravi Kumar", RoomNumber: "202", MobileNumber: "9999", Amount: 5000, Date: "2024-01-01", Notes: "March"}, next[1])
	require.Equal(t, "Ravi", receipts[1].ResidentName)

	_, err = UpdateReceipt(receipts, "missing", d)
	require.Equal(t, domain.ErrNotFound{Entity: domain.EntityReceipt, ID: "missing"}, err)
}

func TestDeleteReceipt(t *testing.T) {
	receipts := sampleLedger(t)
	next, err := DeleteReceipt(receipts, "c2")
	require.NoError(t, err)
	require.Equal(t, []string{"c3", "c1"}, []string{next[0].ID, next[1].ID})
	require.Len(t, receipts, 3)

	_, err = DeleteReceipt(next, "c2")
	require.Equal(t, domain.ErrNotFound{Entity: domain.EntityReceipt, ID: "c2"}, err)
}

func TestSearchReceipts(t *testing.T) {
	receipts := sampleLedger(t)

	require.Equal(t, receipts, SearchReceipts(receipts, ""))

	byName := SearchReceipts(receipts, "ASHA")
	require.Len(t, byName, 1)
	require.Equal(t, "c1", byName[0].ID)

	byRoom := SearchReceipts(receipts, "101")
	require.Equal(t, []string{"c3", "c1"}, []string{byRoom[0].ID, byRoom[1].ID})
	require.Equal(t, byRoom, SearchReceipts(receipts, "101"))

	require.Empty(t, SearchReceipts(receipts, "zzz"))
	require.Len(t, receipts, 3)
}

func TestFindReceipt(t *testing.T) {
	receipts := sampleLedger(t)
	r, err := FindReceipt(receipts, "c3")
	require.NoError(t, err)
	require.Equal(t, "Meera", r.ResidentName)
	_, err = FindReceipt(receipts, "nope")
	require.Error(t, err)
}
