package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFloorAndRoomDraftsTrimAndRequire(t *testing.T) {
	label, err := FloorDraft{Label: "  Ground Floor "}.Validate()
	require.NoError(t, err)
	require.Equal(t, "Ground Floor", label)

	_, err = FloorDraft{Label: "   "}.Validate()
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.Equal(t, ValidationErrors{{Field: "floorNumber", Code: "validation_required", Message: "field 'floorNumber' is required"}}, verrs)

	number, err := RoomDraft{RoomNumber: " 101"}.Validate()
	require.NoError(t, err)
	require.Equal(t, "101", number)

	_, err = RoomDraft{}.Validate()
	require.ErrorAs(t, err, &verrs)
	require.True(t, verrs.Has("roomNumber"))
}

func TestResidentDraftRent(t *testing.T) {
	cases := []struct {
		name string
		rent string
		want float64
		code string
	}{
		{name: "empty means zero", rent: "", want: 0},
		{name: "whole", rent: "5000", want: 5000},
		{name: "fraction", rent: " 4500.50 ", want: 4500.5},
		{name: "text", rent: "abc", code: "validation_numeric"},
		{name: "negative", rent: "-5", code: "validation_gte"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res, err := ResidentDraft{Name: "Asha", Rent: tc.rent}.Validate()
			if tc.code == "" {
				require.NoError(t, err)
				require.Equal(t, tc.want, res.RentAmount)
				return
			}
			var verrs ValidationErrors
			require.ErrorAs(t, err, &verrs)
			require.Len(t, verrs, 1)
			require.Equal(t, "rent", verrs[0].Field)
			require.Equal(t, tc.code, verrs[0].Code)
		})
	}
}

func TestResidentDraftTrimsFields(t *testing.T) {
	res, err := ResidentDraft{Name: " Asha ", Mobile: " 98765 ", Notes: " veg  "}.Validate()
	require.NoError(t, err)
	require.Equal(t, Resident{Name: "Asha", Mobile: "98765", Notes: "veg"}, res)

	_, err = ResidentDraft{Name: " ", Rent: "x"}.Validate()
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.True(t, verrs.Has("name"))
	require.True(t, verrs.Has("rent"))
}

func TestReceiptDraftValidate(t *testing.T) {
	draft := ReceiptDraft{
		ResidentName: " Asha ",
		RoomNumber:   "101",
		MobileNumber: "9876543210",
		Amount:       "5000",
		Date:         "2024-03-05",
		Notes:        " March ",
	}
	rec, err := draft.Validate()
	require.NoError(t, err)
	require.Equal(t, Receipt{
		ResidentName: "Asha",
		RoomNumber:   "101",
		MobileNumber: "9876543210",
		Amount:       5000,
		Date:         "2024-03-05",
		Notes:        "March",
	}, rec)

	_, err = ReceiptDraft{}.Validate()
	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	for _, field := range []string{"residentName", "roomNumber", "mobileNumber", "amount", "date"} {
		require.True(t, verrs.Has(field), "expected error for %s", field)
	}

	draft.Date = "2024-13-01"
	draft.Amount = "five"
	_, err = draft.Validate()
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs, 2)
	require.Contains(t, err.Error(), "field 'amount' must be a number")
	require.Contains(t, err.Error(), "field 'date' must be a date in 2006-01-02 form")
}

func TestDraftsForEditing(t *testing.T) {
	now := time.Date(2024, 3, 5, 22, 0, 0, 0, time.UTC)
	require.Equal(t, ReceiptDraft{Amount: "0", Date: "2024-03-05"}, NewReceiptDraft(now))
	ist := time.FixedZone("IST", 5*3600+1800)
	require.Equal(t, "2024-03-05", NewReceiptDraft(time.Date(2024, 3, 6, 1, 0, 0, 0, ist)).Date)

	rec := Receipt{ID: "c1", ResidentName: "Asha", RoomNumber: "101", MobileNumber: "98", Amount: 5000.5, Date: "2024-03-05", Notes: "n"}
	draft := ReceiptDraftFor(rec)
	require.Equal(t, "5000.5", draft.Amount)
	back, err := draft.Validate()
	require.NoError(t, err)
	back.ID = rec.ID
	require.Equal(t, rec, back)

	require.Equal(t, ResidentDraft{Name: "Ravi", Mobile: "90"}, ResidentDraftFor(Resident{ID: "p1", Name: "Ravi", Mobile: "90"}))
	require.Equal(t, "6000", ResidentDraftFor(Resident{Name: "Asha", RentAmount: 6000}).Rent)
}
