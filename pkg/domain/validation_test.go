package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func validFloor() Floor {
	return Floor{
		ID:          "f1",
		FloorNumber: "Ground",
		Rooms: []Room{{
			ID:         "r1",
			RoomNumber: "101",
			Residents:  []Resident{{ID: "p1", Name: "Asha", RentAmount: 5000}},
		}},
	}
}

func TestValidateFloor(t *testing.T) {
	require.NoError(t, ValidateFloor(validFloor()))
	require.NoError(t, ValidateFloor(Floor{ID: "f2", FloorNumber: "First", Rooms: []Room{}}))

	var verrs ValidationErrors
	require.ErrorAs(t, ValidateFloor(Floor{ID: "f3", FloorNumber: "Second"}), &verrs)
	require.True(t, verrs.Has("rooms"))

	bad := validFloor()
	bad.Rooms[0].Residents[0].Name = ""
	bad.Rooms[0].Residents[0].RentAmount = -1
	require.ErrorAs(t, ValidateFloor(bad), &verrs)
	require.True(t, verrs.Has("rooms[0].residents[0].name"))
	require.True(t, verrs.Has("rooms[0].residents[0].rentAmount"))
	require.Contains(t, verrs.Error(), "field 'rooms[0].residents[0].rentAmount' must be at least 0")
}

func TestValidateFloorRejectsDuplicateSiblingIDs(t *testing.T) {
	f := validFloor()
	f.Rooms[0].Residents = append(f.Rooms[0].Residents, Resident{ID: "p1", Name: "Ravi"})
	f.Rooms = append(f.Rooms, Room{ID: "r1", RoomNumber: "102", Residents: []Resident{{ID: "p1", Name: "Meena"}}})

	var verrs ValidationErrors
	require.ErrorAs(t, ValidateFloor(f), &verrs)
	require.Len(t, verrs, 2)
	require.Equal(t, FieldError{
		Field:   "rooms[0].residents[1].id",
		Code:    "validation_unique",
		Message: `field 'rooms[0].residents[1].id' repeats id "p1" of rooms[0].residents[0]`,
	}, verrs[0])
	require.Equal(t, "rooms[1].id", verrs[1].Field)

	// The same id under different parents is allowed.
	other := validFloor()
	other.Rooms = append(other.Rooms, Room{ID: "r2", RoomNumber: "102", Residents: []Resident{{ID: "p1", Name: "Meena"}}})
	require.NoError(t, ValidateFloor(other))
}

func TestValidateReceipt(t *testing.T) {
	rec := Receipt{ID: "c1", ResidentName: "Asha", RoomNumber: "101", MobileNumber: "98", Amount: 100, Date: "2024-03-05"}
	require.NoError(t, ValidateReceipt(rec))

	rec.Date = "05/03/2024"
	rec.ID = ""
	var verrs ValidationErrors
	require.ErrorAs(t, ValidateReceipt(rec), &verrs)
	require.True(t, verrs.Has("id"))
	require.True(t, verrs.Has("date"))
}

func TestValidationErrorsMessage(t *testing.T) {
	require.Equal(t, "validation failed", ValidationErrors{}.Error())
	verrs := ValidationErrors{{Field: "a", Message: "first"}, {Field: "b", Message: "second"}}
	require.Equal(t, "validation failed: first; second", verrs.Error())
	require.False(t, verrs.Has("c"))
	require.Equal(t, "receipt c9 not found", ErrNotFound{Entity: EntityReceipt, ID: "c9"}.Error())
}
