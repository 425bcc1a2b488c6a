package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"pgmanager/pkg/domain"
)

func TestAddFloorRoomResidentScenario(t *testing.T) {
	floors, err := AddFloor([]domain.Floor{}, "f1", domain.FloorDraft{Label: "Ground Floor"})
	require.NoError(t, err)
	floors, err = AddRoom(floors, "f1", "r1", domain.RoomDraft{RoomNumber: "101"})
	require.NoError(t, err)
	floors, err = UpsertResident(floors, "f1", "r1", "", "p1", domain.ResidentDraft{Name: "Asha", Mobile: "9999", Rent: "5000"})
	require.NoError(t, err)

	require.Len(t, floors, 1)
	require.Equal(t, "Ground Floor", floors[0].FloorNumber)
	require.Equal(t, "101", floors[0].Rooms[0].RoomNumber)
	require.Equal(t, domain.Resident{ID: "p1", Name: "Asha", Mobile: "9999", RentAmount: 5000}, floors[0].Rooms[0].Residents[0])
}

func TestAddFloorTrimsAndRejectsBlank(t *testing.T) {
	floors, err := AddFloor(nil, "f1", domain.FloorDraft{Label: "  Ground  "})
	require.NoError(t, err)
	require.Equal(t, "Ground", floors[0].FloorNumber)
	require.NotNil(t, floors[0].Rooms)

	next, err := AddFloor(floors, "f2", domain.FloorDraft{Label: "   "})
	require.Nil(t, next)
	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.True(t, verrs.Has("floorNumber"))
}

func TestAddRoomUnknownFloor(t *testing.T) {
	floors := sampleTree(t)
	next, err := AddRoom(floors, "missing", "r9", domain.RoomDraft{RoomNumber: "999"})
	require.Nil(t, next)
	require.Equal(t, domain.ErrNotFound{Entity: domain.EntityFloor, ID: "missing"}, err)

	_, err = AddRoom(floors, "f1", "r9", domain.RoomDraft{RoomNumber: ""})
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
}

func TestUpsertResidentEditPreservesPositionAndNotes(t *testing.T) {
	floors := sampleTree(t)
	floors, err := UpsertResident(floors, "f1", "r1", "", "p3", domain.ResidentDraft{Name: "Meera", Notes: "late payer"})
	require.NoError(t, err)
	floors, err = UpsertResident(floors, "f1", "r1", "", "p4", domain.ResidentDraft{Name: "Kiran"})
	require.NoError(t, err)

	edited, err := UpsertResident(floors, "f1", "r1", "p3", "ignored", domain.ResidentDraft{Name: "Meera K", Mobile: "8888", Rent: "6000"})
	require.NoError(t, err)

	residents := edited[0].Rooms[0].Residents
	require.Equal(t, []string{"p1", "p3", "p4"}, []string{residents[0].ID, residents[1].ID, residents[2].ID})
	require.Equal(t, domain.Resident{ID: "p3", Name: "Meera K", Mobile: "8888", RentAmount: 6000, Notes: "late payer"}, residents[1])
	require.Equal(t, "f1", edited[0].ID)
	require.Equal(t, "r1", edited[0].Rooms[0].ID)
	require.Equal(t, "f2", edited[1].ID)
}

func TestUpsertResidentFailures(t *testing.T) {
	floors := sampleTree(t)
	cases := []struct {
		name                        string
		floorID, roomID, residentID string
		draft                       domain.ResidentDraft
		want                        error
	}{
		{"unknown floor", "nope", "r1", "", domain.ResidentDraft{Name: "X"}, domain.ErrNotFound{Entity: domain.EntityFloor, ID: "nope"}},
		{"room on other floor", "f1", "r2", "", domain.ResidentDraft{Name: "X"}, domain.ErrNotFound{Entity: domain.EntityRoom, ID: "r2"}},
		{"unknown resident", "f1", "r1", "p2", domain.ResidentDraft{Name: "X"}, domain.ErrNotFound{Entity: domain.EntityResident, ID: "p2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			next, err := UpsertResident(floors, tc.floorID, tc.roomID, tc.residentID, "new", tc.draft)
			require.Nil(t, next)
			require.Equal(t, tc.want, err)
		})
	}

	_, err := UpsertResident(floors, "f1", "r1", "", "new", domain.ResidentDraft{Name: " ", Rent: "abc"})
	var verrs domain.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	require.True(t, verrs.Has("name"))
	require.True(t, verrs.Has("rent"))
}

func TestDeleteFloorCascades(t *testing.T) {
	floors := sampleTree(t)
	next, err := DeleteFloor(floors, "f1")
	require.NoError(t, err)
	require.Len(t, next, 1)
	require.Equal(t, "f2", next[0].ID)
	for _, f := range next {
		for _, r := range f.Rooms {
			require.NotEqual(t, "r1", r.ID)
			for _, p := range r.Residents {
				require.NotEqual(t, "p1", p.ID)
			}
		}
	}

	_, err = DeleteFloor(next, "f1")
	require.Equal(t, domain.ErrNotFound{Entity: domain.EntityFloor, ID: "f1"}, err)
}

func TestDeleteRoomAndResident(t *testing.T) {
	floors := sampleTree(t)
	floors, err := AddRoom(floors, "f1", "r3", domain.RoomDraft{RoomNumber: "102"})
	require.NoError(t, err)

	next, err := DeleteRoom(floors, "f1", "r1")
	require.NoError(t, err)
	require.Len(t, next[0].Rooms, 1)
	require.Equal(t, "r3", next[0].Rooms[0].ID)

	_, err = DeleteRoom(floors, "f2", "r1")
	require.Equal(t, domain.ErrNotFound{Entity: domain.EntityRoom, ID: "r1"}, err)

	next, err = DeleteResident(floors, "f1", "r1", "p1")
	require.NoError(t, err)
	require.Empty(t, next[0].Rooms[0].Residents)

	_, err = DeleteResident(next, "f1", "r1", "p1")
	require.Equal(t, domain.ErrNotFound{Entity: domain.EntityResident, ID: "p1"}, err)
}

func TestStructureFunctionsDoNotMutateInput(t *testing.T) {
	floors := sampleTree(t)
	before := domain.CloneFloors(floors)

	_, err := AddRoom(floors, "f1", "r3", domain.RoomDraft{RoomNumber: "102"})
	require.NoError(t, err)
	_, err = UpsertResident(floors, "f1", "r1", "p1", "", domain.ResidentDraft{Name: "Changed"})
	require.NoError(t, err)
	_, err = UpsertResident(floors, "f1", "r1", "", "p9", domain.ResidentDraft{Name: "New"})
	require.NoError(t, err)
	_, err = DeleteResident(floors, "f1", "r1", "p1")
	require.NoError(t, err)
	_, err = DeleteRoom(floors, "f2", "r2")
	require.NoError(t, err)
	_, err = DeleteFloor(floors, "f2")
	require.NoError(t, err)

	require.Equal(t, before, floors)
}

func TestAddDeleteSequenceKeepsSurvivors(t *testing.T) {
	var floors []domain.Floor
	ids := domain.SequentialIDs("f")
	var live []string
	for i := 0; i < 6; i++ {
		id := ids()
		var err error
		floors, err = AddFloor(floors, id, domain.FloorDraft{Label: id})
		require.NoError(t, err)
		floors, err = AddRoom(floors, id, id+"-room", domain.RoomDraft{RoomNumber: "1"})
		require.NoError(t, err)
		live = append(live, id)
		if i%2 == 1 {
			floors, err = DeleteFloor(floors, live[0])
			require.NoError(t, err)
			live = live[1:]
		}
	}
	got := make([]string, len(floors))
	for i, f := range floors {
		got[i] = f.ID
		require.Len(t, f.Rooms, 1)
		require.Equal(t, f.ID+"-room", f.Rooms[0].ID)
	}
	require.Equal(t, live, got)
}

func TestFindResident(t *testing.T) {
	floors := sampleTree(t)
	res, err := FindResident(floors, "f2", "r2", "p2")
	require.NoError(t, err)
	require.Equal(t, "Ravi", res.Name)
	_, err = FindResident(floors, "f2", "r2", "p1")
	require.Equal(t, domain.ErrNotFound{Entity: domain.EntityResident, ID: "p1"}, err)
}

func TestComputeStats(t *testing.T) {
	require.Equal(t, Stats{}, ComputeStats(nil))
	require.Equal(t, Stats{Floors: 2, Rooms: 2, Residents: 2}, ComputeStats(sampleTree(t)))
}
