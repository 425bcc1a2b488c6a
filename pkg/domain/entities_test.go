package domain

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestCloneFloorsIsDeep(t *testing.T) {
	orig := []Floor{validFloor()}
	cp := CloneFloors(orig)
	cp[0].FloorNumber = "changed"
	cp[0].Rooms[0].RoomNumber = "999"
	cp[0].Rooms[0].Residents[0].Name = "changed"
	require.Equal(t, validFloor(), orig[0])

	encoded, err := json.Marshal(CloneFloors(nil))
	require.NoError(t, err)
	require.JSONEq(t, `[]`, string(encoded))

	encoded, err = json.Marshal(CloneFloor(Floor{ID: "f1", FloorNumber: "G"}))
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"f1","floorNumber":"G","rooms":[]}`, string(encoded))
}

func TestCloneReceipts(t *testing.T) {
	orig := []Receipt{{ID: "c1", Amount: 10}}
	cp := CloneReceipts(orig)
	cp[0].Amount = 20
	require.Equal(t, float64(10), orig[0].Amount)
	require.NotNil(t, CloneReceipts(nil))
}

func TestIDGenerators(t *testing.T) {
	next := SequentialIDs("id")
	require.Equal(t, "id-1", next())
	require.Equal(t, "id-2", next())

	a, b := NewUUID(), NewUUID()
	require.NotEqual(t, a, b)
	parsed, err := uuid.Parse(a)
	require.NoError(t, err)
	require.Equal(t, uuid.Version(4), parsed.Version())
}
