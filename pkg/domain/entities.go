// Package domain defines the persistent entities, drafts, and error values
// shared by pgmanager's store, ledger, and backup layers.
package domain

// EntityType identifies the type of record held by the store.
type EntityType string

// Supported entity type identifiers used in errors and log fields.
const (
	// EntityFloor identifies a floor record.
	EntityFloor EntityType = "floor"
	// EntityRoom identifies a room nested under a floor.
	EntityRoom EntityType = "room"
	// EntityResident identifies a resident nested under a room.
	EntityResident EntityType = "resident"
	// EntityReceipt identifies a payment receipt.
	EntityReceipt EntityType = "receipt"
)

// DateLayout is the ISO calendar date layout used for receipt dates.
const DateLayout = "2006-01-02"

// Resident is a person occupying a room.
type Resident struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Mobile     string  `json:"mobile"`
	RentAmount float64 `json:"rentAmount"`
	Notes      string  `json:"notes,omitempty"`
}

// Room is a unit within a floor. Residents keep insertion order.
type Room struct {
	ID         string     `json:"id"`
	RoomNumber string     `json:"roomNumber"`
	Residents  []Resident `json:"residents"`
}

// Floor is the top-level organizational unit. Rooms keep insertion order.
type Floor struct {
	ID          string `json:"id"`
	FloorNumber string `json:"floorNumber"`
	Rooms       []Room `json:"rooms"`
}

// Receipt records a payment event. ResidentName and RoomNumber are snapshots
// taken at issue time and carry no reference to the floor tree.
type Receipt struct {
	ID           string  `json:"id"`
	ResidentName string  `json:"residentName"`
	RoomNumber   string  `json:"roomNumber"`
	MobileNumber string  `json:"mobileNumber"`
	Amount       float64 `json:"amount"`
	Date         string  `json:"date"`
	Notes        string  `json:"notes,omitempty"`
}

// CloneFloors returns a deep copy of floors, including nested rooms and residents.
// A nil input yields an empty, non-nil slice so encoded collections are always arrays.
func CloneFloors(floors []Floor) []Floor {
	out := make([]Floor, len(floors))
	for i, f := range floors {
		out[i] = CloneFloor(f)
	}
	return out
}

// CloneFloor deep copies a single floor.
func CloneFloor(f Floor) Floor {
	cp := f
	cp.Rooms = make([]Room, len(f.Rooms))
	for i, r := range f.Rooms {
		cp.Rooms[i] = CloneRoom(r)
	}
	return cp
}

// CloneRoom deep copies a single room.
func CloneRoom(r Room) Room {
	cp := r
	cp.Residents = make([]Resident, len(r.Residents))
	copy(cp.Residents, r.Residents)
	return cp
}

// CloneReceipts returns a copy of receipts. Receipts hold only value fields.
func CloneReceipts(receipts []Receipt) []Receipt {
	out := make([]Receipt, len(receipts))
	copy(out, receipts)
	return out
}
