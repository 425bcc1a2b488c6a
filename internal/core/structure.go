package core

import "pgmanager/pkg/domain"

// The structure functions below never mutate their input. On success they return
// a fresh deep copy carrying the change; on failure they return a nil slice and
// either domain.ValidationErrors or domain.ErrNotFound.

// AddFloor appends a floor with no rooms.
func AddFloor(floors []domain.Floor, id string, draft domain.FloorDraft) ([]domain.Floor, error) {
	label, err := draft.Validate()
	if err != nil {
		return nil, err
	}
	next := domain.CloneFloors(floors)
	return append(next, domain.Floor{ID: id, FloorNumber: label, Rooms: []domain.Room{}}), nil
}

// AddRoom appends a room with no residents to the floor.
func AddRoom(floors []domain.Floor, floorID, id string, draft domain.RoomDraft) ([]domain.Floor, error) {
	number, err := draft.Validate()
	if err != nil {
		return nil, err
	}
	next := domain.CloneFloors(floors)
	fi := floorIndex(next, floorID)
	if fi < 0 {
		return nil, domain.ErrNotFound{Entity: domain.EntityFloor, ID: floorID}
	}
	next[fi].Rooms = append(next[fi].Rooms, domain.Room{ID: id, RoomNumber: number, Residents: []domain.Resident{}})
	return next, nil
}

// UpsertResident edits residentID in place when it is set, keeping its position
// and notes, or appends a new resident with id otherwise.
func UpsertResident(floors []domain.Floor, floorID, roomID, residentID, id string, draft domain.ResidentDraft) ([]domain.Floor, error) {
	res, err := draft.Validate()
	if err != nil {
		return nil, err
	}
	next := domain.CloneFloors(floors)
	fi, ri, err := locateRoom(next, floorID, roomID)
	if err != nil {
		return nil, err
	}
	room := &next[fi].Rooms[ri]
	if residentID == "" {
		res.ID = id
		room.Residents = append(room.Residents, res)
		return next, nil
	}
	pi := residentIndex(room.Residents, residentID)
	if pi < 0 {
		return nil, domain.ErrNotFound{Entity: domain.EntityResident, ID: residentID}
	}
	cur := &room.Residents[pi]
	cur.Name = res.Name
	cur.Mobile = res.Mobile
	cur.RentAmount = res.RentAmount
	return next, nil
}

// DeleteFloor removes the floor together with its rooms and residents.
func DeleteFloor(floors []domain.Floor, floorID string) ([]domain.Floor, error) {
	fi := floorIndex(floors, floorID)
	if fi < 0 {
		return nil, domain.ErrNotFound{Entity: domain.EntityFloor, ID: floorID}
	}
	next := make([]domain.Floor, 0, len(floors)-1)
	for i, f := range floors {
		if i != fi {
			next = append(next, domain.CloneFloor(f))
		}
	}
	return next, nil
}

// DeleteRoom removes the room and its residents from the floor.
func DeleteRoom(floors []domain.Floor, floorID, roomID string) ([]domain.Floor, error) {
	next := domain.CloneFloors(floors)
	fi, ri, err := locateRoom(next, floorID, roomID)
	if err != nil {
		return nil, err
	}
	rooms := next[fi].Rooms
	next[fi].Rooms = append(rooms[:ri:ri], rooms[ri+1:]...)
	return next, nil
}

// DeleteResident removes the resident from the room.
func DeleteResident(floors []domain.Floor, floorID, roomID, residentID string) ([]domain.Floor, error) {
	next := domain.CloneFloors(floors)
	fi, ri, err := locateRoom(next, floorID, roomID)
	if err != nil {
		return nil, err
	}
	room := &next[fi].Rooms[ri]
	pi := residentIndex(room.Residents, residentID)
	if pi < 0 {
		return nil, domain.ErrNotFound{Entity: domain.EntityResident, ID: residentID}
	}
	room.Residents = append(room.Residents[:pi:pi], room.Residents[pi+1:]...)
	return next, nil
}

// FindResident returns the resident at floorID/roomID/residentID.
func FindResident(floors []domain.Floor, floorID, roomID, residentID string) (domain.Resident, error) {
	fi, ri, err := locateRoom(floors, floorID, roomID)
	if err != nil {
		return domain.Resident{}, err
	}
	residents := floors[fi].Rooms[ri].Residents
	pi := residentIndex(residents, residentID)
	if pi < 0 {
		return domain.Resident{}, domain.ErrNotFound{Entity: domain.EntityResident, ID: residentID}
	}
	return residents[pi], nil
}

func locateRoom(floors []domain.Floor, floorID, roomID string) (int, int, error) {
	fi := floorIndex(floors, floorID)
	if fi < 0 {
		return -1, -1, domain.ErrNotFound{Entity: domain.EntityFloor, ID: floorID}
	}
	for ri, r := range floors[fi].Rooms {
		if r.ID == roomID {
			return fi, ri, nil
		}
	}
	return -1, -1, domain.ErrNotFound{Entity: domain.EntityRoom, ID: roomID}
}

func floorIndex(floors []domain.Floor, id string) int {
	for i, f := range floors {
		if f.ID == id {
			return i
		}
	}
	return -1
}

func residentIndex(residents []domain.Resident, id string) int {
	for i, r := range residents {
		if r.ID == id {
			return i
		}
	}
	return -1
}
