package core

import "pgmanager/pkg/domain"

// Stats summarizes the floor tree for the dashboard header.
type Stats struct {
	Floors    int `json:"totalFloors"`
	Rooms     int `json:"totalRooms"`
	Residents int `json:"totalResidents"`
}

// ComputeStats counts floors, rooms and residents.
func ComputeStats(floors []domain.Floor) Stats {
	st := Stats{Floors: len(floors)}
	for _, f := range floors {
		st.Rooms += len(f.Rooms)
		for _, r := range f.Rooms {
			st.Residents += len(r.Residents)
		}
	}
	return st
}
