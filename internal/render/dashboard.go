package render

import (
	"fmt"
	"io"

	"pgmanager/internal/core"
	"pgmanager/pkg/domain"
)

// Dashboard writes the totals line followed by the floor tree. Rooms and
// residents are listed only for floors that view reports as expanded.
func Dashboard(w io.Writer, floors []domain.Floor, view *core.ExpandedFloors) error {
	st := core.ComputeStats(floors)
	if _, err := fmt.Fprintf(w, "Floors: %d  Rooms: %d  Residents: %d\n", st.Floors, st.Rooms, st.Residents); err != nil {
		return err
	}
	if len(floors) == 0 {
		_, err := io.WriteString(w, "No floors added yet.\n")
		return err
	}
	for _, f := range floors {
		expanded := view != nil && view.IsExpanded(f.ID)
		marker := "+"
		if expanded {
			marker = "-"
		}
		if _, err := fmt.Fprintf(w, "%s %s (%d rooms) [%s]\n", marker, f.FloorNumber, len(f.Rooms), f.ID); err != nil {
			return err
		}
		if !expanded {
			continue
		}
		for _, r := range f.Rooms {
			if _, err := fmt.Fprintf(w, "    Room %s (%d residents) [%s]\n", r.RoomNumber, len(r.Residents), r.ID); err != nil {
				return err
			}
			for _, p := range r.Residents {
				line := fmt.Sprintf("        %s", p.Name)
				if p.Mobile != "" {
					line += "  " + p.Mobile
				}
				line += "  " + Amount(p.RentAmount) + "/month"
				if _, err := fmt.Fprintf(w, "%s [%s]\n", line, p.ID); err != nil {
					return err
				}
			}
		}
	}
	return nil
}
