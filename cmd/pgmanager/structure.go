package main

import (
	"context"
	"encoding/json"
	"strings"

	"pgmanager/internal/core"
	"pgmanager/internal/render"
	"pgmanager/pkg/domain"
)

var residentForm = []formField[domain.ResidentDraft]{
	{name: "name", usage: "resident name", set: func(d *domain.ResidentDraft, v string) { d.Name = v }},
	{name: "mobile", usage: "mobile number", set: func(d *domain.ResidentDraft, v string) { d.Mobile = v }},
	{name: "rent", usage: "monthly rent, empty for none", set: func(d *domain.ResidentDraft, v string) { d.Rent = v }},
	{name: "notes", usage: "free-form notes, new residents only", set: func(d *domain.ResidentDraft, v string) { d.Notes = v }},
}

func (a *app) floorAdd(ctx context.Context, args []string) error {
	fs := a.flags("floor add")
	rest, err := parseFlags(fs, args, -1)
	if err != nil {
		return err
	}
	floor, err := a.svc.AddFloor(ctx, domain.FloorDraft{Label: strings.Join(rest, " ")})
	if err != nil {
		return err
	}
	a.printf("Added floor %q [%s]\n", floor.FloorNumber, floor.ID)
	return nil
}

func (a *app) floorDelete(ctx context.Context, args []string) error {
	fs := a.flags("floor delete")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	rest, err := parseFlags(fs, args, 1)
	if err != nil {
		return err
	}
	if !*yes && !a.confirm("Delete floor "+rest[0]+" with all its rooms and residents?") {
		a.printf("Cancelled.\n")
		return nil
	}
	if err := a.svc.DeleteFloor(ctx, rest[0]); err != nil {
		return err
	}
	a.printf("Deleted floor [%s]\n", rest[0])
	return nil
}

func (a *app) roomAdd(ctx context.Context, args []string) error {
	fs := a.flags("room add")
	rest, err := parseFlags(fs, args, 2)
	if err != nil {
		return err
	}
	room, err := a.svc.AddRoom(ctx, rest[0], domain.RoomDraft{RoomNumber: rest[1]})
	if err != nil {
		return err
	}
	a.printf("Added room %q [%s]\n", room.RoomNumber, room.ID)
	return nil
}

func (a *app) roomDelete(ctx context.Context, args []string) error {
	fs := a.flags("room delete")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	rest, err := parseFlags(fs, args, 2)
	if err != nil {
		return err
	}
	if !*yes && !a.confirm("Delete room "+rest[1]+" with all its residents?") {
		a.printf("Cancelled.\n")
		return nil
	}
	if err := a.svc.DeleteRoom(ctx, rest[0], rest[1]); err != nil {
		return err
	}
	a.printf("Deleted room [%s]\n", rest[1])
	return nil
}

func (a *app) residentSave(ctx context.Context, args []string) error {
	fs := a.flags("resident save")
	floorID := fs.String("floor", "", "floor id")
	roomID := fs.String("room", "", "room id")
	residentID := fs.String("id", "", "resident id to edit; omit to add")
	defineForm(fs, residentForm)
	if _, err := parseFlags(fs, args, 0); err != nil {
		return err
	}
	if *floorID == "" || *roomID == "" {
		return usagef("resident save: -floor and -room are required")
	}
	if *residentID != "" && flagGiven(fs, "notes") {
		return usagef("resident save: -notes is only accepted when adding; an edit keeps the stored notes")
	}
	var draft domain.ResidentDraft
	if *residentID != "" {
		existing, err := a.svc.Resident(*floorID, *roomID, *residentID)
		if err != nil {
			return err
		}
		draft = domain.ResidentDraftFor(existing)
	}
	applyForm(fs, residentForm, &draft)
	res, err := a.svc.SaveResident(ctx, *floorID, *roomID, *residentID, draft)
	if err != nil {
		return err
	}
	a.printf("Saved resident %q [%s]\n", res.Name, res.ID)
	return nil
}

func (a *app) residentDelete(ctx context.Context, args []string) error {
	fs := a.flags("resident delete")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	rest, err := parseFlags(fs, args, 3)
	if err != nil {
		return err
	}
	if !*yes && !a.confirm("Delete resident "+rest[2]+"?") {
		a.printf("Cancelled.\n")
		return nil
	}
	if err := a.svc.DeleteResident(ctx, rest[0], rest[1], rest[2]); err != nil {
		return err
	}
	a.printf("Deleted resident [%s]\n", rest[2])
	return nil
}

func (a *app) tree(args []string) error {
	fs := a.flags("tree")
	expand := fs.String("expand", "", "comma-separated floor ids to expand")
	all := fs.Bool("all", false, "expand every floor")
	if _, err := parseFlags(fs, args, 0); err != nil {
		return err
	}
	floors := a.svc.Floors()
	view := core.NewExpandedFloors()
	for _, id := range strings.Split(*expand, ",") {
		if id = strings.TrimSpace(id); id != "" {
			view.Expand(id)
		}
	}
	if *all {
		for _, f := range floors {
			view.Expand(f.ID)
		}
	}
	view.Prune(floors)
	return render.Dashboard(a.stdout, floors, view)
}

func (a *app) stats(args []string) error {
	fs := a.flags("stats")
	asJSON := fs.Bool("json", false, "print as JSON")
	if _, err := parseFlags(fs, args, 0); err != nil {
		return err
	}
	st := a.svc.Stats()
	if *asJSON {
		enc := json.NewEncoder(a.stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}
	a.printf("Floors:    %d\nRooms:     %d\nResidents: %d\n", st.Floors, st.Rooms, st.Residents)
	return nil
}
