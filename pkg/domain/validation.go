package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Report fields by their wire names so errors line up with backup files and form inputs.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// validateStruct runs the shared validator and converts failures into ValidationErrors.
func validateStruct(s any) ValidationErrors {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return ValidationErrors{{Field: "", Code: "validation_invalid", Message: err.Error()}}
	}
	return formatValidationErrors(verrs)
}

func formatValidationErrors(errs validator.ValidationErrors) ValidationErrors {
	out := make(ValidationErrors, 0, len(errs))
	for _, err := range errs {
		field := fieldPath(err.Namespace())
		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("field '%s' is required", field)
		case "numeric":
			message = fmt.Sprintf("field '%s' must be a number", field)
		case "gte":
			message = fmt.Sprintf("field '%s' must be at least %s", field, err.Param())
		case "datetime":
			message = fmt.Sprintf("field '%s' must be a date in %s form", field, err.Param())
		default:
			message = fmt.Sprintf("field validation for '%s' failed on the '%s' tag", field, err.Tag())
		}
		out = append(out, FieldError{Field: field, Code: "validation_" + err.Tag(), Message: message})
	}
	return out
}

// fieldPath drops the top-level struct name from a validator namespace, e.g.
// "Floor.rooms[0].residents[1].name" becomes "rooms[0].residents[1].name".
func fieldPath(ns string) string {
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return ns
}

// ValidateFloor checks a stored floor record, including its rooms and residents.
// Room ids must be unique within the floor and resident ids within their room.
func ValidateFloor(f Floor) error {
	verrs := validateStruct(floorRecord(f))
	verrs = append(verrs, duplicateIDs(f)...)
	if len(verrs) > 0 {
		return verrs
	}
	return nil
}

// duplicateIDs reports every room or resident whose non-empty id repeats an
// earlier sibling's. Empty ids are left to the required rule.
func duplicateIDs(f Floor) ValidationErrors {
	var out ValidationErrors
	rooms := make(map[string]int, len(f.Rooms))
	for i, room := range f.Rooms {
		out = append(out, duplicateID(rooms, room.ID, i, "rooms")...)
		residents := make(map[string]int, len(room.Residents))
		for j, res := range room.Residents {
			out = append(out, duplicateID(residents, res.ID, j, fmt.Sprintf("rooms[%d].residents", i))...)
		}
	}
	return out
}

func duplicateID(seen map[string]int, id string, index int, collection string) ValidationErrors {
	if id == "" {
		return nil
	}
	first, dup := seen[id]
	if !dup {
		seen[id] = index
		return nil
	}
	field := fmt.Sprintf("%s[%d].id", collection, index)
	return ValidationErrors{{
		Field:   field,
		Code:    "validation_unique",
		Message: fmt.Sprintf("field '%s' repeats id %q of %s[%d]", field, id, collection, first),
	}}
}

// ValidateReceipt checks a stored receipt record.
func ValidateReceipt(r Receipt) error {
	if verrs := validateStruct(receiptRecord(r)); len(verrs) > 0 {
		return verrs
	}
	return nil
}

// Record schemas mirror the entities with validation tags. They live apart from
// the entities so the persisted types stay free of validation concerns.
type residentRecord struct {
	ID         string  `json:"id" validate:"required"`
	Name       string  `json:"name" validate:"required"`
	RentAmount float64 `json:"rentAmount" validate:"gte=0"`
}

type roomRecord struct {
	ID         string           `json:"id" validate:"required"`
	RoomNumber string           `json:"roomNumber" validate:"required"`
	Residents  []residentRecord `json:"residents" validate:"required,dive"`
}

type floorRecordSchema struct {
	ID          string       `json:"id" validate:"required"`
	FloorNumber string       `json:"floorNumber" validate:"required"`
	Rooms       []roomRecord `json:"rooms" validate:"required,dive"`
}

type receiptRecordSchema struct {
	ID           string `json:"id" validate:"required"`
	ResidentName string `json:"residentName" validate:"required"`
	RoomNumber   string `json:"roomNumber" validate:"required"`
	MobileNumber string `json:"mobileNumber" validate:"required"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
}

func floorRecord(f Floor) floorRecordSchema {
	rec := floorRecordSchema{ID: f.ID, FloorNumber: f.FloorNumber}
	if f.Rooms != nil {
		rec.Rooms = make([]roomRecord, len(f.Rooms))
	}
	for i, room := range f.Rooms {
		rr := roomRecord{ID: room.ID, RoomNumber: room.RoomNumber}
		if room.Residents != nil {
			rr.Residents = make([]residentRecord, len(room.Residents))
		}
		for j, res := range room.Residents {
			rr.Residents[j] = residentRecord{ID: res.ID, Name: res.Name, RentAmount: res.RentAmount}
		}
		rec.Rooms[i] = rr
	}
	return rec
}

func receiptRecord(r Receipt) receiptRecordSchema {
	return receiptRecordSchema{
		ID:           r.ID,
		ResidentName: r.ResidentName,
		RoomNumber:   r.RoomNumber,
		MobileNumber: r.MobileNumber,
		Date:         r.Date,
	}
}
