package domain

import (
	"strconv"
	"strings"
	"time"
)

// FloorDraft is the unvalidated input for a new floor.
type FloorDraft struct {
	Label string `json:"floorNumber" validate:"required"`
}

// RoomDraft is the unvalidated input for a new room.
type RoomDraft struct {
	RoomNumber string `json:"roomNumber" validate:"required"`
}

// ResidentDraft is the unvalidated input for creating or editing a resident.
// Rent is kept as text; an empty value means no rent.
type ResidentDraft struct {
	Name   string `json:"name" validate:"required"`
	Mobile string `json:"mobile"`
	Rent   string `json:"rent" validate:"omitempty,numeric"`
	Notes  string `json:"notes"`
}

// ReceiptDraft is the unvalidated input for issuing or editing a receipt.
type ReceiptDraft struct {
	ResidentName string `json:"residentName" validate:"required"`
	RoomNumber   string `json:"roomNumber" validate:"required"`
	MobileNumber string `json:"mobileNumber" validate:"required"`
	Amount       string `json:"amount" validate:"required,numeric"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Notes        string `json:"notes"`
}

// Validate trims the label and reports whether it is usable.
func (d FloorDraft) Validate() (string, error) {
	d.Label = strings.TrimSpace(d.Label)
	if verrs := validateStruct(d); len(verrs) > 0 {
		return "", verrs
	}
	return d.Label, nil
}

// Validate trims the room number and reports whether it is usable.
func (d RoomDraft) Validate() (string, error) {
	d.RoomNumber = strings.TrimSpace(d.RoomNumber)
	if verrs := validateStruct(d); len(verrs) > 0 {
		return "", verrs
	}
	return d.RoomNumber, nil
}

// Validate produces a resident without an id. Rent must be empty or a
// non-negative number.
func (d ResidentDraft) Validate() (Resident, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Mobile = strings.TrimSpace(d.Mobile)
	d.Rent = strings.TrimSpace(d.Rent)
	verrs := validateStruct(d)
	var rent float64
	if d.Rent != "" && !verrs.Has("rent") {
		v, err := strconv.ParseFloat(d.Rent, 64)
		switch {
		case err != nil:
			verrs = append(verrs, FieldError{Field: "rent", Code: "validation_numeric", Message: "field 'rent' must be a number"})
		case v < 0:
			verrs = append(verrs, FieldError{Field: "rent", Code: "validation_gte", Message: "field 'rent' must be at least 0"})
		default:
			rent = v
		}
	}
	if len(verrs) > 0 {
		return Resident{}, verrs
	}
	return Resident{Name: d.Name, Mobile: d.Mobile, RentAmount: rent, Notes: strings.TrimSpace(d.Notes)}, nil
}

// Validate produces a receipt without an id.
func (d ReceiptDraft) Validate() (Receipt, error) {
	d.ResidentName = strings.TrimSpace(d.ResidentName)
	d.RoomNumber = strings.TrimSpace(d.RoomNumber)
	d.MobileNumber = strings.TrimSpace(d.MobileNumber)
	d.Amount = strings.TrimSpace(d.Amount)
	d.Date = strings.TrimSpace(d.Date)
	verrs := validateStruct(d)
	var amount float64
	if !verrs.Has("amount") {
		v, err := strconv.ParseFloat(d.Amount, 64)
		if err != nil {
			verrs = append(verrs, FieldError{Field: "amount", Code: "validation_numeric", Message: "field 'amount' must be a number"})
		}
		amount = v
	}
	if len(verrs) > 0 {
		return Receipt{}, verrs
	}
	return Receipt{
		ResidentName: d.ResidentName,
		RoomNumber:   d.RoomNumber,
		MobileNumber: d.MobileNumber,
		Amount:       amount,
		Date:         d.Date,
		Notes:        strings.TrimSpace(d.Notes),
	}, nil
}

// NewReceiptDraft returns an empty receipt form dated today in UTC, the same
// calendar day used for backup file names.
func NewReceiptDraft(now time.Time) ReceiptDraft {
	return ReceiptDraft{Amount: "0", Date: now.UTC().Format(DateLayout)}
}

// ReceiptDraftFor returns an edit form pre-filled from an existing receipt.
func ReceiptDraftFor(r Receipt) ReceiptDraft {
	return ReceiptDraft{
		ResidentName: r.ResidentName,
		RoomNumber:   r.RoomNumber,
		MobileNumber: r.MobileNumber,
		Amount:       strconv.FormatFloat(r.Amount, 'f', -1, 64),
		Date:         r.Date,
		Notes:        r.Notes,
	}
}

// ResidentDraftFor returns an edit form pre-filled from an existing resident.
// A zero rent is shown as an empty field.
func ResidentDraftFor(r Resident) ResidentDraft {
	d := ResidentDraft{Name: r.Name, Mobile: r.Mobile, Notes: r.Notes}
	if r.RentAmount != 0 {
		d.Rent = strconv.FormatFloat(r.RentAmount, 'f', -1, 64)
	}
	return d
}
