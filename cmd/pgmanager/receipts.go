package main

import (
	"context"

	"pgmanager/internal/render"
	"pgmanager/pkg/domain"
)

var receiptForm = []formField[domain.ReceiptDraft]{
	{name: "resident", usage: "resident name", set: func(d *domain.ReceiptDraft, v string) { d.ResidentName = v }},
	{name: "room", usage: "room number", set: func(d *domain.ReceiptDraft, v string) { d.RoomNumber = v }},
	{name: "mobile", usage: "mobile number", set: func(d *domain.ReceiptDraft, v string) { d.MobileNumber = v }},
	{name: "amount", usage: "amount received", set: func(d *domain.ReceiptDraft, v string) { d.Amount = v }},
	{name: "date", usage: "payment date as YYYY-MM-DD, default today", set: func(d *domain.ReceiptDraft, v string) { d.Date = v }},
	{name: "notes", usage: "free-form notes", set: func(d *domain.ReceiptDraft, v string) { d.Notes = v }},
}

func (a *app) receiptIssue(ctx context.Context, args []string) error {
	fs := a.flags("receipt issue")
	defineForm(fs, receiptForm)
	if _, err := parseFlags(fs, args, 0); err != nil {
		return err
	}
	draft := a.svc.NewReceiptDraft()
	applyForm(fs, receiptForm, &draft)
	rec, err := a.svc.IssueReceipt(ctx, draft)
	if err != nil {
		return err
	}
	a.printf("Issued receipt [%s]\n", rec.ID)
	return render.ReceiptText(a.stdout, rec)
}

func (a *app) receiptUpdate(ctx context.Context, args []string) error {
	fs := a.flags("receipt update")
	id := fs.String("id", "", "receipt id")
	defineForm(fs, receiptForm)
	if _, err := parseFlags(fs, args, 0); err != nil {
		return err
	}
	if *id == "" {
		return usagef("receipt update: -id is required")
	}
	existing, err := a.svc.Receipt(*id)
	if err != nil {
		return err
	}
	draft := domain.ReceiptDraftFor(existing)
	applyForm(fs, receiptForm, &draft)
	rec, err := a.svc.UpdateReceipt(ctx, *id, draft)
	if err != nil {
		return err
	}
	a.printf("Updated receipt [%s]\n", rec.ID)
	return nil
}

func (a *app) receiptDelete(ctx context.Context, args []string) error {
	fs := a.flags("receipt delete")
	yes := fs.Bool("yes", false, "skip the confirmation prompt")
	rest, err := parseFlags(fs, args, 1)
	if err != nil {
		return err
	}
	if !*yes && !a.confirm("Delete receipt "+rest[0]+"?") {
		a.printf("Cancelled.\n")
		return nil
	}
	if err := a.svc.DeleteReceipt(ctx, rest[0]); err != nil {
		return err
	}
	a.printf("Deleted receipt [%s]\n", rest[0])
	return nil
}

func (a *app) receiptList(args []string) error {
	fs := a.flags("receipt list")
	query := fs.String("q", "", "filter by resident name or room number")
	if _, err := parseFlags(fs, args, 0); err != nil {
		return err
	}
	return render.ReceiptTable(a.stdout, a.svc.SearchReceipts(*query))
}

func (a *app) receiptPrint(args []string) error {
	fs := a.flags("receipt print")
	asHTML := fs.Bool("html", false, "print a standalone HTML page")
	rest, err := parseFlags(fs, args, 1)
	if err != nil {
		return err
	}
	rec, err := a.svc.Receipt(rest[0])
	if err != nil {
		return err
	}
	if *asHTML {
		return render.ReceiptHTML(a.stdout, rec)
	}
	return render.ReceiptText(a.stdout, rec)
}
