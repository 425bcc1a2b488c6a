package render

import (
	htmltemplate "html/template"
	"io"
	"strings"
	"text/tabwriter"
	texttemplate "text/template"

	"pgmanager/pkg/domain"
)

// ReceiptView is the print-ready projection of a receipt.
type ReceiptView struct {
	Property string
	ID       string
	Date     string
	Resident string
	Room     string
	Mobile   string
	Amount   string
	Notes    string
}

// NewReceiptView formats r for printing.
func NewReceiptView(r domain.Receipt) ReceiptView {
	return ReceiptView{
		Property: PropertyName,
		ID:       r.ID,
		Date:     Date(r.Date),
		Resident: r.ResidentName,
		Room:     r.RoomNumber,
		Mobile:   r.MobileNumber,
		Amount:   Amount(r.Amount),
		Notes:    r.Notes,
	}
}

var receiptText = texttemplate.Must(texttemplate.New("receipt").Parse(`{{.Property}}
PAYMENT RECEIPT
----------------------------------------
Receipt No : {{.ID}}
Date       : {{.Date}}
Resident   : {{.Resident}}
Room       : {{.Room}}
Mobile     : {{.Mobile}}
Amount     : {{.Amount}}
{{- if .Notes}}
Notes      : {{.Notes}}
{{- end}}
----------------------------------------
Received with thanks.
`))

var receiptHTML = htmltemplate.Must(htmltemplate.New("receipt").Parse(`<!DOCTYPE html>
<html lang="en-IN">
<head>
<meta charset="utf-8">
<title>Receipt {{.ID}}</title>
<style>
body { font-family: sans-serif; max-width: 32rem; margin: 2rem auto; }
table { width: 100%; border-collapse: collapse; }
th { text-align: left; width: 40%; color: #555; }
td, th { padding: .35rem 0; border-bottom: 1px solid #ddd; }
.amount { font-weight: bold; }
@media print { .no-print { display: none; } }
</style>
</head>
<body>
<h1>{{.Property}}</h1>
<h2>Payment Receipt</h2>
<table>
<tr><th>Receipt No</th><td>{{.ID}}</td></tr>
<tr><th>Date</th><td>{{.Date}}</td></tr>
<tr><th>Resident</th><td>{{.Resident}}</td></tr>
<tr><th>Room</th><td>{{.Room}}</td></tr>
<tr><th>Mobile</th><td>{{.Mobile}}</td></tr>
<tr><th>Amount</th><td class="amount">{{.Amount}}</td></tr>
{{- if .Notes}}
<tr><th>Notes</th><td>{{.Notes}}</td></tr>
{{- end}}
</table>
<p>Received with thanks.</p>
<button class="no-print" onclick="window.print()">Print</button>
</body>
</html>
`))

// ReceiptText writes the plain-text print layout of r.
func ReceiptText(w io.Writer, r domain.Receipt) error {
	return receiptText.Execute(w, NewReceiptView(r))
}

// ReceiptHTML writes a standalone printable HTML page for r.
func ReceiptHTML(w io.Writer, r domain.Receipt) error {
	return receiptHTML.Execute(w, NewReceiptView(r))
}

// ReceiptTable writes the ledger as aligned columns, newest first.
func ReceiptTable(w io.Writer, receipts []domain.Receipt) error {
	if len(receipts) == 0 {
		_, err := io.WriteString(w, "No receipts found.\n")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if _, err := io.WriteString(tw, "ID\tDATE\tRESIDENT\tMOBILE\tROOM\tAMOUNT\n"); err != nil {
		return err
	}
	for _, r := range receipts {
		v := NewReceiptView(r)
		row := strings.Join([]string{v.ID, v.Date, v.Resident, v.Mobile, v.Room, v.Amount}, "\t")
		if _, err := io.WriteString(tw, row+"\n"); err != nil {
			return err
		}
	}
	return tw.Flush()
}
