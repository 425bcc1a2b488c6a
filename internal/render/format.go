// Package render produces the printable receipt and the text views of the
// ledger and floor tree used by the command-line front end.
package render

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"pgmanager/pkg/domain"
)

// PropertyName heads every printed receipt.
const PropertyName = "Hari PG"

var inr = message.NewPrinter(language.MustParse("en-IN"))

// Amount formats v as rupees with Indian digit grouping, e.g. ₹1,25,000.
func Amount(v float64) string {
	return "₹" + inr.Sprint(number.Decimal(v, number.MaxFractionDigits(2)))
}

// Date renders an ISO date as "05 Mar 2024". Unparsable input is returned unchanged.
func Date(iso string) string {
	t, err := time.Parse(domain.DateLayout, iso)
	if err != nil {
		return iso
	}
	return t.Format("02 Jan 2006")
}
