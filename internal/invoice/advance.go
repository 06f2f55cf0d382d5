package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mic47/platypus-invoices/internal/calendar"
	"github.com/mic47/platypus-invoices/internal/models"
	"github.com/mic47/platypus-invoices/internal/reference"
)

// staleAfter is how far past the new period's end the current date may be
// before the advancer warns that the period being generated looks old.
const staleAfter = 5 * 24 * time.Hour

// Advance produces the next billing period's skeleton from a previous-period
// record: derived fields are stripped, the period rolls to the day after the
// previous date_to through the end of that month, and the payment reference is
// incremented with year rollover. A suspiciously old period is logged as a
// warning but still generated.
func Advance(prev models.Record, today time.Time) (models.Record, error) {
	next := stripDerived(prev)

	prevTo, err := calendar.ParsePrettyDate(prev.DateTo)
	if err != nil {
		return models.Record{}, fmt.Errorf("date_to: %w", err)
	}

	from := prevTo.AddDate(0, 0, 1)
	to := calendar.EndOfMonth(from)
	next.DateFrom = calendar.PrettyDate(from)
	next.DateTo = calendar.PrettyDate(to)
	next.IssueDate = calendar.PrettyDate(today)

	next.PaymentReference, err = reference.Increment(prev.PaymentReference, prevTo.Year(), to.Year())
	if err != nil {
		return models.Record{}, err
	}

	if today.Sub(to) > staleAfter {
		log.Warn().
			Str("payment_reference", next.PaymentReference).
			Str("date_to", next.DateTo).
			Str("today", calendar.PrettyDate(today)).
			Msg("generated billing period ended more than 5 days ago")
	}

	return next, nil
}

// stripDerived removes everything Expand computes, so the skeleton can be
// re-expanded without double counting even when the input was already
// expanded: dated defaults, totals, on-call derivations, synthesized on-call
// delivery lines, and merged party fields.
func stripDerived(prev models.Record) models.Record {
	next := prev.Clone()
	next.DeliveryDate = nil
	next.DueDate = nil
	next.Total = nil

	for i := range next.Oncall {
		sheet := &next.Oncall[i]
		sheet.TotalHours = nil
		sheet.TotalPrice = nil
		for j := range sheet.Items {
			sheet.Items[j].Hours = nil
			sheet.Items[j].Price = nil
		}
	}

	next.Deliveries = dropSynthesizedLines(next.Deliveries, next.Oncall)
	for i := range next.Deliveries {
		next.Deliveries[i].Total = nil
	}

	for k := range next.Extra {
		if strings.HasPrefix(k, "supplier_") || strings.HasPrefix(k, "client_") {
			delete(next.Extra, k)
		}
	}

	return next
}
