// Package invoice turns sparse hand-edited invoice records into fully
// computed ones and rolls records over to the next billing period.
package invoice

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/mic47/platypus-invoices/internal/calendar"
	"github.com/mic47/platypus-invoices/internal/models"
	"github.com/mic47/platypus-invoices/internal/timecalc"
)

// dueDateOffsetDays is the default payment term applied when the author did
// not set an explicit due date.
const dueDateOffsetDays = 15

// PartyLookup resolves a party identifier to its profile fields.
type PartyLookup interface {
	Party(id string) (map[string]any, error)
}

// Expand produces a fully computed copy of a raw invoice record: defaulted
// dates, on-call hours and prices, line and grand totals, and the prefixed
// supplier/client party fields. The input record is never modified.
func Expand(rec models.Record, parties PartyLookup) (models.Record, error) {
	out := rec.Clone()

	if out.DeliveryDate == nil && out.DateTo != "" {
		date := out.DateTo
		out.DeliveryDate = &date
	}
	if out.DueDate == nil && out.IssueDate != "" {
		issued, err := calendar.ParsePrettyDate(out.IssueDate)
		if err != nil {
			return models.Record{}, fmt.Errorf("issue_date: %w", err)
		}
		due := calendar.PrettyDate(issued.AddDate(0, 0, dueDateOffsetDays))
		out.DueDate = &due
	}

	// Re-expanding an already-expanded record must not double the on-call
	// billing: drop previously synthesized lines before regenerating them.
	out.Deliveries = dropSynthesizedLines(out.Deliveries, out.Oncall)

	// On-call lines must land in the deliveries list before totals run.
	for i := range out.Oncall {
		line, err := expandOncallSheet(&out.Oncall[i])
		if err != nil {
			return models.Record{}, err
		}
		out.Deliveries = append(out.Deliveries, line)
	}

	total := decimal.Zero
	for i := range out.Deliveries {
		lineTotal := out.Deliveries[i].Quantity.Mul(out.Deliveries[i].UnitPrice)
		out.Deliveries[i].Total = &lineTotal
		total = total.Add(lineTotal)
	}
	out.Total = &total

	for _, role := range []struct{ prefix, id string }{
		{"supplier", out.Supplier},
		{"client", out.Client},
	} {
		fields, err := parties.Party(role.id)
		if err != nil {
			return models.Record{}, fmt.Errorf("failed to resolve %s: %w", role.prefix, err)
		}
		for k, v := range fields {
			out.Extra[role.prefix+"_"+k] = v
		}
	}

	return out, nil
}

// dropSynthesizedLines filters out deliveries that a previous expansion
// contributed for an on-call sheet, recognized by the "hour" unit and a
// description matching a sheet title.
func dropSynthesizedLines(deliveries []models.Delivery, sheets []models.OncallSheet) []models.Delivery {
	if len(sheets) == 0 {
		return deliveries
	}

	titles := make(map[string]bool, len(sheets))
	for _, sheet := range sheets {
		titles[sheet.Title] = true
	}

	kept := deliveries[:0]
	for _, d := range deliveries {
		if d.Unit == "hour" && titles[d.Description] {
			continue
		}
		kept = append(kept, d)
	}
	return kept
}

// expandOncallSheet fills the sheet's derived fields and returns the delivery
// line it contributes to the invoice.
func expandOncallSheet(sheet *models.OncallSheet) (models.Delivery, error) {
	businessStart, err := timecalc.TimeToHours(sheet.BusinessStart)
	if err != nil {
		return models.Delivery{}, fmt.Errorf("oncall sheet %q business_start: %w", sheet.Title, err)
	}
	businessEnd, err := timecalc.TimeToHours(sheet.BusinessEnd)
	if err != nil {
		return models.Delivery{}, fmt.Errorf("oncall sheet %q business_end: %w", sheet.Title, err)
	}

	totalHours := 0.0
	for i := range sheet.Items {
		item := &sheet.Items[i]
		from, err := timecalc.TimeToHours(item.From)
		if err != nil {
			return models.Delivery{}, fmt.Errorf("oncall sheet %q item %d: %w", sheet.Title, i, err)
		}
		to, err := timecalc.TimeToHours(item.To)
		if err != nil {
			return models.Delivery{}, fmt.Errorf("oncall sheet %q item %d: %w", sheet.Title, i, err)
		}

		var hours float64
		if item.Workday {
			hours, err = timecalc.HoursOutsideBusiness(businessStart, businessEnd, from, to)
			if err != nil {
				return models.Delivery{}, fmt.Errorf("oncall sheet %q item %d: %w", sheet.Title, i, err)
			}
		} else {
			if from >= to {
				return models.Delivery{}, fmt.Errorf("oncall sheet %q item %d: %w: %s-%s",
					sheet.Title, i, timecalc.ErrInvalidInterval, item.From, item.To)
			}
			hours = to - from
		}

		price := sheet.HourlyPrice.Mul(decimal.NewFromFloat(hours))
		item.Hours = &hours
		item.Price = &price
		totalHours += hours
	}

	totalPrice := sheet.HourlyPrice.Mul(decimal.NewFromFloat(totalHours))
	sheet.TotalHours = &totalHours
	sheet.TotalPrice = &totalPrice

	return models.Delivery{
		Description: sheet.Title,
		Quantity:    decimal.NewFromFloat(totalHours),
		UnitPrice:   sheet.HourlyPrice,
		Unit:        "hour",
	}, nil
}
