package models

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Invoice documents carry plain JSON numbers, not quoted decimals.
	decimal.MarshalJSONWithoutQuotes = true
}

// Delivery is a single invoice line item. Total is derived and only present
// after expansion.
type Delivery struct {
	Description string           `json:"description"`
	Quantity    decimal.Decimal  `json:"quantity"`
	UnitPrice   decimal.Decimal  `json:"unit_price"`
	Unit        string           `json:"unit"`
	Total       *decimal.Decimal `json:"total,omitempty"`
}

// OncallItem is one time interval on an on-call sheet. Hours and Price are
// derived during expansion.
type OncallItem struct {
	Workday bool             `json:"workday"`
	From    string           `json:"from"`
	To      string           `json:"to"`
	Hours   *float64         `json:"hours,omitempty"`
	Price   *decimal.Decimal `json:"price,omitempty"`
}

// OncallSheet is a named group of hourly-billed intervals. Workday items bill
// only the hours outside the sheet's business window; other items bill their
// full duration.
type OncallSheet struct {
	Title         string           `json:"title"`
	BusinessStart string           `json:"business_start"`
	BusinessEnd   string           `json:"business_end"`
	HourlyPrice   decimal.Decimal  `json:"hourly_price"`
	Items         []OncallItem     `json:"items"`
	TotalHours    *float64         `json:"total_hours,omitempty"`
	TotalPrice    *decimal.Decimal `json:"total_price,omitempty"`
}

// Task is a completed task pulled from the task tracker for the invoice
// attachment.
type Task struct {
	Name           string `json:"name"`
	CompletedAtDay string `json:"completed_at_day"`
	ProjectsString string `json:"projects_string"`
}

// Record is one invoice period. On disk it is a flat field mapping: the typed
// fields below plus any author-supplied keys and the merged supplier_*/client_*
// party fields, which all live in Extra so they round-trip unchanged.
type Record struct {
	Supplier         string
	Client           string
	PaymentReference string
	DateFrom         string
	DateTo           string
	IssueDate        string
	DeliveryDate     *string
	DueDate          *string
	Deliveries       []Delivery
	Oncall           []OncallSheet
	Total            *decimal.Decimal
	Extra            map[string]any
}

// Clone returns a deep copy so expansion never mutates its input.
func (r Record) Clone() Record {
	out := r
	out.Deliveries = make([]Delivery, len(r.Deliveries))
	copy(out.Deliveries, r.Deliveries)
	out.Oncall = make([]OncallSheet, len(r.Oncall))
	for i, sheet := range r.Oncall {
		items := make([]OncallItem, len(sheet.Items))
		copy(items, sheet.Items)
		sheet.Items = items
		out.Oncall[i] = sheet
	}
	out.Extra = make(map[string]any, len(r.Extra))
	for k, v := range r.Extra {
		out.Extra[k] = v
	}
	return out
}

// TemplateData flattens the record into the named variables a renderer sees.
// Every key matches its JSON name exactly.
func (r Record) TemplateData() map[string]any {
	data := make(map[string]any, len(r.Extra)+12)
	for k, v := range r.Extra {
		data[k] = v
	}
	data["supplier"] = r.Supplier
	data["client"] = r.Client
	data["payment_reference"] = r.PaymentReference
	data["date_from"] = r.DateFrom
	data["date_to"] = r.DateTo
	data["issue_date"] = r.IssueDate
	if r.DeliveryDate != nil {
		data["delivery_date"] = *r.DeliveryDate
	}
	if r.DueDate != nil {
		data["due_date"] = *r.DueDate
	}
	data["deliveries"] = r.Deliveries
	if len(r.Oncall) > 0 {
		data["oncall"] = r.Oncall
	}
	if r.Total != nil {
		data["total"] = *r.Total
	}
	return data
}

func (r Record) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(r.Extra)+12)
	for k, v := range r.Extra {
		out[k] = v
	}
	out["supplier"] = r.Supplier
	out["client"] = r.Client
	out["payment_reference"] = r.PaymentReference
	out["date_from"] = r.DateFrom
	out["date_to"] = r.DateTo
	out["issue_date"] = r.IssueDate
	if r.DeliveryDate != nil {
		out["delivery_date"] = *r.DeliveryDate
	}
	if r.DueDate != nil {
		out["due_date"] = *r.DueDate
	}
	out["deliveries"] = r.Deliveries
	if len(r.Oncall) > 0 {
		out["oncall"] = r.Oncall
	}
	if r.Total != nil {
		out["total"] = *r.Total
	}
	return json.Marshal(out)
}

func (r *Record) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	take := func(key string, dst any) error {
		v, ok := raw[key]
		if !ok {
			return nil
		}
		delete(raw, key)
		if err := json.Unmarshal(v, dst); err != nil {
			return fmt.Errorf("invalid %q field: %w", key, err)
		}
		return nil
	}

	fields := []struct {
		key string
		dst any
	}{
		{"supplier", &r.Supplier},
		{"client", &r.Client},
		{"payment_reference", &r.PaymentReference},
		{"date_from", &r.DateFrom},
		{"date_to", &r.DateTo},
		{"issue_date", &r.IssueDate},
		{"delivery_date", &r.DeliveryDate},
		{"due_date", &r.DueDate},
		{"deliveries", &r.Deliveries},
		{"oncall", &r.Oncall},
		{"total", &r.Total},
	}
	for _, f := range fields {
		if err := take(f.key, f.dst); err != nil {
			return err
		}
	}

	r.Extra = make(map[string]any, len(raw))
	for k, v := range raw {
		var val any
		if err := json.Unmarshal(v, &val); err != nil {
			return fmt.Errorf("invalid %q field: %w", k, err)
		}
		r.Extra[k] = val
	}
	return nil
}

// IssuedInvoice is one row in the ledger of generated invoices.
type IssuedInvoice struct {
	ID               string          `json:"id" db:"id"`
	Supplier         string          `json:"supplier" db:"supplier"`
	Client           string          `json:"client" db:"client"`
	PaymentReference string          `json:"payment_reference" db:"payment_reference"`
	DateFrom         string          `json:"date_from" db:"date_from"`
	DateTo           string          `json:"date_to" db:"date_to"`
	Total            decimal.Decimal `json:"total" db:"total"`
	OutputPrefix     string          `json:"output_prefix" db:"output_prefix"`
	CreatedAt        time.Time       `json:"created_at" db:"created_at"`
}

func NewUUID() string {
	return uuid.Must(uuid.NewV7()).String()
}
