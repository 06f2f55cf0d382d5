// Package service orchestrates invoice generation: loading records, running
// the expansion and rollover logic, rendering output documents, and keeping
// the ledger of issued invoices.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/mic47/platypus-invoices/internal/config"
	"github.com/mic47/platypus-invoices/internal/database"
	"github.com/mic47/platypus-invoices/internal/logger"
	"github.com/mic47/platypus-invoices/internal/models"
	"github.com/mic47/platypus-invoices/internal/party"
)

// ErrOutputExists is returned when a generated file would overwrite data that
// is already there.
var ErrOutputExists = errors.New("output already exists")

type InvoiceService struct {
	cfg     *config.Config
	db      database.DB
	parties *party.Store
	log     zerolog.Logger
}

func NewInvoiceService(cfg *config.Config, db database.DB) *InvoiceService {
	return &InvoiceService{
		cfg:     cfg,
		db:      db,
		parties: party.NewStore(cfg.PartiesDir),
		log:     logger.WithComponent("service"),
	}
}

// LoadRecord reads an invoice record file.
func (s *InvoiceService) LoadRecord(path string) (models.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return models.Record{}, fmt.Errorf("failed to read invoice file: %w", err)
	}

	var rec models.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return models.Record{}, fmt.Errorf("failed to parse invoice file: %w", err)
	}
	return rec, nil
}

// OutputPrefix expands the configured output path pattern for a record.
func (s *InvoiceService) OutputPrefix(rec models.Record) string {
	return strings.NewReplacer(
		"{supplier}", rec.Supplier,
		"{client}", rec.Client,
		"{payment_reference}", rec.PaymentReference,
	).Replace(s.cfg.OutputPrefix)
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", path, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// History prints the most recently issued invoices from the ledger.
func (s *InvoiceService) History(ctx context.Context, limit int32) error {
	invoices, err := s.db.ListRecentInvoices(ctx, limit)
	if err != nil {
		return fmt.Errorf("failed to list issued invoices: %w", err)
	}

	if len(invoices) == 0 {
		fmt.Println("No invoices issued yet.")
		return nil
	}

	for _, inv := range invoices {
		fmt.Printf("%s | %s -> %s | %s - %s | total %s | %s\n",
			inv.PaymentReference,
			inv.Supplier,
			inv.Client,
			inv.DateFrom,
			inv.DateTo,
			inv.Total.String(),
			inv.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

// ListParties prints the identifiers of all known parties.
func (s *InvoiceService) ListParties() error {
	ids, err := s.parties.List()
	if err != nil {
		return err
	}

	if len(ids) == 0 {
		fmt.Println("No parties found.")
		return nil
	}
	for _, id := range ids {
		fmt.Println(id)
	}
	return nil
}
