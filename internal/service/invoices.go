package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mic47/platypus-invoices/internal/asana"
	"github.com/mic47/platypus-invoices/internal/calendar"
	"github.com/mic47/platypus-invoices/internal/invoice"
	"github.com/mic47/platypus-invoices/internal/models"
	"github.com/mic47/platypus-invoices/internal/render"
)

// Generate expands an invoice record and writes the JSON, HTML and PDF
// documents under the configured output prefix, recording the invoice in the
// ledger.
func (s *InvoiceService) Generate(ctx context.Context, invoicePath string) error {
	rec, err := s.LoadRecord(invoicePath)
	if err != nil {
		return err
	}

	expanded, err := invoice.Expand(rec, s.parties)
	if err != nil {
		return err
	}

	prefix := s.OutputPrefix(expanded)
	if dir := filepath.Dir(prefix); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := writeJSON(prefix+".json", expanded); err != nil {
		return err
	}
	if err := render.HTMLFile(s.cfg.TemplatePath, expanded.TemplateData(), prefix+".html"); err != nil {
		return err
	}
	if err := render.InvoicePDF(expanded, prefix+".pdf"); err != nil {
		return err
	}

	// Regenerating an already-issued invoice keeps its original ledger row.
	existing, err := s.db.GetInvoiceByReference(ctx, expanded.Supplier, expanded.PaymentReference)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}
	if existing == nil {
		if err := s.db.RecordInvoice(ctx, &models.IssuedInvoice{
			Supplier:         expanded.Supplier,
			Client:           expanded.Client,
			PaymentReference: expanded.PaymentReference,
			DateFrom:         expanded.DateFrom,
			DateTo:           expanded.DateTo,
			Total:            *expanded.Total,
			OutputPrefix:     prefix,
		}); err != nil {
			return err
		}
	}

	s.log.Info().
		Str("payment_reference", expanded.PaymentReference).
		Str("output_prefix", prefix).
		Str("total", expanded.Total.String()).
		Msg("generated invoice")

	fmt.Printf("Generated invoice %s (total %s)\n", prefix+".pdf", expanded.Total.String())
	return nil
}

// Next advances the invoice record at invoicePath to the following billing
// period and writes the skeleton next to it. It refuses to overwrite an
// existing file.
func (s *InvoiceService) Next(ctx context.Context, invoicePath string) (string, error) {
	rec, err := s.LoadRecord(invoicePath)
	if err != nil {
		return "", err
	}

	next, err := invoice.Advance(rec, time.Now())
	if err != nil {
		return "", err
	}

	outPath := filepath.Join(filepath.Dir(invoicePath),
		fmt.Sprintf("%s_%s_%s.json", next.Supplier, next.Client, next.PaymentReference))
	if _, err := os.Stat(outPath); err == nil {
		return "", fmt.Errorf("%w: %s", ErrOutputExists, outPath)
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("failed to check output path: %w", err)
	}

	if err := writeJSON(outPath, next); err != nil {
		return "", err
	}

	s.log.Info().
		Str("payment_reference", next.PaymentReference).
		Str("path", outPath).
		Msg("created next period skeleton")

	return outPath, nil
}

// Tasks builds the completed-task attachment for the record's billing period
// from the task tracker.
func (s *InvoiceService) Tasks(ctx context.Context, invoicePath string) error {
	rec, err := s.LoadRecord(invoicePath)
	if err != nil {
		return err
	}

	expanded, err := invoice.Expand(rec, s.parties)
	if err != nil {
		return err
	}

	from, err := calendar.ParsePrettyDate(expanded.DateFrom)
	if err != nil {
		return fmt.Errorf("date_from: %w", err)
	}
	to, err := calendar.ParsePrettyDate(expanded.DateTo)
	if err != nil {
		return fmt.Errorf("date_to: %w", err)
	}

	secrets, err := s.cfg.LoadSecrets(expanded.Supplier)
	if err != nil {
		return err
	}

	client := asana.New(secrets.AsanaToken)
	tasks, err := client.CompletedTasks(ctx, secrets.AsanaWorkspace, from, to)
	if err != nil {
		return fmt.Errorf("failed to fetch completed tasks: %w", err)
	}

	prefix := s.OutputPrefix(expanded) + "_asana"
	if dir := filepath.Dir(prefix); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if err := writeJSON(prefix+".json", tasks); err != nil {
		return err
	}

	data := expanded.TemplateData()
	data["tasks"] = tasks
	if err := render.HTMLFile(s.cfg.TasksTemplate, data, prefix+".html"); err != nil {
		return err
	}
	if err := render.TasksPDF(expanded, tasks, prefix+".pdf"); err != nil {
		return err
	}

	fmt.Printf("Generated task attachment for %d tasks: %s\n", len(tasks), prefix+".pdf")
	return nil
}
