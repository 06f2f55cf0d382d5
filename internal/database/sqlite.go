package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	_ "github.com/tursodatabase/libsql-client-go/libsql"

	"github.com/shopspring/decimal"

	"github.com/mic47/platypus-invoices/internal/config"
	"github.com/mic47/platypus-invoices/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS invoices (
	id TEXT PRIMARY KEY,
	supplier TEXT NOT NULL,
	client TEXT NOT NULL,
	payment_reference TEXT NOT NULL,
	date_from TEXT NOT NULL,
	date_to TEXT NOT NULL,
	total TEXT NOT NULL,
	output_prefix TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
	UNIQUE (supplier, payment_reference)
);
`

type SQLiteDB struct {
	conn *sql.DB
}

func NewDB(cfg *config.Config) (*SQLiteDB, error) {
	conn, err := sql.Open(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return &SQLiteDB{conn: conn}, nil
}

func (s *SQLiteDB) Close() error {
	return s.conn.Close()
}

func (s *SQLiteDB) RecordInvoice(ctx context.Context, invoice *models.IssuedInvoice) error {
	if invoice.ID == "" {
		invoice.ID = models.NewUUID()
	}
	if invoice.CreatedAt.IsZero() {
		invoice.CreatedAt = time.Now().UTC()
	}

	_, err := s.conn.ExecContext(ctx, `
		INSERT INTO invoices (id, supplier, client, payment_reference, date_from, date_to, total, output_prefix, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		invoice.ID,
		invoice.Supplier,
		invoice.Client,
		invoice.PaymentReference,
		invoice.DateFrom,
		invoice.DateTo,
		invoice.Total.String(),
		invoice.OutputPrefix,
		invoice.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record invoice: %w", err)
	}
	return nil
}

func (s *SQLiteDB) GetInvoiceByReference(ctx context.Context, supplier, paymentReference string) (*models.IssuedInvoice, error) {
	row := s.conn.QueryRowContext(ctx, `
		SELECT id, supplier, client, payment_reference, date_from, date_to, total, output_prefix, created_at
		FROM invoices
		WHERE supplier = ? AND payment_reference = ?`,
		supplier, paymentReference,
	)

	invoice, err := scanInvoice(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("failed to get invoice by reference: %w", err)
	}
	return invoice, nil
}

func (s *SQLiteDB) ListRecentInvoices(ctx context.Context, limit int32) ([]*models.IssuedInvoice, error) {
	rows, err := s.conn.QueryContext(ctx, `
		SELECT id, supplier, client, payment_reference, date_from, date_to, total, output_prefix, created_at
		FROM invoices
		ORDER BY created_at DESC
		LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	defer rows.Close()

	var invoices []*models.IssuedInvoice
	for rows.Next() {
		invoice, err := scanInvoice(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to list invoices: %w", err)
		}
		invoices = append(invoices, invoice)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list invoices: %w", err)
	}
	return invoices, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanInvoice(row scanner) (*models.IssuedInvoice, error) {
	var invoice models.IssuedInvoice
	var total string
	err := row.Scan(
		&invoice.ID,
		&invoice.Supplier,
		&invoice.Client,
		&invoice.PaymentReference,
		&invoice.DateFrom,
		&invoice.DateTo,
		&total,
		&invoice.OutputPrefix,
		&invoice.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	invoice.Total, err = decimal.NewFromString(total)
	if err != nil {
		return nil, fmt.Errorf("invalid total %q: %w", total, err)
	}
	return &invoice, nil
}
