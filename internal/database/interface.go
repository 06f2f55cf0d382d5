package database

import (
	"context"

	"github.com/mic47/platypus-invoices/internal/models"
)

type DB interface {
	Close() error

	RecordInvoice(ctx context.Context, invoice *models.IssuedInvoice) error
	GetInvoiceByReference(ctx context.Context, supplier, paymentReference string) (*models.IssuedInvoice, error)
	ListRecentInvoices(ctx context.Context, limit int32) ([]*models.IssuedInvoice, error)
}
