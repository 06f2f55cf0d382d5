package main

import (
	"github.com/spf13/cobra"

	"github.com/mic47/platypus-invoices/internal/service"
)

func newPartiesCmd(invoiceService *service.InvoiceService) *cobra.Command {
	return &cobra.Command{
		Use:   "parties",
		Short: "List known supplier and client identifiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoiceService.ListParties()
		},
	}
}
