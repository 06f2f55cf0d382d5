package main

import (
	"github.com/spf13/cobra"

	"github.com/mic47/platypus-invoices/internal/service"
)

func newHistoryCmd(invoiceService *service.InvoiceService) *cobra.Command {
	var limit int32

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recently issued invoices",
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoiceService.History(cmd.Context(), limit)
		},
	}

	cmd.Flags().Int32VarP(&limit, "limit", "n", 20, "Maximum number of invoices to show")

	return cmd
}
