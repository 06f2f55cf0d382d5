package main

import (
	"github.com/spf13/cobra"

	"github.com/mic47/platypus-invoices/internal/service"
)

func newRootCmd(invoiceService *service.InvoiceService) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "invoice",
		Short: "Generate periodic billing documents",
		Long: `Expand sparse invoice records into fully computed billing documents,
roll invoices over to the next billing period, and build task-tracker
attachments for the billed date range.`,
	}

	rootCmd.AddCommand(
		newGenerateCmd(invoiceService),
		newNextCmd(invoiceService),
		newTasksCmd(invoiceService),
		newHistoryCmd(invoiceService),
		newPartiesCmd(invoiceService),
	)

	return rootCmd
}
