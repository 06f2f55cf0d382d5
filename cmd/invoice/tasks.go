package main

import (
	"github.com/spf13/cobra"

	"github.com/mic47/platypus-invoices/internal/service"
)

func newTasksCmd(invoiceService *service.InvoiceService) *cobra.Command {
	var invoiceFile string

	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Build the completed-task attachment for an invoice period",
		Long:  "Fetch the tasks completed in the record's billing period from the task tracker and render them as an attachment.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoiceService.Tasks(cmd.Context(), invoiceFile)
		},
	}

	cmd.Flags().StringVarP(&invoiceFile, "invoice-file", "f", "", "Invoice record file (required)")
	cmd.MarkFlagRequired("invoice-file")

	return cmd
}
