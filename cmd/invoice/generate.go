package main

import (
	"github.com/spf13/cobra"

	"github.com/mic47/platypus-invoices/internal/service"
)

func newGenerateCmd(invoiceService *service.InvoiceService) *cobra.Command {
	var invoiceFile string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate billing documents from an invoice record",
		Long:  "Expand an invoice record file and write the computed JSON, HTML and PDF documents under the output prefix.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return invoiceService.Generate(cmd.Context(), invoiceFile)
		},
	}

	cmd.Flags().StringVarP(&invoiceFile, "invoice-file", "f", "", "Invoice record file (required)")
	cmd.MarkFlagRequired("invoice-file")

	return cmd
}
