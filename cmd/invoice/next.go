package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mic47/platypus-invoices/internal/service"
)

func newNextCmd(invoiceService *service.InvoiceService) *cobra.Command {
	var invoiceFile string

	cmd := &cobra.Command{
		Use:   "next",
		Short: "Create the next billing period's invoice record",
		Long: `Advance an invoice record to the next billing period: the period rolls to
the end of the following month, the payment reference is incremented, and a
fresh skeleton file is written next to the input. Refuses to overwrite an
existing file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			outPath, err := invoiceService.Next(cmd.Context(), invoiceFile)
			if err != nil {
				return err
			}
			fmt.Printf("Created next period invoice: %s\n", outPath)
			return nil
		},
	}

	cmd.Flags().StringVarP(&invoiceFile, "invoice-file", "f", "", "Previous period's invoice record file (required)")
	cmd.MarkFlagRequired("invoice-file")

	return cmd
}
