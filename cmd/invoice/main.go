package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mic47/platypus-invoices/internal/config"
	"github.com/mic47/platypus-invoices/internal/database"
	"github.com/mic47/platypus-invoices/internal/logger"
	"github.com/mic47/platypus-invoices/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Setup(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat}); err != nil {
		return fmt.Errorf("failed to set up logging: %w", err)
	}

	db, err := database.NewDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	invoiceService := service.NewInvoiceService(cfg, db)

	rootCmd := newRootCmd(invoiceService)
	return rootCmd.ExecuteContext(context.Background())
}
