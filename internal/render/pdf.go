package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/mic47/platypus-invoices/internal/models"
)

// InvoicePDF writes the expanded record as an A4 invoice document.
func InvoicePDF(rec models.Record, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)

	// Header
	pdf.Cell(40, 10, fmt.Sprintf("Invoice %s", rec.PaymentReference))
	pdf.Ln(12)

	// Supplier and client blocks in two columns
	pdf.SetFont("Arial", "B", 12)
	leftColY := pdf.GetY()
	pdf.Cell(95, 8, "Supplier:")
	pdf.SetXY(105, leftColY)
	pdf.Cell(85, 8, "Bill To:")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 11)
	supplierLines := partyLines(rec.Extra, "supplier_")
	clientLines := partyLines(rec.Extra, "client_")
	blockY := pdf.GetY()
	for i, line := range supplierLines {
		pdf.SetXY(10, blockY+float64(i)*6)
		pdf.Cell(95, 6, line)
	}
	for i, line := range clientLines {
		pdf.SetXY(105, blockY+float64(i)*6)
		pdf.Cell(85, 6, line)
	}
	rows := len(supplierLines)
	if len(clientLines) > rows {
		rows = len(clientLines)
	}
	pdf.SetXY(10, blockY+float64(rows)*6)
	pdf.Ln(8)

	// Period and dates
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(40, 8, fmt.Sprintf("Billing period: %s - %s", rec.DateFrom, rec.DateTo))
	pdf.Ln(6)
	pdf.Cell(40, 8, fmt.Sprintf("Issued: %s", rec.IssueDate))
	pdf.Ln(6)
	if rec.DeliveryDate != nil {
		pdf.Cell(40, 8, fmt.Sprintf("Delivered: %s", *rec.DeliveryDate))
		pdf.Ln(6)
	}
	if rec.DueDate != nil {
		pdf.Cell(40, 8, fmt.Sprintf("Due: %s", *rec.DueDate))
		pdf.Ln(6)
	}
	pdf.Ln(6)

	// Table headers - widths fit A4 (total ~190mm)
	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(90, 8, "Description", "1", 0, "C", false, 0, "")
	pdf.CellFormat(25, 8, "Quantity", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 8, "Unit", "1", 0, "C", false, 0, "")
	pdf.CellFormat(27, 8, "Unit price", "1", 0, "C", false, 0, "")
	pdf.CellFormat(28, 8, "Total", "1", 1, "C", false, 0, "")

	// Table rows
	pdf.SetFont("Arial", "", 9)
	for _, line := range rec.Deliveries {
		pdf.CellFormat(90, 8, line.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(25, 8, line.Quantity.String(), "1", 0, "R", false, 0, "")
		pdf.CellFormat(20, 8, line.Unit, "1", 0, "C", false, 0, "")
		pdf.CellFormat(27, 8, line.UnitPrice.String(), "1", 0, "R", false, 0, "")
		total := ""
		if line.Total != nil {
			total = line.Total.String()
		}
		pdf.CellFormat(28, 8, total, "1", 1, "R", false, 0, "")
	}

	// Grand total
	pdf.Ln(5)
	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(162, 10, "Total:")
	grandTotal := ""
	if rec.Total != nil {
		grandTotal = rec.Total.String()
	}
	pdf.CellFormat(28, 10, grandTotal, "", 1, "R", false, 0, "")

	return pdf.OutputFileAndClose(outPath)
}

// TasksPDF writes the completed-task attachment for an invoice period.
func TasksPDF(rec models.Record, tasks []models.Task, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 16)

	pdf.Cell(40, 10, fmt.Sprintf("Completed tasks %s - %s", rec.DateFrom, rec.DateTo))
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(25, 8, "Day", "1", 0, "C", false, 0, "")
	pdf.CellFormat(110, 8, "Task", "1", 0, "C", false, 0, "")
	pdf.CellFormat(55, 8, "Projects", "1", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 8)
	for _, task := range tasks {
		name := strings.ReplaceAll(task.Name, "​", "")
		lines := wrapText(name, 70)
		rowHeight := float64(len(lines)) * 6
		if rowHeight < 6 {
			rowHeight = 6
		}

		pdf.CellFormat(25, rowHeight, task.CompletedAtDay, "1", 0, "C", false, 0, "")

		currentX := pdf.GetX()
		currentY := pdf.GetY()
		pdf.Rect(currentX, currentY, 110, rowHeight, "D")
		for i, line := range lines {
			pdf.SetXY(currentX+1, currentY+float64(i)*6+1)
			pdf.Cell(108, 6, line)
		}

		pdf.SetXY(currentX+110, currentY)
		pdf.CellFormat(55, rowHeight, task.ProjectsString, "1", 1, "L", false, 0, "")
	}

	return pdf.OutputFileAndClose(outPath)
}

// partyLines flattens the merged party fields with the given prefix into
// display lines, name first, then the remaining fields in stable order.
func partyLines(extra map[string]any, prefix string) []string {
	var keys []string
	for k := range extra {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var lines []string
	if name, ok := extra[prefix+"name"]; ok {
		lines = append(lines, fmt.Sprintf("%v", name))
	}
	for _, k := range keys {
		if k == prefix+"name" {
			continue
		}
		lines = append(lines, fmt.Sprintf("%v", extra[k]))
	}
	return lines
}

func wrapText(text string, maxChars int) []string {
	if len(text) <= maxChars {
		return []string{text}
	}

	words := strings.Fields(text)
	var lines []string
	var currentLine string

	for _, word := range words {
		testLine := currentLine
		if testLine != "" {
			testLine += " "
		}
		testLine += word

		if len(testLine) <= maxChars {
			currentLine = testLine
		} else {
			if currentLine != "" {
				lines = append(lines, currentLine)
			}
			currentLine = word
		}
	}

	if currentLine != "" {
		lines = append(lines, currentLine)
	}

	return lines
}
