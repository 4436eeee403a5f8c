// Package report renders the admin daily report as a PDF document.
package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/campuscanteen/canteen-api/internal/archive"
	"github.com/campuscanteen/canteen-api/internal/order"
)

// Daily renders a one-page summary of an archived day: totals, the
// per-status breakdown, and one row per order.
func Daily(a *archive.DailyArchive, orders []order.Order) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Daily Orders Report", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, fmt.Sprintf("Daily Orders Report - %s", a.Date.Format("2006-01-02")))
	pdf.Ln(14)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Total orders: %d", a.TotalOrders))
	pdf.Ln(7)
	pdf.Cell(0, 7, fmt.Sprintf("Total revenue: %.2f", a.TotalRevenue))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Orders by status")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "", 11)
	for _, row := range []struct {
		label string
		n     int
	}{
		{"Pending", a.OrderCount.Pending},
		{"Preparing", a.OrderCount.Preparing},
		{"Ready", a.OrderCount.Ready},
		{"Delivered", a.OrderCount.Delivered},
		{"Cancelled", a.OrderCount.Cancelled},
	} {
		pdf.Cell(0, 6, fmt.Sprintf("%-10s %d", row.label, row.n))
		pdf.Ln(6)
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.Cell(0, 8, "Orders")
	pdf.Ln(9)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(30, 7, "Number", "1", 0, "", false, 0, "")
	pdf.CellFormat(35, 7, "Student", "1", 0, "", false, 0, "")
	pdf.CellFormat(28, 7, "Status", "1", 0, "", false, 0, "")
	pdf.CellFormat(25, 7, "Payment", "1", 0, "", false, 0, "")
	pdf.CellFormat(25, 7, "Total", "1", 0, "R", false, 0, "")
	pdf.Ln(7)
	pdf.SetFont("Helvetica", "", 10)
	for _, o := range orders {
		pdf.CellFormat(30, 6, o.OrderNumber, "1", 0, "", false, 0, "")
		pdf.CellFormat(35, 6, o.Student.Name, "1", 0, "", false, 0, "")
		pdf.CellFormat(28, 6, string(o.Status), "1", 0, "", false, 0, "")
		pdf.CellFormat(25, 6, o.PaymentMethod, "1", 0, "", false, 0, "")
		pdf.CellFormat(25, 6, fmt.Sprintf("%.2f", o.TotalAmount), "1", 0, "R", false, 0, "")
		pdf.Ln(6)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
