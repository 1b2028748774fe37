package service

import (
	"context"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Srinu-likitha/store-management-mvp/internal/store/repository"
)

var invoiceExportHeaders = []string{
	"Serial No", "MRN No", "GIN No", "Date of Receipt", "Vendor",
	"Invoice No", "Invoice Date", "Category", "CGST", "SGST",
	"Transportation", "Total Cost", "Approved", "Paid",
}

// ExportService builds the invoice register workbook.
type ExportService struct {
	invoices *repository.MaterialInvoiceRepository
}

func NewExportService(invoices *repository.MaterialInvoiceRepository) *ExportService {
	return &ExportService{invoices: invoices}
}

// InvoiceRegister returns one xlsx row per invoice, newest first.
func (s *ExportService) InvoiceRegister(ctx context.Context) (*excelize.File, string, error) {
	invoices, err := s.invoices.List(ctx)
	if err != nil {
		return nil, "", fmt.Errorf("list invoices: %w", err)
	}

	f := excelize.NewFile()
	sheet := "Invoices"
	f.SetSheetName("Sheet1", sheet)

	boldStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})

	for i, h := range invoiceExportHeaders {
		col, _ := excelize.ColumnNumberToName(i + 1)
		cell := col + "1"
		f.SetCellValue(sheet, cell, h)
		f.SetCellStyle(sheet, cell, cell, boldStyle)
	}

	for rowIdx, inv := range invoices {
		row := rowIdx + 2
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), inv.SerialNumber)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), inv.MRNNumber)
		f.SetCellValue(sheet, fmt.Sprintf("C%d", row), inv.GINNumber)
		f.SetCellValue(sheet, fmt.Sprintf("D%d", row), inv.DateOfReceipt.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("E%d", row), inv.VendorName)
		f.SetCellValue(sheet, fmt.Sprintf("F%d", row), inv.InvoiceNumber)
		f.SetCellValue(sheet, fmt.Sprintf("G%d", row), inv.InvoiceDate.Format("2006-01-02"))
		f.SetCellValue(sheet, fmt.Sprintf("H%d", row), string(inv.MaterialCategory))
		f.SetCellValue(sheet, fmt.Sprintf("I%d", row), inv.CGST.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("J%d", row), inv.SGST.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("K%d", row), inv.TransportationCharges.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("L%d", row), inv.TotalCost.InexactFloat64())
		f.SetCellValue(sheet, fmt.Sprintf("M%d", row), inv.Approved)
		f.SetCellValue(sheet, fmt.Sprintf("N%d", row), inv.Paid)
	}

	colWidths := []float64{12, 12, 12, 14, 24, 14, 14, 12, 10, 10, 14, 12, 9, 9}
	for i, w := range colWidths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheet, col, col, w)
	}

	filename := fmt.Sprintf("material-invoices-%s.xlsx", time.Now().Format("20060102"))
	return f, filename, nil
}
