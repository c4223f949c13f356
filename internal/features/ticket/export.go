package ticket

import (
	"context"
	"time"

	"go-support/pkg/utils"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Tickets"

var exportColumns = []string{
	"Ticket Number", "Title", "Status", "Priority", "Type", "Source",
	"Customer", "Customer Email", "Tracking Number", "Created At", "Updated At", "Closed At",
}

// ExportTickets renders the list-tickets view as an xlsx workbook.
func (s *TicketServiceImpl) ExportTickets(ctx context.Context) ([]byte, error) {
	views, err := s.ListTickets(ctx)
	if err != nil {
		return nil, err
	}

	data, err := BuildTicketWorkbook(views)
	if err != nil {
		return nil, utils.NewStoreError("Failed to export tickets", err)
	}
	return data, nil
}

// BuildTicketWorkbook writes one header row and one row per ticket.
func BuildTicketWorkbook(views []TicketView) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), exportSheet); err != nil {
		return nil, err
	}

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, col)
		f.SetCellStyle(exportSheet, cell, cell, headerStyle)
	}

	for rowIdx, view := range views {
		for colIdx, value := range exportRow(view) {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(exportSheet, cell, value)
		}
	}

	for i := range exportColumns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(exportSheet, col, col, 18)
	}

	buffer, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buffer.Bytes(), nil
}

func exportRow(view TicketView) []interface{} {
	var customerName, customerEmail string
	if view.Customers != nil {
		customerName = view.Customers.Name
		customerEmail = stringValue(view.Customers.Email)
	}

	var closedAt string
	if view.ClosedAt != nil {
		closedAt = view.ClosedAt.Format(time.DateTime)
	}

	return []interface{}{
		view.TicketNumber,
		view.Title,
		view.Status,
		view.Priority,
		view.Type,
		view.Source,
		customerName,
		customerEmail,
		stringValue(view.TrackingNumber),
		view.CreatedAt.Format(time.DateTime),
		view.UpdatedAt.Format(time.DateTime),
		closedAt,
	}
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
