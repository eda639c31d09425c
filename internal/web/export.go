package web

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/gotrs-io/helpdesk-console/internal/markup"
	"github.com/gotrs-io/helpdesk-console/internal/models"
)

const (
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	exportSheet     = "Tickets"
)

var exportHeader = []interface{}{
	"ID", "Title", "Type", "Status", "Priority", "Reporter", "Agent", "Created", "Due By", "Closed", "SLA Met",
}

func exportTime(ts models.Timestamp, loc *time.Location) interface{} {
	if ts.IsZero() {
		return ""
	}
	return ts.Time.In(loc)
}

func exportRow(t models.Ticket, loc *time.Location) []interface{} {
	agent := ""
	if t.Assigned() {
		agent = markup.PlainText(t.Agent.Name)
	}
	var closed interface{} = ""
	if t.ClosedAt != nil {
		closed = exportTime(*t.ClosedAt, loc)
	}
	sla := ""
	if t.SLAMet != nil {
		sla = "No"
		if *t.SLAMet {
			sla = "Yes"
		}
	}
	return []interface{}{
		t.ID,
		markup.PlainText(t.Title),
		t.Type.Label(),
		t.Status.Label(),
		t.Priority.Label(),
		markup.PlainText(t.Reporter.Name),
		agent,
		exportTime(t.CreatedAt, loc),
		exportTime(t.DueBy, loc),
		closed,
		sla,
	}
}

// writeTicketsXLSX writes tickets as a single-sheet workbook. Text cells
// carry plain text only.
func writeTicketsXLSX(w io.Writer, tickets []models.Ticket, loc *time.Location) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return fmt.Errorf("name sheet: %w", err)
	}
	if err := f.SetSheetRow(exportSheet, "A1", &exportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	if err := f.SetCellStyle(exportSheet, "A1", "K1", bold); err != nil {
		return fmt.Errorf("header style: %w", err)
	}
	dates, err := f.NewStyle(&excelize.Style{NumFmt: 22})
	if err != nil {
		return fmt.Errorf("date style: %w", err)
	}

	for i, t := range tickets {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := exportRow(t, loc)
		if err := f.SetSheetRow(exportSheet, cell, &row); err != nil {
			return fmt.Errorf("write ticket %d: %w", t.ID, err)
		}
	}
	if len(tickets) > 0 {
		last := fmt.Sprintf("J%d", len(tickets)+1)
		if err := f.SetCellStyle(exportSheet, "H2", last, dates); err != nil {
			return fmt.Errorf("date style: %w", err)
		}
	}
	if err := f.SetColWidth(exportSheet, "B", "B", 40); err != nil {
		return err
	}
	if err := f.SetColWidth(exportSheet, "F", "J", 18); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
