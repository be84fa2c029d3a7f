package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/xuri/excelize/v2"
	"github.com/yukikurage/shift-roster-api/internal/auth"
	"github.com/yukikurage/shift-roster-api/internal/breakpolicy"
	"github.com/yukikurage/shift-roster-api/internal/models"
)

const (
	ShiftsSheet = "Shifts"
	TotalsSheet = "Totals"

	// XLSXContentType is the media type of an exported workbook.
	XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var (
	shiftsHeader = []interface{}{"Date", "Staff", "Email", "Role", "Start", "End", "Break (min)", "Paid hours", "Notes"}
	totalsHeader = []interface{}{"Staff", "Email", "Shifts", "Paid hours"}
)

// RosterExport is a rendered roster workbook.
type RosterExport struct {
	Filename string
	Data     []byte
}

type staffTotal struct {
	name   string
	email  string
	shifts int
	hours  float64
}

// Export renders a roster as an XLSX workbook: one row per shift on the
// Shifts sheet and scheduled paid hours per staff member on the Totals sheet.
func (s *RosterService) Export(ctx context.Context, p *auth.Principal, id uint64) (*RosterExport, error) {
	if err := auth.Authorize(p, auth.RequireAdmin()); err != nil {
		return nil, err
	}

	roster, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	data, err := buildRosterWorkbook(roster)
	if err != nil {
		return nil, fmt.Errorf("failed to render roster %d: %w", roster.ID, err)
	}

	return &RosterExport{
		Filename: fmt.Sprintf("roster-%s.xlsx", roster.WeekStart.Format("2006-01-02")),
		Data:     data,
	}, nil
}

func buildRosterWorkbook(roster *models.Roster) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ShiftsSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(TotalsSheet); err != nil {
		return nil, err
	}

	if err := f.SetSheetRow(ShiftsSheet, "A1", &shiftsHeader); err != nil {
		return nil, err
	}

	totals := make(map[uint64]*staffTotal)
	for i, sh := range roster.Shifts {
		hours := breakpolicy.PaidHours(sh.StartTime, sh.EndTime, sh.BreakMinutes)
		notes := ""
		if sh.Notes != nil {
			notes = *sh.Notes
		}

		row := []interface{}{
			sh.Date.Format("2006-01-02"),
			sh.Staff.Name,
			sh.Staff.Email,
			sh.Role,
			sh.StartTime.Format("15:04"),
			sh.EndTime.Format("15:04"),
			sh.BreakMinutes,
			hours,
			notes,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(ShiftsSheet, cell, &row); err != nil {
			return nil, err
		}

		t, ok := totals[sh.StaffID]
		if !ok {
			t = &staffTotal{name: sh.Staff.Name, email: sh.Staff.Email}
			totals[sh.StaffID] = t
		}
		t.shifts++
		t.hours += hours
	}

	if err := f.SetSheetRow(TotalsSheet, "A1", &totalsHeader); err != nil {
		return nil, err
	}

	ordered := make([]*staffTotal, 0, len(totals))
	for _, t := range totals {
		ordered = append(ordered, t)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].name != ordered[j].name {
			return ordered[i].name < ordered[j].name
		}
		return ordered[i].email < ordered[j].email
	})

	for i, t := range ordered {
		row := []interface{}{t.name, t.email, t.shifts, t.hours}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(TotalsSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
