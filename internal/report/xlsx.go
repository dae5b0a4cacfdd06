package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Alijeyrad/taadol_backend/internal/commission"
)

const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var lineHeader = []any{
	"Project", "Section", "Item", "Field", "Income", "Weight (%)", "System (%)", "Commission",
}

var breakdownHeader = []any{
	"Section", "Item", "Field", "Active", "Assignee", "Income",
	"Original weight (%)", "Weight (%)", "Commission", "System share",
}

// newSheet creates a workbook whose only sheet is named name and reads
// right to left.
func newSheet(name string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName(f.GetSheetName(0), name); err != nil {
		f.Close()
		return nil, err
	}
	rtl := true
	if err := f.SetSheetView(name, 0, &excelize.ViewOptions{RightToLeft: &rtl}); err != nil {
		f.Close()
		return nil, err
	}
	return f, nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func finish(f *excelize.File) ([]byte, error) {
	defer f.Close()
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// MemberLinesXLSX renders a member's commission lines with a total row.
func MemberLinesXLSX(memberName string, lines []commission.Line) ([]byte, error) {
	const sheet = "Commissions"
	f, err := newSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create workbook: %w", err)
	}

	if err := writeRow(f, sheet, 1, []any{memberName}); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeRow(f, sheet, 2, lineHeader); err != nil {
		f.Close()
		return nil, err
	}
	row := 3
	for _, l := range lines {
		values := []any{l.ProjectName, l.SectionName, l.ItemName, l.FieldName, l.Income, l.Weight, l.SystemPercent, l.Commission}
		if err := writeRow(f, sheet, row, values); err != nil {
			f.Close()
			return nil, err
		}
		row++
	}
	total := make([]any, len(lineHeader))
	total[0] = "Total"
	total[len(total)-1] = commission.Total(lines)
	if err := writeRow(f, sheet, row, total); err != nil {
		f.Close()
		return nil, err
	}
	return finish(f)
}

// ProjectBreakdownXLSX renders every field of a project breakdown. Assignee
// ids are replaced by names when present in names.
func ProjectBreakdownXLSX(b commission.ProjectBreakdown, names map[string]string) ([]byte, error) {
	const sheet = "Breakdown"
	f, err := newSheet(sheet)
	if err != nil {
		return nil, fmt.Errorf("create workbook: %w", err)
	}

	if err := writeRow(f, sheet, 1, []any{b.ProjectName}); err != nil {
		f.Close()
		return nil, err
	}
	if err := writeRow(f, sheet, 2, breakdownHeader); err != nil {
		f.Close()
		return nil, err
	}
	row := 3
	for _, u := range b.Units {
		for _, fb := range u.Fields {
			assignee := fb.AssignedMemberID
			if n, ok := names[assignee]; ok {
				assignee = n
			}
			values := []any{
				u.SectionName, u.ItemName, fb.FieldName, fb.IsActive, assignee, fb.Income,
				fb.OriginalWeight, fb.Weight, fb.Commission, fb.SystemShare,
			}
			if err := writeRow(f, sheet, row, values); err != nil {
				f.Close()
				return nil, err
			}
			row++
		}
	}
	total := make([]any, len(breakdownHeader))
	total[0] = "Total"
	total[len(total)-2] = b.TotalCommission
	total[len(total)-1] = b.TotalSystemShare
	if err := writeRow(f, sheet, row, total); err != nil {
		f.Close()
		return nil, err
	}
	return finish(f)
}
