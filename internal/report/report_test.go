package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/Alijeyrad/taadol_backend/internal/commission"
)

func TestAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567.6, "1,234,568"},
		{-900000, "-900,000"},
	}
	for _, tt := range tests {
		if got := Amount(tt.in); got != tt.want {
			t.Errorf("Amount(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMemberLinesXLSX(t *testing.T) {
	lines := []commission.Line{
		{ProjectName: "Villa", SectionName: "design", FieldName: "a", Income: 1_000_000, Weight: 100, SystemPercent: 10, Commission: 900_000},
		{ProjectName: "Shop", SectionName: "purchasing", ItemName: "Item1", FieldName: "b", Income: 200_000, Weight: 50, Commission: 100_000},
	}

	data, err := MemberLinesXLSX("Sara", lines)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Commissions")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Sara", rows[0][0])
	assert.Equal(t, "Project", rows[1][0])
	assert.Equal(t, "Villa", rows[2][0])
	assert.Equal(t, "Item1", rows[3][2])
	assert.Equal(t, "Total", rows[4][0])
	assert.Equal(t, "1000000", rows[4][len(lineHeader)-1])
}

func TestProjectBreakdownXLSX(t *testing.T) {
	b := commission.ProjectBreakdown{
		ProjectName: "Villa",
		Units: []commission.UnitBreakdown{{
			SectionName: "design",
			Fields: []commission.FieldBreakdown{
				{FieldName: "a", IsActive: true, AssignedMemberID: "m1", Income: 10, Commission: 9, SystemShare: 1},
				{FieldName: "b"},
			},
		}},
		TotalCommission:  9,
		TotalSystemShare: 1,
	}

	data, err := ProjectBreakdownXLSX(b, map[string]string{"m1": "Sara"})
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Breakdown")
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Sara", rows[2][4])
	assert.Equal(t, "Total", rows[4][0])
}

func TestPayslipPDF(t *testing.T) {
	p := commission.AssemblePayslip(commission.Payslip{
		MemberName: "Sara",
		Date:       "1403/07/01",
		BaseSalary: 10_000_000,
		Lines:      []commission.Line{{ProjectName: "Villa", FieldName: "a", Commission: 900_000}},
	})

	data, err := PayslipPDF(p, PDFOptions{CompanyName: "Taadol"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")), "output is not a PDF")
}
