package report

import (
	"bytes"
	"fmt"

	"github.com/phpdave11/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/Alijeyrad/taadol_backend/config"
	"github.com/Alijeyrad/taadol_backend/internal/commission"
)

const PDFContentType = "application/pdf"

// PDFOptions selects the title and font of rendered documents. Without a
// FontPath the core Helvetica font is used, which cannot draw Persian
// glyphs.
type PDFOptions struct {
	CompanyName string
	FontPath    string
	FontFamily  string
}

func PDFOptionsFrom(cfg config.ReportsConfig) PDFOptions {
	return PDFOptions{CompanyName: cfg.CompanyName, FontPath: cfg.FontPath, FontFamily: cfg.FontFamily}
}

// Amount formats a money value with thousands separators.
func Amount(v float64) string {
	s := decimal.NewFromFloat(v).Round(0).String()
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg, s = true, s[1:]
	}
	var b []byte
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			b = append(b, ',')
		}
		b = append(b, s[i])
	}
	if neg {
		return "-" + string(b)
	}
	return string(b)
}

// PayslipPDF renders an assembled payslip.
func PayslipPDF(p commission.Payslip, opts PDFOptions) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Payslip "+p.Date, true)

	family := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if opts.FontPath != "" {
		family = opts.FontFamily
		if family == "" {
			family = "Payslip"
		}
		pdf.AddUTF8Font(family, "", opts.FontPath)
		tr = func(s string) string { return s }
	}
	pdf.AddPage()

	pdf.SetFont(family, "", 16)
	pdf.CellFormat(0, 10, tr(opts.CompanyName), "", 1, "C", false, 0, "")
	pdf.SetFont(family, "", 12)
	pdf.CellFormat(0, 8, tr("Payslip "+p.Date), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	row := func(label, value string) {
		pdf.CellFormat(60, 7, tr(label), "1", 0, "", false, 0, "")
		pdf.CellFormat(0, 7, tr(value), "1", 1, "", false, 0, "")
	}
	row("Member", p.MemberName)
	if p.Position != "" {
		row("Position", p.Position)
	}
	row("Base salary", Amount(p.BaseSalary))
	row("Additions", Amount(p.Additions))
	row("Deductions", Amount(p.Deductions))
	row("Commission", Amount(float64(p.Commission)))
	row("Total payable", Amount(p.TotalPayable))

	if len(p.Lines) > 0 {
		pdf.Ln(6)
		pdf.SetFont(family, "", 10)
		widths := []float64{45, 30, 30, 50, 35}
		for i, h := range []string{"Project", "Section", "Item", "Field", "Commission"} {
			pdf.CellFormat(widths[i], 7, tr(h), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)
		for _, l := range p.Lines {
			cells := []string{l.ProjectName, l.SectionName, l.ItemName, l.FieldName, Amount(float64(l.Commission))}
			for i, c := range cells {
				pdf.CellFormat(widths[i], 7, tr(c), "1", 0, "", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render payslip: %w", err)
	}
	return buf.Bytes(), nil
}
