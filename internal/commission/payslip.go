package commission

// Payslip is one member's pay for one salary date.
type Payslip struct {
	MemberID   string  `json:"member_id"`
	MemberName string  `json:"member_name"`
	Position   string  `json:"position,omitempty"`
	Date       string  `json:"date"`
	BaseSalary float64 `json:"base_salary"`
	Additions  float64 `json:"additions"`
	Deductions float64 `json:"deductions"`
	Lines      []Line  `json:"lines"`
	Commission int64   `json:"commission"`
	// TotalPayable is base + additions - deductions + commission.
	TotalPayable float64 `json:"total_payable"`
}

// AssemblePayslip totals the salary components with the member's lines.
func AssemblePayslip(p Payslip) Payslip {
	if p.Lines == nil {
		p.Lines = []Line{}
	}
	p.Commission = Total(p.Lines)
	p.TotalPayable = p.BaseSalary + p.Additions - p.Deductions + float64(p.Commission)
	return p
}
