package schema

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Alijeyrad/taadol_backend/internal/catalog"
)

func TestIncomeDetailAmount(t *testing.T) {
	dec, _ := bson.ParseDecimal128("1250.5")

	tests := []struct {
		name  string
		value any
		want  float64
	}{
		{"double", 1500.0, 1500},
		{"int32", int32(42), 42},
		{"int64", int64(9_000_000), 9_000_000},
		{"decimal", dec, 1250.5},
		{"string with separators", " 1,200,000 ", 1_200_000},
		{"garbage string", "n/a", 0},
		{"nil", nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := (IncomeDetail{Value: tt.value}).Amount(); got != tt.want {
				t.Errorf("Amount() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSystemPercentagesBySection(t *testing.T) {
	in := map[string]float64{catalog.Design: 12, catalog.Sales: 5}
	p := SystemPercentagesFrom(in)

	got := p.BySection()
	if got[catalog.Design] != 12 || got[catalog.Sales] != 5 || got[catalog.Purchasing] != 0 {
		t.Errorf("BySection() = %v", got)
	}
	if len(got) != len(catalog.Sections()) {
		t.Errorf("BySection() has %d keys, want one per section", len(got))
	}
}

func TestProjectIncomeProfits(t *testing.T) {
	var p ProjectIncome
	for _, s := range catalog.Sections() {
		p.SetProfit(s.ProfitField, 10)
	}
	p.SumProfits()

	if p.TotalIncome != 60 {
		t.Errorf("TotalIncome = %v, want 60", p.TotalIncome)
	}
}

func TestTimestampsTouch(t *testing.T) {
	var ts Timestamps
	first := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ts.Touch(first)
	ts.Touch(first.Add(time.Hour))

	if !ts.CreatedAt.Equal(first) {
		t.Errorf("CreatedAt = %v, want %v", ts.CreatedAt, first)
	}
	if !ts.UpdatedAt.Equal(first.Add(time.Hour)) {
		t.Errorf("UpdatedAt = %v, want one hour later", ts.UpdatedAt)
	}
}

func TestSystemExpensesTotal(t *testing.T) {
	e := SystemExpenses{StaffSalary: 100, OfficeCosts: 20, EventCosts: 5}
	if e.Total() != 125 {
		t.Errorf("Total() = %v, want 125", e.Total())
	}
}
