package schema

import (
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// IncomeDetail is one field's income. Older records hold the value as a
// string or integer, so it is decoded loosely and read through Amount.
type IncomeDetail struct {
	Value    any  `bson:"value" json:"value"`
	IsActive bool `bson:"isActive" json:"is_active"`
}

// Amount returns the numeric value, 0 when it cannot be interpreted.
func (d IncomeDetail) Amount() float64 {
	switch v := d.Value.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int32:
		return float64(v)
	case int64:
		return float64(v)
	case int:
		return float64(v)
	case bson.Decimal128:
		f, err := strconv.ParseFloat(v.String(), 64)
		if err != nil {
			return 0
		}
		return f
	case string:
		f, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(v), ",", ""), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// ProjectIncome stores per-field income under catalog income keys, plus the
// cached per-section profit net of the house cut.
type ProjectIncome struct {
	ID                  bson.ObjectID           `bson:"_id,omitempty" json:"id"`
	ProjectID           bson.ObjectID           `bson:"projectId" json:"project_id"`
	PurchaseProfit      float64                 `bson:"purchaseProfit" json:"purchase_profit"`
	DesignProfit        float64                 `bson:"designProfit" json:"design_profit"`
	CollaborationProfit float64                 `bson:"collaborationProfit" json:"collaboration_profit"`
	ContractingProfit   float64                 `bson:"contractingProfit" json:"contracting_profit"`
	SalesProfit         float64                 `bson:"salesProfit" json:"sales_profit"`
	ConsultationProfit  float64                 `bson:"consultationProfit" json:"consultation_profit"`
	Details             map[string]IncomeDetail `bson:"details" json:"details"`
	TotalIncome         float64                 `bson:"totalIncome" json:"total_income"`
	TaxShare            float64                 `bson:"taxShare" json:"tax_share"`
	Timestamps          `bson:",inline"`
}

// SetProfit stores a subtotal under the section's profit field name.
func (p *ProjectIncome) SetProfit(field string, v float64) {
	switch field {
	case "purchaseProfit":
		p.PurchaseProfit = v
	case "designProfit":
		p.DesignProfit = v
	case "collaborationProfit":
		p.CollaborationProfit = v
	case "contractingProfit":
		p.ContractingProfit = v
	case "salesProfit":
		p.SalesProfit = v
	case "consultationProfit":
		p.ConsultationProfit = v
	}
}

// SumProfits recomputes TotalIncome from the six subtotals.
func (p *ProjectIncome) SumProfits() {
	p.TotalIncome = p.PurchaseProfit + p.DesignProfit + p.CollaborationProfit +
		p.ContractingProfit + p.SalesProfit + p.ConsultationProfit
}

type ProjectTax struct {
	ID               bson.ObjectID `bson:"_id,omitempty" json:"id"`
	ProjectID        bson.ObjectID `bson:"projectId" json:"project_id"`
	TaxPercentage    float64       `bson:"taxPercentage" json:"tax_percentage"`
	TotalIncome      float64       `bson:"totalIncome" json:"total_income"`
	LastCalculatedAt time.Time     `bson:"lastCalculatedAt" json:"last_calculated_at"`
	Timestamps       `bson:",inline"`
}
