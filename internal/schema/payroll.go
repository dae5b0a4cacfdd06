package schema

import "go.mongodb.org/mongo-driver/v2/bson"

// EmployeeSalary is unique per (employeeId, date); date is the operator's
// calendar string, e.g. "1403/07/01".
type EmployeeSalary struct {
	ID         bson.ObjectID `bson:"_id,omitempty" json:"id"`
	EmployeeID bson.ObjectID `bson:"employeeId" json:"employee_id"`
	BaseSalary float64       `bson:"baseSalary" json:"base_salary"`
	Additions  float64       `bson:"additions" json:"additions"`
	Deductions float64       `bson:"deductions" json:"deductions"`
	Date       string        `bson:"date" json:"date"`
	Timestamps `bson:",inline"`
}

// SystemExpenses holds one day of running costs.
type SystemExpenses struct {
	ID                 bson.ObjectID `bson:"_id,omitempty" json:"id"`
	Date               string        `bson:"date" json:"date"`
	StaffSalary        float64       `bson:"staffSalary" json:"staff_salary"`
	OfficeCosts        float64       `bson:"officeCosts" json:"office_costs"`
	MaintenanceCosts   float64       `bson:"maintenanceCosts" json:"maintenance_costs"`
	WorkspaceUpgrade   float64       `bson:"workspaceUpgrade" json:"workspace_upgrade"`
	ToolsUpgrade       float64       `bson:"toolsUpgrade" json:"tools_upgrade"`
	AdvertisingCosts   float64       `bson:"advertisingCosts" json:"advertising_costs"`
	DigitalDevelopment float64       `bson:"digitalDevelopment" json:"digital_development"`
	PaperworkCosts     float64       `bson:"paperworkCosts" json:"paperwork_costs"`
	EventCosts         float64       `bson:"eventCosts" json:"event_costs"`
	Timestamps         `bson:",inline"`
}

func (e SystemExpenses) Total() float64 {
	return e.StaffSalary + e.OfficeCosts + e.MaintenanceCosts + e.WorkspaceUpgrade +
		e.ToolsUpgrade + e.AdvertisingCosts + e.DigitalDevelopment + e.PaperworkCosts + e.EventCosts
}

type GuestReferral struct {
	ID          bson.ObjectID `bson:"_id,omitempty" json:"id"`
	FullName    string        `bson:"fullName" json:"full_name"`
	ReferralFee float64       `bson:"referralFee" json:"referral_fee"`
	Description string        `bson:"description,omitempty" json:"description,omitempty"`
	DateAdded   string        `bson:"dateAdded" json:"date_added"`
	Timestamps  `bson:",inline"`
}
