package income

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/Alijeyrad/taadol_backend/internal/catalog"
	"github.com/Alijeyrad/taadol_backend/internal/commission"
	"github.com/Alijeyrad/taadol_backend/internal/schema"
)

func TestComputeProfits(t *testing.T) {
	design := catalog.Fields(catalog.Design)
	purchase := catalog.Fields(catalog.Purchasing)

	d0 := catalog.IncomeKey(catalog.Design, "", design[0])
	d1 := catalog.IncomeKey(catalog.Design, "", design[1])
	d2 := catalog.IncomeKey(catalog.Design, "", design[2])
	p0 := catalog.IncomeKey(catalog.Purchasing, "Item1", purchase[0])

	in := schema.ProjectIncome{Details: map[string]schema.IncomeDetail{
		d0:           {Value: 1_000_000.0, IsActive: true},
		d1:           {Value: "500,000", IsActive: true},
		d2:           {Value: 999.0, IsActive: false},
		p0:           {Value: int32(200_000), IsActive: true},
		"legacy_key": {Value: 5.0, IsActive: true},
	}}

	ComputeProfits(&in, commission.Percentages{catalog.Design: 10})

	assert.Equal(t, 1_350_000.0, in.DesignProfit)
	assert.Equal(t, 200_000.0, in.PurchaseProfit)
	assert.Zero(t, in.SalesProfit)
	assert.Equal(t, 1_550_000.0, in.TotalIncome)
}

func TestMerge(t *testing.T) {
	cur := schema.ProjectIncome{Details: map[string]schema.IncomeDetail{
		"a": {Value: 1.0, IsActive: true},
		"b": {Value: 2.0, IsActive: true},
	}}

	merged := Merge(cur, SaveRequest{Entries: map[string]Entry{"b": {Value: 3, IsActive: false}, "c": {Value: 4, IsActive: true}}})
	require.Len(t, merged.Details, 3)
	assert.Equal(t, 3.0, merged.Details["b"].Amount())
	assert.False(t, merged.Details["b"].IsActive)
	// the stored map is left alone
	assert.Equal(t, 2.0, cur.Details["b"].Amount())

	replaced := Merge(cur, SaveRequest{Entries: map[string]Entry{"c": {Value: 4}}, Replace: true})
	assert.Len(t, replaced.Details, 1)
}

func TestValidateEntries(t *testing.T) {
	good := catalog.IncomeKey(catalog.Consultation, "", catalog.Fields(catalog.Consultation)[0])

	assert.NoError(t, validateEntries(map[string]Entry{good: {Value: 10}}))
	if err := validateEntries(map[string]Entry{"nope_x": {Value: 1}}); !errors.Is(err, ErrUnknownKey) {
		t.Errorf("validateEntries(unknown) error = %v", err)
	}
	if err := validateEntries(map[string]Entry{good: {Value: -1}}); !errors.Is(err, ErrNegativeValue) {
		t.Errorf("validateEntries(negative) error = %v", err)
	}
}

func TestTaxShares(t *testing.T) {
	a, b, c, d := bson.NewObjectID(), bson.NewObjectID(), bson.NewObjectID(), bson.NewObjectID()

	got := TaxShares(map[bson.ObjectID]float64{a: 300, b: 600, c: 100, d: 0})
	require.Len(t, got, 3)

	byID := map[bson.ObjectID]float64{}
	for _, s := range got {
		byID[s.ProjectID] = s.TaxPercentage
	}
	assert.Equal(t, 30.0, byID[a])
	assert.Equal(t, 60.0, byID[b])
	assert.Equal(t, 10.0, byID[c])
	assert.NotContains(t, byID, d)
}

func TestTaxSharesRounding(t *testing.T) {
	a, b, c := bson.NewObjectID(), bson.NewObjectID(), bson.NewObjectID()
	got := TaxShares(map[bson.ObjectID]float64{a: 1, b: 1, c: 1})
	for _, s := range got {
		assert.Equal(t, 33.0, s.TaxPercentage)
	}
	assert.Nil(t, TaxShares(map[bson.ObjectID]float64{a: 0}))
}
