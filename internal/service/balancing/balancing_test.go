package balancing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Alijeyrad/taadol_backend/internal/catalog"
	"github.com/Alijeyrad/taadol_backend/internal/commission"
)

func TestValidateWeights(t *testing.T) {
	f := catalog.Fields(catalog.Design)

	tests := []struct {
		name    string
		section string
		ws      []FieldWeight
		wantErr error
	}{
		{"ok", catalog.Design, []FieldWeight{{f[0], 60}, {f[1], 40}}, nil},
		{"slug accepted", "design", []FieldWeight{{f[0], 10}}, nil},
		{"empty set", catalog.Design, nil, nil},
		{"unknown section", "gardening", nil, ErrUnknownSection},
		{"unknown field", catalog.Design, []FieldWeight{{"nope", 1}}, ErrUnknownField},
		{"field of another section", catalog.Design, []FieldWeight{{catalog.Fields(catalog.Sales)[0], 1}}, ErrUnknownField},
		{"duplicate", catalog.Design, []FieldWeight{{f[0], 10}, {f[0], 20}}, ErrDuplicateField},
		{"negative", catalog.Design, []FieldWeight{{f[0], -1}}, ErrWeightRange},
		{"over 100", catalog.Design, []FieldWeight{{f[0], 101}}, ErrWeightRange},
		{"sum over 100", catalog.Design, []FieldWeight{{f[0], 60}, {f[1], 50}}, ErrWeightSum},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			name, _, err := ValidateWeights(tt.section, tt.ws)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ValidateWeights() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && name != catalog.Design {
				t.Errorf("ValidateWeights() section = %q, want %q", name, catalog.Design)
			}
		})
	}
}

func TestValidateWeightsSumTolerance(t *testing.T) {
	f := catalog.Fields(catalog.Design)
	_, _, err := ValidateWeights(catalog.Design, []FieldWeight{
		{f[0], 33.333333333}, {f[1], 33.333333333}, {f[2], 33.333333334},
	})
	assert.NoError(t, err)
}

func TestValidatePercentages(t *testing.T) {
	got, err := ValidatePercentages(map[string]float64{"design": 10, catalog.Sales: 5})
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{catalog.Design: 10, catalog.Sales: 5}, got)

	_, err = ValidatePercentages(map[string]float64{"design": 120})
	assert.ErrorIs(t, err, ErrPercentageRange)

	_, err = ValidatePercentages(map[string]float64{"x": 1})
	assert.ErrorIs(t, err, ErrUnknownSection)
}

func TestGroupWeights(t *testing.T) {
	f := catalog.Fields(catalog.Design)
	table, _ := commission.NewWeightTable([]commission.SectionWeight{
		{SectionName: catalog.Design, FieldName: f[0], Weight: 60},
		{SectionName: catalog.Design, FieldName: f[1], Weight: 40},
	})

	got := groupWeights(table)
	require.Len(t, got, len(catalog.Names()))
	for _, sw := range got {
		if sw.SectionName != catalog.Design {
			assert.Zero(t, sw.Total, sw.SectionName)
			continue
		}
		assert.Equal(t, 100.0, sw.Total)
		assert.Equal(t, 60.0, sw.Weights[0].Weight)
		assert.Len(t, sw.Weights, len(f))
	}
}

func TestMergeWeight(t *testing.T) {
	f := catalog.Fields(catalog.Design)
	stored := []FieldWeight{{f[0], 60}, {f[1], 40}}

	got := MergeWeight(stored, FieldWeight{f[1], 30})
	assert.Equal(t, []FieldWeight{{f[0], 60}, {f[1], 30}}, got)
	assert.Equal(t, 40.0, stored[1].Weight)

	got = MergeWeight(stored, FieldWeight{f[2], 5})
	assert.Equal(t, []FieldWeight{{f[0], 60}, {f[1], 40}, {f[2], 5}}, got)

	// raising one field past what the others leave fails as a whole section
	_, _, err := ValidateWeights(catalog.Design, MergeWeight(stored, FieldWeight{f[2], 1}))
	assert.ErrorIs(t, err, ErrWeightSum)
}
