package commission

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedistribute(t *testing.T) {
	weights := []SectionWeight{
		{SectionName: "s", FieldName: "a", Weight: 60},
		{SectionName: "s", FieldName: "b", Weight: 30},
		{SectionName: "s", FieldName: "c", Weight: 10},
		{SectionName: "other", FieldName: "a", Weight: 99},
	}
	all := []string{"a", "b", "c"}

	tests := []struct {
		name   string
		active []string
		want   map[string]float64
	}{
		{
			name:   "all active keeps original weights",
			active: []string{"a", "b", "c"},
			want:   map[string]float64{"a": 60, "b": 30, "c": 10},
		},
		{
			name:   "inactive weight spread proportionally",
			active: []string{"a", "b"},
			want:   map[string]float64{"a": 66.66666666666667, "b": 33.333333333333336},
		},
		{
			name:   "single active field takes the whole pool",
			active: []string{"c"},
			want:   map[string]float64{"c": 100},
		},
		{
			name:   "no active fields",
			active: nil,
			want:   map[string]float64{},
		},
		{
			name:   "active names outside all are ignored",
			active: []string{"a", "zzz"},
			want:   map[string]float64{"a": 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Redistribute("s", all, tt.active, weights)
			assert.Len(t, got, len(tt.want))
			for f, w := range tt.want {
				assert.InDelta(t, w, got[f], 1e-9, "field %s", f)
			}
		})
	}
}

func TestRedistributeConservesTotal(t *testing.T) {
	weights := []SectionWeight{
		{SectionName: "s", FieldName: "a", Weight: 12.5},
		{SectionName: "s", FieldName: "b", Weight: 7},
		{SectionName: "s", FieldName: "c", Weight: 33},
		{SectionName: "s", FieldName: "d", Weight: 20},
	}
	all := []string{"a", "b", "c", "d"}

	for _, active := range [][]string{
		{"a"}, {"a", "b"}, {"b", "d"}, {"a", "c", "d"}, {"a", "b", "c", "d"},
	} {
		got := Redistribute("s", all, active, weights)
		var sum float64
		for _, w := range got {
			sum += w
		}
		assert.InDelta(t, 72.5, sum, 1e-9, "active %v", active)
	}
}

func TestRedistributeKeepsRatio(t *testing.T) {
	weights := []SectionWeight{
		{SectionName: "s", FieldName: "a", Weight: 15},
		{SectionName: "s", FieldName: "b", Weight: 45},
		{SectionName: "s", FieldName: "c", Weight: 40},
	}
	got := Redistribute("s", []string{"a", "b", "c"}, []string{"a", "b"}, weights)

	assert.InDelta(t, 3.0, got["b"]/got["a"], 1e-9)
}

func TestRedistributeZeroActiveWeight(t *testing.T) {
	weights := []SectionWeight{
		{SectionName: "s", FieldName: "a", Weight: 50},
		{SectionName: "s", FieldName: "b", Weight: 0},
	}
	got := Redistribute("s", []string{"a", "b", "c"}, []string{"b", "c"}, weights)

	if len(got) != 2 || got["b"] != 0 || got["c"] != 0 {
		t.Errorf("Redistribute() = %v, want b and c at 0", got)
	}
}

func TestRedistributeMissingWeightRecord(t *testing.T) {
	weights := []SectionWeight{{SectionName: "s", FieldName: "a", Weight: 40}}
	got := Redistribute("s", []string{"a", "b"}, []string{"a", "b"}, weights)

	if got["a"] != 40 || got["b"] != 0 {
		t.Errorf("Redistribute() = %v, want a=40 b=0", got)
	}
}

func TestRedistributeNoWeights(t *testing.T) {
	got := Redistribute("s", []string{"a", "b"}, []string{"a", "b"}, nil)
	for f, w := range got {
		if w != 0 {
			t.Errorf("Redistribute()[%s] = %v, want 0", f, w)
		}
	}
}

func TestNewWeightTableDuplicates(t *testing.T) {
	table, dups := NewWeightTable([]SectionWeight{
		{SectionName: "s", FieldName: "a", Weight: 10},
		{SectionName: "s", FieldName: "a", Weight: 25},
		{SectionName: "s", FieldName: "b", Weight: 5},
	})

	if len(dups) != 1 {
		t.Fatalf("NewWeightTable() dups = %d, want 1", len(dups))
	}
	if w, _ := table.Weight("s", "a"); w != 25 {
		t.Errorf("Weight(s, a) = %v, want 25 (last write wins)", w)
	}
}
