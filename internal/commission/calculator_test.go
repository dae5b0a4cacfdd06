package commission

import "testing"

func TestFieldCommission(t *testing.T) {
	tests := []struct {
		name    string
		income  float64
		weight  float64
		percent float64
		want    int64
	}{
		{"design scenario", 1_000_000, 100, 10, 900_000},
		{"purchasing scenario", 200_000, 50, 0, 100_000},
		{"zero income", 0, 50, 10, 0},
		{"negative income", -500, 50, 10, 0},
		{"zero weight", 1_000_000, 0, 10, 0},
		{"rounds half away from zero", 1, 50, 0, 1},
		{"rounds down below half", 1, 40, 0, 0},
		{"house keeps everything", 1_000_000, 100, 100, 0},
		{"percent above 100 clamped", 1_000_000, 100, 150, 0},
		{"negative percent clamped", 1_000, 100, -20, 1_000},
		{"fractional weight", 1_000_000, 66.66666666666667, 10, 600_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FieldCommission(tt.income, tt.weight, tt.percent); got != tt.want {
				t.Errorf("FieldCommission(%v, %v, %v) = %d, want %d", tt.income, tt.weight, tt.percent, got, tt.want)
			}
		})
	}
}

func TestFieldCommissionMonotonic(t *testing.T) {
	prev := FieldCommission(100_000, 30, 10)
	for income := 200_000.0; income <= 1_000_000; income += 100_000 {
		got := FieldCommission(income, 30, 10)
		if got <= prev {
			t.Fatalf("FieldCommission(%v) = %d, not above %d", income, got, prev)
		}
		prev = got
	}

	prev = FieldCommission(1_000_000, 30, 0)
	for pct := 10.0; pct <= 90; pct += 10 {
		got := FieldCommission(1_000_000, 30, pct)
		if got >= prev {
			t.Fatalf("FieldCommission(percent %v) = %d, not below %d", pct, got, prev)
		}
		prev = got
	}
}

func TestSystemShare(t *testing.T) {
	if got := SystemShare(1_000_000, 100, 10); got != 100_000 {
		t.Errorf("SystemShare() = %d, want 100000", got)
	}
	if got := SystemShare(0, 100, 10); got != 0 {
		t.Errorf("SystemShare() with no income = %d, want 0", got)
	}
	// the two parts add back up to the weighted income
	income, weight, pct := 777_777.0, 35.0, 12.0
	sum := FieldCommission(income, weight, pct) + SystemShare(income, weight, pct)
	if sum < 272_221 || sum > 272_222 {
		t.Errorf("commission + share = %d, want about 272222", sum)
	}
}

func TestNetOfSystem(t *testing.T) {
	tests := []struct {
		value, percent float64
		want           int64
	}{
		{1_000_000, 10, 900_000},
		{1_000, 0, 1_000},
		{333, 50, 167},
		{0, 20, 0},
	}
	for _, tt := range tests {
		if got := NetOfSystem(tt.value, tt.percent); got != tt.want {
			t.Errorf("NetOfSystem(%v, %v) = %d, want %d", tt.value, tt.percent, got, tt.want)
		}
	}
}
