package expense

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRecordFor(t *testing.T) {
	at := time.Date(2024, 10, 5, 23, 30, 0, 0, time.FixedZone("IRST", 3*3600+1800))
	e := recordFor(at, SaveRequest{StaffSalary: 100, EventCosts: 50})

	if e.Date != "2024-10-05" {
		t.Errorf("Date = %q, want 2024-10-05", e.Date)
	}
	if got := summarize(e).Total; got != 150 {
		t.Errorf("Total = %v, want 150", got)
	}
}

func TestSaveTodayRejectsNegative(t *testing.T) {
	s := &expenseService{now: time.Now}
	_, err := s.SaveToday(context.Background(), SaveRequest{OfficeCosts: -1})
	if !errors.Is(err, ErrNegativeAmount) {
		t.Errorf("SaveToday() error = %v, want ErrNegativeAmount", err)
	}
}
