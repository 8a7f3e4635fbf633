package together

import (
	"testing"
	"time"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSince(t *testing.T) {
	start := day(2025, time.September, 13)
	tests := []struct {
		name string
		now  time.Time
		want Counter
	}{
		{"before start", day(2025, time.September, 1), Counter{}},
		{"start day", start, Counter{TotalDays: 0, Months: 0, Days: 0, Started: true}},
		{"same month", day(2025, time.September, 20), Counter{TotalDays: 7, Months: 0, Days: 7, Started: true}},
		{"day borrow", day(2025, time.October, 5), Counter{TotalDays: 22, Months: 0, Days: 22, Started: true}},
		{"exact month", day(2025, time.October, 13), Counter{TotalDays: 30, Months: 1, Days: 0, Started: true}},
		{"month borrow across year", day(2026, time.February, 20), Counter{TotalDays: 160, Months: 5, Days: 7, Started: true}},
		{"both borrows", day(2026, time.January, 2), Counter{TotalDays: 111, Months: 3, Days: 19, Started: true}},
	}
	for _, tt := range tests {
		if got := Since(start, tt.now); got != tt.want {
			t.Fatalf("%s: expected %+v got %+v", tt.name, tt.want, got)
		}
	}
}

func TestSinceCountsPartialDaysDown(t *testing.T) {
	start := day(2025, time.September, 13)
	got := Since(start, start.Add(47*time.Hour))
	if got.TotalDays != 1 {
		t.Fatalf("expected 1 full day, got %d", got.TotalDays)
	}
}

func TestLabel(t *testing.T) {
	if got := (Counter{}).Label(); got != "Em Breve..." {
		t.Fatalf("unexpected label %q", got)
	}
	if got := (Counter{TotalDays: 42, Started: true}).Label(); got != "42 Dias Juntos" {
		t.Fatalf("unexpected label %q", got)
	}
}
