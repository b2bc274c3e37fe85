package recurrence

import (
	"testing"
	"time"
)

func intPtr(v int) *int { return &v }

func TestNextRun_Manual(t *testing.T) {
	_, ok := NextRun(Rule{Kind: Manual}, time.Now())
	if ok {
		t.Fatal("manual rule should produce no schedule")
	}
}

func TestNextRun_Once_Verbatim(t *testing.T) {
	at := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	// Even a past instant is returned as-is; the due-check treats it as due.
	next, ok := NextRun(Rule{Kind: Once, At: &at}, now)
	if !ok {
		t.Fatal("expected a schedule")
	}
	if !next.Equal(at) {
		t.Errorf("got %v, want %v", next, at)
	}
}

func TestNextRun_Once_MissingInstant(t *testing.T) {
	_, ok := NextRun(Rule{Kind: Once}, time.Now())
	if ok {
		t.Fatal("once rule without instant should produce no schedule")
	}
}

func TestNextRun_Hourly_Exact(t *testing.T) {
	now := time.Date(2026, 1, 15, 10, 23, 45, 600, time.UTC)
	next, ok := NextRun(Rule{Kind: Hourly}, now)
	if !ok {
		t.Fatal("expected a schedule")
	}
	if got, want := next.Sub(now), time.Hour; got != want {
		t.Errorf("interval = %v, want exactly %v", got, want)
	}
}

func TestNextRun_Daily(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want time.Time
	}{
		{
			name: "later today",
			now:  time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC),
			want: time.Date(2026, 1, 15, 14, 0, 0, 0, time.UTC),
		},
		{
			name: "already passed, rolls to tomorrow",
			now:  time.Date(2026, 1, 15, 16, 0, 0, 0, time.UTC),
			want: time.Date(2026, 1, 16, 14, 0, 0, 0, time.UTC),
		},
		{
			name: "exactly at the boundary counts as passed",
			now:  time.Date(2026, 1, 15, 14, 0, 0, 0, time.UTC),
			want: time.Date(2026, 1, 16, 14, 0, 0, 0, time.UTC),
		},
	}
	rule := Rule{Kind: Daily, TimeOfDay: "14:00"}
	for _, tt := range tests {
		next, ok := NextRun(rule, tt.now)
		if !ok {
			t.Fatalf("%s: expected a schedule", tt.name)
		}
		if !next.Equal(tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, next, tt.want)
		}
	}
}

func TestNextRun_Weekly_SameDayNotYetDue(t *testing.T) {
	// Monday 10:00, target Monday 14:00 -> today at 14:00.
	now := time.Date(2026, 1, 12, 10, 0, 0, 0, time.UTC) // a Monday
	rule := Rule{Kind: Weekly, TimeOfDay: "14:00", Weekday: intPtr(1)}

	next, ok := NextRun(rule, now)
	if !ok {
		t.Fatal("expected a schedule")
	}
	want := time.Date(2026, 1, 12, 14, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("got %v, want %v", next, want)
	}
}

func TestNextRun_Weekly_SameDayAlreadyDue(t *testing.T) {
	// Monday 16:00, target Monday 14:00 -> next Monday 14:00.
	now := time.Date(2026, 1, 12, 16, 0, 0, 0, time.UTC)
	rule := Rule{Kind: Weekly, TimeOfDay: "14:00", Weekday: intPtr(1)}

	next, ok := NextRun(rule, now)
	if !ok {
		t.Fatal("expected a schedule")
	}
	want := time.Date(2026, 1, 19, 14, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("got %v, want %v", next, want)
	}
}

func TestNextRun_Weekly_LaterWeekday(t *testing.T) {
	// Monday, target Thursday -> this Thursday, no extra-week roll.
	now := time.Date(2026, 1, 12, 16, 0, 0, 0, time.UTC)
	rule := Rule{Kind: Weekly, TimeOfDay: "09:00", Weekday: intPtr(4)}

	next, ok := NextRun(rule, now)
	if !ok {
		t.Fatal("expected a schedule")
	}
	want := time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("got %v, want %v", next, want)
	}
}

func TestNextRun_Monthly(t *testing.T) {
	rule := Rule{Kind: Monthly, TimeOfDay: "09:30", DayOfMonth: intPtr(20)}

	// Before the 20th -> this month.
	now := time.Date(2026, 1, 15, 10, 0, 0, 0, time.UTC)
	next, ok := NextRun(rule, now)
	if !ok {
		t.Fatal("expected a schedule")
	}
	want := time.Date(2026, 1, 20, 9, 30, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("got %v, want %v", next, want)
	}

	// After the 20th -> next month.
	now = time.Date(2026, 1, 25, 10, 0, 0, 0, time.UTC)
	next, _ = NextRun(rule, now)
	want = time.Date(2026, 2, 20, 9, 30, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("got %v, want %v", next, want)
	}
}

func TestNextRun_Monthly_DayOverflow(t *testing.T) {
	// Day 31 in a 30-day month: the date normalizes into the following
	// month, matching the underlying calendar arithmetic.
	rule := Rule{Kind: Monthly, TimeOfDay: "08:00", DayOfMonth: intPtr(31)}
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC) // April has 30 days

	next, ok := NextRun(rule, now)
	if !ok {
		t.Fatal("expected a schedule")
	}
	want := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Errorf("got %v, want %v", next, want)
	}
}

func TestNextRun_MissingFields(t *testing.T) {
	now := time.Now()
	rules := []Rule{
		{Kind: Daily},                                     // no time of day
		{Kind: Daily, TimeOfDay: "bogus"},                 // malformed
		{Kind: Weekly, TimeOfDay: "10:00"},                // no weekday
		{Kind: Monthly, TimeOfDay: "10:00"},               // no day of month
		{Kind: Kind("yearly"), TimeOfDay: "10:00"},        // unknown kind
		{Kind: Daily, TimeOfDay: "25:00"},                 // out-of-range hour
		{Kind: Weekly, TimeOfDay: "10:61", Weekday: new(int)}, // out-of-range minute
	}
	for i, rule := range rules {
		if _, ok := NextRun(rule, now); ok {
			t.Errorf("rule %d (%s) should produce no schedule", i, rule.Kind)
		}
	}
}

// All periodic rules must produce an instant strictly after the
// reference time, never an already-past one.
func TestNextRun_StrictlyFuture(t *testing.T) {
	nows := []time.Time{
		time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, 1, 12, 14, 0, 0, 0, time.UTC),
		time.Date(2026, 2, 28, 23, 59, 0, 0, time.UTC),
		time.Date(2026, 12, 31, 23, 59, 59, 0, time.UTC),
	}
	rules := []Rule{
		{Kind: Hourly},
		{Kind: Daily, TimeOfDay: "14:00"},
		{Kind: Daily, TimeOfDay: "00:00"},
		{Kind: Weekly, TimeOfDay: "14:00", Weekday: intPtr(1)},
		{Kind: Weekly, TimeOfDay: "00:00", Weekday: intPtr(0)},
		{Kind: Monthly, TimeOfDay: "09:30", DayOfMonth: intPtr(1)},
		{Kind: Monthly, TimeOfDay: "23:59", DayOfMonth: intPtr(31)},
	}
	for _, now := range nows {
		for _, rule := range rules {
			next, ok := NextRun(rule, now)
			if !ok {
				t.Fatalf("rule %s should produce a schedule", rule.Kind)
			}
			if !next.After(now) {
				t.Errorf("rule %s at %v: next run %v is not strictly in the future", rule.Kind, now, next)
			}
		}
	}
}

func TestValidateRule(t *testing.T) {
	at := time.Now()
	valid := []Rule{
		{Kind: Manual},
		{Kind: Once, At: &at},
		{Kind: Hourly},
		{Kind: Daily, TimeOfDay: "09:00"},
		{Kind: Weekly, TimeOfDay: "09:00", Weekday: intPtr(6)},
		{Kind: Monthly, TimeOfDay: "09:00", DayOfMonth: intPtr(31)},
	}
	for _, rule := range valid {
		if err := ValidateRule(rule); err != nil {
			t.Errorf("rule %s: unexpected error: %v", rule.Kind, err)
		}
	}

	invalid := []Rule{
		{Kind: Once},
		{Kind: Daily},
		{Kind: Weekly, TimeOfDay: "09:00"},
		{Kind: Weekly, TimeOfDay: "09:00", Weekday: intPtr(7)},
		{Kind: Monthly, TimeOfDay: "09:00", DayOfMonth: intPtr(0)},
		{Kind: Kind("sometimes")},
	}
	for _, rule := range invalid {
		if err := ValidateRule(rule); err == nil {
			t.Errorf("rule %s should fail validation", rule.Kind)
		}
	}
}

func TestDescribe(t *testing.T) {
	at := time.Date(2026, 2, 1, 9, 0, 0, 0, time.Local)
	tests := []struct {
		rule Rule
		want string
	}{
		{Rule{Kind: Manual}, "Runs manually"},
		{Rule{Kind: Once, At: &at}, "Runs once at 2026-02-01 09:00"},
		{Rule{Kind: Hourly}, "Runs hourly"},
		{Rule{Kind: Daily, TimeOfDay: "14:00"}, "Runs daily at 14:00"},
		{Rule{Kind: Weekly, TimeOfDay: "14:00", Weekday: intPtr(1)}, "Runs weekly on Monday at 14:00"},
		{Rule{Kind: Monthly, TimeOfDay: "09:30", DayOfMonth: intPtr(15)}, "Runs monthly on day 15 at 09:30"},
		{Rule{Kind: Kind("unknown")}, "No schedule set"},
	}
	for _, tt := range tests {
		if got := Describe(tt.rule); got != tt.want {
			t.Errorf("Describe(%s) = %q, want %q", tt.rule.Kind, got, tt.want)
		}
	}
}
