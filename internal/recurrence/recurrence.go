package recurrence

import (
	"strconv"
	"strings"
	"time"
)

// Kind selects how an agent's next run instant is derived.
type Kind string

const (
	// Manual never auto-runs.
	Manual Kind = "manual"
	// Once fires exactly once at an absolute instant.
	Once Kind = "once"
	// Hourly fires 60 minutes after each computation. The interval is
	// relative to the computation time, not anchored to a wall-clock
	// minute, so it drifts by execution latency each cycle.
	Hourly Kind = "hourly"
	// Daily fires once per day at a wall-clock time.
	Daily Kind = "daily"
	// Weekly fires once per week on a weekday at a wall-clock time.
	Weekly Kind = "weekly"
	// Monthly fires once per month on a calendar day at a wall-clock time.
	Monthly Kind = "monthly"
)

// IsValid reports whether k is a known recurrence kind.
func (k Kind) IsValid() bool {
	switch k {
	case Manual, Once, Hourly, Daily, Weekly, Monthly:
		return true
	default:
		return false
	}
}

// Rule is a declarative schedule. Daily/Weekly/Monthly require
// TimeOfDay; Weekly additionally requires Weekday and Monthly requires
// DayOfMonth. A rule missing a required field produces no schedule.
type Rule struct {
	Kind       Kind       `json:"kind"`
	At         *time.Time `json:"at,omitempty"`           // once only
	TimeOfDay  string     `json:"time_of_day,omitempty"`  // "HH:MM", local wall-clock
	Weekday    *int       `json:"weekday,omitempty"`      // 0=Sunday .. 6=Saturday
	DayOfMonth *int       `json:"day_of_month,omitempty"` // 1..31
}

// NextRun computes the next absolute run instant for rule relative to
// now. The second return value is false when the rule produces no
// schedule: Manual rules, unknown kinds, and rules missing required
// fields. For Daily/Weekly/Monthly the result is always strictly after
// now; Once returns the configured instant verbatim even when it is in
// the past (the due-check treats any past instant as due).
func NextRun(rule Rule, now time.Time) (time.Time, bool) {
	switch rule.Kind {
	case Once:
		if rule.At == nil {
			return time.Time{}, false
		}
		return *rule.At, true

	case Hourly:
		return now.Add(time.Hour), true

	case Daily:
		hour, minute, ok := parseTimeOfDay(rule.TimeOfDay)
		if !ok {
			return time.Time{}, false
		}
		next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		if !next.After(now) {
			next = next.AddDate(0, 0, 1)
		}
		return next, true

	case Weekly:
		hour, minute, ok := parseTimeOfDay(rule.TimeOfDay)
		if !ok || rule.Weekday == nil {
			return time.Time{}, false
		}
		atTime := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
		delta := (*rule.Weekday - int(now.Weekday()) + 7) % 7
		if delta == 0 && !atTime.After(now) {
			// Target weekday is today but the time already passed.
			return atTime.AddDate(0, 0, 7), true
		}
		// A later weekday this week is taken as-is; only the same-day
		// case is checked against "already past".
		return atTime.AddDate(0, 0, delta), true

	case Monthly:
		hour, minute, ok := parseTimeOfDay(rule.TimeOfDay)
		if !ok || rule.DayOfMonth == nil {
			return time.Time{}, false
		}
		// time.Date normalizes out-of-range days (day 31 in a 30-day
		// month rolls into the next month); that overflow is accepted.
		next := time.Date(now.Year(), now.Month(), *rule.DayOfMonth, hour, minute, 0, 0, now.Location())
		if !next.After(now) {
			next = time.Date(now.Year(), now.Month()+1, *rule.DayOfMonth, hour, minute, 0, 0, now.Location())
		}
		return next, true

	default:
		return time.Time{}, false
	}
}

// parseTimeOfDay parses "HH:MM". Invalid input reports ok=false; the
// caller treats that as "no schedule" rather than an error.
func parseTimeOfDay(s string) (hour, minute int, ok bool) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return 0, 0, false
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, false
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// ValidateRule checks that all fields required by the rule's kind are
// present and well-formed. The scheduler itself tolerates incomplete
// rules (NextRun reports no schedule); this is the strict check applied
// when an agent is created or edited.
func ValidateRule(rule Rule) error {
	switch rule.Kind {
	case Manual:
		return nil
	case Once:
		if rule.At == nil {
			return errMissing("at")
		}
		return nil
	case Hourly:
		return nil
	case Daily:
		if _, _, ok := parseTimeOfDay(rule.TimeOfDay); !ok {
			return errMissing("time_of_day")
		}
		return nil
	case Weekly:
		if _, _, ok := parseTimeOfDay(rule.TimeOfDay); !ok {
			return errMissing("time_of_day")
		}
		if rule.Weekday == nil || *rule.Weekday < 0 || *rule.Weekday > 6 {
			return errMissing("weekday")
		}
		return nil
	case Monthly:
		if _, _, ok := parseTimeOfDay(rule.TimeOfDay); !ok {
			return errMissing("time_of_day")
		}
		if rule.DayOfMonth == nil || *rule.DayOfMonth < 1 || *rule.DayOfMonth > 31 {
			return errMissing("day_of_month")
		}
		return nil
	default:
		return &RuleError{Field: "kind", Reason: "unknown recurrence kind: " + string(rule.Kind)}
	}
}

// RuleError reports an invalid or missing recurrence rule field.
type RuleError struct {
	Field  string
	Reason string
}

func (e *RuleError) Error() string {
	return e.Reason
}

func errMissing(field string) error {
	return &RuleError{Field: field, Reason: "recurrence rule field " + field + " is missing or invalid"}
}
