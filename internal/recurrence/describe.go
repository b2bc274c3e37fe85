package recurrence

import "fmt"

var weekdayNames = []string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// Describe renders a one-line human description of a rule. Display
// only; never consulted by the scheduler.
func Describe(rule Rule) string {
	switch rule.Kind {
	case Manual:
		return "Runs manually"
	case Once:
		if rule.At == nil {
			return "Runs once"
		}
		return fmt.Sprintf("Runs once at %s", rule.At.Local().Format("2006-01-02 15:04"))
	case Hourly:
		return "Runs hourly"
	case Daily:
		return fmt.Sprintf("Runs daily at %s", rule.TimeOfDay)
	case Weekly:
		day := 0
		if rule.Weekday != nil {
			day = *rule.Weekday
		}
		if day < 0 || day > 6 {
			day = 0
		}
		return fmt.Sprintf("Runs weekly on %s at %s", weekdayNames[day], rule.TimeOfDay)
	case Monthly:
		day := 1
		if rule.DayOfMonth != nil {
			day = *rule.DayOfMonth
		}
		return fmt.Sprintf("Runs monthly on day %d at %s", day, rule.TimeOfDay)
	default:
		return "No schedule set"
	}
}
