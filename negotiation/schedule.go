// ABOUTME: Inspection scheduling rules for the date/time picker
// ABOUTME: Non-Sunday day window, same-day slot cutoff, response countdown
package negotiation

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the wire format for inspection dates.
	DateLayout = "2006-01-02"

	// TimeLayout is the clock label format for inspection slots.
	TimeLayout = "3:04 PM"

	// PickerDays is how many selectable days the picker offers.
	PickerDays = 14

	// sameDayCutoff excludes slots starting within this window on the
	// current day.
	sameDayCutoff = 2 * time.Hour

	// responseWindow is the display-only countdown from thread creation.
	// Nothing fires client-side when it elapses; the backend owns expiry.
	responseWindow = 48 * time.Hour
)

// slotTimes are the per-day inspection slots the marketplace offers.
var slotTimes = []string{
	"9:00 AM", "10:00 AM", "11:00 AM", "12:00 PM",
	"1:00 PM", "2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM",
}

// UpcomingInspectionDays returns the next PickerDays selectable days
// starting today, skipping Sundays.
func UpcomingInspectionDays(now time.Time) []time.Time {
	days := make([]time.Time, 0, PickerDays)
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	for len(days) < PickerDays {
		if day.Weekday() != time.Sunday {
			days = append(days, day)
		}
		day = day.AddDate(0, 0, 1)
	}

	return days
}

// SlotTimesFor returns the selectable slot labels for a picker day. On the
// current day, slots starting within two hours of now are excluded.
func SlotTimesFor(day, now time.Time) []string {
	sameDay := day.Year() == now.Year() && day.YearDay() == now.YearDay()
	if !sameDay {
		out := make([]string, len(slotTimes))
		copy(out, slotTimes)
		return out
	}

	cutoff := now.Add(sameDayCutoff)
	var out []string
	for _, label := range slotTimes {
		start, err := SlotStart(day.Format(DateLayout), label, now.Location())
		if err != nil {
			continue
		}
		if start.Before(cutoff) {
			continue
		}
		out = append(out, label)
	}

	return out
}

// SlotStart resolves a date string plus clock label into a wall time.
func SlotStart(date, clock string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, date, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid inspection date %q: %w", date, err)
	}
	c, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid inspection time %q: %w", clock, err)
	}
	return time.Date(d.Year(), d.Month(), d.Day(), c.Hour(), c.Minute(), 0, 0, loc), nil
}

// ResponseDeadline is when the 48-hour response window elapses.
func ResponseDeadline(createdAt time.Time) time.Time {
	return createdAt.Add(responseWindow)
}

// CountdownLabel renders the remaining response window for display.
// Cosmetic only; the client never acts on elapsed windows.
func CountdownLabel(createdAt, now time.Time) string {
	remaining := ResponseDeadline(createdAt).Sub(now)
	if remaining <= 0 {
		return "Response window elapsed"
	}

	hours := int(remaining.Hours())
	minutes := int(remaining.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm left to respond", hours, minutes)
	}
	return fmt.Sprintf("%dm left to respond", minutes)
}
