// ABOUTME: Tests for inspection scheduling windows
// ABOUTME: Covers picker days, same-day cutoff, and the countdown label
package negotiation

import (
	"testing"
	"time"
)

func TestUpcomingInspectionDaysSkipsSundays(t *testing.T) {
	// 2025-12-08 is a Monday.
	now := time.Date(2025, 12, 8, 9, 0, 0, 0, time.UTC)
	days := UpcomingInspectionDays(now)

	if len(days) != PickerDays {
		t.Fatalf("want %d days, got %d", PickerDays, len(days))
	}
	if !days[0].Equal(time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("first day should be today, got %v", days[0])
	}
	for _, day := range days {
		if day.Weekday() == time.Sunday {
			t.Errorf("Sunday %v must not be selectable", day)
		}
	}
	// Two Sundays fall inside the window, so the last day lands 15 days out.
	want := time.Date(2025, 12, 23, 0, 0, 0, 0, time.UTC)
	if !days[len(days)-1].Equal(want) {
		t.Errorf("last day: want %v, got %v", want, days[len(days)-1])
	}
}

func TestUpcomingInspectionDaysStartingSunday(t *testing.T) {
	// 2025-12-07 is a Sunday; the picker starts Monday instead.
	now := time.Date(2025, 12, 7, 9, 0, 0, 0, time.UTC)
	days := UpcomingInspectionDays(now)

	if !days[0].Equal(time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("picker should skip today when it is a Sunday, got %v", days[0])
	}
}

func TestSlotTimesForFutureDay(t *testing.T) {
	now := time.Date(2025, 12, 8, 16, 0, 0, 0, time.UTC)
	tomorrow := time.Date(2025, 12, 9, 0, 0, 0, 0, time.UTC)

	slots := SlotTimesFor(tomorrow, now)
	if len(slots) != len(slotTimes) {
		t.Errorf("future day offers the full schedule, got %d of %d", len(slots), len(slotTimes))
	}
}

func TestSlotTimesForSameDayCutoff(t *testing.T) {
	tests := []struct {
		name  string
		clock time.Time
		want  []string
	}{
		{
			name:  "morning leaves the afternoon",
			clock: time.Date(2025, 12, 8, 11, 30, 0, 0, time.UTC),
			want:  []string{"2:00 PM", "3:00 PM", "4:00 PM", "5:00 PM"},
		},
		{
			name:  "exactly two hours out stays selectable",
			clock: time.Date(2025, 12, 8, 13, 0, 0, 0, time.UTC),
			want:  []string{"3:00 PM", "4:00 PM", "5:00 PM"},
		},
		{
			name:  "late evening leaves nothing",
			clock: time.Date(2025, 12, 8, 19, 0, 0, 0, time.UTC),
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day := time.Date(2025, 12, 8, 0, 0, 0, 0, time.UTC)
			got := SlotTimesFor(day, tt.clock)
			if len(got) != len(tt.want) {
				t.Fatalf("want %v, got %v", tt.want, got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("slot %d: want %q, got %q", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestSlotStart(t *testing.T) {
	got, err := SlotStart("2025-12-15", "2:00 PM", time.UTC)
	if err != nil {
		t.Fatalf("SlotStart: %v", err)
	}
	want := time.Date(2025, 12, 15, 14, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("want %v, got %v", want, got)
	}

	if _, err := SlotStart("15/12/2025", "2:00 PM", time.UTC); err == nil {
		t.Error("malformed date must error")
	}
	if _, err := SlotStart("2025-12-15", "14:00", time.UTC); err == nil {
		t.Error("24-hour clock label must error")
	}
}

func TestCountdownLabel(t *testing.T) {
	created := time.Date(2025, 12, 8, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{"fresh", created.Add(30 * time.Minute), "47h 30m left to respond"},
		{"under an hour", created.Add(47*time.Hour + 20*time.Minute), "40m left to respond"},
		{"elapsed", created.Add(49 * time.Hour), "Response window elapsed"},
		{"exactly elapsed", created.Add(48 * time.Hour), "Response window elapsed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CountdownLabel(created, tt.now); got != tt.want {
				t.Errorf("want %q, got %q", tt.want, got)
			}
		})
	}
}
