package scheduling

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SlotStrideMinutes is the fixed interval between candidate slot starts.
const SlotStrideMinutes = 30

// timestampLayout matches the wire format of solver slots.
const timestampLayout = "2006-01-02T15:04:05"

// AvailableSlots computes the bookable slots for one day. Candidate slots
// start at each window's start time and advance in fixed 30 minute strides; a
// candidate is kept when the full procedure duration fits inside the window
// and does not overlap any existing booking. Overlap checks treat bookings as
// half-open intervals, so back-to-back appointments are allowed.
func AvailableSlots(date time.Time, windows []*AvailabilityWindow, durationMinutes int, bookings []Booking) []Slot {
	duration := time.Duration(durationMinutes) * time.Minute
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())

	slots := []Slot{}
	for _, w := range windows {
		start, err := atClock(day, w.StartTime)
		if err != nil {
			continue
		}
		end, err := atClock(day, w.EndTime)
		if err != nil {
			continue
		}

		for current := start; !current.Add(duration).After(end); current = current.Add(SlotStrideMinutes * time.Minute) {
			if isFree(current, current.Add(duration), bookings) {
				slots = append(slots, Slot{
					StartTime: current.Format(timestampLayout),
					EndTime:   current.Add(duration).Format(timestampLayout),
					Display:   current.Format("15:04"),
				})
			}
		}
	}
	return slots
}

func isFree(start, end time.Time, bookings []Booking) bool {
	for _, b := range bookings {
		if start.Before(b.End) && b.Start.Before(end) {
			return false
		}
	}
	return true
}

// atClock returns day at the "HH:MM" clock time.
func atClock(day time.Time, clock string) (time.Time, error) {
	parts := strings.SplitN(clock, ":", 3)
	if len(parts) < 2 {
		return time.Time{}, fmt.Errorf("invalid clock time %q", clock)
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock time %q", clock)
	}
	min, err := strconv.Atoi(parts[1])
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock time %q", clock)
	}
	if hour < 0 || hour > 23 || min < 0 || min > 59 {
		return time.Time{}, fmt.Errorf("clock time %q out of range", clock)
	}
	return day.Add(time.Duration(hour)*time.Hour + time.Duration(min)*time.Minute), nil
}

// WeekdayMondayZero converts Go's Sunday-based weekday to a Monday=0 index,
// matching the day_of_week column.
func WeekdayMondayZero(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
