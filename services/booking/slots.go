package booking

import (
	"fmt"

	"inkbook/models"
)

// GenerateSlots turns a working-hours config into the ordered candidate slot
// set for one day: [start, end) stepped by the slot duration, as canonical
// minutes-from-midnight ids. A trailing window shorter than the duration is
// truncated rather than producing a slot that overruns the end time.
//
// The output depends only on the config — weekday eligibility and past-date
// policy are the caller's concern.
func GenerateSlots(av models.Availability) ([]int, error) {
	start, err := models.ParseClock(av.StartTime)
	if err != nil {
		return nil, fmt.Errorf("invalid start time: %w", err)
	}
	end, err := models.ParseClock(av.EndTime)
	if err != nil {
		return nil, fmt.Errorf("invalid end time: %w", err)
	}
	if start >= end {
		return nil, fmt.Errorf("start time %s is not before end time %s", av.StartTime, av.EndTime)
	}
	if av.SlotDuration <= 0 {
		return nil, fmt.Errorf("slot duration must be positive, got %d", av.SlotDuration)
	}

	slots := make([]int, 0, (end-start)/av.SlotDuration)
	for t := start; t+av.SlotDuration <= end; t += av.SlotDuration {
		slots = append(slots, t)
	}
	return slots, nil
}

// slotInSet reports whether slot is one of the generated candidates.
func slotInSet(slots []int, slot int) bool {
	for _, s := range slots {
		if s == slot {
			return true
		}
	}
	return false
}
