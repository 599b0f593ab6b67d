package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Slots are identified internally by minutes from midnight (e.g. 600 for
// 10:00 AM). Display labels are rendered only at the edge so that generated
// slots and client-typed custom times can never disagree on format.

// SlotStatus is one entry of a resolved availability list.
type SlotStatus struct {
	Slot      int    `json:"slot"` // minutes from midnight
	Label     string `json:"label"`
	Available bool   `json:"available"`
}

// FormatSlot renders a minutes-from-midnight slot id as a 12-hour label,
// e.g. 600 -> "10:00 AM", 870 -> "2:30 PM".
func FormatSlot(min int) string {
	h := min / 60
	m := min % 60
	period := "AM"
	if h >= 12 {
		period = "PM"
	}
	display := h % 12
	if display == 0 {
		display = 12
	}
	return fmt.Sprintf("%d:%02d %s", display, m, period)
}

// ParseSlot converts a slot label back to minutes from midnight. It accepts
// both the 12-hour form ("2:30 PM") and the 24-hour form ("14:30") typed in
// the custom-time input.
func ParseSlot(label string) (int, error) {
	s := strings.TrimSpace(strings.ToUpper(label))
	period := ""
	if strings.HasSuffix(s, "AM") || strings.HasSuffix(s, "PM") {
		period = s[len(s)-2:]
		s = strings.TrimSpace(s[:len(s)-2])
	}
	parts := strings.SplitN(s, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", label)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid time %q", label)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q", label)
	}
	switch period {
	case "AM":
		if h < 1 || h > 12 {
			return 0, fmt.Errorf("invalid time %q", label)
		}
		if h == 12 {
			h = 0
		}
	case "PM":
		if h < 1 || h > 12 {
			return 0, fmt.Errorf("invalid time %q", label)
		}
		if h != 12 {
			h += 12
		}
	default:
		if h < 0 || h > 23 {
			return 0, fmt.Errorf("invalid time %q", label)
		}
	}
	return h*60 + m, nil
}

// ParseClock converts an availability boundary ("HH:MM") to minutes from
// midnight.
func ParseClock(clock string) (int, error) {
	parts := strings.SplitN(clock, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid clock time %q", clock)
	}
	return h*60 + m, nil
}
