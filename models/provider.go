package models

import "time"

// WeekdayLabels maps time.Weekday to the labels used in availability configs,
// in calendar order starting Sunday.
var WeekdayLabels = []string{"SUN", "MON", "TUE", "WED", "THU", "FRI", "SAT"}

// Availability is a provider's working-hours configuration. Slots are derived
// from it on demand; it never stores slots directly.
type Availability struct {
	Days         []string `bson:"days" json:"days"`                 // active weekdays, e.g. ["MON","TUE","WED","THU","FRI","SAT"]
	StartTime    string   `bson:"startTime" json:"startTime"`       // "HH:MM" in the provider's local clock
	EndTime      string   `bson:"endTime" json:"endTime"`           // "HH:MM", exclusive
	SlotDuration int      `bson:"slotDuration" json:"slotDuration"` // minutes per slot
}

// WorksOn reports whether the given weekday is an active working day.
func (a Availability) WorksOn(day time.Weekday) bool {
	label := WeekdayLabels[int(day)]
	for _, d := range a.Days {
		if d == label {
			return true
		}
	}
	return false
}

// BookingPolicy carries the provider's deposit and fee configuration.
// Defaults (50% deposit, $50 custom-design minimum, 5% platform fee) come
// from config and are stamped onto the provider at registration.
type BookingPolicy struct {
	DepositPercent     int     `bson:"depositPercent" json:"depositPercent"`
	CustomMinDeposit   float64 `bson:"customMinDeposit" json:"customMinDeposit"`
	PlatformFeePercent float64 `bson:"platformFeePercent" json:"platformFeePercent"`
}

type ProviderStats struct {
	TotalBookings   int     `bson:"totalBookings" json:"totalBookings"`
	Rating          float64 `bson:"rating" json:"rating"`
	YearsExperience int     `bson:"yearsExperience" json:"yearsExperience"`
}

// Provider is a tattoo artist whose calendar is being scheduled.
type Provider struct {
	ID           string        `bson:"id" json:"id"`
	Handle       string        `bson:"handle" json:"handle"` // public booking-link handle
	DisplayName  string        `bson:"displayName" json:"displayName"`
	Email        string        `bson:"email" json:"email,omitempty"`
	Bio          string        `bson:"bio" json:"bio,omitempty"`
	Location     string        `bson:"location" json:"location,omitempty"`
	Specialties  []string      `bson:"specialties" json:"specialties,omitempty"`
	ProfileImage string        `bson:"profileImage" json:"profileImage,omitempty"`
	Availability Availability  `bson:"availability" json:"availability"`
	Policy       BookingPolicy `bson:"policy" json:"policy"`
	Stats        ProviderStats `bson:"stats" json:"stats"`
	CreatedAt    time.Time     `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time     `bson:"updatedAt" json:"updatedAt"`
}
