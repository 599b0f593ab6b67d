package models

import "time"

// Booking lifecycle statuses. Pending is the sole initial state.
const (
	StatusPending    = "pending"
	StatusConfirmed  = "confirmed"
	StatusInProgress = "in_progress"
	StatusCompleted  = "completed"
	StatusCancelled  = "cancelled"
	StatusNoShow     = "no_show"
)

// Design types.
const (
	DesignFlash  = "flash"
	DesignCustom = "custom"
)

// IsTerminal reports whether no further transition is permitted from status.
func IsTerminal(status string) bool {
	switch status {
	case StatusCompleted, StatusCancelled, StatusNoShow:
		return true
	}
	return false
}

// HoldsSlot reports whether a booking in this status blocks its time slot.
// Terminal bookings free the slot; everything else keeps it reserved.
func HoldsSlot(status string) bool {
	switch status {
	case StatusPending, StatusConfirmed, StatusInProgress:
		return true
	}
	return false
}

// Booking is a reserved appointment slot on a provider's calendar.
type Booking struct {
	ID         string `bson:"id" json:"id"`
	ProviderID string `bson:"providerId" json:"providerId"`

	// Client info. Age is validated (>= 18) before creation.
	ClientName  string `bson:"clientName" json:"clientName"`
	ClientEmail string `bson:"clientEmail" json:"clientEmail"`
	ClientPhone string `bson:"clientPhone,omitempty" json:"clientPhone,omitempty"`
	ClientAge   int    `bson:"clientAge" json:"clientAge"`

	// Design reference: a flash catalog item with cached name/price, or a
	// custom description with a zero price pending quote.
	DesignID          string `bson:"designId" json:"designId"`
	DesignName        string `bson:"designName" json:"designName"`
	DesignType        string `bson:"designType" json:"designType"` // "flash" | "custom"
	CustomDescription string `bson:"customDescription,omitempty" json:"customDescription,omitempty"`

	// Schedule. Date is the provider-local calendar day; Slot is the canonical
	// minutes-from-midnight slot id (e.g. 840 for 2:00 PM).
	Date              string `bson:"date" json:"date"` // "2006-01-02"
	Slot              int    `bson:"slot" json:"slot"`
	EstimatedDuration int    `bson:"estimatedDuration" json:"estimatedDuration"` // minutes

	// Pricing.
	TotalPrice    float64 `bson:"totalPrice" json:"totalPrice"`
	DepositAmount float64 `bson:"depositAmount" json:"depositAmount"`
	DepositPaid   bool    `bson:"depositPaid" json:"depositPaid"`
	PaymentRef    string  `bson:"paymentRef,omitempty" json:"paymentRef,omitempty"`
	Refunded      bool    `bson:"refunded" json:"refunded"`
	RefundAmount  float64 `bson:"refundAmount,omitempty" json:"refundAmount,omitempty"`

	// Consent.
	ConsentSigned bool       `bson:"consentSigned" json:"consentSigned"`
	ConsentAt     *time.Time `bson:"consentAt,omitempty" json:"consentAt,omitempty"`

	Status string `bson:"status" json:"status"`

	// SlotHeld mirrors HoldsSlot(Status) and backs the partial unique index
	// on (providerId, date, slot). Maintained at the write boundary only.
	SlotHeld bool `bson:"slotHeld" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SlotLabel renders the booking's slot for display, e.g. "2:00 PM".
func (b Booking) SlotLabel() string {
	return FormatSlot(b.Slot)
}
