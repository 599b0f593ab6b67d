package models

// MonthlyStats aggregates a provider's bookings over one calendar month.
type MonthlyStats struct {
	Month             string         `json:"month"` // "2006-01"
	TotalBookings     int            `json:"totalBookings"`
	ByStatus          map[string]int `json:"byStatus"`
	CompletedBookings int            `json:"completedBookings"`
	CancelledBookings int            `json:"cancelledBookings"`
	NoShows           int            `json:"noShows"`
	TotalRevenue      float64        `json:"totalRevenue"`      // sum of totalPrice over completed bookings
	DepositsCollected float64        `json:"depositsCollected"` // sum of depositAmount where depositPaid
	DepositsRefunded  float64        `json:"depositsRefunded"`  // sum of refundAmount where refunded
	PlatformFees      float64        `json:"platformFees"`      // fee share of completed revenue
	NoShowRate        int            `json:"noShowRate"`        // whole percent, 0 when no bookings
}
