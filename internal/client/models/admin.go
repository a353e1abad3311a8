package models

// DashboardStats is the admin dashboard summary.
type DashboardStats struct {
	TotalSlots          int `json:"totalSlots"`
	ActiveBookingsToday int `json:"activeBookingsToday"`
	TotalUsers          int `json:"totalUsers"`
	WaitlistLength      int `json:"waitlistLength"`
}

// OccupancyPoint is one bucket of the occupancy analytics series.
type OccupancyPoint struct {
	Date      string  `json:"date"`
	Occupancy float64 `json:"occupancy"`
	Bookings  int     `json:"bookings"`
}

// BookingOverride is the admin override payload. Action is currently
// limited to "cancel" on the backend.
type BookingOverride struct {
	Action string `json:"action"`
	Reason string `json:"reason"`
}
