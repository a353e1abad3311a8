package models

import "time"

// WaitlistStatus is the backend state of a waitlist entry.
type WaitlistStatus string

const (
	// Waiting for a slot to open.
	WaitlistWaiting WaitlistStatus = "waiting"
	// A slot opened; the user must confirm before ConfirmationDeadline.
	WaitlistNotified WaitlistStatus = "notified"
	// Confirmed and converted into a booking.
	WaitlistBooked WaitlistStatus = "booked"
	// Deadline passed without confirmation.
	WaitlistExpired WaitlistStatus = "expired"
)

// WaitlistEntry is a queued request for a slot on a date/window.
type WaitlistEntry struct {
	ID                   string         `json:"_id"`
	User                 *Identity      `json:"user,omitempty"`
	SlotType             SlotType       `json:"slotType"`
	BookingDate          string         `json:"bookingDate"`
	PreferredStartTime   string         `json:"preferredStartTime"`
	PreferredEndTime     string         `json:"preferredEndTime"`
	Status               WaitlistStatus `json:"status"`
	Position             int            `json:"position,omitempty"`
	ConfirmationDeadline *time.Time     `json:"confirmationDeadline,omitempty"`
}

// WaitlistRequest is the payload for joining the waitlist.
type WaitlistRequest struct {
	SlotType           SlotType `json:"slotType"`
	BookingDate        string   `json:"bookingDate"`
	PreferredStartTime string   `json:"preferredStartTime"`
	PreferredEndTime   string   `json:"preferredEndTime"`
}
