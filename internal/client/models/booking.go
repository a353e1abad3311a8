package models

import "time"

// BookingStatus is the backend state of a booking.
type BookingStatus string

const (
	BookingActive    BookingStatus = "active"
	BookingCompleted BookingStatus = "completed"
	BookingCancelled BookingStatus = "cancelled"
	BookingExpired   BookingStatus = "expired"
)

// MaxExtensions is the backend limit on extensions per booking; the client
// uses it only to hide the extend action once exhausted.
const MaxExtensions = 2

// Booking is a reservation of a slot for a window on a given date.
// Slot and User are populated by the backend on listing endpoints;
// either may be nil on partial payloads.
type Booking struct {
	ID             string        `json:"_id"`
	Slot           *Slot         `json:"slot,omitempty"`
	User           *Identity     `json:"user,omitempty"`
	BookingDate    string        `json:"bookingDate"`
	StartTime      string        `json:"startTime"`
	EndTime        string        `json:"endTime"`
	Status         BookingStatus `json:"status"`
	IsExtended     bool          `json:"isExtended"`
	ExtensionCount int           `json:"extensionCount"`
	ArrivedAt      *time.Time    `json:"arrivedAt,omitempty"`
	CancelReason   string        `json:"cancelReason,omitempty"`
}

// CanExtend reports whether the client should offer the extend action.
// The backend re-validates; this only drives the menu.
func (b *Booking) CanExtend() bool {
	return b.Status == BookingActive && b.ExtensionCount < MaxExtensions
}

// BookingRequest is the payload for creating a booking.
type BookingRequest struct {
	SlotID      string `json:"slotId"`
	BookingDate string `json:"bookingDate"`
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
}

// BookingFilter narrows booking listings. Status filters both the "my"
// and the admin "all" endpoints; Date only applies to the admin one.
type BookingFilter struct {
	Status BookingStatus
	Date   string
}
