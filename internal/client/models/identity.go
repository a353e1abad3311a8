// Package models defines the client-side views of backend entities:
// the authenticated identity, parking slots, bookings, and waitlist entries.
package models

import "time"

// Identity is the authenticated user as returned by the backend.
// A nil *Identity means "not logged in".
type Identity struct {
	ID            string `json:"_id"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone,omitempty"`
	VehicleNumber string `json:"vehicleNumber,omitempty"`
	Role          Role   `json:"role"`
	IsActive      bool   `json:"isActive"`
}

// RegisterProfile is the payload submitted when creating an account.
type RegisterProfile struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Phone         string `json:"phone,omitempty"`
	VehicleNumber string `json:"vehicleNumber,omitempty"`
	Role          string `json:"role,omitempty"`
}

// ProfileUpdate carries the editable profile fields.
type ProfileUpdate struct {
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	VehicleNumber string `json:"vehicleNumber"`
}

// UserPatch is the admin-side update for an account (role and/or activation).
type UserPatch struct {
	Role     *string `json:"role,omitempty"`
	IsActive *bool   `json:"isActive,omitempty"`
}

// SessionInfo pairs an identity with the expiry of its bearer token,
// for display on the profile screen. Expiry is zero when the token
// carries no exp claim.
type SessionInfo struct {
	Identity *Identity
	Expiry   time.Time
}
