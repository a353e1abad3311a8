package models

// SlotType distinguishes two- and four-wheeler parking.
type SlotType string

const (
	SlotTypeTwoWheeler  SlotType = "two-wheeler"
	SlotTypeFourWheeler SlotType = "four-wheeler"
)

// SlotCategory is the access class of a slot.
type SlotCategory string

const (
	SlotCategoryGeneral  SlotCategory = "general"
	SlotCategoryReserved SlotCategory = "reserved"
	SlotCategoryVisitor  SlotCategory = "visitor"
)

// Slot is a parking slot on the map. IsAvailable is only meaningful when
// the list was fetched with a booking-window filter; without one the
// backend leaves it true.
type Slot struct {
	ID          string       `json:"_id"`
	SlotNumber  string       `json:"slotNumber"`
	SlotType    SlotType     `json:"slotType"`
	Category    SlotCategory `json:"category"`
	Floor       string       `json:"floor,omitempty"`
	IsActive    bool         `json:"isActive"`
	IsAvailable bool         `json:"isAvailableForSlot"`
}

// SlotFilter narrows a slot listing to an intended booking window.
// Zero-valued fields are omitted from the query.
type SlotFilter struct {
	Date      string
	StartTime string
	EndTime   string
	SlotType  SlotType
	Category  SlotCategory
}

// SlotSpec is the create/update payload for a slot (admin only).
type SlotSpec struct {
	SlotNumber string       `json:"slotNumber"`
	SlotType   SlotType     `json:"slotType"`
	Category   SlotCategory `json:"category"`
	Floor      string       `json:"floor"`
}
