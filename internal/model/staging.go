package model

import "time"

// StagingRecord is a provisionally classified item awaiting user review.
// The wardrobe item ID is already reserved at staging time so the user sees
// the final identifier before confirming. A record leaves the pending status
// at most once: confirmation or discard removes it in the same logical step.
type StagingRecord struct {
	Token     string    `json:"token"`
	ItemID    string    `json:"item_id"`
	Category  string    `json:"category"`
	Type      string    `json:"type"`
	Subtype   string    `json:"subtype"`
	Color     Color     `json:"color"`
	Fit       string    `json:"fit"`
	Formality string    `json:"formality"`
	Season    []string  `json:"season"`
	ImagePath string    `json:"image_path"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Staging statuses.
const (
	StagingStatusPending   = "pending"
	StagingStatusConfirmed = "confirmed"
	StagingStatusDiscarded = "discarded"
)

// Item builds the wardrobe item a staging record promotes into, using the
// given identifier (normally the reserved one, re-allocated on collision).
func (r *StagingRecord) Item(id, imagePath string) *Item {
	return &Item{
		ID:        id,
		Category:  r.Category,
		Type:      r.Type,
		Subtype:   r.Subtype,
		Color:     r.Color,
		Fit:       r.Fit,
		Formality: r.Formality,
		Season:    r.Season,
		ImagePath: imagePath,
	}
}
