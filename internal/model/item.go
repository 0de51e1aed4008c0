package model

import "time"

// Item is a confirmed wardrobe item. Its ID is a human-readable key of the
// form category_type_sequence (e.g. "topwear_shirt_01"), assigned at staging
// time and immutable afterwards. IDs are never reused, even after deletion.
type Item struct {
	ID        string    `json:"id"`
	Category  string    `json:"category"`
	Type      string    `json:"type"`
	Subtype   string    `json:"subtype"`
	Color     Color     `json:"color"`
	Fit       string    `json:"fit"`
	Formality string    `json:"formality"`
	Season    []string  `json:"season"`
	ImagePath string    `json:"image_path"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Categories.
const (
	CategoryTopwear     = "topwear"
	CategoryBottomwear  = "bottomwear"
	CategoryFootwear    = "footwear"
	CategoryAccessories = "accessories"
	CategoryUnknown     = "unknown"
)

// Unknown is the default for subtype, fit and formality until the user fills
// them in during review.
const Unknown = "unknown"

// ItemPatch is a partial update. Nil fields are left untouched.
type ItemPatch struct {
	Category  *string   `json:"category"`
	Type      *string   `json:"type"`
	Subtype   *string   `json:"subtype"`
	Color     *Color    `json:"color"`
	Fit       *string   `json:"fit"`
	Formality *string   `json:"formality"`
	Season    *[]string `json:"season"`
}

// Empty reports whether the patch contains no changes.
func (p ItemPatch) Empty() bool {
	return p.Category == nil && p.Type == nil && p.Subtype == nil &&
		p.Color == nil && p.Fit == nil && p.Formality == nil && p.Season == nil
}

// Apply merges the patch into an item.
func (p ItemPatch) Apply(item *Item) {
	if p.Category != nil {
		item.Category = *p.Category
	}
	if p.Type != nil {
		item.Type = *p.Type
	}
	if p.Subtype != nil {
		item.Subtype = *p.Subtype
	}
	if p.Color != nil {
		item.Color = *p.Color
	}
	if p.Fit != nil {
		item.Fit = *p.Fit
	}
	if p.Formality != nil {
		item.Formality = *p.Formality
	}
	if p.Season != nil {
		item.Season = *p.Season
	}
}
