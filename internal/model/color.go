package model

// Color describes the dominant color of a garment.
type Color struct {
	Name  string   `json:"name"`
	RGB   [3]uint8 `json:"rgb"`
	Group string   `json:"group"`
}

// Color groups.
const (
	ColorGroupWhite   = "white"
	ColorGroupBlack   = "black"
	ColorGroupNeutral = "neutral"
	ColorGroupRed     = "red"
	ColorGroupGreen   = "green"
	ColorGroupBlue    = "blue"
)
