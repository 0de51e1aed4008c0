// Package palette extracts the dominant color of a segmented garment image.
package palette

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"

	"github.com/erazemk/garderoba/internal/model"
)

// fallback is used when every pixel is transparent or the image cannot be
// averaged: mid gray, mapped to the neutral group.
var fallback = [3]uint8{128, 128, 128}

// Dominant computes the average RGB over non-transparent pixels of a PNG
// image (the segmenter outputs RGBA with an alpha-zero background) and maps
// it to a named color and group.
func Dominant(imageBytes []byte) (model.Color, error) {
	img, _, err := image.Decode(bytes.NewReader(imageBytes))
	if err != nil {
		return model.Color{}, fmt.Errorf("decoding segmented image: %w", err)
	}

	var sumR, sumG, sumB, count uint64
	bounds := img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			if a == 0 {
				continue
			}
			// RGBA returns alpha-premultiplied 16-bit channels.
			sumR += uint64(r * 0xffff / a)
			sumG += uint64(g * 0xffff / a)
			sumB += uint64(b * 0xffff / a)
			count++
		}
	}

	rgb := fallback
	if count > 0 {
		rgb = [3]uint8{
			uint8(sumR / count >> 8),
			uint8(sumG / count >> 8),
			uint8(sumB / count >> 8),
		}
	}

	return model.Color{
		Name:  NameFor(rgb),
		RGB:   rgb,
		Group: GroupFor(rgb),
	}, nil
}

// GroupFor maps an RGB triple to a coarse color group. Channels within a
// narrow window of each other count as achromatic; otherwise a channel must
// dominate both others by a margin to claim its hue.
func GroupFor(rgb [3]uint8) string {
	r, g, b := int(rgb[0]), int(rgb[1]), int(rgb[2])

	if abs(r-g) < 20 && abs(g-b) < 20 {
		if r > 200 {
			return model.ColorGroupWhite
		}
		if r < 80 {
			return model.ColorGroupBlack
		}
		return model.ColorGroupNeutral
	}

	if r > g+25 && r > b+25 {
		return model.ColorGroupRed
	}
	if g > r+25 && g > b+25 {
		return model.ColorGroupGreen
	}
	if b > r+25 && b > g+25 {
		return model.ColorGroupBlue
	}

	return model.ColorGroupNeutral
}

// NameFor maps an RGB triple to a human-readable color name. Slightly looser
// than GroupFor: a single dominant channel is enough to name the hue.
func NameFor(rgb [3]uint8) string {
	r, g, b := int(rgb[0]), int(rgb[1]), int(rgb[2])

	if abs(r-g) < 20 && abs(g-b) < 20 {
		if r > 200 {
			return "off white"
		}
		if r < 80 {
			return "black"
		}
		return "beige"
	}

	if b > r+25 {
		return "blue"
	}
	if r > g+25 {
		return "red"
	}
	if g > r+25 {
		return "green"
	}

	return "neutral"
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
