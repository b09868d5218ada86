package picker

import (
	"fmt"
	"image"
)

// MeanColor returns the average colour of img as a #RRGGBB string
func MeanColor(img image.Image) string {
	if img == nil {
		return "#000000"
	}
	b := img.Bounds()
	if b.Empty() {
		return "#000000"
	}

	var r, g, bl, n uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			cr, cg, cb, _ := img.At(x, y).RGBA()
			r += uint64(cr >> 8)
			g += uint64(cg >> 8)
			bl += uint64(cb >> 8)
			n++
		}
	}
	return fmt.Sprintf("#%02X%02X%02X", r/n, g/n, bl/n)
}
