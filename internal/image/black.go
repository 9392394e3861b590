package imagepkg

import "image"

const (
	blackSamples   = 5
	blackThreshold = 30
)

// IsMostlyBlack samples a 5×5 grid of pixels and reports whether every
// sample is at or below 30 on each channel.
func IsMostlyBlack(img image.Image) bool {
	b := img.Bounds()
	if b.Empty() {
		return false
	}
	stepX := max(b.Dx()/blackSamples, 1)
	stepY := max(b.Dy()/blackSamples, 1)
	for x := b.Min.X; x < b.Max.X; x += stepX {
		for y := b.Min.Y; y < b.Max.Y; y += stepY {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r>>8 > blackThreshold || g>>8 > blackThreshold || bl>>8 > blackThreshold {
				return false
			}
		}
	}
	return true
}
