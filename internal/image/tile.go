package imagepkg

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
)

// TileStyle is what a tile needs besides its image.
type TileStyle struct {
	Background   color.Color
	BorderColor  color.Color
	Caption      string
	ShowCaptions bool
}

func fillRect(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Over)
}

// rectF converts a float rectangle given as origin and size to pixels.
func rectF(x, y, w, h float64) image.Rectangle {
	return image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+w)), int(math.Round(y+h)),
	)
}

// DrawTile renders one tile in its own raster of (w+border)×(h+border)
// pixels: background, the four frame edges, the scaled image and the
// optional caption band, in that order.
func DrawTile(src image.Image, w, h float64, style TileStyle) (*image.NRGBA, error) {
	const (
		bw   = BorderWidth
		m    = Margin
		half = BorderWidth / 2
	)
	tile := imaging.New(int(math.Round(w+bw)), int(math.Round(h+bw)), color.Transparent)

	fillRect(tile, rectF(0, 0, w+bw, h+bw), style.Background)

	frame := style.BorderColor
	if frame == nil {
		frame = color.Black
	}
	// left, top, right, bottom; the bottom edge is placed by width, tiles are square
	fillRect(tile, rectF(half-m, half-m/2, m, h+m), frame)
	fillRect(tile, rectF(half-m, half-m, w+2*m, m), frame)
	fillRect(tile, rectF(w+bw-m-3*m/2, half-m/2, m, h+m), frame)
	fillRect(tile, rectF(half-m, w+bw-m-3*m/2, w+2*m, m), frame)

	iw, ih := int(math.Round(w)), int(math.Round(h))
	scaled := imaging.Resize(src, iw, ih, imaging.Lanczos)
	at := image.Pt(int(half), int(half))
	draw.Draw(tile, image.Rectangle{Min: at, Max: at.Add(image.Pt(iw, ih))}, scaled, image.Point{}, draw.Over)

	if style.ShowCaptions && style.Caption != "" {
		if err := drawCaption(tile, image.Point{}, iw, ih, style.Caption); err != nil {
			return nil, err
		}
	}
	return tile, nil
}
