package imagepkg

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	captionFontSize   = 12
	captionBandHeight = 30
	captionInsetX     = 5
	captionBaseline   = 10 // distance from the bottom of the image
)

var (
	captionOnce sync.Once
	captionFont *opentype.Font
	captionErr  error
)

// captionFace returns a new 12px Go Regular face. Faces are not safe for
// concurrent use, so every tile gets its own.
func captionFace() (font.Face, error) {
	captionOnce.Do(func() {
		captionFont, captionErr = opentype.Parse(goregular.TTF)
	})
	if captionErr != nil {
		return nil, fmt.Errorf("parsing caption font: %w", captionErr)
	}
	return opentype.NewFace(captionFont, &opentype.FaceOptions{
		Size:    captionFontSize,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// drawCaption paints a white band over the bottom of an image of size w×h
// whose top-left corner is at origin, then writes text in black.
func drawCaption(dst *image.NRGBA, origin image.Point, w, h int, text string) error {
	face, err := captionFace()
	if err != nil {
		return err
	}
	defer face.Close()

	band := image.Rect(origin.X, origin.Y+h-captionBandHeight, origin.X+w, origin.Y+h)
	fillRect(dst, band, color.White)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.Black),
		Face: face,
		Dot:  fixed.P(origin.X+captionInsetX, origin.Y+h-captionBaseline),
	}
	d.DrawString(text)
	return nil
}
