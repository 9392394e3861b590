package imagepkg

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
)

const PNGMime = "image/png"

// Artifact is an encoded strip.
type Artifact struct {
	PNG      []byte
	Width    int
	Height   int
	Geometry Geometry
}

// DataURI returns the artifact as a data:image/png;base64 URI.
func (a *Artifact) DataURI() string {
	return "data:" + PNGMime + ";base64," + base64.StdEncoding.EncodeToString(a.PNG)
}

// Encode serializes img as PNG.
func Encode(img image.Image, g Geometry) (*Artifact, error) {
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, img); err != nil {
		return nil, fmt.Errorf("encoding png: %w", err)
	}
	b := img.Bounds()
	return &Artifact{PNG: buf.Bytes(), Width: b.Dx(), Height: b.Dy(), Geometry: g}, nil
}
