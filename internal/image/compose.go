package imagepkg

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/sync/errgroup"
)

// DefaultBackground is used when Options.Background is nil.
var DefaultBackground color.Color = color.RGBA{0x80, 0x80, 0x80, 0xff}

// Tile is one slot as the compositor sees it.
type Tile struct {
	Ref     string
	Caption string
}

type Options struct {
	Rows         int
	Background   color.Color
	ShowCaptions bool
	// Placeholder is drawn for tiles with an empty reference. When nil an
	// empty reference fails the whole generation.
	Placeholder image.Image
}

// GenerationError reports the tile that stopped a generation. Tile is 1-based.
type GenerationError struct {
	Tile int
	Err  error
}

func (e *GenerationError) Error() string {
	return fmt.Sprintf("error loading image %d: %v", e.Tile, e.Err)
}

func (e *GenerationError) Unwrap() error { return e.Err }

// ImageSource resolves image references.
type ImageSource interface {
	Fetch(ctx context.Context, ref string) (image.Image, error)
}

type Composer struct {
	src ImageSource
}

func NewComposer(src ImageSource) *Composer {
	return &Composer{src: src}
}

// Render decodes every tile concurrently and draws the grid. Any tile
// failure aborts the render; nothing partial is returned.
func (c *Composer) Render(ctx context.Context, tiles []Tile, opts Options) (*image.NRGBA, Geometry, error) {
	if len(tiles) == 0 {
		return nil, Geometry{}, errors.New("no tiles to render")
	}
	g, err := ComputeGeometry(opts.Rows, len(tiles))
	if err != nil {
		return nil, Geometry{}, err
	}
	bg := opts.Background
	if bg == nil {
		bg = DefaultBackground
	}
	places := Placements(g, len(tiles))
	drawn := make([]*image.NRGBA, len(tiles))

	eg, egCtx := errgroup.WithContext(ctx)
	for i := range tiles {
		i := i
		eg.Go(func() error {
			src, err := c.decode(egCtx, tiles[i].Ref, opts.Placeholder)
			if err != nil {
				return &GenerationError{Tile: i + 1, Err: err}
			}
			p := places[i]
			t, err := DrawTile(src, p.Width, p.Height, TileStyle{
				Background:   bg,
				Caption:      tiles[i].Caption,
				ShowCaptions: opts.ShowCaptions,
			})
			if err != nil {
				return &GenerationError{Tile: i + 1, Err: err}
			}
			drawn[i] = t
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, Geometry{}, err
	}

	w, h := g.PixelSize()
	canvas := imaging.New(w, h, color.Transparent)
	for i, t := range drawn {
		p := places[i]
		canvas = imaging.Paste(canvas, t, image.Pt(int(math.Round(p.X)), int(math.Round(p.Y))))
	}
	slog.DebugContext(ctx, "rendered strip", "rows", g.Rows, "width", w, "height", h, "tiles", len(tiles))
	return canvas, g, nil
}

// Compose renders the strip and encodes it to PNG once.
func (c *Composer) Compose(ctx context.Context, tiles []Tile, opts Options) (*Artifact, error) {
	canvas, g, err := c.Render(ctx, tiles, opts)
	if err != nil {
		return nil, err
	}
	return Encode(canvas, g)
}

func (c *Composer) decode(ctx context.Context, ref string, placeholder image.Image) (image.Image, error) {
	if ref == "" {
		if placeholder != nil {
			return placeholder, nil
		}
		return nil, ErrEmptyReference
	}
	return c.src.Fetch(ctx, ref)
}
