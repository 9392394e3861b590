package imagepkg

import (
	"errors"
	"fmt"
	"math"
)

const (
	BaseTileSize = 200.0
	BorderWidth  = 10.0
	Margin       = 2.0
)

var ErrUnsupportedRows = errors.New("row count must be 2, 3, 4 or 5")

// Geometry is the canvas and tile layout for one row count.
type Geometry struct {
	Rows         int     `json:"rows"`
	Columns      int     `json:"columns"`
	TileWidth    float64 `json:"tile_width"`
	TileHeight   float64 `json:"tile_height"`
	BorderWidth  float64 `json:"border_width"`
	Margin       float64 `json:"margin"`
	CanvasWidth  float64 `json:"canvas_width"`
	CanvasHeight float64 `json:"canvas_height"`
}

// rowRule holds the fitted constants for one row count. A zero divisor
// keeps the base tile size.
type rowRule struct {
	height  func(rows int) float64
	divisor float64
}

func stackedHeight(rows int) float64 {
	return float64(rows) * (BaseTileSize + BorderWidth)
}

// Empirical values; rows outside this table are not supported.
var rowRules = map[int]rowRule{
	2: {height: stackedHeight},
	3: {height: func(rows int) float64 { return 733.34 + float64(rows+1)*BorderWidth }, divisor: 3},
	4: {height: func(rows int) float64 { return 1001 + float64(rows+1)*BorderWidth }, divisor: 2},
	5: {height: stackedHeight},
}

// ComputeGeometry returns the layout for rows rows holding slots tiles.
func ComputeGeometry(rows, slots int) (Geometry, error) {
	rule, ok := rowRules[rows]
	if !ok {
		return Geometry{}, fmt.Errorf("%w: got %d", ErrUnsupportedRows, rows)
	}
	cols := int(math.Ceil(float64(slots) / float64(rows)))
	g := Geometry{
		Rows:         rows,
		Columns:      cols,
		TileWidth:    BaseTileSize,
		TileHeight:   BaseTileSize,
		BorderWidth:  BorderWidth,
		Margin:       Margin,
		CanvasWidth:  float64(cols) * (BaseTileSize + BorderWidth),
		CanvasHeight: rule.height(rows),
	}
	if rule.divisor > 0 {
		size := (g.CanvasWidth - rule.divisor*BorderWidth) / rule.divisor
		g.TileWidth, g.TileHeight = size, size
	}
	return g, nil
}

// PixelSize is the raster size of the canvas. Fractional sizes truncate.
func (g Geometry) PixelSize() (int, int) {
	return int(g.CanvasWidth), int(g.CanvasHeight)
}

// Placement is where one tile lands on the canvas. X and Y are the tile's
// outer top-left corner, Width and Height its interior image size.
type Placement struct {
	Index  int     `json:"index"`
	Row    int     `json:"row"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Placements lays out n tiles left to right, wrapping when the cursor
// reaches the canvas width. Odd rows use the base tile size and even rows
// the derived size, which only differ for 3 and 4 rows.
func Placements(g Geometry, n int) []Placement {
	out := make([]Placement, n)
	x, y := 0.0, 0.0
	w, h := g.TileWidth, g.TileHeight
	row := 0
	for i := 0; i < n; i++ {
		out[i] = Placement{Index: i, Row: row, X: x, Y: y, Width: w, Height: h}
		x += w + g.BorderWidth
		if x >= g.CanvasWidth {
			x = 0
			y += h + g.BorderWidth
			row++
			if row%2 == 1 {
				w, h = BaseTileSize, BaseTileSize
			} else {
				w, h = g.TileWidth, g.TileHeight
			}
		}
	}
	return out
}
