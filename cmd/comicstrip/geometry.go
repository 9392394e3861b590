package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/youruser/comicstrip/internal/board"
	"github.com/youruser/comicstrip/internal/config"
	imagepkg "github.com/youruser/comicstrip/internal/image"
)

func newGeometryCmd() *cobra.Command {
	var rows int
	cmd := &cobra.Command{
		Use:   "geometry",
		Short: "Print canvas size and tile placements for a row count",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := imagepkg.ComputeGeometry(rows, board.SlotCount)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "rows=%d columns=%d canvas=%gx%g tile=%gx%g\n",
				g.Rows, g.Columns, g.CanvasWidth, g.CanvasHeight, g.TileWidth, g.TileHeight)

			tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TILE\tROW\tX\tY\tSIZE")
			for _, p := range imagepkg.Placements(g, board.SlotCount) {
				fmt.Fprintf(tw, "%d\t%d\t%g\t%g\t%gx%g\n", p.Index+1, p.Row, p.X, p.Y, p.Width, p.Height)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&rows, "rows", "r", config.DefaultRows, "number of rows (2-5)")
	return cmd
}
