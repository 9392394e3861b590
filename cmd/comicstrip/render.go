package main

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/youruser/comicstrip/internal/board"
	"github.com/youruser/comicstrip/internal/config"
	imagepkg "github.com/youruser/comicstrip/internal/image"
	"github.com/youruser/comicstrip/internal/manifest"
	"github.com/youruser/comicstrip/internal/strip"
	"github.com/youruser/comicstrip/internal/util"
)

var errPartialBoard = errors.New("not enough images to fill the strip")

type renderOptions struct {
	rows         int
	background   string
	showCaptions bool
	captions     []string
	manifest     string
	placeholder  string
	output       string
	dataURI      bool
}

func newRenderCmd() *cobra.Command {
	opts := &renderOptions{}
	cmd := &cobra.Command{
		Use:   "render [image...]",
		Short: "Render images (files, URLs or data URIs) into a strip",
		Long: "Render fills the ten slots in order and draws them as one PNG.\n" +
			"All ten slots need an image; pass --placeholder to render fewer.",
		Example: "  comicstrip render --rows 3 --captions --caption hello --caption world --placeholder blank.png a.png b.png\n" +
			"  comicstrip render --manifest strip.csv -o out/strip.png",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts, args)
		},
	}
	f := cmd.Flags()
	f.IntVarP(&opts.rows, "rows", "r", config.DefaultRows, "number of rows (2-5)")
	f.StringVarP(&opts.background, "background", "b", config.DefaultBackground, "background color, any CSS color")
	f.BoolVar(&opts.showCaptions, "captions", false, "draw captions")
	f.StringArrayVarP(&opts.captions, "caption", "c", nil, "caption for the next slot, repeatable")
	f.StringVarP(&opts.manifest, "manifest", "m", "", "CSV manifest with image,label,caption columns")
	f.StringVar(&opts.placeholder, "placeholder", "", "image drawn in empty slots instead of failing")
	f.StringVarP(&opts.output, "output", "o", config.DefaultOutputFile, "output PNG path")
	f.BoolVar(&opts.dataURI, "data-uri", false, "print the PNG as a data URI instead of writing a file")
	return cmd
}

func runRender(cmd *cobra.Command, opts *renderOptions, args []string) error {
	ctx := cmd.Context()
	cfg := config.Load()

	type input struct{ ref, label, caption string }
	var inputs []input
	if opts.manifest != "" {
		entries, err := manifest.Load(opts.manifest)
		if err != nil {
			return err
		}
		for _, e := range entries {
			inputs = append(inputs, input{ref: e.Image, label: e.Label, caption: e.Caption})
		}
	}
	for _, a := range args {
		inputs = append(inputs, input{ref: a, label: filepath.Base(a)})
	}
	if len(inputs) == 0 {
		return board.ErrNoInput
	}
	if len(inputs) < board.SlotCount && opts.placeholder == "" {
		return fmt.Errorf("%w: got %d images, need %d or --placeholder", errPartialBoard, len(inputs), board.SlotCount)
	}
	if len(opts.captions) > board.SlotCount {
		return fmt.Errorf("at most %d captions, got %d", board.SlotCount, len(opts.captions))
	}

	fetcher := imagepkg.NewFetcher(imagepkg.FetcherOptions{
		Timeout:  cfg.FetchTimeout,
		Interval: cfg.FetchInterval,
		Burst:    cfg.FetchBurst,
		CacheTTL: cfg.ImageCacheTTL,
	})
	session := strip.NewSession(fetcher)
	session.SetPlaceholder(opts.placeholder)

	if err := session.SetLayout(strip.Layout{
		Rows:         opts.rows,
		Background:   opts.background,
		ShowCaptions: opts.showCaptions,
	}); err != nil {
		return err
	}

	for _, in := range inputs {
		slot, err := session.AddImage(ctx, in.ref, in.label)
		if err != nil {
			return fmt.Errorf("adding %s: %w", in.ref, err)
		}
		if in.caption != "" {
			if err := session.SetCaption(*slot.Index, in.caption); err != nil {
				return err
			}
		}
	}
	// flag captions override manifest captions slot by slot
	for i, c := range opts.captions {
		if c == "" {
			continue
		}
		if err := session.SetCaption(i, c); err != nil {
			return err
		}
	}

	if _, err := session.Generate(ctx); err != nil {
		return fmt.Errorf("generating comic: %w", err)
	}

	if opts.dataURI {
		art, _ := session.Artifact()
		fmt.Fprintln(cmd.OutOrStdout(), art.DataURI())
		return nil
	}
	d, err := session.Save()
	if err != nil {
		return err
	}
	if err := util.WriteFile(opts.output, d.Data); err != nil {
		return fmt.Errorf("writing %s: %w", opts.output, err)
	}
	slog.Info("comic strip saved", "path", opts.output, "bytes", len(d.Data))
	return nil
}
