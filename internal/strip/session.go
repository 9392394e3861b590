// Package strip holds the state of one comic strip editing session: the
// slot board, captions, layout settings, the latest generated artifact and
// the latest error message.
package strip

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/youruser/comicstrip/internal/board"
	"github.com/youruser/comicstrip/internal/config"
	imagepkg "github.com/youruser/comicstrip/internal/image"
)

var ErrNoArtifact = errors.New("first generate the comic strip")

// Layout is the user-controlled rendering settings.
type Layout struct {
	Rows         int    `json:"rows"`
	Background   string `json:"background"`
	ShowCaptions bool   `json:"show_captions"`
}

func DefaultLayout() Layout {
	return Layout{Rows: config.DefaultRows, Background: config.DefaultBackground}
}

// Validate checks the row count and background color.
func (l Layout) Validate() error {
	if _, err := imagepkg.ComputeGeometry(l.Rows, board.SlotCount); err != nil {
		return err
	}
	if _, err := imagepkg.ParseColor(l.Background); err != nil {
		return err
	}
	return nil
}

// Session is safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	board    *board.Board
	layout   Layout
	artifact *imagepkg.Artifact
	lastErr  string
	gen      uint64

	src            imagepkg.ImageSource
	composer       *imagepkg.Composer
	placeholderRef string
}

func NewSession(src imagepkg.ImageSource) *Session {
	return &Session{
		board:    board.New(),
		layout:   DefaultLayout(),
		src:      src,
		composer: imagepkg.NewComposer(src),
	}
}

// SetPlaceholder makes empty slots render with the image behind ref
// instead of failing generation. An empty ref restores the default.
func (s *Session) SetPlaceholder(ref string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.placeholderRef = ref
}

func (s *Session) fail(err error) error {
	s.lastErr = err.Error()
	return err
}

// AddImage puts ref into the first empty slot.
func (s *Session) AddImage(ctx context.Context, ref, label string) (board.Slot, error) {
	s.mu.Lock()
	slot, err := s.board.Add(ref, label)
	if err != nil {
		err = s.fail(err)
		s.mu.Unlock()
		return board.Slot{}, err
	}
	s.lastErr = ""
	s.mu.Unlock()

	slog.InfoContext(ctx, "image added", "slot", *slot.Index, "label", label)
	if img, err := s.src.Fetch(ctx, ref); err != nil {
		slog.WarnContext(ctx, "added image could not be decoded", "slot", *slot.Index, "error", err)
	} else if imagepkg.IsMostlyBlack(img) {
		slog.WarnContext(ctx, "added image is completely black", "slot", *slot.Index, "label", label)
	}
	return slot, nil
}

// RemoveLast clears the most recently added slot.
func (s *Session) RemoveLast(ctx context.Context) (board.Slot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	slot, err := s.board.RemoveLast()
	if err != nil {
		return board.Slot{}, s.fail(err)
	}
	slog.InfoContext(ctx, "image removed", "slot", *slot.Index, "label", slot.Label)
	return slot, nil
}

func (s *Session) SetCaption(i int, text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.board.SetCaption(i, text); err != nil {
		return s.fail(err)
	}
	return nil
}

func (s *Session) SetLayout(l Layout) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := l.Validate(); err != nil {
		return s.fail(err)
	}
	s.layout = l
	return nil
}

func (s *Session) Layout() Layout {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.layout
}

// Generate renders the current board. The previous artifact and error are
// cleared before the attempt, so a failed generation leaves no artifact.
// When generations overlap only the most recently started one is kept.
func (s *Session) Generate(ctx context.Context) (*imagepkg.Artifact, error) {
	s.mu.Lock()
	s.lastErr = ""
	s.artifact = nil
	s.gen++
	gen := s.gen
	slots, captions, layout, placeholderRef := s.board.Slots(), s.board.Captions(), s.layout, s.placeholderRef
	s.mu.Unlock()

	tiles := make([]imagepkg.Tile, len(slots))
	for i, sl := range slots {
		tiles[i] = imagepkg.Tile{Ref: sl.ImageRef, Caption: captions[i]}
	}

	art, err := s.compose(ctx, tiles, layout, placeholderRef)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		slog.DebugContext(ctx, "discarding superseded generation", "gen", gen, "current", s.gen)
		if err != nil {
			return nil, err
		}
		return art, nil
	}
	if err != nil {
		s.lastErr = fmt.Sprintf("error generating comic: %v", err)
		slog.ErrorContext(ctx, "comic generation failed", "error", err)
		return nil, err
	}
	s.artifact = art
	slog.InfoContext(ctx, "comic generated", "rows", layout.Rows, "width", art.Width, "height", art.Height, "bytes", len(art.PNG))
	return art, nil
}

func (s *Session) compose(ctx context.Context, tiles []imagepkg.Tile, layout Layout, placeholderRef string) (*imagepkg.Artifact, error) {
	bg, err := imagepkg.ParseColor(layout.Background)
	if err != nil {
		return nil, err
	}
	opts := imagepkg.Options{Rows: layout.Rows, Background: bg, ShowCaptions: layout.ShowCaptions}
	if placeholderRef != "" {
		ph, err := s.src.Fetch(ctx, placeholderRef)
		if err != nil {
			return nil, fmt.Errorf("loading placeholder: %w", err)
		}
		opts.Placeholder = ph
	}
	return s.composer.Compose(ctx, tiles, opts)
}

// Artifact returns the current artifact, if any.
func (s *Session) Artifact() (*imagepkg.Artifact, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.artifact, s.artifact != nil
}

// Err returns the latest user-facing error message, or "".
func (s *Session) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// State is a snapshot of the session for display.
type State struct {
	Slots        []board.Slot `json:"slots"`
	Labels       []string     `json:"labels"`
	Captions     []string     `json:"captions"`
	Index        int          `json:"index"`
	Layout       Layout       `json:"layout"`
	Error        string       `json:"error,omitempty"`
	HasArtifact  bool         `json:"has_artifact"`
	ArtifactSize [2]int       `json:"artifact_size,omitempty"`
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	slots := s.board.Slots()
	labels := make([]string, len(slots))
	for i, sl := range slots {
		labels[i] = sl.DisplayLabel()
	}
	st := State{
		Slots:    slots,
		Labels:   labels,
		Captions: s.board.Captions(),
		Index:    s.board.Index(),
		Layout:   s.layout,
		Error:    s.lastErr,
	}
	if s.artifact != nil {
		st.HasArtifact = true
		st.ArtifactSize = [2]int{s.artifact.Width, s.artifact.Height}
	}
	return st
}
