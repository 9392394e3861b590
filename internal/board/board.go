package board

import (
	"errors"
	"fmt"
)

// SlotCount is the fixed number of positions on a board.
const SlotCount = 10

var (
	ErrNoInput             = errors.New("no file chosen")
	ErrSlotsFull           = errors.New("all slots are full, no more placeholders available")
	ErrNothingToRemove     = errors.New("no image found, upload an image first")
	ErrInvalidCaptionIndex = errors.New("caption index out of range")
)

// Slot is one position on the board. A slot is either fully empty or
// fully populated.
type Slot struct {
	ImageRef string `json:"image_url"`
	Label    string `json:"label"`
	Index    *int   `json:"index"` // insertion index, nil when empty
}

// clone returns s with its own copy of Index.
func (s Slot) clone() Slot {
	if s.Index != nil {
		idx := *s.Index
		s.Index = &idx
	}
	return s
}

func (s Slot) Empty() bool {
	return s.ImageRef == ""
}

// DisplayLabel is the text shown under a populated slot, e.g. "File 3: cat.png".
func (s Slot) DisplayLabel() string {
	if s.Empty() || s.Index == nil {
		return "Preview"
	}
	return fmt.Sprintf("File %d: %s", *s.Index+1, s.Label)
}

// Board holds the ten image slots and their captions. The zero value is an
// empty board ready to use.
//
// Populated slots always form a prefix of the slot list, so the insertion
// index is the length of that prefix and is never stored separately.
type Board struct {
	slots    [SlotCount]Slot
	captions [SlotCount]string
}

func New() *Board {
	return &Board{}
}

// Index returns the current insertion index (number of populated slots).
func (b *Board) Index() int {
	for i, s := range b.slots {
		if s.Empty() {
			return i
		}
	}
	return SlotCount
}

func (b *Board) Full() bool {
	return b.Index() == SlotCount
}

// Add places ref in the first empty slot and returns the populated slot.
func (b *Board) Add(ref, label string) (Slot, error) {
	if ref == "" {
		return Slot{}, ErrNoInput
	}
	next := b.Index()
	if next >= SlotCount {
		return Slot{}, ErrSlotsFull
	}
	idx := next
	b.slots[next] = Slot{ImageRef: ref, Label: label, Index: &idx}
	return b.slots[next].clone(), nil
}

// RemoveLast clears the most recently populated slot and returns what it held.
func (b *Board) RemoveLast() (Slot, error) {
	n := b.Index()
	if n == 0 {
		return Slot{}, ErrNothingToRemove
	}
	removed := b.slots[n-1]
	b.slots[n-1] = Slot{}
	return removed, nil
}

func (b *Board) SetCaption(i int, text string) error {
	if i < 0 || i >= SlotCount {
		return fmt.Errorf("%w: %d", ErrInvalidCaptionIndex, i)
	}
	b.captions[i] = text
	return nil
}

func (b *Board) Slots() []Slot {
	out := make([]Slot, SlotCount)
	for i, s := range b.slots {
		out[i] = s.clone()
	}
	return out
}

func (b *Board) Captions() []string {
	out := make([]string, SlotCount)
	copy(out, b.captions[:])
	return out
}
