package board

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fill(t *testing.T, b *Board, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		_, err := b.Add(fmt.Sprintf("blob:%d", i), fmt.Sprintf("img%d.png", i))
		require.NoError(t, err)
	}
}

func TestAddFillsSlotsInScanOrder(t *testing.T) {
	b := New()
	fill(t, b, SlotCount)

	slots := b.Slots()
	for i, s := range slots {
		assert.Equal(t, fmt.Sprintf("blob:%d", i), s.ImageRef)
		assert.Equal(t, fmt.Sprintf("img%d.png", i), s.Label)
		require.NotNil(t, s.Index)
		assert.Equal(t, i, *s.Index)
	}
	assert.Equal(t, SlotCount, b.Index())
	assert.True(t, b.Full())
}

func TestAddRejectsWhenFull(t *testing.T) {
	b := New()
	fill(t, b, SlotCount)
	before := b.Slots()

	_, err := b.Add("blob:extra", "extra.png")
	require.ErrorIs(t, err, ErrSlotsFull)
	assert.Equal(t, before, b.Slots())
	assert.Equal(t, SlotCount, b.Index())
}

func TestAddRejectsEmptyInput(t *testing.T) {
	b := New()
	_, err := b.Add("", "nothing.png")
	require.ErrorIs(t, err, ErrNoInput)
	assert.Equal(t, 0, b.Index())
	assert.True(t, b.Slots()[0].Empty())
}

func TestRemoveLast(t *testing.T) {
	t.Run("empty board", func(t *testing.T) {
		b := New()
		before := b.Slots()
		_, err := b.RemoveLast()
		require.ErrorIs(t, err, ErrNothingToRemove)
		assert.Equal(t, before, b.Slots())
	})

	t.Run("clears slot index-1", func(t *testing.T) {
		b := New()
		fill(t, b, 3)
		removed, err := b.RemoveLast()
		require.NoError(t, err)
		assert.Equal(t, "blob:2", removed.ImageRef)
		assert.Equal(t, 2, b.Index())

		slots := b.Slots()
		assert.Equal(t, Slot{}, slots[2])
		assert.Equal(t, "blob:1", slots[1].ImageRef)
	})
}

func TestInterleavedAddRemoveKeepsPrefix(t *testing.T) {
	b := New()
	fill(t, b, 4)
	_, err := b.RemoveLast()
	require.NoError(t, err)
	_, err = b.RemoveLast()
	require.NoError(t, err)

	s, err := b.Add("blob:new", "new.png")
	require.NoError(t, err)
	require.NotNil(t, s.Index)
	assert.Equal(t, 2, *s.Index)

	slots := b.Slots()
	assert.Equal(t, "blob:new", slots[2].ImageRef)
	assert.True(t, slots[3].Empty())
	assert.Equal(t, 3, b.Index())

	removed, err := b.RemoveLast()
	require.NoError(t, err)
	assert.Equal(t, "blob:new", removed.ImageRef)
}

func TestCaptions(t *testing.T) {
	b := New()
	require.NoError(t, b.SetCaption(9, "the end"))
	assert.Equal(t, "the end", b.Captions()[9])
	assert.Len(t, b.Captions(), SlotCount)

	err := b.SetCaption(10, "nope")
	require.ErrorIs(t, err, ErrInvalidCaptionIndex)

	// captions are independent of slot population
	fill(t, b, 1)
	_, err = b.RemoveLast()
	require.NoError(t, err)
	assert.Equal(t, "the end", b.Captions()[9])
}

func TestDisplayLabel(t *testing.T) {
	b := New()
	s, err := b.Add("blob:a", "cat.png")
	require.NoError(t, err)
	assert.Equal(t, "File 1: cat.png", s.DisplayLabel())
	assert.Equal(t, "Preview", Slot{}.DisplayLabel())
}

func TestSlotsDoNotAliasBoard(t *testing.T) {
	b := New()
	added, err := b.Add("blob:a", "a.png")
	require.NoError(t, err)
	*added.Index = 7

	slots := b.Slots()
	require.NotNil(t, slots[0].Index)
	assert.Equal(t, 0, *slots[0].Index)

	*slots[0].Index = 5
	assert.Equal(t, 0, *b.Slots()[0].Index)
	assert.Equal(t, "File 1: a.png", b.Slots()[0].DisplayLabel())
}
