package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/vastucrop/internal/geom"
	"github.com/example/vastucrop/internal/stroke"
)

func mk(x float64) stroke.Stroke {
	s := stroke.Begin(stroke.Erase, geom.Pt(x, 0), 10, geom.Fit{})
	return stroke.Extend(s, geom.Pt(x+10, 0))
}

func ids(strokes []stroke.Stroke) []string {
	out := make([]string, len(strokes))
	for i, s := range strokes {
		out[i] = s.ID
	}
	return out
}

func TestUndoRedoInverse(t *testing.T) {
	h := New()
	a, b, c := mk(0), mk(20), mk(40)
	h.Commit([]stroke.Stroke{a})
	h.Commit([]stroke.Stroke{a, b})
	h.Commit([]stroke.Stroke{a, b, c})

	before := ids(h.Current())
	_, moved := h.Undo()
	require.True(t, moved)
	assert.Equal(t, []string{a.ID, b.ID}, ids(h.Current()))
	got, moved := h.Redo()
	require.True(t, moved)
	assert.Equal(t, before, ids(got))

	h.Undo()
	h.Undo()
	got, moved = h.Undo()
	require.True(t, moved)
	assert.Empty(t, got)
	got, moved = h.Redo()
	require.True(t, moved)
	assert.Equal(t, []string{a.ID}, ids(got))
}

func TestNoOpsAtEnds(t *testing.T) {
	h := New()
	_, moved := h.Undo()
	assert.False(t, moved)
	_, moved = h.Redo()
	assert.False(t, moved)

	h.Commit([]stroke.Stroke{mk(0)})
	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 1, h.Cursor())
	require.True(t, h.CanUndo())
	got, moved := h.Undo()
	require.True(t, moved)
	assert.Empty(t, got)
	assert.Equal(t, 0, h.Cursor())

	assert.False(t, h.CanUndo(), "the empty snapshot is the floor")
	_, moved = h.Undo()
	assert.False(t, moved)
	assert.Equal(t, 0, h.Cursor())
}

func TestCommitTruncatesRedoTail(t *testing.T) {
	h := New()
	a, b, c := mk(0), mk(20), mk(40)
	h.Commit([]stroke.Stroke{a})
	h.Commit([]stroke.Stroke{a, b})
	h.Undo()
	require.True(t, h.CanRedo())

	h.Commit([]stroke.Stroke{a, c})
	assert.False(t, h.CanRedo())
	assert.Equal(t, 3, h.Len(), "empty, a, a+c")
	assert.Equal(t, []string{a.ID, c.ID}, ids(h.Current()))
	assert.Equal(t, 2, h.Strokes(), "b is no longer referenced")
}

func TestStrokesAreShared(t *testing.T) {
	h := New()
	a, b := mk(0), mk(20)
	h.Commit([]stroke.Stroke{a})
	h.Commit([]stroke.Stroke{a, b})
	assert.Equal(t, 2, h.Strokes())
}

func TestCommitFreezes(t *testing.T) {
	h := New()
	a := mk(0)
	h.Commit([]stroke.Stroke{a})
	a.Points[0] = geom.Pt(99, 99)
	assert.Equal(t, geom.Pt(0, 0), h.Current()[0].Points[0])
}

func TestClear(t *testing.T) {
	h := New()
	h.Commit([]stroke.Stroke{mk(0)})
	h.Clear()
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, -1, h.Cursor())
	assert.Nil(t, h.Current())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())
}
