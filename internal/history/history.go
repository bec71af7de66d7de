// Package history keeps the undo/redo timeline of committed strokes.
//
// Every snapshot is an index list into an arena of frozen strokes, so a stroke
// that survives many commits is stored once.
package history

import "github.com/example/vastucrop/internal/stroke"

// History is not safe for concurrent use; the cropper serializes access.
type History struct {
	arena     []stroke.Stroke
	byID      map[string]int
	snapshots [][]int
	cursor    int
}

// New returns an empty history.
func New() *History {
	return &History{byID: map[string]int{}, cursor: -1}
}

func (h *History) intern(s stroke.Stroke) int {
	if i, ok := h.byID[s.ID]; ok && s.ID != "" {
		return i
	}
	h.arena = append(h.arena, s.Freeze())
	i := len(h.arena) - 1
	if s.ID != "" {
		h.byID[s.ID] = i
	}
	return i
}

// Commit records strokes as the newest snapshot. Anything past the cursor is
// discarded first. The first commit on an empty history also records the
// empty state before it, so every commit can be undone.
func (h *History) Commit(strokes []stroke.Stroke) {
	if h.byID == nil {
		h.byID = map[string]int{}
	}
	if len(h.snapshots) == 0 {
		h.snapshots = [][]int{{}}
		h.cursor = 0
	}
	h.snapshots = h.snapshots[:h.cursor+1]
	snap := make([]int, len(strokes))
	for i, s := range strokes {
		snap[i] = h.intern(s)
	}
	h.snapshots = append(h.snapshots, snap)
	h.cursor = len(h.snapshots) - 1
	h.compact()
}

// compact drops arena entries no snapshot references any more, which only
// happens after a redo tail was truncated.
func (h *History) compact() {
	used := make([]bool, len(h.arena))
	live := 0
	for _, snap := range h.snapshots {
		for _, i := range snap {
			if !used[i] {
				used[i] = true
				live++
			}
		}
	}
	if live == len(h.arena) {
		return
	}
	remap := make([]int, len(h.arena))
	arena := make([]stroke.Stroke, 0, live)
	byID := make(map[string]int, live)
	for i, s := range h.arena {
		if !used[i] {
			continue
		}
		remap[i] = len(arena)
		if s.ID != "" {
			byID[s.ID] = len(arena)
		}
		arena = append(arena, s)
	}
	for _, snap := range h.snapshots {
		for j, i := range snap {
			snap[j] = remap[i]
		}
	}
	h.arena = arena
	h.byID = byID
}

// Undo steps the cursor back. moved is false at the empty snapshot that
// starts the timeline.
func (h *History) Undo() (strokes []stroke.Stroke, moved bool) {
	if h.cursor <= 0 {
		return h.Current(), false
	}
	h.cursor--
	return h.Current(), true
}

// Redo steps the cursor forward. moved is false at the end of the timeline.
func (h *History) Redo() (strokes []stroke.Stroke, moved bool) {
	if h.cursor >= len(h.snapshots)-1 {
		return h.Current(), false
	}
	h.cursor++
	return h.Current(), true
}

// Clear forgets every snapshot.
func (h *History) Clear() {
	h.arena = nil
	h.byID = map[string]int{}
	h.snapshots = nil
	h.cursor = -1
}

// Current returns the strokes of the snapshot under the cursor. The slice is
// fresh; the strokes share point storage with the arena and must not be
// mutated.
func (h *History) Current() []stroke.Stroke {
	if h.cursor < 0 || h.cursor >= len(h.snapshots) {
		return nil
	}
	snap := h.snapshots[h.cursor]
	out := make([]stroke.Stroke, len(snap))
	for i, idx := range snap {
		out[i] = h.arena[idx]
	}
	return out
}

// Len is the number of snapshots.
func (h *History) Len() int { return len(h.snapshots) }

// Cursor is the index of the active snapshot, -1 when empty.
func (h *History) Cursor() int { return h.cursor }

func (h *History) CanUndo() bool { return h.cursor > 0 }

func (h *History) CanRedo() bool { return h.cursor < len(h.snapshots)-1 }

// Strokes is the number of distinct strokes held in the arena.
func (h *History) Strokes() int { return len(h.arena) }
