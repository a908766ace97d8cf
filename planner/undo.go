package planner

import "github.com/collecokzn-creator/colleco-mvp-sub004/models"

// UndoStack is a LIFO of draft snapshots taken immediately before each
// mutating op. It exclusively owns its entries; Pop hands ownership of the
// popped snapshot back to the caller.
type UndoStack struct {
	entries []models.Draft
	limit   int // 0 means unbounded
}

// NewUndoStack returns an unbounded stack, the streaming-mode default.
func NewUndoStack() *UndoStack {
	return &UndoStack{}
}

// NewUndoStackWithLimit caps the stack at n snapshots; the oldest entry is
// discarded when the cap is exceeded.
func NewUndoStackWithLimit(n int) *UndoStack {
	return &UndoStack{limit: n}
}

func (s *UndoStack) Push(snapshot models.Draft) {
	s.entries = append(s.entries, snapshot)
	if s.limit > 0 && len(s.entries) > s.limit {
		s.entries = s.entries[1:]
	}
}

// Pop removes and returns the most recent snapshot. The second return is
// false when the stack is empty.
func (s *UndoStack) Pop() (models.Draft, bool) {
	if len(s.entries) == 0 {
		return models.Draft{}, false
	}
	last := s.entries[len(s.entries)-1]
	s.entries = s.entries[:len(s.entries)-1]
	return last, true
}

func (s *UndoStack) Len() int {
	return len(s.entries)
}
