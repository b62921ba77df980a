// Package undo lets the user reverse the single most recent destructive
// action. Inverse actions are tagged values rather than stored closures,
// so nothing captures mutable state that could go stale.
package undo

import (
	"errors"

	"github.com/stashd/stash/internal/model"
	"github.com/stashd/stash/internal/repo"
)

// ActionKind distinguishes the inverse actions the stack can replay.
type ActionKind int

const (
	// ActionReinsert restores a deleted bookmark at the head of the
	// collection. Reinsertion is skipped if the id already exists.
	ActionReinsert ActionKind = iota
	// ActionRestoreArchive restores a bookmark's prior archive flag.
	ActionRestoreArchive
)

// Action is a tagged inverse of a destructive operation.
type Action struct {
	Kind     ActionKind
	Bookmark model.Bookmark // ActionReinsert
	ID       string         // ActionRestoreArchive
	Archived bool           // ActionRestoreArchive: the prior flag value
}

// Reinsert builds the inverse of a delete.
func Reinsert(b model.Bookmark) Action {
	return Action{Kind: ActionReinsert, Bookmark: b}
}

// RestoreArchive builds the inverse of an archive-toggle.
func RestoreArchive(id string, prior bool) Action {
	return Action{Kind: ActionRestoreArchive, ID: id, Archived: prior}
}

// Stack holds at most one pending inverse action. Arming replaces any
// previous action; there is no history beyond depth 1. The armed state
// is never persisted, so a reload clears it.
type Stack struct {
	pending *Action
}

// Arm replaces the pending inverse with a newer one.
func (s *Stack) Arm(a Action) {
	s.pending = &a
}

// Armed reports whether an inverse action is pending.
func (s *Stack) Armed() bool {
	return s.pending != nil
}

// Consume executes the pending inverse against the repository and empties
// the stack. Consuming an empty stack is a no-op. A bookmark that vanished
// since arming makes the restore a no-op as well.
func (s *Stack) Consume(r *repo.Repository) error {
	if s.pending == nil {
		return nil
	}
	a := *s.pending
	s.pending = nil

	switch a.Kind {
	case ActionReinsert:
		return r.RestoreBookmark(a.Bookmark)
	case ActionRestoreArchive:
		err := r.SetArchived(a.ID, a.Archived)
		var notFound *repo.NotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}
	return nil
}
