// Package state holds the immutable view-state snapshot of the to-do list,
// the closed set of transitions over it, and the values derived from it.
//
// Every transition takes a Snapshot and returns a new one. Inputs are never
// mutated; the task slice is copied whenever it changes.
package state

import "todos/internal/service"

// Notice messages. They are fixed and carry no cause detail.
const (
	MsgLoadFailed   = "Unable to load todos"
	MsgEmptyTitle   = "Title should not be empty"
	MsgAddFailed    = "Unable to add a todo"
	MsgDeleteFailed = "Unable to delete a todo"
)

// Notice is the current user-facing error message.
// Token identifies this particular message so that its expiry can be
// told apart from the expiry of a message it replaced.
type Notice struct {
	Message string
	Token   uint64
}

// Empty reports whether no message is set.
func (n Notice) Empty() bool {
	return n.Message == ""
}

// Snapshot is one consistent view of the list.
type Snapshot struct {
	Tasks      []service.Task
	Filter     Filter
	DraftTitle string
	Busy       bool
	Pending    *service.Task
	Notice     Notice
}

// Clone returns a copy that shares nothing mutable with s.
func (s Snapshot) Clone() Snapshot {
	out := s
	if s.Tasks != nil {
		out.Tasks = make([]service.Task, len(s.Tasks))
		copy(out.Tasks, s.Tasks)
	}
	if s.Pending != nil {
		p := *s.Pending
		out.Pending = &p
	}
	return out
}

// Find returns the task with the given id.
func (s Snapshot) Find(id int) (service.Task, bool) {
	for _, t := range s.Tasks {
		if t.ID == id {
			return t, true
		}
	}
	return service.Task{}, false
}
