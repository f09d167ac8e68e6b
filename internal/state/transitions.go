package state

import (
	"strings"

	"todos/internal/service"
)

// Transition maps one snapshot to the next.
type Transition func(Snapshot) Snapshot

// Then chains t and next.
func (t Transition) Then(next Transition) Transition {
	return func(s Snapshot) Snapshot {
		return next(t(s))
	}
}

// SetBusy sets or clears the advisory busy flag.
func SetBusy(busy bool) Transition {
	return func(s Snapshot) Snapshot {
		s.Busy = busy
		return s
	}
}

// Loaded replaces the task list with the server's and clears the notice.
func Loaded(tasks []service.Task) Transition {
	return func(s Snapshot) Snapshot {
		s.Tasks = append([]service.Task(nil), tasks...)
		s.Notice = Notice{}
		return s
	}
}

// Fail sets msg as the current notice. token comes from the caller so
// each message owns its own expiry.
func Fail(msg string, token uint64) Transition {
	return func(s Snapshot) Snapshot {
		s.Notice = Notice{Message: msg, Token: token}
		return s
	}
}

// Expire clears the notice only if it is still the one identified by token.
func Expire(token uint64) Transition {
	return func(s Snapshot) Snapshot {
		if s.Notice.Token == token {
			s.Notice = Notice{}
		}
		return s
	}
}

// DismissNotice clears whatever notice is shown.
func DismissNotice() Transition {
	return func(s Snapshot) Snapshot {
		s.Notice = Notice{}
		return s
	}
}

// SetDraft replaces the text typed for the next task.
func SetDraft(title string) Transition {
	return func(s Snapshot) Snapshot {
		s.DraftTitle = title
		return s
	}
}

// SetFilter replaces the active filter.
func SetFilter(f Filter) Transition {
	return func(s Snapshot) Snapshot {
		s.Filter = f
		return s
	}
}

// NormalizeTitle trims the draft. An empty result is invalid.
func NormalizeTitle(title string) string {
	return strings.TrimSpace(title)
}

// BeginCreate shows the unsaved placeholder (ID 0) and marks the store busy.
func BeginCreate(title string, ownerID int) Transition {
	return func(s Snapshot) Snapshot {
		s.Busy = true
		s.Pending = &service.Task{
			ID:        0,
			Title:     title,
			Completed: false,
			UserID:    ownerID,
		}
		return s
	}
}

// Created appends the saved task and clears the placeholder and draft.
func Created(task service.Task) Transition {
	return func(s Snapshot) Snapshot {
		s.Tasks = appendTask(s.Tasks, task)
		s.Pending = nil
		s.DraftTitle = ""
		return s
	}
}

// EndCreate clears the placeholder and busy flag whatever the outcome.
func EndCreate() Transition {
	return func(s Snapshot) Snapshot {
		s.Pending = nil
		s.Busy = false
		return s
	}
}

// Removed drops the task with the given id.
func Removed(id int) Transition {
	return func(s Snapshot) Snapshot {
		s.Tasks = filterTasks(s.Tasks, func(t service.Task) bool { return t.ID != id })
		return s
	}
}

// ClearedCompleted drops every completed task. If before had any
// incomplete task, the filter is forced to Completed.
func ClearedCompleted(before Snapshot) Transition {
	forceCompleted := false
	for _, t := range before.Tasks {
		if !t.Completed {
			forceCompleted = true
			break
		}
	}
	return func(s Snapshot) Snapshot {
		s.Tasks = filterTasks(s.Tasks, func(t service.Task) bool { return !t.Completed })
		if forceCompleted {
			s.Filter = FilterCompleted
		}
		return s
	}
}

// Toggled flips the completion flag of the task with the given id, locally.
// The filter then steps Completed -> Active -> All -> All, regardless of
// which task was toggled.
func Toggled(id int) Transition {
	return func(s Snapshot) Snapshot {
		tasks := make([]service.Task, len(s.Tasks))
		for i, t := range s.Tasks {
			if t.ID == id {
				t.Completed = !t.Completed
			}
			tasks[i] = t
		}
		s.Tasks = tasks

		switch s.Filter {
		case FilterCompleted:
			s.Filter = FilterActive
		default:
			s.Filter = FilterAll
		}
		return s
	}
}

// CompletedIDs returns the ids of completed tasks in list order.
func CompletedIDs(s Snapshot) []int {
	var ids []int
	for _, t := range s.Tasks {
		if t.Completed {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

func appendTask(tasks []service.Task, task service.Task) []service.Task {
	out := make([]service.Task, 0, len(tasks)+1)
	out = append(out, tasks...)
	return append(out, task)
}

func filterTasks(tasks []service.Task, keep func(service.Task) bool) []service.Task {
	out := make([]service.Task, 0, len(tasks))
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
