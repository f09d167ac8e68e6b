package state

import (
	"fmt"

	"todos/internal/service"
)

// Visible returns the tasks matching the snapshot's filter, in list order.
func Visible(s Snapshot) []service.Task {
	out := make([]service.Task, 0, len(s.Tasks))
	for _, t := range s.Tasks {
		if s.Filter.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Remaining counts incomplete tasks.
func Remaining(s Snapshot) int {
	n := 0
	for _, t := range s.Tasks {
		if !t.Completed {
			n++
		}
	}
	return n
}

// AllCompleted reports whether every task is completed.
// It is true for an empty list.
func AllCompleted(s Snapshot) bool {
	for _, t := range s.Tasks {
		if !t.Completed {
			return false
		}
	}
	return true
}

// HasCompleted reports whether any task is completed.
func HasCompleted(s Snapshot) bool {
	for _, t := range s.Tasks {
		if t.Completed {
			return true
		}
	}
	return false
}

// NoticeVisible reports whether the notice should be shown.
// Notices stay hidden while a request is in flight.
func NoticeVisible(s Snapshot) bool {
	return !s.Busy && !s.Notice.Empty()
}

// ItemsLeftLabel formats the footer counter.
func ItemsLeftLabel(n int) string {
	if n == 1 {
		return "1 item left"
	}
	return fmt.Sprintf("%d items left", n)
}
