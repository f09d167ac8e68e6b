// Package output provides formatters for CLI output.
package output

import (
	"fmt"
	"io"
	"strings"

	"todos/internal/service"
	"todos/internal/state"
)

const (
	// ListSeparator is the separator line above the footer.
	ListSeparator = "------------"
)

// FormatTask formats a task line.
// Format: "[x] {ID:>4}  {TITLE}\n" ("[ ]" for open tasks).
func FormatTask(w io.Writer, task service.Task) {
	mark := " "
	if task.Completed {
		mark = "x"
	}
	fmt.Fprintf(w, "[%s] %4d  %s\n", mark, task.ID, normalizeTitle(task.Title))
}

// FormatFooter writes the separator, the items-left counter and the filter
// tabs with the selected one in brackets.
func FormatFooter(w io.Writer, snap state.Snapshot) {
	fmt.Fprintln(w, ListSeparator)

	tabs := make([]string, 0, len(state.Filters))
	for _, f := range state.Filters {
		if f == snap.Filter {
			tabs = append(tabs, "["+f.Label()+"]")
		} else {
			tabs = append(tabs, f.Label())
		}
	}
	fmt.Fprintf(w, "%s  %s\n", state.ItemsLeftLabel(state.Remaining(snap)), strings.Join(tabs, " "))
}

// FormatList writes the visible tasks followed by the footer.
// The footer is omitted when the list is empty.
func FormatList(w io.Writer, snap state.Snapshot) {
	for _, task := range state.Visible(snap) {
		FormatTask(w, task)
	}
	if len(snap.Tasks) == 0 {
		return
	}
	FormatFooter(w, snap)
}

// normalizeTitle normalizes a task title for display.
// - Empty or whitespace-only titles become "(untitled)"
// - Newlines are replaced with spaces
func normalizeTitle(title string) string {
	// Replace newlines with spaces
	title = strings.ReplaceAll(title, "\r", " ")
	title = strings.ReplaceAll(title, "\n", " ")

	// Trim and check for empty
	if strings.TrimSpace(title) == "" {
		return "(untitled)"
	}
	return title
}
