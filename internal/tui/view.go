package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"todos/internal/config"
	"todos/internal/service"
	"todos/internal/state"
)

// View renders the screen.
func (m *Model) View() string {
	if m.store.OwnerID() <= 0 {
		return m.viewWarning()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("todos"))
	b.WriteString("\n")
	b.WriteString(m.viewHeader())
	b.WriteString("\n")

	if m.snap.Busy {
		b.WriteString(m.viewBusy())
	} else {
		b.WriteString(m.viewList())
	}

	if len(m.snap.Tasks) > 0 {
		b.WriteString(m.viewFooter())
		b.WriteString("\n")
	}

	if state.NoticeVisible(m.snap) {
		b.WriteString(noticeStyle.Render("⚠ " + m.snap.Notice.Message + "  (x to dismiss)"))
		b.WriteString("\n")
	}

	b.WriteString(m.viewHelp())
	return b.String()
}

func (m *Model) viewWarning() string {
	msg := fmt.Sprintf("Please set your user id to load your todos.\n\nRun `todos init --user-id <n>`, or set %s.\n\nPress q to quit.", config.EnvUserID)
	return warningStyle.Render(msg) + "\n"
}

// viewHeader renders the toggle-all marker and the new task input.
func (m *Model) viewHeader() string {
	marker := "  "
	if len(m.snap.Tasks) > 0 {
		if state.AllCompleted(m.snap) {
			marker = toggleAllActiveStyle.Render("❯") + " "
		} else {
			marker = toggleAllStyle.Render("❯") + " "
		}
	}

	input := m.input.View()
	if m.snap.Busy {
		input = disabledStyle.Render(m.input.Value())
		if m.input.Value() == "" {
			input = disabledStyle.Render(m.input.Placeholder)
		}
	}
	return marker + input
}

func (m *Model) viewBusy() string {
	line := m.spinner.View() + " "
	if m.snap.Pending != nil {
		line += pendingStyle.Render(m.snap.Pending.Title)
	} else {
		line += pendingStyle.Render("Loading...")
	}
	return "\n" + line + "\n"
}

func (m *Model) viewList() string {
	visible := state.Visible(m.snap)
	if len(visible) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, task := range visible {
		b.WriteString(m.viewTask(task, i == m.cursor && m.focus == focusList))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *Model) viewTask(task service.Task, selected bool) string {
	cursor := "  "
	if selected {
		cursor = cursorStyle.Render("> ")
	}
	check := "[ ]"
	style := taskStyle
	if task.Completed {
		check = "[x]"
		style = doneTaskStyle
	}
	return cursor + check + " " + style.Render(task.Title)
}

// viewFooter renders the items-left counter, filter tabs and the clear
// completed action.
func (m *Model) viewFooter() string {
	tabs := make([]string, 0, len(state.Filters))
	for _, f := range state.Filters {
		if f == m.snap.Filter {
			tabs = append(tabs, activeTabStyle.Render(f.Label()))
		} else {
			tabs = append(tabs, tabStyle.Render(f.Label()))
		}
	}

	clearAction := disabledStyle.Render("Clear completed")
	if state.HasCompleted(m.snap) {
		clearAction = taskStyle.Render("Clear completed")
	}

	row := lipgloss.JoinHorizontal(lipgloss.Bottom,
		state.ItemsLeftLabel(state.Remaining(m.snap)),
		"  ",
		lipgloss.JoinHorizontal(lipgloss.Bottom, tabs...),
		"  ",
		clearAction,
	)
	return footerStyle.Render(row)
}

func (m *Model) viewHelp() string {
	bindings := keys.inputHelp()
	if m.focus == focusList {
		bindings = keys.listHelp()
	}
	parts := make([]string, 0, len(bindings))
	for _, k := range bindings {
		parts = append(parts, helpEntry(k))
	}
	return helpStyle.Render(strings.Join(parts, " • "))
}

func helpEntry(k key.Binding) string {
	h := k.Help()
	return h.Key + " " + h.Desc
}
