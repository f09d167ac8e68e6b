// Package tui is the interactive to-do screen.
//
// The Model renders store snapshots. Every user action is handed to the
// store, either directly for local transitions or inside a tea.Cmd for
// the ones that call the backend. New snapshots arrive through a store
// subscription.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"todos/internal/service"
	"todos/internal/state"
	"todos/internal/store"
)

type focus int

const (
	focusInput focus = iota
	focusList
)

// Operation names carried by opDoneMsg.
const (
	opLoad   = "load"
	opSubmit = "submit"
	opDelete = "delete"
	opClear  = "clear"
)

// defaultInputWidth is used until the first window size is known.
const defaultInputWidth = 40

// snapshotMsg delivers a published store snapshot.
type snapshotMsg state.Snapshot

// storeClosedMsg reports that the subscription ended.
type storeClosedMsg struct{}

// opDoneMsg reports the end of a backend operation.
type opDoneMsg struct {
	op  string
	err error
}

// Model is the bubbletea model of the to-do screen.
type Model struct {
	ctx         context.Context
	store       *store.Store
	snaps       <-chan state.Snapshot
	unsubscribe func()

	snap    state.Snapshot
	input   textinput.Model
	spinner spinner.Model
	focus   focus
	cursor  int
	width   int
}

// New creates a model bound to st. Close must be called when done.
func New(ctx context.Context, st *store.Store) *Model {
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.Prompt = ""
	ti.Width = defaultInputWidth
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = pendingStyle

	snaps, unsubscribe := st.Subscribe()

	return &Model{
		ctx:         ctx,
		store:       st,
		snaps:       snaps,
		unsubscribe: unsubscribe,
		snap:        st.Snapshot(),
		input:       ti,
		spinner:     sp,
		focus:       focusInput,
	}
}

// Close ends the store subscription.
func (m *Model) Close() {
	m.unsubscribe()
}

// Snapshot returns the last snapshot the model rendered.
func (m *Model) Snapshot() state.Snapshot {
	return m.snap
}

// Init starts the first load.
func (m *Model) Init() tea.Cmd {
	if m.store.OwnerID() <= 0 {
		return nil
	}
	return tea.Batch(
		textinput.Blink,
		m.spinner.Tick,
		waitForSnapshot(m.snaps),
		m.run(opLoad, m.store.Load),
	)
}

// Update handles one message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = max(msg.Width-8, 10)
		return m, nil

	case snapshotMsg:
		m.snap = state.Snapshot(msg)
		m.clampCursor()
		return m, waitForSnapshot(m.snaps)

	case storeClosedMsg:
		return m, nil

	case opDoneMsg:
		// Failures already surface as store notices.
		if msg.op == opSubmit && msg.err == nil {
			m.input.Reset()
		}
		m.refresh()
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusInput {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, keys.ForceQuit) {
		return m, tea.Quit
	}
	if m.store.OwnerID() <= 0 {
		if key.Matches(msg, keys.Quit) || msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		return m, nil
	}
	if key.Matches(msg, keys.Focus) {
		m.switchFocus()
		return m, nil
	}

	if m.focus == focusInput {
		return m.handleInputKey(msg)
	}
	return m.handleListKey(msg)
}

func (m *Model) handleInputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// The input is disabled while a request is in flight.
	if m.snap.Busy {
		return m, nil
	}
	if key.Matches(msg, keys.Submit) {
		m.store.SetDraft(m.input.Value())
		return m, m.run(opSubmit, m.store.Submit)
	}

	var cmd tea.Cmd
	before := m.input.Value()
	m.input, cmd = m.input.Update(msg)
	if after := m.input.Value(); after != before {
		m.store.SetDraft(after)
	}
	return m, cmd
}

func (m *Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, keys.FilterAll):
		m.setFilter(state.FilterAll)
		return m, nil
	case key.Matches(msg, keys.FilterActive):
		m.setFilter(state.FilterActive)
		return m, nil
	case key.Matches(msg, keys.FilterCompleted):
		m.setFilter(state.FilterCompleted)
		return m, nil
	case key.Matches(msg, keys.Dismiss):
		m.store.DismissError()
		m.refresh()
		return m, nil
	}

	// The list is hidden while busy.
	if m.snap.Busy {
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(state.Visible(m.snap))-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Toggle):
		if task, ok := m.selected(); ok && !task.IsPlaceholder() {
			_ = m.store.Toggle(task.ID)
			m.refresh()
		}
	case key.Matches(msg, keys.Delete):
		if task, ok := m.selected(); ok && !task.IsPlaceholder() {
			id := task.ID
			return m, m.run(opDelete, func(ctx context.Context) error {
				return m.store.Delete(ctx, id)
			})
		}
	case key.Matches(msg, keys.ClearCompleted):
		if state.HasCompleted(m.snap) {
			return m, m.run(opClear, func(ctx context.Context) error {
				_, err := m.store.ClearCompleted(ctx)
				return err
			})
		}
	case key.Matches(msg, keys.Reload):
		return m, m.run(opLoad, m.store.Load)
	}
	return m, nil
}

func (m *Model) switchFocus() {
	if m.focus == focusInput {
		m.focus = focusList
		m.input.Blur()
		return
	}
	m.focus = focusInput
	m.input.Focus()
}

func (m *Model) setFilter(f state.Filter) {
	m.store.SetFilter(f)
	m.refresh()
}

// refresh reads the store directly after a synchronous transition so the
// next frame does not wait for the subscription.
func (m *Model) refresh() {
	m.snap = m.store.Snapshot()
	m.clampCursor()
}

func (m *Model) selected() (service.Task, bool) {
	visible := state.Visible(m.snap)
	if m.cursor < 0 || m.cursor >= len(visible) {
		return service.Task{}, false
	}
	return visible[m.cursor], true
}

func (m *Model) clampCursor() {
	n := len(state.Visible(m.snap))
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// run executes fn off the update loop and reports its result.
func (m *Model) run(op string, fn func(context.Context) error) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		return opDoneMsg{op: op, err: fn(ctx)}
	}
}

func waitForSnapshot(ch <-chan state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return storeClosedMsg{}
		}
		return snapshotMsg(snap)
	}
}
