package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"todos/internal/state"
	"todos/internal/store"
	"todos/internal/testutil"
)

const ownerID = 7

func newTestModel(t *testing.T, svc *testutil.FakeService, owner int) *Model {
	t.Helper()
	st := store.New(svc, owner, store.WithErrorTTL(time.Minute))
	m := New(context.Background(), st)
	t.Cleanup(func() {
		m.Close()
		st.Close()
	})
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// typeText sends runes to the model without running follow-up commands.
func typeText(m *Model, s string) {
	m.Update(runes(s))
}

// press sends a key and runs the command it returns, if any.
func press(t *testing.T, m *Model, msg tea.KeyMsg) {
	t.Helper()
	_, cmd := m.Update(msg)
	if cmd == nil {
		return
	}
	if done, ok := cmd().(opDoneMsg); ok {
		m.Update(done)
	}
}

func load(t *testing.T, m *Model) {
	t.Helper()
	m.Update(m.run(opLoad, m.store.Load)())
}

func TestModel_LoadsTasks(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false, ownerID)
	svc.AddTask("Walk dog", true, ownerID)

	m := newTestModel(t, svc, ownerID)
	load(t, m)

	view := m.View()
	for _, want := range []string{"todos", "Buy milk", "Walk dog", "1 item left", "Active", "Clear completed"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}

func TestModel_EmptyListHidesFooter(t *testing.T) {
	m := newTestModel(t, testutil.NewFakeService(), ownerID)
	load(t, m)

	view := m.View()
	if strings.Contains(view, "items left") {
		t.Errorf("footer should be hidden:\n%s", view)
	}
	if !strings.Contains(view, "What needs to be done?") {
		t.Errorf("expected input placeholder:\n%s", view)
	}
}

func TestModel_LoadFailureShowsNotice(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTasksErr = errors.New("offline")

	m := newTestModel(t, svc, ownerID)
	load(t, m)

	if !strings.Contains(m.View(), state.MsgLoadFailed) {
		t.Errorf("expected notice in view:\n%s", m.View())
	}

	press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	press(t, m, runes("x"))

	if strings.Contains(m.View(), state.MsgLoadFailed) {
		t.Errorf("notice should be dismissed:\n%s", m.View())
	}
}

func TestModel_DismissClearsNoticeImmediately(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.ListTasksErr = errors.New("offline")

	m := newTestModel(t, svc, ownerID)
	load(t, m)

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	_, cmd := m.Update(runes("x"))
	if cmd != nil {
		t.Error("dismiss should not return a command")
	}
	if msg := m.Snapshot().Notice.Message; msg != "" {
		t.Errorf("expected notice cleared, got %q", msg)
	}
	if strings.Contains(m.View(), state.MsgLoadFailed) {
		t.Errorf("notice should be gone from the next frame:\n%s", m.View())
	}
}

func TestModel_PlaceholderBeforeWindowSize(t *testing.T) {
	m := newTestModel(t, testutil.NewFakeService(), ownerID)

	if m.input.Width < len("What needs to be done?") {
		t.Errorf("input width %d too narrow for the placeholder", m.input.Width)
	}
	if !strings.Contains(m.View(), "What needs to be done?") {
		t.Errorf("expected full placeholder:\n%s", m.View())
	}

	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.input.Width != 92 {
		t.Errorf("expected width to follow the window, got %d", m.input.Width)
	}
}

func TestModel_LongTitleNotTruncated(t *testing.T) {
	svc := testutil.NewFakeService()
	m := newTestModel(t, svc, ownerID)
	load(t, m)

	title := strings.Repeat("a", 300)
	typeText(m, title)
	if got := m.store.Snapshot().DraftTitle; got != title {
		t.Fatalf("expected %d rune draft, got %d", len(title), len(got))
	}

	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	tasks := svc.Tasks()
	if len(tasks) != 1 || tasks[0].Title != title {
		t.Fatalf("expected full title stored, got %+v", tasks)
	}
}

func TestModel_NegativeOwnerShowsWarning(t *testing.T) {
	svc := testutil.NewFakeService()
	m := newTestModel(t, svc, -3)

	if cmd := m.Init(); cmd != nil {
		t.Error("expected no startup command for a negative owner")
	}
	if !strings.Contains(m.View(), "Please set your user id") {
		t.Errorf("expected warning screen:\n%s", m.View())
	}
	if list, _, _, _ := svc.Calls(); list != 0 {
		t.Errorf("expected no backend call, got %d", list)
	}
}

func TestModel_SubmitCreatesTask(t *testing.T) {
	svc := testutil.NewFakeService()
	m := newTestModel(t, svc, ownerID)
	load(t, m)

	typeText(m, "Walk dog")
	if got := m.store.Snapshot().DraftTitle; got != "Walk dog" {
		t.Errorf("expected draft to follow input, got %q", got)
	}

	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	tasks := svc.Tasks()
	if len(tasks) != 1 || tasks[0].Title != "Walk dog" || tasks[0].UserID != ownerID {
		t.Fatalf("unexpected backend tasks %+v", tasks)
	}
	if m.input.Value() != "" {
		t.Errorf("expected input reset, got %q", m.input.Value())
	}
	snap := m.Snapshot()
	if len(snap.Tasks) != 1 || snap.Pending != nil || snap.Busy {
		t.Errorf("unexpected snapshot %+v", snap)
	}
}

func TestModel_SubmitEmptyTitle(t *testing.T) {
	svc := testutil.NewFakeService()
	m := newTestModel(t, svc, ownerID)
	load(t, m)

	typeText(m, "   ")
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if !strings.Contains(m.View(), state.MsgEmptyTitle) {
		t.Errorf("expected empty title notice:\n%s", m.View())
	}
	if _, create, _, _ := svc.Calls(); create != 0 {
		t.Errorf("expected no create call, got %d", create)
	}
}

func TestModel_SubmitFailureKeepsDraft(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateTaskErr = errors.New("boom")
	m := newTestModel(t, svc, ownerID)
	load(t, m)

	typeText(m, "Call mom")
	press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.input.Value() != "Call mom" {
		t.Errorf("expected draft kept, got %q", m.input.Value())
	}
	if !strings.Contains(m.View(), state.MsgAddFailed) {
		t.Errorf("expected add notice:\n%s", m.View())
	}
}

func TestModel_ListKeysTypedWhileInputFocused(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", true, ownerID)
	m := newTestModel(t, svc, ownerID)
	load(t, m)

	typeText(m, "d")

	if _, _, del, _ := svc.Calls(); del != 0 {
		t.Errorf("expected no delete call, got %d", del)
	}
	if m.input.Value() != "d" {
		t.Errorf("expected key typed into input, got %q", m.input.Value())
	}
}

func TestModel_ToggleAndFilter(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false, ownerID)
	svc.AddTask("Walk dog", false, ownerID)
	m := newTestModel(t, svc, ownerID)
	load(t, m)

	press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	press(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})

	snap := m.Snapshot()
	if snap.Tasks[0].Completed || !snap.Tasks[1].Completed {
		t.Fatalf("expected second task toggled, got %+v", snap.Tasks)
	}
	if _, _, _, update := svc.Calls(); update != 0 {
		t.Errorf("toggle must stay local, got %d update calls", update)
	}

	press(t, m, runes("3"))
	if m.Snapshot().Filter != state.FilterCompleted {
		t.Fatalf("expected completed filter, got %v", m.Snapshot().Filter)
	}
	view := m.View()
	if strings.Contains(view, "Buy milk") || !strings.Contains(view, "Walk dog") {
		t.Errorf("expected only completed tasks:\n%s", view)
	}
	if m.cursor != 0 {
		t.Errorf("expected cursor clamped to 0, got %d", m.cursor)
	}
}

func TestModel_Delete(t *testing.T) {
	svc := testutil.NewFakeService()
	first := svc.AddTask("Buy milk", false, ownerID)
	svc.AddTask("Walk dog", false, ownerID)
	m := newTestModel(t, svc, ownerID)
	load(t, m)

	press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	press(t, m, runes("d"))

	if len(svc.Deleted) != 1 || svc.Deleted[0] != first.ID {
		t.Fatalf("expected task %d deleted, got %v", first.ID, svc.Deleted)
	}
	if strings.Contains(m.View(), "Buy milk") {
		t.Errorf("deleted task still shown:\n%s", m.View())
	}
}

func TestModel_DeleteFailureShowsNotice(t *testing.T) {
	svc := testutil.NewFakeService()
	task := svc.AddTask("Buy milk", false, ownerID)
	svc.DeleteErrFor[task.ID] = errors.New("boom")
	m := newTestModel(t, svc, ownerID)
	load(t, m)

	press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	press(t, m, tea.KeyMsg{Type: tea.KeyDelete})

	if !strings.Contains(m.View(), state.MsgDeleteFailed) {
		t.Errorf("expected delete notice:\n%s", m.View())
	}
	if len(m.Snapshot().Tasks) != 1 {
		t.Errorf("task should stay after failed delete")
	}
}

func TestModel_ClearCompleted(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false, ownerID)
	svc.AddTask("Walk dog", true, ownerID)
	svc.AddTask("Pay rent", true, ownerID)
	m := newTestModel(t, svc, ownerID)
	load(t, m)

	press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	press(t, m, runes("C"))

	if len(svc.Deleted) != 2 {
		t.Fatalf("expected 2 deletes, got %v", svc.Deleted)
	}
	snap := m.Snapshot()
	if len(snap.Tasks) != 1 || snap.Tasks[0].Title != "Buy milk" {
		t.Errorf("unexpected tasks %+v", snap.Tasks)
	}
	if snap.Filter != state.FilterCompleted {
		t.Errorf("expected completed filter after clear, got %v", snap.Filter)
	}
}

func TestModel_ClearCompletedWithNothingDone(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false, ownerID)
	m := newTestModel(t, svc, ownerID)
	load(t, m)

	press(t, m, tea.KeyMsg{Type: tea.KeyTab})
	_, cmd := m.Update(runes("C"))
	if cmd != nil {
		t.Error("expected no command when nothing is completed")
	}
}

func TestModel_NoOwnerShowsWarning(t *testing.T) {
	svc := testutil.NewFakeService()
	m := newTestModel(t, svc, 0)

	if cmd := m.Init(); cmd != nil {
		t.Error("expected no startup command without an owner")
	}
	if !strings.Contains(m.View(), "Please set your user id") {
		t.Errorf("expected warning screen:\n%s", m.View())
	}

	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected quit message")
	}
	if list, _, _, _ := svc.Calls(); list != 0 {
		t.Errorf("expected no backend call, got %d", list)
	}
}

func TestModel_SnapshotSubscription(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk", false, ownerID)
	m := newTestModel(t, svc, ownerID)

	m.store.SetFilter(state.FilterActive)

	msg := waitForSnapshot(m.snaps)()
	snap, ok := msg.(snapshotMsg)
	if !ok {
		t.Fatalf("expected snapshotMsg, got %T", msg)
	}
	m.Update(snap)
	if m.Snapshot().Filter != state.FilterActive {
		t.Errorf("expected active filter, got %v", m.Snapshot().Filter)
	}

	m.Close()
	if _, ok := waitForSnapshot(m.snaps)().(storeClosedMsg); !ok {
		t.Error("expected storeClosedMsg after close")
	}
}

func TestModel_QuitFromList(t *testing.T) {
	m := newTestModel(t, testutil.NewFakeService(), ownerID)

	// q is typed while the input has focus.
	typeText(m, "q")
	if m.input.Value() != "q" {
		t.Fatalf("expected q typed, got %q", m.input.Value())
	}

	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	_, cmd := m.Update(runes("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected quit message")
	}
}
