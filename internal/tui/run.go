package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"todos/internal/store"
)

// Run shows the to-do screen until the user quits or ctx is cancelled.
func Run(ctx context.Context, st *store.Store) error {
	model := New(ctx, st)
	defer model.Close()

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := program.Run(); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("run tui: %w", err)
	}
	return nil
}
