// Package service defines the backend-agnostic interface for task operations.
package service

// Task represents a single task item.
// Persisted tasks always have ID > 0; ID 0 marks the unsaved placeholder.
type Task struct {
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	UserID    int    `json:"userId"`
}

// IsPlaceholder reports whether the task is the locally synthesized,
// not yet saved entry shown while a create request is in flight.
func (t Task) IsPlaceholder() bool {
	return t.ID == 0
}

// Draft is the payload for creating a task. The server assigns the ID.
type Draft struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
	UserID    int    `json:"userId"`
}

// Patch holds the fields of a partial task update.
// Nil fields are left unchanged.
type Patch struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}
