// Package service defines the backend-agnostic interface for task operations.
package service

import "context"

// Service defines the interface for task backend operations.
// All HTTP calls go through this interface.
// The store and commands never import a backend package directly.
type Service interface {
	// ListTasks returns all tasks owned by ownerID in server order.
	ListTasks(ctx context.Context, ownerID int) ([]Task, error)

	// CreateTask creates a task and returns it with its server-assigned ID.
	CreateTask(ctx context.Context, draft Draft) (Task, error)

	// DeleteTask deletes a task by ID.
	// Deleting an unknown ID is reported like any other failure.
	DeleteTask(ctx context.Context, id int) error

	// UpdateTask applies a partial update and returns the stored task.
	UpdateTask(ctx context.Context, id int, patch Patch) (Task, error)
}
