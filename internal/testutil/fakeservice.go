// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"net/http"
	"sync"

	"todos/internal/service"
)

// FakeService is an in-memory implementation of service.Service for testing.
// Unknown IDs fail like the real backend does: with a 404 NetworkError.
type FakeService struct {
	mu     sync.RWMutex
	tasks  []service.Task
	nextID int

	// Error injection for testing
	ListTasksErr  error
	CreateTaskErr error
	DeleteTaskErr error
	UpdateTaskErr error
	DeleteErrFor  map[int]error // task ID -> error

	// DeleteGate, when set, blocks every DeleteTask until it is closed or
	// receives a value.
	DeleteGate chan struct{}

	// Call counters
	ListCalls   int
	CreateCalls int
	DeleteCalls int
	UpdateCalls int
	Deleted     []int
}

// NewFakeService creates an empty FakeService.
func NewFakeService() *FakeService {
	return &FakeService{
		nextID:       1,
		DeleteErrFor: make(map[int]error),
	}
}

// AddTask seeds a task and returns it.
func (f *FakeService) AddTask(title string, completed bool, userID int) service.Task {
	f.mu.Lock()
	defer f.mu.Unlock()
	task := service.Task{ID: f.nextID, Title: title, Completed: completed, UserID: userID}
	f.nextID++
	f.tasks = append(f.tasks, task)
	return task
}

// Tasks returns a copy of every stored task.
func (f *FakeService) Tasks() []service.Task {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make([]service.Task, len(f.tasks))
	copy(out, f.tasks)
	return out
}

// Calls returns the list, create, delete and update call counts.
func (f *FakeService) Calls() (list, create, del, update int) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.ListCalls, f.CreateCalls, f.DeleteCalls, f.UpdateCalls
}

// ListTasks implements service.Service.
func (f *FakeService) ListTasks(ctx context.Context, ownerID int) ([]service.Task, error) {
	f.mu.Lock()
	f.ListCalls++
	f.mu.Unlock()

	if f.ListTasksErr != nil {
		return nil, f.ListTasksErr
	}
	f.mu.RLock()
	defer f.mu.RUnlock()

	result := []service.Task{}
	for _, t := range f.tasks {
		if t.UserID == ownerID {
			result = append(result, t)
		}
	}
	return result, nil
}

// CreateTask implements service.Service.
func (f *FakeService) CreateTask(ctx context.Context, draft service.Draft) (service.Task, error) {
	f.mu.Lock()
	f.CreateCalls++
	f.mu.Unlock()

	if f.CreateTaskErr != nil {
		return service.Task{}, f.CreateTaskErr
	}
	return f.AddTask(draft.Title, draft.Completed, draft.UserID), nil
}

// DeleteTask implements service.Service.
func (f *FakeService) DeleteTask(ctx context.Context, id int) error {
	f.mu.Lock()
	f.DeleteCalls++
	gate := f.DeleteGate
	f.mu.Unlock()

	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return &service.NetworkError{Op: "delete", Err: ctx.Err()}
		}
	}

	if f.DeleteTaskErr != nil {
		return f.DeleteTaskErr
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.DeleteErrFor[id]; ok && err != nil {
		return err
	}
	for i, t := range f.tasks {
		if t.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			f.Deleted = append(f.Deleted, id)
			return nil
		}
	}
	return &service.NetworkError{Op: "delete", Status: http.StatusNotFound}
}

// UpdateTask implements service.Service.
func (f *FakeService) UpdateTask(ctx context.Context, id int, patch service.Patch) (service.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.UpdateCalls++

	if f.UpdateTaskErr != nil {
		return service.Task{}, f.UpdateTaskErr
	}
	for i, t := range f.tasks {
		if t.ID != id {
			continue
		}
		if patch.Title != nil {
			t.Title = *patch.Title
		}
		if patch.Completed != nil {
			t.Completed = *patch.Completed
		}
		f.tasks[i] = t
		return t, nil
	}
	return service.Task{}, &service.NetworkError{Op: "update", Status: http.StatusNotFound}
}
