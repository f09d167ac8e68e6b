// Package store runs the to-do view-state transitions against a backend.
//
// The Store owns the current state.Snapshot. Each update applies one
// state.Transition atomically and publishes the result to subscribers.
// Backend calls run outside the lock, so operations may interleave; the
// Busy flag is advisory only.
package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"todos/internal/logging"
	"todos/internal/service"
	"todos/internal/state"
)

// subscriberBuffer is the number of snapshots queued per subscriber.
// When full, the oldest queued snapshot is dropped.
const subscriberBuffer = 16

// Store holds the view state and runs transitions.
type Store struct {
	svc      service.Service
	ownerID  int
	errorTTL time.Duration
	logger   *log.Logger

	mu      sync.Mutex
	snap    state.Snapshot
	token   uint64
	timers  map[uint64]*time.Timer
	subs    map[int]chan state.Snapshot
	nextSub int
	closed  bool
}

// Option configures a Store.
type Option func(*Store)

// WithErrorTTL sets how long each notice stays before it expires.
func WithErrorTTL(d time.Duration) Option {
	return func(s *Store) {
		s.errorTTL = d
	}
}

// WithLogger sets the store logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates a store for the tasks of ownerID. An ownerID of 0 or less
// means no owner is configured and Load does nothing.
func New(svc service.Service, ownerID int, opts ...Option) *Store {
	s := &Store{
		svc:      svc,
		ownerID:  ownerID,
		errorTTL: 3 * time.Second,
		logger:   logging.Discard(),
		timers:   make(map[uint64]*time.Timer),
		subs:     make(map[int]chan state.Snapshot),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OwnerID returns the configured owner identifier.
func (s *Store) OwnerID() int {
	return s.ownerID
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() state.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap.Clone()
}

// Subscribe returns a channel receiving every new snapshot, and a function
// that unsubscribes and closes the channel.
func (s *Store) Subscribe() (<-chan state.Snapshot, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch := make(chan state.Snapshot, subscriberBuffer)
	if s.closed {
		close(ch)
		return ch, func() {}
	}
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if sub, ok := s.subs[id]; ok {
				delete(s.subs, id)
				close(sub)
			}
		})
	}
}

// Close stops pending notice timers and closes every subscription.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	for tok, t := range s.timers {
		t.Stop()
		delete(s.timers, tok)
	}
	for id, ch := range s.subs {
		close(ch)
		delete(s.subs, id)
	}
}

// Load fetches the owner's tasks and replaces the list.
func (s *Store) Load(ctx context.Context) error {
	if s.ownerID <= 0 {
		s.logger.Debug("load skipped: no owner configured")
		return nil
	}

	s.apply(state.SetBusy(true))
	tasks, err := s.svc.ListTasks(ctx, s.ownerID)
	if err != nil {
		s.logger.Warn("load failed", "owner", s.ownerID, "err", err)
		s.fail(state.MsgLoadFailed, state.SetBusy(false))
		return fmt.Errorf("load todos: %w", err)
	}

	s.logger.Debug("loaded", "owner", s.ownerID, "count", len(tasks))
	s.apply(state.Loaded(tasks).Then(state.SetBusy(false)))
	return nil
}

// SetDraft replaces the text typed for the next task.
func (s *Store) SetDraft(title string) {
	s.apply(state.SetDraft(title))
}

// Submit creates a task from the current draft. While the request is in
// flight a placeholder with ID 0 is shown. After success the list is
// reloaded from the backend.
func (s *Store) Submit(ctx context.Context) error {
	title := state.NormalizeTitle(s.Snapshot().DraftTitle)
	if title == "" {
		s.fail(state.MsgEmptyTitle, nil)
		return &service.ValidationError{Reason: "title should not be empty"}
	}

	s.apply(state.BeginCreate(title, s.ownerID))
	task, err := s.svc.CreateTask(ctx, service.Draft{
		Title:     title,
		Completed: false,
		UserID:    s.ownerID,
	})
	if err != nil {
		s.logger.Warn("create failed", "title", title, "err", err)
		s.fail(state.MsgAddFailed, state.EndCreate())
		return fmt.Errorf("add todo: %w", err)
	}

	s.logger.Debug("created", "id", task.ID)
	s.apply(state.Created(task))

	// Reconcile with the server. A failure here sets its own notice.
	if err := s.Load(ctx); err != nil {
		s.logger.Debug("reload after create failed", "err", err)
	}
	s.apply(state.EndCreate())
	return nil
}

// Delete removes one task on the backend, then locally.
func (s *Store) Delete(ctx context.Context, id int) error {
	if id <= 0 {
		return &service.ValidationError{Reason: "placeholder task cannot be deleted"}
	}

	s.apply(state.SetBusy(true))
	if err := s.svc.DeleteTask(ctx, id); err != nil {
		s.logger.Warn("delete failed", "id", id, "err", err)
		s.fail(state.MsgDeleteFailed, state.SetBusy(false))
		return fmt.Errorf("delete todo %d: %w", id, err)
	}

	s.logger.Debug("deleted", "id", id)
	s.apply(state.Removed(id).Then(state.SetBusy(false)))
	return nil
}

// ClearCompleted deletes every completed task concurrently and waits for
// the whole batch. Completed tasks are then dropped locally whatever the
// individual outcomes were. It returns the number of delete calls issued
// and the joined failures, if any.
func (s *Store) ClearCompleted(ctx context.Context) (int, error) {
	before := s.Snapshot()
	ids := state.CompletedIDs(before)

	s.apply(state.SetBusy(true))

	errs := make([]error, len(ids))
	var g errgroup.Group
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			if err := s.svc.DeleteTask(ctx, id); err != nil {
				errs[i] = fmt.Errorf("delete todo %d: %w", id, err)
				return errs[i]
			}
			return nil
		})
	}
	_ = g.Wait()

	s.apply(state.ClearedCompleted(before).Then(state.SetBusy(false)))

	err := errors.Join(errs...)
	if err != nil {
		s.logger.Warn("clear completed had failures", "count", len(ids), "err", err)
	} else {
		s.logger.Debug("cleared completed", "count", len(ids))
	}
	return len(ids), err
}

// Toggle flips a task's completion flag locally. Nothing is sent to the
// backend.
func (s *Store) Toggle(id int) error {
	if id <= 0 {
		return &service.ValidationError{Reason: "placeholder task cannot be toggled"}
	}
	s.apply(state.Toggled(id))
	return nil
}

// SetFilter replaces the active filter.
func (s *Store) SetFilter(f state.Filter) {
	s.apply(state.SetFilter(f))
}

// DismissError clears the current notice and cancels its expiry.
func (s *Store) DismissError() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopTimersLocked()
	s.applyLocked(state.DismissNotice())
}

// apply runs t on the current snapshot and publishes the result.
func (s *Store) apply(t state.Transition) state.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.applyLocked(t)
}

func (s *Store) applyLocked(t state.Transition) state.Snapshot {
	s.snap = t(s.snap)
	out := s.snap.Clone()
	for _, ch := range s.subs {
		publish(ch, out.Clone())
	}
	return out
}

// fail sets msg as the notice with a fresh token, then applies then (if
// any) in the same update. Earlier notices' timers are cancelled.
func (s *Store) fail(msg string, then state.Transition) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimersLocked()
	s.token++
	tok := s.token

	t := state.Fail(msg, tok)
	if then != nil {
		t = t.Then(then)
	}
	s.applyLocked(t)

	if s.closed {
		return
	}
	s.timers[tok] = time.AfterFunc(s.errorTTL, func() {
		s.expire(tok)
	})
}

func (s *Store) expire(tok uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.timers[tok]; !ok {
		return
	}
	delete(s.timers, tok)
	s.applyLocked(state.Expire(tok))
}

func (s *Store) stopTimersLocked() {
	for tok, t := range s.timers {
		t.Stop()
		delete(s.timers, tok)
	}
}

// publish delivers snap without blocking, dropping the oldest queued
// snapshot when the subscriber is behind.
func publish(ch chan state.Snapshot, snap state.Snapshot) {
	for {
		select {
		case ch <- snap:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
