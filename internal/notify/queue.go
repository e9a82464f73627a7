// Package notify holds the ephemeral toast queue. It is a pure UI
// side-channel: the core appends, items expire on their own, and nothing
// feeds back into progression state.
package notify

import (
	"log/slog"
	"sync"
	"time"

	"github.com/wavefmapp/wavefm-core/internal/clock"
	"github.com/wavefmapp/wavefm-core/internal/domain"
)

// Queue is an ordered, unbounded-append list of toasts. Each item expires
// independently: after the display duration it enters an exit transition,
// and after the exit duration it is removed. There is no global flush.
type Queue struct {
	clock   clock.Clock
	logger  *slog.Logger
	display time.Duration
	exit    time.Duration

	mu     sync.Mutex
	items  []*domain.Toast
	lastID int64
}

// NewQueue creates a queue with the given lifecycle durations.
func NewQueue(c clock.Clock, logger *slog.Logger, display, exit time.Duration) *Queue {
	return &Queue{
		clock:   c,
		logger:  logger,
		display: display,
		exit:    exit,
	}
}

// Push appends a toast and schedules its expiry. The returned ID is
// timestamp-derived and strictly increasing even for same-millisecond
// pushes.
func (q *Queue) Push(title, message string, typ domain.ToastType) int64 {
	q.mu.Lock()
	now := q.clock.Now()
	id := now.UnixMilli()
	if id <= q.lastID {
		id = q.lastID + 1
	}
	q.lastID = id

	q.items = append(q.items, &domain.Toast{
		ID:        id,
		Title:     title,
		Message:   message,
		Type:      typ,
		CreatedAt: now,
	})
	q.mu.Unlock()

	q.logger.Debug("toast enqueued", "id", id, "type", typ, "title", title)

	q.clock.AfterFunc(q.display, func() { q.beginExit(id) })
	return id
}

// beginExit flips the toast into its exit transition and schedules
// removal.
func (q *Queue) beginExit(toastID int64) {
	q.mu.Lock()
	for _, item := range q.items {
		if item.ID == toastID {
			item.Exiting = true
			break
		}
	}
	q.mu.Unlock()

	q.clock.AfterFunc(q.exit, func() { q.remove(toastID) })
}

func (q *Queue) remove(toastID int64) {
	q.mu.Lock()
	defer q.mu.Unlock()
	for i, item := range q.items {
		if item.ID == toastID {
			q.items = append(q.items[:i], q.items[i+1:]...)
			return
		}
	}
}

// Items returns a snapshot of the live toasts in append order.
func (q *Queue) Items() []domain.Toast {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]domain.Toast, len(q.items))
	for i, item := range q.items {
		out[i] = *item
	}
	return out
}

// Len reports the number of live toasts (including ones in their exit
// transition).
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
