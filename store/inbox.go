package store

import (
	"sync"

	"storefront/models"
)

// Notifier receives user-visible messages from store mutations
type Notifier interface {
	Notify(n models.Notification)
}

// Inbox queues notifications until the next response drains them
type Inbox struct {
	mu    sync.Mutex
	queue []models.Notification
}

// Notify queues n
func (i *Inbox) Notify(n models.Notification) {
	i.mu.Lock()
	i.queue = append(i.queue, n)
	i.mu.Unlock()
}

// Drain returns all queued notifications and empties the queue
func (i *Inbox) Drain() []models.Notification {
	i.mu.Lock()
	defer i.mu.Unlock()
	out := i.queue
	i.queue = nil
	return out
}

type discardNotifier struct{}

func (discardNotifier) Notify(models.Notification) {}
