// Package notify dispatches the "sequence changed" hook to the editor and
// other collaborators that mirror the layer order.
package notify

import (
	"sync"

	"github.com/google/uuid"
)

// Hook is called after a change has been committed.
type Hook func()

type subscription struct {
	id   string
	hook Hook
}

// Notifier keeps an ordered set of hooks.
type Notifier struct {
	mu   sync.Mutex
	subs []subscription
}

// New creates an empty Notifier.
func New() *Notifier {
	return &Notifier{}
}

// Subscribe registers hook and returns an id for Unsubscribe.
func (n *Notifier) Subscribe(hook Hook) string {
	id := uuid.NewString()

	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs = append(n.subs, subscription{id: id, hook: hook})
	return id
}

// Unsubscribe removes the hook registered under id. It reports whether a
// hook was removed.
func (n *Notifier) Unsubscribe(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	for i, s := range n.subs {
		if s.id == id {
			n.subs = append(n.subs[:i:i], n.subs[i+1:]...)
			return true
		}
	}
	return false
}

// Len returns the number of registered hooks.
func (n *Notifier) Len() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}

// Notify calls every hook in subscription order. Hooks run without the lock
// held, so they may subscribe or unsubscribe; such changes apply from the
// next Notify.
func (n *Notifier) Notify() {
	n.mu.Lock()
	subs := make([]subscription, len(n.subs))
	copy(subs, n.subs)
	n.mu.Unlock()

	for _, s := range subs {
		s.hook()
	}
}
