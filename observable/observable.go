package observable

// InvalidationListener is notified when an Observable's value has changed.
// The notification carries the source but not the new value; interested
// listeners read it back from the source.
type InvalidationListener func(source Observable)

// Observable is a value container that supports invalidation subscriptions.
type Observable interface {
	// AddListener attaches the listener and returns a Subscription that detaches it.
	AddListener(listener InvalidationListener) Subscription
}

// Subscription detaches one previously attached listener.
type Subscription interface {
	Unsubscribe()
}

type listenerEntry struct {
	fn      InvalidationListener
	removed bool
}

func (e *listenerEntry) Unsubscribe() {
	e.removed = true
}

// listenerList is the shared invalidation listener bookkeeping for Property and List.
type listenerList struct {
	entries []*listenerEntry
}

func (l *listenerList) add(fn InvalidationListener) Subscription {
	l.sweep()

	entry := &listenerEntry{fn: fn}
	l.entries = append(l.entries, entry)

	return entry
}

// fire notifies all listeners that were attached when the change happened.
// Listeners may subscribe or unsubscribe while being notified.
func (l *listenerList) fire(source Observable) {
	snapshot := l.entries

	for _, entry := range snapshot {
		if !entry.removed {
			entry.fn(source)
		}
	}
}

// sweep drops unsubscribed entries once they outnumber the live ones.
// A fresh slice is allocated so snapshots held by an in-flight fire stay valid.
func (l *listenerList) sweep() {
	removed := 0
	for _, entry := range l.entries {
		if entry.removed {
			removed++
		}
	}

	if removed == 0 || removed <= len(l.entries)/2 {
		return
	}

	kept := make([]*listenerEntry, 0, len(l.entries)-removed)
	for _, entry := range l.entries {
		if !entry.removed {
			kept = append(kept, entry)
		}
	}

	l.entries = kept
}
