package observable

// Change describes one batched addition to a List. Added holds the added
// elements in the order they were appended; From is the index of the first
// added element in the list.
type Change[T any] struct {
	Added []T
	From  int
}

// ChangeListener receives List change notifications.
// Every element of every Change is reported exactly once, in list order.
type ChangeListener[T any] func(change Change[T])

// List is an ordered, mutable, observable sequence of T.
//
// A List notifies two kinds of listeners on mutation: change listeners
// receive the added sublist, invalidation listeners only learn that the list
// changed. Change listeners are notified before invalidation listeners.
//
// A List must be confined to the execution context that owns it; it is not
// safe for concurrent use.
type List[T any] struct {
	items           []T
	changeListeners []*changeEntry[T]
	invalidation    listenerList
}

type changeEntry[T any] struct {
	fn      ChangeListener[T]
	removed bool
}

func (e *changeEntry[T]) Unsubscribe() {
	e.removed = true
}

// NewList creates a List holding the given initial items.
// Creating a List does not notify anyone.
func NewList[T any](items ...T) *List[T] {
	list := &List[T]{}
	list.items = append(list.items, items...)

	return list
}

// Len returns the number of elements.
func (l *List[T]) Len() int {
	return len(l.items)
}

// Get returns the element at index i. It panics when i is out of range.
func (l *List[T]) Get(i int) T {
	return l.items[i]
}

// Items returns a copy of the current contents.
func (l *List[T]) Items() []T {
	snapshot := make([]T, len(l.items))
	copy(snapshot, l.items)

	return snapshot
}

// Append adds one element and notifies listeners with a single-element Change.
func (l *List[T]) Append(item T) {
	from := len(l.items)
	l.items = append(l.items, item)

	l.notify(Change[T]{Added: []T{item}, From: from})
}

// AppendAll adds the elements as one batch. Listeners observe a single
// Change carrying the whole added sublist in append order.
func (l *List[T]) AppendAll(items ...T) {
	if len(items) == 0 {
		return
	}

	from := len(l.items)
	l.items = append(l.items, items...)

	added := make([]T, len(items))
	copy(added, items)

	l.notify(Change[T]{Added: added, From: from})
}

// AddChangeListener attaches a change listener and returns a Subscription
// that detaches it. Listeners may subscribe or unsubscribe while being notified.
func (l *List[T]) AddChangeListener(listener ChangeListener[T]) Subscription {
	l.sweepChangeListeners()

	entry := &changeEntry[T]{fn: listener}
	l.changeListeners = append(l.changeListeners, entry)

	return entry
}

// AddListener implements the Observable interface.
func (l *List[T]) AddListener(listener InvalidationListener) Subscription {
	return l.invalidation.add(listener)
}

func (l *List[T]) notify(change Change[T]) {
	snapshot := l.changeListeners

	for _, entry := range snapshot {
		if !entry.removed {
			entry.fn(change)
		}
	}

	l.invalidation.fire(l)
}

func (l *List[T]) sweepChangeListeners() {
	removed := 0
	for _, entry := range l.changeListeners {
		if entry.removed {
			removed++
		}
	}

	if removed == 0 || removed <= len(l.changeListeners)/2 {
		return
	}

	kept := make([]*changeEntry[T], 0, len(l.changeListeners)-removed)
	for _, entry := range l.changeListeners {
		if !entry.removed {
			kept = append(kept, entry)
		}
	}

	l.changeListeners = kept
}
