package observable

// View is a read-only wrapper over a List. It forwards reads and listener
// registration but exposes no mutation.
//
// A View captures the list reference it was created with. Code that swaps
// the underlying list reference later must hand out a fresh View.
type View[T any] struct {
	list *List[T]
}

// NewView wraps the given list in a read-only View.
func NewView[T any](list *List[T]) View[T] {
	return View[T]{list: list}
}

// Len returns the number of elements in the wrapped list.
func (v View[T]) Len() int {
	return v.list.Len()
}

// Get returns the element at index i of the wrapped list.
func (v View[T]) Get(i int) T {
	return v.list.Get(i)
}

// Items returns a copy of the wrapped list's current contents.
func (v View[T]) Items() []T {
	return v.list.Items()
}

// AddChangeListener attaches a change listener to the wrapped list.
func (v View[T]) AddChangeListener(listener ChangeListener[T]) Subscription {
	return v.list.AddChangeListener(listener)
}

// AddListener implements the Observable interface.
func (v View[T]) AddListener(listener InvalidationListener) Subscription {
	return v.list.AddListener(listener)
}
