package observable

// Property is a mutable observable cell holding a single value of type T.
//
// Like all types in this package, a Property must be confined to the
// execution context that owns it; it is not safe for concurrent use.
type Property[T any] struct {
	value     T
	listeners listenerList
}

// NewProperty creates a Property holding the given initial value.
// Creating a Property does not notify anyone.
func NewProperty[T any](value T) *Property[T] {
	return &Property[T]{value: value}
}

// Get returns the current value.
func (p *Property[T]) Get() T {
	return p.value
}

// Set stores the value and notifies all invalidation listeners, whether or
// not the new value differs from the old one.
func (p *Property[T]) Set(value T) {
	p.value = value
	p.listeners.fire(p)
}

// AddListener implements the Observable interface.
func (p *Property[T]) AddListener(listener InvalidationListener) Subscription {
	return p.listeners.add(listener)
}
