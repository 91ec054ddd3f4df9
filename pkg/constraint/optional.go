package constraint

// Optional holds a value that may be absent. It replaces nil-able references
// for the second term and the identifier of a constraint.
//
// The zero value is None.
type Optional[T comparable] struct {
	value T
	ok    bool
}

// Some wraps a present value.
func Some[T comparable](v T) Optional[T] { return Optional[T]{value: v, ok: true} }

// None returns an absent value.
func None[T comparable]() Optional[T] { return Optional[T]{} }

// Get returns the value and whether it is present.
func (o Optional[T]) Get() (T, bool) { return o.value, o.ok }

// IsSome reports whether a value is present.
func (o Optional[T]) IsSome() bool { return o.ok }

// OrElse returns the value if present, otherwise def.
func (o Optional[T]) OrElse(def T) T {
	if o.ok {
		return o.value
	}
	return def
}

// Equal reports whether both are absent or both hold equal values.
func (o Optional[T]) Equal(other Optional[T]) bool {
	if o.ok != other.ok {
		return false
	}
	return !o.ok || o.value == other.value
}
