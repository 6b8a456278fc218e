package sales

// Result is either Ready or Unavailable. Both carry a structurally complete
// value so presentation never sees a partial payload.
type Result[T any] interface {
	Value() T
	// Err is the reason the data source could not be read, nil when Ready.
	Err() error
	sealed()
}

// Ready wraps a value computed from live data
type Ready[T any] struct {
	Data T
}

func (r Ready[T]) Value() T   { return r.Data }
func (r Ready[T]) Err() error { return nil }
func (Ready[T]) sealed()      {}

// Unavailable carries the empty sentinel and the fetch failure behind it
type Unavailable[T any] struct {
	Reason error
	Empty  T
}

func (u Unavailable[T]) Value() T   { return u.Empty }
func (u Unavailable[T]) Err() error { return u.Reason }
func (Unavailable[T]) sealed()      {}
