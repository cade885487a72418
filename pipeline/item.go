package pipeline

// Item carries one value through a channel, or marks end of stream.
type Item[T any] struct {
	value T
	eos   bool
}

// NewItem wraps v for transfer through a channel.
func NewItem[T any](v T) Item[T] {
	return Item[T]{value: v}
}

// EOS returns the end-of-stream marker. It carries no value.
func EOS[T any]() Item[T] {
	return Item[T]{eos: true}
}

// IsEOS reports whether the item marks end of stream.
func (it Item[T]) IsEOS() bool { return it.eos }

// Value returns the wrapped value; the zero value for EOS.
func (it Item[T]) Value() T { return it.value }

// Func is the per-item function applied by workers. It takes ownership of
// its argument and returns the result handed downstream. It must not block
// indefinitely.
type Func[T any] func(T) T
