package channel

import (
	"sync"

	"github.com/kbukum/skeletons/errors"
	"github.com/kbukum/skeletons/logger"
)

// Channel is a thread-safe unbounded FIFO queue.
type Channel[T any] struct {
	mu        sync.Mutex
	notEmpty  *sync.Cond
	items     []T
	head      int
	destroyed bool
}

// New creates an empty Channel.
func New[T any]() *Channel[T] {
	c := &Channel[T]{}
	c.notEmpty = sync.NewCond(&c.mu)
	return c
}

// Put appends v and wakes one blocked consumer.
// Put on a destroyed Channel is a protocol violation and panics.
func (c *Channel[T]) Put(v T) {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		panic(errors.ChannelDestroyed("put"))
	}
	c.items = append(c.items, v)
	c.mu.Unlock()
	c.notEmpty.Signal()
}

// Get blocks until a value is available, then removes and returns the oldest.
// A Get that no producer will ever satisfy blocks forever.
func (c *Channel[T]) Get() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.size() == 0 {
		c.notEmpty.Wait()
	}
	return c.pop()
}

// TryGet removes and returns the oldest value without blocking.
// ok is false when the Channel is empty.
func (c *Channel[T]) TryGet() (v T, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.size() == 0 {
		return v, false
	}
	return c.pop(), true
}

// Len returns the number of buffered values.
func (c *Channel[T]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.size()
}

// Destroyed reports whether Destroy has been called.
func (c *Channel[T]) Destroyed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.destroyed
}

// Destroy releases the Channel's storage. Values still buffered are dropped
// with a warning: callers are expected to drain first. A second Destroy
// returns a CHANNEL_DESTROYED error.
func (c *Channel[T]) Destroy() error {
	c.mu.Lock()
	if c.destroyed {
		c.mu.Unlock()
		return errors.ChannelDestroyed("destroy")
	}
	dropped := c.size()
	c.items = nil
	c.head = 0
	c.destroyed = true
	c.mu.Unlock()

	if dropped > 0 {
		logger.Get("channel").Warn("channel destroyed with buffered values",
			logger.Fields(logger.FieldDropped, dropped))
	}
	return nil
}

func (c *Channel[T]) size() int {
	return len(c.items) - c.head
}

// pop must be called with mu held and size() > 0.
func (c *Channel[T]) pop() T {
	var zero T
	v := c.items[c.head]
	c.items[c.head] = zero
	c.head++
	switch {
	case c.head == len(c.items):
		c.items = c.items[:0]
		c.head = 0
	case c.head > 64 && c.head*2 >= len(c.items):
		n := copy(c.items, c.items[c.head:])
		clear(c.items[n:])
		c.items = c.items[:n]
		c.head = 0
	}
	return v
}
