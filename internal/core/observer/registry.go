// Package observer provides an ordered listener registry used by the countdown
// engine and the session scheduler to publish ticks and phase changes.
package observer

import (
	"log"
	"sync"
)

type entry[T any] struct {
	id int
	fn func(T)
}

// Registry holds listeners and delivers values to them in registration order.
// The zero value is ready to use.
type Registry[T any] struct {
	mu        sync.Mutex
	listeners []entry[T]
	nextID    int
	name      string
}

// New creates a registry whose name prefixes recovered panic logs.
func New[T any](name string) *Registry[T] {
	return &Registry[T]{name: name}
}

// Add registers a listener and returns a function that removes it.
func (registry *Registry[T]) Add(fn func(T)) (remove func()) {
	if fn == nil {
		return func() {}
	}

	registry.mu.Lock()
	registry.nextID++
	id := registry.nextID
	registry.listeners = append(registry.listeners, entry[T]{id: id, fn: fn})
	registry.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			registry.remove(id)
		})
	}
}

// Len returns the number of registered listeners.
func (registry *Registry[T]) Len() int {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	return len(registry.listeners)
}

// Notify calls every listener with value on the calling goroutine.
// Listeners added or removed during delivery take effect from the next call.
// A panicking listener is logged and skipped; the rest are still called.
func (registry *Registry[T]) Notify(value T) {
	registry.mu.Lock()
	listeners := append([]entry[T](nil), registry.listeners...)
	registry.mu.Unlock()

	for _, listener := range listeners {
		registry.deliver(listener, value)
	}
}

func (registry *Registry[T]) deliver(listener entry[T], value T) {
	defer func() {
		if recovered := recover(); recovered != nil {
			log.Printf("%s: listener %d panicked: %v", registry.label(), listener.id, recovered)
		}
	}()
	listener.fn(value)
}

func (registry *Registry[T]) remove(id int) {
	registry.mu.Lock()
	defer registry.mu.Unlock()
	for i, listener := range registry.listeners {
		if listener.id == id {
			registry.listeners = append(registry.listeners[:i:i], registry.listeners[i+1:]...)
			return
		}
	}
}

func (registry *Registry[T]) label() string {
	if registry.name == "" {
		return "observer"
	}
	return registry.name
}
