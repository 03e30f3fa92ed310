// Package event is a small in-process event bus. Services fire domain events
// (e.g. "order.completed") and decoupled listeners react, synchronously or in
// the background.
package event

import (
	"sync"

	"github.com/siddhant14g/Real-shop/pkg/logger"
)

// Listener handles a fired event payload.
type Listener func(payload any)

type bus struct {
	mu        sync.RWMutex
	listeners map[string][]Listener
	wg        sync.WaitGroup
}

var defaultBus = &bus{listeners: map[string][]Listener{}}

// Listen registers fn for the named event. Multiple listeners per event
// are allowed and run in registration order.
func Listen(name string, fn Listener) {
	defaultBus.mu.Lock()
	defer defaultBus.mu.Unlock()
	defaultBus.listeners[name] = append(defaultBus.listeners[name], fn)
}

// Fire invokes all listeners for name synchronously.
func Fire(name string, payload any) {
	defaultBus.mu.RLock()
	ls := defaultBus.listeners[name]
	defaultBus.mu.RUnlock()

	for _, fn := range ls {
		safeCall(name, fn, payload)
	}
}

// FireAsync invokes listeners on their own goroutines. Use Flush to wait
// for in-flight listeners, e.g. on shutdown or in tests.
func FireAsync(name string, payload any) {
	defaultBus.mu.RLock()
	ls := defaultBus.listeners[name]
	defaultBus.mu.RUnlock()

	for _, fn := range ls {
		fn := fn
		defaultBus.wg.Add(1)
		go func() {
			defer defaultBus.wg.Done()
			safeCall(name, fn, payload)
		}()
	}
}

// Flush blocks until all async listeners have returned.
func Flush() {
	defaultBus.wg.Wait()
}

// Reset drops all listeners. Intended for tests.
func Reset() {
	defaultBus.mu.Lock()
	defer defaultBus.mu.Unlock()
	defaultBus.listeners = map[string][]Listener{}
}

func safeCall(name string, fn Listener, payload any) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("event: listener panicked", "event", name, "panic", r)
		}
	}()
	fn(payload)
}
