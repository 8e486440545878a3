package application

import "sync"

// Observable holds a state value and broadcasts every published value to
// subscribers. Each subscriber channel has a buffer of one and always holds
// the most recent state, so a slow reader skips intermediate states but
// never misses the latest one.
type Observable[T any] struct {
	mu     sync.Mutex
	state  T
	subs   map[int]chan T
	nextID int
}

func NewObservable[T any](initial T) *Observable[T] {
	return &Observable[T]{state: initial, subs: map[int]chan T{}}
}

func (o *Observable[T]) Get() T {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.state
}

// Subscribe returns a channel primed with the current state and a cancel
// function that closes it.
func (o *Observable[T]) Subscribe() (<-chan T, func()) {
	o.mu.Lock()
	defer o.mu.Unlock()

	id := o.nextID
	o.nextID++

	ch := make(chan T, 1)
	ch <- o.state
	o.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			o.mu.Lock()
			defer o.mu.Unlock()

			if sub, ok := o.subs[id]; ok {
				delete(o.subs, id)
				close(sub)
			}
		})
	}

	return ch, cancel
}

// Update applies fn to the state and publishes the result atomically.
func (o *Observable[T]) Update(fn func(state *T)) T {
	o.mu.Lock()
	defer o.mu.Unlock()

	fn(&o.state)
	for _, ch := range o.subs {
		deliverLatest(ch, o.state)
	}

	return o.state
}

func deliverLatest[T any](ch chan T, state T) {
	select {
	case ch <- state:
		return
	default:
	}

	// Drop the stale value nobody has read yet.
	select {
	case <-ch:
	default:
	}

	select {
	case ch <- state:
	default:
	}
}
