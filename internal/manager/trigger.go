package manager

import "sync"

// Trigger is a host control that can request navigation (a button, a key
// binding). The manager subscribes to it while enabled and pushes whether
// the action is currently possible.
type Trigger interface {
	// Subscribe registers fn and returns a function that removes it.
	Subscribe(fn func()) (unsubscribe func())
	SetEnabled(enabled bool)
}

// Button is an in-memory Trigger. Press runs subscribers only while enabled.
type Button struct {
	mu      sync.Mutex
	enabled bool
	nextID  int
	subs    map[int]func()
}

// NewButton returns an enabled button without subscribers.
func NewButton() *Button {
	return &Button{enabled: true, subs: make(map[int]func())}
}

func (b *Button) Subscribe(fn func()) func() {
	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = fn
	b.mu.Unlock()
	return func() {
		b.mu.Lock()
		delete(b.subs, id)
		b.mu.Unlock()
	}
}

func (b *Button) SetEnabled(enabled bool) {
	b.mu.Lock()
	b.enabled = enabled
	b.mu.Unlock()
}

func (b *Button) Enabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.enabled
}

// Subscribers reports how many callbacks are attached.
func (b *Button) Subscribers() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}

// Press invokes every subscriber and reports whether the button was enabled.
func (b *Button) Press() bool {
	b.mu.Lock()
	if !b.enabled {
		b.mu.Unlock()
		return false
	}
	fns := make([]func(), 0, len(b.subs))
	for _, fn := range b.subs {
		fns = append(fns, fn)
	}
	b.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
	return true
}
