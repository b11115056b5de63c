// Package notify is the CLI's notification bus: short-lived messages that
// pages publish and the REPL prints.
package notify

import (
	"slices"
	"sync"
	"time"
)

type Kind string

const (
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
	KindError   Kind = "error"
)

// DefaultDuration is how long a notification stays active.
const DefaultDuration = 3 * time.Second

type Notification struct {
	ID       int64
	Kind     Kind
	Message  string
	Duration time.Duration
}

// Bus is safe for concurrent publishers. Subscribers are called
// synchronously, in subscription order, outside the bus lock.
type Bus struct {
	mu      sync.Mutex
	nextID  int64
	nextSub int
	subs    map[int]func(Notification)
	order   []int
	active  []Notification
	timers  map[int64]*time.Timer
	closed  bool
}

func NewBus() *Bus {
	return &Bus{
		subs:   make(map[int]func(Notification)),
		timers: make(map[int64]*time.Timer),
	}
}

// Publish adds a notification that expires after d (DefaultDuration when
// d <= 0) and returns its id. It returns 0 once the bus is closed.
func (b *Bus) Publish(kind Kind, msg string, d time.Duration) int64 {
	if d <= 0 {
		d = DefaultDuration
	}

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return 0
	}
	b.nextID++
	n := Notification{ID: b.nextID, Kind: kind, Message: msg, Duration: d}
	b.active = append(b.active, n)
	b.timers[n.ID] = time.AfterFunc(d, func() { b.Dismiss(n.ID) })

	subs := make([]func(Notification), 0, len(b.order))
	for _, id := range b.order {
		subs = append(subs, b.subs[id])
	}
	b.mu.Unlock()

	for _, fn := range subs {
		fn(n)
	}
	return n.ID
}

func (b *Bus) Success(msg string) int64 { return b.Publish(KindSuccess, msg, 0) }
func (b *Bus) Info(msg string) int64    { return b.Publish(KindInfo, msg, 0) }
func (b *Bus) Error(msg string) int64   { return b.Publish(KindError, msg, 0) }

// Subscribe registers fn for every later notification. The returned func
// unsubscribes and may be called more than once.
func (b *Bus) Subscribe(fn func(Notification)) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextSub++
	id := b.nextSub
	b.subs[id] = fn
	b.order = append(b.order, id)

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs, id)
		b.order = slices.DeleteFunc(b.order, func(v int) bool { return v == id })
	}
}

// Dismiss removes the notification with id. Unknown ids are ignored.
func (b *Bus) Dismiss(id int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if t, ok := b.timers[id]; ok {
		t.Stop()
		delete(b.timers, id)
	}
	b.active = slices.DeleteFunc(b.active, func(n Notification) bool { return n.ID == id })
}

// Active returns the notifications that have not expired or been dismissed,
// oldest first.
func (b *Bus) Active() []Notification {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.active)
}

// Close stops pending timers and drops all subscribers.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	for id, t := range b.timers {
		t.Stop()
		delete(b.timers, id)
	}
	b.active = nil
	clear(b.subs)
	b.order = nil
}
