package store

import "sync"

// subscriberList is the change-notification fanout owned by each store.
// Subscribers receive no payload: on notify they re-read the store's latest
// snapshot themselves (pull-on-notify, no diffs).
type subscriberList struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]func()
}

func newSubscriberList() *subscriberList {
	return &subscriberList{subs: make(map[int]func())}
}

// subscribe registers fn and returns a function that removes it again.
func (l *subscriberList) subscribe(fn func()) func() {
	l.mu.Lock()
	defer l.mu.Unlock()

	id := l.nextID
	l.nextID++
	l.subs[id] = fn

	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		delete(l.subs, id)
	}
}

// notify invokes every registered subscriber.
func (l *subscriberList) notify() {
	l.mu.Lock()
	fns := make([]func(), 0, len(l.subs))
	for _, fn := range l.subs {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
