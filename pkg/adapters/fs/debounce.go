package fs

import (
	"sync"
	"time"

	"github.com/aretw0/scribe/pkg/core"
)

// debouncer coalesces bursts of events per document name and delivers only
// the latest one once the name has been quiet for the configured delay.
type debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	timers  map[string]*time.Timer
	pending map[string]core.Event
	stopped bool
	wg      sync.WaitGroup
}

func newDebouncer(delay time.Duration) *debouncer {
	return &debouncer{
		delay:   delay,
		timers:  make(map[string]*time.Timer),
		pending: make(map[string]core.Event),
	}
}

func (d *debouncer) add(e core.Event, deliver func(core.Event)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}

	d.pending[e.Name] = e
	if t, ok := d.timers[e.Name]; ok {
		if t.Stop() {
			t.Reset(d.delay)
			return
		}
		// timer already fired; its callback holds a wg slot and will find
		// no pending entry if we win the race, so schedule a fresh one.
	}

	d.wg.Add(1)
	name := e.Name
	d.timers[name] = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()
		d.mu.Lock()
		ev, ok := d.pending[name]
		delete(d.pending, name)
		delete(d.timers, name)
		d.mu.Unlock()
		if ok {
			deliver(ev)
		}
	})
}

// stopAndWait rejects new events, flushes nothing further and waits for
// in-flight deliveries to finish, up to timeout.
func (d *debouncer) stopAndWait(timeout time.Duration) {
	d.mu.Lock()
	d.stopped = true
	for name, t := range d.timers {
		if t.Stop() {
			d.wg.Done()
		}
		delete(d.timers, name)
	}
	d.pending = make(map[string]core.Event)
	d.mu.Unlock()

	done := make(chan struct{})
	go func() {
		d.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(timeout):
	}
}
