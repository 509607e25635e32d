package share

import (
	"context"
	"sync"
	"time"
)

// DefaultDelay matches the re-arm delay of the share button.
const DefaultDelay = 800 * time.Millisecond

const defaultMaxKeys = 50_000

// Guard rejects repeated share activations for the same key.
type Guard interface {
	// Arm reports whether key may share now. A true result disarms the key
	// until the delay has passed.
	Arm(ctx context.Context, key string) bool

	// Release re-arms key immediately, e.g. when the share could not be built.
	Release(ctx context.Context, key string)

	Size() int
}

// Debouncer is an in-memory Guard. Keys are evicted oldest-armed first once
// the bound is reached; expired keys are dropped before live ones.
type Debouncer struct {
	mu      sync.Mutex
	armed   map[string]time.Time // key -> re-arm deadline
	order   []string             // keys in arm order, may contain stale entries
	delay   time.Duration
	maxKeys int
	now     func() time.Time
}

// NewDebouncer creates a Debouncer with DefaultDelay.
func NewDebouncer(opts ...Option) *Debouncer {
	d := &Debouncer{
		armed:   make(map[string]time.Time),
		delay:   DefaultDelay,
		maxKeys: defaultMaxKeys,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Arm implements Guard.
func (d *Debouncer) Arm(_ context.Context, key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	now := d.now()
	if deadline, ok := d.armed[key]; ok && now.Before(deadline) {
		return false
	}

	_, tracked := d.armed[key]
	if !tracked && d.maxKeys > 0 && len(d.armed) >= d.maxKeys {
		d.evict(now)
	}
	d.armed[key] = now.Add(d.delay)
	if !tracked {
		d.order = append(d.order, key)
		if len(d.order) > 2*len(d.armed)+16 {
			d.compact()
		}
	}
	return true
}

// Release implements Guard.
func (d *Debouncer) Release(_ context.Context, key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.armed, key)
}

// Size returns the number of tracked keys.
func (d *Debouncer) Size() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.armed)
}

// evict drops expired keys, then the oldest live key if still full.
// Must be called with d.mu held.
func (d *Debouncer) evict(now time.Time) {
	for k, deadline := range d.armed {
		if !now.Before(deadline) {
			delete(d.armed, k)
		}
	}

	d.compact()

	for len(d.armed) >= d.maxKeys && len(d.order) > 0 {
		oldest := d.order[0]
		d.order = d.order[1:]
		delete(d.armed, oldest)
	}
}

// compact drops released, evicted and repeated keys from the arm order.
// Must be called with d.mu held.
func (d *Debouncer) compact() {
	seen := make(map[string]struct{}, len(d.armed))
	kept := d.order[:0]
	for _, k := range d.order {
		if _, ok := d.armed[k]; !ok {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		kept = append(kept, k)
	}
	d.order = kept
}
