package views

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Mounted is a live view instance.
type Mounted interface {
	Unmount()
}

// RegistryConfig bounds the number and idle time of mounted views.
type RegistryConfig struct {
	MaxMounted int
	IdleTTL    time.Duration
	Logger     zerolog.Logger
}

// RegistryStats tracks registry activity.
type RegistryStats struct {
	Mounted   int64
	Unmounted int64
	Expired   int64
	Evicted   int64
	Live      int64
}

type registryEntry struct {
	view       Mounted
	kind       string
	mountedAt  time.Time
	accessedAt time.Time
}

// Registry keeps the view instances of open pages so that fragment requests
// can reach the instance their page mounted. Removing an entry unmounts it.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*registryEntry
	config  RegistryConfig
	stats   RegistryStats
	now     func() time.Time
	cron    *cron.Cron
	logger  zerolog.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(config RegistryConfig) *Registry {
	if config.MaxMounted <= 0 {
		config.MaxMounted = 1000
	}
	if config.IdleTTL <= 0 {
		config.IdleTTL = 30 * time.Minute
	}
	return &Registry{
		entries: make(map[string]*registryEntry),
		config:  config,
		now:     time.Now,
		logger:  config.Logger.With().Str("component", "view_registry").Logger(),
	}
}

// Mount registers v and returns its id. At capacity the least recently
// used view is unmounted first.
func (r *Registry) Mount(kind string, v Mounted) string {
	id := uuid.New().String()
	now := r.now()

	var evicted Mounted
	r.mu.Lock()
	if len(r.entries) >= r.config.MaxMounted {
		evicted = r.evictLRU()
	}
	r.entries[id] = &registryEntry{view: v, kind: kind, mountedAt: now, accessedAt: now}
	r.stats.Mounted++
	r.mu.Unlock()

	if evicted != nil {
		evicted.Unmount()
	}
	return id
}

// Get returns the view mounted under id and marks it as used.
func (r *Registry) Get(id string) (Mounted, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[id]
	if !ok {
		return nil, false
	}
	entry.accessedAt = r.now()
	return entry.view, true
}

// Lookup returns the view mounted under id if it has type T.
func Lookup[T Mounted](r *Registry, id string) (T, bool) {
	var zero T
	v, ok := r.Get(id)
	if !ok {
		return zero, false
	}
	typed, ok := v.(T)
	if !ok {
		return zero, false
	}
	return typed, true
}

// Unmount removes and unmounts the view under id.
func (r *Registry) Unmount(id string) bool {
	r.mu.Lock()
	entry, ok := r.entries[id]
	if ok {
		delete(r.entries, id)
		r.stats.Unmounted++
	}
	r.mu.Unlock()

	if ok {
		entry.view.Unmount()
	}
	return ok
}

// Sweep unmounts views idle for longer than the TTL and returns how many.
func (r *Registry) Sweep() int {
	cutoff := r.now().Add(-r.config.IdleTTL)

	var expired []Mounted
	r.mu.Lock()
	for id, entry := range r.entries {
		if entry.accessedAt.Before(cutoff) {
			expired = append(expired, entry.view)
			delete(r.entries, id)
			r.stats.Expired++
		}
	}
	r.mu.Unlock()

	for _, v := range expired {
		v.Unmount()
	}
	if len(expired) > 0 {
		r.logger.Debug().Int("expired", len(expired)).Msg("swept idle views")
	}
	return len(expired)
}

// evictLRU drops the least recently used entry. Caller holds mu.
func (r *Registry) evictLRU() Mounted {
	var oldestID string
	var oldest time.Time
	for id, entry := range r.entries {
		if oldestID == "" || entry.accessedAt.Before(oldest) {
			oldestID = id
			oldest = entry.accessedAt
		}
	}
	if oldestID == "" {
		return nil
	}
	entry := r.entries[oldestID]
	delete(r.entries, oldestID)
	r.stats.Evicted++
	return entry.view
}

// Len returns the number of mounted views.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Stats returns registry counters.
func (r *Registry) Stats() RegistryStats {
	r.mu.Lock()
	defer r.mu.Unlock()
	stats := r.stats
	stats.Live = int64(len(r.entries))
	return stats
}

// StartSweeper runs Sweep on a cron schedule such as "@every 1m".
func (r *Registry) StartSweeper(schedule string) error {
	c := cron.New(cron.WithLocation(time.UTC))
	if _, err := c.AddFunc(schedule, func() { r.Sweep() }); err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", schedule, err)
	}
	r.mu.Lock()
	r.cron = c
	r.mu.Unlock()
	c.Start()
	return nil
}

// Close stops the sweeper and unmounts every view.
func (r *Registry) Close() {
	r.mu.Lock()
	c := r.cron
	r.cron = nil
	entries := r.entries
	r.entries = make(map[string]*registryEntry)
	r.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}
	for _, entry := range entries {
		entry.view.Unmount()
	}
}
