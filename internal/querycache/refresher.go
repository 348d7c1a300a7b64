package querycache

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"komuterkita.id/internal/logging"
)

// RefreshInterval is how often a watched key is refreshed in the
// background.
const RefreshInterval = time.Minute

// defaultWatchExpiry is how long a key stays watched after its last
// Watch call. Watching is re-asserted on every request for the key, so
// a key nobody asks about anymore falls out of the refresh set.
const defaultWatchExpiry = 5 * time.Minute

type watchedKey struct {
	fetch    FetchFunc
	lastSeen time.Time
	pinned   bool
}

// Refresher keeps watched cache keys warm on a fixed interval, the way
// the schedule view keeps the selected station's departures current
// while it is displayed.
type Refresher struct {
	cache    *Cache
	interval time.Duration
	expiry   time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	watched map[string]watchedKey

	shutdownChan chan struct{}
	shutdownOnce sync.Once
	wg           sync.WaitGroup
}

func NewRefresher(cache *Cache, interval time.Duration, logger *slog.Logger) *Refresher {
	r := &Refresher{
		cache:        cache,
		interval:     interval,
		expiry:       defaultWatchExpiry,
		logger:       logger,
		watched:      make(map[string]watchedKey),
		shutdownChan: make(chan struct{}),
	}
	r.wg.Add(1)
	go r.run()
	return r
}

// Watch marks key for periodic refresh, renewing the watch if it is
// already present. A pinned key stays pinned.
func (r *Refresher) Watch(key string, fetch FetchFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pinned := r.watched[key].pinned
	r.watched[key] = watchedKey{fetch: fetch, lastSeen: time.Now(), pinned: pinned}
}

// Pin watches key permanently: it never expires from the refresh set.
func (r *Refresher) Pin(key string, fetch FetchFunc) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watched[key] = watchedKey{fetch: fetch, lastSeen: time.Now(), pinned: true}
}

// Unwatch removes key from the refresh set.
func (r *Refresher) Unwatch(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.watched, key)
}

// Shutdown stops the background loop and waits for it to exit. Safe to
// call more than once.
func (r *Refresher) Shutdown() {
	r.shutdownOnce.Do(func() {
		close(r.shutdownChan)
		r.wg.Wait()
	})
}

func (r *Refresher) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.shutdownChan:
			return
		case <-ticker.C:
			r.refreshAll()
		}
	}
}

func (r *Refresher) refreshAll() {
	r.mu.Lock()
	jobs := make(map[string]FetchFunc, len(r.watched))
	for key, watched := range r.watched {
		if !watched.pinned && time.Since(watched.lastSeen) > r.expiry {
			delete(r.watched, key)
			continue
		}
		jobs[key] = watched.fetch
	}
	r.mu.Unlock()

	for key, fetch := range jobs {
		ctx, cancel := context.WithTimeout(context.Background(), r.interval)
		value, err := fetch(ctx)
		cancel()

		if err != nil {
			logging.LogError(r.logger, "background refresh failed", err, slog.String("key", key))
			continue
		}
		r.cache.Put(key, value)
	}
}
