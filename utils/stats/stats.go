// Package stats keeps process-wide advisory operation counters.
// Counters are monotonic and exist for diagnostics only; no analysis
// result may depend on them.
package stats

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

var (
	mu       sync.Mutex
	counters = map[string]uint64{}
)

// Count increments the named counter by one.
func Count(name string) {
	Add(name, 1)
}

// Add increments the named counter by n.
func Add(name string, n uint64) {
	mu.Lock()
	counters[name] += n
	mu.Unlock()
}

// Snapshot returns a copy of all counters.
func Snapshot() map[string]uint64 {
	mu.Lock()
	defer mu.Unlock()
	res := make(map[string]uint64, len(counters))
	for k, v := range counters {
		res[k] = v
	}
	return res
}

// Reset clears all counters.
func Reset() {
	mu.Lock()
	counters = map[string]uint64{}
	mu.Unlock()
}

// Dump logs all counters, sorted by name.
func Dump(l *zap.Logger) {
	snap := Snapshot()
	names := make([]string, 0, len(snap))
	for k := range snap {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		l.Info("stat", zap.String("name", k), zap.Uint64("count", snap[k]))
	}
}
