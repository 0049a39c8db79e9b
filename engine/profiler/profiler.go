// Package profiler accumulates wall-clock time per named scope across frames.
// It is cheap enough to leave enabled: a disabled profiler returns a no-op end
// function without reading the clock.
package profiler

import (
	"cmp"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

// ScopeStat summarises every sample recorded under one scope name.
type ScopeStat struct {
	Name  string
	Count int
	Total time.Duration
	Max   time.Duration
	Last  time.Duration
}

// Mean is the average duration of a sample.
func (s ScopeStat) Mean() time.Duration {
	if s.Count == 0 {
		return 0
	}
	return s.Total / time.Duration(s.Count)
}

var (
	enabled atomic.Bool
	mu      sync.Mutex
	scopes  = map[string]*ScopeStat{}
)

// Enable turns sampling on or off. Sampling starts disabled.
func Enable(on bool) { enabled.Store(on) }

func Enabled() bool { return enabled.Load() }

// Start begins a scope and returns the function that ends it.
//
//	end := profiler.Start("ui.layout")
//	defer end()
func Start(name string) func() {
	if !enabled.Load() {
		return func() {}
	}
	begin := time.Now()
	return func() { record(name, time.Since(begin)) }
}

func record(name string, d time.Duration) {
	mu.Lock()
	defer mu.Unlock()
	s, ok := scopes[name]
	if !ok {
		s = &ScopeStat{Name: name}
		scopes[name] = s
	}
	s.Count++
	s.Total += d
	s.Last = d
	if d > s.Max {
		s.Max = d
	}
}

// Snapshot returns the current statistics sorted by scope name.
func Snapshot() []ScopeStat {
	mu.Lock()
	out := make([]ScopeStat, 0, len(scopes))
	for _, s := range scopes {
		out = append(out, *s)
	}
	mu.Unlock()
	slices.SortFunc(out, func(a, b ScopeStat) int { return cmp.Compare(a.Name, b.Name) })
	return out
}

// Reset drops all recorded samples.
func Reset() {
	mu.Lock()
	clear(scopes)
	mu.Unlock()
}

func MemoryUsage() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Alloc
}

func MemoryAllocs() uint64 {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return m.Mallocs
}

type dumpScope struct {
	Name    string  `json:"name"`
	Count   int     `json:"count"`
	TotalMS float64 `json:"total_ms"`
	MeanMS  float64 `json:"mean_ms"`
	MaxMS   float64 `json:"max_ms"`
}

// Dump writes the snapshot as JSON into the temp directory and returns the path.
func Dump() (string, error) {
	stats := Snapshot()
	if len(stats) == 0 {
		return "", fmt.Errorf("profiler: no samples to dump")
	}
	doc := make([]dumpScope, len(stats))
	for i, s := range stats {
		doc[i] = dumpScope{
			Name:    s.Name,
			Count:   s.Count,
			TotalMS: ms(s.Total),
			MeanMS:  ms(s.Mean()),
			MaxMS:   ms(s.Max),
		}
	}

	path := filepath.Join(os.TempDir(), "veil.profile.json")
	tmp := path + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return "", err
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	if err := os.Rename(tmp, path); err != nil {
		return "", err
	}
	return path, nil
}

func ms(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }
