// Package metrics collects timers, counters and histograms for a run of the
// interpreter.
package metrics

import (
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	gometrics "github.com/rcrowley/go-metrics"
)

// Well-known metric names.
const (
	SourceLoad      = "source_load"
	ProgramParse    = "program_parse"
	ProgramEval     = "program_eval"
	Statements      = "statements"
	MethodCalls     = "method_calls"
	Objects         = "objects"
	Diagnostics     = "diagnostics"
	WhileIterations = "while_iterations"
)

// Metrics hands out named instruments. Asking twice for the same name returns
// the same instrument.
type Metrics interface {
	Timer(name string) Timer
	Histogram(name string) Histogram
	Counter(name string) Counter
	// All reports every instrument under its kind-qualified key, e.g.
	// timer_program_eval_ns, counter_statements, histogram_while_iterations.
	All() map[string]any
}

// Timer accumulates elapsed nanoseconds over Start/Stop pairs.
type Timer interface {
	Start()
	// Stop returns the nanoseconds since Start, or 0 when not started.
	Stop() int64
	Int64() int64
}

type Histogram interface {
	Update(v int64)
}

type Counter interface {
	Incr()
}

type instrument interface {
	snapshot() any
}

type registry struct {
	mu          sync.Mutex
	instruments map[string]instrument
}

func New() Metrics {
	return &registry{instruments: map[string]instrument{}}
}

func (r *registry) lookup(key string, create func() instrument) instrument {
	r.mu.Lock()
	defer r.mu.Unlock()
	inst, ok := r.instruments[key]
	if !ok {
		inst = create()
		r.instruments[key] = inst
	}
	return inst
}

func (r *registry) Timer(name string) Timer {
	return r.lookup("timer_"+name+"_ns", func() instrument { return &timer{} }).(Timer)
}

func (r *registry) Histogram(name string) Histogram {
	return r.lookup("histogram_"+name, func() instrument {
		return &histogram{h: gometrics.NewHistogram(gometrics.NewExpDecaySample(1028, 0.015))}
	}).(Histogram)
}

func (r *registry) Counter(name string) Counter {
	return r.lookup("counter_"+name, func() instrument { return &counter{} }).(Counter)
}

func (r *registry) All() map[string]any {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string]any, len(r.instruments))
	for key, inst := range r.instruments {
		out[key] = inst.snapshot()
	}
	return out
}

// Entry is one reported metric.
type Entry struct {
	Key   string
	Value any
}

// Sorted returns All() ordered by key.
func Sorted(m Metrics) []Entry {
	all := m.All()
	out := make([]Entry, 0, len(all))
	for k, v := range all {
		out = append(out, Entry{Key: k, Value: v})
	}
	slices.SortFunc(out, func(a, b Entry) int {
		return strings.Compare(a.Key, b.Key)
	})
	return out
}

type timer struct {
	mu      sync.Mutex
	started time.Time
	total   int64
}

func (t *timer) Start() {
	t.mu.Lock()
	t.started = time.Now()
	t.mu.Unlock()
}

func (t *timer) Stop() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started.IsZero() {
		return 0
	}
	elapsed := time.Since(t.started).Nanoseconds()
	t.total += elapsed
	t.started = time.Time{}
	return elapsed
}

func (t *timer) Int64() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total
}

func (t *timer) snapshot() any { return t.Int64() }

type histogram struct {
	h gometrics.Histogram
}

func (h *histogram) Update(v int64) { h.h.Update(v) }

func (h *histogram) snapshot() any {
	s := h.h.Snapshot()
	p := s.Percentiles([]float64{0.5, 0.9, 0.99})
	return map[string]any{
		"count":  s.Count(),
		"min":    s.Min(),
		"max":    s.Max(),
		"mean":   s.Mean(),
		"median": p[0],
		"90%":    p[1],
		"99%":    p[2],
	}
}

type counter struct {
	n atomic.Uint64
}

func (c *counter) Incr() { c.n.Add(1) }

func (c *counter) snapshot() any { return c.n.Load() }

// NoOp returns a Metrics that records nothing.
func NoOp() Metrics { return noop{} }

type noop struct{}

func (noop) Timer(string) Timer         { return noop{} }
func (noop) Histogram(string) Histogram { return noop{} }
func (noop) Counter(string) Counter     { return noop{} }
func (noop) All() map[string]any        { return nil }
func (noop) Start()                     {}
func (noop) Stop() int64                { return 0 }
func (noop) Int64() int64               { return 0 }
func (noop) Update(int64)               {}
func (noop) Incr()                      {}
