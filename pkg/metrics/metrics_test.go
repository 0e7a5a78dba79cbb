package metrics

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestCountersAndKeys(t *testing.T) {
	m := New()
	for range 3 {
		m.Counter(Statements).Incr()
	}
	m.Counter(MethodCalls).Incr()

	got := m.All()
	want := map[string]any{
		"counter_statements":   uint64(3),
		"counter_method_calls": uint64(1),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("metrics mismatch (-want +got):\n%s", diff)
	}
}

func TestTimerAccumulates(t *testing.T) {
	m := New()
	tm := m.Timer(ProgramEval)
	tm.Start()
	time.Sleep(time.Millisecond)
	first := tm.Stop()
	if first <= 0 {
		t.Fatalf("expected positive delta, got %d", first)
	}
	if tm.Stop() != 0 {
		t.Fatalf("stopping twice should not add time")
	}
	if m.All()["timer_program_eval_ns"] != first || m.Timer(ProgramEval).Int64() != first {
		t.Fatalf("unexpected timer value %v", m.All()["timer_program_eval_ns"])
	}
}

func TestHistogram(t *testing.T) {
	m := New()
	for _, n := range []int64{1, 2, 3, 10} {
		m.Histogram(WhileIterations).Update(n)
	}
	v, ok := m.All()["histogram_while_iterations"].(map[string]any)
	if !ok {
		t.Fatalf("expected histogram summary, got %#v", m.All())
	}
	if v["count"] != int64(4) || v["max"] != int64(10) || v["min"] != int64(1) {
		t.Fatalf("unexpected summary %#v", v)
	}
}

func TestSorted(t *testing.T) {
	m := New()
	m.Counter(Objects).Incr()
	m.Timer(ProgramParse)
	m.Histogram(WhileIterations)
	var keys []string
	for _, e := range Sorted(m) {
		keys = append(keys, e.Key)
	}
	want := []string{"counter_objects", "histogram_while_iterations", "timer_program_parse_ns"}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Fatalf("unexpected order (-want +got):\n%s", diff)
	}
}

func TestNoOp(t *testing.T) {
	m := NoOp()
	m.Counter(Statements).Incr()
	m.Histogram(WhileIterations).Update(3)
	tm := m.Timer(ProgramEval)
	tm.Start()
	if tm.Stop() != 0 || tm.Int64() != 0 {
		t.Fatalf("noop timer should not measure")
	}
	if len(m.All()) != 0 || len(Sorted(m)) != 0 {
		t.Fatalf("noop metrics should record nothing")
	}
}
