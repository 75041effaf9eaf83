package annotations

import (
	"strings"
	"testing"
	"time"
)

func TestCollectorForwardsToHandler(t *testing.T) {
	var seen []string
	c := NewCollector(func(e Event) { seen = append(seen, e.Name) })

	c.Add(Event{Name: ResolveDispatch, Start: time.Now()})
	c.AddTiming(RunCompleted, time.Now(), map[string]interface{}{
		"run.id": "r", "step.count": 3, "answer.count": 1, "termination": "exhausted",
	})

	if len(seen) != 2 {
		t.Fatalf("handler saw %d events, want 2", len(seen))
	}
	if events := c.Events(); len(events) != 2 {
		t.Fatalf("collector kept %d events, want 2", len(events))
	}

	c.Reset()
	if events := c.Events(); len(events) != 0 {
		t.Errorf("reset left %d events", len(events))
	}
}

func TestNilCollectorIsSilent(t *testing.T) {
	var c *Collector
	c.Add(Event{Name: ResolveDispatch})
	c.AddTiming(RunCompleted, time.Now(), nil)
	if c.Events() != nil {
		t.Error("nil collector should report no events")
	}
}

func TestDisabledCollectorDropsEvents(t *testing.T) {
	c := NewCollector(nil)
	c.Add(Event{Name: ResolveDispatch})
	if len(c.Events()) != 0 {
		t.Error("collector without handler should drop events")
	}
}

func TestFormatterRendersKnownEvents(t *testing.T) {
	var sb strings.Builder
	f := NewOutputFormatter(&sb)

	f.Handle(Event{
		Name: ResolveDispatch,
		Data: map[string]interface{}{"goal": "app says path(1, ?y)"},
	})
	f.Handle(Event{
		Name:    RunCompleted,
		Latency: 2 * time.Millisecond,
		Data: map[string]interface{}{
			"answer.count": 5, "step.count": 120, "termination": "answer-limit",
		},
	})

	out := sb.String()
	if !strings.Contains(out, "app says path(1, ?y)") {
		t.Errorf("dispatch goal missing from output:\n%s", out)
	}
	if !strings.Contains(out, "answer-limit") {
		t.Errorf("termination missing from output:\n%s", out)
	}
}

func TestFormatterIgnoresUnknownEvents(t *testing.T) {
	var sb strings.Builder
	f := NewOutputFormatter(&sb)
	f.Handle(Event{Name: "no/such-event"})
	if sb.Len() != 0 {
		t.Errorf("unexpected output %q", sb.String())
	}
}
