package engine

import (
	"testing"
)

// takeStates drives a stream by hand, collecting up to maxAnswers
// answers within maxSteps suspension forcings.
func takeStates(s *Stream, maxSteps, maxAnswers int) []*State {
	var out []*State
	steps := 0
	for s != nil && len(out) < maxAnswers {
		if s.answer != nil {
			out = append(out, s.answer)
			s = s.force()
			continue
		}
		if steps >= maxSteps {
			break
		}
		steps++
		s = s.force()
	}
	return out
}

// never is a stream that suspends forever without producing answers.
func never() *Stream {
	return Suspend(func() *Stream { return never() })
}

func TestInterleaveIsFair(t *testing.T) {
	st := testState()

	// An answer behind a diverging alternative must still surface.
	s := Interleave(never(), Unit(st))
	answers := takeStates(s, 10, 1)
	if len(answers) != 1 {
		t.Fatalf("expected 1 answer within 10 steps, got %d", len(answers))
	}

	// And in the other operand order.
	s = Interleave(Unit(st), never())
	answers = takeStates(s, 10, 1)
	if len(answers) != 1 {
		t.Fatalf("expected 1 answer within 10 steps, got %d", len(answers))
	}
}

func TestInterleaveAlternates(t *testing.T) {
	stA := testState()
	stB, _ := stA.nextEpoch()

	// Two infinite streams of distinguishable answers; each must keep
	// producing even though neither ends.
	var repeatA, repeatB func() *Stream
	repeatA = func() *Stream {
		return &Stream{answer: stA, rest: func() *Stream { return Suspend(repeatA) }}
	}
	repeatB = func() *Stream {
		return &Stream{answer: stB, rest: func() *Stream { return Suspend(repeatB) }}
	}

	answers := takeStates(Interleave(repeatA(), repeatB()), 100, 20)
	if len(answers) != 20 {
		t.Fatalf("expected 20 answers, got %d", len(answers))
	}

	seenA, seenB := 0, 0
	for _, st := range answers {
		if st == stA {
			seenA++
		} else {
			seenB++
		}
	}
	if seenA == 0 || seenB == 0 {
		t.Errorf("interleave starved one side: a=%d b=%d", seenA, seenB)
	}
}

func TestBindFeedsEveryAnswer(t *testing.T) {
	st := testState()

	two := Interleave(Unit(st), Unit(st))
	count := 0
	s := Bind(two, func(s2 *State) *Stream {
		count++
		return Unit(s2)
	})

	answers := takeStates(s, 100, 10)
	if len(answers) != 2 {
		t.Errorf("expected 2 answers through bind, got %d", len(answers))
	}
	if count != 2 {
		t.Errorf("goal applied %d times, want 2", count)
	}
}

func TestBindPropagatesFailure(t *testing.T) {
	st := testState()

	s := Bind(Unit(st), func(*State) *Stream { return nil })
	if answers := takeStates(s, 100, 10); len(answers) != 0 {
		t.Errorf("expected no answers, got %d", len(answers))
	}

	if s := Bind(nil, func(s2 *State) *Stream { return Unit(s2) }); s != nil {
		t.Error("binding the empty stream must be empty")
	}
}

func TestSuspendIsLazy(t *testing.T) {
	forced := false
	s := Suspend(func() *Stream {
		forced = true
		return nil
	})
	if forced {
		t.Fatal("suspension body ran eagerly")
	}
	if s.answer != nil {
		t.Fatal("suspension carries no answer")
	}
	s.force()
	if !forced {
		t.Error("force must run the suspension body")
	}
}
