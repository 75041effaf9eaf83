package engine

// Stream is a lazy, possibly infinite sequence of resolution states.
// A nil *Stream is the empty stream. A node either carries an answer,
// or is a pure suspension; forcing a suspension costs one scheduler
// step under Run's step budget.
//
// Alternatives are combined with Interleave, which swaps operand order
// at every node it peels off. That round-robin is what keeps
// left-recursive rules productive: a diverging branch can only consume
// every other scheduling step.
type Stream struct {
	answer *State
	rest   func() *Stream
}

// Unit is the singleton stream carrying one answer.
func Unit(st *State) *Stream {
	return &Stream{answer: st}
}

// Suspend wraps a stream computation in a suspension node. The
// computation does not run until the scheduler forces it.
func Suspend(f func() *Stream) *Stream {
	return &Stream{rest: f}
}

// force evaluates the tail. Safe on nodes without one.
func (s *Stream) force() *Stream {
	if s.rest == nil {
		return nil
	}
	return s.rest()
}

// Interleave merges two streams fairly. Each time a node is taken from
// the front stream, the remainder is re-queued behind the other stream,
// so neither side can starve the other.
func Interleave(a, b *Stream) *Stream {
	if a == nil {
		return b
	}
	rest := func() *Stream {
		return Interleave(b, a.force())
	}
	if a.answer != nil {
		return &Stream{answer: a.answer, rest: rest}
	}
	return &Stream{rest: rest}
}

// Bind feeds every answer of s through g, interleaving the resulting
// streams. This is conjunction: g is the continuation for the rest of a
// rule body.
func Bind(s *Stream, g func(*State) *Stream) *Stream {
	if s == nil {
		return nil
	}
	rest := &Stream{rest: func() *Stream {
		return Bind(s.force(), g)
	}}
	if s.answer != nil {
		return Interleave(g(s.answer), rest)
	}
	return rest
}
