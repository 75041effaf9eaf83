// Package native adapts host-language functions into goal-callable
// predicates. A predicate is assembled from an input schema (decoders
// for the leading In arguments) and a return schema (how the host value
// maps onto the trailing Out arguments); the same construction yields
// both the evaluator and the moded signature the mode checker consults.
package native

import (
	"github.com/wbrown/janus-soutei/soutei"
	"github.com/wbrown/janus-soutei/soutei/engine"
)

// Ret describes how a host return value maps onto output argument
// terms. Each variant documents the dynamic type it expects the host
// value to carry; a value of the wrong type fails the branch.
type Ret interface {
	arity() int
	outModes() []soutei.ModedArg
	emit(st *engine.State, key soutei.PredKey, out interface{}, args []soutei.Term) *engine.Stream
}

// Unit maps the empty host result onto zero output arguments; the call
// succeeds exactly once. The host value is ignored.
type Unit struct{}

func (Unit) arity() int                   { return 0 }
func (Unit) outModes() []soutei.ModedArg  { return nil }
func (Unit) emit(st *engine.State, _ soutei.PredKey, _ interface{}, _ []soutei.Term) *engine.Stream {
	return engine.Unit(st)
}

// Bool maps a host bool onto zero output arguments: true succeeds once,
// false fails the branch.
type Bool struct{}

func (Bool) arity() int                  { return 0 }
func (Bool) outModes() []soutei.ModedArg { return nil }
func (Bool) emit(st *engine.State, _ soutei.PredKey, out interface{}, _ []soutei.Term) *engine.Stream {
	b, ok := out.(bool)
	if !ok || !b {
		return nil
	}
	return engine.Unit(st)
}

// Value maps a single host value (soutei.Value) onto one output
// argument.
type Value struct {
	Name string
}

func (Value) arity() int { return 1 }
func (v Value) outModes() []soutei.ModedArg {
	return []soutei.ModedArg{{Name: v.Name, Mode: soutei.Out}}
}
func (Value) emit(st *engine.State, _ soutei.PredKey, out interface{}, args []soutei.Term) *engine.Stream {
	if !soutei.ValidValue(out) {
		return nil
	}
	st, ok := engine.Unify(st, soutei.Const{Value: out}, args[0])
	if !ok {
		return nil
	}
	return engine.Unit(st)
}

// Tuple maps a host []soutei.Value of fixed width onto that many output
// arguments.
type Tuple struct {
	Names []string
}

func (t Tuple) arity() int { return len(t.Names) }
func (t Tuple) outModes() []soutei.ModedArg {
	modes := make([]soutei.ModedArg, len(t.Names))
	for i, n := range t.Names {
		modes[i] = soutei.ModedArg{Name: n, Mode: soutei.Out}
	}
	return modes
}
func (t Tuple) emit(st *engine.State, _ soutei.PredKey, out interface{}, args []soutei.Term) *engine.Stream {
	vals, ok := out.([]soutei.Value)
	if !ok || len(vals) != len(t.Names) {
		return nil
	}
	for i, v := range vals {
		if !soutei.ValidValue(v) {
			return nil
		}
		st, ok = engine.Unify(st, soutei.Const{Value: v}, args[i])
		if !ok {
			return nil
		}
	}
	return engine.Unit(st)
}

// List lifts a schema over a host []soutei.Value: the call succeeds
// once per element, as a fair nondeterministic choice. An empty slice
// fails the branch.
type List struct {
	Elem Ret
}

func (l List) arity() int                  { return l.Elem.arity() }
func (l List) outModes() []soutei.ModedArg { return l.Elem.outModes() }
func (l List) emit(st *engine.State, key soutei.PredKey, out interface{}, args []soutei.Term) *engine.Stream {
	items, ok := out.([]soutei.Value)
	if !ok {
		return nil
	}
	var s *engine.Stream
	for i := len(items) - 1; i >= 0; i-- {
		s = engine.Interleave(l.Elem.emit(st, key, items[i], args), s)
	}
	return s
}

// Option lifts a schema over a possibly absent host value: nil fails the
// branch, anything else succeeds per the element schema.
type Option struct {
	Elem Ret
}

func (o Option) arity() int                  { return o.Elem.arity() }
func (o Option) outModes() []soutei.ModedArg { return o.Elem.outModes() }
func (o Option) emit(st *engine.State, key soutei.PredKey, out interface{}, args []soutei.Term) *engine.Stream {
	if out == nil {
		return nil
	}
	return o.Elem.emit(st, key, out, args)
}

// Effect defers the host computation to scheduler-visit time. The host
// value must be a thunk func() (interface{}, error); it runs inside one
// suspension, so its side effects are ordered with result emission on
// the branch that produced them.
type Effect struct {
	Elem Ret
}

func (e Effect) arity() int                  { return e.Elem.arity() }
func (e Effect) outModes() []soutei.ModedArg { return e.Elem.outModes() }
func (e Effect) emit(st *engine.State, key soutei.PredKey, out interface{}, args []soutei.Term) *engine.Stream {
	thunk, ok := out.(func() (interface{}, error))
	if !ok {
		return nil
	}
	return engine.Suspend(func() *engine.Stream {
		v, err := thunk()
		if err != nil {
			st.Observer().NativeCallFailed(key, err)
			return nil
		}
		return e.Elem.emit(st, key, v, args)
	})
}
