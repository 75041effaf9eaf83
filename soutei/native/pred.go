package native

import (
	"fmt"

	"github.com/wbrown/janus-soutei/soutei"
	"github.com/wbrown/janus-soutei/soutei/engine"
)

// HostFunc is the host side of a native predicate. It receives the
// decoded In arguments in order and returns a value shaped per the
// predicate's return schema. A non-nil error fails the branch; it never
// escapes the scheduler.
type HostFunc func(args []soutei.Value) (interface{}, error)

// ArgDecoder turns a ground In argument into a host value. Decode
// returns false when the runtime type does not fit, which fails the
// branch.
type ArgDecoder struct {
	Name   string
	Decode func(soutei.Value) (soutei.Value, bool)
}

// StringArg decodes a string argument.
func StringArg(name string) ArgDecoder {
	return ArgDecoder{Name: name, Decode: func(v soutei.Value) (soutei.Value, bool) {
		s, ok := v.(string)
		return s, ok
	}}
}

// IntArg decodes an int64 argument.
func IntArg(name string) ArgDecoder {
	return ArgDecoder{Name: name, Decode: func(v soutei.Value) (soutei.Value, bool) {
		i, ok := v.(int64)
		return i, ok
	}}
}

// BoolArg decodes a bool argument.
func BoolArg(name string) ArgDecoder {
	return ArgDecoder{Name: name, Decode: func(v soutei.Value) (soutei.Value, bool) {
		b, ok := v.(bool)
		return b, ok
	}}
}

// FloatArg decodes a float64 argument.
func FloatArg(name string) ArgDecoder {
	return ArgDecoder{Name: name, Decode: func(v soutei.Value) (soutei.Value, bool) {
		f, ok := v.(float64)
		return f, ok
	}}
}

// AnyArg accepts any ground value unchanged.
func AnyArg(name string) ArgDecoder {
	return ArgDecoder{Name: name, Decode: func(v soutei.Value) (soutei.Value, bool) {
		return v, soutei.ValidValue(v)
	}}
}

// Func assembles a native predicate from decoders for the leading In
// arguments, a return schema for the trailing Out arguments, and the
// host function itself. The moded signature is In for each decoder
// followed by the schema's output modes; the evaluator guarantees every
// Out argument is ground on success, which the mode checker relies on.
func Func(name string, ins []ArgDecoder, ret Ret, fn HostFunc) engine.NativePred {
	key := soutei.PredKey{Name: name, Arity: len(ins) + ret.arity()}

	modes := make([]soutei.ModedArg, 0, key.Arity)
	for _, d := range ins {
		modes = append(modes, soutei.ModedArg{Name: d.Name, Mode: soutei.In})
	}
	modes = append(modes, ret.outModes()...)

	eval := func(call soutei.Literal, st *engine.State) *engine.Stream {
		obs := st.Observer()
		obs.NativeInvoked(key, call)

		vals := make([]soutei.Value, len(ins))
		for i, d := range ins {
			c, ok := st.Walk(call.Args[i]).(soutei.Const)
			if !ok {
				// Mode checking normally prevents an unbound In
				// argument; at runtime it just fails the branch.
				obs.NativeDecodeFailed(key, d.Name)
				return nil
			}
			v, ok := d.Decode(c.Value)
			if !ok {
				obs.NativeDecodeFailed(key, d.Name)
				return nil
			}
			vals[i] = v
		}

		out, err := fn(vals)
		if err != nil {
			obs.NativeCallFailed(key, err)
			return nil
		}
		return ret.emit(st, key, out, call.Args[len(ins):])
	}

	return engine.NativePred{
		Sig:  soutei.ModedLiteral{Pred: key, Args: modes},
		Eval: eval,
	}
}

// Fact wraps a pre-built literal as a native predicate: no host call,
// just unification of the stored arguments against the call's. All
// argument positions are Out.
func Fact(lit soutei.Literal) engine.NativePred {
	modes := make([]soutei.ModedArg, len(lit.Args))
	for i := range lit.Args {
		modes[i] = soutei.ModedArg{Name: fmt.Sprintf("arg%d", i), Mode: soutei.Out}
	}

	eval := func(call soutei.Literal, st *engine.State) *engine.Stream {
		st, ok := engine.UnifyArgs(st, lit.Args, call.Args)
		if !ok {
			return nil
		}
		return engine.Unit(st)
	}

	return engine.NativePred{
		Sig:  soutei.ModedLiteral{Pred: lit.Pred, Args: modes},
		Eval: eval,
	}
}

// FactTable bundles many ground rows of one predicate into a single
// native predicate, succeeding once per matching row. All rows must
// share the declared width.
func FactTable(name string, width int, rows [][]soutei.Value) (engine.NativePred, error) {
	for i, row := range rows {
		if len(row) != width {
			return engine.NativePred{}, fmt.Errorf("fact table %s: row %d has %d values, want %d",
				name, i, len(row), width)
		}
		for j, v := range row {
			if !soutei.ValidValue(v) {
				return engine.NativePred{}, fmt.Errorf("fact table %s: row %d column %d holds unsupported value %v",
					name, i, j, v)
			}
		}
	}

	key := soutei.PredKey{Name: name, Arity: width}
	modes := make([]soutei.ModedArg, width)
	for i := range modes {
		modes[i] = soutei.ModedArg{Name: fmt.Sprintf("arg%d", i), Mode: soutei.Out}
	}

	eval := func(call soutei.Literal, st *engine.State) *engine.Stream {
		var s *engine.Stream
		for i := len(rows) - 1; i >= 0; i-- {
			row := rows[i]
			terms := make([]soutei.Term, width)
			for j, v := range row {
				terms[j] = soutei.Const{Value: v}
			}
			if st2, ok := engine.UnifyArgs(st, terms, call.Args); ok {
				s = engine.Interleave(engine.Unit(st2), s)
			}
		}
		return s
	}

	return engine.NativePred{
		Sig:  soutei.ModedLiteral{Pred: key, Args: modes},
		Eval: eval,
	}, nil
}

// NewAssertion assembles native predicates into one assertion. Two
// predicates with the same key, or a predicate whose advertised arity
// disagrees with its moded arguments, are construction errors that
// prevent the assertion from being used.
func NewAssertion(preds ...engine.NativePred) (engine.NativeAssertion, error) {
	asn := make(engine.NativeAssertion, len(preds))
	for _, p := range preds {
		key := p.Sig.Pred
		if p.Eval == nil {
			return nil, fmt.Errorf("native predicate %s has no evaluator", key)
		}
		if len(p.Sig.Args) != key.Arity {
			return nil, fmt.Errorf("native predicate %s: signature declares %d moded arguments for arity %d",
				key, len(p.Sig.Args), key.Arity)
		}
		if _, dup := asn[key]; dup {
			return nil, fmt.Errorf("duplicate native predicate %s", key)
		}
		asn[key] = p
	}
	return asn, nil
}
