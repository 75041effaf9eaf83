package native

import (
	"strings"

	"github.com/wbrown/janus-soutei/soutei"
	"github.com/wbrown/janus-soutei/soutei/engine"
)

// StdLib builds the "std" native assertion: small, pure predicates that
// rules can lean on without a custom native database. Referenced from
// rule files as ":std says ...".
func StdLib() engine.NativeAssertion {
	less := Func("less", []ArgDecoder{IntArg("x"), IntArg("y")}, Bool{},
		func(args []soutei.Value) (interface{}, error) {
			return args[0].(int64) < args[1].(int64), nil
		})

	equal := Func("equal", []ArgDecoder{AnyArg("x"), AnyArg("y")}, Bool{},
		func(args []soutei.Value) (interface{}, error) {
			return soutei.ValuesEqual(args[0], args[1]), nil
		})

	plus := Func("plus", []ArgDecoder{IntArg("x"), IntArg("y")}, Value{Name: "sum"},
		func(args []soutei.Value) (interface{}, error) {
			return args[0].(int64) + args[1].(int64), nil
		})

	concat := Func("concat", []ArgDecoder{StringArg("a"), StringArg("b")}, Value{Name: "joined"},
		func(args []soutei.Value) (interface{}, error) {
			return args[0].(string) + args[1].(string), nil
		})

	prefix := Func("str-prefix", []ArgDecoder{StringArg("s"), StringArg("prefix")}, Bool{},
		func(args []soutei.Value) (interface{}, error) {
			return strings.HasPrefix(args[0].(string), args[1].(string)), nil
		})

	split := Func("split", []ArgDecoder{StringArg("s"), StringArg("sep")}, List{Elem: Value{Name: "part"}},
		func(args []soutei.Value) (interface{}, error) {
			parts := strings.Split(args[0].(string), args[1].(string))
			out := make([]soutei.Value, len(parts))
			for i, p := range parts {
				out[i] = p
			}
			return out, nil
		})

	asn, err := NewAssertion(less, equal, plus, concat, prefix, split)
	if err != nil {
		// The stdlib is static; a construction error here is a
		// programming bug, not a runtime condition.
		panic(err)
	}
	return asn
}
