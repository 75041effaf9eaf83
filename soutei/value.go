package soutei

import (
	"fmt"
	"time"
)

// Value represents any ground datum that can appear in a literal.
// Just like the Datalog engine uses interface{} with direct Go types,
// we keep values as plain Go values rather than a wrapper struct.
type Value interface{}

// Valid value types:
// - bool
// - int64
// - string
// - float64
// - time.Time
//
// All valid value types are comparable, which lets a Value key the
// rule-assertion map directly. Principals are almost always strings.

// Helper functions for creating typed values
func String(s string) Value { return s }
func Int(i int64) Value     { return i }
func Float(f float64) Value { return f }
func Bool(b bool) Value     { return b }
func Time(t time.Time) Value { return t }

// ValidValue reports whether v is one of the supported value types.
// Native decoders, native return schemas and fact tables use this to
// reject host values the engine cannot order or hash.
func ValidValue(v Value) bool {
	switch v.(type) {
	case bool, int64, string, float64, time.Time:
		return true
	}
	return false
}

// FormatValue renders a value for display. Booleans are written #t/#f
// and integers in decimal, as in the rule language; strings are written
// bare, without quotes or escapes.
func FormatValue(v Value) string {
	switch val := v.(type) {
	case nil:
		return "nil"
	case string:
		return val
	case bool:
		if val {
			return "#t"
		}
		return "#f"
	case int64:
		return fmt.Sprintf("%d", val)
	case float64:
		return fmt.Sprintf("%g", val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return fmt.Sprintf("%v", val)
	}
}
