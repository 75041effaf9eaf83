package soutei

import (
	"fmt"
	"strings"
	"time"
)

// CompareValues compares two values and returns:
//
//	-1 if left < right
//	 0 if left == right
//	 1 if left > right
//
// The order is total: values of different kinds are ordered by a fixed
// kind rank (bool < int64 < float64 < string < time.Time), values of the
// same kind by their natural order. Nil is less than any non-nil value.
func CompareValues(left, right Value) int {
	// Handle nil
	if left == nil && right == nil {
		return 0
	}
	if left == nil {
		return -1
	}
	if right == nil {
		return 1
	}

	lr, rr := kindRank(left), kindRank(right)
	if lr != rr {
		if lr < rr {
			return -1
		}
		return 1
	}

	switch l := left.(type) {
	case bool:
		r := right.(bool)
		if !l && r {
			return -1
		} else if l && !r {
			return 1
		}
		return 0
	case int64:
		return compareInt64s(l, right.(int64))
	case float64:
		return compareFloats(l, right.(float64))
	case string:
		return strings.Compare(l, right.(string))
	case time.Time:
		r := right.(time.Time)
		if l.Before(r) {
			return -1
		} else if l.After(r) {
			return 1
		}
		return 0
	}

	// Fall back to string comparison for unknown types
	return strings.Compare(stringValue(left), stringValue(right))
}

// kindRank assigns each supported value kind a stable rank so the order
// over mixed-kind values is total.
func kindRank(v Value) int {
	switch v.(type) {
	case bool:
		return 0
	case int64:
		return 1
	case float64:
		return 2
	case string:
		return 3
	case time.Time:
		return 4
	}
	return 5
}

// compareInt64s compares two int64 values
func compareInt64s(a, b int64) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

// compareFloats compares two float64 values
func compareFloats(a, b float64) int {
	if a < b {
		return -1
	} else if a > b {
		return 1
	}
	return 0
}

// ValuesEqual checks if two values are equal. Values of different
// kinds are never equal; time.Time values are equal when they denote
// the same instant.
func ValuesEqual(a, b Value) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	switch av := a.(type) {
	case bool, int64, float64, string:
		return a == b
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			return av.Equal(bv)
		}
		return false
	}

	// Fall back to string comparison for unknown types
	return fmt.Sprintf("%v", a) == fmt.Sprintf("%v", b)
}

// stringValue converts any value to a string for comparison
func stringValue(v Value) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}
