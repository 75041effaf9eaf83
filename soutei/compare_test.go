package soutei

import (
	"testing"
	"time"
)

func TestCompareValuesSameKind(t *testing.T) {
	if CompareValues(int64(1), int64(2)) != -1 {
		t.Error("Expected 1 < 2")
	}
	if CompareValues(int64(2), int64(2)) != 0 {
		t.Error("Expected 2 == 2")
	}
	if CompareValues("b", "a") != 1 {
		t.Error("Expected b > a")
	}
	if CompareValues(false, true) != -1 {
		t.Error("Expected false < true")
	}

	earlier := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	later := earlier.Add(time.Hour)
	if CompareValues(earlier, later) != -1 {
		t.Error("Expected earlier < later")
	}
}

func TestCompareValuesMixedKindsIsTotal(t *testing.T) {
	values := []Value{true, int64(5), 3.14, "abc", time.Unix(0, 0).UTC()}

	// Every pair must order consistently in both directions.
	for i, a := range values {
		for j, b := range values {
			ab := CompareValues(a, b)
			ba := CompareValues(b, a)
			if ab != -ba {
				t.Errorf("CompareValues(%v, %v)=%d but reversed=%d", a, b, ab, ba)
			}
			if i == j && ab != 0 {
				t.Errorf("CompareValues(%v, %v)=%d, want 0", a, b, ab)
			}
		}
	}
}

func TestCompareValuesNil(t *testing.T) {
	if CompareValues(nil, nil) != 0 {
		t.Error("Expected nil == nil")
	}
	if CompareValues(nil, int64(0)) != -1 {
		t.Error("Expected nil < 0")
	}
	if CompareValues("", nil) != 1 {
		t.Error("Expected \"\" > nil")
	}
}

func TestValuesEqual(t *testing.T) {
	if !ValuesEqual("x", "x") {
		t.Error("Expected equal strings to be equal")
	}
	if ValuesEqual("x", int64(0)) {
		t.Error("Expected string and int to differ")
	}
	if ValuesEqual(int64(1), 1.0) {
		t.Error("Expected int64 and float64 to differ")
	}

	a := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	b := a.In(time.FixedZone("X", 3600))
	if !ValuesEqual(a, b) {
		t.Error("Expected same instant in different zones to be equal")
	}
}

func TestValidValue(t *testing.T) {
	for _, v := range []Value{true, int64(1), "s", 1.5, time.Now()} {
		if !ValidValue(v) {
			t.Errorf("Expected %v to be a valid value", v)
		}
	}
	if ValidValue(nil) {
		t.Error("Expected nil to be invalid")
	}
	if ValidValue([]byte("x")) {
		t.Error("Expected []byte to be invalid")
	}
	if ValidValue(int(1)) {
		t.Error("Expected plain int to be invalid (values are int64)")
	}
}
