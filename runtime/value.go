// Package gruntime executes parsed programs against a variable environment.
package gruntime

import (
	"strconv"
	"strings"
)

// ValueKind tags the three runtime value shapes.
type ValueKind int

const (
	IntKind ValueKind = iota
	StringKind
	ArrayKind
)

func (k ValueKind) String() string {
	switch k {
	case IntKind:
		return "int"
	case StringKind:
		return "string"
	case ArrayKind:
		return "array"
	}
	return "unknown"
}

// Value is a tagged union of integer, string, and fixed-length string array.
// Copies of an array value share the same backing elements; indexed writes
// are visible through every copy.
type Value struct {
	kind ValueKind
	i    int64
	s    string
	arr  []string
}

func Int(v int64) Value {
	return Value{kind: IntKind, i: v}
}

func Str(v string) Value {
	return Value{kind: StringKind, s: v}
}

// StrArray allocates an array of n elements, each a single space.
func StrArray(n int) Value {
	arr := make([]string, n)
	for i := range arr {
		arr[i] = " "
	}
	return Value{kind: ArrayKind, arr: arr}
}

// StrArrayOf wraps existing elements without copying.
func StrArrayOf(elems []string) Value {
	return Value{kind: ArrayKind, arr: elems}
}

func (v Value) Kind() ValueKind {
	return v.kind
}

// Int64 returns the integer payload, or 0 for non-integer values.
func (v Value) Int64() int64 {
	if v.kind == IntKind {
		return v.i
	}
	return 0
}

// String renders the value: decimal digits for integers, the text itself for
// strings, and "[e0, e1, ...]" for arrays.
func (v Value) String() string {
	switch v.kind {
	case IntKind:
		return strconv.FormatInt(v.i, 10)
	case StringKind:
		return v.s
	case ArrayKind:
		return "[" + strings.Join(v.arr, ", ") + "]"
	}
	return ""
}

// Truthy reports whether the value enters a loop or branch body: non-zero
// integers and non-empty strings are truthy, arrays never are.
func (v Value) Truthy() bool {
	switch v.kind {
	case IntKind:
		return v.i != 0
	case StringKind:
		return v.s != ""
	}
	return false
}

// Len returns the element count of an array value, 0 otherwise.
func (v Value) Len() int {
	return len(v.arr)
}

// At returns element i, or false when the value is not an array or i is out
// of range.
func (v Value) At(i int) (string, bool) {
	if v.kind != ArrayKind || i < 0 || i >= len(v.arr) {
		return "", false
	}
	return v.arr[i], true
}

// SetAt replaces element i in place. Out-of-range or non-array writes report
// false and change nothing; the length never changes.
func (v Value) SetAt(i int, s string) bool {
	if v.kind != ArrayKind || i < 0 || i >= len(v.arr) {
		return false
	}
	v.arr[i] = s
	return true
}

// Elems exposes the backing elements of an array value; nil otherwise.
func (v Value) Elems() []string {
	return v.arr
}
