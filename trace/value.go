package trace

import (
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/arloliu/wavepeek/errs"
)

// Kind identifies the representation held by a Value.
type Kind uint8

const (
	KindInvalid Kind = iota // KindInvalid is the kind of the zero Value.
	KindInt                 // KindInt holds a signed 64-bit integer (also used for booleans).
	KindFloat               // KindFloat holds a float64.
	KindString              // KindString holds a symbolic value such as an enum member name.
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "Int"
	case KindFloat:
		return "Float"
	case KindString:
		return "String"
	default:
		return "Invalid"
	}
}

// Value is a signal value observed during simulation.
//
// Value is a small tagged union so samples stay allocation-free for the common
// integer case. The zero Value is invalid and is never produced by a stored sample.
type Value struct {
	kind Kind
	i    int64
	f    float64
	s    string
}

// Int returns an integer Value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float returns a floating-point Value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// Str returns a symbolic Value, rendered verbatim in bus envelopes and tables.
func Str(v string) Value { return Value{kind: KindString, s: v} }

// Bool returns Int(1) for true and Int(0) for false.
func Bool(v bool) Value {
	if v {
		return Int(1)
	}

	return Int(0)
}

// ValueOf converts a Go value into a Value.
//
// Supported inputs are Value itself, bool, every signed and unsigned integer type,
// float32, float64, string and fmt.Stringer (stored as its string form). Unsigned
// values above math.MaxInt64 and any other type yield ErrUnsupportedValue.
func ValueOf(v any) (Value, error) {
	switch x := v.(type) {
	case Value:
		return x, nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case string:
		return Str(x), nil
	case fmt.Stringer:
		return Str(x.String()), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() { //nolint:exhaustive
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return Value{}, fmt.Errorf("%w: %d overflows int64", errs.ErrUnsupportedValue, u)
		}

		return Int(int64(u)), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.String:
		return Str(rv.String()), nil
	}

	return Value{}, fmt.Errorf("%w: %T", errs.ErrUnsupportedValue, v)
}

// Kind returns the kind of v.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether v holds a value.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// IsNumeric reports whether v is an Int or a Float.
func (v Value) IsNumeric() bool { return v.kind == KindInt || v.kind == KindFloat }

// AsInt returns the integer held by v. Floats are truncated toward zero.
func (v Value) AsInt() (int64, bool) {
	switch v.kind { //nolint:exhaustive
	case KindInt:
		return v.i, true
	case KindFloat:
		return int64(v.f), true
	default:
		return 0, false
	}
}

// AsFloat returns the numeric value of v as a float64.
func (v Value) AsFloat() (float64, bool) {
	switch v.kind { //nolint:exhaustive
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// Truthy reports whether v counts as true: a non-zero number or a non-empty string.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindInt:
		return v.i != 0
	case KindFloat:
		return v.f != 0
	case KindString:
		return v.s != ""
	default:
		return false
	}
}

// Equal reports whether v and o hold the same value.
//
// Numbers compare by numeric value across kinds, so Int(1) equals Float(1).
// Floats compare exactly; use EqualWithin for a tolerance.
func (v Value) Equal(o Value) bool {
	if v.kind == KindInt && o.kind == KindInt {
		return v.i == o.i
	}
	if v.IsNumeric() && o.IsNumeric() {
		a, _ := v.AsFloat()
		b, _ := o.AsFloat()

		return a == b
	}
	if v.kind != o.kind {
		return false
	}

	return v.s == o.s
}

// EqualWithin reports whether two numeric values differ by at most tol.
// Non-numeric values fall back to Equal.
func (v Value) EqualWithin(o Value, tol float64) bool {
	if !v.IsNumeric() || !o.IsNumeric() {
		return v.Equal(o)
	}
	a, _ := v.AsFloat()
	b, _ := o.AsFloat()

	return math.Abs(a-b) <= tol
}

// Compare orders two numbers or two strings and returns -1, 0 or +1.
// Mixed or invalid kinds return ErrInvalidOperation.
func (v Value) Compare(o Value) (int, error) {
	switch {
	case v.kind == KindInt && o.kind == KindInt:
		return cmp3(v.i < o.i, v.i > o.i), nil
	case v.IsNumeric() && o.IsNumeric():
		a, _ := v.AsFloat()
		b, _ := o.AsFloat()

		return cmp3(a < b, a > b), nil
	case v.kind == KindString && o.kind == KindString:
		return cmp3(v.s < o.s, v.s > o.s), nil
	default:
		return 0, fmt.Errorf("%w: compare %s with %s", errs.ErrInvalidOperation, v.kind, o.kind)
	}
}

func cmp3(less, greater bool) int {
	switch {
	case less:
		return -1
	case greater:
		return 1
	default:
		return 0
	}
}

// String returns the display form used for bus envelopes and table cells.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	default:
		return ""
	}
}

// GoString implements fmt.GoStringer for readable test failures.
func (v Value) GoString() string {
	switch v.kind {
	case KindInt:
		return "trace.Int(" + v.String() + ")"
	case KindFloat:
		return "trace.Float(" + v.String() + ")"
	case KindString:
		return "trace.Str(" + strconv.Quote(v.s) + ")"
	default:
		return "trace.Value{}"
	}
}
