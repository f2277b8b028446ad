package trace

import (
	"fmt"
	"math"

	"github.com/arloliu/wavepeek/errs"
)

// BinaryOp combines two sample values into one.
type BinaryOp func(a, b Value) (Value, error)

// UnaryOp transforms one sample value.
type UnaryOp func(v Value) (Value, error)

func invalidOp(op string, a, b Value) error {
	return fmt.Errorf("%w: %s %s %s", errs.ErrInvalidOperation, a.kind, op, b.kind)
}

// arith applies intOp when both operands are integers and floatOp when at least one
// is a float.
func arith(name string, a, b Value, intOp func(x, y int64) (int64, error), floatOp func(x, y float64) (float64, error)) (Value, error) {
	if a.kind == KindInt && b.kind == KindInt {
		r, err := intOp(a.i, b.i)
		if err != nil {
			return Value{}, err
		}

		return Int(r), nil
	}
	if a.IsNumeric() && b.IsNumeric() {
		x, _ := a.AsFloat()
		y, _ := b.AsFloat()
		r, err := floatOp(x, y)
		if err != nil {
			return Value{}, err
		}

		return Float(r), nil
	}

	return Value{}, invalidOp(name, a, b)
}

func bitwise(name string, a, b Value, fn func(x, y int64) (int64, error)) (Value, error) {
	if a.kind != KindInt || b.kind != KindInt {
		return Value{}, invalidOp(name, a, b)
	}
	r, err := fn(a.i, b.i)
	if err != nil {
		return Value{}, err
	}

	return Int(r), nil
}

func compare(a, b Value, accept func(c int) bool) (Value, error) {
	c, err := a.Compare(b)
	if err != nil {
		return Value{}, err
	}

	return Bool(accept(c)), nil
}

// Eq yields 1 when the values are equal. Floats compare exactly.
func Eq(a, b Value) (Value, error) { return Bool(a.Equal(b)), nil }

// Ne yields 1 when the values differ.
func Ne(a, b Value) (Value, error) { return Bool(!a.Equal(b)), nil }

// EqualWithin returns an equality operator that treats numbers closer than tol as equal.
func EqualWithin(tol float64) BinaryOp {
	return func(a, b Value) (Value, error) { return Bool(a.EqualWithin(b, tol)), nil }
}

// NotEqualWithin is the negation of EqualWithin.
func NotEqualWithin(tol float64) BinaryOp {
	return func(a, b Value) (Value, error) { return Bool(!a.EqualWithin(b, tol)), nil }
}

// Lt yields 1 when a orders before b.
func Lt(a, b Value) (Value, error) { return compare(a, b, func(c int) bool { return c < 0 }) }

// Le yields 1 when a orders before or equal to b.
func Le(a, b Value) (Value, error) { return compare(a, b, func(c int) bool { return c <= 0 }) }

// Gt yields 1 when a orders after b.
func Gt(a, b Value) (Value, error) { return compare(a, b, func(c int) bool { return c > 0 }) }

// Ge yields 1 when a orders after or equal to b.
func Ge(a, b Value) (Value, error) { return compare(a, b, func(c int) bool { return c >= 0 }) }

// Add sums two numbers or concatenates two strings.
func Add(a, b Value) (Value, error) {
	if a.kind == KindString && b.kind == KindString {
		return Str(a.s + b.s), nil
	}

	return arith("+", a, b,
		func(x, y int64) (int64, error) { return x + y, nil },
		func(x, y float64) (float64, error) { return x + y, nil })
}

// Sub subtracts b from a.
func Sub(a, b Value) (Value, error) {
	return arith("-", a, b,
		func(x, y int64) (int64, error) { return x - y, nil },
		func(x, y float64) (float64, error) { return x - y, nil })
}

// Mul multiplies two numbers.
func Mul(a, b Value) (Value, error) {
	return arith("*", a, b,
		func(x, y int64) (int64, error) { return x * y, nil },
		func(x, y float64) (float64, error) { return x * y, nil })
}

// Div is true division and always yields a Float.
func Div(a, b Value) (Value, error) {
	x, okA := a.AsFloat()
	y, okB := b.AsFloat()
	if !okA || !okB {
		return Value{}, invalidOp("/", a, b)
	}
	if y == 0 {
		return Value{}, errs.ErrDivisionByZero
	}

	return Float(x / y), nil
}

// FloorDiv divides and rounds toward negative infinity.
func FloorDiv(a, b Value) (Value, error) {
	return arith("//", a, b,
		func(x, y int64) (int64, error) {
			if y == 0 {
				return 0, errs.ErrDivisionByZero
			}
			q := x / y
			if (x%y != 0) && ((x < 0) != (y < 0)) {
				q--
			}

			return q, nil
		},
		func(x, y float64) (float64, error) {
			if y == 0 {
				return 0, errs.ErrDivisionByZero
			}

			return math.Floor(x / y), nil
		})
}

// Mod returns a remainder carrying the sign of the divisor, pairing with FloorDiv.
func Mod(a, b Value) (Value, error) {
	return arith("%", a, b,
		func(x, y int64) (int64, error) {
			if y == 0 {
				return 0, errs.ErrDivisionByZero
			}
			r := x % y
			if r != 0 && ((r < 0) != (y < 0)) {
				r += y
			}

			return r, nil
		},
		func(x, y float64) (float64, error) {
			if y == 0 {
				return 0, errs.ErrDivisionByZero
			}
			r := math.Mod(x, y)
			if r != 0 && ((r < 0) != (y < 0)) {
				r += y
			}

			return r, nil
		})
}

// Pow raises a to b. Integer operands with a non-negative exponent stay integers.
func Pow(a, b Value) (Value, error) {
	if a.kind == KindInt && b.kind == KindInt && b.i >= 0 {
		r, base, e := int64(1), a.i, b.i
		for e > 0 {
			if e&1 == 1 {
				r *= base
			}
			base *= base
			e >>= 1
		}

		return Int(r), nil
	}

	x, okA := a.AsFloat()
	y, okB := b.AsFloat()
	if !okA || !okB {
		return Value{}, invalidOp("**", a, b)
	}

	return Float(math.Pow(x, y)), nil
}

// And is bitwise AND on integers.
func And(a, b Value) (Value, error) {
	return bitwise("&", a, b, func(x, y int64) (int64, error) { return x & y, nil })
}

// Or is bitwise OR on integers.
func Or(a, b Value) (Value, error) {
	return bitwise("|", a, b, func(x, y int64) (int64, error) { return x | y, nil })
}

// Xor is bitwise XOR on integers.
func Xor(a, b Value) (Value, error) {
	return bitwise("^", a, b, func(x, y int64) (int64, error) { return x ^ y, nil })
}

// Shl shifts an integer left. Negative shift counts are rejected.
func Shl(a, b Value) (Value, error) {
	return bitwise("<<", a, b, func(x, y int64) (int64, error) {
		if y < 0 {
			return 0, fmt.Errorf("%w: negative shift count %d", errs.ErrInvalidOperation, y)
		}

		return x << uint64(y), nil
	})
}

// Shr shifts an integer right, keeping the sign. Negative shift counts are rejected.
func Shr(a, b Value) (Value, error) {
	return bitwise(">>", a, b, func(x, y int64) (int64, error) {
		if y < 0 {
			return 0, fmt.Errorf("%w: negative shift count %d", errs.ErrInvalidOperation, y)
		}

		return x >> uint64(y), nil
	})
}

// LogicalAnd yields 1 when both values are truthy. Unlike And it works on any kind.
func LogicalAnd(a, b Value) (Value, error) { return Bool(a.Truthy() && b.Truthy()), nil }

// LogicalOr yields 1 when either value is truthy.
func LogicalOr(a, b Value) (Value, error) { return Bool(a.Truthy() || b.Truthy()), nil }

// Not is logical negation: 1 for falsy values, 0 otherwise.
func Not(v Value) (Value, error) { return Bool(!v.Truthy()), nil }

// Neg negates a number.
func Neg(v Value) (Value, error) {
	switch v.kind { //nolint:exhaustive
	case KindInt:
		return Int(-v.i), nil
	case KindFloat:
		return Float(-v.f), nil
	default:
		return Value{}, fmt.Errorf("%w: -%s", errs.ErrInvalidOperation, v.kind)
	}
}

// Abs returns the absolute value of a number.
func Abs(v Value) (Value, error) {
	switch v.kind { //nolint:exhaustive
	case KindInt:
		if v.i < 0 {
			return Int(-v.i), nil
		}

		return v, nil
	case KindFloat:
		return Float(math.Abs(v.f)), nil
	default:
		return Value{}, fmt.Errorf("%w: abs(%s)", errs.ErrInvalidOperation, v.kind)
	}
}

// Invert is bitwise complement on integers.
func Invert(v Value) (Value, error) {
	if v.kind != KindInt {
		return Value{}, fmt.Errorf("%w: ~%s", errs.ErrInvalidOperation, v.kind)
	}

	return Int(^v.i), nil
}
