package trace

import (
	"fmt"

	"github.com/arloliu/wavepeek/errs"
)

// Operand is the right-hand side of a binary trace combination: either a trace or
// a constant. Use OperandOf to resolve an arbitrary Go value.
type Operand interface {
	operandTrace() (*Trace, error)
}

// TraceOperand wraps a trace used as an operand.
type TraceOperand struct {
	Trace *Trace
}

func (o TraceOperand) operandTrace() (*Trace, error) {
	if o.Trace == nil {
		return nil, fmt.Errorf("%w: nil trace", errs.ErrCombination)
	}

	return o.Trace, nil
}

// ConstantOperand is a value held from time 0 onward.
type ConstantOperand struct {
	Value Value
}

func (o ConstantOperand) operandTrace() (*Trace, error) {
	if !o.Value.IsNumeric() {
		return nil, fmt.Errorf("%w: constant of kind %s", errs.ErrCombination, o.Value.kind)
	}

	return Constant(o.Value), nil
}

// Traceable is implemented by bindings that own a trace, such as session peekers.
type Traceable interface {
	Trace() *Trace
}

// OperandOf resolves v into an Operand.
//
// Accepted inputs:
//   - Operand (returned unchanged)
//   - *Trace
//   - Traceable (its trace is used)
//   - a numeric Value or any Go integer or float
//
// Anything else, strings included, yields ErrCombination.
func OperandOf(v any) (Operand, error) {
	switch x := v.(type) {
	case Operand:
		return x, nil
	case *Trace:
		if x == nil {
			return nil, fmt.Errorf("%w: nil trace", errs.ErrCombination)
		}

		return TraceOperand{Trace: x}, nil
	case Traceable:
		return OperandOf(x.Trace())
	case bool, string:
		return nil, fmt.Errorf("%w: got %T", errs.ErrCombination, v)
	}

	val, err := ValueOf(v)
	if err != nil || !val.IsNumeric() {
		return nil, fmt.Errorf("%w: got %T", errs.ErrCombination, v)
	}

	return ConstantOperand{Value: val}, nil
}

// Combine merges a and b sample by sample with op.
//
// Both operands are copied and extended so they cover the same span. The merge then
// walks both sample lists with two cursors, emitting one output sample at the
// earlier of the two current times with op applied to both values at that time.
// The output never has more samples than a and b together. Neither operand is
// modified.
func Combine(a *Trace, b Operand, op BinaryOp) (*Trace, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: nil trace", errs.ErrCombination)
	}
	if b == nil {
		return nil, fmt.Errorf("%w: nil operand", errs.ErrCombination)
	}
	bt, err := b.operandTrace()
	if err != nil {
		return nil, err
	}
	if a.Len() == 0 {
		return nil, a.emptyErr()
	}
	if bt.Len() == 0 {
		return nil, bt.emptyErr()
	}

	start := min(a.samples[0].Time, bt.samples[0].Time)
	stop := max(a.samples[len(a.samples)-1].Time, bt.samples[len(bt.samples)-1].Time)

	ta, _ := a.ExtendDuration(start, stop)
	tb, _ := bt.ExtendDuration(start, stop)

	lastA, lastB := ta.Len()-1, tb.Len()-1
	res := &Trace{samples: make([]Sample, 0, ta.Len()+tb.Len())}

	ia, ib := 0, 0
	for {
		t1, t2 := ta.samples[ia].Time, tb.samples[ib].Time
		cur := min(t1, t2)

		va, _ := ta.Value(cur)
		vb, _ := tb.Value(cur)
		v, err := op(va, vb)
		if err != nil {
			return nil, fmt.Errorf("combine at time %d: %w", cur, err)
		}
		res.samples = append(res.samples, Sample{Time: cur, Value: v})

		if ia == lastA && ib == lastB {
			break
		}
		if t1 == cur && ia < lastA {
			ia++
		}
		if t2 == cur && ib < lastB {
			ib++
		}
	}

	return res, nil
}

// Map applies fn to every sample value. Sample times are preserved.
func Map(a *Trace, fn UnaryOp) (*Trace, error) {
	res := &Trace{samples: make([]Sample, len(a.samples))}
	for i, s := range a.samples {
		v, err := fn(s.Value)
		if err != nil {
			return nil, fmt.Errorf("map at time %d: %w", s.Time, err)
		}
		res.samples[i] = Sample{Time: s.Time, Value: v}
	}

	return res, nil
}

// Combine resolves b with OperandOf and merges it with t using op.
func (t *Trace) Combine(b any, op BinaryOp) (*Trace, error) {
	operand, err := OperandOf(b)
	if err != nil {
		return nil, err
	}

	return Combine(t, operand, op)
}

// Map applies fn to every sample value of t.
func (t *Trace) Map(fn UnaryOp) (*Trace, error) { return Map(t, fn) }

// Binarize returns a trace whose values are 1 where t is truthy and 0 elsewhere.
func (t *Trace) Binarize() *Trace {
	res := &Trace{samples: make([]Sample, len(t.samples))}
	for i, s := range t.samples {
		res.samples[i] = Sample{Time: s.Time, Value: Bool(s.Value.Truthy())}
	}

	return res
}

func (t *Trace) compare(b any, op BinaryOp) (*Trace, error) {
	res, err := t.Combine(b, op)
	if err != nil {
		return nil, err
	}

	return res.Binarize(), nil
}

// Eq is 1 where t equals b. b is a trace or a constant.
func (t *Trace) Eq(b any) (*Trace, error) { return t.compare(b, Eq) }

// Ne is 1 where t differs from b. b is a trace or a constant.
func (t *Trace) Ne(b any) (*Trace, error) { return t.compare(b, Ne) }

// Lt is 1 where t is less than b. b is a trace or a constant.
func (t *Trace) Lt(b any) (*Trace, error) { return t.compare(b, Lt) }

// Le is 1 where t is less than or equal to b. b is a trace or a constant.
func (t *Trace) Le(b any) (*Trace, error) { return t.compare(b, Le) }

// Gt is 1 where t is greater than b. b is a trace or a constant.
func (t *Trace) Gt(b any) (*Trace, error) { return t.compare(b, Gt) }

// Ge is 1 where t is greater than or equal to b. b is a trace or a constant.
func (t *Trace) Ge(b any) (*Trace, error) { return t.compare(b, Ge) }

// Add returns the pointwise sum of t and b.
func (t *Trace) Add(b any) (*Trace, error) { return t.Combine(b, Add) }

// Sub returns the pointwise difference t - b.
func (t *Trace) Sub(b any) (*Trace, error) { return t.Combine(b, Sub) }

// Mul returns the pointwise product of t and b.
func (t *Trace) Mul(b any) (*Trace, error) { return t.Combine(b, Mul) }

// Div returns the pointwise true quotient t / b as floats.
func (t *Trace) Div(b any) (*Trace, error) { return t.Combine(b, Div) }

// FloorDiv returns the pointwise quotient of t and b rounded toward negative infinity.
func (t *Trace) FloorDiv(b any) (*Trace, error) { return t.Combine(b, FloorDiv) }

// Mod returns the pointwise remainder of t and b with the sign of b.
func (t *Trace) Mod(b any) (*Trace, error) { return t.Combine(b, Mod) }

// Pow raises t to b pointwise.
func (t *Trace) Pow(b any) (*Trace, error) { return t.Combine(b, Pow) }

// And returns the pointwise bitwise AND of t and b.
func (t *Trace) And(b any) (*Trace, error) { return t.Combine(b, And) }

// Or returns the pointwise bitwise OR of t and b.
func (t *Trace) Or(b any) (*Trace, error) { return t.Combine(b, Or) }

// Xor returns the pointwise bitwise XOR of t and b.
func (t *Trace) Xor(b any) (*Trace, error) { return t.Combine(b, Xor) }

// Shl shifts t left by b pointwise.
func (t *Trace) Shl(b any) (*Trace, error) { return t.Combine(b, Shl) }

// Shr shifts t right by b pointwise.
func (t *Trace) Shr(b any) (*Trace, error) { return t.Combine(b, Shr) }

// Not returns the logical negation of t as a binary trace.
func (t *Trace) Not() *Trace {
	res := &Trace{samples: make([]Sample, len(t.samples))}
	for i, s := range t.samples {
		res.samples[i] = Sample{Time: s.Time, Value: Bool(!s.Value.Truthy())}
	}

	return res
}

// Neg negates every value of t.
func (t *Trace) Neg() (*Trace, error) { return Map(t, Neg) }

// Abs returns the absolute value of every value of t.
func (t *Trace) Abs() (*Trace, error) { return Map(t, Abs) }

// Invert returns the bitwise complement of every value of t.
func (t *Trace) Invert() (*Trace, error) { return Map(t, Invert) }

// AnyEdge is 1 where t differs from its value one unit earlier.
func (t *Trace) AnyEdge(unit int64) (*Trace, error) {
	res, err := Combine(t, TraceOperand{Trace: t.Delay(unit)}, Ne)
	if err != nil {
		return nil, err
	}

	return res.Binarize(), nil
}

// PosEdge is 1 where t is truthy and was falsy one unit earlier.
func (t *Trace) PosEdge(unit int64) (*Trace, error) {
	res, err := Combine(t, TraceOperand{Trace: t.Delay(unit).Not()}, LogicalAnd)
	if err != nil {
		return nil, err
	}

	return res.Binarize(), nil
}

// NegEdge is 1 where t is falsy and was truthy one unit earlier.
func (t *Trace) NegEdge(unit int64) (*Trace, error) {
	res, err := Combine(t.Not(), TraceOperand{Trace: t.Delay(unit)}, LogicalAnd)
	if err != nil {
		return nil, err
	}

	return res.Binarize(), nil
}
