// Package trace stores the value history of monitored signals and derives new
// histories from existing ones.
//
// # Samples and traces
//
// A Trace is an append-only, time-ordered list of Samples recorded for one signal.
// The simulation adapter calls StoreSample once per observed change:
//
//	clk := trace.New("clk", 1)
//	clk.StoreSample(trace.Int(0), 0)
//	clk.StoreSample(trace.Int(1), 5)
//
// Queries resolve the value at any time with sample-and-hold semantics: Value
// returns the latest sample at or before the requested time, holds the first value
// before the trace starts and the last value after it stops.
//
// # Trace algebra
//
// Combine and Map build derived traces without touching their operands. The
// right-hand operand of Combine is an Operand: a TraceOperand or a
// ConstantOperand. OperandOf resolves plain Go values, and the convenience methods
// on *Trace (Eq, Add, And, ...) call it for you:
//
//	busy, _ := state.Ne(0)           // binary trace, 1 where state != 0
//	rise, _ := clk.PosEdge(unit)     // 1 for one unit at each rising edge
//	trig, _ := rise.Combine(busy, trace.LogicalAnd)
//	times := trig.TrigTimes()
//
// # Unit time
//
// InferUnitTime finds the common sampling granularity of a set of traces. The
// waveform encoder needs it to quantize wave strings into ticks.
package trace
