package series

import "math"

// BinaryOp combines two values sharing a key. Implementations must be pure.
type BinaryOp[V any] func(a, b V) V

// UnaryOp transforms a single value. Implementations must be pure.
type UnaryOp[V any] func(a V) V

// First returns an operator that keeps the value from the receiver series.
func First[V any]() BinaryOp[V] {
	return func(a, _ V) V { return a }
}

// Second returns an operator that keeps the value from the other series.
func Second[V any]() BinaryOp[V] {
	return func(_, b V) V { return b }
}

// Numeric operator catalogue. Every operator follows IEEE 754 semantics:
// division by zero yields ±Inf, log of a negative yields NaN, and NaN propagates.
var (
	OpAdd      BinaryOp[float64] = func(a, b float64) float64 { return a + b }
	OpSubtract BinaryOp[float64] = func(a, b float64) float64 { return a - b }
	OpMultiply BinaryOp[float64] = func(a, b float64) float64 { return a * b }
	OpDivide   BinaryOp[float64] = func(a, b float64) float64 { return a / b }
	OpPower    BinaryOp[float64] = math.Pow
	OpMinimum  BinaryOp[float64] = math.Min
	OpMaximum  BinaryOp[float64] = math.Max
	OpAverage  BinaryOp[float64] = func(a, b float64) float64 { return (a + b) / 2 }
	OpFirst                      = First[float64]()
	OpSecond                     = Second[float64]()

	OpNegate     UnaryOp[float64] = func(a float64) float64 { return -a }
	OpReciprocal UnaryOp[float64] = func(a float64) float64 { return 1 / a }
	OpLog        UnaryOp[float64] = math.Log
	OpLog10      UnaryOp[float64] = math.Log10
	OpAbs        UnaryOp[float64] = math.Abs
)
