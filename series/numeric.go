package series

import (
	"math"

	"github.com/arloliu/datets/datekey"
	"github.com/arloliu/datets/errs"
)

// NumericSeries is a Series of float64 values with aggregates and arithmetic.
//
// It embeds Series[float64] for all read operations. Operations that produce
// a new series are redeclared here so they keep returning NumericSeries.
// Every arithmetic method comes in three forms: with a scalar, with another
// series on the intersection of keys, and with another series on the union
// of keys (Union prefix).
type NumericSeries struct {
	Series[float64]
}

var _ Reader[float64] = NumericSeries{}

// Numeric wraps s without copying.
func Numeric(s Series[float64]) NumericSeries {
	return NumericSeries{Series: s}
}

// EmptyNumeric returns an empty numeric series.
func EmptyNumeric() NumericSeries {
	return Numeric(Empty[float64]())
}

// NumericOfKeys creates a numeric series from parallel key and value slices.
func NumericOfKeys(keys []int, values []float64) (NumericSeries, error) {
	s, err := OfKeys(keys, values)
	return Numeric(s), err
}

// NumericOfDates creates a numeric series from parallel date and value slices.
func NumericOfDates(dates []datekey.Date, values []float64) (NumericSeries, error) {
	s, err := OfDates(dates, values)
	return Numeric(s), err
}

// NumericFrom creates a numeric series holding the entries of src.
func NumericFrom(src Reader[float64]) (NumericSeries, error) {
	s, err := From(src)
	return Numeric(s), err
}

// MinValue returns the smallest value, or ErrEmptySeries.
func (n NumericSeries) MinValue() (float64, error) {
	return n.aggregate(math.Min)
}

// MaxValue returns the largest value, or ErrEmptySeries.
func (n NumericSeries) MaxValue() (float64, error) {
	return n.aggregate(math.Max)
}

func (n NumericSeries) aggregate(pick func(a, b float64) float64) (float64, error) {
	if n.IsEmpty() {
		return 0, errs.ErrEmptySeries
	}

	result := n.values[0]
	for _, v := range n.values[1:] {
		result = pick(result, v)
	}

	return result, nil
}

// SubSeries is Series.SubSeries returning a NumericSeries.
func (n NumericSeries) SubSeries(fromKey int, fromInclusive bool, toKey int, toInclusive bool) (NumericSeries, error) {
	s, err := n.Series.SubSeries(fromKey, fromInclusive, toKey, toInclusive)
	return Numeric(s), err
}

// SubSeriesDates is Series.SubSeriesDates returning a NumericSeries.
func (n NumericSeries) SubSeriesDates(from datekey.Date, fromInclusive bool, to datekey.Date, toInclusive bool) (NumericSeries, error) {
	s, err := n.Series.SubSeriesDates(from, fromInclusive, to, toInclusive)
	return Numeric(s), err
}

// Between is Series.Between returning a NumericSeries.
func (n NumericSeries) Between(fromKey, toKey int) (NumericSeries, error) {
	s, err := n.Series.Between(fromKey, toKey)
	return Numeric(s), err
}

// Head is Series.Head returning a NumericSeries.
func (n NumericSeries) Head(count int) (NumericSeries, error) {
	s, err := n.Series.Head(count)
	return Numeric(s), err
}

// Tail is Series.Tail returning a NumericSeries.
func (n NumericSeries) Tail(count int) (NumericSeries, error) {
	s, err := n.Series.Tail(count)
	return Numeric(s), err
}

// Lag is Series.Lag returning a NumericSeries.
func (n NumericSeries) Lag(count int) NumericSeries {
	return Numeric(n.Series.Lag(count))
}

// Map is Series.Map returning a NumericSeries.
func (n NumericSeries) Map(op UnaryOp[float64]) NumericSeries {
	return Numeric(n.Series.Map(op))
}

// OperateScalar is Series.OperateScalar returning a NumericSeries.
func (n NumericSeries) OperateScalar(scalar float64, op BinaryOp[float64]) NumericSeries {
	return Numeric(n.Series.OperateScalar(scalar, op))
}

// Operate is Series.Operate returning a NumericSeries.
func (n NumericSeries) Operate(other NumericSeries, op BinaryOp[float64]) NumericSeries {
	return Numeric(intersect(n.Series, other.Series, op))
}

// UnionOperate is Series.UnionOperate returning a NumericSeries.
func (n NumericSeries) UnionOperate(other NumericSeries, op BinaryOp[float64]) NumericSeries {
	return Numeric(n.Series.UnionOperate(other.Series, op))
}

// IntersectionFirstValue is Series.IntersectionFirstValue returning a NumericSeries.
func (n NumericSeries) IntersectionFirstValue(other NumericSeries) NumericSeries {
	return n.Operate(other, OpFirst)
}

// IntersectionSecondValue is Series.IntersectionSecondValue returning a NumericSeries.
func (n NumericSeries) IntersectionSecondValue(other NumericSeries) NumericSeries {
	return n.Operate(other, OpSecond)
}

// NoIntersectionOperation is Series.NoIntersectionOperation returning a NumericSeries.
func (n NumericSeries) NoIntersectionOperation(other NumericSeries) (NumericSeries, error) {
	s, err := n.Series.NoIntersectionOperation(other.Series)
	return Numeric(s), err
}

// Equal reports whether other holds the same ordered keys and values. Values
// compare by bit pattern, so NaN equals NaN.
func (n NumericSeries) Equal(other Reader[float64]) bool {
	return n.EqualFunc(other, func(a, b float64) bool {
		return math.Float64bits(a) == math.Float64bits(b)
	})
}

// String formats the series as NumericSeries[(date, value), ...].
func (n NumericSeries) String() string {
	return formatEntries("NumericSeries", n.Series)
}

// Add is Operate with OpAdd.
func (n NumericSeries) Add(other NumericSeries) NumericSeries {
	return n.Operate(other, OpAdd)
}

// Subtract is Operate with OpSubtract.
func (n NumericSeries) Subtract(other NumericSeries) NumericSeries {
	return n.Operate(other, OpSubtract)
}

// Multiply is Operate with OpMultiply.
func (n NumericSeries) Multiply(other NumericSeries) NumericSeries {
	return n.Operate(other, OpMultiply)
}

// Divide is Operate with OpDivide.
func (n NumericSeries) Divide(other NumericSeries) NumericSeries {
	return n.Operate(other, OpDivide)
}

// Power is Operate with OpPower.
func (n NumericSeries) Power(other NumericSeries) NumericSeries {
	return n.Operate(other, OpPower)
}

// Minimum is Operate with OpMinimum.
func (n NumericSeries) Minimum(other NumericSeries) NumericSeries {
	return n.Operate(other, OpMinimum)
}

// Maximum is Operate with OpMaximum.
func (n NumericSeries) Maximum(other NumericSeries) NumericSeries {
	return n.Operate(other, OpMaximum)
}

// Average is Operate with OpAverage.
func (n NumericSeries) Average(other NumericSeries) NumericSeries {
	return n.Operate(other, OpAverage)
}

// AddScalar is OperateScalar with OpAdd.
func (n NumericSeries) AddScalar(v float64) NumericSeries {
	return n.OperateScalar(v, OpAdd)
}

// SubtractScalar is OperateScalar with OpSubtract.
func (n NumericSeries) SubtractScalar(v float64) NumericSeries {
	return n.OperateScalar(v, OpSubtract)
}

// MultiplyScalar is OperateScalar with OpMultiply.
func (n NumericSeries) MultiplyScalar(v float64) NumericSeries {
	return n.OperateScalar(v, OpMultiply)
}

// DivideScalar is OperateScalar with OpDivide.
func (n NumericSeries) DivideScalar(v float64) NumericSeries {
	return n.OperateScalar(v, OpDivide)
}

// PowerScalar is OperateScalar with OpPower.
func (n NumericSeries) PowerScalar(v float64) NumericSeries {
	return n.OperateScalar(v, OpPower)
}

// MinimumScalar is OperateScalar with OpMinimum.
func (n NumericSeries) MinimumScalar(v float64) NumericSeries {
	return n.OperateScalar(v, OpMinimum)
}

// MaximumScalar is OperateScalar with OpMaximum.
func (n NumericSeries) MaximumScalar(v float64) NumericSeries {
	return n.OperateScalar(v, OpMaximum)
}

// AverageScalar is OperateScalar with OpAverage.
func (n NumericSeries) AverageScalar(v float64) NumericSeries {
	return n.OperateScalar(v, OpAverage)
}

// UnionAdd is UnionOperate with OpAdd.
func (n NumericSeries) UnionAdd(other NumericSeries) NumericSeries {
	return n.UnionOperate(other, OpAdd)
}

// UnionSubtract is UnionOperate with OpSubtract.
func (n NumericSeries) UnionSubtract(other NumericSeries) NumericSeries {
	return n.UnionOperate(other, OpSubtract)
}

// UnionMultiply is UnionOperate with OpMultiply.
func (n NumericSeries) UnionMultiply(other NumericSeries) NumericSeries {
	return n.UnionOperate(other, OpMultiply)
}

// UnionDivide is UnionOperate with OpDivide.
func (n NumericSeries) UnionDivide(other NumericSeries) NumericSeries {
	return n.UnionOperate(other, OpDivide)
}

// UnionPower is UnionOperate with OpPower.
func (n NumericSeries) UnionPower(other NumericSeries) NumericSeries {
	return n.UnionOperate(other, OpPower)
}

// UnionMinimum is UnionOperate with OpMinimum.
func (n NumericSeries) UnionMinimum(other NumericSeries) NumericSeries {
	return n.UnionOperate(other, OpMinimum)
}

// UnionMaximum is UnionOperate with OpMaximum.
func (n NumericSeries) UnionMaximum(other NumericSeries) NumericSeries {
	return n.UnionOperate(other, OpMaximum)
}

// UnionAverage is UnionOperate with OpAverage.
func (n NumericSeries) UnionAverage(other NumericSeries) NumericSeries {
	return n.UnionOperate(other, OpAverage)
}

// Negate is Map with OpNegate.
func (n NumericSeries) Negate() NumericSeries {
	return n.Map(OpNegate)
}

// Reciprocal is Map with OpReciprocal.
func (n NumericSeries) Reciprocal() NumericSeries {
	return n.Map(OpReciprocal)
}

// Log is Map with OpLog.
func (n NumericSeries) Log() NumericSeries {
	return n.Map(OpLog)
}

// Log10 is Map with OpLog10.
func (n NumericSeries) Log10() NumericSeries {
	return n.Map(OpLog10)
}

// Abs is Map with OpAbs.
func (n NumericSeries) Abs() NumericSeries {
	return n.Map(OpAbs)
}
