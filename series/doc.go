// Package series provides immutable date-indexed time series and the
// merge-join algebra that combines them.
//
// # Types
//
//   - Series[V]: an ordered, immutable mapping from dense date keys (see
//     package datekey) to values of any type V.
//   - NumericSeries: a Series[float64] with aggregates (MinValue, MaxValue)
//     and arithmetic in scalar, intersection and union forms.
//   - Builder[V]: a mutable, key-ordered accumulator whose Build method
//     snapshots an immutable Series.
//   - EntryIterator[V]: a forward-only cursor over a series or builder.
//
// # Alignment
//
// Two series with different key sets combine in one of two ways:
//
//   - Operate (intersection): only keys present in both series survive, each
//     with op(a, b).
//   - UnionOperate (union): every key of either series survives; shared keys
//     take op(a, b) and the rest keep their original value.
//
// Both walk the two sorted key runs in lock-step, so they run in O(n+m).
//
//	a, _ := series.NumericOfKeys([]int{20200101, 20200102, 20200103}, []float64{1, 2, 3})
//	b, _ := series.NumericOfKeys([]int{20200102, 20200104}, []float64{10, 40})
//
//	a.Add(b)      // {2020-01-02: 12}
//	a.UnionAdd(b) // {2020-01-01: 1, 2020-01-02: 12, 2020-01-03: 3, 2020-01-04: 40}
//
// # Structural Sharing
//
// Keys live in an immutable buffer. Value-only transforms (Map,
// OperateScalar, Convert, the unary numeric methods) return series that
// share the source's key buffer instead of copying it. When both inputs of
// Operate or UnionOperate share a buffer, the merge-join is skipped and
// values combine index-for-index. Operations that change the key set
// (slicing, lag, alignment of different key sets) always allocate a new
// buffer.
//
// # Thread Safety
//
// Series and NumericSeries are safe for concurrent reads. Builder and the
// iterators are not safe for concurrent use.
package series
