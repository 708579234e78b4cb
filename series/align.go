package series

import (
	"fmt"
	"slices"

	"github.com/arloliu/datets/errs"
)

// The alignment engine. Every combination and slicing operation on both
// Series[V] and NumericSeries funnels into the functions in this file.

// intersect merge-joins a and b, emitting op(a, b) for keys present in both.
//
// When a and b hold the same key buffer the join is skipped: values combine
// index-for-index and the result keeps sharing the buffer.
func intersect[V any](a, b Series[V], op BinaryOp[V]) Series[V] {
	ak, bk := a.buf(), b.buf()
	if ak == bk {
		return Series[V]{keys: ak, values: zipValues(a.values, b.values, op)}
	}
	if ak.len() == 0 || bk.len() == 0 {
		return Empty[V]()
	}

	capacity := min(ak.len(), bk.len())
	keys := make([]int, 0, capacity)
	values := make([]V, 0, capacity)

	i, j := 0, 0
	for i < ak.len() && j < bk.len() {
		aKey, bKey := ak.at(i), bk.at(j)
		switch {
		case aKey == bKey:
			keys = append(keys, aKey)
			values = append(values, op(a.values[i], b.values[j]))
			i++
			j++
		case aKey < bKey:
			i++
		default:
			j++
		}
	}

	return Series[V]{keys: ownKeyBuffer(slices.Clip(keys)), values: slices.Clip(values)}
}

// union merge-joins a and b, emitting op(a, b) for shared keys and copying
// the values of non-shared keys through unchanged.
//
// With disjoint set, the first shared key aborts the join with ErrOverlappingKeys.
func union[V any](a, b Series[V], op BinaryOp[V], disjoint bool) (Series[V], error) {
	ak, bk := a.buf(), b.buf()
	switch {
	case ak.len() == 0:
		return b, nil
	case bk.len() == 0:
		return a, nil
	case ak == bk:
		if disjoint {
			return Series[V]{}, overlapError(ak.at(0))
		}

		return Series[V]{keys: ak, values: zipValues(a.values, b.values, op)}, nil
	}

	capacity := ak.len() + bk.len()
	keys := make([]int, 0, capacity)
	values := make([]V, 0, capacity)

	i, j := 0, 0
	for i < ak.len() && j < bk.len() {
		aKey, bKey := ak.at(i), bk.at(j)
		switch {
		case aKey == bKey:
			if disjoint {
				return Series[V]{}, overlapError(aKey)
			}
			keys = append(keys, aKey)
			values = append(values, op(a.values[i], b.values[j]))
			i++
			j++
		case aKey < bKey:
			keys = append(keys, aKey)
			values = append(values, a.values[i])
			i++
		default:
			keys = append(keys, bKey)
			values = append(values, b.values[j])
			j++
		}
	}

	// At most one side has entries left; copy it through wholesale.
	keys = append(keys, ak.keys[i:]...)
	values = append(values, a.values[i:]...)
	keys = append(keys, bk.keys[j:]...)
	values = append(values, b.values[j:]...)

	return Series[V]{keys: ownKeyBuffer(slices.Clip(keys)), values: slices.Clip(values)}, nil
}

func overlapError(key int) error {
	return fmt.Errorf("%w: both series contain key %d", errs.ErrOverlappingKeys, key)
}

// mapValues applies op to every value; the result shares the key buffer.
func mapValues[V any](s Series[V], op UnaryOp[V]) Series[V] {
	values := make([]V, len(s.values))
	for i, v := range s.values {
		values[i] = op(v)
	}

	return Series[V]{keys: s.buf(), values: values}
}

func zipValues[V any](a, b []V, op BinaryOp[V]) []V {
	values := make([]V, len(a))
	for i := range a {
		values[i] = op(a[i], b[i])
	}

	return values
}

// window copies the entries at positions [from, to).
func window[V any](s Series[V], from, to int) Series[V] {
	if from >= to {
		return Empty[V]()
	}
	if from == 0 && to == s.Len() {
		return s
	}

	return Series[V]{keys: s.buf().window(from, to), values: slices.Clone(s.values[from:to])}
}

// lag shifts values by position: for n > 0 the first size-n keys pair with
// the values n positions later, for n < 0 the last size+n keys pair with the
// values -n positions earlier.
func lag[V any](s Series[V], n int) Series[V] {
	size := s.Len()
	switch {
	case n == 0:
		return s
	case n >= size || n <= -size:
		return Empty[V]()
	case n > 0:
		return Series[V]{
			keys:   s.buf().window(0, size-n),
			values: slices.Clone(s.values[n:]),
		}
	default:
		return Series[V]{
			keys:   s.buf().window(-n, size),
			values: slices.Clone(s.values[:size+n]),
		}
	}
}

// bounds normalizes an inclusive/exclusive key range to the half-open
// position range [from, to).
func bounds(buf *keyBuffer, fromKey int, fromInclusive bool, toKey int, toInclusive bool) (int, int) {
	from, found := buf.search(fromKey)
	if found && !fromInclusive {
		from++
	}

	to, found := buf.search(toKey)
	if found && toInclusive {
		to++
	}

	return from, to
}
