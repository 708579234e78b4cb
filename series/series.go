package series

import (
	"fmt"
	"iter"
	"reflect"
	"slices"
	"strings"

	"github.com/arloliu/datets/datekey"
	"github.com/arloliu/datets/errs"
)

// Reader is the read contract shared by every series implementation and by
// Builder. Constructors and Equal accept any Reader, so foreign
// implementations over the same date domain interoperate.
type Reader[V any] interface {
	// Len returns the number of entries.
	Len() int
	// KeyAt returns the dense key at position i, or false if i is out of range.
	KeyAt(i int) (int, bool)
	// ValueAt returns the value at position i, or false if i is out of range.
	ValueAt(i int) (V, bool)
}

// holder is implemented by the one concrete series layout. It lets
// constructors reuse an existing series without copying or re-validating.
type holder[V any] interface {
	unwrap() Series[V]
}

// Series is an immutable, date-ordered mapping from dense keys to values of type V.
//
// Keys are strictly ascending and unique; values run parallel to keys. A
// Series is never modified after construction and is safe for concurrent
// reads. The zero value is an empty series.
type Series[V any] struct {
	keys   *keyBuffer
	values []V
}

var (
	_ Reader[any] = Series[any]{}
	_ holder[any] = Series[any]{}
)

// Empty returns an empty series.
func Empty[V any]() Series[V] {
	return Series[V]{keys: emptyKeys}
}

// Single returns a series holding one entry.
func Single[V any](key int, value V) (Series[V], error) {
	return OfKeys([]int{key}, []V{value})
}

// OfKeys creates a series from parallel key and value slices.
//
// Both slices are copied, so the caller may reuse them.
//
// Returns:
//   - Series[V]: The new series
//   - error: ErrLengthMismatch, ErrInvalidKey or ErrInvalidOrder
func OfKeys[V any](keys []int, values []V) (Series[V], error) {
	if len(keys) != len(values) {
		return Series[V]{}, fmt.Errorf("%w: %d keys, %d values", errs.ErrLengthMismatch, len(keys), len(values))
	}

	buf, err := newKeyBuffer(keys)
	if err != nil {
		return Series[V]{}, err
	}

	return Series[V]{keys: buf, values: slices.Clone(values)}, nil
}

// OfDates creates a series from parallel date and value slices.
func OfDates[V any](dates []datekey.Date, values []V) (Series[V], error) {
	if len(dates) != len(values) {
		return Series[V]{}, fmt.Errorf("%w: %d dates, %d values", errs.ErrLengthMismatch, len(dates), len(values))
	}

	keys, err := encodeDates(dates)
	if err != nil {
		return Series[V]{}, err
	}
	if err := checkKeys(keys); err != nil {
		return Series[V]{}, err
	}

	return Series[V]{keys: ownKeyBuffer(keys), values: slices.Clone(values)}, nil
}

// From creates a series holding the entries of src.
//
// A Series or NumericSeries source is returned as-is since it is already
// immutable; any other implementation is copied and validated.
func From[V any](src Reader[V]) (Series[V], error) {
	if h, ok := src.(holder[V]); ok {
		return h.unwrap(), nil
	}

	keys, values := readAll(src, 0, src.Len())
	if err := checkKeys(keys); err != nil {
		return Series[V]{}, err
	}

	return Series[V]{keys: ownKeyBuffer(keys), values: values}, nil
}

// Convert applies fn to every value, producing a series of another payload type.
// The result shares the key buffer of s.
func Convert[V, W any](s Series[V], fn func(V) W) Series[W] {
	values := make([]W, len(s.values))
	for i, v := range s.values {
		values[i] = fn(v)
	}

	return Series[W]{keys: s.buf(), values: values}
}

func (s Series[V]) unwrap() Series[V] {
	return s
}

func (s Series[V]) buf() *keyBuffer {
	if s.keys == nil {
		return emptyKeys
	}

	return s.keys
}

// sharesKeys reports whether s and other hold the same key buffer.
func (s Series[V]) sharesKeys(other Series[V]) bool {
	return s.buf() == other.buf()
}

// Len returns the number of entries.
func (s Series[V]) Len() int {
	return len(s.values)
}

// IsEmpty reports whether the series has no entries.
func (s Series[V]) IsEmpty() bool {
	return len(s.values) == 0
}

// ContainsKey reports whether key is present.
func (s Series[V]) ContainsKey(key int) bool {
	_, found := s.buf().search(key)
	return found
}

// ContainsDate reports whether date is present.
func (s Series[V]) ContainsDate(date datekey.Date) bool {
	key, err := datekey.Encode(date)
	if err != nil {
		return false
	}

	return s.ContainsKey(key)
}

// Get returns the value stored under key using binary search.
func (s Series[V]) Get(key int) (V, bool) {
	pos, found := s.buf().search(key)
	if !found {
		var zero V
		return zero, false
	}

	return s.values[pos], true
}

// GetDate returns the value stored under date.
func (s Series[V]) GetDate(date datekey.Date) (V, bool) {
	key, err := datekey.Encode(date)
	if err != nil {
		var zero V
		return zero, false
	}

	return s.Get(key)
}

// KeyAt returns the key at position i.
func (s Series[V]) KeyAt(i int) (int, bool) {
	if i < 0 || i >= s.Len() {
		return 0, false
	}

	return s.keys.at(i), true
}

// DateAt returns the date at position i.
func (s Series[V]) DateAt(i int) (datekey.Date, bool) {
	key, ok := s.KeyAt(i)
	if !ok {
		return datekey.Date{}, false
	}

	return datekey.MustDecode(key), true
}

// ValueAt returns the value at position i.
func (s Series[V]) ValueAt(i int) (V, bool) {
	if i < 0 || i >= s.Len() {
		var zero V
		return zero, false
	}

	return s.values[i], true
}

// EarliestKey returns the first key, or ErrEmptySeries.
func (s Series[V]) EarliestKey() (int, error) {
	if s.IsEmpty() {
		return 0, errs.ErrEmptySeries
	}

	return s.keys.at(0), nil
}

// EarliestDate returns the first date, or ErrEmptySeries.
func (s Series[V]) EarliestDate() (datekey.Date, error) {
	key, err := s.EarliestKey()
	if err != nil {
		return datekey.Date{}, err
	}

	return datekey.MustDecode(key), nil
}

// EarliestValue returns the first value, or ErrEmptySeries.
func (s Series[V]) EarliestValue() (V, error) {
	if s.IsEmpty() {
		var zero V
		return zero, errs.ErrEmptySeries
	}

	return s.values[0], nil
}

// LatestKey returns the last key, or ErrEmptySeries.
func (s Series[V]) LatestKey() (int, error) {
	if s.IsEmpty() {
		return 0, errs.ErrEmptySeries
	}

	return s.keys.at(s.Len() - 1), nil
}

// LatestDate returns the last date, or ErrEmptySeries.
func (s Series[V]) LatestDate() (datekey.Date, error) {
	key, err := s.LatestKey()
	if err != nil {
		return datekey.Date{}, err
	}

	return datekey.MustDecode(key), nil
}

// LatestValue returns the last value, or ErrEmptySeries.
func (s Series[V]) LatestValue() (V, error) {
	if s.IsEmpty() {
		var zero V
		return zero, errs.ErrEmptySeries
	}

	return s.values[s.Len()-1], nil
}

// SubSeries returns the entries whose keys fall between fromKey and toKey.
//
// Each bound is inclusive or exclusive as requested. Equal bounds select the
// single entry at that key only when both ends are inclusive. An inclusive
// upper bound of datekey.MaxKey reaches the end of the series.
//
// Returns:
//   - Series[V]: A copy of the selected window
//   - error: ErrInvalidRange if toKey precedes fromKey
func (s Series[V]) SubSeries(fromKey int, fromInclusive bool, toKey int, toInclusive bool) (Series[V], error) {
	if toKey < fromKey {
		return Series[V]{}, fmt.Errorf("%w: end %d precedes start %d", errs.ErrInvalidRange, toKey, fromKey)
	}

	if fromKey == toKey {
		if fromInclusive && toInclusive {
			if pos, found := s.buf().search(fromKey); found {
				return window(s, pos, pos+1), nil
			}
		}

		return Empty[V](), nil
	}

	from, to := bounds(s.buf(), fromKey, fromInclusive, toKey, toInclusive)

	return window(s, from, to), nil
}

// SubSeriesDates is SubSeries with date bounds.
func (s Series[V]) SubSeriesDates(from datekey.Date, fromInclusive bool, to datekey.Date, toInclusive bool) (Series[V], error) {
	fromKey, toKey, err := encodeBounds(from, to)
	if err != nil {
		return Series[V]{}, err
	}

	return s.SubSeries(fromKey, fromInclusive, toKey, toInclusive)
}

// Between returns the entries in the half-open key range [fromKey, toKey).
func (s Series[V]) Between(fromKey, toKey int) (Series[V], error) {
	return s.SubSeries(fromKey, true, toKey, false)
}

// Head returns the first n entries. It returns s itself when n equals Len.
func (s Series[V]) Head(n int) (Series[V], error) {
	if n < 0 || n > s.Len() {
		return Series[V]{}, fmt.Errorf("%w: head %d of %d", errs.ErrIndexOutOfRange, n, s.Len())
	}

	return window(s, 0, n), nil
}

// Tail returns the last n entries. It returns s itself when n equals Len.
func (s Series[V]) Tail(n int) (Series[V], error) {
	if n < 0 || n > s.Len() {
		return Series[V]{}, fmt.Errorf("%w: tail %d of %d", errs.ErrIndexOutOfRange, n, s.Len())
	}

	return window(s, s.Len()-n, s.Len()), nil
}

// Lag shifts values by n positions, not by calendar distance.
//
// For n > 0 the first Len-n keys are paired with the values found n
// positions later; for n < 0 the last Len+n keys are paired with the values
// found -n positions earlier. A shift of at least Len yields an empty series
// and a shift of zero yields s.
func (s Series[V]) Lag(n int) Series[V] {
	return lag(s, n)
}

// Map applies op to every value. The result shares the key buffer of s.
func (s Series[V]) Map(op UnaryOp[V]) Series[V] {
	return mapValues(s, op)
}

// OperateScalar applies op(value, scalar) to every value. The result shares the key buffer of s.
func (s Series[V]) OperateScalar(scalar V, op BinaryOp[V]) Series[V] {
	return mapValues(s, func(v V) V { return op(v, scalar) })
}

// Operate combines s and other on the intersection of their keys.
// Each result value is op(s value, other value).
func (s Series[V]) Operate(other Series[V], op BinaryOp[V]) Series[V] {
	return intersect(s, other, op)
}

// UnionOperate combines s and other on the union of their keys. Shared keys
// take op(s value, other value); all other entries are copied unchanged.
func (s Series[V]) UnionOperate(other Series[V], op BinaryOp[V]) Series[V] {
	u, _ := union(s, other, op, false)
	return u
}

// IntersectionFirstValue keeps the values of s for keys present in both series.
func (s Series[V]) IntersectionFirstValue(other Series[V]) Series[V] {
	return intersect(s, other, First[V]())
}

// IntersectionSecondValue keeps the values of other for keys present in both series.
func (s Series[V]) IntersectionSecondValue(other Series[V]) Series[V] {
	return intersect(s, other, Second[V]())
}

// NoIntersectionOperation merges two series whose key sets are disjoint.
//
// Returns:
//   - Series[V]: The union of both series
//   - error: ErrOverlappingKeys naming the first key present in both
func (s Series[V]) NoIntersectionOperation(other Series[V]) (Series[V], error) {
	return union(s, other, First[V](), true)
}

// Equal reports whether other holds the same ordered keys and values,
// whatever its concrete implementation. Values are compared with reflect.DeepEqual.
func (s Series[V]) Equal(other Reader[V]) bool {
	return s.EqualFunc(other, func(a, b V) bool { return reflect.DeepEqual(a, b) })
}

// EqualFunc is like Equal but compares values with eq. A nil Reader never
// matches; a nil *Builder reads as empty.
func (s Series[V]) EqualFunc(other Reader[V], eq func(a, b V) bool) bool {
	if other == nil || s.Len() != other.Len() {
		return false
	}

	for i := range s.Len() {
		key, _ := other.KeyAt(i)
		value, _ := other.ValueAt(i)
		if key != s.keys.at(i) || !eq(s.values[i], value) {
			return false
		}
	}

	return true
}

// Keys returns a copy of the keys.
func (s Series[V]) Keys() []int {
	return s.buf().clone()
}

// Dates returns the keys decoded as dates.
func (s Series[V]) Dates() []datekey.Date {
	dates := make([]datekey.Date, s.Len())
	for i, key := range s.buf().keys {
		dates[i] = datekey.MustDecode(key)
	}

	return dates
}

// Values returns a copy of the values.
func (s Series[V]) Values() []V {
	return slices.Clone(s.values)
}

// All returns an iterator over (key, value) pairs in key order.
//
// Example:
//
//	for key, value := range s.All() {
//	    fmt.Printf("%d=%v\n", key, value)
//	}
func (s Series[V]) All() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		for i, key := range s.buf().keys {
			if !yield(key, s.values[i]) {
				return
			}
		}
	}
}

// AllDates returns an iterator over (date, value) pairs in date order.
func (s Series[V]) AllDates() iter.Seq2[datekey.Date, V] {
	return func(yield func(datekey.Date, V) bool) {
		for i, key := range s.buf().keys {
			if !yield(datekey.MustDecode(key), s.values[i]) {
				return
			}
		}
	}
}

// Iterator returns a read-only entry iterator. Its Remove always fails with ErrUnsupportedMutation.
func (s Series[V]) Iterator() EntryIterator[V] {
	return &cursor[V]{src: s, pos: -1}
}

// ToBuilder returns a new builder pre-populated with the entries of s.
func (s Series[V]) ToBuilder() *Builder[V] {
	return &Builder[V]{keys: s.buf().clone(), values: slices.Clone(s.values)}
}

// String formats the series as Series[(date, value), ...].
func (s Series[V]) String() string {
	return formatEntries("Series", s)
}

func formatEntries[V any](name string, s Series[V]) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('[')
	for i, key := range s.buf().keys {
		if i > 0 {
			sb.WriteString(", ")
		}
		fmt.Fprintf(&sb, "(%s, %v)", datekey.MustDecode(key), s.values[i])
	}
	sb.WriteByte(']')

	return sb.String()
}

func encodeDates(dates []datekey.Date) ([]int, error) {
	keys := make([]int, len(dates))
	for i, date := range dates {
		key, err := datekey.Encode(date)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		keys[i] = key
	}

	return keys, nil
}

func encodeBounds(from, to datekey.Date) (int, int, error) {
	fromKey, err := datekey.Encode(from)
	if err != nil {
		return 0, 0, err
	}

	toKey, err := datekey.Encode(to)
	if err != nil {
		return 0, 0, err
	}

	return fromKey, toKey, nil
}

// readAll copies the entries of src at positions [start, end).
func readAll[V any](src Reader[V], start, end int) ([]int, []V) {
	keys := make([]int, 0, end-start)
	values := make([]V, 0, end-start)
	for i := start; i < end; i++ {
		key, _ := src.KeyAt(i)
		value, _ := src.ValueAt(i)
		keys = append(keys, key)
		values = append(values, value)
	}

	return keys, values
}
