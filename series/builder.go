package series

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/arloliu/datets/datekey"
	"github.com/arloliu/datets/errs"
)

// Builder accumulates entries in key order and snapshots them into a Series.
//
// Entries stay sorted by key as they are added; putting an existing key
// overwrites its value. Bulk puts validate every input before changing any
// state, so a failed call leaves the builder as it was.
//
// A Builder is not safe for concurrent use. It stays usable after Build.
type Builder[V any] struct {
	keys   []int
	values []V
}

var _ Reader[any] = (*Builder[any])(nil)

// NewBuilder returns an empty builder.
func NewBuilder[V any]() *Builder[V] {
	return &Builder[V]{}
}

// NewNumericBuilder returns an empty builder for numeric series.
func NewNumericBuilder() *Builder[float64] {
	return NewBuilder[float64]()
}

// Len returns the number of entries. A nil builder reads as empty.
func (b *Builder[V]) Len() int {
	if b == nil {
		return 0
	}

	return len(b.keys)
}

// KeyAt returns the key at position i.
func (b *Builder[V]) KeyAt(i int) (int, bool) {
	if b == nil || i < 0 || i >= len(b.keys) {
		return 0, false
	}

	return b.keys[i], true
}

// ValueAt returns the value at position i.
func (b *Builder[V]) ValueAt(i int) (V, bool) {
	if b == nil || i < 0 || i >= len(b.values) {
		var zero V
		return zero, false
	}

	return b.values[i], true
}

// Get returns the value stored under key.
func (b *Builder[V]) Get(key int) (V, bool) {
	pos, found := slices.BinarySearch(b.keys, key)
	if !found {
		var zero V
		return zero, false
	}

	return b.values[pos], true
}

// Put stores value under key, replacing any previous value.
//
// Returns:
//   - error: ErrInvalidKey if key does not encode a date
func (b *Builder[V]) Put(key int, value V) error {
	if err := datekey.Validate(key); err != nil {
		return err
	}
	b.put(key, value)

	return nil
}

// PutDate stores value under date, replacing any previous value.
func (b *Builder[V]) PutDate(date datekey.Date, value V) error {
	key, err := datekey.Encode(date)
	if err != nil {
		return err
	}
	b.put(key, value)

	return nil
}

// PutAll stores parallel keys and values. Later duplicates win.
func (b *Builder[V]) PutAll(keys []int, values []V) error {
	if len(keys) != len(values) {
		return fmt.Errorf("%w: %d keys, %d values", errs.ErrLengthMismatch, len(keys), len(values))
	}
	for i, key := range keys {
		if err := datekey.Validate(key); err != nil {
			return fmt.Errorf("index %d: %w", i, err)
		}
	}

	b.putAll(keys, values)

	return nil
}

// PutAllDates stores parallel dates and values. Later duplicates win.
func (b *Builder[V]) PutAllDates(dates []datekey.Date, values []V) error {
	if len(dates) != len(values) {
		return fmt.Errorf("%w: %d dates, %d values", errs.ErrLengthMismatch, len(dates), len(values))
	}

	keys, err := encodeDates(dates)
	if err != nil {
		return err
	}
	b.putAll(keys, values)

	return nil
}

// PutMap stores every entry of m.
func (b *Builder[V]) PutMap(m map[datekey.Date]V) error {
	keys := make([]int, 0, len(m))
	values := make([]V, 0, len(m))
	for date, value := range m {
		key, err := datekey.Encode(date)
		if err != nil {
			return err
		}
		keys = append(keys, key)
		values = append(values, value)
	}

	b.putAll(keys, values)

	return nil
}

// PutSeries stores every entry of src.
func (b *Builder[V]) PutSeries(src Reader[V]) error {
	return b.PutSeriesRange(src, 0, src.Len())
}

// PutSeriesRange stores the entries of src at positions [start, end).
//
// Returns:
//   - error: ErrIndexOutOfRange for bounds outside [0, src.Len()] or end before start
func (b *Builder[V]) PutSeriesRange(src Reader[V], start, end int) error {
	size := src.Len()
	if start < 0 || start > size || end < start || end > size {
		return fmt.Errorf("%w: range [%d, %d) of %d entries", errs.ErrIndexOutOfRange, start, end, size)
	}

	keys, values := readAll(src, start, end)
	if _, ok := src.(holder[V]); !ok {
		for i, key := range keys {
			if err := datekey.Validate(key); err != nil {
				return fmt.Errorf("index %d: %w", start+i, err)
			}
		}
	}

	b.putAll(keys, values)

	return nil
}

// Clear removes all entries. The builder can be reused afterwards.
func (b *Builder[V]) Clear() {
	clear(b.values)
	b.keys = b.keys[:0]
	b.values = b.values[:0]
}

// Build returns an immutable snapshot of the current entries.
func (b *Builder[V]) Build() Series[V] {
	return Series[V]{keys: ownKeyBuffer(slices.Clone(b.keys)), values: slices.Clone(b.values)}
}

// BuildNumeric returns an immutable numeric snapshot of b.
func BuildNumeric(b *Builder[float64]) NumericSeries {
	return Numeric(b.Build())
}

// Iterator returns an iterator whose Remove deletes entries from the builder.
// The builder must not be modified through other methods while iterating.
func (b *Builder[V]) Iterator() EntryIterator[V] {
	return &cursor[V]{src: b, remove: b.removeAt, pos: -1}
}

// String returns Builder[size=N].
func (b *Builder[V]) String() string {
	return fmt.Sprintf("Builder[size=%d]", len(b.keys))
}

func (b *Builder[V]) put(key int, value V) {
	n := len(b.keys)
	if n == 0 || key > b.keys[n-1] {
		b.keys = append(b.keys, key)
		b.values = append(b.values, value)

		return
	}

	pos, found := slices.BinarySearch(b.keys, key)
	if found {
		b.values[pos] = value
		return
	}

	b.keys = slices.Insert(b.keys, pos, key)
	b.values = slices.Insert(b.values, pos, value)
}

// putAll inserts pre-validated entries. Large unordered batches are sorted
// and merged in one pass instead of inserted one by one.
func (b *Builder[V]) putAll(keys []int, values []V) {
	if len(keys) < 16 {
		for i, key := range keys {
			b.put(key, values[i])
		}

		return
	}

	batch := make([]Entry[V], len(keys))
	for i, key := range keys {
		batch[i] = Entry[V]{Key: key, Value: values[i]}
	}
	// Stable sort keeps later duplicates after earlier ones.
	slices.SortStableFunc(batch, func(x, y Entry[V]) int { return cmp.Compare(x.Key, y.Key) })

	merged := NewBuilder[V]()
	merged.keys = make([]int, 0, len(b.keys)+len(batch))
	merged.values = make([]V, 0, len(b.keys)+len(batch))

	i := 0
	for j := 0; j < len(batch); j++ {
		key := batch[j].Key
		if j+1 < len(batch) && batch[j+1].Key == key {
			continue
		}
		for i < len(b.keys) && b.keys[i] < key {
			merged.keys = append(merged.keys, b.keys[i])
			merged.values = append(merged.values, b.values[i])
			i++
		}
		if i < len(b.keys) && b.keys[i] == key {
			i++
		}
		merged.keys = append(merged.keys, key)
		merged.values = append(merged.values, batch[j].Value)
	}
	merged.keys = append(merged.keys, b.keys[i:]...)
	merged.values = append(merged.values, b.values[i:]...)

	b.keys, b.values = merged.keys, merged.values
}

func (b *Builder[V]) removeAt(i int) {
	b.keys = slices.Delete(b.keys, i, i+1)
	b.values = slices.Delete(b.values, i, i+1)
}
