package series

import (
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/arloliu/datets/datekey"
	"github.com/arloliu/datets/errs"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Put(t *testing.T) {
	t.Run("keeps keys ordered", func(t *testing.T) {
		b := NewBuilder[string]()
		require.NoError(t, b.Put(20120702, "c"))
		require.NoError(t, b.Put(20120630, "a"))
		require.NoError(t, b.Put(20120701, "b"))

		s := b.Build()
		require.Equal(t, []int{20120630, 20120701, 20120702}, s.Keys())
		require.Equal(t, []string{"a", "b", "c"}, s.Values())
	})

	t.Run("last write wins", func(t *testing.T) {
		b := NewNumericBuilder()
		require.NoError(t, b.PutDate(datekey.Of(2012, time.June, 30), 1))
		require.NoError(t, b.PutDate(datekey.Of(2012, time.June, 30), 2))

		s := BuildNumeric(b)
		require.Equal(t, 1, s.Len())
		require.Equal(t, "NumericSeries[(2012-06-30, 2)]", s.String())
	})

	t.Run("rejects invalid keys", func(t *testing.T) {
		b := NewBuilder[int]()
		require.ErrorIs(t, b.Put(20120230, 1), errs.ErrInvalidKey)
		require.ErrorIs(t, b.PutDate(datekey.Of(10000, 1, 1), 1), errs.ErrDomainRange)
		require.ErrorIs(t, b.PutDate(datekey.Of(2021, 2, 29), 1), errs.ErrInvalidDate)
		require.Equal(t, 0, b.Len())
	})

	t.Run("accepts sentinels", func(t *testing.T) {
		b := NewBuilder[int]()
		require.NoError(t, b.PutDate(datekey.MaxDate, 2))
		require.NoError(t, b.PutDate(datekey.MinDate, 1))
		require.Equal(t, []int{datekey.MinKey, datekey.MaxKey}, b.Build().Keys())
	})
}

func TestBuilder_Get(t *testing.T) {
	b := NewBuilder[int]()
	require.NoError(t, b.Put(20200101, 1))

	v, ok := b.Get(20200101)
	require.True(t, ok)
	require.Equal(t, 1, v)

	_, ok = b.Get(20200102)
	require.False(t, ok)

	key, ok := b.KeyAt(0)
	require.True(t, ok)
	require.Equal(t, 20200101, key)
	_, ok = b.KeyAt(1)
	require.False(t, ok)
	_, ok = b.ValueAt(-1)
	require.False(t, ok)
}

func TestBuilder_Build(t *testing.T) {
	b := NewBuilder[int]()
	require.NoError(t, b.Put(20200101, 1))

	first := b.Build()
	second := b.Build()
	require.True(t, first.Equal(second))

	require.NoError(t, b.Put(20200102, 2))
	require.Equal(t, 1, first.Len(), "snapshots are independent of the builder")
	require.Equal(t, 2, b.Build().Len())

	require.True(t, NewBuilder[int]().Build().IsEmpty())
}

func TestBuilder_PutAll(t *testing.T) {
	t.Run("small batch", func(t *testing.T) {
		b := NewBuilder[int]()
		require.NoError(t, b.Put(20200102, 0))
		require.NoError(t, b.PutAll([]int{20200103, 20200101, 20200102, 20200101}, []int{3, 1, 2, 11}))

		s := b.Build()
		require.Equal(t, []int{20200101, 20200102, 20200103}, s.Keys())
		require.Equal(t, []int{11, 2, 3}, s.Values())
	})

	t.Run("large batch matches one by one", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(1, 2))
		start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

		keys := make([]int, 500)
		values := make([]int, 500)
		for i := range keys {
			day := start.AddDate(0, 0, rng.IntN(200))
			keys[i] = datekey.MustEncode(datekey.FromTime(day))
			values[i] = i
		}

		bulk := NewBuilder[int]()
		single := NewBuilder[int]()
		for i := 0; i < 50; i++ {
			require.NoError(t, bulk.Put(keys[i], -i))
			require.NoError(t, single.Put(keys[i], -i))
		}

		require.NoError(t, bulk.PutAll(keys, values))
		for i, key := range keys {
			require.NoError(t, single.Put(key, values[i]))
		}

		require.True(t, bulk.Build().Equal(single.Build()))
		require.True(t, slices.IsSorted(bulk.Build().Keys()))
	})

	t.Run("validation happens before mutation", func(t *testing.T) {
		b := NewBuilder[int]()
		require.NoError(t, b.Put(20200101, 1))

		err := b.PutAll([]int{20200102, 20200230}, []int{2, 3})
		require.ErrorIs(t, err, errs.ErrInvalidKey)
		require.Equal(t, 1, b.Len())

		err = b.PutAll([]int{20200102}, []int{2, 3})
		require.ErrorIs(t, err, errs.ErrLengthMismatch)

		err = b.PutAllDates([]datekey.Date{datekey.Of(2020, 1, 2), datekey.Of(2020, 13, 1)}, []int{2, 3})
		require.ErrorIs(t, err, errs.ErrInvalidDate)
		require.Equal(t, 1, b.Len())
	})

	t.Run("dates", func(t *testing.T) {
		b := NewBuilder[int]()
		require.NoError(t, b.PutAllDates([]datekey.Date{datekey.Of(2020, 1, 2), datekey.Of(2020, 1, 1)}, []int{2, 1}))
		require.Equal(t, []int{1, 2}, b.Build().Values())
	})
}

func TestBuilder_PutMap(t *testing.T) {
	b := NewBuilder[float64]()
	require.NoError(t, b.PutMap(map[datekey.Date]float64{
		datekey.Of(2020, 3, 1): 3,
		datekey.Of(2020, 1, 1): 1,
		datekey.Of(2020, 2, 1): 2,
	}))
	require.Equal(t, []float64{1, 2, 3}, b.Build().Values())

	err := b.PutMap(map[datekey.Date]float64{datekey.Of(2020, 2, 30): 1})
	require.ErrorIs(t, err, errs.ErrInvalidDate)
	require.Equal(t, 3, b.Len())
}

func TestBuilder_PutSeriesRange(t *testing.T) {
	src := standardSeries(t)

	t.Run("invalid ranges", func(t *testing.T) {
		for _, r := range [][2]int{{-1, 3}, {4, 2}, {1, -1}, {3, 6}, {6, 6}} {
			b := NewBuilder[int]()
			err := b.PutSeriesRange(src, r[0], r[1])
			require.ErrorIs(t, err, errs.ErrIndexOutOfRange, "range %v", r)
			require.Equal(t, 0, b.Len())
		}
	})

	t.Run("empty range", func(t *testing.T) {
		b := NewBuilder[int]()
		require.NoError(t, b.PutSeriesRange(src, 1, 1))
		require.Equal(t, 0, b.Len())
	})

	t.Run("partial range", func(t *testing.T) {
		b := NewBuilder[int]()
		require.NoError(t, b.PutSeriesRange(src, 1, 3))
		require.Equal(t, []int{3, 5}, b.Build().Values())
	})

	t.Run("whole series", func(t *testing.T) {
		b := NewBuilder[int]()
		require.NoError(t, b.PutSeries(src))
		require.True(t, src.Equal(b))
	})

	t.Run("from another builder", func(t *testing.T) {
		other := src.ToBuilder()
		b := NewBuilder[int]()
		require.NoError(t, b.PutSeries(other))
		require.True(t, src.Equal(b))
	})

	t.Run("foreign reader is validated", func(t *testing.T) {
		b := NewBuilder[int]()
		require.ErrorIs(t, b.PutSeries(badKeyReader{}), errs.ErrInvalidKey)
	})
}

// badKeyReader holds a key that does not decode to a date.
type badKeyReader struct{}

func (badKeyReader) Len() int { return 1 }

func (badKeyReader) KeyAt(int) (int, bool) { return 20201301, true }

func (badKeyReader) ValueAt(int) (int, bool) { return 1, true }

func TestBuilder_Clear(t *testing.T) {
	b := NewBuilder[int]()
	require.NoError(t, b.Put(20200101, 1))
	b.Clear()
	require.Equal(t, 0, b.Len())
	require.True(t, b.Build().IsEmpty())

	require.NoError(t, b.Put(20200102, 2))
	require.Equal(t, []int{20200102}, b.Build().Keys())
}

func TestBuilder_String(t *testing.T) {
	b := NewBuilder[int]()
	require.Equal(t, "Builder[size=0]", b.String())

	require.NoError(t, b.Put(20200101, 1))
	require.NoError(t, b.Put(20200102, 2))
	require.Equal(t, "Builder[size=2]", b.String())
}
