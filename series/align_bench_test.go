package series

import (
	"testing"
	"time"

	"github.com/arloliu/datets/datekey"
)

var benchmarkSizes = []struct {
	name string
	size int
}{
	{"100_days", 100},
	{"1000_days", 1000},
	{"10000_days", 10000},
}

// generateDaily returns a daily series starting at 2000-01-01, keeping every
// stride-th day.
func generateDaily(n, stride int) NumericSeries {
	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	b := NewNumericBuilder()
	for i := range n {
		day := datekey.FromTime(start.AddDate(0, 0, i*stride))
		_ = b.PutDate(day, 20.5+float64(i)*0.1)
	}

	return BuildNumeric(b)
}

func BenchmarkIntersect(b *testing.B) {
	for _, size := range benchmarkSizes {
		b.Run(size.name, func(b *testing.B) {
			daily := generateDaily(size.size, 1)
			everyOther := generateDaily(size.size/2, 2)

			b.ResetTimer()
			b.ReportAllocs()

			for b.Loop() {
				_ = daily.Add(everyOther)
			}
		})
	}
}

func BenchmarkIntersect_SharedKeys(b *testing.B) {
	for _, size := range benchmarkSizes {
		b.Run(size.name, func(b *testing.B) {
			daily := generateDaily(size.size, 1)
			scaled := daily.MultiplyScalar(2)

			b.ResetTimer()
			b.ReportAllocs()

			for b.Loop() {
				_ = daily.Add(scaled)
			}
		})
	}
}

func BenchmarkUnion(b *testing.B) {
	for _, size := range benchmarkSizes {
		b.Run(size.name, func(b *testing.B) {
			daily := generateDaily(size.size, 1)
			weekly := generateDaily(size.size/7, 7)

			b.ResetTimer()
			b.ReportAllocs()

			for b.Loop() {
				_ = daily.UnionAdd(weekly)
			}
		})
	}
}

func BenchmarkBuilder_PutAll(b *testing.B) {
	for _, size := range benchmarkSizes {
		b.Run(size.name, func(b *testing.B) {
			src := generateDaily(size.size, 1)
			keys, values := src.Keys(), src.Values()
			// Reverse to force the sort-merge path.
			for i, j := 0, len(keys)-1; i < j; i, j = i+1, j-1 {
				keys[i], keys[j] = keys[j], keys[i]
				values[i], values[j] = values[j], values[i]
			}

			b.ResetTimer()
			b.ReportAllocs()

			for b.Loop() {
				builder := NewNumericBuilder()
				_ = builder.PutAll(keys, values)
			}
		})
	}
}
