package sieve

import (
	"fmt"
	"testing"
)

func BenchmarkSieves(b *testing.B) {
	for _, n := range []uint64{100_000, 1_000_000} {
		for _, algo := range All() {
			b.Run(fmt.Sprintf("%s/n=%d", algo.Name, n), func(b *testing.B) {
				b.ReportAllocs()
				for i := 0; i < b.N; i++ {
					list := algo.Run(n)
					if list.Count() == 0 {
						b.Fatal("empty result")
					}
				}
			})
		}
	}
}

func BenchmarkIZmLargeRange(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		IZm(10_000_000)
	}
}
