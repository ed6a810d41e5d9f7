package rope

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
)

// sourceText returns n lines that look like indented code.
func sourceText(n int) string {
	var sb strings.Builder
	for i := 0; i < n; i++ {
		fmt.Fprintf(&sb, "%s%s = compute(%d, other)\n", strings.Repeat("    ", i%4), "value", i)
	}
	return sb.String()
}

var sizes = []int{1_000, 10_000, 100_000}

func BenchmarkFromString(b *testing.B) {
	for _, n := range sizes {
		text := sourceText(n)
		b.Run(fmt.Sprintf("lines=%d", n), func(b *testing.B) {
			b.SetBytes(int64(len(text)))
			for i := 0; i < b.N; i++ {
				_ = FromString(text)
			}
		})
	}
}

func BenchmarkInsertRandom(b *testing.B) {
	for _, n := range sizes {
		r := FromString(sourceText(n))
		rng := rand.New(rand.NewSource(1))
		b.Run(fmt.Sprintf("lines=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = r.Insert(ByteOffset(rng.Int63n(int64(r.Len()))), "    ")
			}
		})
	}
}

// BenchmarkIndentEveryLine inserts at every line start, last line first,
// the edit pattern of indenting a whole file.
func BenchmarkIndentEveryLine(b *testing.B) {
	for _, n := range sizes {
		base := FromString(sourceText(n))
		b.Run(fmt.Sprintf("lines=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				r := base
				for line := int(r.LineCount()) - 1; line >= 0; line-- {
					r = r.Insert(r.LineStartOffset(uint32(line)), "    ")
				}
			}
		})
	}
}

func BenchmarkLineStartOffset(b *testing.B) {
	for _, n := range sizes {
		r := FromString(sourceText(n))
		rng := rand.New(rand.NewSource(1))
		b.Run(fmt.Sprintf("lines=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = r.LineStartOffset(uint32(rng.Intn(n)))
			}
		})
	}
}

func BenchmarkLineOf(b *testing.B) {
	for _, n := range sizes {
		r := FromString(sourceText(n))
		rng := rand.New(rand.NewSource(1))
		b.Run(fmt.Sprintf("lines=%d", n), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				_ = r.LineOf(ByteOffset(rng.Int63n(int64(r.Len()))))
			}
		})
	}
}

func BenchmarkSlice(b *testing.B) {
	r := FromString(sourceText(10_000))
	for i := 0; i < b.N; i++ {
		start := ByteOffset(i*37) % (r.Len() - 200)
		_ = r.Slice(start, start+200)
	}
}
