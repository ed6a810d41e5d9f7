package indent

import (
	"fmt"
	"strings"
	"testing"

	"github.com/dshills/vimdent/internal/engine/buffer"
)

func BenchmarkIndentWholeFile(b *testing.B) {
	line := "    func foo() { return bar(baz) }\n"
	for _, lines := range []int{1_000, 10_000, 50_000} {
		text := strings.Repeat(line, lines)
		for _, mixed := range []bool{false, true} {
			opts := Options{IndentSize: 4, TabSize: 8, MixedTabs: mixed}
			b.Run(fmt.Sprintf("lines=%d/mixed=%t", lines, mixed), func(b *testing.B) {
				buf := buffer.NewBufferFromString(text)
				b.SetBytes(int64(len(text)))
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					txn := buf.Begin()
					if err := Indent(txn, []buffer.Range{buffer.NewRange(0, txn.Len())}, opts); err != nil {
						b.Fatal(err)
					}
					txn.Rollback()
				}
			})
		}
	}
}

func BenchmarkUnindentWholeFile(b *testing.B) {
	text := strings.Repeat("\t\tfunc foo() { return bar(baz) }\n", 10_000)
	buf := buffer.NewBufferFromString(text)
	opts := Options{IndentSize: 4, TabSize: 8, MixedTabs: true}
	for i := 0; i < b.N; i++ {
		txn := buf.Begin()
		if err := Unindent(txn, []buffer.Range{buffer.NewRange(0, txn.Len())}, opts); err != nil {
			b.Fatal(err)
		}
		txn.Rollback()
	}
}
