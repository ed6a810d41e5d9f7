package rope

import "strings"

// ByteOffset is a byte position in the rope.
type ByteOffset = int64

// TextSummary holds the aggregated metrics of a span of text.
type TextSummary struct {
	// Bytes is the UTF-8 byte count.
	Bytes ByteOffset

	// LF and CR count '\n' and '\r' bytes.
	LF uint32
	CR uint32
}

// Add combines two summaries.
func (s TextSummary) Add(other TextSummary) TextSummary {
	return TextSummary{
		Bytes: s.Bytes + other.Bytes,
		LF:    s.LF + other.LF,
		CR:    s.CR + other.CR,
	}
}

// Breaks returns the number of line breaks, counting '\r' when cr is set
// and '\n' otherwise.
func (s TextSummary) Breaks(cr bool) uint32 {
	if cr {
		return s.CR
	}
	return s.LF
}

// ComputeSummary calculates the metrics of s.
func ComputeSummary(s string) TextSummary {
	return TextSummary{
		Bytes: ByteOffset(len(s)),
		LF:    uint32(strings.Count(s, "\n")),
		CR:    uint32(strings.Count(s, "\r")),
	}
}

// breakByte returns the byte that ends a line.
func breakByte(cr bool) byte {
	if cr {
		return '\r'
	}
	return '\n'
}
