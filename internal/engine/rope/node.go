package rope

import "strings"

// Tree shape constants.
const (
	// MaxChunkSize is the largest leaf before it is split.
	MaxChunkSize = 1024

	// TargetChunkSize is the leaf size used when splitting text, leaving
	// room for edits before a leaf overflows.
	TargetChunkSize = MaxChunkSize / 2

	// MinChunkSize is the size below which a leaf merges with a neighbor.
	MinChunkSize = MaxChunkSize / 4

	// MaxChildren is the most children an internal node holds.
	MaxChildren = 16

	// MinChildren is the count below which an internal node merges with a
	// neighbor.
	MinChildren = MaxChildren / 4
)

// node is a rope tree node. Leaves (height 0) hold text; internal nodes
// hold children of equal height. Nodes are never modified once built.
type node struct {
	height   uint8
	summary  TextSummary
	text     string
	children []*node
}

func newLeaf(text string) *node {
	return &node{summary: ComputeSummary(text), text: text}
}

// newInternal builds a parent for children, which must share a height.
func newInternal(children []*node) *node {
	n := &node{
		height:   children[0].height + 1,
		children: append([]*node(nil), children...),
	}
	for _, c := range children {
		n.summary = n.summary.Add(c.summary)
	}
	return n
}

func (n *node) isLeaf() bool {
	return n.height == 0
}

func (n *node) len() ByteOffset {
	return n.summary.Bytes
}

// leaves cuts s into leaves of at most MaxChunkSize bytes, splitting only
// at UTF-8 sequence starts.
func leaves(s string) []*node {
	if s == "" {
		return nil
	}
	out := make([]*node, 0, len(s)/TargetChunkSize+1)
	for len(s) > MaxChunkSize {
		cut := chunkBoundary(s, TargetChunkSize)
		out = append(out, newLeaf(s[:cut]))
		s = s[cut:]
	}
	return append(out, newLeaf(s))
}

// chunkBoundary returns the UTF-8 sequence start at or before target.
func chunkBoundary(s string, target int) int {
	pos := target
	for pos > 0 && !isUTF8Start(s[pos]) {
		pos--
	}
	if pos == 0 {
		pos = target
		for pos < len(s) && !isUTF8Start(s[pos]) {
			pos++
		}
	}
	return pos
}

func isUTF8Start(b byte) bool {
	return b&0xC0 != 0x80
}

// group packs nodes of one height under as few parents as MaxChildren
// allows, spreading them evenly.
func group(nodes []*node) []*node {
	n := (len(nodes) + MaxChildren - 1) / MaxChildren
	out := make([]*node, 0, n)
	for i := 0; i < n; i++ {
		lo, hi := i*len(nodes)/n, (i+1)*len(nodes)/n
		out = append(out, newInternal(nodes[lo:hi]))
	}
	return out
}

// build returns the root of a tree over nodes of one height, or nil.
func build(nodes []*node) *node {
	if len(nodes) == 0 {
		return nil
	}
	for len(nodes) > 1 {
		nodes = group(nodes)
	}
	return nodes[0]
}

// find returns the first child whose span reaches offset and the offset
// at which that child starts.
func (n *node) find(offset ByteOffset) (int, ByteOffset) {
	var base ByteOffset
	last := len(n.children) - 1
	for i, c := range n.children {
		if offset <= base+c.len() || i == last {
			return i, base
		}
		base += c.len()
	}
	return last, base
}

// replace returns the nodes, all of n's height, that hold n's text with
// [start, end) replaced by text. The result is empty when no text is left
// and holds several nodes when n overflowed.
func (n *node) replace(start, end ByteOffset, text string) []*node {
	if n.isLeaf() {
		return leaves(n.text[:start] + text + n.text[end:])
	}

	i, iBase := n.find(start)
	j, jBase := n.find(end)

	var repl []*node
	if i == j {
		repl = n.children[i].replace(start-iBase, end-iBase, text)
	} else {
		repl = n.children[i].replace(start-iBase, n.children[i].len(), text)
		repl = append(repl, n.children[j].replace(0, end-jBase, "")...)
	}

	kids := make([]*node, 0, len(n.children)-(j-i+1)+len(repl))
	kids = append(kids, n.children[:i]...)
	kids = append(kids, repl...)
	kids = append(kids, n.children[j+1:]...)
	kids = mergeSmall(kids)

	switch {
	case len(kids) == 0:
		return nil
	case len(kids) > MaxChildren:
		return group(kids)
	default:
		return []*node{newInternal(kids)}
	}
}

// mergeSmall joins neighbors when one of them is underfull and the pair
// fits in one node.
func mergeSmall(kids []*node) []*node {
	out := make([]*node, 0, len(kids))
	for _, k := range kids {
		if len(out) > 0 {
			if m := merge(out[len(out)-1], k); m != nil {
				out[len(out)-1] = m
				continue
			}
		}
		out = append(out, k)
	}
	return out
}

func merge(a, b *node) *node {
	if a.isLeaf() {
		small := len(a.text) < MinChunkSize || len(b.text) < MinChunkSize
		if small && len(a.text)+len(b.text) <= MaxChunkSize {
			return newLeaf(a.text + b.text)
		}
		return nil
	}
	small := len(a.children) < MinChildren || len(b.children) < MinChildren
	if small && len(a.children)+len(b.children) <= MaxChildren {
		kids := make([]*node, 0, len(a.children)+len(b.children))
		kids = append(kids, a.children...)
		return newInternal(append(kids, b.children...))
	}
	return nil
}

// appendRange writes the text in [start, end) to sb.
func (n *node) appendRange(sb *strings.Builder, start, end ByteOffset) {
	if n.isLeaf() {
		sb.WriteString(n.text[start:end])
		return
	}
	var base ByteOffset
	for _, c := range n.children {
		if base >= end {
			return
		}
		if base+c.len() > start {
			c.appendRange(sb, max(start-base, 0), min(end-base, c.len()))
		}
		base += c.len()
	}
}

// breakEnd returns the offset just past the k-th line break, k >= 1.
func (n *node) breakEnd(k uint32, cr bool) ByteOffset {
	if n.isLeaf() {
		sep := breakByte(cr)
		i := 0
		for k > 0 {
			j := strings.IndexByte(n.text[i:], sep)
			if j < 0 {
				return n.len()
			}
			i += j + 1
			k--
		}
		return ByteOffset(i)
	}

	var base ByteOffset
	for _, c := range n.children {
		b := c.summary.Breaks(cr)
		if k <= b {
			return base + c.breakEnd(k, cr)
		}
		k -= b
		base += c.len()
	}
	return n.len()
}

// breaksBefore counts the line breaks in [0, offset).
func (n *node) breaksBefore(offset ByteOffset, cr bool) uint32 {
	if n.isLeaf() {
		return uint32(strings.Count(n.text[:offset], string(breakByte(cr))))
	}

	var total uint32
	for _, c := range n.children {
		if offset < c.len() {
			return total + c.breaksBefore(offset, cr)
		}
		total += c.summary.Breaks(cr)
		offset -= c.len()
	}
	return total
}
