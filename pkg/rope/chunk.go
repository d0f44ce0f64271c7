package rope

// Chunk is a bounded, immutable string leaf. The tree never stores more
// than one Chunk's worth of bytes contiguously; everything above it is
// internal-node bookkeeping.
type Chunk string

// isUTF8LeadingByte reports whether b starts a UTF-8 scalar (as opposed
// to being a continuation byte, 0b10xxxxxx).
func isUTF8LeadingByte(b byte) bool {
	return int8(b) >= -0x40
}

// Len implements rbtree.Chunk.
func (c Chunk) Len() int { return len(c) }

// IsBoundary implements rbtree.Chunk. A split is legal at the edges, at
// any UTF-8 leading byte, except immediately between a CR and a
// following LF: splitting a CR LF pair would change the line-break
// count depending only on how content happens to be chunked.
func (c Chunk) IsBoundary(i int) bool {
	if i == 0 || i == len(c) {
		return true
	}
	if !isUTF8LeadingByte(c[i]) {
		return false
	}
	return !(c[i-1] == 0x0D && c[i] == 0x0A)
}

// Slice implements rbtree.Chunk. start and end must be legal
// boundaries.
func (c Chunk) Slice(start, end int) Chunk { return c[start:end] }

// Append implements rbtree.Chunk.
func (c Chunk) Append(other Chunk) Chunk { return c + other }

// Summary implements rbtree.Chunk: counts UTF-8 leading bytes as
// characters and 0x0A bytes as line breaks.
func (c Chunk) Summary() Info {
	var chars, lines int
	for i := 0; i < len(c); i++ {
		if isUTF8LeadingByte(c[i]) {
			chars++
		}
		if c[i] == 0x0A {
			lines++
		}
	}
	return Info{Chars: chars, Lines: lines}
}

// charIndexToByteIndex returns the byte offset of the charIndex'th
// character within c, or len(c) if charIndex >= the chunk's char count.
func (c Chunk) charIndexToByteIndex(charIndex int) int {
	if charIndex <= 0 {
		return 0
	}
	seen := 0
	for i := 0; i < len(c); i++ {
		if isUTF8LeadingByte(c[i]) {
			if seen == charIndex {
				return i
			}
			seen++
		}
	}
	return len(c)
}

// lineIndexToByteIndex returns the byte offset immediately after the
// lineIndex'th 0x0A within c, or len(c) if there are fewer breaks.
func (c Chunk) lineIndexToByteIndex(lineIndex int) int {
	if lineIndex <= 0 {
		return 0
	}
	seen := 0
	for i := 0; i < len(c); i++ {
		if c[i] == 0x0A {
			seen++
			if seen == lineIndex {
				return i + 1
			}
		}
	}
	return len(c)
}
