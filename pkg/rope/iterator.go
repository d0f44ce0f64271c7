package rope

// Chunks returns the rope's leaf substrings in order.
func (r *Rope) Chunks() []string { return collectChunks(r.CursorFront()) }

// ChunksRev returns the rope's leaf substrings in reverse order.
func (r *Rope) ChunksRev() []string { return collectChunksRev(r.CursorBack()) }

func collectChunks(c *Cursor) []string {
	var out []string
	for {
		out = append(out, c.CurrentChunk())
		if !c.MoveNextChunk() {
			break
		}
	}
	return out
}

func collectChunksRev(c *Cursor) []string {
	var out []string
	for {
		out = append(out, c.CurrentChunk())
		if !c.MovePrevChunk() {
			break
		}
	}
	return out
}

// Bytes returns the rope's content as a flat byte slice, walking chunk
// by chunk.
func (r *Rope) Bytes() []byte {
	var out []byte
	for _, chunk := range r.Chunks() {
		out = append(out, chunk...)
	}
	return out
}

// BytesRev returns the rope's bytes in reverse order.
func (r *Rope) BytesRev() []byte {
	chunks := r.ChunksRev()
	var out []byte
	for _, chunk := range chunks {
		for i := len(chunk) - 1; i >= 0; i-- {
			out = append(out, chunk[i])
		}
	}
	return out
}

// Chars returns the rope's content as a slice of runes, walking chunk
// by chunk.
func (r *Rope) Chars() []rune {
	var out []rune
	for _, chunk := range r.Chunks() {
		out = append(out, []rune(chunk)...)
	}
	return out
}

// CharsRev returns the rope's scalars in reverse order.
func (r *Rope) CharsRev() []rune {
	chunks := r.ChunksRev()
	var out []rune
	for _, chunk := range chunks {
		runes := []rune(chunk)
		for i := len(runes) - 1; i >= 0; i-- {
			out = append(out, runes[i])
		}
	}
	return out
}
