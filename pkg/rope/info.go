package rope

// Info is the per-subtree summary carried alongside byte length: a
// character count (UTF-8 code points) and a line-break count. Line
// count as exposed to callers is Lines+1 (an empty or single-line
// chunk has zero breaks but one line).
type Info struct {
	Chars int
	Lines int
}

// Add implements rbtree.Info.
func (i Info) Add(other Info) Info {
	return Info{Chars: i.Chars + other.Chars, Lines: i.Lines + other.Lines}
}

// Sub implements rbtree.Info.
func (i Info) Sub(other Info) Info {
	return Info{Chars: i.Chars - other.Chars, Lines: i.Lines - other.Lines}
}
