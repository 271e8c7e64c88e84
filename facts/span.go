package facts

// Span is a half-open byte range [Start, End) in a file's source text.
type Span struct {
	Start int
	End   int
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int { return s.End - s.Start }

// Contains reports whether pos falls within [Start, End).
func (s Span) Contains(pos int) bool { return pos >= s.Start && pos < s.End }

// Before reports whether s starts strictly before other.
func (s Span) Before(other Span) bool { return s.Start < other.Start }
