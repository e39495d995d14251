package location

// Interpolated returns the sentinel point span used for diagnostics anchored
// to a synthesized node — one with no position of its own in any source
// file, such as a statement contributed by a plugin during validation.
//
// The sentinel position has Line=-1, Column=-1, Byte=-1. This is distinct
// from the zero/unknown position (Line=0, Column=0): IsZero() only reports
// true for the latter, so an interpolated span is never mistaken for an
// absent one.
func Interpolated(source SourceID) Span {
	pos := Position{Line: -1, Column: -1, Byte: -1}
	return Span{Source: source, Start: pos, End: pos}
}

// IsInterpolated reports whether the span is the interpolated sentinel
// produced by [Interpolated].
func (s Span) IsInterpolated() bool {
	return s.Start.Line == -1 && s.Start.Column == -1 &&
		s.End.Line == -1 && s.End.Column == -1
}
