package query

import (
	"fmt"

	"github.com/Konsultn-Engineering/sqltag/utils"
)

// Expr is anything that can stand in for a fragment: a Fragment itself or
// one of the inlineable markers.
type Expr interface {
	Fragment() Fragment
}

// Fragment is a composable piece of a statement: text segments with a bound
// parameter slot between each adjacent pair. There is always exactly one more
// segment than there are params.
//
// A Fragment is immutable. The zero value is the empty fragment.
type Fragment struct {
	segments []string
	params   []any
}

var emptySegments = []string{""}

// SQL builds a Fragment from literal segments and the values interpolated
// between them, inlining markers and nested fragments into the text. It
// panics with ErrSegmentMismatch unless len(segments) == len(values)+1.
func SQL(segments []string, values ...any) Fragment {
	if len(segments) != len(values)+1 {
		panic(fmt.Errorf("%w: %d segments, %d values", ErrSegmentMismatch, len(segments), len(values)))
	}

	segs, params := Flatten(segments, values)

	// Copy so the fragment never aliases caller-owned slices.
	f := Fragment{
		segments: make([]string, 0, len(segs)),
		params:   make([]any, 0, len(params)),
	}
	for i, s := range segs {
		f.segments = append(f.segments, s)
		if i < len(params) {
			f.params = append(f.params, params[i])
		}
	}
	return f
}

// Text returns a fragment holding s and no params.
func Text(s string) Fragment {
	return Fragment{segments: []string{s}}
}

// Fragment implements Expr.
func (f Fragment) Fragment() Fragment { return f }

// fragmentOf converts e, treating a nil Expr or a nil pointer to a marker or
// fragment as the empty fragment.
func fragmentOf(e Expr) Fragment {
	switch p := e.(type) {
	case nil:
		return Fragment{}
	case *Fragment:
		if p == nil {
			return Fragment{}
		}
	case *Identifier:
		if p == nil {
			return Fragment{}
		}
	case *RawText:
		if p == nil {
			return Fragment{}
		}
	case *Literal:
		if p == nil {
			return Fragment{}
		}
	}
	return e.Fragment()
}

// Segments returns a copy of the text segments.
func (f Fragment) Segments() []string {
	segs := f.segs()
	out := make([]string, len(segs))
	copy(out, segs)
	return out
}

// Params returns a copy of the bound values in placeholder order.
func (f Fragment) Params() []any {
	out := make([]any, len(f.params))
	copy(out, f.params)
	return out
}

// NumParams returns how many placeholders the fragment renders.
func (f Fragment) NumParams() int { return len(f.params) }

// IsEmpty reports whether f has no params and only zero-length segments.
// Whitespace counts as content.
func (f Fragment) IsEmpty() bool {
	if len(f.params) > 0 {
		return false
	}
	for _, s := range f.segments {
		if s != "" {
			return false
		}
	}
	return true
}

// Append returns a new fragment with e concatenated after f. A nil e appends
// nothing.
func (f Fragment) Append(e Expr) Fragment {
	return SQL([]string{"", "", ""}, f, fragmentOf(e))
}

// Fingerprint hashes the segments. Params do not affect it, so two fragments
// with the same fingerprint render the same text.
func (f Fragment) Fingerprint() uint64 {
	return utils.FingerprintStrings(f.segs())
}

// Render renders f with placeholders numbered after the external values.
func (f Fragment) Render(external ...any) Query {
	return Render(f, external...)
}

// String returns the rendered text with placeholders starting at $1.
func (f Fragment) String() string {
	return defaultRenderer.text(f, 0)
}

func (f Fragment) segs() []string {
	if len(f.segments) == 0 {
		return emptySegments
	}
	return f.segments
}
