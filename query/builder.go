package query

import "go.uber.org/multierr"

// Builder assembles a fragment piece by piece. Errors from invalid
// identifiers are collected and reported together by Build, so calls can be
// chained without checking each one.
type Builder struct {
	segments []string
	values   []any
	errs     error
}

func NewBuilder() *Builder {
	return &Builder{segments: []string{""}}
}

// Text appends literal statement text.
func (b *Builder) Text(s string) *Builder {
	b.segments[len(b.segments)-1] += s
	return b
}

// Value interpolates v. Markers and fragments are inlined, anything else is
// bound as a param.
func (b *Builder) Value(v any) *Builder {
	b.values = append(b.values, v)
	b.segments = append(b.segments, "")
	return b
}

// Ident interpolates a quoted identifier.
func (b *Builder) Ident(name any) *Builder {
	id, err := Ident(name)
	if err != nil {
		b.AddError(err)
		return b
	}
	return b.Value(id)
}

// Raw interpolates text verbatim.
func (b *Builder) Raw(v any) *Builder { return b.Value(Raw(v)) }

// Lit interpolates a quoted string literal.
func (b *Builder) Lit(v any) *Builder { return b.Value(Lit(v)) }

// Append interpolates another fragment or marker.
func (b *Builder) Append(e Expr) *Builder { return b.Value(fragmentOf(e)) }

// AddError records err. Nil errors are ignored.
func (b *Builder) AddError(err error) {
	b.errs = multierr.Append(b.errs, err)
}

func (b *Builder) HasErrors() bool { return b.errs != nil }

// Errors returns every recorded error.
func (b *Builder) Errors() []error { return multierr.Errors(b.errs) }

// Build returns the fragment, or the combined recorded errors.
func (b *Builder) Build() (Fragment, error) {
	if b.errs != nil {
		return Fragment{}, b.errs
	}
	return SQL(b.segments, b.values...), nil
}
