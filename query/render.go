package query

import (
	"strings"

	"github.com/Konsultn-Engineering/sqltag/cache"
	"github.com/Konsultn-Engineering/sqltag/dialect"
)

// Query is a rendered statement ready for a driver: text with positional
// placeholders and the values bound to them, in order.
type Query struct {
	Text   string
	Values []any
}

// Renderer turns fragments into Query values. The zero value is not usable;
// build one with NewRenderer.
type Renderer struct {
	dialect dialect.Dialect
	cache   *cache.TextCache
}

type RendererOption func(*Renderer)

// WithTextCache memoises rendered texts keyed by segment fingerprint.
func WithTextCache(c *cache.TextCache) RendererOption {
	return func(r *Renderer) {
		r.cache = c
	}
}

func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{dialect: dialect.NewPostgresDialect()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var defaultRenderer = NewRenderer()

// Render renders e with no cache. See Renderer.Render.
func Render(e Expr, external ...any) Query {
	return defaultRenderer.Render(e, external...)
}

// Render produces the final text and values for e. External values are
// treated as already numbered $1..$n, so the fragment's own placeholders
// start at $n+1 and its params follow them in Values.
//
// Nothing is validated: placeholders written by hand inside raw text must
// agree with the external values, and that is on the caller. A nil e renders
// as the empty fragment.
func (r *Renderer) Render(e Expr, external ...any) Query {
	f := fragmentOf(e)

	values := make([]any, 0, len(external)+len(f.params))
	values = append(values, external...)
	values = append(values, f.params...)

	return Query{
		Text:   r.text(f, len(external)),
		Values: values,
	}
}

func (r *Renderer) text(f Fragment, offset int) string {
	segs := f.segs()

	// Parameterless fragments render to their only segment.
	if len(f.params) == 0 {
		return strings.Join(segs, "")
	}

	var key cache.Key
	if r.cache != nil {
		key = cache.Key{Fingerprint: f.Fingerprint(), Offset: offset}
		if text, ok := r.cache.Get(key, segs); ok {
			return text
		}
	}

	var sb strings.Builder
	index := offset + 1
	for i, s := range segs {
		sb.WriteString(s)
		if i < len(f.params) {
			sb.WriteString(r.dialect.Placeholder(index))
			index++
		}
	}
	text := sb.String()

	if r.cache != nil {
		r.cache.Set(key, segs, text)
	}
	return text
}
