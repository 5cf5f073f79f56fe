package query

import (
	"sync"
	"testing"

	"github.com/Konsultn-Engineering/sqltag/cache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWithExternalValues(t *testing.T) {
	f := SQL([]string{"SELECT * FROM users WHERE id = $1 AND name = ", ""}, "john")

	q := Render(f, 1)
	assert.Equal(t, "SELECT * FROM users WHERE id = $1 AND name = $2", q.Text)
	assert.Equal(t, []any{1, "john"}, q.Values)
}

func TestRenderPlaceholderNumbering(t *testing.T) {
	f := SQL([]string{"INSERT INTO t (a, b, c) VALUES (", ", ", ", ", ")"}, 1, "two", 3.0)

	q := f.Render()
	assert.Equal(t, "INSERT INTO t (a, b, c) VALUES ($1, $2, $3)", q.Text)
	assert.Equal(t, []any{1, "two", 3.0}, q.Values)

	q = f.Render("x", "y", "z", "w", "v", "u", "s", "r", "q")
	assert.Equal(t, "INSERT INTO t (a, b, c) VALUES ($10, $11, $12)", q.Text)
	assert.Len(t, q.Values, 12)
}

func TestRenderNoParams(t *testing.T) {
	id := MustIdent("users")
	f := SQL([]string{"SELECT * FROM ", ""}, id)

	q := Render(f)
	assert.Equal(t, `SELECT * FROM "users"`, q.Text)
	assert.Empty(t, q.Values)

	q = Render(MustIdent(`users"; DROP TABLE admin; --`))
	assert.Equal(t, `"users""; DROP TABLE admin; --"`, q.Text)
	assert.Empty(t, q.Values)
}

func TestRenderNilExpr(t *testing.T) {
	q := Render(nil, 7)
	assert.Equal(t, "", q.Text)
	assert.Equal(t, []any{7}, q.Values)

	var id *Identifier
	q = Render(id)
	assert.Equal(t, "", q.Text)
	assert.Empty(t, q.Values)

	q = Render((*Fragment)(nil))
	assert.Equal(t, "", q.Text)
}

func TestRenderDoesNotValidateExternalValues(t *testing.T) {
	f := SQL([]string{"SELECT ", " WHERE id = ", ""}, Raw("$1, $7"), 5)

	q := Render(f)
	assert.Equal(t, "SELECT $1, $7 WHERE id = $1", q.Text)
	assert.Equal(t, []any{5}, q.Values)
}

func TestRenderRoundTrip(t *testing.T) {
	segments := []string{"SELECT ", " FROM ", " WHERE name = ", " AND age > ", " AND note = ", ""}
	values := []any{Raw("count(*)"), MustIdent("people"), "ann", 30, Lit("n/a")}

	q := Render(SQL(segments, values...))
	assert.Equal(t, `SELECT count(*) FROM "people" WHERE name = $1 AND age > $2 AND note = 'n/a'`, q.Text)
	assert.Equal(t, []any{"ann", 30}, q.Values)
}

func TestRendererTextCache(t *testing.T) {
	c, err := cache.NewTextCache(16)
	require.NoError(t, err)
	r := NewRenderer(WithTextCache(c))

	first := r.Render(SQL([]string{"SELECT * FROM users WHERE id = ", ""}, 1))
	second := r.Render(SQL([]string{"SELECT * FROM users WHERE id = ", ""}, 2))

	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, []any{2}, second.Values)
	assert.Equal(t, 1, c.Len())

	shifted := r.Render(SQL([]string{"SELECT * FROM users WHERE id = ", ""}, 3), "ext")
	assert.Equal(t, "SELECT * FROM users WHERE id = $2", shifted.Text)
	assert.Equal(t, 2, c.Len())

	// Parameterless fragments never touch the cache.
	r.Render(Text("SELECT 1"))
	assert.Equal(t, 2, c.Len())
}

func TestRendererConcurrentUse(t *testing.T) {
	c, err := cache.NewTextCache(8)
	require.NoError(t, err)
	r := NewRenderer(WithTextCache(c))
	f := SQL([]string{"a = ", " AND b = ", ""}, 1, 2)

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			q := r.Render(f, i)
			assert.Equal(t, "a = $2 AND b = $3", q.Text)
			assert.Equal(t, []any{i, 1, 2}, q.Values)
		}(i)
	}
	wg.Wait()
}

func BenchmarkRender(b *testing.B) {
	inner := SQL([]string{"LOWER(", ")"}, "foo")
	f := SQL([]string{"SELECT * FROM ", " WHERE name = ", " AND id = ", ""}, MustIdent("users"), inner, 1)

	c, _ := cache.NewTextCache(64)
	renderers := map[string]*Renderer{
		"NoCache": NewRenderer(),
		"Cache":   NewRenderer(WithTextCache(c)),
	}

	for name, r := range renderers {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				_ = r.Render(f)
			}
		})
	}
}
