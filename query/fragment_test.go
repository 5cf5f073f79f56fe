package query

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlattenOpaqueValuesUnchanged(t *testing.T) {
	blob := []byte{0xde, 0xad}
	tests := []struct {
		name     string
		segments []string
		values   []any
	}{
		{"NoValues", []string{"SELECT 1"}, nil},
		{"OneValue", []string{"SELECT * FROM users WHERE id = ", ""}, []any{1}},
		{"Mixed", []string{"a = ", " AND b = ", " AND c = ", " AND d = ", ""}, []any{"x", nil, blob, true}},
		{"Adjacent", []string{"", "", ""}, []any{1, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs, vals := Flatten(tt.segments, tt.values)
			assert.Equal(t, tt.segments, segs)
			assert.Equal(t, tt.values, vals)
		})
	}
}

func TestFlattenInlinesMarkers(t *testing.T) {
	segs, vals := Flatten(
		[]string{"SELECT ", " FROM ", " WHERE status = ", " AND x = ", " LIMIT ", ""},
		[]any{MustIdent("name"), MustIdent("users"), Lit("it's"), 5, Raw(10)},
	)

	assert.Equal(t, []string{`SELECT "name" FROM "users" WHERE status = 'it''s' AND x = `, " LIMIT 10"}, segs)
	assert.Equal(t, []any{5}, vals)
}

func TestSQLBasic(t *testing.T) {
	f := SQL([]string{"SELECT * FROM users WHERE id = ", ""}, 1)

	assert.Equal(t, []string{"SELECT * FROM users WHERE id = ", ""}, f.Segments())
	assert.Equal(t, []any{1}, f.Params())

	q := f.Render()
	assert.Equal(t, "SELECT * FROM users WHERE id = $1", q.Text)
	assert.Equal(t, []any{1}, q.Values)
}

func TestSQLNestedFragment(t *testing.T) {
	inner := SQL([]string{"LOWER(", ")"}, "foo")
	f := SQL([]string{"SELECT * FROM users WHERE name = ", ""}, inner)

	assert.Equal(t, []string{"SELECT * FROM users WHERE name = LOWER(", ")"}, f.Segments())
	assert.Equal(t, []any{"foo"}, f.Params())
	assert.Equal(t, "SELECT * FROM users WHERE name = LOWER($1)", f.String())
}

func TestSQLNestingMatchesHandInlined(t *testing.T) {
	nested := SQL([]string{"a ", " b ", " c"}, 1, SQL([]string{"x ", " y ", " z"}, 2, 3))
	inlined := SQL([]string{"a ", " b x ", " y ", " z c"}, 1, 2, 3)

	assert.Equal(t, inlined.Segments(), nested.Segments())
	assert.Equal(t, inlined.Params(), nested.Params())
}

func TestSQLDeepNesting(t *testing.T) {
	f := SQL([]string{"v = ", ""}, 0)
	for i := 1; i <= 50; i++ {
		f = SQL([]string{"(", " + ", ")"}, f, i)
	}

	require.Equal(t, 51, f.NumParams())
	assert.Len(t, f.Segments(), 52)
	for i, p := range f.Params() {
		assert.Equal(t, i, p)
	}
}

func TestSQLParamlessNestedFragment(t *testing.T) {
	cols := SQL([]string{`"id", "name"`})
	f := SQL([]string{"SELECT ", " FROM users WHERE id = ", ""}, cols, 9)

	assert.Equal(t, []string{`SELECT "id", "name" FROM users WHERE id = `, ""}, f.Segments())
	assert.Equal(t, []any{9}, f.Params())
}

func TestSQLZeroFragmentAndPointers(t *testing.T) {
	inner := SQL([]string{"x = ", ""}, 2)
	id := MustIdent("t")

	f := SQL([]string{"a", "b", "c", ""}, Fragment{}, &inner, &id)
	assert.Equal(t, []string{"abx = ", `c"t"`}, f.Segments())
	assert.Equal(t, []any{2}, f.Params())
}

func TestSQLOpaqueValuesPassThrough(t *testing.T) {
	u := uuid.New()
	var missing *string

	f := SQL([]string{"INSERT INTO t VALUES (", ", ", ", ", ")"}, u, nil, missing)
	assert.Equal(t, []any{u, nil, missing}, f.Params())
	assert.Equal(t, "INSERT INTO t VALUES ($1, $2, $3)", f.String())
}

func TestSQLMismatchPanics(t *testing.T) {
	assert.Panics(t, func() { SQL([]string{"a"}, 1) })
	assert.Panics(t, func() { SQL([]string{"a", "b", "c"}, 1) })
	assert.Panics(t, func() { SQL(nil) })
}

func TestSQLDoesNotAliasInput(t *testing.T) {
	segs := []string{"a = ", ""}
	vals := []any{1}
	f := SQL(segs, vals...)

	segs[0] = "b = "
	vals[0] = 2
	assert.Equal(t, []string{"a = ", ""}, f.Segments())
	assert.Equal(t, []any{1}, f.Params())

	out := f.Segments()
	out[0] = "mutated"
	params := f.Params()
	params[0] = "mutated"
	assert.Equal(t, []string{"a = ", ""}, f.Segments())
	assert.Equal(t, []any{1}, f.Params())
}

func TestFragmentInvariant(t *testing.T) {
	fragments := []Fragment{
		{},
		Text("x"),
		SQL([]string{"a", "b"}, 1),
		SQL([]string{"a", "b"}, Raw("r")),
		SQL([]string{"", "", ""}, SQL([]string{"", ""}, 1), SQL([]string{"", "", ""}, 2, 3)),
		Join([]Expr{Text("a"), SQL([]string{"", ""}, 1)}, nil),
		Values(1, 2, 3),
	}

	for _, f := range fragments {
		assert.Equal(t, f.NumParams()+1, len(f.Segments()))
	}
}

func TestIsEmpty(t *testing.T) {
	tests := []struct {
		name     string
		f        Fragment
		expected bool
	}{
		{"Zero", Fragment{}, true},
		{"EmptyText", Text(""), true},
		{"EmptySegments", SQL([]string{"", "", ""}, Raw(""), Raw("")), true},
		{"Whitespace", Text(" "), false},
		{"Text", Text("SELECT 1"), false},
		{"NilParam", SQL([]string{"", ""}, nil), false},
		{"JoinNothing", Join(nil, nil), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.f.IsEmpty())
		})
	}
}

func TestAppend(t *testing.T) {
	f := SQL([]string{"a = ", ""}, 1).Append(Raw(" AND ")).Append(SQL([]string{"b = ", ""}, 2))

	assert.Equal(t, "a = $1 AND b = $2", f.String())
	assert.Equal(t, []any{1, 2}, f.Params())
}

func TestAppendNil(t *testing.T) {
	f := SQL([]string{"a = ", ""}, 1).Append(nil).Append((*Literal)(nil))

	assert.Equal(t, "a = $1", f.String())
	assert.Equal(t, []any{1}, f.Params())
}

func TestFingerprintIgnoresParams(t *testing.T) {
	a := SQL([]string{"id = ", ""}, 1)
	b := SQL([]string{"id = ", ""}, 2)
	c := SQL([]string{"name = ", ""}, 1)

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
	assert.Equal(t, Fragment{}.Fingerprint(), Text("").Fingerprint())
}
