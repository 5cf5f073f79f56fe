package query

var defaultSeparator = Text(", ")

// Join concatenates items with sep between each pair. A nil sep means ", ".
// No items yields the empty fragment and a single item is returned as a
// fragment without any separator. Nil items join as empty fragments.
func Join(items []Expr, sep Expr) Fragment {
	if sep == nil {
		sep = defaultSeparator
	}

	switch len(items) {
	case 0:
		return Text("")
	case 1:
		return fragmentOf(items[0])
	}

	separator := fragmentOf(sep)
	out := fragmentOf(items[0])
	for _, item := range items[1:] {
		out = SQL([]string{"", "", "", ""}, out, separator, fragmentOf(item))
	}
	return out
}

// Idents builds a comma separated identifier list, e.g. for a column list.
func Idents(names ...string) (Fragment, error) {
	items := make([]Expr, 0, len(names))
	for _, name := range names {
		id, err := Ident(name)
		if err != nil {
			return Fragment{}, err
		}
		items = append(items, id)
	}
	return Join(items, nil), nil
}

// Values builds a comma separated list of bound params, e.g. for IN (...).
func Values(values ...any) Fragment {
	if len(values) == 0 {
		return Text("")
	}
	segs := make([]string, len(values)+1)
	for i := 1; i < len(values); i++ {
		segs[i] = ", "
	}
	return SQL(segs, values...)
}
