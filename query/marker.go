package query

import (
	"fmt"
	"strconv"

	"github.com/Konsultn-Engineering/sqltag/dialect"
)

var pg = dialect.Postgres{}

// Identifier is a quoted name inlined into the statement text, such as a
// table or column. The payload is escaped when the marker is built.
type Identifier struct {
	name string
}

// Ident builds an Identifier. The name must be a non-empty string.
func Ident(name any) (Identifier, error) {
	s, ok := name.(string)
	if !ok {
		return Identifier{}, fmt.Errorf("%w: identifier must be a string, got %T", ErrInvalidArgument, name)
	}
	if s == "" {
		return Identifier{}, fmt.Errorf("%w: identifier must not be empty", ErrInvalidArgument)
	}
	return Identifier{name: pg.EscapeIdentifier(s)}, nil
}

// MustIdent is like Ident but panics on invalid input.
func MustIdent(name any) Identifier {
	id, err := Ident(name)
	if err != nil {
		panic(err)
	}
	return id
}

func (i Identifier) String() string     { return pg.QuoteIdentifier(i.name) }
func (i Identifier) Fragment() Fragment { return Text(i.String()) }

// RawText is inserted into the statement text with no escaping at all.
// Never build one from untrusted input.
type RawText struct {
	text string
}

// Raw builds a RawText marker. Numbers are formatted in decimal.
func Raw(v any) RawText {
	return RawText{text: stringify(v)}
}

func (r RawText) String() string     { return r.text }
func (r RawText) Fragment() Fragment { return Text(r.text) }

// Literal is a single quoted string constant inlined into the statement text.
type Literal struct {
	text string
}

// Lit builds a Literal. Non-string input is formatted first.
func Lit(v any) Literal {
	return Literal{text: pg.EscapeLiteral(stringify(v))}
}

func (l Literal) String() string     { return pg.QuoteLiteral(l.text) }
func (l Literal) Fragment() Fragment { return Text(l.String()) }

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case int:
		return strconv.Itoa(val)
	case int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
