package dialect

import (
	"strconv"
	"strings"
)

type Postgres struct{}

func NewPostgresDialect() Dialect {
	return &Postgres{}
}

// EscapeIdentifier doubles every embedded double quote.
func (Postgres) EscapeIdentifier(name string) string {
	return strings.ReplaceAll(name, `"`, `""`)
}

// EscapeLiteral doubles every embedded single quote.
func (Postgres) EscapeLiteral(text string) string {
	return strings.ReplaceAll(text, "'", "''")
}

// QuoteIdentifier wraps an already escaped name in double quotes.
func (Postgres) QuoteIdentifier(name string) string {
	return `"` + name + `"`
}

// QuoteLiteral wraps already escaped text in single quotes.
func (Postgres) QuoteLiteral(text string) string {
	return "'" + text + "'"
}

func (Postgres) Placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

var _ Dialect = Postgres{}
