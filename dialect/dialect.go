package dialect

// Dialect renders the parts of a statement that are inlined into its text
// rather than bound as parameters.
type Dialect interface {
	QuoteIdentifier(name string) string
	QuoteLiteral(text string) string
	EscapeIdentifier(name string) string
	EscapeLiteral(text string) string
	Placeholder(n int) string
}
