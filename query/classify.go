package query

// Kind is the category an interpolated value falls into.
type Kind int

const (
	KindOpaque Kind = iota
	KindIdentifier
	KindRaw
	KindLiteral
	KindFragment
)

func (k Kind) String() string {
	switch k {
	case KindIdentifier:
		return "identifier"
	case KindRaw:
		return "raw"
	case KindLiteral:
		return "literal"
	case KindFragment:
		return "fragment"
	default:
		return "opaque"
	}
}

// Classify reports how v is treated when interpolated. Anything that is not a
// marker or a fragment becomes a bound parameter.
func Classify(v any) Kind {
	switch unwrap(v).(type) {
	case Identifier:
		return KindIdentifier
	case RawText:
		return KindRaw
	case Literal:
		return KindLiteral
	case Fragment:
		return KindFragment
	default:
		return KindOpaque
	}
}

// unwrap dereferences non-nil pointers to markers and fragments. Any other
// value, including typed nil pointers, is returned untouched.
func unwrap(v any) any {
	switch p := v.(type) {
	case *Identifier:
		if p != nil {
			return *p
		}
	case *RawText:
		if p != nil {
			return *p
		}
	case *Literal:
		if p != nil {
			return *p
		}
	case *Fragment:
		if p != nil {
			return *p
		}
	}
	return v
}
