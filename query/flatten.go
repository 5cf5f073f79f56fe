package query

import "strings"

// Flatten merges every identifier, raw, literal and nested fragment value into
// the surrounding text. The returned values are the remaining opaque params in
// their original order, and the returned segments outnumber them by one.
//
// When values is empty the inputs are returned as is.
func Flatten(segments []string, values []any) ([]string, []any) {
	if len(values) == 0 {
		return segments, values
	}

	outSegs := make([]string, 0, len(segments))
	outVals := make([]any, 0, len(values))

	var acc strings.Builder
	acc.WriteString(segments[0])

	for i, v := range values {
		next := segments[i+1]

		switch m := unwrap(v).(type) {
		case Identifier:
			acc.WriteString(m.String())
			acc.WriteString(next)
		case RawText:
			acc.WriteString(m.text)
			acc.WriteString(next)
		case Literal:
			acc.WriteString(m.String())
			acc.WriteString(next)
		case Fragment:
			segs, params := Flatten(m.segs(), m.params)
			outVals = append(outVals, params...)
			acc.WriteString(segs[0])
			if len(segs) == 1 {
				acc.WriteString(next)
				continue
			}

			outSegs = append(outSegs, acc.String())
			outSegs = append(outSegs, segs[1:len(segs)-1]...)
			acc.Reset()
			acc.WriteString(segs[len(segs)-1])
			acc.WriteString(next)
		default:
			outSegs = append(outSegs, acc.String())
			outVals = append(outVals, v)
			acc.Reset()
			acc.WriteString(next)
		}
	}

	outSegs = append(outSegs, acc.String())
	return outSegs, outVals
}
