package coerce

import (
	"fmt"
	"strings"

	"go.jacobcolvin.com/jsonish/value"
)

// digest renders a structural fingerprint of v, used as the value half of
// the (schema-identity, value-digest) keys the recursion guard and the union
// memoization cache (spec §4.9, §9) index on. It does not need to be
// collision-proof against adversarial input -- only stable and cheap for the
// same Value within one parse.
func digest(v value.Value) string {
	var b strings.Builder

	writeDigest(&b, v)

	return b.String()
}

func writeDigest(b *strings.Builder, v value.Value) {
	switch n := v.(type) {
	case *value.String:
		b.WriteString("s:")
		b.WriteString(n.Text)
	case *value.Number:
		b.WriteString("n:")
		b.WriteString(n.Raw)
	case *value.Boolean:
		fmt.Fprintf(b, "b:%v", n.Bool)
	case *value.Null:
		b.WriteString("z")
	case *value.Array:
		b.WriteString("a[")

		for _, item := range n.Items {
			writeDigest(b, item)
			b.WriteByte(',')
		}

		b.WriteByte(']')
	case *value.Object:
		b.WriteString("o{")

		for _, e := range n.Entries {
			b.WriteString(e.Key)
			b.WriteByte(':')
			writeDigest(b, e.Value)
			b.WriteByte(',')
		}

		b.WriteByte('}')
	case *value.Markdown:
		b.WriteString("m(")
		b.WriteString(n.Lang)
		b.WriteByte(')')
		writeDigest(b, n.Inner)
	case *value.FixedJSON:
		writeDigest(b, n.Inner)
	case *value.AnyOf:
		b.WriteString("any[")

		for _, c := range n.Candidates {
			writeDigest(b, c)
			b.WriteByte(',')
		}

		b.WriteByte(']')
	default:
		b.WriteString("?")
	}
}
