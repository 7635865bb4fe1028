package ck

import (
	"fmt"
	"strings"
)

// Escape renders a fixed size text field for logs. Printable ASCII is kept,
// backslashes are doubled and any other byte becomes \xNN.
func Escape(b []byte) string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, c := range b {
		switch {
		case c == '\\':
			sb.WriteString(`\\`)
		case c >= 0x20 && c < 0x7f:
			sb.WriteByte(c)
		default:
			fmt.Fprintf(&sb, `\x%02x`, c)
		}
	}
	return sb.String()
}
