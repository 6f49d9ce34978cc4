package schema

import "strings"

// EscapeToken escapes a property name for use as an RFC 6901 JSON
// pointer reference token: "~" becomes "~0", "/" becomes "~1".
func EscapeToken(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

// AppendToken extends a JSON pointer with one reference token.
// The empty pointer addresses the document root.
func AppendToken(ptr, token string) string {
	return ptr + "/" + EscapeToken(token)
}
