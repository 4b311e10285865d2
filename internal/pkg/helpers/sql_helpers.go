package helpers

import "strings"

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// EscapeLike escapes LIKE/ILIKE wildcards so s matches literally
func EscapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// NullIfEmpty returns nil for an empty string so it is stored as NULL
func NullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
