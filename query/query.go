package query

import "strings"

// Translate rewrites a boolean keyword expression into the search
// provider's query syntax. The provider treats concatenation as AND,
// understands a literal OR, and excludes a term when it carries a
// leading '-', so "A NOT B" becomes "A -B" and "A AND B" becomes "A B".
// Parentheses and anything else pass through untouched; malformed
// expressions are the provider's problem, not ours.
func Translate(expr string) string {
	out := strings.ReplaceAll(expr, " NOT ", " -")
	out = strings.ReplaceAll(out, " AND ", " ")
	return out
}
