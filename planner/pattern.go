package planner

import (
	"regexp"
	"strings"
)

// placeholderPattern matches {{ key }} tokens. Keys are restricted to
// [A-Za-z0-9_-]; whitespace inside the braces is tolerated and ignored.
var placeholderPattern = regexp.MustCompile(`\{\{\s*([A-Za-z0-9_-]+)\s*\}\}`)

// fileNameStripper removes the characters that are unsafe in file names
// on common file systems
var fileNameStripper = strings.NewReplacer(
	`\`, "", "/", "", ":", "", "*", "", "?", "", `"`, "", "<", "", ">", "", "|", "",
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Resolve substitutes {{key}} placeholders in pattern using values.
// Values are inserted verbatim and never re-scanned for tokens, so
// substitution is not recursive. Tokens whose key is absent from
// values are left untouched, braces included: an uninterpolated token
// in the output is the diagnostic, not an error.
func Resolve(pattern string, values map[string]string) string {
	if pattern == "" {
		return pattern
	}
	return placeholderPattern.ReplaceAllStringFunc(pattern, func(token string) string {
		key := placeholderPattern.FindStringSubmatch(token)[1]
		if v, ok := values[key]; ok {
			return v
		}
		return token
	})
}

// ResolveOutputFileName resolves pattern like Resolve, then strips the
// characters \ / : * ? " < > |, trims surrounding whitespace and
// collapses inner whitespace runs into a single underscore, producing
// a base name safe for common file systems. A pattern that resolves to
// whitespace only yields the empty string.
func ResolveOutputFileName(pattern string, values map[string]string) string {
	resolved := strings.TrimSpace(fileNameStripper.Replace(Resolve(pattern, values)))
	return whitespaceRun.ReplaceAllString(resolved, "_")
}
