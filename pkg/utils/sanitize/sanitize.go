package sanitize

import "regexp"

// tagPattern matches one HTML/XML tag: an opening bracket, at least one
// character that is not a closing bracket, then the closing bracket.
// Compiled once and reused for every call.
var tagPattern = regexp.MustCompile(`<[^>]+>`)

// StripTags removes markup tags from free text. Unpaired brackets and the
// text between tags are kept as-is, so applying it twice changes nothing.
func StripTags(s string) string {
	return tagPattern.ReplaceAllString(s, "")
}
