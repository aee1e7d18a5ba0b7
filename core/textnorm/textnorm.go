// Package textnorm normalizes file text before pattern matching. It decodes
// bytes permissively and strips comments so that commented-out code never
// contributes matches.
package textnorm

import (
	"regexp"
	"strings"
)

var (
	blockCommentRe  = regexp.MustCompile(`(?s)/\*.*?\*/`)
	lineCommentRe   = regexp.MustCompile(`//[^\n]*`)
	hashCommentRe   = regexp.MustCompile(`#[^\n]*`)
	markupCommentRe = regexp.MustCompile(`(?s)<!--.*?-->`)
)

// Decode converts raw file bytes to a string, dropping bytes that do not
// form valid UTF-8 instead of failing.
func Decode(data []byte) string {
	return strings.ToValidUTF8(string(data), "")
}

// StripComments removes generic source comments: /* */ blocks, // line
// comments, and # line comments. The pass is deliberately crude (it does not
// parse string literals), matching the behavior the choice rules were
// written against.
func StripComments(text string) string {
	text = blockCommentRe.ReplaceAllString(text, "")
	text = lineCommentRe.ReplaceAllString(text, "")
	return hashCommentRe.ReplaceAllString(text, "")
}

// StripMarkupComments removes <!-- --> comments from HTML and XML text.
func StripMarkupComments(text string) string {
	return markupCommentRe.ReplaceAllString(text, "")
}

// Normalize decodes data and applies the comment-stripping pass appropriate
// for the file extension: markup-aware for .html and .xml, generic for
// everything else. ext must be lowercase and include the leading dot.
func Normalize(data []byte, ext string) string {
	text := Decode(data)
	if ext == ".html" || ext == ".xml" {
		return StripMarkupComments(text)
	}
	return StripComments(text)
}
