package render

import "strings"

var (
	textEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
	)
	attrEscaper = strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&#39;",
		"\n", "&#10;",
		"\r", "&#13;",
		"\t", "&#9;",
	)
)

// escapeHTML escapes text content.
func escapeHTML(s string) string {
	return textEscaper.Replace(s)
}

// escapeAttr escapes attribute values. Whitespace control characters are
// written as character references.
func escapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// escapeComment keeps comment text from closing the comment early.
func escapeComment(s string) string {
	return strings.ReplaceAll(s, "-->", "--&gt;")
}
