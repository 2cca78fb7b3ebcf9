package codegen

import "strings"

// jsEscaper rewrites characters that would break out of a single-quoted
// JavaScript string literal. U+2028/U+2029 are line terminators in JS even
// though JSON allows them raw. "</" is escaped so an embedded value can never
// terminate the surrounding <script> element.
var jsEscaper = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
	"</", `<\/`,
)

// JSString returns s as a single-quoted JavaScript string literal, safe for
// embedding config values into generated code.
func JSString(s string) string {
	return "'" + jsEscaper.Replace(s) + "'"
}

// jsStringList renders values as either a single string literal or an array
// literal, matching the two forms googletag.Slot.setTargeting accepts.
func jsStringList(values []string) string {
	if len(values) == 1 {
		return JSString(values[0])
	}
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = JSString(v)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// indent prefixes every non-empty line of s with the given prefix.
func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}

// commentText sanitizes s for use inside an HTML comment.
func commentText(s string) string {
	return strings.ReplaceAll(s, "--", "-")
}
