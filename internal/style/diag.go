package style

import (
	"fmt"
	"strings"
)

// lineAt locates the 1-based line and column of a byte offset and
// returns the text of that line.
func lineAt(src []byte, off int64) (line, col int, text string) {
	if off < 0 {
		off = 0
	}
	if off > int64(len(src)) {
		off = int64(len(src))
	}
	line = 1
	start := 0
	for i := 0; i < int(off); i++ {
		if src[i] == '\n' {
			line++
			start = i + 1
		}
	}
	end := start
	for end < len(src) && src[end] != '\n' {
		end++
	}
	col = int(off) - start + 1
	return line, col, string(src[start:end])
}

// FormatDiagnostic renders one diagnostic with the offending source line
// underlined. Tabs in the underlined line are flattened so the carets
// line up.
func FormatDiagnostic(src []byte, filename string, d InvalidCsl) string {
	line, col, text := lineAt(src, d.Range.Start)

	width := int(d.Range.End - d.Range.Start)
	if width < 1 {
		width = 1
	}
	if max := len(text) - col + 1; width > max {
		width = max
	}
	if width < 1 {
		width = 1
	}

	gutter := len(fmt.Sprintf("%d", line))
	pad := strings.Repeat(" ", gutter)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s[%s]: %s\n", d.Severity, d.Code, d.Message)
	fmt.Fprintf(&sb, "%s--> %s:%d:%d\n", pad, filename, line, col)
	fmt.Fprintf(&sb, "%s |\n", pad)
	fmt.Fprintf(&sb, "%d | %s\n", line, strings.ReplaceAll(text, "\t", " "))
	fmt.Fprintf(&sb, "%s | %s%s\n", pad,
		strings.Repeat(" ", col-1), strings.Repeat("^", width))
	if d.Hint != "" {
		fmt.Fprintf(&sb, "%s = hint: %s\n", pad, d.Hint)
	}
	return sb.String()
}

// FormatDiagnostics renders every diagnostic of an InvalidError,
// separated by blank lines.
func FormatDiagnostics(src []byte, filename string, errs []InvalidCsl) string {
	parts := make([]string, len(errs))
	for i, d := range errs {
		parts[i] = FormatDiagnostic(src, filename, d)
	}
	return strings.Join(parts, "\n")
}
