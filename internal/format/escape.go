package format

import "strings"

// latexEscapes maps each LaTeX reserved character to the sequence that prints it literally.
var latexEscapes = map[rune]string{
	'\\': `\textbackslash{}`,
	'&':  `\&`,
	'%':  `\%`,
	'$':  `\$`,
	'#':  `\#`,
	'_':  `\_`,
	'{':  `\{`,
	'}':  `\}`,
	'~':  `\textasciitilde{}`,
	'^':  `\textasciicircum{}`,
}

// EscapeLaTeX escapes the LaTeX reserved characters \ & % $ # _ { } ~ ^ in a single pass.
// Escaping already-escaped text escapes it again, so apply it exactly once per value.
func EscapeLaTeX(text string) string {
	if text == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(text) * 2)

	for _, r := range text {
		if esc, ok := latexEscapes[r]; ok {
			b.WriteString(esc)
			continue
		}
		b.WriteRune(r)
	}

	return b.String()
}

// EscapeURL prepares a URL for the first argument of \href, where only % and # need protection.
func EscapeURL(url string) string {
	return strings.NewReplacer(`%`, `\%`, `#`, `\#`).Replace(url)
}
