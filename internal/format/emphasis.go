package format

import (
	"sort"
	"strings"
	"unicode/utf8"
)

// DefaultKeywords are the notable terms set in bold inside CV descriptions.
var DefaultKeywords = []string{
	"Outstanding Business Potential", "Best Public Speaking",
	"distance euclidienne", "Euclidean distance",
	"vector-based", "vectoriel", "client-serveur", "client-server",
	"drag-and-drop", "Mistral 7B", "llama.cpp",
	"PostgreSQL", "TypeScript", "Streamlit", "Supabase",
	"Next.js", "FastAPI", "Whisper", "M2M100", "OpenAI",
	"netcat", "Python", "Bash", "Java", "Swing",
	"TCP", "SEO", "700+", "300+",
}

// Segment is a run of text that is either emphasized or plain.
type Segment struct {
	Text string
	Bold bool
}

// Emphasizer splits text around a fixed keyword list.
type Emphasizer struct {
	keywords []string
}

// NewEmphasizer builds an Emphasizer. Longer keywords are tried first so that
// "Euclidean distance" wins over a shorter overlapping term.
func NewEmphasizer(keywords []string) *Emphasizer {
	sorted := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if k != "" {
			sorted = append(sorted, k)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return len(sorted[i]) > len(sorted[j]) })
	return &Emphasizer{keywords: sorted}
}

var defaultEmphasizer = NewEmphasizer(DefaultKeywords)

// Emphasize splits text using DefaultKeywords.
func Emphasize(text string) []Segment {
	return defaultEmphasizer.Split(text)
}

// Split marks every keyword occurrence as bold. Matching ignores case but the
// segments carry the original text, so joining them always gives back the input.
func (e *Emphasizer) Split(text string) []Segment {
	if text == "" {
		return nil
	}

	var segments []Segment
	plainStart := 0

	for i := 0; i < len(text); {
		if kw := e.matchAt(text, i); kw > 0 {
			if plainStart < i {
				segments = append(segments, Segment{Text: text[plainStart:i]})
			}
			segments = append(segments, Segment{Text: text[i : i+kw], Bold: true})
			i += kw
			plainStart = i
			continue
		}
		_, size := utf8.DecodeRuneInString(text[i:])
		i += size
	}

	if plainStart < len(text) {
		segments = append(segments, Segment{Text: text[plainStart:]})
	}
	return segments
}

// matchAt returns the byte length of the longest keyword found at text[i:], or 0.
func (e *Emphasizer) matchAt(text string, i int) int {
	rest := text[i:]
	for _, kw := range e.keywords {
		if len(rest) >= len(kw) && strings.EqualFold(rest[:len(kw)], kw) {
			return len(kw)
		}
	}
	return 0
}

// Join concatenates segment texts.
func Join(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		b.WriteString(s.Text)
	}
	return b.String()
}
