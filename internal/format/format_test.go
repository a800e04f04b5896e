package format

import (
	"testing"

	"github.com/Amorizz/portfolio/internal/content"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDate_Absent(t *testing.T) {
	assert.Equal(t, "Present", FormatDate("", content.English))
	assert.Equal(t, "Présent", FormatDate("", content.French))
}

func TestFormatDate_MonthTables(t *testing.T) {
	assert.Equal(t, "June 2023", FormatDate("2023-06-01", content.English))
	assert.Equal(t, "Juin 2023", FormatDate("2023-06-01", content.French))
	assert.Equal(t, "Sept. 2021", FormatDate("2021-09", content.English))
	assert.Equal(t, "Fév. 2024", FormatDate("2024-02-15", content.French))
	assert.Equal(t, "Déc. 2022", FormatDate("2022-12-31T23:59:59Z", content.French))
}

func TestFormatDate_Pure(t *testing.T) {
	first := FormatDate("2020-01-10", content.French)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, FormatDate("2020-01-10", content.French))
	}
}

func TestFormatDate_UnparseablePassesThrough(t *testing.T) {
	assert.Equal(t, "Summer 2026", FormatDate("Summer 2026", content.English))
}

func TestFormatRange(t *testing.T) {
	assert.Equal(t, "Juin 2023 – Présent", FormatRange("2023-06-01", "", true, content.French))
	assert.Equal(t, "Jan. 2022 – Mar. 2022", FormatRange("2022-01", "2022-03", false, content.English))
	// current wins over a stray end date
	assert.Equal(t, "Jan. 2022 – Present", FormatRange("2022-01", "2022-03", true, content.English))
	assert.Equal(t, "June 2025", FormatRange("", "2025-06", false, content.English))
}

func TestEscapeLaTeX_EmptyString(t *testing.T) {
	assert.Equal(t, "", EscapeLaTeX(""))
}

func TestEscapeLaTeX_PlainTextUnchanged(t *testing.T) {
	text := "Plain text 123 with accents éàü"
	assert.Equal(t, text, EscapeLaTeX(text))
}

func TestEscapeLaTeX_EachReservedCharacter(t *testing.T) {
	cases := map[string]string{
		`\`: `\textbackslash{}`,
		`&`: `\&`,
		`%`: `\%`,
		`$`: `\$`,
		`#`: `\#`,
		`_`: `\_`,
		`{`: `\{`,
		`}`: `\}`,
		`~`: `\textasciitilde{}`,
		`^`: `\textasciicircum{}`,
	}
	for in, want := range cases {
		assert.Equal(t, want, EscapeLaTeX(in), "escaping %q", in)
	}
}

func TestEscapeLaTeX_Mixed(t *testing.T) {
	assert.Equal(t, `R\&D at 100\% \$cost\_center \#1`, EscapeLaTeX(`R&D at 100% $cost_center #1`))
}

func TestEscapeLaTeX_NotIdempotentOnReservedCharacters(t *testing.T) {
	once := EscapeLaTeX("50%")
	assert.NotEqual(t, once, EscapeLaTeX(once))
	assert.Equal(t, `50\textbackslash{}\%`, EscapeLaTeX(once))
}

func TestEscapeURL(t *testing.T) {
	assert.Equal(t, `https://x.dev/a\%20b\#top`, EscapeURL("https://x.dev/a%20b#top"))
}

func TestEmphasize_Lossless(t *testing.T) {
	inputs := []string{
		"Built a TCP client-server chat in Java with Swing.",
		"Indexed 700+ documents using Euclidean distance over vector-based embeddings.",
		"nothing to see here",
		"pythonic PYTHON python",
		"Déployé sur Supabase avec Next.js",
		"",
	}
	for _, in := range inputs {
		assert.Equal(t, in, Join(Emphasize(in)))
	}
}

func TestEmphasize_CaseInsensitivePreservesCasing(t *testing.T) {
	segments := Emphasize("scripts in PYTHON and bash")
	require.Len(t, segments, 4)
	assert.Equal(t, Segment{Text: "scripts in "}, segments[0])
	assert.Equal(t, Segment{Text: "PYTHON", Bold: true}, segments[1])
	assert.Equal(t, Segment{Text: " and "}, segments[2])
	assert.Equal(t, Segment{Text: "bash", Bold: true}, segments[3])
}

func TestEmphasize_LongestMatchFirst(t *testing.T) {
	e := NewEmphasizer([]string{"client", "client-server"})
	segments := e.Split("a client-server app")
	require.Len(t, segments, 3)
	assert.Equal(t, Segment{Text: "client-server", Bold: true}, segments[1])
}

func TestEmphasize_NoKeywords(t *testing.T) {
	segments := NewEmphasizer(nil).Split("TCP")
	assert.Equal(t, []Segment{{Text: "TCP"}}, segments)
}

type item struct{ id string }

func (i item) ProjectID() string { return i.id }

func TestSortByPriority(t *testing.T) {
	projects := []item{{"x"}, {"archive-server"}, {"y"}}
	priority := map[string]int{"archive-server": 1, "translate-project": 2}

	sorted := SortByPriority(projects, priority)
	assert.Equal(t, []item{{"archive-server"}, {"x"}, {"y"}}, sorted)
	assert.Equal(t, "x", projects[0].id, "input must not be reordered")
}

func TestSortByPriority_AllUnrankedKeepsOrder(t *testing.T) {
	projects := []item{{"c"}, {""}, {"a"}, {"b"}}
	assert.Equal(t, projects, SortByPriority(projects, DefaultProjectPriority))
}

func TestSortByPriority_Default(t *testing.T) {
	projects := []item{{"tiny-habits"}, {"misc"}, {"pocket-imperium"}, {"translate-project"}}
	sorted := SortByPriority(projects, DefaultProjectPriority)
	assert.Equal(t, []item{{"translate-project"}, {"pocket-imperium"}, {"tiny-habits"}, {"misc"}}, sorted)
}

func TestLabels(t *testing.T) {
	fr := For(content.French)
	assert.Equal(t, "Compétences", fr.Skills)
	assert.Equal(t, "En cours", fr.Status(content.StatusInProgress))
	assert.Equal(t, "", fr.Status(""))
	assert.Equal(t, content.English, fr.OtherLang())

	en := For(content.Lang("de"))
	assert.Equal(t, content.English, en.Lang)
	assert.Equal(t, "Completed", en.Status(content.StatusCompleted))
}

func TestPDFFilename(t *testing.T) {
	assert.Equal(t, "CV_Amaury_Dufrenot_2026.pdf", PDFFilename(content.French, 2026))
	assert.Equal(t, "Resume_Amaury_Dufrenot_2026.pdf", PDFFilename(content.English, 2026))
}
