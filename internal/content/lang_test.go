package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLang(t *testing.T) {
	lang, err := ParseLang("fr")
	require.NoError(t, err)
	assert.Equal(t, French, lang)

	lang, err = ParseLang(" EN ")
	require.NoError(t, err)
	assert.Equal(t, English, lang)

	_, err = ParseLang("de")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"de"`)
}

func TestSupportedLangs_Order(t *testing.T) {
	assert.Equal(t, []Lang{English, French}, SupportedLangs())
	assert.Equal(t, English, DefaultLang)
}

func TestParseDate(t *testing.T) {
	d, ok := ParseDate("2023-06-01")
	require.True(t, ok)
	assert.Equal(t, time.June, d.Month())
	assert.Equal(t, 2023, d.Year())

	d, ok = ParseDate("2024-02")
	require.True(t, ok)
	assert.Equal(t, time.February, d.Month())

	// Calendar part only: a late-evening UTC-10 timestamp stays on the same day.
	d, ok = ParseDate("2023-12-31T23:30:00-10:00")
	require.True(t, ok)
	assert.Equal(t, time.December, d.Month())
	assert.Equal(t, 2023, d.Year())

	_, ok = ParseDate("June 2023")
	assert.False(t, ok)
	_, ok = ParseDate("")
	assert.False(t, ok)
}

func TestShowcaseOrdering(t *testing.T) {
	projects := []ShowcaseProject{
		{ID: "c", Order: 3, Featured: true},
		{ID: "a", Order: 1},
		{ID: "b", Order: 1, Featured: true},
	}

	sorted := SortShowcase(projects)
	assert.Equal(t, "a", sorted[0].ID)
	assert.Equal(t, "b", sorted[1].ID)
	assert.Equal(t, "c", sorted[2].ID)
	assert.Equal(t, "c", projects[0].ID, "input must not be reordered")

	featured := FeaturedShowcase(projects)
	require.Len(t, featured, 2)
	assert.Equal(t, "b", featured[0].ID)

	p, ok := FindShowcase(projects, "b")
	assert.True(t, ok)
	assert.Equal(t, 1, p.Order)

	_, ok = FindShowcase(projects, "zzz")
	assert.False(t, ok)
}
