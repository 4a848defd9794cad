package dictionary

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testWords = "apple\nbanana\ngrapes\norange\nletter\nbottle\ncamera\n"
const testPrompts = "100:an,at\n300:er,le\n500:ap\n"

func TestIsValid(t *testing.T) {
	d, err := LoadFromReaders(strings.NewReader(testWords), strings.NewReader(testPrompts))
	require.NoError(t, err)

	assert.True(t, d.IsValid("apple"))
	assert.False(t, d.IsValid("zzz"))
}

func TestRandomPrompt_ThresholdIncludesHigherGroups(t *testing.T) {
	d, err := LoadFromReaders(strings.NewReader(testWords), strings.NewReader(testPrompts))
	require.NoError(t, err)

	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		p := d.RandomPrompt(300)
		seen[p] = true
	}
	for p := range seen {
		assert.NotContains(t, []string{"an", "at"}, p, "group below threshold must not be drawn")
	}
	assert.Subset(t, []string{"er", "le", "ap"}, keys(seen))
}

func TestRandomPrompt_AboveAllGroupsFallsBackToHighest(t *testing.T) {
	d, err := LoadFromReaders(strings.NewReader(testWords), strings.NewReader(testPrompts))
	require.NoError(t, err)

	p := d.RandomPrompt(10000)
	assert.Equal(t, "ap", p)
}

func TestRandomAnagram_OnlySixLetterWords(t *testing.T) {
	d, err := LoadFromReaders(strings.NewReader(testWords), strings.NewReader(testPrompts))
	require.NoError(t, err)

	original, scrambled := d.RandomAnagram()
	assert.Len(t, original, 6)
	assert.ElementsMatch(t, []rune(original), []rune(scrambled))
}

func keys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
