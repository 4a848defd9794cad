package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLetterSet_AddAndContains(t *testing.T) {
	var s LetterSet
	assert.False(t, s.Contains('a'))
	s.Add('a')
	s.Add('A') // case-insensitive
	assert.True(t, s.Contains('a'))
	assert.True(t, s.Contains('A'))
	assert.False(t, s.Contains('b'))
}

func TestLetterSet_AddIgnoresNonLetters(t *testing.T) {
	var s LetterSet
	s.Add('3')
	s.Add(' ')
	assert.Equal(t, LetterSet(0), s)
}

func TestLetterSet_CoversAlphabetExceptXZ(t *testing.T) {
	var s LetterSet
	for c := 'a'; c <= 'z'; c++ {
		if c == 'x' || c == 'z' {
			continue
		}
		s.Add(c)
	}
	assert.True(t, s.CoversAlphabetExceptXZ())

	s.Add('q') // already set, no-op
	assert.True(t, s.CoversAlphabetExceptXZ())

	var missingOne LetterSet
	for c := 'a'; c <= 'z'; c++ {
		if c == 'x' || c == 'z' || c == 'm' {
			continue
		}
		missingOne.Add(c)
	}
	assert.False(t, missingOne.CoversAlphabetExceptXZ())
}

func TestLetterSet_XAndZDoNotCount(t *testing.T) {
	var s LetterSet
	s.Add('x')
	s.Add('z')
	assert.False(t, s.CoversAlphabetExceptXZ())
}

func TestLetterSet_RunesAndStringsAreAscending(t *testing.T) {
	var s LetterSet
	s.Add('c')
	s.Add('a')
	s.Add('b')
	assert.Equal(t, []rune{'a', 'b', 'c'}, s.Runes())
	assert.Equal(t, []string{"a", "b", "c"}, s.Strings())
}
