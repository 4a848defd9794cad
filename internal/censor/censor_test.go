package censor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCensor_MasksWholeWordCaseInsensitive(t *testing.T) {
	c := NewWithWords([]string{"heck"})
	assert.Equal(t, "what the ****", c.Censor("what the HECK"))
}

func TestCensor_PreservesPunctuation(t *testing.T) {
	c := NewWithWords([]string{"heck"})
	assert.Equal(t, "oh, ****!", c.Censor("oh, heck!"))
}

func TestCensor_DoesNotMatchSubstrings(t *testing.T) {
	c := NewWithWords([]string{"ass"})
	assert.Equal(t, "class dismissed", c.Censor("class dismissed"))
}

func TestCensor_LeavesCleanTextAlone(t *testing.T) {
	c := New()
	assert.Equal(t, "good game everyone", c.Censor("good game everyone"))
}
