// Package censor applies a simple word-level profanity filter to public-room
// chat content. It is intentionally ASCII and whole-word only; the core never
// censors usernames or gameplay content, only ChatMessage text in public rooms.
package censor

import (
	"strings"
)

var defaultBannedWords = []string{
	"ass", "asshole", "bastard", "bitch", "cunt", "damn", "dick", "fuck",
	"nigger", "nigga", "piss", "pussy", "shit", "slut", "whore",
}

// Censor replaces banned whole words with asterisks of equal length.
type Censor struct {
	banned map[string]struct{}
}

// New builds a Censor from the default banned-word list.
func New() *Censor {
	return NewWithWords(defaultBannedWords)
}

// NewWithWords builds a Censor from a caller-supplied banned-word list,
// useful for tests or swapping the list without touching the engine.
func NewWithWords(words []string) *Censor {
	banned := make(map[string]struct{}, len(words))
	for _, w := range words {
		banned[strings.ToLower(w)] = struct{}{}
	}
	return &Censor{banned: banned}
}

// Censor walks text word by word (splitting on whitespace, keeping the
// original separators) and masks any token whose alphabetic core matches the
// banned list, case-insensitively. Punctuation clinging to a word is preserved.
func (c *Censor) Censor(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	start := 0
	for start < len(text) {
		for start < len(text) && isSpace(text[start]) {
			b.WriteByte(text[start])
			start++
		}
		end := start
		for end < len(text) && !isSpace(text[end]) {
			end++
		}
		if end > start {
			b.WriteString(c.maskToken(text[start:end]))
		}
		start = end
	}
	return b.String()
}

func (c *Censor) maskToken(token string) string {
	coreStart, coreEnd := 0, len(token)
	for coreStart < coreEnd && !isAlpha(token[coreStart]) {
		coreStart++
	}
	for coreEnd > coreStart && !isAlpha(token[coreEnd-1]) {
		coreEnd--
	}
	core := token[coreStart:coreEnd]
	if core == "" {
		return token
	}
	if _, banned := c.banned[strings.ToLower(core)]; !banned {
		return token
	}
	return token[:coreStart] + strings.Repeat("*", len(core)) + token[coreEnd:]
}

func isSpace(b byte) bool { return b == ' ' || b == '\t' || b == '\n' || b == '\r' }

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
