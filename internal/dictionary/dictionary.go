// Package dictionary loads the two static word lists the arena consults:
// a validity set for guesses and a prompt table keyed by words-per-prompt
// density, plus the subset of six-letter words used to build anagrams.
package dictionary

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"
)

const anagramWordLength = 6

// Dictionary is an immutable, concurrency-safe lookup service once Load returns.
type Dictionary struct {
	words          map[string]struct{}
	promptGroups   []promptGroup
	sixLetterWords []string
}

type promptGroup struct {
	minWPM  uint32
	prompts []string
}

// Load reads the word list and prompt table from disk. Both files are plain
// text; see LoadFromReaders for the exact line formats.
func Load(wordListPath, promptsPath string) (*Dictionary, error) {
	wordFile, err := os.Open(wordListPath)
	if err != nil {
		return nil, fmt.Errorf("dictionary: open word list: %w", err)
	}
	defer wordFile.Close()

	promptFile, err := os.Open(promptsPath)
	if err != nil {
		return nil, fmt.Errorf("dictionary: open prompts: %w", err)
	}
	defer promptFile.Close()

	return LoadFromReaders(wordFile, promptFile)
}

// LoadFromReaders builds a Dictionary from in-memory or file readers.
//
// The word list is one lowercase ASCII word per line.
//
// The prompt table is one group per line, ascending by words-per-prompt:
//
//	<min_wpm>:<prompt>,<prompt>,<prompt>
func LoadFromReaders(wordList, prompts io.Reader) (*Dictionary, error) {
	words := make(map[string]struct{})
	var sixLetter []string

	scanner := bufio.NewScanner(wordList)
	for scanner.Scan() {
		w := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if w == "" {
			continue
		}
		words[w] = struct{}{}
		if len(w) == anagramWordLength {
			sixLetter = append(sixLetter, w)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dictionary: read word list: %w", err)
	}

	var groups []promptGroup
	scanner = bufio.NewScanner(prompts)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		idx := strings.IndexByte(line, ':')
		if idx < 0 {
			return nil, fmt.Errorf("dictionary: malformed prompt line %q", line)
		}
		wpm, err := strconv.ParseUint(line[:idx], 10, 32)
		if err != nil {
			return nil, fmt.Errorf("dictionary: malformed wpm in %q: %w", line, err)
		}
		list := strings.Split(line[idx+1:], ",")
		groups = append(groups, promptGroup{minWPM: uint32(wpm), prompts: list})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dictionary: read prompts: %w", err)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].minWPM < groups[j].minWPM })

	return &Dictionary{words: words, promptGroups: groups, sixLetterWords: sixLetter}, nil
}

// IsValid reports whether word (already lowercased) appears in the word list.
func (d *Dictionary) IsValid(word string) bool {
	_, ok := d.words[word]
	return ok
}

// RandomPrompt returns a uniformly random prompt drawn from every group whose
// words-per-prompt density is at least minWPM. Groups are stored ascending by
// density, so once the threshold is met every later group qualifies too. When
// no group reaches minWPM, the highest-density group is used.
func (d *Dictionary) RandomPrompt(minWPM uint32) string {
	if len(d.promptGroups) == 0 {
		return ""
	}
	start := sort.Search(len(d.promptGroups), func(i int) bool {
		return d.promptGroups[i].minWPM >= minWPM
	})
	if start == len(d.promptGroups) {
		start = len(d.promptGroups) - 1
	}

	var pool []string
	for _, g := range d.promptGroups[start:] {
		pool = append(pool, g.prompts...)
	}
	if len(pool) == 0 {
		return ""
	}
	return pool[rand.Intn(len(pool))]
}

// RandomAnagram picks a random six-letter word and returns it alongside a
// scrambled presentation of its letters. It retries a few times to avoid
// handing back a "scramble" identical to the original, but does not guarantee it.
func (d *Dictionary) RandomAnagram() (original, scrambled string) {
	if len(d.sixLetterWords) == 0 {
		return "", ""
	}
	original = d.sixLetterWords[rand.Intn(len(d.sixLetterWords))]

	scrambled = original
	for attempt := 0; attempt < 5 && scrambled == original; attempt++ {
		letters := []rune(original)
		rand.Shuffle(len(letters), func(i, j int) { letters[i], letters[j] = letters[j], letters[i] })
		scrambled = string(letters)
	}
	return original, scrambled
}
