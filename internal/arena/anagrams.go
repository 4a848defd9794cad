package arena

import (
	"log"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/scythe504/skribblr-backend/internal/protocol"
)

const anagramsMinGuessLen = 3

func (m *Manager) newAnagramsGame(room *Room, participants []uuid.UUID) *AnagramsState {
	original, scrambled := m.dict.RandomAnagram()

	players := make([]*AnagramsPlayer, len(participants))
	for i, id := range participants {
		players[i] = &AnagramsPlayer{Identity: id, UsedWords: map[string]struct{}{}}
	}

	game := &AnagramsState{Anagram: scrambled, Original: original, Players: players, StartedAt: time.Now()}

	roomName := room.Name
	game.EndTask = spawnAfter(AnagramsDuration, func() {
		m.anagramsEnd(roomName)
	})
	log.Printf("[Manager.newAnagramsGame] room=%s players=%d anagram=%s", room.Name, len(players), scrambled)
	return game
}

// AnagramsGuessMsg validates and, if accepted, records a guess in the sender's
// claimed word set. A word already claimed by any player in the room is
// rejected (see DESIGN.md's Open Question decisions on cross-player
// exclusivity).
func (m *Manager) AnagramsGuessMsg(sender SenderInfo, rawWord string) error {
	room, err := m.requireRoom(sender.Room)
	if err != nil {
		return err
	}
	word := normalizeGuess(rawWord)

	room.mu.Lock()
	defer room.mu.Unlock()

	game, err := room.State.TryAnagrams()
	if err != nil {
		return err
	}
	if len(word) > len(game.Anagram) {
		return ErrInputTooLong
	}

	player, err := game.player(sender.Identity)
	if err != nil {
		return err
	}

	if reason, ok := classifyAnagramsGuess(game, m.dict, word); !ok {
		if c, present := room.Clients[sender.Identity]; present {
			sendTo(c, protocol.NewAnagramsInvalidGuess(reason))
		}
		return nil
	}

	player.UsedWords[word] = struct{}{}
	room.Clients.Broadcast(protocol.NewAnagramsCorrectGuess(sender.Identity, word))
	return nil
}

func classifyAnagramsGuess(game *AnagramsState, dict wordLookup, word string) (protocol.GuessRejection, bool) {
	if len(word) < anagramsMinGuessLen {
		return protocol.ReasonNotLongEnough, false
	}
	if !isSubsequenceOfLetters(word, game.Anagram) {
		return protocol.ReasonPromptMismatch, false
	}
	if !dict.IsValid(word) {
		return protocol.ReasonNotEnglish, false
	}
	if game.isWordUsedByAnyone(word) {
		return protocol.ReasonAlreadyUsed, false
	}
	return protocol.GuessRejection{}, true
}

// isSubsequenceOfLetters reports whether word can be built from the letters of
// pool, respecting multiplicity: each letter in pool may only back one matching
// position in word (e.g. "tap" fits "atpas", but "ttap" does not).
func isSubsequenceOfLetters(word, pool string) bool {
	available := make(map[rune]int, len(pool))
	for _, r := range pool {
		available[r]++
	}
	for _, r := range word {
		if available[r] <= 0 {
			return false
		}
		available[r]--
	}
	return true
}

// anagramsEnd fires 30s after a game starts. It re-verifies the room is still
// playing Anagrams (a single end task spans the whole game and is never
// replaced mid-game, so a kind check is a sufficient guard here) before
// computing final scores and returning to the lobby.
func (m *Manager) anagramsEnd(roomName string) {
	room := m.getRoom(roomName)
	if room == nil {
		return
	}
	room.mu.Lock()
	defer room.mu.Unlock()

	game, err := room.State.TryAnagrams()
	if err != nil {
		log.Printf("[Manager.anagramsEnd] room=%s guard failed, already superseded", roomName)
		return
	}

	info := m.anagramsPostGameInfo(game)
	m.endGame(room, info)
}

// anagramsScore implements the length-based scoring curve: 50 * 2^(len-2)
// points per accepted word, summed per player.
func anagramsScore(word string) float64 {
	return 50 * math.Pow(2, float64(len(word)-2))
}

func (m *Manager) anagramsPostGameInfo(game *AnagramsState) protocol.AnagramsPostGameInfo {
	scores := make([]protocol.PlayerFloatStat, 0, len(game.Players))
	for _, p := range game.Players {
		var total float64
		for word := range p.UsedWords {
			total += anagramsScore(word)
		}
		scores = append(scores, protocol.PlayerFloatStat{UUID: p.Identity, Value: total})
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].Value > scores[j].Value })

	var winner *uuid.UUID
	if len(scores) > 0 && scores[0].Value > 0 {
		id := scores[0].UUID
		winner = &id
	}

	return protocol.AnagramsPostGameInfo{
		Type:     "Anagrams",
		Original: game.Original,
		Scores:   scores,
		Winner:   winner,
	}
}
