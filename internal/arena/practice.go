package arena

import (
	"log"

	"github.com/scythe504/skribblr-backend/internal/protocol"
)

const (
	practiceBatchSize    = 50
	practiceDefaultMinWPM = 300
)

// PracticeRequest hands the requester a batch of prompts or anagrams to
// practice against, entirely outside any room's game state.
func (m *Manager) PracticeRequest(sender SenderInfo, game string) {
	client := m.findConnectedClient(sender)
	if client == nil {
		return
	}

	switch GameKind(game) {
	case GameWordBomb:
		prompts := make([]string, practiceBatchSize)
		for i := range prompts {
			prompts[i] = m.dict.RandomPrompt(practiceDefaultMinWPM)
		}
		sendTo(client, protocol.NewPracticeBatchWordBomb(prompts))
	case GameAnagrams:
		pairs := make([]protocol.AnagramPair, practiceBatchSize)
		for i := range pairs {
			original, scrambled := m.dict.RandomAnagram()
			pairs[i] = protocol.AnagramPair{Original: original, Anagram: scrambled}
		}
		sendTo(client, protocol.NewPracticeBatchAnagrams(pairs))
	default:
		log.Printf("[Manager.PracticeRequest] identity=%s unknown game=%q", sender.Identity, game)
	}
}

// PracticeSubmission validates a single practice attempt against the same
// rules as an in-game guess, but touches no room/game state: practice mode
// shares validation logic only, never state.
func (m *Manager) PracticeSubmission(sender SenderInfo, sub protocol.PracticeSubmission) {
	client := m.findConnectedClient(sender)
	if client == nil {
		return
	}

	word := normalizeGuess(sub.Input)
	var valid bool
	var reason *protocol.GuessRejection

	switch GameKind(sub.Game) {
	case GameWordBomb:
		game := &WordBombState{Prompt: sub.Prompt}
		if r, ok := classifyWordBombGuess(game, m.dict, word); !ok {
			reason = &r
		} else {
			valid = true
		}
	case GameAnagrams:
		game := &AnagramsState{Anagram: sub.Prompt}
		if r, ok := classifyAnagramsGuess(game, m.dict, word); !ok {
			reason = &r
		} else {
			valid = true
		}
	default:
		log.Printf("[Manager.PracticeSubmission] identity=%s unknown game=%q", sender.Identity, sub.Game)
		return
	}

	sendTo(client, protocol.NewPracticeResult(sub.Game, sub.Prompt, sub.Input, valid, reason))
}

// findConnectedClient looks up the sender's *Client without requiring any
// particular room state — practice mode works even mid-game.
func (m *Manager) findConnectedClient(sender SenderInfo) *Client {
	room := m.getRoom(sender.Room)
	if room == nil {
		return nil
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	c, ok := room.Clients[sender.Identity]
	if !ok || !c.Connected {
		return nil
	}
	return c
}
