package arena

import (
	"log"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/scythe504/skribblr-backend/internal/protocol"
)

const (
	wordBombMinTimerLen = 10.0
	wordBombMaxTimerLen = 30.0
)

func (m *Manager) newWordBombGame(room *Room, participants []uuid.UUID) *WordBombState {
	players := make([]*WordBombPlayer, len(participants))
	for i, id := range participants {
		players[i] = &WordBombPlayer{Identity: id, Lives: 2}
	}
	randShuffle(len(players), func(i, j int) { players[i], players[j] = players[j], players[i] })

	timerLen := wordBombMinTimerLen + randFloat64()*(wordBombMaxTimerLen-wordBombMinTimerLen)
	prompt := m.dict.RandomPrompt(room.Settings.WordBomb.MinWPM)

	game := &WordBombState{
		StartedAt:   time.Now(),
		TimerStart:  time.Now(),
		TimerLength: timerLen,
		Prompt:      prompt,
		Players:     players,
		Turn:        players[0].Identity,
	}

	roomName := room.Name
	game.TimeoutTask = spawnAfter(durationFromSeconds(timerLen), func() {
		m.wordBombTimeout(roomName, prompt)
	})
	log.Printf("[Manager.newWordBombGame] room=%s players=%d prompt=%s timer=%.1fs", room.Name, len(players), prompt, timerLen)
	return game
}

// nextPrompt draws a new prompt, making a bounded effort to avoid immediately
// repeating the current one.
func (m *Manager) nextPrompt(minWPM uint32, current string) string {
	for i := 0; i < 8; i++ {
		p := m.dict.RandomPrompt(minWPM)
		if p != current {
			return p
		}
	}
	return m.dict.RandomPrompt(minWPM)
}

// WordBombInputUpdate broadcasts the current turn holder's live typing. Only
// the player whose turn it is may send this.
func (m *Manager) WordBombInputUpdate(sender SenderInfo, input string) error {
	if len(input) > MaxWordBombInput {
		return ErrInputTooLong
	}
	room, err := m.requireRoom(sender.Room)
	if err != nil {
		return err
	}
	room.mu.Lock()
	defer room.mu.Unlock()

	game, err := room.State.TryWordBomb()
	if err != nil {
		return err
	}
	if game.Turn != sender.Identity {
		return ErrOutOfTurn
	}
	player, err := game.player(sender.Identity)
	if err != nil {
		return err
	}
	player.Input = input
	room.Clients.BroadcastExcept(protocol.NewWordBombInputOut(sender.Identity, input), sender.Identity)
	return nil
}

// WordBombGuessMsg classifies and, if accepted, records a guess from the
// current turn holder, then advances the turn and resets the timer.
func (m *Manager) WordBombGuessMsg(sender SenderInfo, rawWord string) error {
	room, err := m.requireRoom(sender.Room)
	if err != nil {
		return err
	}
	word := normalizeGuess(rawWord)
	if len(word) > MaxWordBombInput {
		return ErrInputTooLong
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	game, err := room.State.TryWordBomb()
	if err != nil {
		return err
	}
	if game.Turn != sender.Identity {
		return ErrOutOfTurn
	}

	if reason, ok := classifyWordBombGuess(game, m.dict, word); !ok {
		room.Clients.Broadcast(protocol.NewWordBombInvalidGuess(sender.Identity, reason))
		return nil
	}

	player, err := game.player(sender.Identity)
	if err != nil {
		return err
	}

	elapsed := time.Since(game.TimerStart)
	player.UsedWords = append(player.UsedWords, WordBombUsedWord{Elapsed: elapsed, Word: word})
	for _, r := range word {
		player.UsedLetters.Add(r)
	}

	var lifeChange int8
	if player.UsedLetters.CoversAlphabetExceptXZ() {
		player.Lives++
		player.UsedLetters = LetterSet(0)
		lifeChange = 1
	}

	game.TimerLength = math.Max(WordBombMinLength, game.TimerLength-elapsed.Seconds())
	game.Prompt = m.nextPrompt(room.Settings.WordBomb.MinWPM, game.Prompt)
	game.PromptUses = 0

	if err := game.advanceTurn(); err != nil {
		log.Printf("[Manager.WordBombGuessMsg] room=%s invariant violation: %v", sender.Room, err)
		return err
	}

	game.TimeoutTask.Cancel()
	roomName := room.Name
	newLen, newPrompt := game.TimerLength, game.Prompt
	game.TimerStart = time.Now()
	game.TimeoutTask = spawnAfter(durationFromSeconds(newLen), func() {
		m.wordBombTimeout(roomName, newPrompt)
	})

	room.Clients.Broadcast(protocol.NewWordBombPrompt(&word, lifeChange, game.Prompt, game.Turn))
	return nil
}

func classifyWordBombGuess(game *WordBombState, dict wordLookup, word string) (protocol.GuessRejection, bool) {
	if !strings.Contains(word, game.Prompt) {
		return protocol.ReasonPromptNotIn, false
	}
	if !dict.IsValid(word) {
		return protocol.ReasonNotEnglish, false
	}
	if game.wordAlreadyUsed(word) {
		return protocol.ReasonAlreadyUsed, false
	}
	return protocol.GuessRejection{}, true
}

// wordLookup is the subset of *dictionary.Dictionary the Word Bomb/Anagrams
// guess classifiers need, kept as an interface so tests can supply a stub.
type wordLookup interface {
	IsValid(word string) bool
}

// wordBombTimeout fires when a turn's timer expires. It re-looks-up the room
// and verifies the game is still Word Bomb with the same prompt it was
// scheduled against; either mismatch means a guess or another timeout already
// superseded this task, so it's a no-op.
func (m *Manager) wordBombTimeout(roomName, expectedPrompt string) {
	room := m.getRoom(roomName)
	if room == nil {
		return
	}
	room.mu.Lock()
	defer room.mu.Unlock()

	game, err := room.State.TryWordBomb()
	if err != nil || game.Prompt != expectedPrompt {
		log.Printf("[Manager.wordBombTimeout] room=%s guard failed, already superseded", roomName)
		return
	}

	game.TimerLength = wordBombMinTimerLen + randFloat64()*(wordBombMaxTimerLen-wordBombMinTimerLen)
	game.MissedPrompts = append(game.MissedPrompts, game.Prompt)

	if player, err := game.player(game.Turn); err == nil {
		player.Lives--
	}

	game.PromptUses++
	if game.PromptUses > 1 {
		game.Prompt = m.nextPrompt(room.Settings.WordBomb.MinWPM, game.Prompt)
		game.PromptUses = 0
	}

	if err := game.advanceTurn(); err != nil {
		log.Printf("[Manager.wordBombTimeout] room=%s invariant violation: %v", roomName, err)
		return
	}

	if game.aliveCount() < 2 {
		info := m.wordBombPostGameInfo(game)
		m.endGame(room, info)
		return
	}

	roomNameCopy, newPrompt := roomName, game.Prompt
	game.TimerStart = time.Now()
	newLen := game.TimerLength
	game.TimeoutTask = spawnAfter(durationFromSeconds(newLen), func() {
		m.wordBombTimeout(roomNameCopy, newPrompt)
	})

	room.Clients.Broadcast(protocol.NewWordBombPrompt(nil, -1, game.Prompt, game.Turn))
}

func (m *Manager) wordBombPostGameInfo(game *WordBombState) protocol.WordBombPostGameInfo {
	var winner uuid.UUID
	for _, p := range game.Players {
		if p.Lives > 0 {
			winner = p.Identity
			break
		}
	}

	totalWords := 0
	var fastest []protocol.GuessTimeStat
	var longest []protocol.WordLengthStat
	var avgWPM []protocol.PlayerFloatStat
	var avgLen []protocol.PlayerFloatStat

	for _, p := range game.Players {
		if len(p.UsedWords) == 0 {
			continue
		}
		totalWords += len(p.UsedWords)

		best := p.UsedWords[0]
		var longestWord WordBombUsedWord
		var wpmSum, lenSum float64
		for _, uw := range p.UsedWords {
			if uw.Elapsed < best.Elapsed {
				best = uw
			}
			if len(uw.Word) > len(longestWord.Word) {
				longestWord = uw
			}
			minutes := uw.Elapsed.Minutes()
			if minutes > 0 {
				wpmSum += (float64(len(uw.Word)) / 5.0) / minutes
			}
			lenSum += float64(len(uw.Word))
		}

		fastest = append(fastest, protocol.GuessTimeStat{UUID: p.Identity, Elapsed: best.Elapsed.Seconds(), Word: best.Word})
		longest = append(longest, protocol.WordLengthStat{UUID: p.Identity, Word: longestWord.Word, Length: len(longestWord.Word)})
		avgWPM = append(avgWPM, protocol.PlayerFloatStat{UUID: p.Identity, Value: wpmSum / float64(len(p.UsedWords))})
		avgLen = append(avgLen, protocol.PlayerFloatStat{UUID: p.Identity, Value: lenSum / float64(len(p.UsedWords))})
	}

	sortGuessTimeAscending(fastest)
	sortWordLengthDescending(longest)
	sortPlayerFloatDescending(avgWPM)
	sortPlayerFloatDescending(avgLen)

	return protocol.WordBombPostGameInfo{
		Type:               "WordBomb",
		Winner:             winner,
		MinutesElapsed:     time.Since(game.StartedAt).Minutes(),
		TotalWords:         totalWords,
		FastestGuesses:     fastest,
		LongestWords:       longest,
		AverageWPM:         avgWPM,
		AverageWordLengths: avgLen,
	}
}
