package arena

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GameStateKind discriminates which of Lobby/WordBomb/Anagrams a GameState
// currently holds. Mirrors original_source/server/src/state/room.rs's State enum.
type GameStateKind int

const (
	KindLobby GameStateKind = iota
	KindWordBomb
	KindAnagrams
)

// GameState is a closed sum type: exactly one of Lobby/WordBomb/Anagrams is
// non-nil, selected by Kind. TryLobby/TryWordBomb/TryAnagrams are the only
// sanctioned way to reach into it, matching the Rust source's try_lobby /
// try_word_bomb / try_anagrams accessors that fail cleanly on a state mismatch.
type GameState struct {
	Kind     GameStateKind
	Lobby    *LobbyState
	WordBomb *WordBombState
	Anagrams *AnagramsState
}

func newLobbyState() GameState {
	return GameState{Kind: KindLobby, Lobby: &LobbyState{Ready: map[uuid.UUID]struct{}{}}}
}

func (g *GameState) TryLobby() (*LobbyState, error) {
	if g.Kind != KindLobby {
		return nil, fmt.Errorf("%w: room is not in the lobby", ErrWrongState)
	}
	return g.Lobby, nil
}

func (g *GameState) TryWordBomb() (*WordBombState, error) {
	if g.Kind != KindWordBomb {
		return nil, fmt.Errorf("%w: room is not playing Word Bomb", ErrWrongState)
	}
	return g.WordBomb, nil
}

func (g *GameState) TryAnagrams() (*AnagramsState, error) {
	if g.Kind != KindAnagrams {
		return nil, fmt.Errorf("%w: room is not playing Anagrams", ErrWrongState)
	}
	return g.Anagrams, nil
}

// LobbyState tracks who has readied up and the (possibly absent) start countdown.
type LobbyState struct {
	Ready     map[uuid.UUID]struct{}
	Countdown *Countdown
}

type Countdown struct {
	TimeLeft int
	Handle   *TaskHandle
}

// WordBombUsedWord records one accepted guess for post-game stats.
type WordBombUsedWord struct {
	Elapsed time.Duration
	Word    string
}

type WordBombPlayer struct {
	Identity    uuid.UUID
	Input       string
	Lives       int
	UsedWords   []WordBombUsedWord
	UsedLetters LetterSet
}

// WordBombState is the live Word Bomb game: turn order, the active prompt,
// and the timer governing it. The same *WordBombState persists for the whole
// game; only its fields change turn to turn.
type WordBombState struct {
	StartedAt     time.Time
	TimerStart    time.Time
	TimerLength   float64 // seconds
	TimeoutTask   *TaskHandle
	Prompt        string
	PromptUses    int
	MissedPrompts []string
	Players       []*WordBombPlayer
	Turn          uuid.UUID
}

func (g *WordBombState) player(identity uuid.UUID) (*WordBombPlayer, error) {
	for _, p := range g.Players {
		if p.Identity == identity {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrClientNotFound, identity)
}

func (g *WordBombState) turnIndex() int {
	for i, p := range g.Players {
		if p.Identity == g.Turn {
			return i
		}
	}
	return -1
}

func (g *WordBombState) aliveCount() int {
	n := 0
	for _, p := range g.Players {
		if p.Lives > 0 {
			n++
		}
	}
	return n
}

func (g *WordBombState) wordAlreadyUsed(word string) bool {
	for _, p := range g.Players {
		for _, uw := range p.UsedWords {
			if uw.Word == word {
				return true
			}
		}
	}
	return false
}

// advanceTurn moves Turn to the next alive player, cyclically, starting after
// the current holder. Returns ErrNoPlayersAlive if no other player is alive,
// which should only happen as an invariant violation: every caller has
// already established at least one other alive player exists.
func (g *WordBombState) advanceTurn() error {
	start := g.turnIndex()
	if start < 0 {
		return fmt.Errorf("%w: current turn holder not found", ErrNoPlayersAlive)
	}
	n := len(g.Players)
	for offset := 1; offset < n; offset++ {
		idx := (start + offset) % n
		if g.Players[idx].Lives > 0 {
			g.Turn = g.Players[idx].Identity
			return nil
		}
	}
	return ErrNoPlayersAlive
}

// AnagramsPlayer tracks one player's accepted guesses for a running game.
type AnagramsPlayer struct {
	Identity  uuid.UUID
	UsedWords map[string]struct{}
}

// AnagramsState is the live Anagrams game: a single scrambled word shared by
// every player, and per-player exclusive claims on sub-words of it.
type AnagramsState struct {
	EndTask   *TaskHandle
	Anagram   string
	Original  string
	Players   []*AnagramsPlayer
	StartedAt time.Time
}

func (g *AnagramsState) player(identity uuid.UUID) (*AnagramsPlayer, error) {
	for _, p := range g.Players {
		if p.Identity == identity {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrClientNotFound, identity)
}

// isWordUsedByAnyone implements the cross-player exclusivity rule: once any
// player claims a word, no other player (or the same one again) may claim it.
func (g *AnagramsState) isWordUsedByAnyone(word string) bool {
	for _, p := range g.Players {
		if _, used := p.UsedWords[word]; used {
			return true
		}
	}
	return false
}
