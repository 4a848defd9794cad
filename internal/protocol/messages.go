// Package protocol defines the wire messages exchanged between a client socket
// and the arena engine, and the codec that moves between JSON and Go values.
package protocol

import "github.com/google/uuid"

// ClientMessage is any message a socket can send inbound. Concrete types carry
// an unexported marker method, so only types in this package implement it;
// DecodeClientMessage builds them from wire bytes.
type ClientMessage interface{ clientMessage() }

type Ping struct {
	Timestamp uint64 `json:"timestamp"`
}

func (Ping) clientMessage() {}

type Ready struct{}

func (Ready) clientMessage() {}

type Unready struct{}

func (Unready) clientMessage() {}

type StartEarly struct{}

func (StartEarly) clientMessage() {}

type WordBombSettingsWire struct {
	MinWPM uint32 `json:"min_wpm"`
}

type RoomSettingsMsg struct {
	Public   bool                 `json:"public"`
	Game     string               `json:"game"`
	WordBomb WordBombSettingsWire `json:"word_bomb"`
}

func (RoomSettingsMsg) clientMessage() {}

type ChatMessage struct {
	Content string `json:"content"`
}

func (ChatMessage) clientMessage() {}

type WordBombInput struct {
	Input string `json:"input"`
}

func (WordBombInput) clientMessage() {}

type WordBombGuess struct {
	Word string `json:"word"`
}

func (WordBombGuess) clientMessage() {}

type AnagramsGuess struct {
	Word string `json:"word"`
}

func (AnagramsGuess) clientMessage() {}

type PracticeRequest struct {
	Game string `json:"game"`
}

func (PracticeRequest) clientMessage() {}

type PracticeSubmission struct {
	Game   string `json:"game"`
	Prompt string `json:"prompt"`
	Input  string `json:"input"`
}

func (PracticeSubmission) clientMessage() {}

// ServerMessage is any message the engine can send outbound. Every concrete type
// carries its own "type" tag so json.Marshal needs no custom logic.
type ServerMessage interface{ serverMessage() }

type Info struct {
	Type string   `json:"type"`
	UUID uuid.UUID `json:"uuid"`
	Room RoomInfo `json:"room"`
}

func (Info) serverMessage() {}

func NewInfo(identity uuid.UUID, room RoomInfo) Info {
	return Info{Type: "Info", UUID: identity, Room: room}
}

type RoomInfo struct {
	Owner    uuid.UUID     `json:"owner"`
	Settings RoomSettingsMsg `json:"settings"`
	Clients  []ClientInfo  `json:"clients"`
	State    RoomStateInfo `json:"state"`
}

type ClientInfo struct {
	UUID      uuid.UUID `json:"uuid"`
	Username  string    `json:"username"`
	Connected bool      `json:"connected"`
}

// RoomStateInfo is the per-variant snapshot nested inside Info.
type RoomStateInfo interface{ roomStateInfo() }

type LobbyStateInfo struct {
	Type              string `json:"type"`
	Ready             []uuid.UUID `json:"ready"`
	StartingCountdown *uint8 `json:"starting_countdown,omitempty"`
}

func (LobbyStateInfo) roomStateInfo() {}

func NewLobbyStateInfo(ready []uuid.UUID, countdown *uint8) LobbyStateInfo {
	return LobbyStateInfo{Type: "Lobby", Ready: ready, StartingCountdown: countdown}
}

type WordBombPlayerInfo struct {
	UUID  uuid.UUID `json:"uuid"`
	Input string    `json:"input"`
	Lives uint8     `json:"lives"`
}

type WordBombStateInfo struct {
	Type        string               `json:"type"`
	Players     []WordBombPlayerInfo `json:"players"`
	Turn        uuid.UUID            `json:"turn"`
	Prompt      string               `json:"prompt"`
	UsedLetters []string             `json:"used_letters,omitempty"`
}

func (WordBombStateInfo) roomStateInfo() {}

type AnagramsStateInfo struct {
	Type    string   `json:"type"`
	Players []uuid.UUID `json:"players"`
	Anagram string   `json:"anagram"`
}

func (AnagramsStateInfo) roomStateInfo() {}

type Error struct {
	Type    string `json:"type"`
	Content string `json:"content"`
}

func (Error) serverMessage() {}

func NewError(content string) Error { return Error{Type: "Error", Content: content} }

type Pong struct {
	Type      string `json:"type"`
	Timestamp uint64 `json:"timestamp"`
}

func (Pong) serverMessage() {}

func NewPong(ts uint64) Pong { return Pong{Type: "Pong", Timestamp: ts} }

type ChatMessageOut struct {
	Type    string    `json:"type"`
	Author  uuid.UUID `json:"author"`
	Content string    `json:"content"`
}

func (ChatMessageOut) serverMessage() {}

func NewChatMessageOut(author uuid.UUID, content string) ChatMessageOut {
	return ChatMessageOut{Type: "ChatMessage", Author: author, Content: content}
}

type RoomSettingsOut struct {
	Type     string               `json:"type"`
	Public   bool                 `json:"public"`
	Game     string               `json:"game"`
	WordBomb WordBombSettingsWire `json:"word_bomb"`
}

func (RoomSettingsOut) serverMessage() {}

func NewRoomSettingsOut(public bool, game string, minWPM uint32) RoomSettingsOut {
	return RoomSettingsOut{Type: "RoomSettings", Public: public, Game: game, WordBomb: WordBombSettingsWire{MinWPM: minWPM}}
}

// ConnectionState is the inner tagged union of ConnectionUpdate.
type ConnectionState interface{ connectionState() }

type ConnectedState struct {
	Type     string `json:"type"`
	Username string `json:"username"`
}

func (ConnectedState) connectionState() {}

func NewConnected(username string) ConnectedState {
	return ConnectedState{Type: "Connected", Username: username}
}

type ReconnectedState struct {
	Type     string `json:"type"`
	Username string `json:"username"`
}

func (ReconnectedState) connectionState() {}

func NewReconnected(username string) ReconnectedState {
	return ReconnectedState{Type: "Reconnected", Username: username}
}

type DisconnectedState struct {
	Type          string     `json:"type"`
	NewRoomOwner  *uuid.UUID `json:"new_room_owner,omitempty"`
}

func (DisconnectedState) connectionState() {}

func NewDisconnected(newOwner *uuid.UUID) DisconnectedState {
	return DisconnectedState{Type: "Disconnected", NewRoomOwner: newOwner}
}

type ConnectionUpdate struct {
	Type  string          `json:"type"`
	UUID  uuid.UUID       `json:"uuid"`
	State ConnectionState `json:"state"`
}

func (ConnectionUpdate) serverMessage() {}

func NewConnectionUpdate(identity uuid.UUID, state ConnectionState) ConnectionUpdate {
	return ConnectionUpdate{Type: "ConnectionUpdate", UUID: identity, State: state}
}

// CountdownUpdate is the inner tagged union reported alongside ReadyPlayers.
type CountdownUpdate interface{ countdownUpdate() }

type CountdownInProgress struct {
	Type     string `json:"type"`
	TimeLeft uint8  `json:"time_left"`
}

func (CountdownInProgress) countdownUpdate() {}

func NewCountdownInProgress(timeLeft uint8) CountdownInProgress {
	return CountdownInProgress{Type: "InProgress", TimeLeft: timeLeft}
}

type CountdownStopped struct {
	Type string `json:"type"`
}

func (CountdownStopped) countdownUpdate() {}

func NewCountdownStopped() CountdownStopped { return CountdownStopped{Type: "Stopped"} }

type ReadyPlayers struct {
	Type            string          `json:"type"`
	Ready           []uuid.UUID     `json:"ready"`
	CountdownUpdate CountdownUpdate `json:"countdown_update,omitempty"`
}

func (ReadyPlayers) serverMessage() {}

func NewReadyPlayers(ready []uuid.UUID, countdown CountdownUpdate) ReadyPlayers {
	return ReadyPlayers{Type: "ReadyPlayers", Ready: ready, CountdownUpdate: countdown}
}

type StartingCountdown struct {
	Type     string `json:"type"`
	TimeLeft uint8  `json:"time_left"`
}

func (StartingCountdown) serverMessage() {}

func NewStartingCountdown(timeLeft uint8) StartingCountdown {
	return StartingCountdown{Type: "StartingCountdown", TimeLeft: timeLeft}
}

type GameStarted struct {
	Type        string        `json:"type"`
	RejoinToken *uuid.UUID    `json:"rejoin_token,omitempty"`
	State       RoomStateInfo `json:"state"`
}

func (GameStarted) serverMessage() {}

func NewGameStarted(rejoinToken *uuid.UUID, state RoomStateInfo) GameStarted {
	return GameStarted{Type: "GameStarted", RejoinToken: rejoinToken, State: state}
}

// PostGameInfo is the inner tagged union reported by GameEnded.
type PostGameInfo interface{ postGameInfo() }

type GuessTimeStat struct {
	UUID    uuid.UUID     `json:"uuid"`
	Elapsed float64       `json:"elapsed_secs"`
	Word    string        `json:"word"`
}

type WordLengthStat struct {
	UUID   uuid.UUID `json:"uuid"`
	Word   string    `json:"word"`
	Length int       `json:"length"`
}

type PlayerFloatStat struct {
	UUID  uuid.UUID `json:"uuid"`
	Value float64   `json:"value"`
}

type WordBombPostGameInfo struct {
	Type                string            `json:"type"`
	Winner              uuid.UUID         `json:"winner"`
	MinutesElapsed      float64           `json:"minutes_elapsed"`
	TotalWords          int               `json:"total_words"`
	FastestGuesses      []GuessTimeStat   `json:"fastest_guesses"`
	LongestWords        []WordLengthStat  `json:"longest_words"`
	AverageWPM          []PlayerFloatStat `json:"average_wpm"`
	AverageWordLengths  []PlayerFloatStat `json:"average_word_lengths"`
}

func (WordBombPostGameInfo) postGameInfo() {}

type AnagramsPostGameInfo struct {
	Type     string             `json:"type"`
	Original string             `json:"original"`
	Scores   []PlayerFloatStat  `json:"scores"`
	Winner   *uuid.UUID         `json:"winner,omitempty"`
}

func (AnagramsPostGameInfo) postGameInfo() {}

type GameEnded struct {
	Type         string       `json:"type"`
	NewRoomOwner *uuid.UUID   `json:"new_room_owner,omitempty"`
	Info         PostGameInfo `json:"info"`
}

func (GameEnded) serverMessage() {}

func NewGameEnded(newOwner *uuid.UUID, info PostGameInfo) GameEnded {
	return GameEnded{Type: "GameEnded", NewRoomOwner: newOwner, Info: info}
}

type WordBombInputOut struct {
	Type  string    `json:"type"`
	UUID  uuid.UUID `json:"uuid"`
	Input string    `json:"input"`
}

func (WordBombInputOut) serverMessage() {}

func NewWordBombInputOut(identity uuid.UUID, input string) WordBombInputOut {
	return WordBombInputOut{Type: "WordBombInput", UUID: identity, Input: input}
}

// GuessRejection is a reason an inbound guess was refused. It carries no data
// beyond its own discriminator, so it is represented directly rather than
// through an interface.
type GuessRejection struct {
	Type string `json:"type"`
}

var (
	ReasonPromptNotIn    = GuessRejection{Type: "PromptNotIn"}
	ReasonNotEnglish     = GuessRejection{Type: "NotEnglish"}
	ReasonAlreadyUsed    = GuessRejection{Type: "AlreadyUsed"}
	ReasonNotLongEnough  = GuessRejection{Type: "NotLongEnough"}
	ReasonPromptMismatch = GuessRejection{Type: "PromptMismatch"}
)

type WordBombInvalidGuess struct {
	Type   string         `json:"type"`
	UUID   uuid.UUID      `json:"uuid"`
	Reason GuessRejection `json:"reason"`
}

func (WordBombInvalidGuess) serverMessage() {}

func NewWordBombInvalidGuess(identity uuid.UUID, reason GuessRejection) WordBombInvalidGuess {
	return WordBombInvalidGuess{Type: "WordBombInvalidGuess", UUID: identity, Reason: reason}
}

type WordBombPrompt struct {
	Type       string    `json:"type"`
	Correct    *string   `json:"correct,omitempty"`
	LifeChange int8      `json:"life_change"`
	Prompt     string    `json:"prompt"`
	Turn       uuid.UUID `json:"turn"`
}

func (WordBombPrompt) serverMessage() {}

func NewWordBombPrompt(correct *string, lifeChange int8, prompt string, turn uuid.UUID) WordBombPrompt {
	return WordBombPrompt{Type: "WordBombPrompt", Correct: correct, LifeChange: lifeChange, Prompt: prompt, Turn: turn}
}

type AnagramsCorrectGuess struct {
	Type string    `json:"type"`
	UUID uuid.UUID `json:"uuid"`
	Word string    `json:"word"`
}

func (AnagramsCorrectGuess) serverMessage() {}

func NewAnagramsCorrectGuess(identity uuid.UUID, word string) AnagramsCorrectGuess {
	return AnagramsCorrectGuess{Type: "AnagramsCorrectGuess", UUID: identity, Word: word}
}

type AnagramsInvalidGuess struct {
	Type   string         `json:"type"`
	Reason GuessRejection `json:"reason"`
}

func (AnagramsInvalidGuess) serverMessage() {}

func NewAnagramsInvalidGuess(reason GuessRejection) AnagramsInvalidGuess {
	return AnagramsInvalidGuess{Type: "AnagramsInvalidGuess", Reason: reason}
}

type AnagramPair struct {
	Original string `json:"original"`
	Anagram  string `json:"anagram"`
}

type PracticeBatch struct {
	Type     string        `json:"type"`
	Game     string        `json:"game"`
	Prompts  []string      `json:"prompts,omitempty"`
	Anagrams []AnagramPair `json:"anagrams,omitempty"`
}

func (PracticeBatch) serverMessage() {}

func NewPracticeBatchWordBomb(prompts []string) PracticeBatch {
	return PracticeBatch{Type: "PracticeBatch", Game: "WordBomb", Prompts: prompts}
}

func NewPracticeBatchAnagrams(pairs []AnagramPair) PracticeBatch {
	return PracticeBatch{Type: "PracticeBatch", Game: "Anagrams", Anagrams: pairs}
}

type PracticeResult struct {
	Type   string          `json:"type"`
	Game   string          `json:"game"`
	Prompt string          `json:"prompt"`
	Input  string          `json:"input"`
	Valid  bool            `json:"valid"`
	Reason *GuessRejection `json:"reason,omitempty"`
}

func (PracticeResult) serverMessage() {}

func NewPracticeResult(game, prompt, input string, valid bool, reason *GuessRejection) PracticeResult {
	return PracticeResult{Type: "PracticeResult", Game: game, Prompt: prompt, Input: input, Valid: valid, Reason: reason}
}
