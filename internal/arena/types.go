// Package arena implements the room/game-session engine: client registry,
// room lifecycle and owner election, lobby countdown, the Word Bomb and
// Anagrams state machines, task scheduling/cancellation, and the command
// dispatcher that ties inbound messages to all of the above.
package arena

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/scythe504/skribblr-backend/internal/protocol"
)

const (
	MaxClientsPerRoom  = 8
	MaxUsernameLen     = 12
	MaxRoomNameLen     = 6
	MaxChatBytes       = 250
	MaxWordBombInput   = 35
	CountdownSeconds   = 10
	CountdownThreshold = 2
	AnagramsDuration   = 30 * time.Second
	WordBombMinLength  = 6.0

	CloseCodeAbnormal = 1006
	CloseCodeError    = 1011
)

// GameKind selects which game a room plays once the lobby starts.
type GameKind string

const (
	GameWordBomb GameKind = "WordBomb"
	GameAnagrams GameKind = "Anagrams"
)

type WordBombSettings struct {
	MinWPM uint32
}

type RoomSettings struct {
	Public   bool
	Game     GameKind
	WordBomb WordBombSettings
}

// DefaultRoomSettings matches the defaults a freshly created room starts with.
func DefaultRoomSettings() RoomSettings {
	return RoomSettings{Public: false, Game: GameWordBomb, WordBomb: WordBombSettings{MinWPM: 500}}
}

// OutboundEvent is what a room places into a client's outbox: either a JSON
// message to send, or an instruction to close the socket with a given code.
// Bundling both into one channel keeps the registry from needing a second,
// transport-specific channel per client.
type OutboundEvent struct {
	Message     protocol.ServerMessage
	CloseCode   int
	CloseReason string
}

func (e OutboundEvent) IsClose() bool { return e.CloseCode != 0 }

// Client is one participant's seat in a room. It persists across reconnects:
// Socket/Outbox/Connected are swapped out, Identity and accumulated game state
// are not.
type Client struct {
	Identity      uuid.UUID
	Socket        uuid.UUID
	Connected     bool
	Outbox        chan OutboundEvent
	Username      string
	RejoinToken   uuid.UUID
	HasRejoinToken bool
}

// Clients is a room's client roster. Methods assume the caller already holds
// the owning Room's lock.
type Clients map[uuid.UUID]*Client

func (c Clients) Broadcast(msg protocol.ServerMessage) {
	for _, client := range c {
		if client.Connected {
			sendTo(client, msg)
		}
	}
}

func (c Clients) BroadcastExcept(msg protocol.ServerMessage, excluded uuid.UUID) {
	for id, client := range c {
		if id == excluded || !client.Connected {
			continue
		}
		sendTo(client, msg)
	}
}

func (c Clients) SendEach(f func(uuid.UUID, *Client) protocol.ServerMessage) {
	for id, client := range c {
		if client.Connected {
			sendTo(client, f(id, client))
		}
	}
}

func (c Clients) anyConnected() bool {
	for _, client := range c {
		if client.Connected {
			return true
		}
	}
	return false
}

func sendTo(c *Client, msg protocol.ServerMessage) {
	if c == nil || c.Outbox == nil {
		return
	}
	select {
	case c.Outbox <- OutboundEvent{Message: msg}:
	default:
	}
}

func sendEvent(ch chan OutboundEvent, ev OutboundEvent) {
	if ch == nil {
		return
	}
	select {
	case ch <- ev:
	default:
	}
}

// Room is one named arena game session: a roster of clients, the room's
// settings, and its current game state, all guarded by a single exclusive
// lock. Never suspend (block on I/O, sleep, or wait on another lock) while
// holding mu: every handler acquires it, mutates plus broadcasts
// synchronously, and releases it before returning.
type Room struct {
	mu       sync.Mutex
	Name     string
	Owner    uuid.UUID
	Settings RoomSettings
	Clients  Clients
	State    GameState
}

func newRoom(name string) *Room {
	return &Room{
		Name:     name,
		Settings: DefaultRoomSettings(),
		Clients:  Clients{},
		State:    newLobbyState(),
	}
}

// cancelPendingTask aborts whichever scheduled task belongs to the room's
// current state, if any. Called when a room empties out entirely.
func (r *Room) cancelPendingTask() {
	switch r.State.Kind {
	case KindLobby:
		if r.State.Lobby.Countdown != nil {
			r.State.Lobby.Countdown.Handle.Cancel()
		}
	case KindWordBomb:
		r.State.WordBomb.TimeoutTask.Cancel()
	case KindAnagrams:
		r.State.Anagrams.EndTask.Cancel()
	}
}

// electOwner assigns a new owner if the current one is no longer present in
// the room, returning the new owner when a change was made. Shared by the
// plain-leave path and the end-of-game path so the two cannot drift, per
// original_source/server/src/state/room.rs's check_for_new_room_owner.
func electOwner(room *Room) *uuid.UUID {
	if _, stillPresent := room.Clients[room.Owner]; stillPresent {
		return nil
	}
	if len(room.Clients) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, 0, len(room.Clients))
	for id := range room.Clients {
		ids = append(ids, id)
	}
	chosen := ids[randIntn(len(ids))]
	room.Owner = chosen
	return &chosen
}
