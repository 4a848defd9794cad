package arena

import (
	"log"
	"sync"

	"github.com/google/uuid"

	"github.com/scythe504/skribblr-backend/internal/censor"
	"github.com/scythe504/skribblr-backend/internal/dictionary"
	"github.com/scythe504/skribblr-backend/internal/protocol"
)

// Manager owns every room and the shared collaborators (dictionary, censor)
// the game engines consult. It is the entry point transport/dispatcher code
// calls into; callers never touch a *Room directly except through it.
type Manager struct {
	mu     sync.RWMutex
	rooms  map[string]*Room
	dict   *dictionary.Dictionary
	censor *censor.Censor
}

func NewManager(dict *dictionary.Dictionary, cens *censor.Censor) *Manager {
	return &Manager{rooms: make(map[string]*Room), dict: dict, censor: cens}
}

func (m *Manager) getOrCreateRoom(name string) *Room {
	m.mu.Lock()
	defer m.mu.Unlock()
	if r, ok := m.rooms[name]; ok {
		return r
	}
	r := newRoom(name)
	m.rooms[name] = r
	log.Printf("[Manager.getOrCreateRoom] created room=%s", name)
	return r
}

func (m *Manager) getRoom(name string) *Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[name]
}

func (m *Manager) requireRoom(name string) (*Room, error) {
	r := m.getRoom(name)
	if r == nil {
		return nil, ErrRoomNotFound
	}
	return r, nil
}

func (m *Manager) deleteRoom(name string) {
	m.mu.Lock()
	delete(m.rooms, name)
	m.mu.Unlock()
	log.Printf("[Manager.deleteRoom] removed empty room=%s", name)
}

// RoomExists reports whether a room with this name currently exists, used by
// the /api/room-available adjunct.
func (m *Manager) RoomExists(name string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.rooms[name]
	return ok
}

// RoomHasCapacity reports whether an existing room still has a free seat. A
// room that doesn't exist is not this function's concern — callers check
// RoomExists first.
func (m *Manager) RoomHasCapacity(name string) bool {
	room := m.getRoom(name)
	if room == nil {
		return false
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	return len(room.Clients) < MaxClientsPerRoom
}

// ServerInfo is the snapshot backing /api/info.
type ServerInfo struct {
	ClientsConnected int
	PublicRooms      []PublicRoomInfo
}

type PublicRoomInfo struct {
	Name    string
	Game    GameKind
	Players []string
}

func (m *Manager) Info() ServerInfo {
	m.mu.RLock()
	rooms := make([]*Room, 0, len(m.rooms))
	for _, r := range m.rooms {
		rooms = append(rooms, r)
	}
	m.mu.RUnlock()

	var info ServerInfo
	for _, r := range rooms {
		r.mu.Lock()
		connected := 0
		var players []string
		for _, c := range r.Clients {
			if c.Connected {
				connected++
				players = append(players, c.Username)
			}
		}
		info.ClientsConnected += connected
		if r.Settings.Public {
			info.PublicRooms = append(info.PublicRooms, PublicRoomInfo{Name: r.Name, Game: r.Settings.Game, Players: players})
		}
		r.mu.Unlock()
	}
	return info
}

func (m *Manager) buildInfo(room *Room, forIdentity uuid.UUID) protocol.Info {
	clients := make([]protocol.ClientInfo, 0, len(room.Clients))
	for id, c := range room.Clients {
		clients = append(clients, protocol.ClientInfo{UUID: id, Username: c.Username, Connected: c.Connected})
	}

	return protocol.NewInfo(forIdentity, protocol.RoomInfo{
		Owner: room.Owner,
		Settings: protocol.RoomSettingsMsg{
			Public: room.Settings.Public,
			Game:   string(room.Settings.Game),
			WordBomb: protocol.WordBombSettingsWire{MinWPM: room.Settings.WordBomb.MinWPM},
		},
		Clients: clients,
		State:   roomStateInfo(room.State, forIdentity),
	})
}

func roomStateInfo(state GameState, forIdentity uuid.UUID) protocol.RoomStateInfo {
	switch state.Kind {
	case KindLobby:
		lobby := state.Lobby
		ready := make([]uuid.UUID, 0, len(lobby.Ready))
		for id := range lobby.Ready {
			ready = append(ready, id)
		}
		var countdown *uint8
		if lobby.Countdown != nil {
			v := uint8(lobby.Countdown.TimeLeft)
			countdown = &v
		}
		return protocol.NewLobbyStateInfo(ready, countdown)
	case KindWordBomb:
		return wordBombStateInfoFor(state.WordBomb, forIdentity)
	case KindAnagrams:
		return anagramsStateInfo(state.Anagrams)
	default:
		return protocol.NewLobbyStateInfo(nil, nil)
	}
}

func wordBombStateInfoFor(game *WordBombState, forIdentity uuid.UUID) protocol.WordBombStateInfo {
	players := make([]protocol.WordBombPlayerInfo, 0, len(game.Players))
	var usedLetters []string
	for _, p := range game.Players {
		players = append(players, protocol.WordBombPlayerInfo{UUID: p.Identity, Input: p.Input, Lives: uint8(p.Lives)})
		if p.Identity == forIdentity {
			usedLetters = p.UsedLetters.Strings()
		}
	}
	return protocol.WordBombStateInfo{
		Type:        "WordBomb",
		Players:     players,
		Turn:        game.Turn,
		Prompt:      game.Prompt,
		UsedLetters: usedLetters,
	}
}

func anagramsStateInfo(game *AnagramsState) protocol.AnagramsStateInfo {
	players := make([]uuid.UUID, len(game.Players))
	for i, p := range game.Players {
		players[i] = p.Identity
	}
	return protocol.AnagramsStateInfo{Type: "Anagrams", Players: players, Anagram: game.Anagram}
}

func readyList(ready map[uuid.UUID]struct{}) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(ready))
	for id := range ready {
		out = append(out, id)
	}
	return out
}
