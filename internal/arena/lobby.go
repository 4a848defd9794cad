package arena

import (
	"log"

	"github.com/google/uuid"

	"github.com/scythe504/skribblr-backend/internal/protocol"
)

// ClientReady marks sender ready in the Lobby and re-evaluates the countdown.
func (m *Manager) ClientReady(sender SenderInfo) error {
	room, err := m.requireRoom(sender.Room)
	if err != nil {
		return err
	}
	room.mu.Lock()
	defer room.mu.Unlock()

	lobby, err := room.State.TryLobby()
	if err != nil {
		return err
	}
	if _, already := lobby.Ready[sender.Identity]; already {
		return nil
	}
	lobby.Ready[sender.Identity] = struct{}{}

	countdownUpdate := m.checkCountdown(room, lobby)
	room.Clients.Broadcast(protocol.NewReadyPlayers(readyList(lobby.Ready), countdownUpdate))
	log.Printf("[Manager.ClientReady] room=%s identity=%s ready_count=%d", sender.Room, sender.Identity, len(lobby.Ready))
	return nil
}

// ClientUnready reverses ClientReady.
func (m *Manager) ClientUnready(sender SenderInfo) error {
	room, err := m.requireRoom(sender.Room)
	if err != nil {
		return err
	}
	room.mu.Lock()
	defer room.mu.Unlock()

	lobby, err := room.State.TryLobby()
	if err != nil {
		return err
	}
	if _, ready := lobby.Ready[sender.Identity]; !ready {
		return nil
	}
	delete(lobby.Ready, sender.Identity)

	countdownUpdate := m.checkCountdown(room, lobby)
	room.Clients.Broadcast(protocol.NewReadyPlayers(readyList(lobby.Ready), countdownUpdate))
	log.Printf("[Manager.ClientUnready] room=%s identity=%s ready_count=%d", sender.Room, sender.Identity, len(lobby.Ready))
	return nil
}

// ClientStartEarly lets the room owner force a start once at least two
// players are ready, bypassing the rest of the countdown.
func (m *Manager) ClientStartEarly(sender SenderInfo) error {
	room, err := m.requireRoom(sender.Room)
	if err != nil {
		return err
	}
	room.mu.Lock()
	defer room.mu.Unlock()

	lobby, err := room.State.TryLobby()
	if err != nil {
		return err
	}
	if sender.Identity != room.Owner {
		return ErrNotOwner
	}
	if len(lobby.Ready) < CountdownThreshold {
		return nil
	}
	if lobby.Countdown != nil {
		lobby.Countdown.Handle.Cancel()
		lobby.Countdown = nil
	}
	m.startGameLocked(room)
	log.Printf("[Manager.ClientStartEarly] room=%s started by owner", sender.Room)
	return nil
}

// ClientRoomSettings replaces the whole settings object. Owner-only, and only
// while the room is in the Lobby.
func (m *Manager) ClientRoomSettings(sender SenderInfo, settings protocol.RoomSettingsMsg) error {
	room, err := m.requireRoom(sender.Room)
	if err != nil {
		return err
	}
	room.mu.Lock()
	defer room.mu.Unlock()

	if _, err := room.State.TryLobby(); err != nil {
		return err
	}
	if sender.Identity != room.Owner {
		return ErrNotOwner
	}
	gameKind, err := parseGameKind(settings.Game)
	if err != nil {
		return err
	}

	room.Settings = RoomSettings{
		Public: settings.Public,
		Game:   gameKind,
		WordBomb: WordBombSettings{MinWPM: settings.WordBomb.MinWPM},
	}
	room.Clients.Broadcast(protocol.NewRoomSettingsOut(room.Settings.Public, string(room.Settings.Game), room.Settings.WordBomb.MinWPM))
	return nil
}

// checkCountdown re-evaluates whether a countdown should be running given the
// current ready count, starting or stopping it as needed, and returns the
// CountdownUpdate to report alongside a ReadyPlayers message. Returns nil when
// nothing about the countdown changed.
func (m *Manager) checkCountdown(room *Room, lobby *LobbyState) protocol.CountdownUpdate {
	readyCount := len(lobby.Ready)
	switch {
	case lobby.Countdown != nil && readyCount < CountdownThreshold:
		lobby.Countdown.Handle.Cancel()
		lobby.Countdown = nil
		return protocol.NewCountdownStopped()
	case lobby.Countdown == nil && readyCount >= CountdownThreshold:
		roomName := room.Name
		handle := spawnCountdownTicker(CountdownSeconds, func(tick int) bool {
			return m.countdownTick(roomName)
		})
		lobby.Countdown = &Countdown{TimeLeft: CountdownSeconds, Handle: handle}
		return protocol.NewCountdownInProgress(CountdownSeconds)
	default:
		return nil
	}
}

// countdownTick fires once per second from the countdown's own goroutine. It
// re-looks-up the room by name (never holds a direct *Room reference across
// the tick boundary) and re-validates the guard before mutating anything.
func (m *Manager) countdownTick(roomName string) bool {
	room := m.getRoom(roomName)
	if room == nil {
		return false
	}
	room.mu.Lock()
	defer room.mu.Unlock()

	lobby, err := room.State.TryLobby()
	if err != nil || lobby.Countdown == nil {
		log.Printf("[Manager.countdownTick] room=%s guard failed, abandoning tick", roomName)
		return false
	}

	lobby.Countdown.TimeLeft--
	left := lobby.Countdown.TimeLeft
	if left <= 0 {
		if len(lobby.Ready) < CountdownThreshold {
			lobby.Countdown = nil
			room.Clients.Broadcast(protocol.NewReadyPlayers(readyList(lobby.Ready), protocol.NewCountdownStopped()))
			return false
		}
		m.startGameLocked(room)
		return false
	}

	room.Clients.Broadcast(protocol.NewStartingCountdown(uint8(left)))
	return true
}

// startGameLocked transitions the room from Lobby into the configured game.
// Callers must already hold room.mu.
func (m *Manager) startGameLocked(room *Room) {
	lobby := room.State.Lobby
	participants := make([]uuid.UUID, 0, len(lobby.Ready))
	for id := range lobby.Ready {
		participants = append(participants, id)
	}

	rejoinTokens := make(map[uuid.UUID]uuid.UUID, len(participants))
	for _, id := range participants {
		token := uuid.New()
		c := room.Clients[id]
		c.RejoinToken = token
		c.HasRejoinToken = true
		rejoinTokens[id] = token
	}

	switch room.Settings.Game {
	case GameWordBomb:
		game := m.newWordBombGame(room, participants)
		room.State = GameState{Kind: KindWordBomb, WordBomb: game}
		room.Clients.SendEach(func(id uuid.UUID, c *Client) protocol.ServerMessage {
			var token *uuid.UUID
			if t, ok := rejoinTokens[id]; ok {
				token = &t
			}
			return protocol.NewGameStarted(token, wordBombStateInfoFor(game, id))
		})
	case GameAnagrams:
		game := m.newAnagramsGame(room, participants)
		room.State = GameState{Kind: KindAnagrams, Anagrams: game}
		room.Clients.SendEach(func(id uuid.UUID, c *Client) protocol.ServerMessage {
			var token *uuid.UUID
			if t, ok := rejoinTokens[id]; ok {
				token = &t
			}
			return protocol.NewGameStarted(token, anagramsStateInfo(game))
		})
	}
	log.Printf("[Manager.startGameLocked] room=%s game=%s participants=%d", room.Name, room.Settings.Game, len(participants))
}
