package arena

import (
	"log"

	"github.com/google/uuid"

	"github.com/scythe504/skribblr-backend/internal/protocol"
)

// JoinParams carries what a connecting socket supplies: the username it wants
// to display, and an optional rejoin token if it's trying to resume a seat it
// held earlier in the same game.
type JoinParams struct {
	Username    string
	RejoinToken *uuid.UUID
}

// Join implements spec.md §4.3's add algorithm: match an existing seat by
// rejoin token if offered and still present, otherwise allocate a fresh
// identity. Returns the identity assigned to this socket.
func (m *Manager) Join(roomName string, params JoinParams, socketToken uuid.UUID, outbox chan OutboundEvent) (uuid.UUID, error) {
	if err := validateRoomName(roomName); err != nil {
		return uuid.Nil, err
	}
	if err := validateUsername(params.Username); err != nil {
		return uuid.Nil, err
	}

	room := m.getOrCreateRoom(roomName)

	room.mu.Lock()
	defer room.mu.Unlock()

	if len(room.Clients) >= MaxClientsPerRoom {
		return uuid.Nil, ErrRoomFull
	}

	identity, reconnected, previousOutbox, wasConnected := resolveOrCreateClient(room, params, socketToken, outbox)

	if reconnected && wasConnected && previousOutbox != nil {
		log.Printf("[Manager.Join] room=%s identity=%s displacing previous socket", roomName, identity)
		sendEvent(previousOutbox, OutboundEvent{CloseCode: CloseCodeAbnormal, CloseReason: "reconnected from another socket"})
	}

	if reconnected {
		room.Clients.Broadcast(protocol.NewConnectionUpdate(identity, protocol.NewReconnected(params.Username)))
		log.Printf("[Manager.Join] room=%s identity=%s reconnected", roomName, identity)
	} else {
		room.Clients.Broadcast(protocol.NewConnectionUpdate(identity, protocol.NewConnected(params.Username)))
		log.Printf("[Manager.Join] room=%s identity=%s joined", roomName, identity)
	}

	sendTo(room.Clients[identity], m.buildInfo(room, identity))
	return identity, nil
}

func resolveOrCreateClient(room *Room, params JoinParams, socketToken uuid.UUID, outbox chan OutboundEvent) (identity uuid.UUID, reconnected bool, previousOutbox chan OutboundEvent, wasConnected bool) {
	if params.RejoinToken != nil {
		for id, c := range room.Clients {
			if c.HasRejoinToken && c.RejoinToken == *params.RejoinToken {
				previousOutbox = c.Outbox
				wasConnected = c.Connected
				c.Connected = true
				c.Socket = socketToken
				c.Outbox = outbox
				c.Username = params.Username
				return id, true, previousOutbox, wasConnected
			}
		}
	}

	identity = uuid.New()
	if len(room.Clients) == 0 {
		room.Owner = identity
	}
	room.Clients[identity] = &Client{
		Identity:  identity,
		Socket:    socketToken,
		Connected: true,
		Outbox:    outbox,
		Username:  params.Username,
	}
	return identity, false, nil, false
}

// Leave implements spec.md §4.3's remove algorithm. socketToken guards
// against a stale disconnect from a socket that has already been superseded
// by a reconnect; such calls are silently ignored.
func (m *Manager) Leave(roomName string, identity, socketToken uuid.UUID) {
	room := m.getRoom(roomName)
	if room == nil {
		return
	}

	room.mu.Lock()
	defer room.mu.Unlock()

	client, ok := room.Clients[identity]
	if !ok || client.Socket != socketToken || !client.Connected {
		return
	}
	client.Connected = false
	log.Printf("[Manager.Leave] room=%s identity=%s disconnected", roomName, identity)

	if !room.Clients.anyConnected() {
		room.cancelPendingTask()
		m.scheduleRoomDeletion(roomName)
		return
	}

	switch room.State.Kind {
	case KindLobby:
		delete(room.Clients, identity)
		lobby := room.State.Lobby
		if _, wasReady := lobby.Ready[identity]; wasReady {
			delete(lobby.Ready, identity)
			countdownUpdate := m.checkCountdown(room, lobby)
			room.Clients.Broadcast(protocol.NewReadyPlayers(readyList(lobby.Ready), countdownUpdate))
		}
		newOwner := electOwner(room)
		room.Clients.Broadcast(protocol.NewConnectionUpdate(identity, protocol.NewDisconnected(newOwner)))
	default:
		room.Clients.Broadcast(protocol.NewConnectionUpdate(identity, protocol.NewDisconnected(nil)))
	}
}

// scheduleRoomDeletion removes roomName from the registry. It is called while
// the room's own lock is held by the caller (Leave); deleting from the
// manager's map only needs the manager's lock, which is always acquired
// independently of any room lock, so no ordering hazard exists here.
func (m *Manager) scheduleRoomDeletion(roomName string) {
	m.mu.Lock()
	delete(m.rooms, roomName)
	m.mu.Unlock()
	log.Printf("[Manager.scheduleRoomDeletion] room=%s emptied and removed", roomName)
}
