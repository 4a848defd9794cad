package arena

import (
	"log"

	"github.com/scythe504/skribblr-backend/internal/protocol"
)

// endGame implements spec.md §4.5's end_game: drop sockets that never
// reconnected, clear every remaining client's rejoin token, elect a new owner
// if needed, broadcast the result, and reset the room to a fresh Lobby.
// Callers must already hold room.mu.
func (m *Manager) endGame(room *Room, info protocol.PostGameInfo) {
	for id, c := range room.Clients {
		if !c.Connected {
			delete(room.Clients, id)
			continue
		}
		c.HasRejoinToken = false
		c.RejoinToken = [16]byte{}
	}

	newOwner := electOwner(room)
	room.Clients.Broadcast(protocol.NewGameEnded(newOwner, info))
	room.State = newLobbyState()
	log.Printf("[Manager.endGame] room=%s reset to lobby, remaining_clients=%d", room.Name, len(room.Clients))
}
