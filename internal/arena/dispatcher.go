package arena

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/scythe504/skribblr-backend/internal/protocol"
	"github.com/scythe504/skribblr-backend/internal/ratelimit"
)

// SenderInfo identifies who a dispatched message came from: which room and
// which client identity within it. Every Manager handler takes one as its
// first argument, mirroring original_source/server/src/messages.rs's
// SenderInfo{uuid, room}.
type SenderInfo struct {
	Room     string
	Identity uuid.UUID
}

// Dispatcher is the single place an inbound ClientMessage is rate-limited,
// routed to the matching Manager method, and any resulting error translated
// into a wire Error message. Nothing downstream of Handle inspects an error's
// type again.
type Dispatcher struct {
	manager *Manager
	limiter *ratelimit.Limiter
}

func NewDispatcher(manager *Manager, limiter *ratelimit.Limiter) *Dispatcher {
	return &Dispatcher{manager: manager, limiter: limiter}
}

func (d *Dispatcher) Handle(sender SenderInfo, msg protocol.ClientMessage) {
	if !d.limiter.Allow(sender.Identity) {
		log.Printf("[Dispatcher.Handle] room=%s identity=%s rate limited", sender.Room, sender.Identity)
		d.manager.sendError(sender, ErrRateLimited.Error())
		return
	}

	var err error
	switch m := msg.(type) {
	case protocol.Ping:
		d.manager.Pong(sender, m.Timestamp)
		return
	case protocol.Ready:
		err = d.manager.ClientReady(sender)
	case protocol.Unready:
		err = d.manager.ClientUnready(sender)
	case protocol.StartEarly:
		err = d.manager.ClientStartEarly(sender)
	case protocol.RoomSettingsMsg:
		err = d.manager.ClientRoomSettings(sender, m)
	case protocol.ChatMessage:
		err = d.manager.ClientChatMessage(sender, m.Content)
	case protocol.WordBombInput:
		err = d.manager.WordBombInputUpdate(sender, m.Input)
	case protocol.WordBombGuess:
		err = d.manager.WordBombGuessMsg(sender, m.Word)
	case protocol.AnagramsGuess:
		err = d.manager.AnagramsGuessMsg(sender, m.Word)
	case protocol.PracticeRequest:
		d.manager.PracticeRequest(sender, m.Game)
		return
	case protocol.PracticeSubmission:
		d.manager.PracticeSubmission(sender, m)
		return
	default:
		err = fmt.Errorf("unsupported message type %T", msg)
	}

	if err != nil {
		log.Printf("[Dispatcher.Handle] room=%s identity=%s error=%v", sender.Room, sender.Identity, err)
		d.manager.sendError(sender, err.Error())
	}
}

// ClientChatMessage broadcasts chat content, censoring it first if the room
// is public.
func (m *Manager) ClientChatMessage(sender SenderInfo, content string) error {
	if len(content) > MaxChatBytes {
		return ErrChatTooLong
	}
	room, err := m.requireRoom(sender.Room)
	if err != nil {
		return err
	}
	room.mu.Lock()
	defer room.mu.Unlock()

	if _, ok := room.Clients[sender.Identity]; !ok {
		return ErrClientNotFound
	}

	out := content
	if room.Settings.Public {
		out = m.censor.Censor(content)
	}
	room.Clients.Broadcast(protocol.NewChatMessageOut(sender.Identity, out))
	return nil
}

// Pong replies to a Ping, sender only.
func (m *Manager) Pong(sender SenderInfo, timestamp uint64) {
	room := m.getRoom(sender.Room)
	if room == nil {
		return
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	if c, ok := room.Clients[sender.Identity]; ok {
		sendTo(c, protocol.NewPong(timestamp))
	}
}

func (m *Manager) sendError(sender SenderInfo, message string) {
	room := m.getRoom(sender.Room)
	if room == nil {
		return
	}
	room.mu.Lock()
	defer room.mu.Unlock()
	if c, ok := room.Clients[sender.Identity]; ok {
		sendTo(c, protocol.NewError(message))
	}
}
