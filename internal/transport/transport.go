// Package transport upgrades incoming HTTP connections to WebSockets and
// glues each socket's read/write pumps to the arena engine: a read pump
// decodes inbound frames and hands them to the dispatcher, a write pump
// drains the client's outbox and turns it into either a JSON frame or a
// close handshake.
//
// Grounded on internal/websockets/ws.go and internal/game/websocket.go in the
// teacher repo (upgrade, query-param extraction, one read-loop goroutine per
// connection), generalized from the drawing game's single Message[any]
// envelope to the tagged ClientMessage/ServerMessage pair in internal/protocol.
package transport

import (
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"

	"github.com/scythe504/skribblr-backend/internal/arena"
	"github.com/scythe504/skribblr-backend/internal/protocol"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	outboxCapacity = 32
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler wires an arena.Manager and arena.Dispatcher to incoming WebSocket
// connections.
type Handler struct {
	manager    *arena.Manager
	dispatcher *arena.Dispatcher
}

func New(manager *arena.Manager, dispatcher *arena.Dispatcher) *Handler {
	return &Handler{manager: manager, dispatcher: dispatcher}
}

// ServeWS upgrades the connection, joins the named room, and runs the
// connection's read/write pumps until it disconnects.
func (h *Handler) ServeWS(w http.ResponseWriter, r *http.Request) {
	roomName := mux.Vars(r)["room"]

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[transport.ServeWS] upgrade failed: %v", err)
		return
	}

	username := r.URL.Query().Get("username")
	var rejoinToken *uuid.UUID
	if raw := r.URL.Query().Get("token"); raw != "" {
		if parsed, err := uuid.Parse(raw); err == nil {
			rejoinToken = &parsed
		}
	}

	socketToken := uuid.New()
	outbox := make(chan arena.OutboundEvent, outboxCapacity)

	identity, err := h.manager.Join(roomName, arena.JoinParams{Username: username, RejoinToken: rejoinToken}, socketToken, outbox)
	if err != nil {
		log.Printf("[transport.ServeWS] room=%s join rejected: %v", roomName, err)
		closeWithReason(conn, websocket.ClosePolicyViolation, err.Error())
		conn.Close()
		return
	}

	sender := arena.SenderInfo{Room: roomName, Identity: identity}
	done := make(chan struct{})
	go h.writePump(conn, outbox, done)
	h.readPump(conn, sender, socketToken)

	close(done)
	conn.Close()
}

// readPump blocks reading frames off the socket until it errors out or
// receives a close, then tells the manager this socket is gone.
func (h *Handler) readPump(conn *websocket.Conn, sender arena.SenderInfo, socketToken uuid.UUID) {
	defer h.manager.Leave(sender.Room, sender.Identity, socketToken)

	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[transport.readPump] room=%s identity=%s unexpected close: %v", sender.Room, sender.Identity, err)
			}
			return
		}

		msg, err := protocol.DecodeClientMessage(raw)
		if err != nil {
			log.Printf("[transport.readPump] room=%s identity=%s decode error: %v", sender.Room, sender.Identity, err)
			continue
		}
		h.dispatcher.Handle(sender, msg)
	}
}

// writePump owns the socket's write side exclusively: every outbound frame
// and every close handshake goes through this one goroutine, since
// gorilla/websocket forbids concurrent writers on the same connection.
func (h *Handler) writePump(conn *websocket.Conn, outbox chan arena.OutboundEvent, done chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case ev := <-outbox:
			if ev.IsClose() {
				closeWithReason(conn, ev.CloseCode, ev.CloseReason)
				return
			}
			data, err := protocol.EncodeServerMessage(ev.Message)
			if err != nil {
				log.Printf("[transport.writePump] encode error: %v", err)
				continue
			}
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// closeWithReason sends a close handshake. arena.CloseCodeAbnormal is 1006,
// which RFC 6455 reserves for describing a closure locally and never allows
// in a close frame, so it is sent as ClosePolicyViolation instead.
// arena.CloseCodeError (1011) is sent as CloseInternalServerErr, the same code.
func closeWithReason(conn *websocket.Conn, code int, reason string) {
	closeCode := code
	switch code {
	case arena.CloseCodeAbnormal:
		closeCode = websocket.ClosePolicyViolation
	case arena.CloseCodeError:
		closeCode = websocket.CloseInternalServerErr
	}
	deadline := time.Now().Add(writeWait)
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(closeCode, reason), deadline)
}
