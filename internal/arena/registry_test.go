package arena

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoin_FirstClientBecomesOwner(t *testing.T) {
	m := newTestManager(t)
	outbox := newTestOutbox()

	id, err := m.Join("abc", JoinParams{Username: "alice"}, uuid.New(), outbox)
	require.NoError(t, err)

	room := m.getRoom("abc")
	require.NotNil(t, room)
	assert.Equal(t, id, room.Owner)
}

func TestJoin_RejectsRoomFull(t *testing.T) {
	m := newTestManager(t)
	for i := 0; i < MaxClientsPerRoom; i++ {
		_, err := m.Join("full", JoinParams{Username: "p"}, uuid.New(), newTestOutbox())
		require.NoError(t, err)
	}
	_, err := m.Join("full", JoinParams{Username: "overflow"}, uuid.New(), newTestOutbox())
	assert.ErrorIs(t, err, ErrRoomFull)
}

func TestJoin_RejectsInvalidUsername(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Join("abc", JoinParams{Username: ""}, uuid.New(), newTestOutbox())
	assert.ErrorIs(t, err, ErrInvalidUsername)

	_, err = m.Join("abc", JoinParams{Username: "way-too-long-name"}, uuid.New(), newTestOutbox())
	assert.ErrorIs(t, err, ErrInvalidUsername)
}

func TestJoin_RejectsInvalidRoomName(t *testing.T) {
	m := newTestManager(t)
	_, err := m.Join("toolongroom", JoinParams{Username: "alice"}, uuid.New(), newTestOutbox())
	assert.ErrorIs(t, err, ErrInvalidRoomName)
}

func TestJoin_ReconnectReplacesSocketAndClosesOld(t *testing.T) {
	m := newTestManager(t)
	firstSocket := uuid.New()
	firstOutbox := newTestOutbox()

	id, err := m.Join("abc", JoinParams{Username: "alice"}, firstSocket, firstOutbox)
	require.NoError(t, err)

	room := m.getRoom("abc")
	room.mu.Lock()
	room.Clients[id].HasRejoinToken = true
	room.Clients[id].RejoinToken = uuid.New()
	token := room.Clients[id].RejoinToken
	room.mu.Unlock()

	secondSocket := uuid.New()
	secondOutbox := newTestOutbox()
	reconnectedID, err := m.Join("abc", JoinParams{Username: "alice", RejoinToken: &token}, secondSocket, secondOutbox)
	require.NoError(t, err)
	assert.Equal(t, id, reconnectedID, "reconnect must resolve to the same identity")

	// The old outbox still holds its own join-time messages; the close
	// instruction is queued after them.
	var last OutboundEvent
	for len(firstOutbox) > 0 {
		last = <-firstOutbox
	}
	assert.True(t, last.IsClose(), "previous socket should receive a close instruction")
	assert.Equal(t, CloseCodeAbnormal, last.CloseCode)
}

func TestLeave_StaleSocketTokenIsNoOp(t *testing.T) {
	m := newTestManager(t)
	socket := uuid.New()
	id, err := m.Join("abc", JoinParams{Username: "alice"}, socket, newTestOutbox())
	require.NoError(t, err)

	m.Leave("abc", id, uuid.New()) // wrong socket token

	room := m.getRoom("abc")
	room.mu.Lock()
	defer room.mu.Unlock()
	assert.True(t, room.Clients[id].Connected, "a stale disconnect must not affect the live connection")
}

func TestLeave_EmptyRoomIsDeleted(t *testing.T) {
	m := newTestManager(t)
	socket := uuid.New()
	id, err := m.Join("abc", JoinParams{Username: "alice"}, socket, newTestOutbox())
	require.NoError(t, err)

	m.Leave("abc", id, socket)

	assert.Nil(t, m.getRoom("abc"))
}

func TestLeave_OwnerLeavingElectsNewOwner(t *testing.T) {
	m := newTestManager(t)
	socketA := uuid.New()
	idA, err := m.Join("abc", JoinParams{Username: "alice"}, socketA, newTestOutbox())
	require.NoError(t, err)
	_, err = m.Join("abc", JoinParams{Username: "bob"}, uuid.New(), newTestOutbox())
	require.NoError(t, err)

	m.Leave("abc", idA, socketA)

	room := m.getRoom("abc")
	room.mu.Lock()
	defer room.mu.Unlock()
	assert.NotEqual(t, idA, room.Owner)
	_, stillPresent := room.Clients[idA]
	assert.False(t, stillPresent, "a leaving client is removed from the lobby roster entirely")
}
