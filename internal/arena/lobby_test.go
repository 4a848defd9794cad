package arena

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joinLobby(t *testing.T, m *Manager, room, username string) uuid.UUID {
	t.Helper()
	id, err := m.Join(room, JoinParams{Username: username}, uuid.New(), newTestOutbox())
	require.NoError(t, err)
	return id
}

func TestClientReady_TwoPlayersStartsCountdown(t *testing.T) {
	m := newTestManager(t)
	a := joinLobby(t, m, "abc", "alice")
	b := joinLobby(t, m, "abc", "bob")

	require.NoError(t, m.ClientReady(SenderInfo{Room: "abc", Identity: a}))
	require.NoError(t, m.ClientReady(SenderInfo{Room: "abc", Identity: b}))

	room := m.getRoom("abc")
	room.mu.Lock()
	lobby := room.State.Lobby
	require.NotNil(t, lobby.Countdown)
	assert.Equal(t, CountdownSeconds, lobby.Countdown.TimeLeft)
	lobby.Countdown.Handle.Cancel()
	room.mu.Unlock()
}

func TestClientUnready_DroppingBelowThresholdStopsCountdown(t *testing.T) {
	m := newTestManager(t)
	a := joinLobby(t, m, "abc", "alice")
	b := joinLobby(t, m, "abc", "bob")
	require.NoError(t, m.ClientReady(SenderInfo{Room: "abc", Identity: a}))
	require.NoError(t, m.ClientReady(SenderInfo{Room: "abc", Identity: b}))

	require.NoError(t, m.ClientUnready(SenderInfo{Room: "abc", Identity: a}))

	room := m.getRoom("abc")
	room.mu.Lock()
	assert.Nil(t, room.State.Lobby.Countdown)
	room.mu.Unlock()
}

func TestCountdownTick_ReachingZeroStartsGame(t *testing.T) {
	m := newTestManager(t)
	a := joinLobby(t, m, "abc", "alice")
	b := joinLobby(t, m, "abc", "bob")
	require.NoError(t, m.ClientReady(SenderInfo{Room: "abc", Identity: a}))
	require.NoError(t, m.ClientReady(SenderInfo{Room: "abc", Identity: b}))

	room := m.getRoom("abc")
	room.mu.Lock()
	room.State.Lobby.Countdown.Handle.Cancel()
	room.State.Lobby.Countdown.TimeLeft = 1
	room.mu.Unlock()

	cont := m.countdownTick("abc")
	assert.False(t, cont, "tick reaching zero must stop the loop")

	room.mu.Lock()
	defer room.mu.Unlock()
	assert.Equal(t, KindWordBomb, room.State.Kind, "game should have started")
}

func TestCountdownTick_BailsWithoutStartingIfReadyDropsBelowThreshold(t *testing.T) {
	m := newTestManager(t)
	a := joinLobby(t, m, "abc", "alice")
	_ = joinLobby(t, m, "abc", "bob")
	require.NoError(t, m.ClientReady(SenderInfo{Room: "abc", Identity: a}))

	room := m.getRoom("abc")
	room.mu.Lock()
	// Force a countdown state with only one ready player, as if the second
	// unreadied between ticks without the check firing synchronously.
	room.State.Lobby.Countdown = &Countdown{TimeLeft: 1, Handle: &TaskHandle{cancel: func() {}}}
	room.mu.Unlock()

	cont := m.countdownTick("abc")
	assert.False(t, cont)

	room.mu.Lock()
	defer room.mu.Unlock()
	assert.Equal(t, KindLobby, room.State.Kind)
	assert.Nil(t, room.State.Lobby.Countdown)
}

func TestClientStartEarly_NonOwnerRejected(t *testing.T) {
	m := newTestManager(t)
	a := joinLobby(t, m, "abc", "alice")
	b := joinLobby(t, m, "abc", "bob")
	require.NoError(t, m.ClientReady(SenderInfo{Room: "abc", Identity: a}))
	require.NoError(t, m.ClientReady(SenderInfo{Room: "abc", Identity: b}))

	err := m.ClientStartEarly(SenderInfo{Room: "abc", Identity: b})
	assert.ErrorIs(t, err, ErrNotOwner)

	room := m.getRoom("abc")
	room.mu.Lock()
	room.State.Lobby.Countdown.Handle.Cancel()
	room.mu.Unlock()
}

func TestClientStartEarly_OwnerStartsImmediately(t *testing.T) {
	m := newTestManager(t)
	a := joinLobby(t, m, "abc", "alice")
	b := joinLobby(t, m, "abc", "bob")
	require.NoError(t, m.ClientReady(SenderInfo{Room: "abc", Identity: a}))
	require.NoError(t, m.ClientReady(SenderInfo{Room: "abc", Identity: b}))

	require.NoError(t, m.ClientStartEarly(SenderInfo{Room: "abc", Identity: a}))

	room := m.getRoom("abc")
	room.mu.Lock()
	defer room.mu.Unlock()
	assert.Equal(t, KindWordBomb, room.State.Kind)
}

func TestClientRoomSettings_OnlyOwnerInLobby(t *testing.T) {
	m := newTestManager(t)
	a := joinLobby(t, m, "abc", "alice")
	b := joinLobby(t, m, "abc", "bob")

	err := m.ClientRoomSettings(SenderInfo{Room: "abc", Identity: b}, roomSettingsMsg(false, "WordBomb", 400))
	assert.ErrorIs(t, err, ErrNotOwner)

	require.NoError(t, m.ClientRoomSettings(SenderInfo{Room: "abc", Identity: a}, roomSettingsMsg(true, "Anagrams", 400)))

	room := m.getRoom("abc")
	room.mu.Lock()
	defer room.mu.Unlock()
	assert.True(t, room.Settings.Public)
	assert.Equal(t, GameAnagrams, room.Settings.Game)
}
