package arena

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scythe504/skribblr-backend/internal/protocol"
)

func TestPracticeRequest_WordBombSendsFiftyPrompts(t *testing.T) {
	m := newTestManager(t)
	id := joinLobby(t, m, "abc", "alice")

	m.PracticeRequest(SenderInfo{Room: "abc", Identity: id}, "WordBomb")

	room := m.getRoom("abc")
	msg := drainOutbox(t, room, id)
	batch, ok := msg.(protocol.PracticeBatch)
	require.True(t, ok)
	assert.Equal(t, "WordBomb", batch.Game)
	assert.Len(t, batch.Prompts, practiceBatchSize)
	assert.Nil(t, batch.Anagrams)
}

func TestPracticeRequest_AnagramsSendsFiftyPairs(t *testing.T) {
	m := newTestManager(t)
	id := joinLobby(t, m, "abc", "alice")

	m.PracticeRequest(SenderInfo{Room: "abc", Identity: id}, "Anagrams")

	room := m.getRoom("abc")
	msg := drainOutbox(t, room, id)
	batch, ok := msg.(protocol.PracticeBatch)
	require.True(t, ok)
	assert.Equal(t, "Anagrams", batch.Game)
	assert.Len(t, batch.Anagrams, practiceBatchSize)
}

func TestPracticeSubmission_ValidWordBombGuessReportsValid(t *testing.T) {
	m := newTestManager(t)
	id := joinLobby(t, m, "abc", "alice")

	m.PracticeSubmission(SenderInfo{Room: "abc", Identity: id}, protocol.PracticeSubmission{
		Game: "WordBomb", Prompt: "an", Input: "banana",
	})

	room := m.getRoom("abc")
	msg := drainOutbox(t, room, id)
	result, ok := msg.(protocol.PracticeResult)
	require.True(t, ok)
	assert.True(t, result.Valid)
	assert.Nil(t, result.Reason)
}

func TestPracticeSubmission_InvalidAnagramsGuessReportsReason(t *testing.T) {
	m := newTestManager(t)
	id := joinLobby(t, m, "abc", "alice")

	m.PracticeSubmission(SenderInfo{Room: "abc", Identity: id}, protocol.PracticeSubmission{
		Game: "Anagrams", Prompt: "banana", Input: "orange",
	})

	room := m.getRoom("abc")
	msg := drainOutbox(t, room, id)
	result, ok := msg.(protocol.PracticeResult)
	require.True(t, ok)
	assert.False(t, result.Valid)
	require.NotNil(t, result.Reason)
}

func TestPracticeSubmission_DoesNotTouchRoomGameState(t *testing.T) {
	m := newTestManager(t)
	id := joinLobby(t, m, "abc", "alice")

	m.PracticeSubmission(SenderInfo{Room: "abc", Identity: id}, protocol.PracticeSubmission{
		Game: "WordBomb", Prompt: "an", Input: "banana",
	})

	room := m.getRoom("abc")
	room.mu.Lock()
	defer room.mu.Unlock()
	assert.Equal(t, KindLobby, room.State.Kind, "practice mode must never mutate the room's real game state")
}
