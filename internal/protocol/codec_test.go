package protocol

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeClientMessage_RoundTrip(t *testing.T) {
	cases := []struct {
		name string
		json string
		want ClientMessage
	}{
		{"ping", `{"type":"Ping","timestamp":42}`, Ping{Timestamp: 42}},
		{"ready", `{"type":"Ready"}`, Ready{}},
		{"unready", `{"type":"Unready"}`, Unready{}},
		{"start_early", `{"type":"StartEarly"}`, StartEarly{}},
		{"chat", `{"type":"ChatMessage","content":"hello"}`, ChatMessage{Content: "hello"}},
		{"wb_input", `{"type":"WordBombInput","input":"ban"}`, WordBombInput{Input: "ban"}},
		{"wb_guess", `{"type":"WordBombGuess","word":"banana"}`, WordBombGuess{Word: "banana"}},
		{"ana_guess", `{"type":"AnagramsGuess","word":"tasp"}`, AnagramsGuess{Word: "tasp"}},
		{"practice_req", `{"type":"PracticeRequest","game":"WordBomb"}`, PracticeRequest{Game: "WordBomb"}},
		{
			"room_settings",
			`{"type":"RoomSettings","public":true,"game":"WordBomb","word_bomb":{"min_wpm":300}}`,
			RoomSettingsMsg{Public: true, Game: "WordBomb", WordBomb: WordBombSettingsWire{MinWPM: 300}},
		},
		{
			"practice_submission",
			`{"type":"PracticeSubmission","game":"WordBomb","prompt":"an","input":"banana"}`,
			PracticeSubmission{Game: "WordBomb", Prompt: "an", Input: "banana"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeClientMessage([]byte(tc.json))
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDecodeClientMessage_UnknownType(t *testing.T) {
	_, err := DecodeClientMessage([]byte(`{"type":"DoesNotExist"}`))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestDecodeClientMessage_Oversize(t *testing.T) {
	huge := `{"type":"ChatMessage","content":"` + strings.Repeat("a", MaxMessageBytes) + `"}`
	_, err := DecodeClientMessage([]byte(huge))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrOversizeMessage)
}

func TestEncodeServerMessage_Pong(t *testing.T) {
	b, err := EncodeServerMessage(NewPong(7))
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"Pong","timestamp":7}`, string(b))
}

func TestEncodeServerMessage_NestedState(t *testing.T) {
	msg := NewReadyPlayers(nil, NewCountdownInProgress(10))
	b, err := EncodeServerMessage(msg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"ReadyPlayers","ready":null,"countdown_update":{"type":"InProgress","time_left":10}}`, string(b))
}
