package arena

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/scythe504/skribblr-backend/internal/censor"
	"github.com/scythe504/skribblr-backend/internal/dictionary"
	"github.com/scythe504/skribblr-backend/internal/protocol"
)

const testWordList = "banana\norange\ngrapes\napple\nletter\nbottle\ncamera\nbaobab\nquick\n"
const testPrompts = "0:an,ap,or,ba\n"

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	dict, err := dictionary.LoadFromReaders(strings.NewReader(testWordList), strings.NewReader(testPrompts))
	require.NoError(t, err)
	return NewManager(dict, censor.New())
}

func newTestOutbox() chan OutboundEvent {
	return make(chan OutboundEvent, 32)
}

func roomSettingsMsg(public bool, game string, minWPM uint32) protocol.RoomSettingsMsg {
	return protocol.RoomSettingsMsg{Public: public, Game: game, WordBomb: protocol.WordBombSettingsWire{MinWPM: minWPM}}
}
