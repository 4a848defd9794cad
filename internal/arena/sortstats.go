package arena

import (
	"sort"

	"github.com/scythe504/skribblr-backend/internal/protocol"
)

func sortGuessTimeAscending(s []protocol.GuessTimeStat) {
	sort.Slice(s, func(i, j int) bool { return s[i].Elapsed < s[j].Elapsed })
}

func sortWordLengthDescending(s []protocol.WordLengthStat) {
	sort.Slice(s, func(i, j int) bool { return s[i].Length > s[j].Length })
}

func sortPlayerFloatDescending(s []protocol.PlayerFloatStat) {
	sort.Slice(s, func(i, j int) bool { return s[i].Value > s[j].Value })
}
