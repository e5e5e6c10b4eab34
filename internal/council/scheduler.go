package council

import "github.com/cloudwego/eino/compose"

// NextSpeaker picks the participant who takes the next turn. Speakers
// rotate in order, each speaking exactly once per round, and the council
// closes after maxRounds full rounds.
func NextSpeaker(order []string, turnsTaken, maxRounds int) string {
	if len(order) == 0 || turnsTaken < 0 {
		return compose.END
	}
	if turnsTaken >= maxRounds*len(order) {
		return compose.END
	}
	return order[turnsTaken%len(order)]
}
