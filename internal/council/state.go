// Package council runs a fixed-order panel of LLM analysts over a shared
// transcript and distills their discussion into a Buy/Hold/Avoid opinion.
package council

import (
	"fmt"
	"strings"
)

// Participant names double as graph node keys.
const (
	MarketAnalyst       = "market_analyst"
	FundamentalsAnalyst = "fundamentals_analyst"
	NewsAnalyst         = "news_analyst"
	InvestmentAdvisor   = "investment_advisor"
)

// ParticipantOrder is the speaking order within a round. The advisor
// speaks last so every round ends with a synthesis.
var ParticipantOrder = []string{
	MarketAnalyst,
	FundamentalsAnalyst,
	NewsAnalyst,
	InvestmentAdvisor,
}

// Turn is one statement on the shared transcript.
type Turn struct {
	Speaker string `json:"speaker"`
	Content string `json:"content"`
}

// State is the shared council state. The transcript is append-only;
// participants never edit earlier turns.
type State struct {
	Symbol     string `json:"symbol"`
	Query      string `json:"query"`
	Headlines  string `json:"headlines"`
	Transcript []Turn `json:"transcript"`
	MaxRounds  int    `json:"max_rounds"`
	Goto       string `json:"goto"`
}

func NewState(symbol, query string, maxRounds int) *State {
	if maxRounds < 1 {
		maxRounds = 1
	}
	if query == "" {
		query = fmt.Sprintf("Should I buy, hold or avoid %s right now?", symbol)
	}
	return &State{
		Symbol:    strings.ToUpper(symbol),
		Query:     query,
		MaxRounds: maxRounds,
		Goto:      MarketAnalyst,
	}
}

// Record appends a turn to the transcript and advances Goto to the next
// speaker. It returns the updated Goto.
func (s *State) Record(speaker, content string) string {
	s.Transcript = append(s.Transcript, Turn{Speaker: speaker, Content: content})
	s.Goto = NextSpeaker(ParticipantOrder, len(s.Transcript), s.MaxRounds)
	return s.Goto
}

// transcriptText renders the transcript for inclusion in a prompt.
func transcriptText(s *State) string {
	if len(s.Transcript) == 0 {
		return "No prior statements; you open the discussion."
	}
	var b strings.Builder
	for _, turn := range s.Transcript {
		b.WriteString("[" + turn.Speaker + "]\n")
		b.WriteString(turn.Content)
		b.WriteString("\n\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
