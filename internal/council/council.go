package council

import (
	"context"
	"fmt"
	"log"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/compose"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/stockcouncil/StockCouncilGo/internal/config"
)

// HeadlineSource supplies recent headlines for the news analyst.
type HeadlineSource interface {
	Headlines(ctx context.Context, symbol string) (string, error)
}

// Council wires the chat model, the MCP tool sessions and the headline
// source into a runnable four-agent panel.
type Council struct {
	cfg       *config.Config
	chatModel model.ToolCallingChatModel

	fundamentalsTools []tool.BaseTool
	marketTools       []tool.BaseTool
	sessions          []*mcp.ClientSession

	headlines HeadlineSource
}

// Result is one completed council run.
type Result struct {
	Symbol         string         `json:"symbol"`
	Query          string         `json:"query"`
	Recommendation Recommendation `json:"recommendation"`
	Transcript     []Turn         `json:"transcript"`
}

// New connects to both tool servers and prepares the shared chat model.
// Close must be called when the council is no longer needed.
func New(ctx context.Context, cfg *config.Config, headlines HeadlineSource) (*Council, error) {
	chatModel, err := NewChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}

	fundSession, err := DialToolServer(ctx, cfg.FundamentalsURL())
	if err != nil {
		return nil, err
	}
	marketSession, err := DialToolServer(ctx, cfg.MarketDataURL())
	if err != nil {
		fundSession.Close()
		return nil, err
	}

	return &Council{
		cfg:               cfg,
		chatModel:         chatModel,
		fundamentalsTools: FundamentalsTools(fundSession),
		marketTools:       MarketDataTools(marketSession),
		sessions:          []*mcp.ClientSession{fundSession, marketSession},
		headlines:         headlines,
	}, nil
}

func (c *Council) Close() error {
	var firstErr error
	for _, session := range c.sessions {
		if err := session.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Run executes one full council discussion for symbol and returns the
// advisor's verdict with the complete transcript.
func (c *Council) Run(ctx context.Context, symbol, query string) (*Result, error) {
	state := NewState(symbol, query, c.cfg.MaxRounds)
	state.Headlines = c.fetchHeadlines(ctx, state.Symbol)

	orchestrator, err := c.buildOrchestrator(ctx, state)
	if err != nil {
		return nil, err
	}

	log.Printf("[Council] starting discussion on %s (%d round(s))", state.Symbol, state.MaxRounds)
	if _, err := orchestrator.Invoke(ctx, state.Query); err != nil {
		return nil, fmt.Errorf("council run: %w", err)
	}

	rec, explicit := ParseRecommendation(lastStatement(state, InvestmentAdvisor))
	if !explicit {
		log.Printf("[Council] advisor gave no explicit verdict for %s, defaulting to HOLD", state.Symbol)
	}

	return &Result{
		Symbol:         state.Symbol,
		Query:          state.Query,
		Recommendation: rec,
		Transcript:     state.Transcript,
	}, nil
}

func (c *Council) fetchHeadlines(ctx context.Context, symbol string) string {
	if c.headlines == nil {
		return "No recent headlines available."
	}
	text, err := c.headlines.Headlines(ctx, symbol)
	if err != nil {
		log.Printf("[Council] headlines unavailable for %s: %v", symbol, err)
		return "No recent headlines available."
	}
	return text
}

// buildOrchestrator compiles the round-robin graph for one run. The state
// pointer is shared with the caller so the transcript survives the run.
func (c *Council) buildOrchestrator(ctx context.Context, state *State) (compose.Runnable[string, string], error) {
	g := compose.NewGraph[string, string](
		compose.WithGenLocalState(func(ctx context.Context) *State {
			return state
		}),
	)

	marketGraph, err := newToolAgentNode[string, string](ctx, MarketAnalyst, c.chatModel, c.marketTools, marketAnalystPrompt)
	if err != nil {
		return nil, err
	}
	fundamentalsGraph, err := newToolAgentNode[string, string](ctx, FundamentalsAnalyst, c.chatModel, c.fundamentalsTools, fundamentalsAnalystPrompt)
	if err != nil {
		return nil, err
	}
	newsGraph := newChatNode[string, string](ctx, NewsAnalyst, c.chatModel, newsAnalystPrompt)
	advisorGraph := newChatNode[string, string](ctx, InvestmentAdvisor, c.chatModel, investmentAdvisorPrompt)

	outMap := map[string]bool{
		MarketAnalyst:       true,
		FundamentalsAnalyst: true,
		NewsAnalyst:         true,
		InvestmentAdvisor:   true,
		compose.END:         true,
	}

	_ = g.AddGraphNode(MarketAnalyst, marketGraph, compose.WithNodeName(MarketAnalyst))
	_ = g.AddGraphNode(FundamentalsAnalyst, fundamentalsGraph, compose.WithNodeName(FundamentalsAnalyst))
	_ = g.AddGraphNode(NewsAnalyst, newsGraph, compose.WithNodeName(NewsAnalyst))
	_ = g.AddGraphNode(InvestmentAdvisor, advisorGraph, compose.WithNodeName(InvestmentAdvisor))

	_ = g.AddBranch(MarketAnalyst, compose.NewGraphBranch(councilHandOff, outMap))
	_ = g.AddBranch(FundamentalsAnalyst, compose.NewGraphBranch(councilHandOff, outMap))
	_ = g.AddBranch(NewsAnalyst, compose.NewGraphBranch(councilHandOff, outMap))
	_ = g.AddBranch(InvestmentAdvisor, compose.NewGraphBranch(councilHandOff, outMap))

	_ = g.AddEdge(compose.START, MarketAnalyst)

	r, err := g.Compile(ctx,
		compose.WithGraphName("StockCouncil"),
		compose.WithNodeTriggerMode(compose.AnyPredecessor),
	)
	if err != nil {
		return nil, fmt.Errorf("compile council graph: %w", err)
	}
	return r, nil
}

func councilHandOff(ctx context.Context, input string) (string, error) {
	var next string
	if err := compose.ProcessState[*State](ctx, func(_ context.Context, state *State) error {
		next = state.Goto
		return nil
	}); err != nil {
		return "", fmt.Errorf("read council state: %w", err)
	}
	return next, nil
}

func lastStatement(state *State, speaker string) string {
	for i := len(state.Transcript) - 1; i >= 0; i-- {
		if state.Transcript[i].Speaker == speaker {
			return state.Transcript[i].Content
		}
	}
	return ""
}
