package council

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/components/tool"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/flow/agent/react"
	"github.com/cloudwego/eino/schema"
)

const marketAnalystPrompt = `You are the market analyst on a four-member stock council.
You speak first in each round, focusing on price action, trend, momentum and sentiment.

Use the provided tools to ground every claim in data:
- get_stock_price: latest price and change
- get_technical_indicators: RSI, MACD, moving averages
- get_trend_summary: trend direction, support and resistance
- get_market_sentiment: composite sentiment from price action and volume

Keep your statement focused and under 300 words. Do not give a final buy/hold/avoid
verdict; that is the investment advisor's job.

The company under discussion is {ticker}. The current date is {current_date}.

Discussion so far:
{transcript}`

const fundamentalsAnalystPrompt = `You are the fundamentals analyst on a four-member stock council.
You speak after the market analyst, focusing on valuation, profitability, balance
sheet strength, efficiency, growth and dividends.

Use the provided tools to ground every claim in data:
- get_valuation_ratios, get_profitability_ratios, get_liquidity_ratios
- get_leverage_ratios, get_efficiency_ratios, get_growth_metrics
- get_dividend_metrics, get_technical_overview

React to what the market analyst said where the numbers support or contradict it.
Keep your statement focused and under 300 words. Do not give a final buy/hold/avoid
verdict; that is the investment advisor's job.

The company under discussion is {ticker}. The current date is {current_date}.

Discussion so far:
{transcript}`

const newsAnalystPrompt = `You are the news analyst on a four-member stock council.
You speak after the fundamentals analyst, weighing recent headlines and their likely
impact against what the other analysts reported.

Recent headlines for {ticker}:
{headlines}

If no headlines are available, say so plainly and weigh the discussion on the data
the other analysts brought. Keep your statement under 250 words. Do not give a final
buy/hold/avoid verdict; that is the investment advisor's job.

The current date is {current_date}.

Discussion so far:
{transcript}`

const investmentAdvisorPrompt = `You are the investment advisor and the final voice of a four-member
stock council. Weigh the market, fundamentals and news statements against each other,
call out where they disagree, and commit to a verdict.

Structure your statement as a short narrative: the strongest case for the stock, the
strongest case against it, and your conclusion. You must end with a single line of
exactly this form, with no text after it:

RECOMMENDATION: **BUY**
or RECOMMENDATION: **HOLD**
or RECOMMENDATION: **AVOID**

The company under discussion is {ticker}. The current date is {current_date}.

Discussion so far:
{transcript}`

func loadParticipantMessages(system string) func(ctx context.Context, name string, opts ...any) ([]*schema.Message, error) {
	return func(ctx context.Context, name string, opts ...any) (output []*schema.Message, err error) {
		stateErr := compose.ProcessState[*State](ctx, func(_ context.Context, state *State) error {
			tpl := prompt.FromMessages(schema.FString,
				schema.SystemMessage(system),
				schema.MessagesPlaceholder("user_input", true),
			)
			vars := map[string]any{
				"ticker":       state.Symbol,
				"current_date": time.Now().Format("2006-01-02"),
				"transcript":   transcriptText(state),
				"headlines":    state.Headlines,
				"user_input":   []*schema.Message{schema.UserMessage(state.Query)},
			}
			output, err = tpl.Format(ctx, vars)
			return err
		})
		if stateErr != nil {
			return nil, stateErr
		}
		return output, err
	}
}

func participantRouter(name string) func(ctx context.Context, input *schema.Message, opts ...any) (string, error) {
	return func(ctx context.Context, input *schema.Message, opts ...any) (output string, err error) {
		err = compose.ProcessState[*State](ctx, func(_ context.Context, state *State) error {
			defer func() {
				output = state.Goto
			}()
			content := ""
			if input != nil {
				content = input.Content
			}
			state.Record(name, content)
			return nil
		})
		return output, err
	}
}

// newToolAgentNode builds a participant subgraph whose statement comes from a
// react agent with remote tools.
func newToolAgentNode[I, O any](ctx context.Context, name string, chatModel model.ToolCallingChatModel, agentTools []tool.BaseTool, system string) (*compose.Graph[I, O], error) {
	agent, err := react.NewAgent(ctx, &react.AgentConfig{
		MaxStep:          40,
		ToolCallingModel: chatModel,
		ToolsConfig: compose.ToolsNodeConfig{
			Tools: agentTools,
		},
		StreamToolCallChecker: ToolCallChecker,
	})
	if err != nil {
		return nil, fmt.Errorf("create %s agent: %w", name, err)
	}
	agentLambda, err := compose.AnyLambda(agent.Generate, agent.Stream, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("create %s agent lambda: %w", name, err)
	}

	g := compose.NewGraph[I, O]()
	_ = g.AddLambdaNode("load", compose.InvokableLambdaWithOption(loadParticipantMessages(system)))
	_ = g.AddLambdaNode("agent", agentLambda)
	_ = g.AddLambdaNode("router", compose.InvokableLambdaWithOption(participantRouter(name)))

	_ = g.AddEdge(compose.START, "load")
	_ = g.AddEdge("load", "agent")
	_ = g.AddEdge("agent", "router")
	_ = g.AddEdge("router", compose.END)
	return g, nil
}

// newChatNode builds a participant subgraph that speaks from the prompt and
// transcript alone, with no tools.
func newChatNode[I, O any](ctx context.Context, name string, chatModel model.BaseChatModel, system string) *compose.Graph[I, O] {
	g := compose.NewGraph[I, O]()
	_ = g.AddLambdaNode("load", compose.InvokableLambdaWithOption(loadParticipantMessages(system)))
	_ = g.AddChatModelNode("agent", chatModel)
	_ = g.AddLambdaNode("router", compose.InvokableLambdaWithOption(participantRouter(name)))

	_ = g.AddEdge(compose.START, "load")
	_ = g.AddEdge("load", "agent")
	_ = g.AddEdge("agent", "router")
	_ = g.AddEdge("router", compose.END)
	return g
}
