package mcpserver

import (
	"context"
	"fmt"

	sdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ipdlab/dilemma/internal/game"
	"github.com/ipdlab/dilemma/internal/match"
	"github.com/ipdlab/dilemma/internal/strategy"
	"github.com/ipdlab/dilemma/internal/tournament"
)

const defaultRounds = 100

// handleRun builds a tournament from the tool input and runs it to
// completion. Defaults mirror the CLI: 100 rounds, textbook payoffs,
// abort on the first strategy failure.
func (s *Server) handleRun(ctx context.Context, req *sdk.CallToolRequest, args RunInput) (*sdk.CallToolResult, RunOutput, error) {
	rounds := args.Rounds
	if rounds == 0 {
		rounds = defaultRounds
	}
	onFailure := args.OnFailure
	if onFailure == "" {
		onFailure = "abort"
	}
	policy, err := tournament.ParseFailurePolicy(onFailure)
	if err != nil {
		return nil, RunOutput{}, err
	}

	agents := make([]match.Agent, len(args.Agents))
	for i, spec := range args.Agents {
		st, err := strategy.New(spec.Strategy, strategy.Params{Probability: spec.Probability})
		if err != nil {
			return nil, RunOutput{}, fmt.Errorf("agent %q: %w", spec.Name, err)
		}
		agents[i] = match.Agent{Name: spec.Name, Strategy: st}
	}

	tour, err := tournament.New(tournament.Config{
		Payoffs:   game.DefaultPayoffs(),
		Rounds:    rounds,
		Noise:     args.Noise,
		Seed:      args.Seed,
		SelfPlay:  args.SelfPlay,
		OnFailure: policy,
	}, agents)
	if err != nil {
		return nil, RunOutput{}, err
	}

	res, err := tour.Run(ctx)
	if err != nil {
		return nil, RunOutput{}, err
	}

	return nil, RunOutput{
		Standings: res.Standings,
		Matches:   len(res.Matches),
		Failures:  res.Failures,
		Seed:      res.Seed,
	}, nil
}

// handleStrategies lists the registered strategies.
func (s *Server) handleStrategies(ctx context.Context, req *sdk.CallToolRequest, args StrategiesInput) (*sdk.CallToolResult, StrategiesOutput, error) {
	ds := strategy.Descriptors()
	out := StrategiesOutput{Count: len(ds)}
	for _, d := range ds {
		out.Strategies = append(out.Strategies, StrategyInfo{Name: d.Name, Label: d.Label, Summary: d.Summary})
	}
	return nil, out, nil
}
