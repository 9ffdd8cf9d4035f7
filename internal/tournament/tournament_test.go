package tournament

import (
	"context"
	"errors"
	"testing"

	"github.com/ipdlab/dilemma/internal/game"
	"github.com/ipdlab/dilemma/internal/match"
	"github.com/ipdlab/dilemma/internal/strategy"
)

func testConfig() Config {
	return Config{
		Payoffs:   game.DefaultPayoffs(),
		Rounds:    10,
		Seed:      42,
		OnFailure: FailureAbort,
	}
}

func testAgents(t *testing.T, specs ...[2]string) []match.Agent {
	t.Helper()
	agents := make([]match.Agent, len(specs))
	for i, spec := range specs {
		s, err := strategy.New(spec[1], strategy.Params{})
		if err != nil {
			t.Fatalf("strategy.New(%q): %v", spec[1], err)
		}
		agents[i] = match.Agent{Name: spec[0], Strategy: s}
	}
	return agents
}

func fourAgents(t *testing.T) []match.Agent {
	t.Helper()
	return testAgents(t,
		[2]string{"ada", strategy.NameTitForTat},
		[2]string{"bob", strategy.NameDefector},
		[2]string{"cleo", strategy.NameCooperator},
		[2]string{"dan", strategy.NameGrimTrigger},
	)
}

func TestNew_Validation(t *testing.T) {
	agents := fourAgents(t)

	t.Run("too few agents", func(t *testing.T) {
		if _, err := New(testConfig(), agents[:1]); !errors.Is(err, ErrTooFewAgents) {
			t.Errorf("got %v, want ErrTooFewAgents", err)
		}
	})

	t.Run("duplicate names", func(t *testing.T) {
		dup := testAgents(t,
			[2]string{"ada", strategy.NameTitForTat},
			[2]string{"ada", strategy.NameDefector},
		)
		if _, err := New(testConfig(), dup); !errors.Is(err, ErrDuplicateAgent) {
			t.Errorf("got %v, want ErrDuplicateAgent", err)
		}
	})

	t.Run("invalid rounds", func(t *testing.T) {
		cfg := testConfig()
		cfg.Rounds = 0
		if _, err := New(cfg, agents); !errors.Is(err, match.ErrRounds) {
			t.Errorf("got %v, want match.ErrRounds", err)
		}
	})

	t.Run("invalid matrix", func(t *testing.T) {
		cfg := testConfig()
		cfg.Payoffs = game.PayoffMatrix{Temptation: 1, Reward: 2, Punishment: 3, Sucker: 4}
		if _, err := New(cfg, agents); !errors.Is(err, game.ErrInvalidMatrix) {
			t.Errorf("got %v, want game.ErrInvalidMatrix", err)
		}
	})

	t.Run("unset failure policy", func(t *testing.T) {
		cfg := testConfig()
		cfg.OnFailure = failureUnset
		if _, err := New(cfg, agents); !errors.Is(err, ErrNoFailurePolicy) {
			t.Errorf("got %v, want ErrNoFailurePolicy", err)
		}
	})
}

func TestRun_RoundRobinCounts(t *testing.T) {
	tour, err := New(testConfig(), fourAgents(t))
	if err != nil {
		t.Fatal(err)
	}

	if tour.MatchCount() != 6 {
		t.Fatalf("MatchCount() = %d, want 6 for 4 agents", tour.MatchCount())
	}

	res, err := tour.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Matches) != 6 {
		t.Fatalf("played %d matches, want 6", len(res.Matches))
	}

	appearances := map[string]int{}
	for _, m := range res.Matches {
		appearances[m.AgentA]++
		appearances[m.AgentB]++
	}
	for name, n := range appearances {
		if n != 3 {
			t.Errorf("agent %q appeared in %d matches, want 3", name, n)
		}
	}
}

func TestRun_SelfPlayCounts(t *testing.T) {
	cfg := testConfig()
	cfg.SelfPlay = true
	tour, err := New(cfg, fourAgents(t))
	if err != nil {
		t.Fatal(err)
	}

	if tour.MatchCount() != 10 {
		t.Errorf("MatchCount() = %d, want C(4,2)+4 = 10", tour.MatchCount())
	}
}

func TestRun_ScoresMatchRecomputation(t *testing.T) {
	tour, err := New(testConfig(), fourAgents(t))
	if err != nil {
		t.Fatal(err)
	}
	res, err := tour.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	want := map[string]int{}
	for _, m := range res.Matches {
		want[m.AgentA] += m.ScoreA
		want[m.AgentB] += m.ScoreB
	}
	for _, s := range res.Standings {
		if s.Score != want[s.Agent] {
			t.Errorf("agent %q score = %d, recomputed %d", s.Agent, s.Score, want[s.Agent])
		}
		if s.Matches != 3 {
			t.Errorf("agent %q matches = %d, want 3", s.Agent, s.Matches)
		}
	}
}

func TestRun_RankingTotalOrder(t *testing.T) {
	// Two cooperators tie exactly; the tie must break by name.
	agents := testAgents(t,
		[2]string{"zoe", strategy.NameCooperator},
		[2]string{"abe", strategy.NameCooperator},
		[2]string{"mia", strategy.NameDefector},
	)
	tour, err := New(testConfig(), agents)
	if err != nil {
		t.Fatal(err)
	}
	res, err := tour.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	for i, s := range res.Standings {
		if s.Rank != i+1 {
			t.Errorf("standing %d has rank %d", i, s.Rank)
		}
	}
	if res.Standings[0].Agent != "mia" {
		t.Errorf("defector should lead, got %q", res.Standings[0].Agent)
	}
	if res.Standings[1].Agent != "abe" || res.Standings[2].Agent != "zoe" {
		t.Errorf("tied cooperators should order abe before zoe, got %q then %q",
			res.Standings[1].Agent, res.Standings[2].Agent)
	}
	if res.Standings[1].Score != res.Standings[2].Score {
		t.Error("cooperators should have identical scores")
	}
}

func TestRun_DeterministicAcrossParallelism(t *testing.T) {
	p := 0.5
	run := func(parallelism int) *Result {
		rs, err := strategy.New(strategy.NameRandom, strategy.Params{Probability: &p})
		if err != nil {
			t.Fatal(err)
		}
		agents := fourAgents(t)
		agents = append(agents, match.Agent{Name: "eve", Strategy: rs})

		cfg := testConfig()
		cfg.Noise = 0.05
		cfg.Parallelism = parallelism
		tour, err := New(cfg, agents)
		if err != nil {
			t.Fatal(err)
		}
		res, err := tour.Run(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		return res
	}

	seq := run(1)
	par := run(4)

	if len(seq.Standings) != len(par.Standings) {
		t.Fatal("standings length mismatch")
	}
	for i := range seq.Standings {
		if seq.Standings[i] != par.Standings[i] {
			t.Errorf("standing %d differs: %+v vs %+v", i, seq.Standings[i], par.Standings[i])
		}
	}
	for i := range seq.Matches {
		if seq.Matches[i].ScoreA != par.Matches[i].ScoreA || seq.Matches[i].ScoreB != par.Matches[i].ScoreB {
			t.Errorf("match %d scores differ between sequential and parallel runs", i)
		}
	}
}

// failAt errors at a fixed round in every match it plays.
type failAt struct {
	round int
}

func (failAt) Name() string { return "fail-at" }

func (f failAt) Decide(in strategy.Input) (game.Move, error) {
	if in.Round == f.round {
		return game.Cooperate, errors.New("deliberate failure")
	}
	return game.Cooperate, nil
}

func TestRun_FailureAbort(t *testing.T) {
	agents := fourAgents(t)
	agents = append(agents, match.Agent{Name: "eve", Strategy: failAt{round: 2}})

	cfg := testConfig()
	tour, err := New(cfg, agents)
	if err != nil {
		t.Fatal(err)
	}

	_, err = tour.Run(context.Background())
	var se *match.StrategyError
	if !errors.As(err, &se) {
		t.Fatalf("expected *match.StrategyError, got %v", err)
	}
	if se.Agent != "eve" || se.Round != 2 {
		t.Errorf("failure context = %q at round %d, want eve at 2", se.Agent, se.Round)
	}
}

func TestRun_FailureSkip(t *testing.T) {
	agents := fourAgents(t)
	agents = append(agents, match.Agent{Name: "eve", Strategy: failAt{round: 0}})

	cfg := testConfig()
	cfg.OnFailure = FailureSkip
	tour, err := New(cfg, agents)
	if err != nil {
		t.Fatal(err)
	}

	res, err := tour.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	// eve is in 4 pairings; all of them fail and are excluded.
	if len(res.Failures) != 4 {
		t.Fatalf("got %d failures, want 4", len(res.Failures))
	}
	if len(res.Matches) != 6 {
		t.Errorf("got %d completed matches, want 6", len(res.Matches))
	}
	for _, s := range res.Standings {
		if s.Agent == "eve" {
			if s.Score != 0 || s.Matches != 0 {
				t.Errorf("eve should aggregate nothing, got score=%d matches=%d", s.Score, s.Matches)
			}
		} else if s.Matches != 3 {
			t.Errorf("agent %q matches = %d, want 3", s.Agent, s.Matches)
		}
	}
}

func TestRun_Idempotent(t *testing.T) {
	for _, parallelism := range []int{1, 3} {
		cfg := testConfig()
		cfg.Parallelism = parallelism

		run := func() *Result {
			tour, err := New(cfg, fourAgents(t))
			if err != nil {
				t.Fatal(err)
			}
			res, err := tour.Run(context.Background())
			if err != nil {
				t.Fatal(err)
			}
			return res
		}

		a, b := run(), run()
		for i := range a.Standings {
			if a.Standings[i] != b.Standings[i] {
				t.Errorf("parallelism=%d: standing %d differs across runs", parallelism, i)
			}
		}
	}
}

func TestParseFailurePolicy(t *testing.T) {
	tests := []struct {
		in      string
		want    FailurePolicy
		wantErr bool
	}{
		{"abort", FailureAbort, false},
		{"skip", FailureSkip, false},
		{"", failureUnset, true},
		{"continue", failureUnset, true},
	}
	for _, tt := range tests {
		got, err := ParseFailurePolicy(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFailurePolicy(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseFailurePolicy(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
