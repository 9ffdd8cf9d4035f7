package tournament

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"sort"
	"sync"

	"github.com/ipdlab/dilemma/internal/match"
)

// Standing is one row of the final ranking.
type Standing struct {
	Rank     int     `json:"rank"`
	Agent    string  `json:"agent"`
	Strategy string  `json:"strategy"`
	Score    int     `json:"score"`
	Matches  int     `json:"matches"`
	AvgRound float64 `json:"avg_per_round"`
}

// Failure records a match excluded from aggregation under FailureSkip.
type Failure struct {
	AgentA string `json:"agent_a"`
	AgentB string `json:"agent_b"`
	Round  int    `json:"round"`
	Reason string `json:"reason"`
}

// Result is the aggregate outcome of a completed tournament. Standings are
// ordered by descending score with ties broken by ascending agent name, so
// the ranking is a total, reproducible order.
type Result struct {
	Seed      uint64         `json:"seed"`
	Rounds    int            `json:"rounds"`
	Noise     float64        `json:"noise,omitempty"`
	Standings []Standing     `json:"standings"`
	Matches   []match.Result `json:"-"`
	Failures  []Failure      `json:"failures,omitempty"`
}

// outcome is one schedule slot's completed match or failure.
type outcome struct {
	res  match.Result
	err  error
	done bool
}

// Run plays every scheduled match and aggregates scores. It is idempotent:
// the same configuration and seed produce the same Result regardless of
// the worker count, because every match derives its own random streams
// from the seed and its schedule index, and aggregation happens in a
// single pass in schedule order after all matches finish.
func (t *Tournament) Run(ctx context.Context) (*Result, error) {
	mc := match.Config{Rounds: t.cfg.Rounds, Noise: t.cfg.Noise, Payoffs: t.cfg.Payoffs}
	outcomes := make([]outcome, len(t.schedule))

	play := func(p pairing) outcome {
		moves, noise := matchRands(t.cfg.Seed, p.index)
		res, err := match.Play(mc, t.agents[p.a], t.agents[p.b], moves, noise)
		return outcome{res: res, err: err, done: true}
	}

	if t.cfg.Parallelism > 1 {
		if err := t.runParallel(ctx, play, outcomes); err != nil {
			return nil, err
		}
	} else {
		for _, p := range t.schedule {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			out := play(p)
			if out.err != nil && t.cfg.OnFailure == FailureAbort {
				return nil, out.err
			}
			outcomes[p.index] = out
		}
	}

	return t.aggregate(outcomes)
}

// runParallel fans the schedule out over a bounded worker pool. Under
// FailureAbort the first failure cancels the remaining matches.
func (t *Tournament) runParallel(ctx context.Context, play func(pairing) outcome, outcomes []outcome) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	workers := t.cfg.Parallelism
	if workers > len(t.schedule) {
		workers = len(t.schedule)
	}

	jobs := make(chan pairing)
	var wg sync.WaitGroup

	var mu sync.Mutex
	var abortErr error

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for p := range jobs {
				out := play(p)
				if out.err != nil && t.cfg.OnFailure == FailureAbort {
					mu.Lock()
					if abortErr == nil {
						abortErr = out.err
					}
					mu.Unlock()
					cancel()
				}
				outcomes[p.index] = out
			}
		}()
	}

feed:
	for _, p := range t.schedule {
		select {
		case jobs <- p:
		case <-ctx.Done():
			break feed
		}
	}
	close(jobs)
	wg.Wait()

	if abortErr != nil {
		return abortErr
	}
	return ctx.Err()
}

// aggregate folds completed matches into per-agent totals and ranks them.
// It runs serialized, in schedule order, so totals are deterministic no
// matter how the matches were executed.
func (t *Tournament) aggregate(outcomes []outcome) (*Result, error) {
	scores := make([]int, len(t.agents))
	played := make([]int, len(t.agents))

	result := &Result{Seed: t.cfg.Seed, Rounds: t.cfg.Rounds, Noise: t.cfg.Noise}

	for i, p := range t.schedule {
		out := outcomes[p.index]
		if !out.done {
			return nil, fmt.Errorf("match %d never ran", p.index)
		}
		if out.err != nil {
			var se *match.StrategyError
			f := Failure{AgentA: t.agents[p.a].Name, AgentB: t.agents[p.b].Name, Reason: out.err.Error()}
			if errors.As(out.err, &se) {
				f.Round = se.Round
			}
			result.Failures = append(result.Failures, f)
			continue
		}
		if out.res.Rounds != t.cfg.Rounds || out.res.History.Len() != t.cfg.Rounds {
			return nil, fmt.Errorf("%w: match %d played %d of %d rounds",
				ErrShortMatch, i, out.res.History.Len(), t.cfg.Rounds)
		}

		// In self-play the agent holds both sides; it is credited with
		// side A's payoff and counted as one match.
		scores[p.a] += out.res.ScoreA
		played[p.a]++
		if p.a != p.b {
			scores[p.b] += out.res.ScoreB
			played[p.b]++
		}
		result.Matches = append(result.Matches, out.res)
	}

	standings := make([]Standing, len(t.agents))
	for i, a := range t.agents {
		s := Standing{Agent: a.Name, Strategy: a.Strategy.Name(), Score: scores[i], Matches: played[i]}
		if played[i] > 0 {
			s.AvgRound = float64(scores[i]) / float64(played[i]*t.cfg.Rounds)
		}
		standings[i] = s
	}
	sort.Slice(standings, func(i, j int) bool {
		if standings[i].Score != standings[j].Score {
			return standings[i].Score > standings[j].Score
		}
		return standings[i].Agent < standings[j].Agent
	})
	for i := range standings {
		standings[i].Rank = i + 1
	}
	result.Standings = standings

	return result, nil
}

// splitmix64 is the standard 64-bit mix used to derive independent seeds.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// matchRands derives the two PCG streams for one scheduled match: one for
// strategy decisions, one for execution noise. Separate streams keep the
// noise setting from perturbing strategy draws.
func matchRands(seed uint64, index int) (moves, noise *rand.Rand) {
	base := splitmix64(seed ^ (uint64(index)+1)*0x9e3779b97f4a7c15)
	moves = rand.New(rand.NewPCG(splitmix64(base), splitmix64(base+1)))
	noise = rand.New(rand.NewPCG(splitmix64(base+2), splitmix64(base+3)))
	return moves, noise
}
