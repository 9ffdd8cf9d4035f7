package report

import (
	"context"
	"strings"
	"testing"

	"github.com/ipdlab/dilemma/internal/config"
	"github.com/ipdlab/dilemma/internal/tournament"
)

func testResult(t *testing.T) *tournament.Result {
	t.Helper()
	cfg := config.Default()
	cfg.Rounds = 10
	tour, err := cfg.Tournament()
	if err != nil {
		t.Fatal(err)
	}
	res, err := tour.Run(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return res
}

func TestWriteStandings(t *testing.T) {
	res := testResult(t)

	var b strings.Builder
	if err := WriteStandings(&b, res); err != nil {
		t.Fatal(err)
	}
	out := b.String()

	if !strings.Contains(out, "RANK") || !strings.Contains(out, "AVG/ROUND") {
		t.Errorf("missing table header:\n%s", out)
	}
	for _, s := range res.Standings {
		if !strings.Contains(out, s.Agent) {
			t.Errorf("standing for %q missing:\n%s", s.Agent, out)
		}
	}
	if !strings.Contains(out, "15 matches") {
		t.Errorf("missing match count:\n%s", out)
	}
}

func TestWriteMatches(t *testing.T) {
	res := testResult(t)

	var b strings.Builder
	if err := WriteMatches(&b, res); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(b.String()), "\n")
	// Header plus one line per match.
	if len(lines) != len(res.Matches)+1 {
		t.Errorf("got %d lines, want %d", len(lines), len(res.Matches)+1)
	}
}

func TestRenderDOT(t *testing.T) {
	res := testResult(t)
	dot := RenderDOT(res)

	if !strings.HasPrefix(dot, "graph dilemma {") || !strings.HasSuffix(dot, "}\n") {
		t.Errorf("not a well-formed graph:\n%s", dot)
	}
	for _, s := range res.Standings {
		if !strings.Contains(dot, `"`+s.Agent+`"`) {
			t.Errorf("node for %q missing", s.Agent)
		}
	}
	if got := strings.Count(dot, " -- "); got != len(res.Matches) {
		t.Errorf("got %d edges, want %d", got, len(res.Matches))
	}
	// Deterministic input renders deterministically.
	if dot != RenderDOT(res) {
		t.Error("RenderDOT is not deterministic")
	}
}
