package game

import (
	"errors"
	"testing"
)

func TestPayoffMatrix_Validate(t *testing.T) {
	tests := []struct {
		name    string
		matrix  PayoffMatrix
		wantErr bool
	}{
		{"default", DefaultPayoffs(), false},
		{"axelrod scaled", PayoffMatrix{Temptation: 50, Reward: 30, Punishment: 10, Sucker: 0}, false},
		{"reward above temptation", PayoffMatrix{Temptation: 3, Reward: 5, Punishment: 1, Sucker: 0}, true},
		{"sucker above punishment", PayoffMatrix{Temptation: 5, Reward: 3, Punishment: 0, Sucker: 1}, true},
		{"alternating exploitation pays", PayoffMatrix{Temptation: 10, Reward: 3, Punishment: 1, Sucker: 0}, true},
		{"equal reward and punishment", PayoffMatrix{Temptation: 5, Reward: 3, Punishment: 3, Sucker: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.matrix.Validate()
			if tt.wantErr && err == nil {
				t.Errorf("Validate(%+v) = nil, want error", tt.matrix)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate(%+v) = %v, want nil", tt.matrix, err)
			}
			if tt.wantErr && err != nil && !errors.Is(err, ErrInvalidMatrix) {
				t.Errorf("error should wrap ErrInvalidMatrix, got %v", err)
			}
		})
	}
}

func TestPayoffMatrix_Payoffs(t *testing.T) {
	p := DefaultPayoffs()

	tests := []struct {
		a, b         Move
		wantA, wantB int
	}{
		{Cooperate, Cooperate, 3, 3},
		{Defect, Defect, 1, 1},
		{Defect, Cooperate, 5, 0},
		{Cooperate, Defect, 0, 5},
	}

	for _, tt := range tests {
		gotA, gotB := p.Payoffs(tt.a, tt.b)
		if gotA != tt.wantA || gotB != tt.wantB {
			t.Errorf("Payoffs(%v, %v) = (%d, %d), want (%d, %d)",
				tt.a, tt.b, gotA, gotB, tt.wantA, tt.wantB)
		}
	}
}

func TestParseMove(t *testing.T) {
	for _, m := range []Move{Cooperate, Defect} {
		got, err := ParseMove(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMove(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMove("betray"); err == nil {
		t.Error("ParseMove should reject unknown names")
	}
}

func TestMove_Opposite(t *testing.T) {
	if Cooperate.Opposite() != Defect {
		t.Error("Cooperate.Opposite() should be Defect")
	}
	if Defect.Opposite() != Cooperate {
		t.Error("Defect.Opposite() should be Cooperate")
	}
}

func TestHistory_AppendAndViews(t *testing.T) {
	h := NewHistory(4)
	h.Append(Cooperate, Defect, 0, 5)
	h.Append(Defect, Defect, 1, 1)

	if h.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", h.Len())
	}

	a := h.MovesFor(SideA)
	b := h.MovesFor(SideB)
	if len(a) != 2 || a[0] != Cooperate || a[1] != Defect {
		t.Errorf("side A moves = %v, want [cooperate defect]", a)
	}
	if len(b) != 2 || b[0] != Defect || b[1] != Defect {
		t.Errorf("side B moves = %v, want [defect defect]", b)
	}

	rounds := h.Rounds()
	if rounds[0].Payoffs != [2]int{0, 5} {
		t.Errorf("round 0 payoffs = %v, want [0 5]", rounds[0].Payoffs)
	}
}

func TestHistory_ViewIsFrozen(t *testing.T) {
	h := NewHistory(4)
	h.Append(Cooperate, Cooperate, 3, 3)

	view := h.MovesFor(SideA)
	h.Append(Cooperate, Defect, 0, 5)

	// The earlier view must not grow with the history.
	if len(view) != 1 {
		t.Errorf("frozen view length = %d, want 1", len(view))
	}

	// Appending to the view must not leak into the history's backing array.
	_ = append(view, Defect)
	if got := h.MovesFor(SideA)[1]; got != Cooperate {
		t.Errorf("history side A round 1 = %v, want cooperate", got)
	}
}
