package game

// Round records the executed moves and resulting payoffs of one round.
// Index 0 is side A, index 1 is side B.
type Round struct {
	Moves   [2]Move `json:"moves"`
	Payoffs [2]int  `json:"payoffs"`
}

// History is the append-only record of a single match. It is owned by the
// match engine; strategies only ever see the per-side move sequences via
// MovesFor, never the history itself.
type History struct {
	rounds []Round
	moves  [2][]Move
}

// NewHistory returns an empty history with capacity for n rounds.
func NewHistory(n int) *History {
	return &History{
		rounds: make([]Round, 0, n),
		moves:  [2][]Move{make([]Move, 0, n), make([]Move, 0, n)},
	}
}

// Append records one completed round.
func (h *History) Append(a, b Move, payoffA, payoffB int) {
	h.rounds = append(h.rounds, Round{Moves: [2]Move{a, b}, Payoffs: [2]int{payoffA, payoffB}})
	h.moves[SideA] = append(h.moves[SideA], a)
	h.moves[SideB] = append(h.moves[SideB], b)
}

// Len returns the number of rounds recorded so far.
func (h *History) Len() int { return len(h.rounds) }

// Rounds returns the recorded rounds. Callers must not modify the slice.
func (h *History) Rounds() []Round {
	return h.rounds[:len(h.rounds):len(h.rounds)]
}

// MovesFor returns the move sequence of one side, frozen as of the rounds
// played so far. The returned slice has its capacity clipped so a strategy
// cannot grow it into the history's backing array.
func (h *History) MovesFor(s Side) []Move {
	m := h.moves[s]
	return m[:len(m):len(m)]
}
