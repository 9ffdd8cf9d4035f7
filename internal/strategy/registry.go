package strategy

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownStrategy is returned when a strategy name is not registered.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Descriptor describes a registered strategy for listings and tooling.
type Descriptor struct {
	Name    string `json:"name"`
	Label   string `json:"label"`
	Summary string `json:"summary"`

	build func(Params) (Strategy, error)
}

var registry = map[string]Descriptor{}

// Register adds a strategy descriptor to the registry. It panics on
// duplicate names; registration happens only from init functions.
func Register(d Descriptor) {
	if _, ok := registry[d.Name]; ok {
		panic(fmt.Sprintf("strategy %q registered twice", d.Name))
	}
	registry[d.Name] = d
}

// New constructs a strategy by registered name.
func New(name string, params Params) (Strategy, error) {
	d, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	s, err := d.build(params)
	if err != nil {
		return nil, fmt.Errorf("strategy %q: %w", name, err)
	}
	return s, nil
}

// Descriptors returns all registered strategies sorted by name.
func Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(registry))
	for _, d := range registry {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func fixed(s Strategy) func(Params) (Strategy, error) {
	return func(Params) (Strategy, error) { return s, nil }
}

func init() {
	Register(Descriptor{
		Name:    NameCooperator,
		Label:   "C",
		Summary: "Always cooperates.",
		build:   fixed(cooperator{}),
	})
	Register(Descriptor{
		Name:    NameDefector,
		Label:   "D",
		Summary: "Always defects.",
		build:   fixed(defector{}),
	})
	Register(Descriptor{
		Name:    NameTitForTat,
		Label:   "TFT",
		Summary: "Cooperates first, then mimics the opponent's previous move.",
		build:   fixed(titForTat{}),
	})
	Register(Descriptor{
		Name:    NameTitForTwoTats,
		Label:   "TF2T",
		Summary: "Cooperates until the opponent defects twice in a row.",
		build:   fixed(titForTwoTats{}),
	})
	Register(Descriptor{
		Name:    NameGrimTrigger,
		Label:   "G",
		Summary: "Cooperates until the first defection, then defects forever.",
		build:   fixed(grimTrigger{}),
	})
	Register(Descriptor{
		Name:    NameRandom,
		Label:   "R",
		Summary: "Cooperates with a configured probability each round.",
		build:   newRandom,
	})
}
