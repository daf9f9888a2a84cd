package engine

import (
	"fmt"
	"math/rand"
	"sort"
)

// Factory builds a strategy instance. Strategies that break ties randomly
// own the generator they are given; deterministic ones ignore it.
type Factory func(rnd *rand.Rand) Strategy

var registry = map[string]Factory{
	"random":                func(rnd *rand.Rand) Strategy { return NewRandom(rnd) },
	"pi":                    func(rnd *rand.Rand) Strategy { return NewPi() },
	"euler":                 func(rnd *rand.Rand) Strategy { return NewEuler() },
	"alphabetical":          func(rnd *rand.Rand) Strategy { return NewAlphabetical() },
	"anti-positional":       func(rnd *rand.Rand) Strategy { return NewAntiPositional(rnd) },
	"reverse-alphabetical":  func(rnd *rand.Rand) Strategy { return NewReverseAlphabetical() },
	"cccp":                  func(rnd *rand.Rand) Strategy { return NewCCCP(rnd) },
	"passafist":             func(rnd *rand.Rand) Strategy { return NewPassafist(rnd) },
	"greedy-capture":        func(rnd *rand.Rand) Strategy { return NewGreedyCapture(rnd) },
	"blunder":               func(rnd *rand.Rand) Strategy { return NewBlunder(rnd) },
	"suicide-king":          func(rnd *rand.Rand) Strategy { return NewSuicideKing(rnd) },
	"runaway":               func(rnd *rand.Rand) Strategy { return NewRunaway(rnd) },
	"color-square":          func(rnd *rand.Rand) Strategy { return NewColorSquare(rnd) },
	"opposite-color-square": func(rnd *rand.Rand) Strategy { return NewOppositeColorSquare(rnd) },
	"swarm":                 func(rnd *rand.Rand) Strategy { return NewSwarm(rnd) },
	"huddle":                func(rnd *rand.Rand) Strategy { return NewHuddle(rnd) },
	"mirror-x":              func(rnd *rand.Rand) Strategy { return NewMirrorX(rnd) },
	"mirror-y":              func(rnd *rand.Rand) Strategy { return NewMirrorY(rnd) },
	"reverse-start":         func(rnd *rand.Rand) Strategy { return NewReverseStart(rnd) },
	"lawyer":                func(rnd *rand.Rand) Strategy { return NewLawyer(rnd) },
	"paralegal":             func(rnd *rand.Rand) Strategy { return NewParalegal(rnd) },
	"criminal":              func(rnd *rand.Rand) Strategy { return NewCriminal(rnd) },
	"strangler":             func(rnd *rand.Rand) Strategy { return NewStrangler(rnd) },
	"shuffle":               func(rnd *rand.Rand) Strategy { return NewShuffle(rnd) },
	"mover":                 func(rnd *rand.Rand) Strategy { return NewMover(rnd) },
	"single-player":         func(rnd *rand.Rand) Strategy { return NewSinglePlayer(rnd) },
}

// New builds the named strategy.
func New(name string, rnd *rand.Rand) (Strategy, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown strategy %q", name)
	}
	return factory(rnd), nil
}

// Names lists all registered strategy names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
