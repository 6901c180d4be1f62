// Package autoplay drives games without a human player, for balancing runs
// and regression checks of tuning values.
package autoplay

import (
	"github.com/freeeve/zeitgeist/pkg/culture"
)

// Strategy makes the player's decisions for one turn. It must leave the game
// ready to advance: any event awaiting a choice has to be resolved.
type Strategy interface {
	Name() string
	PlayTurn(g *culture.Game) error
}

// DefaultCollect is the influence an autopilot collects each turn.
const DefaultCollect = 10

// StrategyForName returns the strategy registered under name. Unknown names
// fall back to the autopilot.
func StrategyForName(name string, collect int) Strategy {
	switch name {
	case "idle":
		return &IdleStrategy{}
	case "hoarder":
		return &HoarderStrategy{Collect: collect}
	default:
		return &Autopilot{Collect: collect}
	}
}

// Autopilot collects a fixed amount, buys the cheapest affordable item and
// takes the first option of any event awaiting a choice.
type Autopilot struct {
	Collect int
}

func (a *Autopilot) Name() string { return "autopilot" }

func (a *Autopilot) PlayTurn(g *culture.Game) error {
	if _, err := g.CollectInfluence(a.Collect); err != nil {
		return err
	}
	s := g.State()
	if items := g.Scenario().Catalog().Affordable(s.Player.EvolvedItems, s.Player.InfluencePoints); len(items) > 0 {
		if err := g.Evolve(items[0].ID); err != nil {
			return err
		}
	}
	return chooseFirst(g, s)
}

// HoarderStrategy collects every turn and never evolves. It measures how far
// passive income alone carries a movement.
type HoarderStrategy struct {
	Collect int
}

func (h *HoarderStrategy) Name() string { return "hoarder" }

func (h *HoarderStrategy) PlayTurn(g *culture.Game) error {
	if _, err := g.CollectInfluence(h.Collect); err != nil {
		return err
	}
	return chooseFirst(g, g.State())
}

// IdleStrategy only answers pending events.
type IdleStrategy struct{}

func (IdleStrategy) Name() string { return "idle" }

func (IdleStrategy) PlayTurn(g *culture.Game) error {
	return chooseFirst(g, g.State())
}

func chooseFirst(g *culture.Game, s *culture.GameState) error {
	ev := culture.AwaitingChoice(s.Events)
	if ev == nil || len(ev.Options) == 0 {
		return nil
	}
	return g.ChooseEventOption(ev.ID, ev.Options[0].ID)
}
