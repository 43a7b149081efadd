package models

import (
	"github.com/zeusync/particles/pkg/sequence"
)

// PositionDim is the dimension of the simulated space.
const PositionDim = 2

// World is the shared container of every entity in a scenario. Agents and
// landmarks are created once and never removed; only their State and Color
// change between episodes.
type World struct {
	Agents    []*Agent
	Landmarks []*Landmark
	DimP      int
	DimC      int
}

// NewWorld returns an empty world with a communication channel of size dimC.
func NewWorld(dimC int) *World {
	return &World{DimP: PositionDim, DimC: dimC}
}

// Evaders returns the evaders in world order.
func (w *World) Evaders() []*Agent {
	return sequence.From(w.Agents).Filter((*Agent).IsEvader).Collect()
}

// NonEvaders returns every agent that is not an evader, in world order.
func (w *World) NonEvaders() []*Agent {
	return sequence.From(w.Agents).Filter(func(a *Agent) bool { return !a.IsEvader() }).Collect()
}

// Others returns every agent except a, in world order.
func (w *World) Others(a *Agent) []*Agent {
	return sequence.From(w.Agents).Filter(func(o *Agent) bool { return o != a }).Collect()
}

// Agent looks an agent up by name.
func (w *World) Agent(name string) (*Agent, bool) {
	for _, a := range w.Agents {
		if a.Name == name {
			return a, true
		}
	}
	return nil, false
}
