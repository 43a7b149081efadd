package scenario

import (
	"math/rand/v2"

	"github.com/zeusync/particles/internal/core/models"
	phys "github.com/zeusync/particles/internal/core/systems/physics"
)

// Spawn area is the square [-SpawnBound, SpawnBound]².
const SpawnBound = 1.0

var (
	EvaderColor             = models.Color{0.7, 0.1, 0.1}
	PursuerColor            = models.Color{0.1, 0.1, 0.7}
	RendezvousColor         = models.Color{0.1, 0.2, 0.3}
	LandmarkRendezvousColor = models.Color{0.1, 0.1, 0.7}
	LandmarkColor           = models.Color{0.25, 0.25, 0.25}
)

func spawnPosition(rng *rand.Rand) phys.Vec2 {
	return phys.Vec2{
		X: uniform(rng, -SpawnBound, SpawnBound),
		Y: uniform(rng, -SpawnBound, SpawnBound),
	}
}

// resetAgents recolors every agent and redraws its state. Agents are drawn
// in world order so a given rng always yields the same layout.
func resetAgents(w *models.World, rng *rand.Rand, color func(*models.Agent) models.Color) {
	for _, a := range w.Agents {
		a.Color = color(a)
	}
	for _, a := range w.Agents {
		a.State = models.State{
			Position:      spawnPosition(rng),
			Communication: make([]float64, w.DimC),
		}
	}
}

func resetLandmarks(w *models.World, rng *rand.Rand) {
	for _, l := range w.Landmarks {
		l.Color = LandmarkColor
		l.State = models.State{Position: spawnPosition(rng)}
	}
}
