package scenario

import (
	"github.com/zeusync/particles/internal/core/models"
	"github.com/zeusync/particles/internal/core/observability/log"
	phys "github.com/zeusync/particles/internal/core/systems/physics"
)

var quiet = WithLogger(log.NewNop())

func agentAt(name string, role models.Role, x, y float64) *models.Agent {
	return &models.Agent{
		Entity: models.Entity{
			Name:  name,
			Size:  AgentSize,
			State: models.State{Position: phys.Vec2{X: x, Y: y}},
		},
		Collide:  true,
		Silent:   true,
		Role:     role,
		MaxSpeed: AgentMaxSpeed,
	}
}

func worldOf(agents ...*models.Agent) *models.World {
	w := models.NewWorld(DefaultCommDim)
	w.Agents = agents
	return w
}

func snapshot(w *models.World) []phys.Vec2 {
	out := make([]phys.Vec2, len(w.Agents))
	for i, a := range w.Agents {
		out[i] = a.State.Position
	}
	return out
}
