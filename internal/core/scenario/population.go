package scenario

import (
	"fmt"

	"github.com/zeusync/particles/internal/core/models"
)

func populateAgents(w *models.World, n int, configure func(i int, a *models.Agent)) {
	w.Agents = make([]*models.Agent, n)
	for i := range w.Agents {
		a := &models.Agent{
			Entity: models.Entity{
				Name: fmt.Sprintf("agent %d", i),
				Size: AgentSize,
			},
			Silent:   true,
			MaxSpeed: AgentMaxSpeed,
		}
		configure(i, a)
		w.Agents[i] = a
	}
}

func populateLandmarks(w *models.World, n int) {
	w.Landmarks = make([]*models.Landmark, n)
	for i := range w.Landmarks {
		w.Landmarks[i] = &models.Landmark{
			Entity: models.Entity{
				Name: fmt.Sprintf("landmark %d", i),
				Size: LandmarkSize,
			},
			Collide: false,
			Movable: false,
		}
	}
}
