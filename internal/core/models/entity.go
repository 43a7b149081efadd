package models

import (
	phys "github.com/zeusync/particles/internal/core/systems/physics"
)

// Color is an RGB triple with components in [0,1]. Cosmetic only.
type Color [3]float64

// State is the mutable physical state of an entity. The physics engine owns
// it between steps; scenarios write it only on reset.
type State struct {
	Position      phys.Vec2 `json:"position"`
	Velocity      phys.Vec2 `json:"velocity"`
	Communication []float64 `json:"communication,omitempty"`
}

// Entity holds what agents and landmarks have in common.
type Entity struct {
	Name  string  `json:"name"`
	Size  float64 `json:"size"`
	Color Color   `json:"color"`
	State State   `json:"state"`
}

func (e *Entity) Center() phys.Vec2 { return e.State.Position }
func (e *Entity) Radius() float64   { return e.Size }

var (
	_ phys.Body = (*Agent)(nil)
	_ phys.Body = (*Landmark)(nil)
)

// Role tags an agent's objective. Only the pursuit-evasion scenario assigns
// roles other than RoleNeutral.
type Role uint8

const (
	RoleNeutral Role = iota
	RolePursuer
	RoleEvader
)

func (r Role) String() string {
	switch r {
	case RoleNeutral:
		return "neutral"
	case RolePursuer:
		return "pursuer"
	case RoleEvader:
		return "evader"
	default:
		return "unknown"
	}
}

// Agent is a mobile body taking part in rewards and observations.
type Agent struct {
	Entity
	Collide  bool    `json:"collide"`
	Silent   bool    `json:"silent"`
	Role     Role    `json:"role"`
	MaxSpeed float64 `json:"max_speed"`
}

// IsEvader reports whether the agent is pursued.
func (a *Agent) IsEvader() bool { return a.Role == RoleEvader }

// Landmark is a static body used as a rendezvous target.
type Landmark struct {
	Entity
	Collide bool `json:"collide"`
	Movable bool `json:"movable"`
}
