package scenario

import "errors"

var (
	// Construction errors

	ErrInvalidPopulation = errors.New("invalid population")
	ErrUnknownScenario   = errors.New("unknown scenario")
	ErrDuplicateScenario = errors.New("scenario already registered")

	// Evaluation errors

	ErrNilAgent      = errors.New("agent is nil")
	ErrNilWorld      = errors.New("world is nil")
	ErrNoAgents      = errors.New("world has no agents")
	ErrNoPursuers    = errors.New("world has no pursuers")
	ErrLandmarkCount = errors.New("world must have exactly one landmark")
	ErrUnknownRole   = errors.New("agent role not handled by scenario")
)
