package advisor

import (
	"context"
	"encoding/json"
	"errors"
)

// ErrUnavailable signals that the generator could not produce a
// recommendation. Callers skip the recommendation step; they never fail the
// surrounding batch because of it.
var ErrUnavailable = errors.New("recommendation generator unavailable")

// Input carries the student context a generator reasons over.
type Input struct {
	StudentCode string
	FullName    string
	Program     string
	YearLevel   *int
	Signals     map[string]interface{}
	RiskScore   int
	RiskLevel   string
	RiskReasons json.RawMessage
}

// Action is a single recommended intervention step.
type Action struct {
	Type      string `json:"type"`
	Owner     string `json:"owner"`
	Rationale string `json:"rationale"`
}

// Result is the structured advisory output of a generator.
type Result struct {
	Priority    string   `json:"priority"`
	Actions     []Action `json:"recommended_actions"`
	Explanation string   `json:"explanation"`
	Model       string   `json:"model"`
}

// Generator produces intervention recommendations for a scored student.
// Implementations may call external services and must honour the context
// deadline.
type Generator interface {
	Generate(ctx context.Context, input Input) (Result, error)
}
