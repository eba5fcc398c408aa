package faresolver

import (
	"time"

	"github.com/transit-tools/fare-resolver/fare"
)

// LegRequest is one itinerary leg as submitted by a caller. Date accepts the
// same loose formats the fare tables do.
type LegRequest struct {
	Date string `json:"date"`
	From string `json:"from"`
	To   string `json:"to"`
}

// ResolveRequest is the /api/resolve body.
type ResolveRequest struct {
	Legs []LegRequest `json:"legs"`
}

// LegResult is the per-leg resolution outcome. For misses, Tried and
// HasAnyRoute distinguish "no record covers this date" from "route entirely
// unknown".
type LegResult struct {
	Date        string           `json:"date"`
	From        string           `json:"from"`
	To          string           `json:"to"`
	Hit         bool             `json:"hit"`
	Record      *fare.FareRecord `json:"record,omitempty"`
	Tried       []string         `json:"tried,omitempty"`
	HasAnyRoute bool             `json:"hasAnyRoute"`
	Reverse     bool             `json:"reverse,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// ResolveResponse carries the per-leg results plus the batch aggregate.
type ResolveResponse struct {
	Results []LegResult         `json:"results"`
	Summary fare.ResolveSummary `json:"summary"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status  string     `json:"status"`
	BuiltAt *time.Time `json:"builtAt,omitempty"`
}
