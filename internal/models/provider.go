package models

// Provider represents a specialist location candidate returned by the
// third-party nearby search.
type Provider struct {
	Name       string      // Name is the display name of the specialist or clinic.
	Address    string      // Address is the street address, "unavailable" when unknown.
	Rating     *float64    // Rating in [0, 5], nil when the search returned none.
	Location   *Coordinate // Location of the provider, nil when not resolvable.
	DistanceKm float64     // DistanceKm is derived locally, never trusted from the search.
}

// State identifies the phase of one screen activation. Transitions are
// monotonic within an activation; a retry starts a fresh activation.
type State string

const (
	StateIdle              State = "idle"
	StateAcquiringLocation State = "acquiring_location"
	StateLocationError     State = "location_error"
	StateAwaitingProviders State = "awaiting_providers"
	StateProviderError     State = "provider_error"
	StateRanked            State = "ranked"
)
