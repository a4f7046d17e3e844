package location

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nexderm/scout/internal/models"
)

// PermissionRequester asks the user for foreground location access.
// Request must trigger at most one user-facing prompt per call.
type PermissionRequester interface {
	Request(ctx context.Context) (bool, error)
}

// PositionSource produces a current position fix.
type PositionSource interface {
	Current(ctx context.Context) (models.Coordinate, error)
}

// Common errors for coordinate acquisition.
var (
	// ErrPermissionDenied means the user declined location access. Terminal
	// for the activation; only a manual restart may ask again.
	ErrPermissionDenied = errors.New("location permission denied")
	// ErrLocationUnavailable means the positioning service failed after
	// permission was granted.
	ErrLocationUnavailable = errors.New("location unavailable")
)

// Acquirer obtains a single coordinate per activation: permission first,
// then a position fix. It never requests a fix without a prior grant.
type Acquirer struct {
	perm   PermissionRequester // perm asks for location access
	source PositionSource      // source produces the position fix
	log    *slog.Logger        // log is the logger for logging operations
}

// NewAcquirer creates an Acquirer from a permission requester and a position source.
func NewAcquirer(perm PermissionRequester, source PositionSource, log *slog.Logger) *Acquirer {
	return &Acquirer{perm: perm, source: source, log: log}
}

// Acquire requests location permission and, only after a grant, a position fix.
// A declined prompt returns ErrPermissionDenied. A failing positioning service
// after the grant returns an error wrapping ErrLocationUnavailable.
func (a *Acquirer) Acquire(ctx context.Context) (models.Coordinate, error) {
	a.log.DebugContext(ctx, "Requesting location permission")

	granted, err := a.perm.Request(ctx)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("failed to resolve permission prompt: %w", err)
	}
	if !granted {
		a.log.InfoContext(ctx, "Location permission declined by user")
		return models.Coordinate{}, ErrPermissionDenied
	}

	a.log.DebugContext(ctx, "Permission granted, requesting position fix")

	coord, err := a.source.Current(ctx)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: %w", ErrLocationUnavailable, err)
	}

	a.log.InfoContext(ctx, "Acquired coordinate", "lat", coord.Latitude, "lng", coord.Longitude)

	return coord, nil
}
