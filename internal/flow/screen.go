package flow

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nexderm/scout/internal/bridge"
	"github.com/nexderm/scout/internal/location"
	"github.com/nexderm/scout/internal/metrics"
	"github.com/nexderm/scout/internal/models"
	"github.com/nexderm/scout/internal/ranking"
)

// Acquirer obtains the activation's single coordinate.
type Acquirer interface {
	Acquire(ctx context.Context) (models.Coordinate, error)
}

// Searcher delegates the provider search and relays the one result message.
type Searcher interface {
	Search(ctx context.Context, origin models.Coordinate) ([]models.Provider, error)
}

// Viewer renders the flow's states. One method per state keeps the copy for
// each phase distinct.
type Viewer interface {
	AcquiringLocation()
	AwaitingProviders()
	PermissionDenied()
	LocationUnavailable()
	ProviderError()
	Ranked(providers []models.Provider)
}

// Result is the terminal outcome of one activation.
type Result struct {
	State     models.State      // Terminal state of the activation.
	Providers []models.Provider // Ranked providers, set only for StateRanked.
	Err       error             // Cause of a terminal error state.
}

// Screen drives one finder flow: acquire a coordinate, delegate the search,
// rank, present. Each call to Run is a fresh activation with its own state
// machine; states move forward only, and a retry means a whole new Run.
type Screen struct {
	log           *slog.Logger     // Logger for logging flow activities
	acquirer      Acquirer         // Coordinate acquirer for the user's position
	searcher      Searcher         // Bridge to the third-party provider search
	view          Viewer           // Presenter for per-state rendering
	metrics       *metrics.Metrics // Metrics for tracking flow outcomes
	resultLimit   int              // Maximum number of ranked providers
	searchTimeout time.Duration    // Bound on waiting for the search surface
}

// NewScreen creates a Screen from its collaborators.
func NewScreen(
	log *slog.Logger,
	acquirer Acquirer,
	searcher Searcher,
	view Viewer,
	appMetrics *metrics.Metrics,
	resultLimit int,
	searchTimeout time.Duration,
) *Screen {
	return &Screen{
		log:           log,
		acquirer:      acquirer,
		searcher:      searcher,
		view:          view,
		metrics:       appMetrics,
		resultLimit:   resultLimit,
		searchTimeout: searchTimeout,
	}
}

// Run executes one activation to its terminal state. Outstanding acquisition
// or search work is cancelled when the activation ends, so an abandoned flow
// does not keep consuming resources.
func (s *Screen) Run(ctx context.Context) Result {
	activation := uuid.NewString()
	log := s.log.With("activation", activation)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s.metrics.ActivationsTotal.Inc()

	state := models.StateIdle
	transition := func(next models.State) {
		log.DebugContext(ctx, "Screen state transition", "from", state, "to", next)
		state = next
	}

	transition(models.StateAcquiringLocation)
	s.view.AcquiringLocation()

	start := time.Now()
	origin, err := s.acquirer.Acquire(ctx)
	s.metrics.PhaseSeconds.WithLabelValues("acquire").Observe(time.Since(start).Seconds())

	if err != nil {
		transition(models.StateLocationError)
		if errors.Is(err, location.ErrPermissionDenied) {
			s.view.PermissionDenied()
		} else {
			log.ErrorContext(ctx, "Failed to acquire coordinate", "error", err)
			s.view.LocationUnavailable()
		}
		return Result{State: models.StateLocationError, Err: err}
	}

	transition(models.StateAwaitingProviders)
	s.view.AwaitingProviders()

	searchCtx, cancelSearch := context.WithTimeout(ctx, s.searchTimeout)
	defer cancelSearch()

	start = time.Now()
	providers, err := s.searcher.Search(searchCtx, origin)
	s.metrics.PhaseSeconds.WithLabelValues("search").Observe(time.Since(start).Seconds())

	if err != nil {
		status := "failure"
		if errors.Is(err, bridge.ErrSearchTimeout) {
			status = "timeout"
		}
		s.metrics.SearchesTotal.WithLabelValues(status).Inc()

		log.ErrorContext(ctx, "Provider search failed", "error", err)
		transition(models.StateProviderError)
		s.view.ProviderError()
		return Result{State: models.StateProviderError, Err: err}
	}

	s.metrics.SearchesTotal.WithLabelValues("success").Inc()

	ranked := ranking.Rank(providers, origin, s.resultLimit)
	log.InfoContext(ctx, "Ranked providers", "received", len(providers), "ranked", len(ranked))

	transition(models.StateRanked)
	s.view.Ranked(ranked)

	return Result{State: models.StateRanked, Providers: ranked}
}
