package bridge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nexderm/scout/internal/metrics"
	"github.com/nexderm/scout/internal/models"
	"golang.org/x/time/rate"
)

// Runner is one rendered surface execution.
type Runner interface {
	Run(ctx context.Context, out chan<- []byte)
}

// RenderFunc renders a fresh surface bound to the given origin.
type RenderFunc func(origin models.Coordinate) Runner

// ErrSearchTimeout is returned when the surface never posts a well-formed
// message within the configured deadline. The third-party search has no
// failure signal of its own, so the deadline is the only way out.
var ErrSearchTimeout = errors.New("no provider message received before deadline")

// Bridge is the host side of the message channel. It renders a sandboxed
// search surface per activation and relays exactly one validated provider
// list back. Malformed messages are discarded and logged, never fatal; only
// the first well-formed PROVIDERS message per activation is honored.
type Bridge struct {
	render  RenderFunc       // render creates a surface for an origin
	limiter *rate.Limiter    // limiter throttles searches across retries
	metrics *metrics.Metrics // metrics tracks message outcomes
	log     *slog.Logger     // log is the logger for logging operations
}

// NewBridge creates a Bridge. searchRate bounds how many searches per second
// user-initiated retries may issue against the third-party API.
func NewBridge(render RenderFunc, searchRate int, appMetrics *metrics.Metrics, log *slog.Logger) *Bridge {
	return &Bridge{
		render:  render,
		limiter: rate.NewLimiter(rate.Limit(searchRate), 1),
		metrics: appMetrics,
		log:     log,
	}
}

// Search renders a surface for origin and waits for its one result message.
// It returns the validated provider list, ErrSearchTimeout when the deadline
// passes (deadline comes from the caller's context), or the context error on
// cancellation. Invalid inbound messages are counted, logged and skipped
// without disturbing the wait.
func (b *Bridge) Search(ctx context.Context, origin models.Coordinate) ([]models.Provider, error) {
	if err := b.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("search rate limit: %w", err)
	}

	out := make(chan []byte, 1)
	go b.render(origin).Run(ctx, out)

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.DeadlineExceeded) {
				b.log.WarnContext(ctx, "Search surface never responded", "lat", origin.Latitude, "lng", origin.Longitude)
				return nil, ErrSearchTimeout
			}
			return nil, fmt.Errorf("search abandoned: %w", ctx.Err())
		case raw, ok := <-out:
			if !ok {
				// Surface finished without posting; keep waiting for the
				// deadline so a silent failure presents like a slow one.
				out = nil
				continue
			}

			rawProviders, err := decodeMessage(raw)
			if err != nil {
				b.metrics.BridgeMessages.WithLabelValues("discarded").Inc()
				b.log.WarnContext(ctx, "Discarding invalid bridge message", "error", err)
				continue
			}

			b.metrics.BridgeMessages.WithLabelValues("accepted").Inc()
			b.log.InfoContext(ctx, "Accepted providers message", "count", len(rawProviders))

			return b.convert(ctx, rawProviders), nil
		}
	}
}

// convert turns untrusted raw entries into domain providers. Entries without
// a name are dropped; entries with out-of-range coordinates keep a nil
// location and are later excluded from ranking.
func (b *Bridge) convert(ctx context.Context, raw []RawProvider) []models.Provider {
	providers := make([]models.Provider, 0, len(raw))
	for _, entry := range raw {
		if entry.Name == "" {
			b.log.WarnContext(ctx, "Dropping provider without a name", "address", entry.Address)
			continue
		}

		provider := models.Provider{Name: entry.Name, Address: entry.Address, Rating: entry.Rating}
		if provider.Address == "" {
			provider.Address = "unavailable"
		}

		if entry.Lat != nil && entry.Lng != nil {
			coord, err := models.NewCoordinate(*entry.Lat, *entry.Lng)
			if err != nil {
				b.log.WarnContext(ctx, "Provider has invalid coordinates",
					"name", entry.Name, "lat", *entry.Lat, "lng", *entry.Lng)
			} else {
				provider.Location = &coord
			}
		}

		providers = append(providers, provider)
	}

	return providers
}
