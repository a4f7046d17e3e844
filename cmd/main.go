package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/nexderm/scout/internal/bridge"
	"github.com/nexderm/scout/internal/classify"
	"github.com/nexderm/scout/internal/config"
	"github.com/nexderm/scout/internal/flow"
	"github.com/nexderm/scout/internal/location"
	"github.com/nexderm/scout/internal/metrics"
	"github.com/nexderm/scout/internal/models"
	"github.com/nexderm/scout/internal/navigate"
	"github.com/nexderm/scout/internal/present"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Constants for different environment types.
const (
	envLocal = "local"
	envDev   = "development"
	envProd  = "production"
)

// main is the entry point of the application.
func main() {
	imagePath := flag.String("image", "", "optional lesion image to classify before searching")
	flag.Parse()

	// Create a context that will be canceled when an interrupt signal is received.
	// This allows for graceful shutdown.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load application configuration.
	cfg := config.MustLoad()

	// Set up the logger based on the environment.
	logger := setupLogger(cfg.Env)

	// Create a separate registry for metrics.
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	appMetrics := metrics.NewMetrics(reg)

	// Create the Google Maps client the search surface runs on.
	placesClient, err := bridge.NewPlacesClient(cfg.APIKey, cfg.SearchRate)
	if err != nil {
		log.Fatalf("Failed to create places client: %v", err)
	}

	// The bridge renders a fresh surface per activation; the origin is fixed
	// at render time and cannot be updated afterwards.
	render := func(origin models.Coordinate) bridge.Runner {
		return bridge.NewSurface(placesClient, origin, cfg.SearchRadiusKm, cfg.SearchKeyword, logger)
	}
	searchBridge := bridge.NewBridge(render, cfg.SearchRate, appMetrics, logger)

	stdin := bufio.NewReader(os.Stdin)

	source, err := positionSource(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to configure position source: %v", err)
	}

	acquirer := location.NewAcquirer(location.NewTerminalPrompter(stdin, os.Stdout), source, logger)
	presenter := present.New(os.Stdout)
	launcher := navigate.NewLauncher(navigate.ExecOpener{}, logger)

	screen := flow.NewScreen(logger, acquirer, searchBridge, presenter, appMetrics,
		cfg.ResultLimit, cfg.SearchTimeout)

	logger.InfoContext(ctx, "Application started. Press Ctrl+C to stop.")

	// Start the monitoring server in a goroutine to allow main to run the session.
	go startMonitoringServer(ctx, logger, reg, cfg.Port)

	if *imagePath != "" {
		runClassification(ctx, cfg, logger, *imagePath)
	}

	runSession(ctx, screen, presenter, launcher, stdin)

	logger.InfoContext(ctx, "Application stopped gracefully.")
}

// runClassification uploads the given image to the upstream classifier and
// prints the outcome. The finder flow continues regardless of the result; the
// classifier is a collaborator, not a gate.
func runClassification(ctx context.Context, cfg *config.Config, logger *slog.Logger, imagePath string) {
	if cfg.ClassifierURL == "" {
		fmt.Println("No classifier configured (SCOUT_CLASSIFIER_URL); skipping image classification.")
		return
	}

	client := classify.NewClient(cfg.ClassifierURL, logger)
	prediction, err := client.Predict(ctx, imagePath)
	if err != nil {
		logger.ErrorContext(ctx, "Classification failed", "error", err)
		fmt.Println("Classification failed; you can still search for a specialist.")
		return
	}

	fmt.Printf("Prediction: %s (confidence %.0f%%)\n", prediction.Label, prediction.Confidence*100)
	for _, recommendation := range prediction.Recommendations {
		fmt.Printf(" - %s\n", recommendation)
	}
}

// runSession drives activations until the user quits or the context is
// cancelled. Every retry is a brand-new activation: a new permission prompt,
// a new position fix and a new search surface.
func runSession(
	ctx context.Context,
	screen *flow.Screen,
	presenter *present.Presenter,
	launcher *navigate.Launcher,
	stdin *bufio.Reader,
) {
	for ctx.Err() == nil {
		result := screen.Run(ctx)
		if ctx.Err() != nil {
			return
		}

		if result.State != models.StateRanked {
			if !askYes(stdin, "Retry? [y/N]: ") {
				return
			}
			continue
		}

		if len(result.Providers) == 0 {
			if !askYes(stdin, "Search again? [y/N]: ") {
				return
			}
			continue
		}

		navigateLoop(stdin, presenter, launcher, result.Providers)
		return
	}
}

// navigateLoop lets the user open directions for ranked entries until they
// leave with an empty answer. A failed launch is reported and the prompt
// repeats; it never ends the session.
func navigateLoop(
	stdin *bufio.Reader,
	presenter *present.Presenter,
	launcher *navigate.Launcher,
	providers []models.Provider,
) {
	for {
		fmt.Print("Entry number (empty to quit): ")
		line, err := stdin.ReadString('\n')
		answer := strings.TrimSpace(line)
		if answer == "" || err != nil {
			return
		}

		idx, convErr := strconv.Atoi(answer)
		if convErr != nil || idx < 1 || idx > len(providers) {
			fmt.Printf("Enter a number between 1 and %d.\n", len(providers))
			continue
		}

		provider := providers[idx-1]
		if launchErr := launcher.Launch(provider); launchErr != nil {
			presenter.NavigationFailed(provider.Name)
		}
	}
}

func askYes(stdin *bufio.Reader, prompt string) bool {
	fmt.Print(prompt)
	line, _ := stdin.ReadString('\n')
	answer := strings.ToLower(strings.TrimSpace(line))

	return answer == "y" || answer == "yes"
}

// positionSource selects the position fix implementation: a static override
// from configuration when present, otherwise the IP-geolocation endpoint.
func positionSource(cfg *config.Config, logger *slog.Logger) (location.PositionSource, error) {
	if cfg.StaticLat == "" && cfg.StaticLng == "" {
		return location.NewGeoIPSource(cfg.GeoIPURL, logger), nil
	}

	lat, err := strconv.ParseFloat(cfg.StaticLat, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SCOUT_POSITION_LAT: %w", err)
	}
	lng, err := strconv.ParseFloat(cfg.StaticLng, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid SCOUT_POSITION_LNG: %w", err)
	}

	coord, err := models.NewCoordinate(lat, lng)
	if err != nil {
		return nil, fmt.Errorf("static position out of range: %w", err)
	}

	return location.NewStaticSource(coord), nil
}

// startMonitoringServer starts an HTTP server that provides health check and metrics endpoints.
// It listens on the specified port and logs the server's status and any errors encountered.
func startMonitoringServer(ctx context.Context, log *slog.Logger, reg *prometheus.Registry, port int) {
	http.HandleFunc("/healthz", func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusOK)
		if _, err := writer.Write([]byte("OK")); err != nil {
			log.ErrorContext(ctx, "failed to write reply", "error", err)
		}
	})
	http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	log.InfoContext(ctx, "Starting monitoring server", "port", port)
	readTimeout := 5
	writeTimeout := 10
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      http.DefaultServeMux,
		ReadTimeout:  time.Duration(readTimeout) * time.Second,
		WriteTimeout: time.Duration(writeTimeout) * time.Second,
	}
	if err := server.ListenAndServe(); err != nil {
		log.ErrorContext(ctx, "Monitoring server failed", "error", err)
	}
}

// setupLogger initializes and returns a logger based on the environment provided.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level:     slog.LevelDebug,
				AddSource: true,
			}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelWarn,
				ReplaceAttr: func(_ []string, a slog.Attr) slog.Attr {
					if a.Key == slog.TimeKey {
						return slog.Attr{}
					}
					return a
				},
			}),
		)
	default:
		log = slog.New(
			slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
				Level: slog.LevelError,
			}),
		)

		log.Error(
			"The env parameter was not specified or was invalid. Logging will be minimal, by default.",
			slog.String("available_envs", "local, development, production"))
	}

	return log
}
