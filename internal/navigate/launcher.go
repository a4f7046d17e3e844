package navigate

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/nexderm/scout/internal/models"
)

// Opener opens a URL in an external application.
type Opener interface {
	Open(rawURL string) error
}

// ErrLaunchFailed is returned when the external maps application could not be
// opened. Retryable and non-fatal: the ranked list stays valid.
var ErrLaunchFailed = errors.New("failed to launch external navigation")

// Launcher builds a maps deep link for a provider and hands it to the
// external application. A coordinate-anchored query is preferred; providers
// without a location fall back to a name query.
type Launcher struct {
	opener Opener
	log    *slog.Logger
}

// NewLauncher creates a Launcher using the given opener.
func NewLauncher(opener Opener, log *slog.Logger) *Launcher {
	return &Launcher{opener: opener, log: log}
}

// Launch opens the external maps application for the provider.
func (l *Launcher) Launch(provider models.Provider) error {
	target := DeepLink(provider)

	l.log.Debug("Launching external navigation", "provider", provider.Name, "url", target)

	if err := l.opener.Open(target); err != nil {
		return fmt.Errorf("%w: %w", ErrLaunchFailed, err)
	}

	return nil
}

// DeepLink returns the maps search URL for a provider.
func DeepLink(provider models.Provider) string {
	base := "https://www.google.com/maps/search/?api=1&query="
	if provider.Location != nil {
		return fmt.Sprintf("%s%f,%f", base, provider.Location.Latitude, provider.Location.Longitude)
	}

	return base + url.QueryEscape(provider.Name)
}

// ExecOpener opens URLs with the platform's default handler.
type ExecOpener struct{}

// Open shells out to the platform opener for rawURL.
func (ExecOpener) Open(rawURL string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", rawURL)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", rawURL)
	default:
		cmd = exec.Command("xdg-open", rawURL)
	}

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start opener: %w", err)
	}

	return nil
}
