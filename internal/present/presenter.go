package present

import (
	"fmt"
	"io"

	"github.com/nexderm/scout/internal/models"
)

// Presenter renders each phase of the finder flow to a terminal. Copy is
// distinct per phase so a user can tell "locating" from "searching" from
// "nothing found".
type Presenter struct {
	out io.Writer
}

// New creates a Presenter writing to out.
func New(out io.Writer) *Presenter {
	return &Presenter{out: out}
}

// AcquiringLocation renders the location-acquisition loading phase.
func (p *Presenter) AcquiringLocation() {
	fmt.Fprintln(p.out, "Locating you...")
}

// AwaitingProviders renders the search loading phase.
func (p *Presenter) AwaitingProviders() {
	fmt.Fprintln(p.out, "Searching for dermatologists near you...")
}

// PermissionDenied renders the terminal permission failure with the manual
// retry affordance.
func (p *Presenter) PermissionDenied() {
	fmt.Fprintln(p.out, "Location access was declined. Specialists can only be found near your position.")
	fmt.Fprintln(p.out, "Run a new search to be asked again.")
}

// LocationUnavailable renders a positioning failure with the retry affordance.
func (p *Presenter) LocationUnavailable() {
	fmt.Fprintln(p.out, "Your location could not be determined. Check your connection and retry.")
}

// ProviderError renders a failed or silent search with the retry affordance.
func (p *Presenter) ProviderError() {
	fmt.Fprintln(p.out, "The specialist search did not return any answer. Retry to search again.")
}

// NavigationFailed renders a failed deep-link launch. Non-fatal: the ranked
// list stays usable.
func (p *Presenter) NavigationFailed(name string) {
	fmt.Fprintf(p.out, "Could not open maps for %q. Try another entry or retry.\n", name)
}

// Ranked renders the ranked provider list, or an explicit empty state that is
// distinguishable from the loading phases.
func (p *Presenter) Ranked(providers []models.Provider) {
	if len(providers) == 0 {
		fmt.Fprintln(p.out, "No dermatologists found nearby.")
		return
	}

	for i, provider := range providers {
		fmt.Fprintf(p.out, "%d. %s\n", i+1, provider.Name)
		fmt.Fprintf(p.out, "   %s\n", provider.Address)
		fmt.Fprintf(p.out, "   %.2f km away, rating %s\n", provider.DistanceKm, formatRating(provider.Rating))
	}
	fmt.Fprintln(p.out, "Enter a number to open directions in your maps application.")
}

func formatRating(rating *float64) string {
	if rating == nil {
		return "N/A"
	}

	return fmt.Sprintf("%.1f", *rating)
}
