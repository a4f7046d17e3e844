package ranking

import (
	"math"
	"sort"

	"github.com/nexderm/scout/internal/models"
)

// earthRadiusKm is the mean Earth radius used for great-circle distances.
const earthRadiusKm = 6371.0

// Haversine computes the great-circle distance between two coordinates in
// kilometers on a sphere of Earth's mean radius.
func Haversine(from, to models.Coordinate) float64 {
	lat1 := from.Latitude * math.Pi / 180
	lat2 := to.Latitude * math.Pi / 180
	dLat := (to.Latitude - from.Latitude) * math.Pi / 180
	dLng := (to.Longitude - from.Longitude) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// Rank selects the closest providers to origin, at most limit of them,
// ordered ascending by distance. Providers without a location cannot be
// placed and are excluded. The sort is stable: equal-distance providers keep
// their arrival order. Rank never mutates its input and is deterministic.
func Rank(providers []models.Provider, origin models.Coordinate, limit int) []models.Provider {
	ranked := make([]models.Provider, 0, len(providers))
	for _, provider := range providers {
		if provider.Location == nil {
			continue
		}
		provider.DistanceKm = Haversine(origin, *provider.Location)
		ranked = append(ranked, provider)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	if limit >= 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return ranked
}
