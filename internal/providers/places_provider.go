package providers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"roam/internal/models/domain_models"
	"roam/pkg/remote"
)

// PlacesProvider is the live place-search collaborator. It may fail or
// return zero results; the candidate router owns the fallback policy.
type PlacesProvider interface {
	Search(ctx context.Context, origin domain_models.Coordinate, radiusMeters int, categories []string) ([]domain_models.Candidate, error)
}

// categoryToPlaceType maps taxonomy categories onto provider place types.
// Categories without an entry are sent through unchanged.
var categoryToPlaceType = map[string]string{
	"gallery":       "art_gallery",
	"bookstore":     "book_store",
	"cinema":        "movie_theater",
	"climbing_gym":  "gym",
	"music_venue":   "night_club",
	"viewpoint":     "tourist_attraction",
	"trail":         "hiking_area",
	"sports_ground": "sports_complex",
}

var placeTypeToCategory = func() map[string]string {
	inv := make(map[string]string, len(categoryToPlaceType))
	for cat, t := range categoryToPlaceType {
		inv[t] = cat
	}
	return inv
}()

type GooglePlacesClient struct {
	http    *http.Client
	apiKey  string
	baseURL string
	timeout time.Duration
	logger  *zap.Logger
}

func NewGooglePlacesClient(apiKey, baseURL string, timeout time.Duration, logger *zap.Logger) *GooglePlacesClient {
	return &GooglePlacesClient{
		http:    &http.Client{},
		apiKey:  apiKey,
		baseURL: baseURL,
		timeout: timeout,
		logger:  logger,
	}
}

type nearbySearchRequest struct {
	IncludedTypes       []string `json:"includedTypes"`
	MaxResultCount      int      `json:"maxResultCount"`
	LocationRestriction struct {
		Circle struct {
			Center struct {
				Latitude  float64 `json:"latitude"`
				Longitude float64 `json:"longitude"`
			} `json:"center"`
			Radius float64 `json:"radius"`
		} `json:"circle"`
	} `json:"locationRestriction"`
}

type nearbySearchResponse struct {
	Places []struct {
		ID          string `json:"id"`
		DisplayName struct {
			Text string `json:"text"`
		} `json:"displayName"`
		Types       []string `json:"types"`
		PrimaryType string   `json:"primaryType"`
		Location    struct {
			Latitude  float64 `json:"latitude"`
			Longitude float64 `json:"longitude"`
		} `json:"location"`
		Rating              float64 `json:"rating"`
		UserRatingCount     int     `json:"userRatingCount"`
		PriceLevel          string  `json:"priceLevel"`
		FormattedAddress    string  `json:"formattedAddress"`
		CurrentOpeningHours *struct {
			OpenNow bool `json:"openNow"`
		} `json:"currentOpeningHours"`
		Photos []struct {
			Name string `json:"name"`
		} `json:"photos"`
	} `json:"places"`
}

func (g *GooglePlacesClient) Search(ctx context.Context, origin domain_models.Coordinate, radiusMeters int, categories []string) ([]domain_models.Candidate, error) {
	body := nearbySearchRequest{MaxResultCount: 20}
	for _, cat := range categories {
		if t, ok := categoryToPlaceType[cat]; ok {
			body.IncludedTypes = append(body.IncludedTypes, t)
		} else {
			body.IncludedTypes = append(body.IncludedTypes, cat)
		}
	}
	body.LocationRestriction.Circle.Center.Latitude = origin.Lat
	body.LocationRestriction.Circle.Center.Longitude = origin.Lng
	body.LocationRestriction.Circle.Radius = float64(radiusMeters)

	headers := map[string]string{
		"X-Goog-Api-Key":   g.apiKey,
		"X-Goog-FieldMask": "places.id,places.displayName,places.types,places.primaryType,places.location,places.rating,places.userRatingCount,places.priceLevel,places.formattedAddress,places.currentOpeningHours.openNow,places.photos.name",
	}

	var payload nearbySearchResponse
	err := remote.DoJSON(ctx, g.http, http.MethodPost, g.baseURL+"/v1/places:searchNearby", headers, body, &payload, g.timeout)
	if err != nil {
		g.logger.Warn("places search failed", zap.Error(err))
		return nil, err
	}

	out := make([]domain_models.Candidate, 0, len(payload.Places))
	for _, p := range payload.Places {
		var openNow *bool
		if p.CurrentOpeningHours != nil {
			v := p.CurrentOpeningHours.OpenNow
			openNow = &v
		}
		photo := ""
		if len(p.Photos) > 0 {
			photo = p.Photos[0].Name
		}
		out = append(out, domain_models.Candidate{
			ID:          p.ID,
			Name:        p.DisplayName.Text,
			Categories:  normalizeTypes(p.PrimaryType, p.Types),
			Location:    domain_models.Coordinate{Lat: p.Location.Latitude, Lng: p.Location.Longitude},
			Rating:      p.Rating,
			RatingCount: p.UserRatingCount,
			PriceTier:   priceLevelToTier(p.PriceLevel),
			OpenNow:     openNow,
			Address:     p.FormattedAddress,
			PhotoRef:    photo,
		})
	}
	return out, nil
}

// normalizeTypes puts the taxonomy-mapped primary type first and keeps the
// raw provider tags behind it so the router's denylist still sees them.
func normalizeTypes(primary string, types []string) []string {
	seen := make(map[string]struct{})
	var out []string

	add := func(t string) {
		if t == "" {
			return
		}
		if mapped, ok := placeTypeToCategory[t]; ok {
			t = mapped
		}
		if _, ok := seen[t]; ok {
			return
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}

	add(primary)
	for _, t := range types {
		add(t)
	}
	return out
}

func priceLevelToTier(level string) int {
	switch level {
	case "PRICE_LEVEL_FREE":
		return 0
	case "PRICE_LEVEL_INEXPENSIVE":
		return 1
	case "PRICE_LEVEL_MODERATE":
		return 2
	case "PRICE_LEVEL_EXPENSIVE":
		return 3
	case "PRICE_LEVEL_VERY_EXPENSIVE":
		return 4
	}
	return 0
}
