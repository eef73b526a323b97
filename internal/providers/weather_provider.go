package providers

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"roam/internal/models/domain_models"
	"roam/pkg/remote"
)

// WeatherProvider fetches current conditions at the origin. Optional: when
// it fails, the pipeline proceeds without the weather bonus.
type WeatherProvider interface {
	Current(ctx context.Context, origin domain_models.Coordinate) (domain_models.WeatherSnapshot, error)
}

type OpenMeteoClient struct {
	http    *http.Client
	baseURL string
	timeout time.Duration
}

func NewOpenMeteoClient(baseURL string, timeout time.Duration) *OpenMeteoClient {
	return &OpenMeteoClient{
		http:    &http.Client{},
		baseURL: baseURL,
		timeout: timeout,
	}
}

type openMeteoResponse struct {
	Current struct {
		Temperature   float64 `json:"temperature_2m"`
		Precipitation float64 `json:"precipitation"`
		WeatherCode   int     `json:"weather_code"`
	} `json:"current"`
}

// WMO weather interpretation codes, condensed.
func conditionText(code int) string {
	switch {
	case code == 0:
		return "clear"
	case code <= 3:
		return "partly cloudy"
	case code <= 48:
		return "fog"
	case code <= 57:
		return "drizzle"
	case code <= 67:
		return "rain"
	case code <= 77:
		return "snow"
	case code <= 82:
		return "rain showers"
	case code <= 86:
		return "snow showers"
	default:
		return "thunderstorm"
	}
}

const (
	comfortableMinF = 45.0
	comfortableMaxF = 95.0
)

func (o *OpenMeteoClient) Current(ctx context.Context, origin domain_models.Coordinate) (domain_models.WeatherSnapshot, error) {
	endpoint := fmt.Sprintf(
		"%s/v1/forecast?latitude=%f&longitude=%f&current=temperature_2m,precipitation,weather_code&temperature_unit=fahrenheit",
		o.baseURL, origin.Lat, origin.Lng)

	var payload openMeteoResponse
	if err := remote.DoJSON(ctx, o.http, http.MethodGet, endpoint, nil, nil, &payload, o.timeout); err != nil {
		return domain_models.WeatherSnapshot{}, fmt.Errorf("weather fetch: %w", err)
	}

	cur := payload.Current
	friendly := cur.Precipitation == 0 &&
		cur.WeatherCode <= 3 &&
		cur.Temperature >= comfortableMinF &&
		cur.Temperature <= comfortableMaxF

	return domain_models.WeatherSnapshot{
		TempF:           cur.Temperature,
		Condition:       conditionText(cur.WeatherCode),
		OutdoorFriendly: friendly,
	}, nil
}
