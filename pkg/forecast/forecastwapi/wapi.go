package forecastwapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Abraxas-365/packwright/pkg/asyncx"
	"github.com/Abraxas-365/packwright/pkg/forecast"
)

const (
	// DefaultBaseURL is the WeatherAPI.com endpoint root.
	DefaultBaseURL = "https://api.weatherapi.com/v1"

	// DefaultTimeout bounds a single forecast request.
	DefaultTimeout = 10 * time.Second

	// maxForecastDays is the WeatherAPI.com forecast horizon. Longer trips
	// get summarized from the first days available.
	maxForecastDays = 14

	requestAttempts  = 3
	retryInitialWait = time.Second
)

// WeatherAPIProvider implements forecast.Provider against WeatherAPI.com.
type WeatherAPIProvider struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewWeatherAPIProvider creates a new WeatherAPI.com backed provider.
func NewWeatherAPIProvider(apiKey, baseURL string, httpClient *http.Client) *WeatherAPIProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: DefaultTimeout}
	}

	return &WeatherAPIProvider{
		apiKey:     apiKey,
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// forecastResponse mirrors the slice of the WeatherAPI payload we consume.
type forecastResponse struct {
	Location struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	} `json:"location"`
	Forecast struct {
		ForecastDay []struct {
			Date string `json:"date"`
			Day  struct {
				MaxTempC          float64 `json:"maxtemp_c"`
				MinTempC          float64 `json:"mintemp_c"`
				AvgTempC          float64 `json:"avgtemp_c"`
				DailyChanceOfRain int     `json:"daily_chance_of_rain"`
				DailyChanceOfSnow int     `json:"daily_chance_of_snow"`
				Condition         struct {
					Text string `json:"text"`
				} `json:"condition"`
			} `json:"day"`
		} `json:"forecastday"`
	} `json:"forecast"`
}

// Forecast fetches and summarizes the forecast for a destination and range.
func (p *WeatherAPIProvider) Forecast(ctx context.Context, destination string, start, end time.Time) (forecast.Summary, error) {
	if p.apiKey == "" {
		return forecast.Summary{}, errorRegistry.New(ErrMissingAPIKey)
	}
	if end.Before(start) {
		return forecast.Summary{}, errorRegistry.New(ErrInvalidRange).
			WithDetail("start", start.Format("2006-01-02")).
			WithDetail("end", end.Format("2006-01-02"))
	}

	totalDays := int(end.Sub(start).Hours()/24) + 1
	days := totalDays
	if days > maxForecastDays {
		days = maxForecastDays
	}

	query := url.Values{}
	query.Set("key", p.apiKey)
	query.Set("q", destination)
	query.Set("days", fmt.Sprintf("%d", days))
	query.Set("aqi", "no")
	query.Set("alerts", "no")

	endpoint := fmt.Sprintf("%s/forecast.json?%s", p.baseURL, query.Encode())

	body, err := asyncx.RetryWithBackoff(ctx, requestAttempts, retryInitialWait,
		func(ctx context.Context) ([]byte, error) {
			return p.get(ctx, endpoint)
		})
	if err != nil {
		return forecast.Summary{}, err
	}

	var payload forecastResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return forecast.Summary{}, errorRegistry.NewWithCause(ErrAPIResponse, err)
	}

	parsed := make([]forecast.Day, 0, len(payload.Forecast.ForecastDay))
	for _, fd := range payload.Forecast.ForecastDay {
		parsed = append(parsed, forecast.Day{
			Date:         fd.Date,
			MaxTempC:     fd.Day.MaxTempC,
			MinTempC:     fd.Day.MinTempC,
			AvgTempC:     fd.Day.AvgTempC,
			Condition:    fd.Day.Condition.Text,
			ChanceOfRain: fd.Day.DailyChanceOfRain,
			ChanceOfSnow: fd.Day.DailyChanceOfSnow,
		})
	}

	summary := forecast.Summarize(parsed, totalDays)
	summary.Location = payload.Location.Name
	summary.Country = payload.Location.Country
	return summary, nil
}

func (p *WeatherAPIProvider) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errorRegistry.NewWithCause(ErrAPIRequest, err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, errorRegistry.NewWithCause(ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errorRegistry.NewWithCause(ErrAPIResponse, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, errorRegistry.NewWithMessage(ErrAPIRequest,
			fmt.Sprintf("WeatherAPI request failed with status %d", resp.StatusCode)).
			WithDetail("status_code", resp.StatusCode).
			WithDetail("body", string(body))
	}

	return body, nil
}
