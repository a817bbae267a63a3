package config

import "time"

// LLMConfig configures the content generator provider.
type LLMConfig struct {
	// Provider selects the chat backend: "openai" or "anthropic".
	Provider string

	// Model overrides the provider default model when non-empty.
	Model string

	// APIKey falls back to the provider-specific env var when empty.
	APIKey string

	// Temperature for packing list generation.
	Temperature float32
}

func loadLLMConfig() LLMConfig {
	return LLMConfig{
		Provider:    getEnv("LLM_PROVIDER", "openai"),
		Model:       getEnv("LLM_MODEL", ""),
		APIKey:      getEnv("LLM_API_KEY", ""),
		Temperature: float32(getEnvInt("LLM_TEMPERATURE_PCT", 70)) / 100,
	}
}

// ForecastConfig configures the WeatherAPI.com client.
type ForecastConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

func loadForecastConfig() ForecastConfig {
	return ForecastConfig{
		APIKey:  getEnv("WEATHER_API_KEY", ""),
		BaseURL: getEnv("WEATHER_API_BASE_URL", "https://api.weatherapi.com/v1"),
		Timeout: getEnvDuration("WEATHER_API_TIMEOUT", 10*time.Second),
	}
}
