package config

import "time"

// AdviceConfig controls the external recommendation service boundary.
type AdviceConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

func loadAdvice() AdviceConfig {
	return AdviceConfig{
		BaseURL: envOrDefault(envAdviceURL, ""),
		APIKey:  envOrDefault(envAdviceAPIKey, ""),
		Model:   envOrDefault(envAdviceModel, ""),
		Timeout: durationEnvOrDefault(envAdviceTimeout, defaultAdviceTimeout),
	}
}
