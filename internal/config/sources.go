package config

import "time"

// SourcesConfig controls where the per-source valuation feeds come from.
// Each source can be served from a scraper HTTP endpoint or from a JSON file
// the scraper deposited on disk; the URL wins when both are set.
type SourcesConfig struct {
	EspnURL   string
	EspnPath  string
	YahooURL  string
	YahooPath string
	Timeout   time.Duration
}

func loadSources() SourcesConfig {
	return SourcesConfig{
		EspnURL:   envOrDefault(envEspnFeedURL, ""),
		EspnPath:  envOrDefault(envEspnFeedPath, "data/espn_values.json"),
		YahooURL:  envOrDefault(envYahooFeedURL, ""),
		YahooPath: envOrDefault(envYahooFeedPath, "data/yahoo_values.json"),
		Timeout:   durationEnvOrDefault(envFeedTimeout, defaultFeedTimeout),
	}
}
