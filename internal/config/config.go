package config

import "time"

// Config holds runtime configuration for the server.
type Config struct {
	Port            string
	RefreshInterval time.Duration
	Provider        string
	DataDir         string
	SessionStore    string // "memory", "fs" or "sqlite"
	SessionDBPath   string
	AdminToken      string
	League          LeagueConfig
	Sources         SourcesConfig
	Advice          AdviceConfig
	Metrics         MetricsConfig
}

// Load reads configuration from environment variables with sensible defaults,
// then overlays the optional YAML league-settings file when present.
func Load() Config {
	cfg := Config{
		Port:            envOrDefault(envPort, defaultPort),
		RefreshInterval: durationEnvOrDefault(envRefreshInterval, defaultRefreshInterval),
		Provider:        envOrDefault(envProvider, defaultProvider),
		DataDir:         envOrDefault(envDataDir, defaultDataDir),
		SessionStore:    envOrDefault(envSessionStore, defaultSessionStore),
		SessionDBPath:   envOrDefault(envSessionDBPath, ""),
		AdminToken:      envOrDefault(envAdminToken, ""),
		League:          defaultLeague(),
		Sources:         loadSources(),
		Advice:          loadAdvice(),
		Metrics:         loadMetrics(),
	}

	cfg.League.StartingBudget = floatEnvOrDefault(envStartingBudget, cfg.League.StartingBudget)
	cfg.League.RosterSize = intEnvOrDefault(envRosterSize, cfg.League.RosterSize)

	if path := envOrDefault(envLeagueFile, ""); path != "" {
		if league, err := LoadLeague(path); err == nil {
			cfg.League = league
		}
	}
	return cfg
}
