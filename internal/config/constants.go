package config

import "time"

const (
	envPort            = "PORT"
	envRefreshInterval = "CATALOG_REFRESH_INTERVAL"
	envProvider        = "VALUATION_PROVIDER"
	envDataDir         = "DATA_DIR"
	envLeagueFile      = "LEAGUE_CONFIG"
	envSessionStore    = "SESSION_STORE"
	envSessionDBPath   = "SESSION_DB_PATH"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envEspnFeedURL     = "ESPN_FEED_URL"
	envEspnFeedPath    = "ESPN_FEED_PATH"
	envYahooFeedURL    = "YAHOO_FEED_URL"
	envYahooFeedPath   = "YAHOO_FEED_PATH"
	envFeedTimeout     = "FEED_TIMEOUT"
	envAdviceURL       = "ADVICE_SERVICE_URL"
	envAdviceAPIKey    = "ADVICE_API_KEY"
	envAdviceModel     = "ADVICE_MODEL"
	envAdviceTimeout   = "ADVICE_TIMEOUT"
	envStartingBudget  = "STARTING_BUDGET"
	envRosterSize      = "ROSTER_SIZE"
	envAdminToken      = "ADMIN_TOKEN"

	defaultPort         = "4000"
	defaultProvider     = "fixture"
	defaultDataDir      = "data"
	defaultSessionStore = "fs"
	defaultMetricsPort  = "9090"
	// Conservative default so the scraper deposits are not hammered; catalogs
	// only change between draft cycles anyway.
	defaultRefreshInterval = 15 * time.Minute
	defaultFeedTimeout     = 30 * time.Second
	defaultAdviceTimeout   = 30 * time.Second
)
