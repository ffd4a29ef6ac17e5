package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/joho/godotenv"

	appcatalog "auction-draft-service/internal/app/catalog"
	"auction-draft-service/internal/domain/catalog"
	"auction-draft-service/internal/logging"
	"auction-draft-service/internal/providers/feed"
	"auction-draft-service/internal/reconcile"
	"auction-draft-service/internal/timeutil"
)

// main builds a reconciled catalog from scraper dumps in one shot, for use
// outside the long-running service (cron jobs, draft-day prep).
func main() {
	os.Exit(run(os.Args[1:], os.Stdout))
}

func run(args []string, out io.Writer) int {
	fs := flag.NewFlagSet("catalog", flag.ContinueOnError)
	espnURL := fs.String("espn-url", "", "ESPN scraper endpoint (overrides -espn)")
	espnPath := fs.String("espn", "data/espn_values.json", "path to the ESPN scraper dump")
	yahooURL := fs.String("yahoo-url", "", "Yahoo scraper endpoint (overrides -yahoo)")
	yahooPath := fs.String("yahoo", "data/yahoo_values.json", "path to the Yahoo scraper dump")
	jsonOut := fs.String("out", "", "write the catalog JSON to this path (default stdout)")
	csvOut := fs.String("csv", "", "also write the catalog as CSV to this path")
	timeout := fs.Duration("timeout", 30*time.Second, "per-feed fetch timeout")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	_ = godotenv.Load()
	logger := logging.NewLogger(logging.Config{
		Level:   os.Getenv("LOG_LEVEL"),
		Format:  os.Getenv("LOG_FORMAT"),
		Service: "auction-draft-catalog",
	})

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	espn := feed.NewClient(feed.Config{Source: catalog.SourceESPN, URL: *espnURL, Path: *espnPath})
	yahoo := feed.NewClient(feed.Config{Source: catalog.SourceYahoo, URL: *yahooURL, Path: *yahooPath})

	primary, err := espn.FetchValuations(ctx)
	if err != nil {
		logger.Error("espn fetch failed", "error", err)
		return 1
	}

	// Yahoo is the enrichment source; a missing dump degrades to ESPN-only.
	secondary, err := yahoo.FetchValuations(ctx)
	if err != nil {
		logger.Warn("yahoo fetch failed, building from espn only", "error", err)
		secondary = nil
	}

	result := reconcile.Reconcile(primary, secondary, logger)
	built := catalog.Catalog{
		UpdatedAt: timeutil.FormatStamp(timeutil.Now()),
		Players:   result.Players,
	}
	logger.Info("catalog built",
		"players", len(built.Players),
		"matched", result.Matched,
		"yahoo_only_dropped", len(result.SecondaryDropped),
	)

	if err := writeCatalog(built, *jsonOut, out); err != nil {
		logger.Error("catalog write failed", "error", err)
		return 1
	}
	if *csvOut != "" {
		if err := writeCSV(built, *csvOut); err != nil {
			logger.Error("csv write failed", "error", err)
			return 1
		}
		logger.Info("csv written", "path", *csvOut)
	}
	return 0
}

func writeCatalog(built catalog.Catalog, path string, out io.Writer) error {
	raw, err := json.MarshalIndent(built, "", "  ")
	if err != nil {
		return err
	}
	if path == "" {
		_, err = fmt.Fprintln(out, string(raw))
		return err
	}
	return os.WriteFile(path, append(raw, '\n'), 0o644)
}

func writeCSV(built catalog.Catalog, path string) error {
	svc := appcatalog.NewService(nil, nil)
	svc.Replace(built)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := svc.ExportCSV(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
