package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/ternarybob/causelist/internal/common"
	"github.com/ternarybob/causelist/internal/interfaces"
	"github.com/ternarybob/causelist/internal/services/ingest"
	"github.com/ternarybob/causelist/internal/services/parser"
	"github.com/ternarybob/causelist/internal/storage"
)

var (
	forToday    = flag.Bool("today", false, "Label the ingested cause list as today's")
	forTomorrow = flag.Bool("tomorrow", false, "Label the ingested cause list as tomorrow's")
	cnr         = flag.String("cnr", "", "CNR number for a single-case lookup")
	configFile  = flag.String("config", "", "Configuration file path")
)

// resolveDayLabel picks the display label for the run. The label is
// display-only; --tomorrow wins when both flags are set.
func resolveDayLabel(today, tomorrow bool) string {
	if tomorrow {
		return "tomorrow"
	}
	return "today"
}

func main() {
	flag.Parse()

	var paths []string
	if *configFile != "" {
		paths = append(paths, *configFile)
	} else if _, err := os.Stat("causelist.toml"); err == nil {
		paths = append(paths, "causelist.toml")
	}

	config, err := common.LoadFromFiles(paths...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := common.InitLogger(config)

	if *cnr != "" {
		// Single-case fetch needs the browser-backed fetcher, which runs
		// inside the service. The offline run only processes the intake dir.
		fmt.Printf("CNR %s: single-case lookup requires the running service (GET /cnr/%s)\n", *cnr, *cnr)
		os.Exit(0)
	}

	dayLabel := resolveDayLabel(*forToday, *forTomorrow)

	store, err := storage.NewStore(logger, config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open store: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	extractor := parser.NewExtractor(logger)
	parserService := parser.NewService(extractor, logger)
	ingestService := ingest.NewService(parserService, config.Intake.Dir, logger)

	ctx := context.Background()

	snapshot, err := ingestService.Run(ctx)
	if err == interfaces.ErrNoDocuments {
		fmt.Printf("No documents found in %s, 0 processed\n", config.Intake.Dir)
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "ingestion failed: %v\n", err)
		os.Exit(1)
	}

	if err := store.WriteSnapshot(ctx, snapshot); err != nil {
		fmt.Fprintf(os.Stderr, "failed to persist snapshot: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Cause list for %s: %d documents, %d records\n",
		dayLabel, len(snapshot.Documents), snapshot.RecordCount())
}
