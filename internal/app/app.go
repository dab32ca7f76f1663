package app

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/causelist/internal/common"
	"github.com/ternarybob/causelist/internal/handlers"
	"github.com/ternarybob/causelist/internal/interfaces"
	"github.com/ternarybob/causelist/internal/services/fetcher"
	"github.com/ternarybob/causelist/internal/services/ingest"
	"github.com/ternarybob/causelist/internal/services/parser"
	"github.com/ternarybob/causelist/internal/services/pipeline"
	"github.com/ternarybob/causelist/internal/services/scheduler"
	"github.com/ternarybob/causelist/internal/storage"
)

// App holds all application components and dependencies
type App struct {
	Config *common.Config
	Logger arbor.ILogger

	Store interfaces.Store

	// Acquisition pipeline
	ParserService    *parser.Service
	IngestService    *ingest.Service
	FetcherService   *fetcher.Service
	PipelineService  *pipeline.Service
	SchedulerService *scheduler.Service

	// HTTP handlers
	APIHandler       *handlers.APIHandler
	CauseListHandler *handlers.CauseListHandler
	CaseHandler      *handlers.CaseHandler
	DataHandler      *handlers.DataHandler
}

// New creates the application and wires all services together
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	store, err := storage.NewStore(logger, cfg)
	if err != nil {
		return nil, err
	}
	a.Store = store

	extractor := parser.NewExtractor(logger)
	a.ParserService = parser.NewService(extractor, logger)
	a.IngestService = ingest.NewService(a.ParserService, cfg.Intake.Dir, logger)
	a.FetcherService = fetcher.NewService(&cfg.Fetcher, cfg.Intake.Dir, logger)
	a.PipelineService = pipeline.NewService(a.FetcherService, a.IngestService, a.Store, cfg.Fetcher.Timeout, logger)
	a.SchedulerService = scheduler.NewService(a.PipelineService, &cfg.Scheduler, logger)

	a.APIHandler = handlers.NewAPIHandler(logger)
	a.CauseListHandler = handlers.NewCauseListHandler(a.PipelineService, a.Store, logger)
	a.CaseHandler = handlers.NewCaseHandler(a.PipelineService, logger)
	a.DataHandler = handlers.NewDataHandler(a.Store, logger)

	if err := a.SchedulerService.Start(); err != nil {
		store.Close()
		return nil, err
	}

	logger.Info().
		Str("storage", cfg.Storage.Type).
		Str("intake_dir", cfg.Intake.Dir).
		Msg("Application initialized")

	return a, nil
}

// Close closes all application resources
func (a *App) Close() error {
	if a.SchedulerService != nil {
		a.SchedulerService.Stop()
	}

	if a.Store != nil {
		if err := a.Store.Close(); err != nil {
			a.Logger.Warn().Err(err).Msg("Failed to close store")
			return err
		}
	}

	return nil
}
