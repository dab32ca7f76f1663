// -----------------------------------------------------------------------
// Registry Fetcher - browser automation against the eCourts portal.
// Cause-list mode deposits PDFs into the intake location; case mode
// extracts the rendered case-status page into a lookup payload.
// -----------------------------------------------------------------------

package fetcher

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/causelist/internal/common"
	"github.com/ternarybob/causelist/internal/interfaces"
	"golang.org/x/time/rate"
)

// Service implements the Fetcher interface with chromedp
type Service struct {
	config     *common.FetcherConfig
	intakeDir  string
	logger     arbor.ILogger
	limiter    *rate.Limiter
	httpClient *http.Client
}

// Compile-time interface assertion
var _ interfaces.Fetcher = (*Service)(nil)

// NewService creates a new registry fetcher
func NewService(config *common.FetcherConfig, intakeDir string, logger arbor.ILogger) *Service {
	delay := config.DownloadDelay
	if delay <= 0 {
		delay = time.Second
	}

	return &Service{
		config:    config,
		intakeDir: intakeDir,
		logger:    logger,
		limiter:   rate.NewLimiter(rate.Every(delay), 1),
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

// newBrowserContext creates an allocator and browser context for one
// fetch. The returned cancel releases both.
func (s *Service) newBrowserContext(ctx context.Context) (context.Context, context.CancelFunc) {
	allocatorOpts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.Flag("headless", s.config.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.UserAgent(s.config.UserAgent),
	)

	allocatorCtx, allocatorCancel := chromedp.NewExecAllocator(ctx, allocatorOpts...)
	browserCtx, browserCancel := chromedp.NewContext(allocatorCtx)

	cancel := func() {
		browserCancel()
		allocatorCancel()
	}
	return browserCtx, cancel
}

// outcomeFrom maps an error from a fetch attempt to a typed outcome.
// A context deadline is reported as a timeout; everything else as a
// failure carrying the captured error text.
func outcomeFrom(ctx context.Context, err error) interfaces.FetchOutcome {
	if err == nil {
		return interfaces.FetchOutcome{Status: interfaces.FetchOK}
	}
	if errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
		return interfaces.FetchOutcome{
			Status:     interfaces.FetchTimeout,
			Diagnostic: err.Error(),
		}
	}
	return interfaces.FetchOutcome{
		Status:     interfaces.FetchFailed,
		Diagnostic: err.Error(),
	}
}

// targetDate resolves a relative-day selector to a calendar date.
func targetDate(day string) time.Time {
	now := time.Now()
	if day == "tomorrow" {
		return now.AddDate(0, 0, 1)
	}
	return now
}
