package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"github.com/ternarybob/causelist/internal/interfaces"
)

// FetchCauseList renders the portal's cause-list page for the requested
// state and day, collects the published PDF links, and downloads each
// into the intake location. Downloaded files supersede earlier fetches
// of the same name; nothing is deleted.
func (s *Service) FetchCauseList(ctx context.Context, req interfaces.CauseListRequest) interfaces.FetchOutcome {
	runID := uuid.New().String()
	date := targetDate(req.Day)

	log := s.logger.WithCorrelationId(runID)
	log.Info().
		Str("state", req.State).
		Str("day", req.Day).
		Str("date", date.Format("2006-01-02")).
		Msg("Fetching cause list from registry")

	if err := os.MkdirAll(s.intakeDir, 0755); err != nil {
		return outcomeFrom(ctx, fmt.Errorf("failed to create intake directory: %w", err))
	}

	browserCtx, cancel := s.newBrowserContext(ctx)
	defer cancel()

	pageURL := s.causeListURL(req.State, date)

	var html string
	var cookies []*network.Cookie
	err := chromedp.Run(browserCtx,
		network.Enable(),
		chromedp.EmulateViewport(1920, 1080),
		chromedp.Navigate(pageURL),
		chromedp.Sleep(s.config.RenderWaitTime),
		chromedp.OuterHTML("html", &html),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			cookies, err = network.GetCookies().WithURLs([]string{pageURL}).Do(ctx)
			return err
		}),
	)
	if err != nil {
		log.Warn().Err(err).Str("url", pageURL).Msg("Portal navigation failed")
		return outcomeFrom(ctx, err)
	}

	links, err := s.extractPDFLinks(html, pageURL)
	if err != nil {
		return outcomeFrom(ctx, err)
	}
	if s.config.MaxDocuments > 0 && len(links) > s.config.MaxDocuments {
		links = links[:s.config.MaxDocuments]
	}

	log.Info().Int("documents", len(links)).Msg("Cause-list documents published")

	downloaded := 0
	for _, link := range links {
		if err := s.downloadDocument(ctx, link, cookies); err != nil {
			// A single failed download does not fail the fetch; the
			// remaining documents are still deposited.
			log.Warn().Err(err).Str("url", link).Msg("Document download failed")
			continue
		}
		downloaded++
	}

	if len(links) > 0 && downloaded == 0 {
		return outcomeFrom(ctx, fmt.Errorf("all %d document downloads failed", len(links)))
	}

	log.Info().
		Int("downloaded", downloaded).
		Str("intake", s.intakeDir).
		Msg("Cause-list fetch complete")

	return interfaces.FetchOutcome{Status: interfaces.FetchOK}
}

// causeListURL builds the portal search URL for a state and date.
func (s *Service) causeListURL(state string, date time.Time) string {
	params := url.Values{}
	params.Set("state", state)
	params.Set("causelist_date", date.Format("02-01-2006"))

	separator := "?"
	if strings.Contains(s.config.PortalURL, "?") {
		separator = "&"
	}
	return s.config.PortalURL + separator + params.Encode()
}

// extractPDFLinks pulls cause-list PDF hrefs out of the rendered page.
func (s *Service) extractPDFLinks(html, pageURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse portal page: %w", err)
	}

	base, err := url.Parse(pageURL)
	if err != nil {
		return nil, fmt.Errorf("invalid portal URL: %w", err)
	}

	seen := make(map[string]bool)
	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !strings.HasSuffix(strings.ToLower(strings.TrimSpace(href)), ".pdf") {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		absolute := base.ResolveReference(ref).String()
		if !seen[absolute] {
			seen[absolute] = true
			links = append(links, absolute)
		}
	})

	return links, nil
}

// downloadDocument fetches one PDF into the intake directory, carrying
// the browser session's cookies and respecting the download rate limit.
func (s *Service) downloadDocument(ctx context.Context, link string, cookies []*network.Cookie) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return fmt.Errorf("failed to build download request: %w", err)
	}
	req.Header.Set("User-Agent", s.config.UserAgent)
	for _, c := range cookies {
		req.AddCookie(&http.Cookie{Name: c.Name, Value: c.Value})
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("download returned status %d", resp.StatusCode)
	}

	name := filepath.Base(link)
	if name == "" || name == "." || name == "/" {
		name = uuid.New().String() + ".pdf"
	}
	target := filepath.Join(s.intakeDir, name)

	out, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create intake file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		os.Remove(target)
		return fmt.Errorf("failed to write intake file: %w", err)
	}

	s.logger.Debug().Str("file", target).Msg("Document deposited in intake")
	return nil
}
