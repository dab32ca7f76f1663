package fetcher

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/ternarybob/causelist/internal/interfaces"
	"github.com/ternarybob/causelist/internal/models"
)

// FetchCaseDetails renders the case-status page for a CNR and extracts
// its labeled fields into a lookup payload. An empty payload on a
// successful fetch means the registry published no structured data for
// the case; callers surface that distinctly from a fetch failure.
func (s *Service) FetchCaseDetails(ctx context.Context, cnr string) (models.LookupResult, interfaces.FetchOutcome) {
	s.logger.Info().Str("cnr", cnr).Msg("Fetching case details from registry")

	browserCtx, cancel := s.newBrowserContext(ctx)
	defer cancel()

	pageURL := s.caseStatusURL(cnr)

	var html string
	err := chromedp.Run(browserCtx,
		network.Enable(),
		chromedp.EmulateViewport(1920, 1080),
		chromedp.Navigate(pageURL),
		chromedp.Sleep(s.config.RenderWaitTime),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		s.logger.Warn().Err(err).Str("url", pageURL).Msg("Case-status navigation failed")
		return nil, outcomeFrom(ctx, err)
	}

	result, err := extractCaseFields(html)
	if err != nil {
		return nil, outcomeFrom(ctx, err)
	}
	result["cnr"] = cnr

	s.logger.Info().
		Str("cnr", cnr).
		Int("fields", len(result)).
		Msg("Case details fetched")

	return result, interfaces.FetchOutcome{Status: interfaces.FetchOK}
}

// caseStatusURL builds the case-status page URL for a CNR.
func (s *Service) caseStatusURL(cnr string) string {
	params := url.Values{}
	params.Set("cino", cnr)

	separator := "?"
	if strings.Contains(s.config.CaseStatusURL, "?") {
		separator = "&"
	}
	return s.config.CaseStatusURL + separator + params.Encode()
}

// extractCaseFields walks the case-status tables and collects
// label/value rows. The registry renders case details as two-column
// table rows; anything it does not publish simply is not present.
func extractCaseFields(html string) (models.LookupResult, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse case-status page: %w", err)
	}

	result := models.LookupResult{}
	doc.Find("table tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td, th")
		if cells.Length() != 2 {
			return
		}
		label := normalizeFieldName(cells.Eq(0).Text())
		value := strings.TrimSpace(cells.Eq(1).Text())
		if label == "" || value == "" {
			return
		}
		result[label] = value
	})

	return result, nil
}

// normalizeFieldName converts a display label like "Case Type :" into a
// stable key like "case_type".
func normalizeFieldName(label string) string {
	label = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(label), ":"))
	label = strings.ToLower(label)

	var b strings.Builder
	lastUnderscore := false
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "_")
}
