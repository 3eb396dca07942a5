package collector

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// SP500URL is the page listing current S&P 500 constituents.
const SP500URL = "https://en.wikipedia.org/wiki/List_of_S%26P_500_companies"

// UniverseFetcher scrapes index membership pages.
type UniverseFetcher struct {
	URL    string
	Client *http.Client
}

// NewUniverseFetcher creates a fetcher for the S&P 500 constituents page.
func NewUniverseFetcher(proxyURL string) *UniverseFetcher {
	return &UniverseFetcher{URL: SP500URL, Client: newHTTPClient(proxyURL)}
}

// FetchSP500 returns the sorted constituent tickers in Yahoo form ("BRK.B" becomes "BRK-B").
func (u *UniverseFetcher) FetchSP500(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.URL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	resp, err := u.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch constituents: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch constituents: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse constituents: %w", err)
	}
	seen := make(map[string]struct{})
	doc.Find("table#constituents tbody tr").Each(func(_ int, row *goquery.Selection) {
		cell := strings.TrimSpace(row.Find("td").First().Text())
		if cell == "" {
			return
		}
		seen[strings.ReplaceAll(cell, ".", "-")] = struct{}{}
	})
	if len(seen) == 0 {
		return nil, fmt.Errorf("parse constituents: no symbols found")
	}

	symbols := make([]string, 0, len(seen))
	for s := range seen {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols, nil
}
