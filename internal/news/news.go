// Package news fetches recent headlines for a symbol from Google News.
package news

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

// ErrOnlineDisabled is returned when the provider is configured offline.
var ErrOnlineDisabled = errors.New("online news fetching is disabled")

// Headline is one scraped news entry.
type Headline struct {
	Title  string `json:"title"`
	Source string `json:"source"`
	URL    string `json:"url"`
	When   string `json:"when"`
}

// Provider scrapes Google News search results. When disabled it fails fast
// with ErrOnlineDisabled so callers can fall back to an offline notice.
type Provider struct {
	client     *resty.Client
	enabled    bool
	maxResults int
}

func NewProvider(enabled bool) *Provider {
	client := resty.New()
	client.SetTimeout(30 * time.Second)
	client.SetHeader("User-Agent", "Mozilla/5.0 (compatible; StockCouncil/1.0)")

	return &Provider{
		client:     client,
		enabled:    enabled,
		maxResults: 10,
	}
}

func (p *Provider) Enabled() bool {
	return p != nil && p.enabled
}

// Fetch scrapes headlines mentioning the symbol.
func (p *Provider) Fetch(ctx context.Context, symbol string) ([]Headline, error) {
	if !p.Enabled() {
		return nil, ErrOnlineDisabled
	}

	query := fmt.Sprintf("%s stock", strings.ToUpper(symbol))
	searchURL := fmt.Sprintf("https://news.google.com/search?q=%s&hl=en&gl=US&ceid=US:en",
		url.QueryEscape(query))

	resp, err := p.client.R().SetContext(ctx).Get(searchURL)
	if err != nil {
		return nil, fmt.Errorf("fetch news for %s: %w", symbol, err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("fetch news for %s: HTTP %d", symbol, resp.StatusCode())
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(resp.String()))
	if err != nil {
		return nil, fmt.Errorf("parse news page: %w", err)
	}

	return p.parseArticles(doc), nil
}

// Headlines renders the scraped entries as prompt-ready text.
func (p *Provider) Headlines(ctx context.Context, symbol string) (string, error) {
	items, err := p.Fetch(ctx, symbol)
	if err != nil {
		return "", err
	}
	if len(items) == 0 {
		return "No recent headlines found.", nil
	}

	var b strings.Builder
	for _, h := range items {
		b.WriteString("- ")
		b.WriteString(h.Title)
		if h.Source != "" {
			b.WriteString(" (" + h.Source)
			if h.When != "" {
				b.WriteString(", " + h.When)
			}
			b.WriteString(")")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (p *Provider) parseArticles(doc *goquery.Document) []Headline {
	var headlines []Headline

	doc.Find("article").EachWithBreak(func(i int, s *goquery.Selection) bool {
		title := strings.TrimSpace(s.Find("h3").Text())
		if title == "" {
			title = strings.TrimSpace(s.Find("h4").Text())
		}
		if title == "" {
			return true
		}

		href, _ := s.Find("a").First().Attr("href")
		source := strings.TrimSpace(s.Find("div[data-n-tid]").Text())
		when := strings.TrimSpace(s.Find("time").Text())

		headlines = append(headlines, Headline{
			Title:  title,
			Source: source,
			URL:    cleanArticleURL(href),
			When:   when,
		})
		return len(headlines) < p.maxResults
	})

	return headlines
}

func cleanArticleURL(href string) string {
	if strings.Contains(href, "url=") {
		parts := strings.SplitN(href, "url=", 2)
		if decoded, err := url.QueryUnescape(parts[1]); err == nil {
			return decoded
		}
	}
	if strings.HasPrefix(href, "./") {
		return "https://news.google.com" + href[1:]
	}
	if strings.HasPrefix(href, "/") {
		return "https://news.google.com" + href
	}
	return href
}
