package news

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestOfflineProviderFailsFast(t *testing.T) {
	p := NewProvider(false)
	if _, err := p.Fetch(context.Background(), "IBM"); !errors.Is(err, ErrOnlineDisabled) {
		t.Fatalf("expected ErrOnlineDisabled, got %v", err)
	}
	if _, err := p.Headlines(context.Background(), "IBM"); !errors.Is(err, ErrOnlineDisabled) {
		t.Fatalf("expected ErrOnlineDisabled, got %v", err)
	}
}

func TestNilProviderDisabled(t *testing.T) {
	var p *Provider
	if p.Enabled() {
		t.Fatal("nil provider must report disabled")
	}
}

func TestParseArticles(t *testing.T) {
	html := `<html><body>
<article>
  <a href="./articles/abc123"></a>
  <h3>IBM beats earnings expectations</h3>
  <div data-n-tid="1">Reuters</div>
  <time>2 hours ago</time>
</article>
<article>
  <a href="/articles/def456"></a>
  <h4>Analysts split on IBM cloud growth</h4>
</article>
<article><span>no title here</span></article>
</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse test html: %v", err)
	}

	p := NewProvider(true)
	headlines := p.parseArticles(doc)
	if len(headlines) != 2 {
		t.Fatalf("expected 2 headlines, got %d", len(headlines))
	}
	if headlines[0].Title != "IBM beats earnings expectations" {
		t.Fatalf("unexpected title %q", headlines[0].Title)
	}
	if headlines[0].Source != "Reuters" || headlines[0].When != "2 hours ago" {
		t.Fatalf("unexpected source/time %q/%q", headlines[0].Source, headlines[0].When)
	}
	if headlines[0].URL != "https://news.google.com/articles/abc123" {
		t.Fatalf("relative URL not resolved: %q", headlines[0].URL)
	}
	if headlines[1].URL != "https://news.google.com/articles/def456" {
		t.Fatalf("rooted URL not resolved: %q", headlines[1].URL)
	}
}

func TestCleanArticleURL(t *testing.T) {
	if got := cleanArticleURL("https://example.com/redirect?url=https%3A%2F%2Fnews.example.com%2Fstory"); got != "https://news.example.com/story" {
		t.Fatalf("wrapped URL not unwrapped: %q", got)
	}
	if got := cleanArticleURL("https://example.com/story"); got != "https://example.com/story" {
		t.Fatalf("absolute URL should pass through: %q", got)
	}
}
