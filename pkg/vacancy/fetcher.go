package vacancy

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"jobtion/pkg/fault"
	"jobtion/pkg/synth"
)

const (
	// Many job boards reject unidentified clients, so the fetcher presents a
	// realistic browser user-agent.
	browserUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

	// maxPageText bounds downstream prompt size.
	maxPageText = 15_000

	fetchTimeout = 30 * time.Second
)

// PageFetcher retrieves a posting URL and strips it down to visible body text.
type PageFetcher interface {
	FetchText(ctx context.Context, rawURL string) (string, error)
}

type pageFetcher struct {
	client *http.Client
}

// NewPageFetcher constructs a fetcher with a timeout-bounded HTTP client.
func NewPageFetcher() PageFetcher {
	return &pageFetcher{client: &http.Client{Timeout: fetchTimeout}}
}

var collapseSpace = regexp.MustCompile(`\s+`)

func (f *pageFetcher) FetchText(ctx context.Context, rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fault.New(fault.InvalidInput, "a valid absolute http(s) URL is required")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fault.Wrap(fault.InvalidInput, "invalid URL", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		var ne net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &ne) && ne.Timeout()) {
			return "", fault.Wrap(fault.Timeout, "fetching the job posting timed out", err)
		}
		return "", fault.Wrap(fault.UpstreamFetchFailure, "could not reach the job posting URL", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fault.Newf(fault.UpstreamFetchFailure, "failed to fetch URL: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fault.Wrap(fault.UpstreamFetchFailure, "could not parse the fetched page", err)
	}
	doc.Find("script, style, nav, footer, header, aside, iframe, noscript").Remove()

	text := doc.Find("body").Text()
	text = strings.TrimSpace(collapseSpace.ReplaceAllString(text, " "))
	return synth.Truncate(text, maxPageText), nil
}
