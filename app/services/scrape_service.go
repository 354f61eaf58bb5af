// Package services provides external service integrations and technical concerns like completions and tokens
package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"

	"github.com/brandscope-io/brandscope/config"
	"github.com/brandscope-io/brandscope/utils"
	"golang.org/x/net/html"
)

// websiteURLPattern accepts http(s) URLs with a registered hostname,
// localhost or a dotted IP, an optional port and an optional path.
var websiteURLPattern = regexp.MustCompile(`(?i)^https?://(?:(?:[A-Z0-9](?:[A-Z0-9-]{0,61}[A-Z0-9])?\.)+[A-Z]{2,6}\.?|localhost|\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3})(?::\d+)?(?:/?|[/?]\S+)?$`)

// IsValidWebsiteURL reports whether the given URL looks like a fetchable
// website address.
func IsValidWebsiteURL(rawURL string) bool {
	return websiteURLPattern.MatchString(strings.TrimSpace(rawURL))
}

// ScrapeService fetches a brand website and reduces it to the readable text
// used to draft a brand description.
type ScrapeService interface {
	FetchWebsiteText(ctx context.Context, websiteURL string) (string, error)
}

// ScrapeServiceImpl implements ScrapeService
type ScrapeServiceImpl struct {
	config *config.ScrapeConfig
	client *http.Client
}

// NewScrapeService creates a new scrape service instance
func NewScrapeService(cfg *config.ScrapeConfig) ScrapeService {
	return &ScrapeServiceImpl{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// NewScrapeServiceWithClient is intended for tests; it avoids network access
// by using a custom http.Client.
func NewScrapeServiceWithClient(cfg *config.ScrapeConfig, client *http.Client) ScrapeService {
	svc := &ScrapeServiceImpl{
		config: cfg,
		client: client,
	}
	if svc.client == nil {
		svc.client = http.DefaultClient
	}
	return svc
}

// FetchWebsiteText downloads the page and extracts visible text, skipping
// script, style, nav and footer subtrees. The result is whitespace-collapsed
// and capped so prompts stay within a predictable size.
func (s *ScrapeServiceImpl) FetchWebsiteText(ctx context.Context, websiteURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", websiteURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	// Set headers to look like a browser
	req.Header.Set("User-Agent", utils.ScrapeUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, utils.ScrapeMaxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	text, err := ExtractReadableText(string(body))
	if err != nil {
		return "", err
	}
	if text == "" {
		return "", errors.New("page contains no readable text")
	}
	return text, nil
}

// skippedElements are subtrees that carry navigation or code, not brand copy.
var skippedElements = map[string]struct{}{
	"script": {},
	"style":  {},
	"nav":    {},
	"footer": {},
}

// ExtractReadableText parses HTML and returns its visible text content,
// whitespace-collapsed and capped at ScrapeMaxTextChars runes.
func ExtractReadableText(htmlContent string) (string, error) {
	doc, err := html.Parse(strings.NewReader(htmlContent))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if _, skip := skippedElements[n.Data]; skip {
				return
			}
		}
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
			sb.WriteString(" ")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	text := utils.CollapseWhitespace(sb.String())
	runes := []rune(text)
	if len(runes) > utils.ScrapeMaxTextChars {
		text = string(runes[:utils.ScrapeMaxTextChars])
	}
	return text, nil
}
