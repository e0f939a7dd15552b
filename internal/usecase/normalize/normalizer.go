// Package normalize inlines the content of quoted URLs into the query text.
package normalize

import (
	"context"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/kailas-cloud/assessrec/internal/logger"
	"github.com/kailas-cloud/assessrec/internal/metrics"
)

// FetchFailedText replaces a URL whose content could not be fetched.
const FetchFailedText = "Could not fetch content"

const contentPrefix = "URL Content: "

var quotedURL = regexp.MustCompile(`"https?://[^"]+"`)

// Fetcher downloads the raw body behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Normalizer rewrites raw input, replacing each quoted URL with its fetched body.
type Normalizer struct {
	fetcher Fetcher
	logger  *zap.Logger
}

// New creates a normalizer.
func New(fetcher Fetcher, l *zap.Logger) *Normalizer {
	if l == nil {
		l = zap.NewNop()
	}
	return &Normalizer{fetcher: fetcher, logger: l}
}

// Normalize returns the rewritten text and the de-quoted URLs in order of
// appearance, one entry per occurrence. Fetch failures degrade to
// FetchFailedText and never fail the call.
func (n *Normalizer) Normalize(ctx context.Context, raw string) (string, []string) {
	log := logger.FromContextOr(ctx, n.logger)

	var urls []string
	text := quotedURL.ReplaceAllStringFunc(raw, func(match string) string {
		url := strings.Trim(match, `"`)
		urls = append(urls, url)
		return contentPrefix + n.fetch(ctx, log, url)
	})
	return text, urls
}

func (n *Normalizer) fetch(ctx context.Context, log *zap.Logger, url string) string {
	body, err := n.fetcher.Fetch(ctx, url)
	if err != nil {
		metrics.URLFetchTotal.WithLabelValues("error").Inc()
		log.Warn("URL fetch failed", zap.String("url", url), zap.Error(err))
		return FetchFailedText
	}
	metrics.URLFetchTotal.WithLabelValues("ok").Inc()
	if body == "" {
		log.Warn("URL returned empty body", zap.String("url", url))
		return FetchFailedText
	}
	return body
}
