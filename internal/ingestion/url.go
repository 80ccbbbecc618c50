package ingestion

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/hirelens/hirelens/internal/fetch"
)

// Sentinel errors for URL ingestion failures.
var (
	ErrInvalidURL       = errors.New("invalid URL")
	ErrFetchFailed      = errors.New("fetch failed")
	ErrExtractionFailed = errors.New("content extraction failed")
)

// URLOptions controls FromURL behavior.
type URLOptions struct {
	// EnableBrowser allows a headless-browser re-render when the static
	// HTML yields too little text.
	EnableBrowser bool
	// Timeout bounds the HTTP fetch and, when used, the browser render.
	// Zero means fetch.DefaultTimeout.
	Timeout time.Duration
	// Headers are added to the HTTP request.
	Headers map[string]string
	// Logger receives progress detail. Nil disables logging.
	Logger *zap.Logger
}

// FromURL downloads a job posting, strips page chrome, and returns cleaned
// text with metadata. Selectors for the detected platform are tried before
// the generic job-posting set. When the static page yields fewer than
// fetch.MinContentLength characters and opts.EnableBrowser is set, the page
// is re-rendered with a headless browser; the static content is kept if the
// render fails or extracts less.
func FromURL(ctx context.Context, rawURL string, opts URLOptions) (string, *Metadata, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidURL, rawURL)
	}

	platform := fetch.DetectPlatform(rawURL)
	logger.Debug("detected job platform",
		zap.String("url", rawURL),
		zap.String("platform", string(platform)))

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = fetch.DefaultTimeout
	}

	result, err := fetch.URL(ctx, rawURL, &fetch.Options{Timeout: timeout, Headers: opts.Headers})
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	html := result.HTML
	selectors := fetch.PlatformContentSelectors(platform)
	noise := fetch.PlatformNoiseSelectors(platform)

	text, err := fetch.ExtractMainText(html, selectors, noise...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrExtractionFailed, err)
	}

	if opts.EnableBrowser && fetch.ShouldUseBrowser(text) {
		logger.Info("static HTML too sparse, re-rendering with headless browser",
			zap.String("url", rawURL),
			zap.Int("static_chars", len(text)))

		rendered, browserErr := fetch.WithBrowser(ctx, rawURL, timeout)
		if browserErr != nil {
			logger.Warn("browser render failed, keeping static content", zap.Error(browserErr))
		} else if renderedText, extractErr := fetch.ExtractMainText(rendered, selectors, noise...); extractErr == nil && len(renderedText) > len(text) {
			html = rendered
			text = renderedText
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", nil, fmt.Errorf("%w: no textual content at %s", ErrExtractionFailed, rawURL)
	}

	meta := NewMetadata(rawURL, FormatHTML, []byte(html), cleaned)
	meta.Platform = string(platform)
	return cleaned, meta, nil
}
