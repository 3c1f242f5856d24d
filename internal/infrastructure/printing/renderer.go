package printing

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	defaultTimeout = 30 * time.Second
	defaultScale   = 1.0

	// A4 in millimeters
	paperWidthMM  = 210
	paperHeightMM = 297
	marginMM      = 12
)

// RenderError represents an error during PDF rendering
type RenderError struct {
	Code    string
	Message string
	Cause   error
}

func (e *RenderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

// Render error codes
const (
	ErrCodeInvalidHTML   = "INVALID_HTML"
	ErrCodeRenderTimeout = "RENDER_TIMEOUT"
	ErrCodeRenderFailed  = "RENDER_FAILED"
)

// NewRenderError creates a new render error
func NewRenderError(code, message string, cause error) *RenderError {
	return &RenderError{Code: code, Message: message, Cause: cause}
}

// Config contains configuration for the chromedp renderer
type Config struct {
	// Timeout for a single rendering operation
	Timeout time.Duration
	// RemoteURL is the URL of a remote Chrome instance. If empty, chromedp
	// launches a local browser.
	RemoteURL string
	// NoSandbox runs Chrome without sandbox (required for Docker/root)
	NoSandbox bool
	// Scale for rendering (default: 1.0)
	Scale float64
	// Logger for debug output
	Logger *zap.Logger
}

// Renderer renders document HTML to A4 PDF using Chrome DevTools Protocol.
// It satisfies the packing slip renderer used by the order service.
type Renderer struct {
	config      *Config
	logger      *zap.Logger
	allocCtx    context.Context
	allocCancel context.CancelFunc
}

// NewRenderer creates a new chromedp-based PDF renderer
func NewRenderer(config *Config) *Renderer {
	if config == nil {
		config = &Config{}
	}
	if config.Timeout == 0 {
		config.Timeout = defaultTimeout
	}
	if config.Scale == 0 {
		config.Scale = defaultScale
	}

	logger := config.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := &Renderer{
		config: config,
		logger: logger,
	}
	r.initAllocator()
	return r
}

func (r *Renderer) initAllocator() {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-first-run", true),
		chromedp.Flag("disable-default-apps", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.Flag("disable-dev-shm-usage", true), // Important for Docker
		chromedp.Flag("disable-background-networking", true),
		chromedp.Flag("disable-sync", true),
		chromedp.Flag("font-render-hinting", "none"),
	)

	if r.config.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}

	if r.config.RemoteURL != "" {
		r.allocCtx, r.allocCancel = chromedp.NewRemoteAllocator(context.Background(), r.config.RemoteURL)
	} else {
		r.allocCtx, r.allocCancel = chromedp.NewExecAllocator(context.Background(), opts...)
	}
}

// Render converts document HTML to a PDF
func (r *Renderer) Render(ctx context.Context, html string, title string) ([]byte, error) {
	if strings.TrimSpace(html) == "" {
		return nil, NewRenderError(ErrCodeInvalidHTML, "HTML content is empty", nil)
	}

	startTime := time.Now()

	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	browserCtx, browserCancel := chromedp.NewContext(r.allocCtx,
		chromedp.WithLogf(func(format string, args ...interface{}) {
			r.logger.Debug(fmt.Sprintf(format, args...))
		}),
	)
	defer browserCancel()

	document := wrapDocument(html, title)

	var pdfData []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, document).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			data, _, err := page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(mmToInches(paperWidthMM)).
				WithPaperHeight(mmToInches(paperHeightMM)).
				WithMarginTop(mmToInches(marginMM)).
				WithMarginRight(mmToInches(marginMM)).
				WithMarginBottom(mmToInches(marginMM)).
				WithMarginLeft(mmToInches(marginMM)).
				WithScale(r.config.Scale).
				Do(ctx)
			if err != nil {
				return err
			}
			pdfData = data
			return nil
		}),
	)

	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, NewRenderError(ErrCodeRenderTimeout,
				fmt.Sprintf("PDF rendering timed out after %v", r.config.Timeout), err)
		}
		r.logger.Error("chromedp rendering failed", zap.Error(err))
		return nil, NewRenderError(ErrCodeRenderFailed, "chromedp execution failed", err)
	}

	if len(pdfData) == 0 {
		return nil, NewRenderError(ErrCodeRenderFailed, "generated PDF is empty", nil)
	}

	r.logger.Info("PDF rendered",
		zap.Int("bytes", len(pdfData)),
		zap.Duration("duration", time.Since(startTime)))

	return pdfData, nil
}

// wrapDocument wraps bare HTML in a complete document. HTML that already
// carries its own doctype or html element is passed through unchanged.
func wrapDocument(html, title string) string {
	lower := strings.ToLower(html)
	if strings.Contains(lower, "<!doctype") || strings.Contains(lower, "<html") {
		return html
	}

	var buf bytes.Buffer
	buf.WriteString("<!DOCTYPE html><html><head>")
	buf.WriteString("<meta charset=\"UTF-8\">")
	if title != "" {
		buf.WriteString("<title>")
		buf.WriteString(title)
		buf.WriteString("</title>")
	}
	buf.WriteString("</head><body>")
	buf.WriteString(html)
	buf.WriteString("</body></html>")
	return buf.String()
}

// Close releases the browser allocator
func (r *Renderer) Close() error {
	if r.allocCancel != nil {
		r.allocCancel()
	}
	return nil
}

func mmToInches(mm float64) float64 {
	return mm / 25.4
}
