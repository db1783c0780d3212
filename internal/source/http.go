package source

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"

	"github.com/donaldgifford/cart-price-tracker/internal/config"
	domain "github.com/donaldgifford/cart-price-tracker/pkg/types"
)

// HTTPSource scrapes a cart page and extracts price observations using
// configured CSS selectors.
type HTTPSource struct {
	url       string
	selectors config.SelectorConfig
	currency  string
	client    *http.Client
	limiter   *rate.Limiter
	cookies   []*http.Cookie
	log       *slog.Logger
	now       func() time.Time
}

// HTTPSourceOption configures an HTTPSource.
type HTTPSourceOption func(*HTTPSource)

// WithSourceHTTPClient sets a custom HTTP client.
func WithSourceHTTPClient(c *http.Client) HTTPSourceOption {
	return func(s *HTTPSource) {
		s.client = c
	}
}

// WithSourceLogger sets the logger.
func WithSourceLogger(l *slog.Logger) HTTPSourceOption {
	return func(s *HTTPSource) {
		s.log = l
	}
}

// WithClock sets the timestamp source, used in tests.
func WithClock(now func() time.Time) HTTPSourceOption {
	return func(s *HTTPSource) {
		s.now = now
	}
}

// NewHTTPSource creates an HTTPSource from configuration. The cookies file,
// when configured, is read once at construction time.
func NewHTTPSource(cfg config.HTTPSourceConfig, currency string, opts ...HTTPSourceOption) (*HTTPSource, error) {
	s := &HTTPSource{
		url:       cfg.URL,
		selectors: cfg.Selectors,
		currency:  currency,
		client:    &http.Client{Timeout: cfg.Timeout},
		limiter:   rate.NewLimiter(rate.Limit(cfg.RateLimit.PerSecond), cfg.RateLimit.Burst),
		log:       slog.Default(),
		now:       time.Now,
	}

	if cfg.CookiesFile != "" {
		cookies, err := loadCookies(cfg.CookiesFile)
		if err != nil {
			return nil, err
		}
		s.cookies = cookies
	}

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Fetch retrieves the cart page and extracts one observation per item node.
// Items missing a product id or a parseable price are returned with zeroed
// fields and filtered out downstream.
func (s *HTTPSource) Fetch(ctx context.Context) ([]domain.RawObservation, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating cart page request: %w", err)
	}
	req.Header.Set("Accept", "text/html")
	for _, c := range s.cookies {
		req.AddCookie(c)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching cart page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cart page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing cart page: %w", err)
	}

	return s.extract(doc), nil
}

func (s *HTTPSource) extract(doc *goquery.Document) []domain.RawObservation {
	timestamp := s.now().UnixMilli()

	var observations []domain.RawObservation
	doc.Find(s.selectors.Item).Each(func(_ int, item *goquery.Selection) {
		productID, _ := item.Attr(s.selectors.ProductIDAttr)
		productID = strings.TrimSpace(productID)
		title := strings.TrimSpace(item.Find(s.selectors.Title).First().Text())
		priceText := strings.TrimSpace(item.Find(s.selectors.Price).First().Text())

		price, err := parsePrice(priceText)
		if err != nil {
			s.log.Warn("skipping cart item with unparseable price",
				"product_id", productID,
				"price_text", priceText,
			)
			price = 0 // filtered out by the history engine
		}

		observations = append(observations, domain.RawObservation{
			ProductID: productID,
			Title:     title,
			Price:     price,
			Currency:  s.currency,
			Timestamp: timestamp,
			SourceURL: s.url,
		})
	})

	return observations
}

// parsePrice extracts a decimal price from display text such as "34,99 €",
// "$1,234.56" or "EUR 29.99". The last separator in the string is treated
// as the decimal mark; the other kind is treated as a grouping separator.
func parsePrice(text string) (float64, error) {
	var b strings.Builder
	for _, r := range text {
		if (r >= '0' && r <= '9') || r == '.' || r == ',' {
			b.WriteRune(r)
		}
	}
	raw := b.String()
	if raw == "" {
		return 0, fmt.Errorf("no digits in price text %q", text)
	}

	lastDot := strings.LastIndex(raw, ".")
	lastComma := strings.LastIndex(raw, ",")

	switch {
	case lastComma > lastDot:
		// Comma decimal: dots are grouping separators.
		raw = strings.ReplaceAll(raw, ".", "")
		i := strings.LastIndex(raw, ",")
		raw = strings.ReplaceAll(raw[:i], ",", "") + "." + raw[i+1:]
	default:
		raw = strings.ReplaceAll(raw, ",", "")
	}

	price, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing price text %q: %w", text, err)
	}
	return price, nil
}
