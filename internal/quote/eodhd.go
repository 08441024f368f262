package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/soliveira/tradetalk/internal/domain"
)

// DefaultEODHDBaseURL is the production EODHD endpoint.
const DefaultEODHDBaseURL = "https://eodhd.com"

// EODHDClient fetches real-time quotes from EODHD.com.
type EODHDClient struct {
	baseURL string
	token   string
	cli     *http.Client
}

// NewEODHDClient creates a client for the given base URL and API token.
// The timeout bounds every fetch; a slow upstream surfaces as
// domain.ErrQuoteUnavailable rather than hanging an execution.
func NewEODHDClient(baseURL, token string, timeout time.Duration) *EODHDClient {
	return &EODHDClient{
		baseURL: baseURL,
		token:   token,
		cli:     &http.Client{Timeout: timeout},
	}
}

// eodhdQuote is the real-time quote payload. Prices are decoded as decimals
// and converted to cents at this boundary; the rest of the system only ever
// sees integer cents.
type eodhdQuote struct {
	Code          string          `json:"code"`
	Timestamp     int64           `json:"timestamp"`
	Close         decimal.Decimal `json:"close"`
	ChangePercent float64         `json:"change_p"`
	Volume        int64           `json:"volume"`
}

// GetQuote fetches the current quote for a symbol. Any transport error,
// non-200 status, or missing/negative price is reported as
// domain.ErrQuoteUnavailable.
func (c *EODHDClient) GetQuote(ctx context.Context, symbol string) (*domain.Quote, error) {
	url := fmt.Sprintf("%s/api/real-time/%s.US?api_token=%s&fmt=json", c.baseURL, symbol, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQuoteUnavailable, err)
	}

	resp, err := c.cli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQuoteUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: eodhd returned status %d for %s", domain.ErrQuoteUnavailable, resp.StatusCode, symbol)
	}

	var raw eodhdQuote
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrQuoteUnavailable, err)
	}

	priceCents := raw.Close.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
	if priceCents <= 0 {
		return nil, fmt.Errorf("%w: no price for %s", domain.ErrQuoteUnavailable, symbol)
	}

	asOf := time.Unix(raw.Timestamp, 0).UTC()
	if raw.Timestamp == 0 {
		asOf = time.Now().UTC()
	}

	return &domain.Quote{
		Symbol:        symbol,
		Price:         priceCents,
		PercentChange: raw.ChangePercent,
		Volume:        raw.Volume,
		AsOf:          asOf,
	}, nil
}
