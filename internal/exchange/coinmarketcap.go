package exchange

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"
)

const cmcKeyHeader = "X-CMC_PRO_API_KEY"

// CoinMarketCap looks up the current USD reference price of an asset.
type CoinMarketCap struct {
	http    *http.Client
	baseURL string
	apiKey  string
}

func NewCoinMarketCap(baseURL, apiKey string, timeout time.Duration) *CoinMarketCap {
	return &CoinMarketCap{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
		apiKey:  apiKey,
	}
}

type quotesResp struct {
	Status struct {
		ErrorCode    int    `json:"error_code"`
		ErrorMessage string `json:"error_message"`
	} `json:"status"`
	Data map[string]struct {
		Quote map[string]struct {
			Price *float64 `json:"price"`
		} `json:"quote"`
	} `json:"data"`
}

// Price returns the USD price for asset (e.g. "BTC").
func (c *CoinMarketCap) Price(ctx context.Context, asset string) (float64, error) {
	asset = strings.ToUpper(asset)
	px, err := c.price(ctx, asset)
	if err != nil {
		return 0, &FetchError{Source: SourcePrice, Symbol: asset, Err: err}
	}
	return px, nil
}

func (c *CoinMarketCap) price(ctx context.Context, asset string) (float64, error) {
	q := url.Values{}
	q.Set("symbol", asset)
	q.Set("convert", "USD")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, errors.Wrap(err, "build request")
	}
	req.Header.Set(cmcKeyHeader, c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, errors.Wrap(err, "read body")
	}
	if resp.StatusCode/100 != 2 {
		return 0, errors.Errorf("http %d: %s", resp.StatusCode, truncate(body, 256))
	}

	var wrap quotesResp
	if err := sonic.Unmarshal(body, &wrap); err != nil {
		return 0, errors.Wrap(err, "decode quotes body")
	}
	if wrap.Status.ErrorCode != 0 {
		return 0, errors.Errorf("cmc error: code=%d msg=%s", wrap.Status.ErrorCode, wrap.Status.ErrorMessage)
	}
	data, ok := wrap.Data[asset]
	if !ok {
		return 0, errors.Errorf("no quote for %s", asset)
	}
	usd, ok := data.Quote["USD"]
	if !ok || usd.Price == nil {
		return 0, errors.Errorf("no USD price for %s", asset)
	}
	return *usd.Price, nil
}
