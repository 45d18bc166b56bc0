package exchange

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/bytedance/sonic"
	"github.com/pkg/errors"

	"signal_bot/internal/models"
)

// DefaultCandleLimit is the window length requested when the caller passes 0.
const DefaultCandleLimit = 50

// kline record positions: time, open, close, high, low, volume, ...
const (
	klineTime   = 0
	klineClose  = 2
	klineVolume = 5
)

// CoinEx reads kline history from the CoinEx v1 market API.
type CoinEx struct {
	http    *http.Client
	baseURL string
}

func NewCoinEx(baseURL string, timeout time.Duration) *CoinEx {
	return &CoinEx{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

type klineResp struct {
	Code    int     `json:"code"`
	Message string  `json:"message"`
	Data    [][]any `json:"data"`
}

// GetCandles returns up to limit candles in ascending time order. Fewer records
// than requested is not an error.
func (c *CoinEx) GetCandles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error) {
	if limit <= 0 {
		limit = DefaultCandleLimit
	}
	candles, err := c.getCandles(ctx, symbol, interval, limit)
	if err != nil {
		return nil, &FetchError{Source: SourceCandles, Symbol: symbol, Err: err}
	}
	return candles, nil
}

func (c *CoinEx) getCandles(ctx context.Context, symbol, interval string, limit int) ([]models.Candle, error) {
	q := url.Values{}
	q.Set("market", symbol)
	q.Set("type", interval)
	q.Set("limit", strconv.Itoa(limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read body")
	}
	if resp.StatusCode/100 != 2 {
		return nil, errors.Errorf("http %d: %s", resp.StatusCode, truncate(body, 256))
	}

	var wrap klineResp
	if err := sonic.Unmarshal(body, &wrap); err != nil {
		return nil, errors.Wrap(err, "decode kline body")
	}
	if wrap.Code != 0 {
		return nil, errors.Errorf("coinex error: code=%d msg=%s", wrap.Code, wrap.Message)
	}

	out := make([]models.Candle, 0, len(wrap.Data))
	for i, rec := range wrap.Data {
		if len(rec) <= klineVolume {
			return nil, errors.Errorf("record %d: want at least %d fields, got %d", i, klineVolume+1, len(rec))
		}
		ts, err := toFloat(rec[klineTime])
		if err != nil {
			return nil, errors.Wrapf(err, "record %d time", i)
		}
		closePx, err := toFloat(rec[klineClose])
		if err != nil {
			return nil, errors.Wrapf(err, "record %d close", i)
		}
		vol, err := toFloat(rec[klineVolume])
		if err != nil {
			return nil, errors.Wrapf(err, "record %d volume", i)
		}
		out = append(out, models.Candle{Timestamp: int64(ts), Close: closePx, Volume: vol})
	}

	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out, nil
}

// toFloat accepts both JSON numbers and numeric strings; CoinEx sends prices
// as strings and the timestamp as a number.
func toFloat(v any) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case string:
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return 0, errors.Wrapf(err, "parse %q", x)
		}
		return f, nil
	default:
		return 0, errors.Errorf("unexpected value type %T", v)
	}
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
