package exchange

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCoinExGetCandles(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = map[string]string{
			"market": r.URL.Query().Get("market"),
			"type":   r.URL.Query().Get("type"),
			"limit":  r.URL.Query().Get("limit"),
		}
		// second record arrives out of order on purpose
		_, _ = w.Write([]byte(`{"code":0,"message":"Ok","data":[
			[1700003600,"100.1","101.5","102","99","12.5","1200","BTCUSDT"],
			[1700000000,"99.0","100.1","101","98","10","1000","BTCUSDT"]
		]}`))
	}))
	defer srv.Close()

	c := NewCoinEx(srv.URL, time.Second)
	candles, err := c.GetCandles(context.Background(), "BTCUSDT", "1hour", 0)
	require.NoError(t, err)

	assert.Equal(t, map[string]string{"market": "BTCUSDT", "type": "1hour", "limit": "50"}, gotQuery)
	require.Len(t, candles, 2)
	assert.Equal(t, int64(1700000000), candles[0].Timestamp)
	assert.Equal(t, 100.1, candles[0].Close)
	assert.Equal(t, 10.0, candles[0].Volume)
	assert.Equal(t, 101.5, candles[1].Close)
	assert.Equal(t, 12.5, candles[1].Volume)
}

func TestCoinExShortHistoryIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"code":0,"data":[[1,"1","2","3","4","5"]]}`))
	}))
	defer srv.Close()

	candles, err := NewCoinEx(srv.URL, time.Second).GetCandles(context.Background(), "NEWUSDT", "1hour", 50)
	require.NoError(t, err)
	assert.Len(t, candles, 1)
}

func TestCoinExFailures(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "http status", status: http.StatusBadGateway, body: "bad gateway"},
		{name: "malformed body", status: http.StatusOK, body: `{"code":0,"data":`},
		{name: "api error code", status: http.StatusOK, body: `{"code":2,"message":"invalid market","data":[]}`},
		{name: "short record", status: http.StatusOK, body: `{"code":0,"data":[[1,"1","2"]]}`},
		{name: "non numeric close", status: http.StatusOK, body: `{"code":0,"data":[[1,"1","x","3","4","5"]]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := NewCoinEx(srv.URL, time.Second).GetCandles(context.Background(), "BTCUSDT", "1hour", 50)
			var fe *FetchError
			require.True(t, errors.As(err, &fe), "got %v", err)
			assert.Equal(t, SourceCandles, fe.Source)
			assert.Equal(t, "BTCUSDT", fe.Symbol)
		})
	}
}

func TestCoinExHonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := NewCoinEx(srv.URL, 5*time.Second).GetCandles(ctx, "BTCUSDT", "1hour", 50)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestToFloat(t *testing.T) {
	f, err := toFloat(float64(1700000000))
	require.NoError(t, err)
	assert.Equal(t, 1700000000.0, f)

	f, err = toFloat("0.123")
	require.NoError(t, err)
	assert.Equal(t, 0.123, f)

	_, err = toFloat(true)
	assert.Error(t, err)
}
