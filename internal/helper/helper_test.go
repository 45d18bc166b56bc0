package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseAsset(t *testing.T) {
	cases := map[string]string{
		"BTCUSDT":  "BTC",
		"ethusdt":  "ETH",
		" SOLUSDT": "SOL",
		"BTCEUR":   "BTCEUR",
		"USDTBTC":  "",
	}
	for in, want := range cases {
		assert.Equal(t, want, BaseAsset(in), in)
	}
}

func TestNormInterval(t *testing.T) {
	assert.Equal(t, "1hour", NormInterval("1h"))
	assert.Equal(t, "1hour", NormInterval("1hour"))
	assert.Equal(t, "15min", NormInterval("15M"))
	assert.Equal(t, "1week", NormInterval("1week"))
}
