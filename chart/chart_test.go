package chart

import (
	"bytes"
	"image/png"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/alphafx/market"
)

func TestRenderPrice(t *testing.T) {
	end := time.Date(2026, 3, 9, 15, 0, 0, 0, time.UTC)
	samples := market.History(market.Pairs["EUR/USD"], 0, market.HistoryLen, end, market.NewRand(11))

	img, err := RenderPrice("EUR/USD", samples)
	require.NoError(t, err)
	require.NotEmpty(t, img)
	assert.True(t, bytes.HasPrefix(img, []byte("\x89PNG")))

	cfg, err := png.DecodeConfig(bytes.NewReader(img))
	require.NoError(t, err)
	assert.Equal(t, Width, cfg.Width)
	assert.Equal(t, Height, cfg.Height)
}

func TestRenderPriceTooFewSamples(t *testing.T) {
	_, err := RenderPrice("EUR/USD", []market.Sample{{Price: 1.08}})
	assert.Error(t, err)
	_, err = RenderPrice("EUR/USD", nil)
	assert.Error(t, err)
}
