package chart

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/rustyeddy/alphafx/market"
)

const (
	Width  = 900
	Height = 400
)

// RenderPrice draws the price history with its moving-average overlay and
// returns PNG bytes.
func RenderPrice(pair string, samples []market.Sample) ([]byte, error) {
	if len(samples) < 2 {
		return nil, fmt.Errorf("need at least 2 samples, got %d", len(samples))
	}

	xs := make([]time.Time, len(samples))
	prices := make([]float64, len(samples))
	smas := make([]float64, len(samples))
	for i, s := range samples {
		xs[i] = s.Time
		prices[i] = s.Price
		smas[i] = s.SMA
	}

	priceSeries := chart.TimeSeries{
		Name: "Price",
		Style: chart.Style{
			StrokeColor: drawing.ColorFromHex("16a34a"),
			StrokeWidth: 2,
		},
		XValues: xs,
		YValues: prices,
	}
	smaSeries := chart.TimeSeries{
		Name: fmt.Sprintf("SMA(%d)", market.HistorySMAPeriod),
		Style: chart.Style{
			StrokeColor:     drawing.ColorFromHex("f59e0b"),
			StrokeWidth:     1.5,
			StrokeDashArray: []float64{5.0, 3.0},
		},
		XValues: xs,
		YValues: smas,
	}

	graph := chart.Chart{
		Title:  pair,
		Width:  Width,
		Height: Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 40, Left: 10, Right: 20, Bottom: 10},
		},
		XAxis: chart.XAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return chart.TimeFromFloat64(f).Format("15:04")
				}
				return ""
			},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return market.FormatRate(f)
				}
				return ""
			},
		},
		Series: []chart.Series{priceSeries, smaSeries},
	}
	graph.Elements = []chart.Renderable{chart.LegendLeft(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %s chart: %w", pair, err)
	}
	return buf.Bytes(), nil
}
