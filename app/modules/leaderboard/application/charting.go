package leaderboardservice

import (
	"bytes"
	"fmt"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ChartPalette holds the hex colors used when rendering standings.
type ChartPalette struct {
	Background string
	Bar        string
	Podium     string
	Text       string
}

// DefaultPalette matches the portal's dark dashboard theme.
var DefaultPalette = ChartPalette{
	Background: "#101418",
	Bar:        "#3b82f6",
	Podium:     "#f5b301",
	Text:       "#e5e7eb",
}

// RenderChart produces a PNG bar chart of points per team. Podium entries are
// highlighted. Entries are drawn in the order given, so callers should rank first.
func RenderChart(entries []models.LeaderboardEntry, palette ChartPalette) ([]byte, error) {
	if len(entries) == 0 {
		return renderNoDataPlaceholder(palette)
	}

	bars := make([]chart.Value, 0, len(entries))
	for i, e := range entries {
		fill := palette.Bar
		if i < 3 {
			fill = palette.Podium
		}
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("#%d %s", e.Rank, e.Title),
			Value: float64(e.TotalPoints),
			Style: chart.Style{
				FillColor:   color(fill),
				StrokeColor: color(fill),
			},
		})
	}

	graph := chart.BarChart{
		Title:    "Leaderboard",
		Width:    max(400, 120*len(entries)),
		Height:   420,
		BarWidth: 60,
		TitleStyle: chart.Style{
			FontColor: color(palette.Text),
		},
		Background: chart.Style{
			FillColor: color(palette.Background),
			Padding:   chart.Box{Top: 40},
		},
		Canvas: chart.Style{
			FillColor: color(palette.Background),
		},
		XAxis: chart.Style{
			FontColor: color(palette.Text),
		},
		YAxis: chart.YAxis{
			Name: "Points",
			Style: chart.Style{
				FontColor: color(palette.Text),
			},
		},
		Bars: bars,
	}
	// Bars grow from zero; go-chart rejects a flat range.
	graph.YAxis.Range = &chart.ContinuousRange{Min: 0, Max: float64(max(1, topPoints(entries)))}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render leaderboard chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder(palette ChartPalette) ([]byte, error) {
	const (
		width  = 400
		height = 200
		msg    = "No standings yet"
	)

	graph := chart.Chart{
		Width:  width,
		Height: height,
		Background: chart.Style{
			FillColor: color(palette.Background),
		},
		Canvas: chart.Style{
			FillColor: color(palette.Background),
		},
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, _ chart.Style) {
				r.SetFontColor(color(palette.Text))
				r.SetFontSize(12.0)
				tb := r.MeasureText(msg)
				x := (cb.Width() - tb.Width()) / 2
				y := (cb.Height() + tb.Height()) / 2
				r.Text(msg, x, y)
			},
		},
	}
	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("render placeholder chart: %w", err)
	}
	return buffer.Bytes(), nil
}

func color(hex string) drawing.Color {
	return drawing.ColorFromHex(trimHash(hex))
}

func trimHash(hex string) string {
	if len(hex) > 0 && hex[0] == '#' {
		return hex[1:]
	}
	return hex
}

func topPoints(entries []models.LeaderboardEntry) int {
	top := 0
	for _, e := range entries {
		top = max(top, e.TotalPoints)
	}
	return top
}
