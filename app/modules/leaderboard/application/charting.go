package leaderboardservice

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"

	leaderboarddb "github.com/mundo-prode/prode-backend/app/modules/leaderboard/infrastructure/repositories"
	"github.com/mundo-prode/prode-backend/internal/sharedtypes"
)

const rankHistoryChartLimit = 50

// RankingChart produces a PNG line chart of a user's rank over time.
func (s *LeaderboardService) RankingChart(ctx context.Context, userID sharedtypes.UserID) ([]byte, error) {
	history, err := s.repo.GetRankHistoryForUser(ctx, nil, userID, rankHistoryChartLimit)
	if err != nil {
		return nil, fmt.Errorf("RankingChart: %w", err)
	}
	return generateRankingHistoryChart(history)
}

func generateRankingHistoryChart(history []leaderboarddb.RankHistory) ([]byte, error) {
	// go-chart needs at least two points for a time series.
	if len(history) < 2 {
		return renderNoDataPlaceholder()
	}

	xValues := make([]time.Time, len(history))
	yValues := make([]float64, len(history))
	for i, entry := range history {
		xValues[i] = entry.CreatedAt
		yValues[i] = float64(entry.Ranking)
	}

	graph := chart.Chart{
		Width:  800,
		Height: 400,
		XAxis: chart.XAxis{
			Name:           "Date",
			ValueFormatter: chart.TimeValueFormatterWithFormat("2006-01-02"),
		},
		YAxis: chart.YAxis{
			Name: "Rank",
			Range: &chart.ContinuousRange{
				Descending: true, // rank 1 at the top
			},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Ranking",
				XValues: xValues,
				YValues: yValues,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
					DotWidth:    4,
					DotColor:    chart.ColorAlternateGray,
				},
			},
		},
	}

	buffer := bytes.NewBuffer([]byte{})
	if err := graph.Render(chart.PNG, buffer); err != nil {
		return nil, fmt.Errorf("generateRankingHistoryChart: %w", err)
	}
	return buffer.Bytes(), nil
}

func renderNoDataPlaceholder() ([]byte, error) {
	const msg = "No ranking history yet"

	graph := chart.Chart{
		Width:  400,
		Height: 200,
		Elements: []chart.Renderable{
			func(r chart.Renderer, cb chart.Box, chartDefaults chart.Style) {
				r.SetFontColor(chart.ColorBlack)
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
		return nil, err
	}
	return buffer.Bytes(), nil
}
