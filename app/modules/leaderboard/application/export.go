package leaderboardservice

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"
)

const standingsSheet = "Standings"

// ExportStandings renders the full leaderboard as an XLSX workbook for the
// admin download endpoint.
func (s *LeaderboardService) ExportStandings(ctx context.Context) ([]byte, error) {
	standings, err := s.repo.GetStandings(ctx, nil, 0)
	if err != nil {
		return nil, fmt.Errorf("ExportStandings: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(standingsSheet)
	if err != nil {
		return nil, fmt.Errorf("ExportStandings: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("ExportStandings: %w", err)
	}

	headers := []any{"Rank", "Player", "Points", "Predictions", "Correct", "Exact", "Accuracy", "Change"}
	if err := f.SetSheetRow(standingsSheet, "A1", &headers); err != nil {
		return nil, fmt.Errorf("ExportStandings: %w", err)
	}

	for i, row := range standings {
		cell := fmt.Sprintf("A%d", i+2)
		values := []any{
			row.Ranking,
			row.DisplayName,
			row.TotalPoints,
			row.TotalPredictions,
			row.CorrectPredictions,
			row.ExactScores,
			fmt.Sprintf("%.1f%%", row.AccuracyRate*100),
			row.RankingChange,
		}
		if err := f.SetSheetRow(standingsSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("ExportStandings: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("ExportStandings: %w", err)
	}
	return buf.Bytes(), nil
}
