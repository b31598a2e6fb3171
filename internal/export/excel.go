package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/recrutai/recrutai-cli/internal/recrutai"

	"github.com/xuri/excelize/v2"
)

const rankingsSheet = "Rankings"

// WriteRankings generates an Excel workbook from a server-produced ranking,
// keeping the server's order. Rows are color-coded with the same score bands
// the platform uses: 80+ strong, 50+ medium, below weak.
func WriteRankings(path, jobTitle string, r *recrutai.Rankings) error {
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	path = filepath.Clean(path)

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", rankingsSheet)

	if err := writeHeader(f, jobTitle); err != nil {
		return err
	}
	if err := writeRows(f, r); err != nil {
		return err
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("saving workbook: %w", err)
	}

	return nil
}

func writeHeader(f *excelize.File, jobTitle string) error {
	widths := map[string]float64{"A": 8, "B": 28, "C": 30, "D": 10, "E": 40, "F": 40}
	for col, width := range widths {
		if err := f.SetColWidth(rankingsSheet, col, col, width); err != nil {
			return err
		}
	}

	title := "CV ranking"
	if jobTitle = strings.TrimSpace(jobTitle); jobTitle != "" {
		title = fmt.Sprintf("CV ranking - %s", jobTitle)
	}
	f.SetCellValue(rankingsSheet, "A1", title)
	f.SetCellValue(rankingsSheet, "F1", time.Now().Format("2006-01-02 15:04"))

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
	})
	if err != nil {
		return err
	}

	headers := []string{"Rank", "Candidate", "Email", "Score", "Matched keywords", "Missing keywords"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 2)
		if err != nil {
			return err
		}
		f.SetCellValue(rankingsSheet, cell, header)
		f.SetCellStyle(rankingsSheet, cell, cell, headerStyle)
	}

	return nil
}

func writeRows(f *excelize.File, r *recrutai.Rankings) error {
	strong, err := scoreStyle(f, "C6EFCE")
	if err != nil {
		return err
	}
	medium, err := scoreStyle(f, "FFEB9C")
	if err != nil {
		return err
	}
	weak, err := scoreStyle(f, "FFC7CE")
	if err != nil {
		return err
	}

	for i, item := range r.Items {
		row := i + 3
		f.SetCellValue(rankingsSheet, fmt.Sprintf("A%d", row), i+1)
		f.SetCellValue(rankingsSheet, fmt.Sprintf("B%d", row), item.CandidateName)
		f.SetCellValue(rankingsSheet, fmt.Sprintf("C%d", row), item.CandidateEmail)
		f.SetCellValue(rankingsSheet, fmt.Sprintf("D%d", row), item.Score)
		f.SetCellValue(rankingsSheet, fmt.Sprintf("E%d", row), strings.Join(item.MatchedKeywords, ", "))
		f.SetCellValue(rankingsSheet, fmt.Sprintf("F%d", row), strings.Join(item.MissingKeywords, ", "))

		style := weak
		switch {
		case item.Score >= 80:
			style = strong
		case item.Score >= 50:
			style = medium
		}
		scoreCell := fmt.Sprintf("D%d", row)
		f.SetCellStyle(rankingsSheet, scoreCell, scoreCell, style)
	}

	if r.Len() > 0 {
		return f.AutoFilter(rankingsSheet, fmt.Sprintf("A2:F%d", r.Len()+2), nil)
	}

	return nil
}

func scoreStyle(f *excelize.File, color string) (int, error) {
	return f.NewStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{color}, Pattern: 1},
	})
}
