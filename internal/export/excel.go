// Package export renders ranked scoring results to an Excel workbook.
package export

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/talentsift/talentsift/internal/models"
)

// ExportShortlist writes a two-sheet workbook: a summary of the scoring
// run and the ranked candidate table with recommendation color-coding.
// records must already be ranked.
func ExportShortlist(records []models.ScoreRecord, jd models.JobDescription, outputPath string) error {
	f := excelize.NewFile()
	defer f.Close()

	if !strings.HasSuffix(strings.ToLower(outputPath), ".xlsx") {
		outputPath += ".xlsx"
	}
	outputPath = filepath.Clean(outputPath)

	summarySheet := "Summary"
	rankedSheet := "Ranked Candidates"
	f.SetSheetName("Sheet1", summarySheet)
	f.NewSheet(rankedSheet)

	if err := writeSummarySheet(f, summarySheet, records, jd); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeRankedSheet(f, rankedSheet, records); err != nil {
		return fmt.Errorf("failed to create ranked candidates sheet: %w", err)
	}

	if err := f.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save Excel file: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, sheetName string, records []models.ScoreRecord, jd models.JobDescription) error {
	f.SetColWidth(sheetName, "A", "A", 28)
	f.SetColWidth(sheetName, "B", "B", 50)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 14, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return err
	}
	labelStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}

	setLabeled := func(row int, label string, value interface{}) {
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), label)
		f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("A%d", row), labelStyle)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), value)
	}

	row := 1
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Candidate Scoring Report")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	f.MergeCell(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
	row += 2

	setLabeled(row, "Role:", jd.Role)
	row++
	setLabeled(row, "Required Skills:", strings.Join(jd.Skills, ", "))
	row++
	setLabeled(row, "Generated:", time.Now().Format("2006-01-02 15:04:05"))
	row++
	setLabeled(row, "Candidates Scored:", len(records))
	row += 2

	if len(records) == 0 {
		return nil
	}

	counts := map[models.Recommendation]int{}
	var total float64
	for _, r := range records {
		counts[r.Recommendation]++
		total += r.FinalScore
	}

	f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), "Recommendation Breakdown:")
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	f.MergeCell(sheetName, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row))
	row++

	setLabeled(row, "Strong Match (75+):", counts[models.StrongMatch])
	row++
	setLabeled(row, "Good Match (60-74):", counts[models.GoodMatch])
	row++
	setLabeled(row, "Potential (50-59):", counts[models.Potential])
	row++
	setLabeled(row, "Weak Match (<50):", counts[models.WeakMatch])
	row++
	setLabeled(row, "Average Score:", fmt.Sprintf("%.2f", total/float64(len(records))))

	return nil
}

var recommendationFills = map[models.Recommendation]string{
	models.StrongMatch: "C6EFCE",
	models.GoodMatch:   "FFEB9C",
	models.Potential:   "FFC7CE",
	models.WeakMatch:   "FF9999",
}

func writeRankedSheet(f *excelize.File, sheetName string, records []models.ScoreRecord) error {
	widths := []float64{8, 30, 12, 12, 12, 12, 14, 16, 12, 30, 30}
	for i, w := range widths {
		col := string(rune('A' + i))
		f.SetColWidth(sheetName, col, col, w)
	}

	border := []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    border,
	})
	if err != nil {
		return err
	}

	// One row style per recommendation bucket.
	rowStyles := make(map[models.Recommendation]int, len(recommendationFills))
	for rec, fill := range recommendationFills {
		style, err := f.NewStyle(&excelize.Style{
			Fill:   excelize.Fill{Type: "pattern", Color: []string{fill}, Pattern: 1},
			Border: border,
		})
		if err != nil {
			return err
		}
		rowStyles[rec] = style
	}

	headers := []string{
		"Rank", "Candidate", "Final", "Model", "Keyword", "Percentile",
		"Recommendation", "Status", "Fallback", "Matched Skills", "Missing Skills",
	}
	for col, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+col)))
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
	}

	for i, r := range records {
		row := i + 2
		values := []interface{}{
			r.Rank,
			r.CandidateIdentity,
			fmt.Sprintf("%.2f", r.FinalScore),
			fmt.Sprintf("%.2f", r.LLMScore),
			fmt.Sprintf("%.2f", r.KeywordScore),
			fmt.Sprintf("%.2f", r.Percentile),
			string(r.Recommendation),
			string(r.Status),
			r.FallbackUsed,
			strings.Join(r.MatchedSkills, ", "),
			strings.Join(r.MissingSkills, ", "),
		}
		for col, v := range values {
			f.SetCellValue(sheetName, fmt.Sprintf("%s%d", string(rune('A'+col)), row), v)
		}
		f.SetCellStyle(sheetName,
			fmt.Sprintf("A%d", row), fmt.Sprintf("K%d", row),
			rowStyles[r.Recommendation])
	}

	if len(records) > 0 {
		f.AutoFilter(sheetName, fmt.Sprintf("A1:K%d", len(records)+1), []excelize.AutoFilterOptions{})
	}

	f.SetPanes(sheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})

	return nil
}
