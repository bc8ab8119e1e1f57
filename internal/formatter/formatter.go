// package formatter provides functions to export scan results to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"

	"github.com/desertthunder/scout/internal/models"
	"github.com/desertthunder/scout/internal/shared"
)

// ExportToCSV converts flagged results to CSV format with columns: Team, Opponent, Price, Competition
func ExportToCSV(flagged []models.FlaggedResult) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Team", "Opponent", "Price", "Competition"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, f := range flagged {
		record := []string{
			f.Team,
			f.Opponent,
			shared.FormatPrice(f.Price),
			f.Competition,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts scan results to Markdown format
func ExportToMarkdown(title string, flagged []models.FlaggedResult, highScoring []models.HighScoringTeam) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Flagged fixtures**: %d\n\n", len(flagged)))

	if len(flagged) > 0 {
		buf.WriteString("| Team | Opponent | Price | Competition |\n")
		buf.WriteString("|------|----------|-------|-------------|\n")
		for _, f := range flagged {
			buf.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", f.Team, f.Opponent, shared.FormatPrice(f.Price), f.Competition))
		}
		buf.WriteString("\n")
	}

	if len(highScoring) > 0 {
		buf.WriteString("## High-scoring form\n\n")
		for i, h := range highScoring {
			buf.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, h.Team, h.Competition))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts scan results to plain text format
func ExportToText(flagged []models.FlaggedResult, highScoring []models.HighScoringTeam) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Flagged fixtures: %d\n\n", len(flagged)))
	for i, f := range flagged {
		buf.WriteString(fmt.Sprintf("%d. %s vs %s | Odds: %s | %s\n", i+1, f.Team, f.Opponent, shared.FormatPrice(f.Price), f.Competition))
	}

	if len(highScoring) > 0 {
		buf.WriteString(fmt.Sprintf("\nHigh-scoring form (%d teams):\n", len(highScoring)))
		for i, h := range highScoring {
			buf.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, h.Team, h.Competition))
		}
	}

	return buf.Bytes(), nil
}

// CSVExportResult contains the path of the file created by WriteCSVExport
type CSVExportResult struct {
	ResultsFile string
}

// WriteCSVExport exports flagged results to a CSV file.
func WriteCSVExport(flagged []models.FlaggedResult, filepath string) (*CSVExportResult, error) {
	if filepath == "" {
		filepath = "scan_results.csv"
	}

	csvData, err := ExportToCSV(flagged)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	if err := os.WriteFile(filepath, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	return &CSVExportResult{ResultsFile: filepath}, nil
}

// WriteMarkdownExport exports scan results to a Markdown file.
func WriteMarkdownExport(title string, flagged []models.FlaggedResult, highScoring []models.HighScoringTeam, filepath string) (string, error) {
	if filepath == "" {
		filepath = "scan_results.md"
	}

	mdData, err := ExportToMarkdown(title, flagged, highScoring)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	if err := os.WriteFile(filepath, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}

	return filepath, nil
}

// WriteTextExport exports scan results to a plain text file.
func WriteTextExport(flagged []models.FlaggedResult, highScoring []models.HighScoringTeam, filepath string) (string, error) {
	if filepath == "" {
		filepath = "scan_results.txt"
	}

	textData, err := ExportToText(flagged, highScoring)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(filepath, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}

	return filepath, nil
}
