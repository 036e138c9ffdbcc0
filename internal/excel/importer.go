package excel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/example/flashbot/internal/database"
	"github.com/example/flashbot/pkg/models"
)

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath  string // Path to the Excel or CSV file
	SetName   string // Card set to import into; created if missing
	CreatorID int64  // User who owns the imported set
	SheetName string // Name of the sheet to import
	StartRow  int    // The row to start importing from (1-based index)
}

// DefaultImportConfig returns the default import configuration
func DefaultImportConfig() ImportConfig {
	return ImportConfig{
		SheetName: "Sheet1",
		StartRow:  2, // By default, start from the second row (skip header)
	}
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	TotalProcessed int
	Created        int
	Updated        int
	Skipped        int
	Errors         []string
}

// cardRow is one parsed spreadsheet row. Column order is fixed:
// front, back, pronunciation, example.
type cardRow struct {
	Front         string
	Back          string
	Pronunciation string
	Example       string
}

// parseRow turns a raw spreadsheet row into a card row. Rows without both
// a front and a back are rejected.
func parseRow(cells []string) (cardRow, error) {
	get := func(i int) string {
		if i < len(cells) {
			return strings.TrimSpace(cells[i])
		}
		return ""
	}
	row := cardRow{
		Front:         get(0),
		Back:          get(1),
		Pronunciation: get(2),
		Example:       get(3),
	}
	if row.Front == "" || row.Back == "" {
		return cardRow{}, errors.New("row must have both front and back")
	}
	return row, nil
}

// ImportCards imports flashcards from an Excel or CSV file
func ImportCards(config ImportConfig) (*ImportResult, error) {
	if config.SetName == "" {
		return nil, fmt.Errorf("set name is required")
	}

	ext := strings.ToLower(filepath.Ext(config.FilePath))
	var rows [][]string
	var err error
	if ext == ".csv" {
		rows, err = readCSV(config.FilePath)
	} else {
		rows, err = readExcel(config.FilePath, config.SheetName)
	}
	if err != nil {
		return nil, err
	}

	return importRows(config, rows)
}

// readExcel reads all rows of the configured sheet
func readExcel(path, sheet string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %v", sheet, err)
	}
	return rows, nil
}

// readCSV reads all records of a CSV file
func readCSV(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %v", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV file: %v", err)
		}
		rows = append(rows, record)
	}
	return rows, nil
}

// importRows writes parsed rows into the card set, creating or updating
// cards by (set, front).
func importRows(config ImportConfig, rows [][]string) (*ImportResult, error) {
	setRepo := database.NewSetRepository()
	cardRepo := database.NewCardRepository()

	set, err := setRepo.GetByName(config.SetName)
	if errors.Is(err, models.ErrSetNotFound) {
		set = &models.CardSet{Name: config.SetName, CreatorID: config.CreatorID}
		if err := setRepo.Create(set); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	result := &ImportResult{}
	for i, cells := range rows {
		rowNum := i + 1
		if rowNum < config.StartRow {
			continue
		}
		result.TotalProcessed++

		parsed, err := parseRow(cells)
		if err != nil {
			result.Skipped++
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		existing, err := cardRepo.GetBySetAndFront(set.ID, parsed.Front)
		if errors.Is(err, models.ErrCardNotFound) {
			card := &models.Flashcard{
				SetID:         set.ID,
				Front:         parsed.Front,
				Back:          parsed.Back,
				Pronunciation: parsed.Pronunciation,
				Example:       parsed.Example,
			}
			if err := cardRepo.Create(card); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
				continue
			}
			result.Created++
			continue
		}
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}

		existing.Back = parsed.Back
		existing.Pronunciation = parsed.Pronunciation
		existing.Example = parsed.Example
		if err := cardRepo.Update(existing); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", rowNum, err))
			continue
		}
		result.Updated++
	}
	return result, nil
}
