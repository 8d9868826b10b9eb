package util

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	"github.com/fadilmartias/stress-manometer/internal/model"
	"github.com/xuri/excelize/v2"
)

// Survey sheet layout, 1-based like the sheet itself.
const (
	SchoolColumn        = 1
	FirstQuestionColumn = 9
	RequiredColumns     = 28

	SchoolHeader = "sname"
)

var (
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrEmptySheet        = errors.New("sheet has no header row")
	ErrTooFewColumns     = errors.New("CSV format incorrect")
	// ErrMissingSchoolColumn means no data row names a school.
	ErrMissingSchoolColumn = errors.New("school column is empty")
)

// LoadDataset reads an uploaded survey sheet and binds its columns. The
// format is chosen by the file extension.
func LoadDataset(filename string, r io.Reader) (*model.Dataset, error) {
	var (
		rows [][]string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		rows, err = ReadCSV(r)
	case ".xlsx":
		rows, err = ReadXLSX(r)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
	if err != nil {
		return nil, err
	}

	ds, err := BindSurvey(rows)
	if err != nil {
		return nil, err
	}
	ds.Filename = filepath.Base(filename)
	return ds, nil
}

func ReadCSV(r io.Reader) ([][]string, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

// ReadXLSX returns the rows of the first sheet of a workbook.
func ReadXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	return rows, nil
}

// BindSurvey checks the header once and maps every data row onto the school
// field and the 20 question answers. Blank rows are skipped.
func BindSurvey(rows [][]string) (*model.Dataset, error) {
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}
	header := rows[0]
	if len(header) < RequiredColumns {
		return nil, fmt.Errorf("%w: expected at least %d columns, got %d", ErrTooFewColumns, RequiredColumns, len(header))
	}
	if h := strings.ToLower(strings.TrimSpace(header[SchoolColumn-1])); h != SchoolHeader {
		log.Printf("Warning: column %d header is %q, using it as the school field", SchoolColumn, header[SchoolColumn-1])
	}

	ds := &model.Dataset{Header: header}
	seen := make(map[string]bool)
	for _, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}
		if len(row) < len(header) {
			padded := make([]string, len(header))
			copy(padded, row)
			row = padded
		}

		resp := model.SurveyResponse{
			School: strings.TrimSpace(row[SchoolColumn-1]),
			Raw:    row,
		}
		copy(resp.Answers[:], row[FirstQuestionColumn-1:RequiredColumns])
		ds.Responses = append(ds.Responses, resp)

		if resp.School != "" && !seen[resp.School] {
			seen[resp.School] = true
			ds.Schools = append(ds.Schools, resp.School)
		}
	}
	if len(ds.Responses) > 0 && len(ds.Schools) == 0 {
		return nil, fmt.Errorf("%w: column %d has no values", ErrMissingSchoolColumn, SchoolColumn)
	}
	return ds, nil
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// WriteScoredWorkbook writes the raw columns of the scored rows followed by
// their total score and category.
func WriteScoredWorkbook(w io.Writer, header []string, rows []model.ScoredResponse) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	head := make([]interface{}, 0, len(header)+2)
	for _, h := range header {
		head = append(head, h)
	}
	head = append(head, "total_score", "category")
	if err := f.SetSheetRow(sheet, "A1", &head); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, r := range rows {
		cells := make([]interface{}, 0, len(header)+2)
		for j := range header {
			if j < len(r.Raw) {
				cells = append(cells, r.Raw[j])
			} else {
				cells = append(cells, "")
			}
		}
		cells = append(cells, r.TotalScore, string(r.Category))

		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return fmt.Errorf("failed to encode workbook: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}
