package parsers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
)

var (
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrEmptySheet      = errors.New("sheet has no data rows")
	ErrMissingColumn   = errors.New("missing required column")
)

// Columns is the header order of the normalized CSV sent to the bulk endpoint.
var Columns = []string{"code", "title", "description", "domain"}

var requiredColumns = []string{"code", "title"}

type columnIndex map[string]int

// indexHeader maps header names case-insensitively. Unknown columns are ignored.
func indexHeader(header []string) (columnIndex, error) {
	idx := columnIndex{}
	for i, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		key = strings.TrimPrefix(key, "\ufeff")
		if _, seen := idx[key]; !seen && key != "" {
			idx[key] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return idx, nil
}

func (c columnIndex) value(row []string, col string) string {
	i, ok := c[col]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// toInputs converts a header row plus data rows. Blank rows are skipped and a
// row with a code but no title is rejected with its 1-based line number.
func toInputs(rows [][]string) ([]models.ProblemStatementInput, error) {
	if len(rows) == 0 {
		return nil, ErrEmptySheet
	}
	idx, err := indexHeader(rows[0])
	if err != nil {
		return nil, err
	}

	var out []models.ProblemStatementInput
	for n, row := range rows[1:] {
		if isBlank(row) {
			continue
		}
		in := models.ProblemStatementInput{
			Code:        idx.value(row, "code"),
			Title:       idx.value(row, "title"),
			Description: idx.value(row, "description"),
			Domain:      idx.value(row, "domain"),
		}
		if in.Code == "" || in.Title == "" {
			return nil, fmt.Errorf("row %d: code and title are required", n+2)
		}
		out = append(out, in)
	}
	if len(out) == 0 {
		return nil, ErrEmptySheet
	}
	return out, nil
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
