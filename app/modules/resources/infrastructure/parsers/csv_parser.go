package parsers

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
)

// CSVParser reads comma separated problem statements.
type CSVParser struct{}

func NewCSVParser() *CSVParser {
	return &CSVParser{}
}

func (p *CSVParser) Parse(data []byte) ([]models.ProblemStatementInput, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return toInputs(records)
}

// ToCSV renders rows in the normalized column order.
func ToCSV(rows []models.ProblemStatementInput) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(Columns); err != nil {
		return nil, err
	}
	for _, r := range rows {
		if err := w.Write([]string{r.Code, r.Title, r.Description, r.Domain}); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to write CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// Normalize parses an upload of any supported type and re-encodes it as CSV.
func Normalize(factory ParserFactory, filename string, data []byte) ([]models.ProblemStatementInput, []byte, error) {
	parser, err := factory.GetParser(filename)
	if err != nil {
		return nil, nil, err
	}
	rows, err := parser.Parse(data)
	if err != nil {
		return nil, nil, err
	}
	out, err := ToCSV(rows)
	if err != nil {
		return nil, nil, err
	}
	return rows, out, nil
}
