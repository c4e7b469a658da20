package parsers

import (
	"bytes"
	"testing"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestFactory_GetParser(t *testing.T) {
	factory := NewFactory()
	tests := []struct {
		name     string
		filename string
		want     string
		wantErr  bool
	}{
		{name: "csv file", filename: "statements.csv", want: "csv"},
		{name: "upper case extension", filename: "STATEMENTS.CSV", want: "csv"},
		{name: "xlsx file", filename: "statements.xlsx", want: "xlsx"},
		{name: "unsupported file", filename: "statements.txt", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser, err := factory.GetParser(tt.filename)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedFile)
				return
			}
			require.NoError(t, err)
			switch tt.want {
			case "csv":
				_, ok := parser.(*CSVParser)
				require.True(t, ok)
			case "xlsx":
				_, ok := parser.(*XLSXParser)
				require.True(t, ok)
			}
		})
	}
}

func TestCSVParser_Parse(t *testing.T) {
	parser := NewCSVParser()
	tests := []struct {
		name    string
		data    string
		want    []models.ProblemStatementInput
		wantErr error
	}{
		{
			name: "canonical header",
			data: "code,title,description,domain\nPS001,Clean water,Track wells,Sustainability\n",
			want: []models.ProblemStatementInput{{Code: "PS001", Title: "Clean water", Description: "Track wells", Domain: "Sustainability"}},
		},
		{
			name: "mixed case reordered header with blank rows",
			data: "Title, CODE ,Domain\nLedger,PS002,FinTech\n,,\nTutor,PS003,EdTech\n",
			want: []models.ProblemStatementInput{
				{Code: "PS002", Title: "Ledger", Domain: "FinTech"},
				{Code: "PS003", Title: "Tutor", Domain: "EdTech"},
			},
		},
		{
			name: "quoted field with comma",
			data: "code,title,description\nPS004,Triage,\"Sort, then route\"\n",
			want: []models.ProblemStatementInput{{Code: "PS004", Title: "Triage", Description: "Sort, then route"}},
		},
		{name: "missing title column", data: "code,description\nPS1,x\n", wantErr: ErrMissingColumn},
		{name: "header only", data: "code,title\n", wantErr: ErrEmptySheet},
		{name: "empty file", data: "", wantErr: ErrEmptySheet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parser.Parse([]byte(tt.data))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCSVParser_RowMissingTitle(t *testing.T) {
	_, err := NewCSVParser().Parse([]byte("code,title\nPS1,\n"))
	assert.ErrorContains(t, err, "row 2")
}

func TestXLSXParser_Parse(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]any{"Code", "Title", "Description", "Domain"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]any{"PS010", "Smart grid", "Balance load", "Energy"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]any{"PS011", "Crop doctor", "", "AgriTech"}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	got, err := NewXLSXParser().Parse(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []models.ProblemStatementInput{
		{Code: "PS010", Title: "Smart grid", Description: "Balance load", Domain: "Energy"},
		{Code: "PS011", Title: "Crop doctor", Domain: "AgriTech"},
	}, got)
}

func TestXLSXParser_NotAWorkbook(t *testing.T) {
	_, err := NewXLSXParser().Parse([]byte("code,title\n"))
	assert.Error(t, err)
}

func TestNormalize(t *testing.T) {
	rows, out, err := Normalize(NewFactory(), "upload.csv", []byte("TITLE,code\nLedger,PS002\n"))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "code,title,description,domain\nPS002,Ledger,,\n", string(out))

	reparsed, err := NewCSVParser().Parse(out)
	require.NoError(t, err)
	assert.Equal(t, rows, reparsed)

	_, _, err = Normalize(NewFactory(), "upload.pdf", nil)
	assert.True(t, bytes.Contains([]byte(err.Error()), []byte(".pdf")))
}
