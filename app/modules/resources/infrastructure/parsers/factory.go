package parsers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Black-And-White-Club/hackathon-portal/app/models"
)

// Parser turns an uploaded sheet into problem statement rows.
type Parser interface {
	Parse(data []byte) ([]models.ProblemStatementInput, error)
}

// ParserFactory picks a parser for an upload.
type ParserFactory interface {
	GetParser(filename string) (Parser, error)
}

// Factory creates the appropriate parser based on file extension.
type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

// GetParser returns the parser for filename's extension.
func (f *Factory) GetParser(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".csv":
		return NewCSVParser(), nil
	case ".xlsx":
		return NewXLSXParser(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFile, ext)
	}
}
