package export

import (
	"fmt"
	"os"
	"strings"

	"asciiforge/internal/format"
	"asciiforge/internal/model"
)

// WriteTXT writes the art to path, one line per row, top to bottom. No header
// or trailing newline is added, so the file holds exactly grid.String().
func WriteTXT(path string, grid model.Grid) error {
	if err := os.WriteFile(path, []byte(grid.String()), 0644); err != nil {
		return fmt.Errorf("write txt file: %w", err)
	}
	return nil
}

// WriteReport writes the summaries of results, followed by their art, to a
// text file.
func WriteReport(path string, results []model.ConversionResult) error {
	var b strings.Builder
	for i, r := range results {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(format.FormatResult(&r))
		if !r.Art.Empty() {
			b.WriteString("\n")
			b.WriteString(r.Art.String())
		}
	}
	b.WriteString("\n")

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write report file: %w", err)
	}
	return nil
}
