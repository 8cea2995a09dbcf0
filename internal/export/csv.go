package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"asciiforge/internal/model"
)

var csvHeaders = []string{
	"date",
	"time",
	"conversion_id",
	"mode",
	"source",
	"source_width",
	"source_height",
	"width",
	"height",
	"resampler",
	"ramp",
	"elapsed_ms",
	"saved_to",
	"error",
}

// WriteCSV appends conversion records to a semicolon-separated history log,
// writing the header row first when the file is new.
func WriteCSV(path string, results []model.ConversionResult) error {
	exists := fileExists(path)

	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	w.Comma = ';'

	if !exists {
		if err := w.Write(csvHeaders); err != nil {
			return fmt.Errorf("write csv headers: %w", err)
		}
	}

	for _, r := range results {
		row := []string{
			r.Timestamp.Format("02.01.2006"),
			r.Timestamp.Format("15:04:05"),
			r.ID,
			r.Mode,
			r.Source,
			sizeField(r.SourceWidth),
			sizeField(r.SourceHeight),
			sizeField(r.Width),
			sizeField(r.Height),
			r.Resampler,
			r.Ramp,
			fmt.Sprintf("%.2f", float64(r.Elapsed.Microseconds())/1000),
			r.SavedTo,
			r.Error,
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush csv file: %w", err)
	}
	return nil
}

// sizeField leaves unknown dimensions empty rather than writing 0.
func sizeField(n int) string {
	if n <= 0 {
		return ""
	}
	return strconv.Itoa(n)
}
