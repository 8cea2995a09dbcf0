package format

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"asciiforge/internal/model"
)

// FormatResult produces a human-readable summary of a conversion. The art
// itself is not included.
func FormatResult(r *model.ConversionResult) string {
	var b strings.Builder

	b.WriteString("=== Conversion ===\n")
	b.WriteString(fmt.Sprintf("Timestamp:   %s\n", r.Timestamp.Format("2006-01-02 15:04:05")))
	if r.ID != "" {
		b.WriteString(fmt.Sprintf("ID:          %s\n", r.ID))
	}
	b.WriteString(fmt.Sprintf("Source:      %s\n", sourceLabel(r)))
	if r.SourceWidth > 0 && r.SourceHeight > 0 {
		b.WriteString(fmt.Sprintf("Image:       %dx%d px\n", r.SourceWidth, r.SourceHeight))
	}

	if r.Error != "" {
		b.WriteString(fmt.Sprintf("\nError: %s\n", r.Error))
		b.WriteString("==================")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Output:      %dx%d glyphs (%s total)\n",
		r.Width, r.Height, humanize.Comma(int64(r.Glyphs()))))
	if r.Resampler != "" {
		b.WriteString(fmt.Sprintf("Resampler:   %s\n", r.Resampler))
	}
	if r.Ramp != "" {
		b.WriteString(fmt.Sprintf("Ramp:        %q\n", r.Ramp))
	}
	b.WriteString(fmt.Sprintf("Elapsed:     %s\n", FormatElapsed(r.Elapsed)))
	if r.SavedTo != "" {
		b.WriteString(fmt.Sprintf("Saved to:    %s\n", r.SavedTo))
	}
	b.WriteString("==================")
	return b.String()
}

// FormatSummary returns a one-line description suitable for a status bar.
func FormatSummary(r *model.ConversionResult) string {
	if r.Error != "" {
		return fmt.Sprintf("%s: %s", filepath.Base(sourceLabel(r)), r.Error)
	}
	return fmt.Sprintf("%s -> %dx%d (%s, %s)",
		filepath.Base(sourceLabel(r)), r.Width, r.Height, r.Resampler, FormatElapsed(r.Elapsed))
}

// FormatElapsed rounds d to a readable precision.
func FormatElapsed(d time.Duration) string {
	switch {
	case d <= 0:
		return "0s"
	case d < time.Millisecond:
		return d.Round(time.Microsecond).String()
	case d < time.Second:
		return d.Round(100 * time.Microsecond).String()
	default:
		return d.Round(10 * time.Millisecond).String()
	}
}

// FormatSize renders a byte count like "1.2 kB".
func FormatSize(n int64) string {
	if n < 0 {
		n = 0
	}
	return humanize.Bytes(uint64(n))
}

// FormatAge renders how long ago t was, e.g. "3 minutes ago".
func FormatAge(t time.Time) string {
	return humanize.Time(t)
}

func sourceLabel(r *model.ConversionResult) string {
	if r.Source == "" {
		return "(unknown)"
	}
	return r.Source
}
