package ui

import (
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"asciiforge/internal/model"
)

// OutputView is the main window console: converted art followed by status
// lines, in a monospace font.
type OutputView struct {
	text      *artEntry
	scrollBox *container.Scroll
}

// NewOutputView creates a new scrollable output view.
func NewOutputView() *OutputView {
	ov := &OutputView{}

	ov.text = newArtEntry()
	ov.scrollBox = container.NewScroll(ov.text)
	ov.scrollBox.SetMinSize(NewOutputViewMinSize())

	return ov
}

// Container returns the output view's container.
func (ov *OutputView) Container() *container.Scroll {
	return ov.scrollBox
}

// AppendLine adds a line to the output view, safe to call from any goroutine.
func (ov *OutputView) AppendLine(line string) {
	fyne.Do(func() {
		current := ov.text.Text
		if current != "" {
			current += "\n"
		}
		ov.text.SetText(current + line)
		ov.scrollBox.ScrollToBottom()
	})
}

// ShowArt replaces the content with grid followed by the given lines.
func (ov *OutputView) ShowArt(grid model.Grid, lines ...string) {
	var b strings.Builder
	b.WriteString(grid.String())
	for _, l := range lines {
		b.WriteString("\n")
		b.WriteString(l)
	}
	text := b.String()
	fyne.Do(func() {
		ov.text.SetText(text)
		ov.scrollBox.ScrollToTop()
	})
}

// Clear empties the output view, safe to call from any goroutine.
func (ov *OutputView) Clear() {
	fyne.Do(func() {
		ov.text.SetText("")
	})
}

// Text returns the current content.
func (ov *OutputView) Text() string {
	return ov.text.Text
}
