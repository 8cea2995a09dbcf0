package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/lucasb-eyer/go-colorful"

	"asciiforge/internal/raster"
)

// Button colors, as accepted by raster.ParseColor.
const (
	convertButtonColor = "#2e7d32"
	drawButtonColor    = "#1565c0"
	publishButtonColor = "#ef6c00"
)

var disabledGray = colorful.Color{R: 0.24, G: 0.24, B: 0.24}

// StyledButton is a button with a solid background. Its text is black or
// white, whichever reads better on the background.
type StyledButton struct {
	widget.Button
	bgColor color.Color
}

// NewStyledButton creates a button with the background bg, given as a color
// name or #rrggbb. An unparsable bg falls back to the theme's primary color.
func NewStyledButton(label string, tapped func(), bg string) *StyledButton {
	btn := &StyledButton{bgColor: theme.Color(theme.ColorNamePrimary)}
	if c, err := raster.ParseColor(bg); err == nil {
		btn.bgColor = c
	}
	btn.Text = label
	btn.OnTapped = tapped
	btn.ExtendBaseWidget(btn)
	return btn
}

// CreateRenderer returns a custom renderer.
func (b *StyledButton) CreateRenderer() fyne.WidgetRenderer {
	b.ExtendBaseWidget(b)

	bg := canvas.NewRectangle(b.bgColor)
	bg.CornerRadius = theme.InputRadiusSize()

	label := canvas.NewText(b.Text, textColorOn(b.bgColor))
	label.Alignment = fyne.TextAlignCenter
	label.TextStyle = fyne.TextStyle{Bold: true}

	r := &styledBtnRenderer{
		btn:     b,
		bg:      bg,
		label:   label,
		objects: []fyne.CanvasObject{bg, label},
	}
	r.Refresh()
	return r
}

// textColorOn picks black or white text for the background c.
func textColorOn(c color.Color) color.Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return color.White
	}
	l, _, _ := cf.Lab()
	if l > 0.6 {
		return color.Black
	}
	return color.White
}

// dimmed blends c towards gray for the disabled state.
func dimmed(c color.Color) color.Color {
	cf, ok := colorful.MakeColor(c)
	if !ok {
		return disabledGray
	}
	return cf.BlendLab(disabledGray, 0.75).Clamped()
}

type styledBtnRenderer struct {
	btn     *StyledButton
	bg      *canvas.Rectangle
	label   *canvas.Text
	objects []fyne.CanvasObject
}

func (r *styledBtnRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)
	labelMin := r.label.MinSize()
	r.label.Move(fyne.NewPos(
		(size.Width-labelMin.Width)/2,
		(size.Height-labelMin.Height)/2,
	))
	r.label.Resize(labelMin)
}

func (r *styledBtnRenderer) MinSize() fyne.Size {
	labelMin := r.label.MinSize()
	pad := theme.InnerPadding()
	return fyne.NewSize(labelMin.Width+pad*4, labelMin.Height+pad*2)
}

func (r *styledBtnRenderer) Refresh() {
	r.label.Text = r.btn.Text

	if r.btn.Disabled() {
		r.bg.FillColor = dimmed(r.btn.bgColor)
		r.label.Color = dimmed(textColorOn(r.btn.bgColor))
	} else {
		r.bg.FillColor = r.btn.bgColor
		r.label.Color = textColorOn(r.btn.bgColor)
	}

	r.bg.Refresh()
	r.label.Refresh()
}

func (r *styledBtnRenderer) Objects() []fyne.CanvasObject { return r.objects }
func (r *styledBtnRenderer) Destroy()                     {}
