package ui

import (
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"asciiforge/internal/ascii"
	"asciiforge/internal/config"
)

// ConfigForm holds the GUI form fields for the conversion settings.
type ConfigForm struct {
	base config.Config // canvas and remote settings the form does not edit

	widthEntry      *widget.Entry
	rampEntry       *widget.Entry
	resamplerSelect *widget.Select
	aspectEntry     *widget.Entry
	outputDirEntry  *widget.Entry
	form            *fyne.Container
}

// NewConfigForm creates a configuration form showing the values of base.
func NewConfigForm(base config.Config) *ConfigForm {
	cf := &ConfigForm{base: base}

	cf.widthEntry = widget.NewEntry()
	cf.widthEntry.SetText(strconv.Itoa(base.Width))
	cf.widthEntry.Validator = validateWidth

	cf.rampEntry = widget.NewEntry()
	cf.rampEntry.TextStyle = fyne.TextStyle{Monospace: true}
	cf.rampEntry.SetText(base.Ramp)
	cf.rampEntry.Validator = validateRamp

	names := make([]string, len(ascii.Resamplers))
	for i, r := range ascii.Resamplers {
		names[i] = string(r)
	}
	cf.resamplerSelect = widget.NewSelect(names, nil)
	cf.resamplerSelect.SetSelected(base.Resampler)

	cf.aspectEntry = widget.NewEntry()
	cf.aspectEntry.SetText(strconv.FormatFloat(base.GlyphAspect, 'g', -1, 64))
	cf.aspectEntry.Validator = validateAspect

	cf.outputDirEntry = widget.NewEntry()
	cf.outputDirEntry.SetPlaceHolder("current directory")
	cf.outputDirEntry.SetText(base.OutputDir)

	conversion := widget.NewForm(
		widget.NewFormItem("Width", cf.widthEntry),
		widget.NewFormItem("Resampler", cf.resamplerSelect),
	)

	glyphs := widget.NewForm(
		widget.NewFormItem("Ramp", cf.rampEntry),
		widget.NewFormItem("Glyph aspect", cf.aspectEntry),
	)

	output := widget.NewForm(
		widget.NewFormItem("Output dir", cf.outputDirEntry),
	)

	accordion := widget.NewAccordion(
		widget.NewAccordionItem("Conversion", conversion),
		widget.NewAccordionItem("Glyphs", glyphs),
		widget.NewAccordionItem("Output", output),
	)
	accordion.Open(0)

	cf.form = container.NewVBox(accordion)

	return cf
}

// Container returns the form's Fyne container.
func (cf *ConfigForm) Container() *fyne.Container {
	return cf.form
}

// LoadPreferences restores form values from persistent preferences.
func (cf *ConfigForm) LoadPreferences(prefs fyne.Preferences) {
	if v := prefs.String(prefWidth); v != "" {
		cf.widthEntry.SetText(v)
	}
	if v := prefs.String(prefRamp); v != "" {
		cf.rampEntry.SetText(v)
	}
	if v := prefs.String(prefResampler); v != "" {
		if _, err := ascii.ParseResampler(v); err == nil {
			cf.resamplerSelect.SetSelected(v)
		}
	}
	if v := prefs.String(prefAspect); v != "" {
		cf.aspectEntry.SetText(v)
	}
	if v := prefs.String(prefOutputDir); v != "" {
		cf.outputDirEntry.SetText(v)
	}
}

// SavePreferences persists form values to preferences.
func (cf *ConfigForm) SavePreferences(prefs fyne.Preferences) {
	prefs.SetString(prefWidth, cf.widthEntry.Text)
	prefs.SetString(prefRamp, cf.rampEntry.Text)
	prefs.SetString(prefResampler, cf.resamplerSelect.Selected)
	prefs.SetString(prefAspect, cf.aspectEntry.Text)
	prefs.SetString(prefOutputDir, cf.outputDirEntry.Text)
}

// Config returns the base settings with the form values applied. Unparsable
// numbers fall back to the base values; call Validate on the result.
func (cf *ConfigForm) Config() config.Config {
	cfg := cf.base
	cfg.Width = parseIntOrDefault(cf.widthEntry.Text, cf.base.Width)
	cfg.Ramp = cf.rampEntry.Text
	if cf.resamplerSelect.Selected != "" {
		cfg.Resampler = cf.resamplerSelect.Selected
	}
	cfg.GlyphAspect = parseFloatOrDefault(cf.aspectEntry.Text, cf.base.GlyphAspect)
	cfg.OutputDir = cf.outputDirEntry.Text
	return cfg
}

// OutputDir returns the directory saved art goes to; "." when unset.
func (cf *ConfigForm) OutputDir() string {
	if cf.outputDirEntry.Text == "" {
		return "."
	}
	return cf.outputDirEntry.Text
}
