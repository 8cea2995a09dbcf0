package ui

import "fyne.io/fyne/v2"

// Main window dimensions
const (
	WindowWidth  = 960
	WindowHeight = 700
)

// Split ratios
const (
	TopSplitRatio  = 0.62 // settings and controls | remote panel
	MainSplitRatio = 0.38 // top row | tabs
)

// OutputView dimensions
const (
	OutputViewMinWidth  = 800
	OutputViewMinHeight = 250
)

// Drawing window padding around the pad
const DrawingWindowChrome = 120

// Preference keys
const (
	prefWidth      = "config.width"
	prefRamp       = "config.ramp"
	prefResampler  = "config.resampler"
	prefAspect     = "config.glyph_aspect"
	prefOutputDir  = "config.output_dir"
	prefLastImage  = "config.last_image"
	prefRemoteHost = "remote.host"
	prefRemoteUser = "remote.user"
	prefRemoteKey  = "remote.key_path"
	prefRemotePort = "remote.port"
	prefRemotePath = "remote.path"
)

// NewWindowSize returns the default main window size
func NewWindowSize() fyne.Size {
	return fyne.NewSize(WindowWidth, WindowHeight)
}

// NewOutputViewMinSize returns the minimum size for the output view
func NewOutputViewMinSize() fyne.Size {
	return fyne.NewSize(OutputViewMinWidth, OutputViewMinHeight)
}

// NewDrawingWindowSize returns a window size that fits a w x h drawing pad
// with its toolbar.
func NewDrawingWindowSize(w, h int) fyne.Size {
	return fyne.NewSize(float32(w)+DrawingWindowChrome/4, float32(h)+DrawingWindowChrome)
}
