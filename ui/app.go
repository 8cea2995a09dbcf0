package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	log "github.com/sirupsen/logrus"

	"asciiforge/internal/config"
	"asciiforge/internal/model"
)

// BuildMainWindow creates and configures the main application window. The
// settings file, when present, seeds the form; saved preferences win over it.
func BuildMainWindow(app fyne.App) fyne.Window {
	cfg, err := config.LoadDefault()
	if err != nil {
		log.WithError(err).Warn("ignoring config file")
		cfg = config.DefaultConfig()
	}
	return buildMainWindow(app, cfg)
}

func buildMainWindow(app fyne.App, cfg config.Config) fyne.Window {
	win := app.NewWindow("AsciiForge")
	win.Resize(NewWindowSize())

	configForm := NewConfigForm(cfg)
	outputView := NewOutputView()
	historyView := NewHistoryView()
	savedFiles := NewSavedFilesList(configForm.OutputDir())
	controls := NewControls(win, configForm, outputView, historyView, savedFiles)
	remotePanel := NewRemotePanel(cfg.Remote, func() (model.Grid, bool) {
		last, ok := historyView.Last()
		return last.Art, ok
	})
	textCanvas := NewTextCanvasView(configForm.OutputDir, controls.Record)

	prefs := app.Preferences()
	configForm.LoadPreferences(prefs)
	controls.LoadPreferences(prefs)
	remotePanel.LoadPreferences(prefs)
	savedFiles.SetDir(configForm.OutputDir())

	historyView.OnSelected = func(r model.ConversionResult) {
		if r.Error != "" {
			return
		}
		outputView.ShowArt(r.Art)
	}

	controls.OnDraw = func() {
		dw, err := NewDrawingWindow(app, cfg, configForm.Config, controls.Record)
		if err != nil {
			dialog.ShowError(err, win)
			return
		}
		dw.Show()
	}

	leftPanel := container.NewVBox(
		configForm.Container(),
		controls.Container(),
	)

	rightPanel := container.NewVBox(
		remotePanel.Container(),
	)

	topRow := container.NewHSplit(leftPanel, rightPanel)
	topRow.SetOffset(TopSplitRatio)

	tabs := container.NewAppTabs(
		container.NewTabItem("Output", outputView.Container()),
		container.NewTabItem("History", historyView.Container()),
		container.NewTabItem("Text Canvas", textCanvas.Container()),
		container.NewTabItem("Saved Files", savedFiles.Container()),
	)

	content := container.NewVSplit(topRow, tabs)
	content.SetOffset(MainSplitRatio)

	win.SetContent(content)
	win.SetMaster()

	win.SetCloseIntercept(func() {
		configForm.SavePreferences(prefs)
		controls.SavePreferences(prefs)
		remotePanel.SavePreferences(prefs)
		remotePanel.Close()
		win.Close()
	})

	return win
}
