package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// artEntry shows ASCII art in a monospace multi-line entry. The art can be
// selected and copied but not edited, and lines are never wrapped so the
// columns stay aligned.
type artEntry struct {
	widget.Entry
}

func newArtEntry() *artEntry {
	e := &artEntry{}
	e.MultiLine = true
	e.Wrapping = fyne.TextWrapOff
	e.TextStyle = fyne.TextStyle{Monospace: true}
	e.ExtendBaseWidget(e)
	return e
}

// TypedRune drops typed characters.
func (e *artEntry) TypedRune(_ rune) {}

// TypedKey passes through navigation and selection keys only.
func (e *artEntry) TypedKey(ev *fyne.KeyEvent) {
	switch ev.Name {
	case fyne.KeyBackspace, fyne.KeyDelete, fyne.KeyReturn, fyne.KeyEnter, fyne.KeyTab:
		return
	}
	e.Entry.TypedKey(ev)
}

// TypedShortcut allows copy and select-all; paste and cut would change the art.
func (e *artEntry) TypedShortcut(s fyne.Shortcut) {
	switch s.(type) {
	case *fyne.ShortcutCopy, *fyne.ShortcutSelectAll, *desktop.CustomShortcut:
		e.Entry.TypedShortcut(s)
	}
}
