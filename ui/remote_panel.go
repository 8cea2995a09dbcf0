package ui

import (
	"fmt"
	"strconv"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	log "github.com/sirupsen/logrus"

	"asciiforge/internal/config"
	"asciiforge/internal/model"
	internalssh "asciiforge/internal/ssh"
)

// RemotePanel publishes the latest art to a file on an SSH host.
type RemotePanel struct {
	hostEntry     *widget.Entry
	userEntry     *widget.Entry
	keyPathEntry  *widget.Entry
	passwordEntry *widget.Entry
	portEntry     *widget.Entry
	pathEntry     *widget.Entry
	appendCheck   *widget.Check
	backupCheck   *widget.Check

	connectBtn    *widget.Button
	disconnectBtn *widget.Button
	publishBtn    *StyledButton
	restoreBtn    *widget.Button
	statusLabel   *widget.Label

	// art returns the grid to publish; false when there is none yet.
	art func() (model.Grid, bool)

	mu        sync.Mutex
	client    *internalssh.Client
	publisher *internalssh.Publisher
	container *fyne.Container
}

// NewRemotePanel creates the SSH publish panel, prefilled from the remote
// section of cfg.
func NewRemotePanel(cfg config.RemoteConfig, art func() (model.Grid, bool)) *RemotePanel {
	rp := &RemotePanel{art: art}

	rp.hostEntry = widget.NewEntry()
	rp.hostEntry.SetPlaceHolder("SSH host")
	rp.hostEntry.SetText(cfg.Host)

	rp.userEntry = widget.NewEntry()
	rp.userEntry.SetPlaceHolder("username")
	rp.userEntry.SetText(cfg.User)

	rp.keyPathEntry = widget.NewEntry()
	rp.keyPathEntry.SetPlaceHolder("~/.ssh/id_ed25519")
	rp.keyPathEntry.SetText(cfg.KeyPath)

	rp.passwordEntry = widget.NewPasswordEntry()
	rp.passwordEntry.SetPlaceHolder("password (optional)")

	rp.portEntry = widget.NewEntry()
	rp.portEntry.SetText(strconv.Itoa(cfg.Port))
	rp.portEntry.Validator = validatePort

	rp.pathEntry = widget.NewEntry()
	rp.pathEntry.SetText(cfg.Path)

	rp.appendCheck = widget.NewCheck("Append", nil)
	rp.backupCheck = widget.NewCheck("Keep backup", nil)
	rp.backupCheck.SetChecked(true)

	rp.statusLabel = widget.NewLabel("Disconnected")
	rp.statusLabel.Wrapping = fyne.TextWrapWord

	rp.connectBtn = widget.NewButton("Connect", rp.onConnect)
	rp.disconnectBtn = widget.NewButton("Disconnect", rp.onDisconnect)
	rp.publishBtn = NewStyledButton("Publish Art", rp.onPublish, publishButtonColor)
	rp.restoreBtn = widget.NewButton("Restore Backup", rp.onRestore)
	rp.setConnected(false)

	rp.container = container.NewVBox(
		widget.NewLabelWithStyle("Publish (SSH)", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewForm(
			widget.NewFormItem("Host", rp.hostEntry),
			widget.NewFormItem("Port", rp.portEntry),
			widget.NewFormItem("User", rp.userEntry),
			widget.NewFormItem("Key", rp.keyPathEntry),
			widget.NewFormItem("Password", rp.passwordEntry),
		),
		container.NewHBox(rp.connectBtn, rp.disconnectBtn),
		widget.NewSeparator(),
		widget.NewForm(widget.NewFormItem("Remote file", rp.pathEntry)),
		container.NewHBox(rp.appendCheck, rp.backupCheck),
		container.NewHBox(rp.publishBtn, rp.restoreBtn),
		rp.statusLabel,
	)

	return rp
}

// Container returns the panel's container.
func (rp *RemotePanel) Container() *fyne.Container {
	return rp.container
}

// LoadPreferences restores the connection fields. The password is never
// persisted.
func (rp *RemotePanel) LoadPreferences(prefs fyne.Preferences) {
	if v := prefs.String(prefRemoteHost); v != "" {
		rp.hostEntry.SetText(v)
	}
	if v := prefs.String(prefRemoteUser); v != "" {
		rp.userEntry.SetText(v)
	}
	if v := prefs.String(prefRemoteKey); v != "" {
		rp.keyPathEntry.SetText(v)
	}
	if v := prefs.String(prefRemotePort); v != "" {
		rp.portEntry.SetText(v)
	}
	if v := prefs.String(prefRemotePath); v != "" {
		rp.pathEntry.SetText(v)
	}
}

// SavePreferences persists the connection fields.
func (rp *RemotePanel) SavePreferences(prefs fyne.Preferences) {
	prefs.SetString(prefRemoteHost, rp.hostEntry.Text)
	prefs.SetString(prefRemoteUser, rp.userEntry.Text)
	prefs.SetString(prefRemoteKey, rp.keyPathEntry.Text)
	prefs.SetString(prefRemotePort, rp.portEntry.Text)
	prefs.SetString(prefRemotePath, rp.pathEntry.Text)
}

// Target returns the remote settings currently entered.
func (rp *RemotePanel) Target() config.RemoteConfig {
	return config.RemoteConfig{
		Host:    rp.hostEntry.Text,
		Port:    parsePort(rp.portEntry.Text, 22),
		User:    rp.userEntry.Text,
		KeyPath: rp.keyPathEntry.Text,
		Path:    rp.pathEntry.Text,
	}
}

// Close drops the SSH connection, if any.
func (rp *RemotePanel) Close() {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	if rp.client != nil {
		rp.client.Close()
		rp.client = nil
		rp.publisher = nil
	}
}

func (rp *RemotePanel) setConnected(connected bool) {
	if connected {
		rp.connectBtn.Disable()
		rp.disconnectBtn.Enable()
		rp.publishBtn.Enable()
		rp.restoreBtn.Enable()
		return
	}
	rp.connectBtn.Enable()
	rp.disconnectBtn.Disable()
	rp.publishBtn.Disable()
	rp.restoreBtn.Disable()
}

func (rp *RemotePanel) setStatus(text string) {
	fyne.Do(func() { rp.statusLabel.SetText(text) })
}

func (rp *RemotePanel) onConnect() {
	target := rp.Target()
	if err := target.Validate(); err != nil {
		rp.statusLabel.SetText(fmt.Sprintf("Error: %v", err))
		return
	}
	cfg := internalssh.ConnectConfig{
		Host:     target.Host,
		Port:     target.Port,
		User:     target.User,
		KeyPath:  target.KeyPath,
		Password: rp.passwordEntry.Text,
	}

	rp.connectBtn.Disable()
	rp.statusLabel.SetText(fmt.Sprintf("Connecting to %s ...", cfg.Host))

	go func() {
		client, err := internalssh.Connect(cfg)
		if err != nil {
			rp.setStatus(fmt.Sprintf("Error: %v", err))
			fyne.Do(func() { rp.setConnected(false) })
			return
		}

		status := fmt.Sprintf("Connected to %s", client.Host())
		if osType, err := internalssh.DetectOS(client); err == nil {
			status += fmt.Sprintf(" (%s)", osType)
		}

		rp.mu.Lock()
		rp.client = client
		rp.publisher = internalssh.NewPublisher(client)
		rp.mu.Unlock()

		log.WithField("host", client.Host()).Info("connected")
		rp.setStatus(status)
		fyne.Do(func() { rp.setConnected(true) })
	}()
}

func (rp *RemotePanel) onDisconnect() {
	rp.Close()
	rp.statusLabel.SetText("Disconnected")
	rp.setConnected(false)
}

func (rp *RemotePanel) onPublish() {
	grid, ok := rp.art()
	if !ok {
		rp.statusLabel.SetText("Nothing to publish yet: convert an image or a drawing first.")
		return
	}
	path := rp.pathEntry.Text
	opts := internalssh.PublishOptions{Append: rp.appendCheck.Checked, Backup: rp.backupCheck.Checked}

	go func() {
		if err := rp.publish(grid, path, opts); err != nil {
			rp.setStatus(fmt.Sprintf("Error: %v", err))
			return
		}
		rp.setStatus(fmt.Sprintf("Published %dx%d art to %s", grid.Width(), grid.Height(), path))
	}()
}

func (rp *RemotePanel) publish(grid model.Grid, path string, opts internalssh.PublishOptions) error {
	rp.mu.Lock()
	defer rp.mu.Unlock()
	if rp.publisher == nil {
		return fmt.Errorf("not connected")
	}
	return rp.publisher.Publish(grid, path, opts)
}

func (rp *RemotePanel) onRestore() {
	path := rp.pathEntry.Text
	go func() {
		rp.mu.Lock()
		pub := rp.publisher
		rp.mu.Unlock()
		if pub == nil {
			rp.setStatus("Error: not connected")
			return
		}
		if err := pub.Restore(path); err != nil {
			rp.setStatus(fmt.Sprintf("Error: %v", err))
			return
		}
		rp.setStatus(fmt.Sprintf("Restored %s from backup", path))
	}()
}
