package ssh

import (
	"fmt"
	"strings"
	"sync"

	"asciiforge/internal/model"
)

// Publisher writes art to a file on the remote host. Files the user cannot
// write are written through passwordless sudo when it is available.
type Publisher struct {
	runner Runner

	mu        sync.Mutex
	published []string
}

// NewPublisher returns a Publisher that runs its commands through r.
func NewPublisher(r Runner) *Publisher {
	return &Publisher{runner: r}
}

// PublishOptions controls how the remote file is written.
type PublishOptions struct {
	Append bool // add the art after the current contents instead of replacing them
	Backup bool // copy the current file to path.bak first
}

// Publish writes grid to path followed by a newline.
func (p *Publisher) Publish(grid model.Grid, path string, opts PublishOptions) error {
	if grid.Empty() {
		return fmt.Errorf("publish %s: nothing to write", path)
	}
	if path == "" {
		return fmt.Errorf("publish: remote path is required")
	}

	useSudo := false
	if !Writable(p.runner, path) {
		if !HasSudo(p.runner) {
			return fmt.Errorf("publish %s: not writable and passwordless sudo is unavailable", path)
		}
		useSudo = true
	}

	if opts.Backup {
		// The copy lands beside path, so the directory decides, not the file.
		backupSudo := useSudo
		if !backupSudo && !Writable(p.runner, parentDir(path)) {
			if !HasSudo(p.runner) {
				return fmt.Errorf("back up %s: directory not writable and passwordless sudo is unavailable", path)
			}
			backupSudo = true
		}
		cmd := fmt.Sprintf("if [ -f %[1]s ]; then cp %[1]s %[2]s; fi", shellQuote(path), shellQuote(path+".bak"))
		if backupSudo {
			cmd = "sudo -n sh -c " + shellQuote(cmd)
		}
		if _, err := p.runner.RunCommand(cmd); err != nil {
			return fmt.Errorf("back up %s: %w", path, err)
		}
	}

	cmd := WriteCommand(path, opts.Append, useSudo)
	if _, err := p.runner.RunWithInput(cmd, strings.NewReader(grid.String()+"\n")); err != nil {
		return fmt.Errorf("publish %s: %w", path, err)
	}

	p.mu.Lock()
	p.published = append(p.published, path)
	p.mu.Unlock()
	return nil
}

// Fetch returns the current contents of the remote file.
func (p *Publisher) Fetch(path string) (string, error) {
	out, err := p.runner.RunCommand("cat " + shellQuote(path))
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", path, err)
	}
	return out, nil
}

// Restore puts path.bak back in place of path.
func (p *Publisher) Restore(path string) error {
	cmd := fmt.Sprintf("mv %s %s", shellQuote(path+".bak"), shellQuote(path))
	if !Writable(p.runner, parentDir(path)) && HasSudo(p.runner) {
		cmd = "sudo -n " + cmd
	}
	if _, err := p.runner.RunCommand(cmd); err != nil {
		return fmt.Errorf("restore %s: %w", path, err)
	}
	return nil
}

// Published returns the remote paths written so far.
func (p *Publisher) Published() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.published...)
}

// WriteCommand builds the remote shell command that copies stdin into path.
func WriteCommand(path string, appendMode, sudo bool) string {
	q := shellQuote(path)
	if sudo {
		if appendMode {
			return "sudo -n tee -a " + q + " > /dev/null"
		}
		return "sudo -n tee " + q + " > /dev/null"
	}
	if appendMode {
		return "cat >> " + q
	}
	return "cat > " + q
}

// shellQuote wraps s in single quotes for a POSIX shell.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func parentDir(path string) string {
	i := strings.LastIndex(path, "/")
	switch {
	case i < 0:
		return "."
	case i == 0:
		return "/"
	}
	return path[:i]
}
