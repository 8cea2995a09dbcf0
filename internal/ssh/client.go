// Package ssh publishes converted art to a remote host, typically as the
// login banner in /etc/motd.
package ssh

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/crypto/ssh"
	"golang.org/x/crypto/ssh/knownhosts"
)

// Runner executes shell commands on a remote host.
type Runner interface {
	RunCommand(cmd string) (string, error)
	RunWithInput(cmd string, stdin io.Reader) (string, error)
}

// Client wraps an SSH connection.
type Client struct {
	conn *ssh.Client
	host string
	user string
}

// ConnectConfig holds SSH connection parameters.
type ConnectConfig struct {
	Host     string
	Port     int
	User     string
	KeyPath  string // path to private key file
	Password string // used when KeyPath is empty or rejected
	Timeout  time.Duration
}

// Connect establishes an SSH connection using key auth (preferred) or password.
func Connect(cfg ConnectConfig) (*Client, error) {
	if cfg.Port == 0 {
		cfg.Port = 22
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	authMethods, err := authMethods(cfg)
	if err != nil {
		return nil, err
	}

	hostKeyCallback, err := knownHostsCallback()
	if err != nil {
		// no known_hosts file to check against
		hostKeyCallback = ssh.InsecureIgnoreHostKey()
	}

	sshConfig := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            authMethods,
		HostKeyCallback: hostKeyCallback,
		Timeout:         cfg.Timeout,
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	conn, err := ssh.Dial("tcp", addr, sshConfig)
	if err != nil {
		return nil, fmt.Errorf("SSH connect to %s: %w", addr, err)
	}

	return &Client{conn: conn, host: cfg.Host, user: cfg.User}, nil
}

func authMethods(cfg ConnectConfig) ([]ssh.AuthMethod, error) {
	var methods []ssh.AuthMethod

	if cfg.KeyPath != "" {
		key, err := os.ReadFile(cfg.KeyPath)
		if err != nil {
			return nil, fmt.Errorf("read SSH key %q: %w", cfg.KeyPath, err)
		}
		signer, err := ssh.ParsePrivateKey(key)
		if err != nil {
			return nil, fmt.Errorf("parse SSH key: %w", err)
		}
		methods = append(methods, ssh.PublicKeys(signer))
	}
	if cfg.Password != "" {
		methods = append(methods, ssh.Password(cfg.Password))
	}

	if len(methods) == 0 {
		return nil, fmt.Errorf("no SSH auth method provided (key or password required)")
	}
	return methods, nil
}

// Host returns "user@host" for display.
func (c *Client) Host() string {
	return c.user + "@" + c.host
}

// RunCommand executes a command on the remote host and returns its output.
func (c *Client) RunCommand(cmd string) (string, error) {
	return c.RunWithInput(cmd, nil)
}

// RunWithInput executes cmd with stdin fed from r and returns the combined output.
func (c *Client) RunWithInput(cmd string, r io.Reader) (string, error) {
	session, err := c.conn.NewSession()
	if err != nil {
		return "", fmt.Errorf("create SSH session: %w", err)
	}
	defer session.Close()

	if r != nil {
		session.Stdin = r
	}
	var out bytes.Buffer
	session.Stdout = &out
	session.Stderr = &out

	if err := session.Run(cmd); err != nil {
		return out.String(), fmt.Errorf("remote command %q: %w: %s", cmd, err, out.String())
	}
	return out.String(), nil
}

// Close closes the SSH connection.
func (c *Client) Close() error {
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

func knownHostsCallback() (ssh.HostKeyCallback, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	path := filepath.Join(home, ".ssh", "known_hosts")
	if _, err := os.Stat(path); err != nil {
		return nil, err
	}
	return knownhosts.New(path)
}
