// Package cli implements the biblio command line front-end. Each
// subcommand corresponds to one screen of the catalogue: a dashboard,
// the two listings, the record detail, and the add/edit form.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/Jayman971/ma-bibliotheque-api/internal/client"
)

// Config is the environment-driven configuration of the CLI.
type Config struct {
	BaseURL     string `envconfig:"BIBLIO_BASE_URL" default:"http://localhost:8081/api/v1"`
	SessionFile string `envconfig:"BIBLIO_SESSION_FILE"`
	LogFile     string `envconfig:"BIBLIO_LOG_FILE"`
	Debug       bool   `envconfig:"BIBLIO_DEBUG"`
}

// App carries the shared state of all subcommands: the API client,
// the logger, and the input/output streams. Output goes to out;
// prompts and notices go to errOut so that tables stay pipeable.
type App struct {
	config Config
	client *client.Client
	logger *zap.Logger

	out    io.Writer
	errOut io.Writer
	stdin  *os.File
	reader *bufio.Reader

	yes bool
}

// setup resolves the configuration (environment first, flags win) and
// builds the API client. Called from the root command before any
// subcommand runs.
func (a *App) setup(baseURL, sessionFile string, debug bool) error {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return fmt.Errorf("failed to read environment configuration: %w", err)
	}
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	if sessionFile != "" {
		cfg.SessionFile = sessionFile
	}
	if debug {
		cfg.Debug = true
	}
	a.config = cfg
	a.logger = newLogger(cfg)

	store, err := client.NewFileSessionStore(cfg.SessionFile)
	if err != nil {
		return err
	}
	c, err := client.New(cfg.BaseURL,
		client.WithSessionStore(store),
		client.WithLogger(a.logger),
	)
	if err != nil {
		return err
	}
	a.client = c
	return nil
}

// newLogger writes JSON logs to the configured file, defaulting to
// the user config directory. Logging is best-effort: any setup
// failure degrades to a no-op logger rather than blocking the CLI.
func newLogger(cfg Config) *zap.Logger {
	path := cfg.LogFile
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return zap.NewNop()
		}
		path = filepath.Join(dir, "biblio", "biblio.log")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return zap.NewNop()
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return zap.NewNop()
	}
	level := zapcore.InfoLevel
	if cfg.Debug {
		level = zapcore.DebugLevel
	}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), zapcore.AddSync(file), level)
	return zap.New(core)
}

// noticef prints a status line on the notice stream.
func (a *App) noticef(format string, args ...interface{}) {
	fmt.Fprintf(a.errOut, format+"\n", args...)
}

// report translates a client error into a user-facing notice and
// passes the error through for the non-zero exit code.
func (a *App) report(err error) error {
	switch {
	case errors.Is(err, client.ErrNoSession):
		a.noticef("No active session. Run `biblio login` first.")
	case errors.Is(err, client.ErrSessionExpired):
		a.noticef("Your session has expired. Run `biblio login` again.")
	default:
		var apiErr *client.APIError
		if errors.As(err, &apiErr) {
			a.noticef("Request failed: %s", apiErr.Message)
		} else {
			a.noticef("Error: %v", err)
		}
	}
	a.logger.Error("command failed", zap.Error(err))
	return err
}

// promptLine reads one line of input after showing a prompt.
func (a *App) promptLine(prompt string) (string, error) {
	fmt.Fprint(a.errOut, prompt)
	line, err := a.reader.ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// promptPassword reads a password without echo when stdin is a
// terminal, and falls back to a plain line read otherwise.
func (a *App) promptPassword() (string, error) {
	if a.stdin != nil && term.IsTerminal(int(a.stdin.Fd())) {
		fmt.Fprint(a.errOut, "Password: ")
		raw, err := term.ReadPassword(int(a.stdin.Fd()))
		fmt.Fprintln(a.errOut)
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(raw), nil
	}
	return a.promptLine("Password: ")
}

// confirm asks a yes/no question, honoring the --yes flag.
func (a *App) confirm(prompt string) bool {
	if a.yes {
		return true
	}
	answer, err := a.promptLine(prompt + " [y/N] ")
	if err != nil {
		return false
	}
	answer = strings.ToLower(answer)
	return answer == "y" || answer == "yes"
}
