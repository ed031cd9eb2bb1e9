package output

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/huh/spinner"
)

// SpinnerOption configures a spinner.
type SpinnerOption func(*spinnerConfig)

type spinnerConfig struct {
	title   string
	timeout time.Duration
	tty     func() bool
	out     io.Writer
}

// WithTitle sets the spinner title.
func WithTitle(title string) SpinnerOption {
	return func(c *spinnerConfig) {
		c.title = title
	}
}

// WithTimeout sets the spinner timeout.
func WithTimeout(timeout time.Duration) SpinnerOption {
	return func(c *spinnerConfig) {
		c.timeout = timeout
	}
}

// withTTY overrides terminal detection.
func withTTY(tty func() bool) SpinnerOption {
	return func(c *spinnerConfig) {
		c.tty = tty
	}
}

// withOutput redirects the spinner frames.
func withOutput(w io.Writer) SpinnerOption {
	return func(c *spinnerConfig) {
		c.out = w
	}
}

// RunWithSpinner executes an action with a spinner on stderr. Off a
// terminal the action runs directly. Returns the action's error if any.
func RunWithSpinner(ctx context.Context, action func(ctx context.Context) error, opts ...SpinnerOption) error {
	cfg := &spinnerConfig{
		title: "Working...",
		tty:   IsTTY,
		out:   os.Stderr,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	actionCtx := ctx
	if cfg.timeout > 0 {
		var cancel context.CancelFunc
		actionCtx, cancel = context.WithTimeout(ctx, cfg.timeout)
		defer cancel()
	}

	if !cfg.tty() {
		return action(actionCtx)
	}

	return spinner.New().
		Title(cfg.title).
		Output(cfg.out).
		Context(actionCtx).
		ActionWithErr(action).
		Run()
}
