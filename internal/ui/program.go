package ui

import (
	"context"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/bnema/waylayout/internal/logger"
)

// ProgramConfig holds configuration for running a UI program
type ProgramConfig struct {
	ShutdownConfig ShutdownConfig
	AltScreen      bool
	Input          io.Reader
	Output         io.Writer
}

// DefaultProgramConfig returns default configuration
func DefaultProgramConfig() ProgramConfig {
	return ProgramConfig{
		ShutdownConfig: DefaultShutdownConfig(),
		AltScreen:      true,
	}
}

// UIModel interface that all UI models must implement
type UIModel interface {
	tea.Model
	// SetBase allows the model to store reference to base UI
	SetBase(base *BaseUI)
	// OnShutdown is called after Bubble Tea has exited
	OnShutdown() error
}

// ProgramRunner manages the lifecycle of a Bubble Tea program with proper shutdown
type ProgramRunner struct {
	config  ProgramConfig
	base    *BaseUI
	program *tea.Program
	done    chan struct{}
}

// NewProgramRunner creates a new program runner
func NewProgramRunner(config ProgramConfig) *ProgramRunner {
	return &ProgramRunner{
		config: config,
		done:   make(chan struct{}),
	}
}

// Run starts the UI program with the given model and blocks until it exits
// or ctx is cancelled.
func (r *ProgramRunner) Run(ctx context.Context, model UIModel) error {
	defer close(r.done)

	r.base = NewBaseUI(ctx, r.config.ShutdownConfig)
	defer r.base.cancel()
	r.base.SetOnShutdown(model.OnShutdown)
	model.SetBase(r.base)

	var opts []tea.ProgramOption
	if r.config.AltScreen {
		opts = append(opts, tea.WithAltScreen())
	}
	if r.config.Input != nil {
		opts = append(opts, tea.WithInput(r.config.Input))
	}
	if r.config.Output != nil {
		opts = append(opts, tea.WithOutput(r.config.Output))
	}

	r.program = tea.NewProgram(model, opts...)

	errCh := make(chan error, 1)
	go func() {
		_, err := r.program.Run()
		errCh <- err
	}()

	var runErr error
	select {
	case err := <-errCh:
		runErr = err
	case <-r.base.Context().Done():
		r.program.Quit()

		select {
		case err := <-errCh:
			runErr = err
		case <-time.After(r.config.ShutdownConfig.QuitTimeout):
			logger.Warn("UI did not quit in time, killing it")
			r.program.Kill()
			<-errCh
		}
	}

	r.runShutdown()
	return runErr
}

func (r *ProgramRunner) runShutdown() {
	if r.base.onShutdown == nil {
		return
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), r.config.ShutdownConfig.GracePeriod)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- r.base.onShutdown()
	}()

	select {
	case err := <-done:
		if err != nil {
			logger.Error("Shutdown callback error", "error", err)
		}
	case <-shutdownCtx.Done():
		logger.Warn("Shutdown callback timed out")
	}
}

// Send sends a message to the running program
func (r *ProgramRunner) Send(msg tea.Msg) {
	if r.program != nil {
		r.program.Send(msg)
	}
}

// Quit asks the program to exit
func (r *ProgramRunner) Quit() {
	if r.program != nil {
		r.program.Quit()
	}
}

// Done returns a channel that's closed when the program exits
func (r *ProgramRunner) Done() <-chan struct{} {
	return r.done
}
