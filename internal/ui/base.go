package ui

import (
	"context"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ShutdownConfig holds configuration for graceful shutdown
type ShutdownConfig struct {
	GracePeriod time.Duration // Time to wait for the model's shutdown hook
	QuitTimeout time.Duration // Time to wait for Bubble Tea after a quit request
	// HandleSignals makes SIGINT and SIGTERM start a shutdown. Leave it off
	// for programs that do not own the process, like SSH sessions.
	HandleSignals bool
}

// DefaultShutdownConfig returns sensible defaults
func DefaultShutdownConfig() ShutdownConfig {
	return ShutdownConfig{
		GracePeriod:   5 * time.Second,
		QuitTimeout:   2 * time.Second,
		HandleSignals: true,
	}
}

// BaseUI provides the lifecycle shared by all UI models
type BaseUI struct {
	ctx            context.Context
	cancel         context.CancelFunc
	shutdownConfig ShutdownConfig
	shutdownOnce   sync.Once
	isShuttingDown bool
	shutdownMu     sync.RWMutex

	windowWidth  int
	windowHeight int

	onShutdown func() error
}

// NewBaseUI creates a new base UI with context and shutdown handling
func NewBaseUI(ctx context.Context, cfg ShutdownConfig) *BaseUI {
	ctx, cancel := context.WithCancel(ctx)

	base := &BaseUI{
		ctx:            ctx,
		cancel:         cancel,
		shutdownConfig: cfg,
	}

	if cfg.HandleSignals {
		go base.handleSignals()
	}

	return base
}

func (b *BaseUI) handleSignals() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case <-sigChan:
		b.InitiateShutdown()
	case <-b.ctx.Done():
	}
}

// InitiateShutdown starts the shutdown process. Only the first call returns
// tea.Quit.
func (b *BaseUI) InitiateShutdown() tea.Cmd {
	var cmd tea.Cmd

	b.shutdownOnce.Do(func() {
		b.shutdownMu.Lock()
		b.isShuttingDown = true
		b.shutdownMu.Unlock()

		b.cancel()
		cmd = tea.Quit
	})

	return cmd
}

// IsShuttingDown returns true if shutdown has been initiated
func (b *BaseUI) IsShuttingDown() bool {
	b.shutdownMu.RLock()
	defer b.shutdownMu.RUnlock()
	return b.isShuttingDown
}

// Context returns the UI's context
func (b *BaseUI) Context() context.Context {
	return b.ctx
}

// SetOnShutdown sets the shutdown callback
func (b *BaseUI) SetOnShutdown(fn func() error) {
	b.onShutdown = fn
}

// UpdateWindowSize updates the window dimensions
func (b *BaseUI) UpdateWindowSize(width, height int) {
	b.windowWidth = width
	b.windowHeight = height
}

// GetWindowSize returns the current window dimensions
func (b *BaseUI) GetWindowSize() (width, height int) {
	return b.windowWidth, b.windowHeight
}

// BaseUpdate handles the messages every model reacts to the same way
func (b *BaseUI) BaseUpdate(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.UpdateWindowSize(msg.Width, msg.Height)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return b.InitiateShutdown()
		}
	}
	return nil
}
