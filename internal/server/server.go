// Package server hosts the layout editor over SSH so a layout can be edited
// from another machine while the windows are checked on the real monitors.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	gossh "golang.org/x/crypto/ssh"

	"github.com/bnema/waylayout/internal/config"
	"github.com/bnema/waylayout/internal/layout"
	"github.com/bnema/waylayout/internal/logger"
	"github.com/bnema/waylayout/internal/ui"
)

// Options configures a Server
type Options struct {
	Address       string
	HostKeyPath   string
	WhitelistOnly bool
	MaxSessions   int

	Monitors      []layout.Rect
	LayoutOptions []layout.Option
	Editor        ui.EditorOptions
}

// Server serves one independent editor per SSH session
type Server struct {
	opts      Options
	sshServer *ssh.Server
	listener  net.Listener

	mu       sync.Mutex
	sessions map[string]string // session ID -> remote address

	stopOnce sync.Once
	wg       sync.WaitGroup

	// OnAuthRequest decides on keys that are not whitelisted when
	// WhitelistOnly is set. Approved keys are added to the whitelist.
	OnAuthRequest func(addr, fingerprint string) bool
}

// New creates a server. Nothing listens until Start.
func New(opts Options) *Server {
	return &Server{
		opts:     opts,
		sessions: make(map[string]string),
	}
}

// Start binds the address and serves in the background until ctx is done
// or Stop is called.
func (s *Server) Start(ctx context.Context) error {
	if len(s.opts.Monitors) == 0 {
		return layout.ErrNoMonitors
	}

	server, err := wish.NewServer(
		wish.WithAddress(s.opts.Address),
		wish.WithHostKeyPath(s.opts.HostKeyPath),
		wish.WithPublicKeyAuth(s.publicKeyAuth),
		wish.WithMiddleware(
			bubbletea.Middleware(s.teaHandler),
			activeterm.Middleware(),
			s.sessionLimitMiddleware(),
			s.loggingMiddleware(),
		),
	)
	if err != nil {
		return fmt.Errorf("failed to create SSH server: %w", err)
	}

	l, err := net.Listen("tcp", s.opts.Address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Address, err)
	}
	s.sshServer = server
	s.listener = l

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		logger.Infof("SSH editor listening on %s", l.Addr())
		if err := server.Serve(l); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Errorf("SSH server error: %v", err)
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// Addr returns the bound address, nil before Start
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Stop shuts the server down and waits for it to exit
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		if s.sshServer != nil {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.sshServer.Shutdown(ctx); err != nil {
				_ = s.sshServer.Close()
			}
		}
		s.wg.Wait()
	})
}

// SessionCount returns the number of connected sessions
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *Server) publicKeyAuth(ctx ssh.Context, key ssh.PublicKey) bool {
	goKey, err := gossh.ParsePublicKey(key.Marshal())
	if err != nil {
		logger.Errorf("Failed to parse public key: %v", err)
		return false
	}

	fingerprint := gossh.FingerprintSHA256(goKey)
	logger.Infof("SSH authentication attempt addr=%s user=%s key=%s", ctx.RemoteAddr(), ctx.User(), fingerprint)
	return s.authorize(ctx.RemoteAddr().String(), fingerprint)
}

// authorize applies the whitelist policy to a key fingerprint
func (s *Server) authorize(addr, fingerprint string) bool {
	if config.IsSSHKeyWhitelisted(fingerprint) {
		return true
	}
	if !s.opts.WhitelistOnly {
		logger.Info("Accepting SSH key (whitelist-only mode disabled)", "key", fingerprint)
		return true
	}

	if s.OnAuthRequest == nil {
		logger.Warn("SSH key denied, add it with 'waylayout config ssh add'", "key", fingerprint, "addr", addr)
		return false
	}

	if !s.OnAuthRequest(addr, fingerprint) {
		logger.Infof("SSH key denied key=%s addr=%s", fingerprint, addr)
		return false
	}
	if err := config.AddSSHKeyToWhitelist(fingerprint); err != nil {
		logger.Errorf("Failed to add key to whitelist: %v", err)
	}
	logger.Infof("SSH key approved and added to whitelist key=%s addr=%s", fingerprint, addr)
	return true
}

func (s *Server) loggingMiddleware() wish.Middleware {
	return func(h ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			start := time.Now()
			logger.Debugf("SSH session started: user=%s addr=%s", sess.User(), sess.RemoteAddr())
			h(sess)
			logger.Debugf("SSH session ended: addr=%s duration=%s", sess.RemoteAddr(), time.Since(start).Round(time.Second))
		}
	}
}

// sessionLimitMiddleware rejects sessions beyond MaxSessions
func (s *Server) sessionLimitMiddleware() wish.Middleware {
	return func(h ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			id := sess.Context().SessionID()
			addr := sess.RemoteAddr().String()

			if !s.register(id, addr) {
				logger.Infof("Rejecting session - max sessions reached addr=%s", addr)
				wish.Fatalln(sess, "Server already has the maximum number of editor sessions")
				return
			}
			defer s.unregister(id)

			h(sess)
		}
	}
}

func (s *Server) register(id, addr string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.opts.MaxSessions > 0 && len(s.sessions) >= s.opts.MaxSessions {
		return false
	}
	s.sessions[id] = addr
	return true
}

func (s *Server) unregister(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *Server) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	editor, err := s.newEditor()
	if err != nil {
		wish.Fatalln(sess, err.Error())
		return nil, nil
	}
	return editor, []tea.ProgramOption{tea.WithAltScreen()}
}

// newEditor builds the editor of one session. Sessions share nothing, each
// gets its own layout.
func (s *Server) newEditor() (*ui.Editor, error) {
	opts := s.opts.Editor
	if opts.Title == "" {
		opts.Title = "waylayout (ssh)"
	}
	return ui.NewSession(s.opts.Monitors, opts, s.opts.LayoutOptions...)
}
