package cmd

import (
	"net"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/bnema/waylayout/internal/config"
	"github.com/bnema/waylayout/internal/logger"
	"github.com/bnema/waylayout/internal/server"
)

var (
	servePort int
	serveBind string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the layout editor over SSH",
	Long: `Start an SSH server that opens the layout editor in every session, laid
out on this machine's monitors. Keys must be whitelisted with
'waylayout config ssh add' unless server.ssh_whitelist_only is false.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (default from server.port)")
	serveCmd.Flags().StringVar(&serveBind, "bind", "", "address to bind (default from server.bind_address)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Get()

	port := cfg.Server.Port
	if servePort != 0 {
		port = servePort
	}
	bind := cfg.Server.BindAddress
	if serveBind != "" {
		bind = serveBind
	}

	monitors, err := monitorRects(cfg)
	if err != nil {
		return err
	}
	layoutOpts, err := layoutOptions(cfg)
	if err != nil {
		return err
	}

	srv := server.New(server.Options{
		Address:       net.JoinHostPort(bind, strconv.Itoa(port)),
		HostKeyPath:   cfg.Server.SSHHostKeyPath,
		WhitelistOnly: cfg.Server.SSHWhitelistOnly,
		MaxSessions:   cfg.Server.MaxSessions,
		Monitors:      monitors,
		LayoutOptions: layoutOpts,
		Editor:        editorOptions(cfg, cfg.Editor.ProfilePath, cfg.Export.Path),
	})

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := srv.Start(ctx); err != nil {
		return err
	}
	logger.Infof("Connect with: ssh -p %d %s", port, bind)

	<-ctx.Done()
	logger.Info("Shutting down SSH editor")
	srv.Stop()
	return nil
}
