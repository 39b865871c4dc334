package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aeroswipe/aeroswipe/aerospace"
	"github.com/aeroswipe/aeroswipe/config"
	"github.com/aeroswipe/aeroswipe/daemon"
	"github.com/aeroswipe/aeroswipe/engine"
	"github.com/aeroswipe/aeroswipe/input"
	"github.com/aeroswipe/aeroswipe/server"
	"github.com/aeroswipe/aeroswipe/utils"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the aeroswipe daemon",
	Long:  `Starts the gesture pipeline and the control API server.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// GetBool/GetString cannot fail for defined flags
		isDaemon, _ := cmd.Flags().GetBool("daemon")
		configPath, _ := cmd.Flags().GetString("config")
		listenAddr, _ := cmd.Flags().GetString("listen")

		if isDaemon && !daemon.IsChild() {
			child, err := daemon.Daemonize()
			if err != nil {
				return fmt.Errorf("failed to start daemon: %w", err)
			}
			if child != nil {
				fmt.Printf("aeroswipe daemon spawned (pid %d)\n", child.Pid)
				return nil
			}
		}

		return runDaemon(configPath, listenAddr)
	},
}

var killCmd = &cobra.Command{
	Use:   "kill",
	Short: "Stop a running aeroswipe daemon",
	Long:  `Connects to the control API and sends a shutdown command.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, token, err := controlTarget(cmd)
		if err != nil {
			return err
		}

		if err := daemon.KillServer(addr, token); err != nil {
			return err
		}

		fmt.Println("shutdown command sent")
		return nil
	},
}

// runDaemon assembles the pipeline and blocks until the control server is
// shut down.
func runDaemon(configPath, listenAddr string) error {
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadFromPath(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}
	if listenAddr != "" {
		cfg.ListenAddr = listenAddr
	}

	wmSocket := cfg.SocketPath
	if wmSocket == "" {
		wmSocket, err = aerospace.DefaultSocketPath()
		if err != nil {
			return err
		}
	}

	client := aerospace.NewClient(wmSocket)
	eng := engine.New(cfg, client)

	if err := eng.Connect(false); err != nil {
		// not fatal: the first switch attempt reports the failure and
		// `aeroswipe connect` can re-establish it
		utils.Warn("aerospace daemon unreachable at %s: %v", wmSocket, err)
	}

	touchSocket := cfg.TouchSocketPath
	if touchSocket == "" {
		touchSocket, err = config.DefaultTouchSocketPath()
		if err != nil {
			return err
		}
	}

	source, err := input.NewSocketSource(touchSocket)
	if err != nil {
		return fmt.Errorf("failed to bind touch socket %s: %w", touchSocket, err)
	}
	utils.Info("listening for touch frames on %s", touchSocket)

	token, err := server.LoadToken()
	if err != nil {
		utils.Warn("control-api token unavailable, starting without auth: %v", err)
	}

	srv := server.New(eng, token)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	registerCleanup(func() {
		srv.Shutdown()
		cancel()
		_ = source.Close()
		_ = eng.Close()
	})

	go func() {
		if err := source.Run(ctx); err != nil {
			utils.Warn("touch source stopped: %v", err)
		}
	}()
	go func() {
		_ = eng.Run(ctx, source.Frames())
	}()

	err = srv.Start(cfg.ListenAddr)
	cancel()
	_ = source.Close()
	_ = eng.Close()
	return err
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(killCmd)

	startCmd.Flags().BoolP("daemon", "d", false, "Run in daemon mode (background)")
	startCmd.Flags().String("config", "", "Path to config file (default: ~/.config/aeroswipe/config.ini)")
	startCmd.Flags().String("listen", "", fmt.Sprintf("Control API address (default: %s)", config.DefaultListenAddr))

	killCmd.Flags().String("listen", "", "Address of the daemon to stop")
}
