package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aeroswipe/aeroswipe/config"
	"github.com/aeroswipe/aeroswipe/daemon"
	"github.com/aeroswipe/aeroswipe/engine"
	"github.com/aeroswipe/aeroswipe/server"
)

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Switch to the next workspace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return trigger(cmd, "trigger_next")
	},
}

var prevCmd = &cobra.Command{
	Use:   "prev",
	Short: "Switch to the previous workspace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return trigger(cmd, "trigger_previous")
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon status and effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, token, err := controlTarget(cmd)
		if err != nil {
			return err
		}

		result, err := daemon.Call(addr, token, "status", nil)
		if err != nil {
			return err
		}

		var status engine.Status
		if err := json.Unmarshal(result, &status); err != nil {
			return fmt.Errorf("unexpected status payload: %w", err)
		}
		printJson(status)
		return nil
	},
}

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "(Re)connect the daemon to the AeroSpace socket",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, token, err := controlTarget(cmd)
		if err != nil {
			return err
		}

		force, _ := cmd.Flags().GetBool("force")
		_, err = daemon.Call(addr, token, "wm_connect", map[string]bool{"force": force})
		if err != nil {
			return err
		}

		fmt.Println("connected")
		return nil
	},
}

// trigger sends one switch request to the running daemon.
func trigger(cmd *cobra.Command, method string) error {
	addr, token, err := controlTarget(cmd)
	if err != nil {
		return err
	}

	if _, err := daemon.Call(addr, token, method, nil); err != nil {
		return err
	}
	return nil
}

// controlTarget resolves the control API address and auth token for
// commands that talk to a running daemon.
func controlTarget(cmd *cobra.Command) (string, string, error) {
	addr, _ := cmd.Flags().GetString("listen")
	if addr == "" {
		cfg, err := config.Load()
		if err != nil {
			return "", "", err
		}
		addr = cfg.ListenAddr
	}

	token, err := server.LoadToken()
	if err != nil {
		return "", "", err
	}
	return addr, token, nil
}

func init() {
	rootCmd.AddCommand(nextCmd, prevCmd, statusCmd, connectCmd)

	for _, cmd := range []*cobra.Command{nextCmd, prevCmd, statusCmd, connectCmd} {
		cmd.Flags().String("listen", "", "Address of the running daemon")
	}
	connectCmd.Flags().Bool("force", false, "Tear down and re-establish the connection")
}
