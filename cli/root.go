package cli

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/spf13/cobra"

	"github.com/aeroswipe/aeroswipe/server"
	"github.com/aeroswipe/aeroswipe/utils"
)

var verbose bool

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "aeroswipe",
	Short: "Trackpad swipe gestures for AeroSpace workspaces",
	Long:  `A background daemon that turns three-finger trackpad swipes into AeroSpace workspace switches`,
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	Version:       server.Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func initConfig() {
	utils.SetVerbose(verbose)
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// Execute runs the root command
func Execute() error {
	// enable microseconds in logs
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	return rootCmd.Execute()
}

var (
	cleanupMu  sync.Mutex
	cleanupFns []func()
)

// registerCleanup queues teardown work for signal-driven shutdown.
func registerCleanup(fn func()) {
	cleanupMu.Lock()
	defer cleanupMu.Unlock()
	cleanupFns = append(cleanupFns, fn)
}

// Cleanup runs the registered teardown work. main calls it when the
// process receives SIGINT/SIGTERM.
func Cleanup() {
	cleanupMu.Lock()
	fns := cleanupFns
	cleanupFns = nil
	cleanupMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}

// printJson is a helper function to print JSON responses
func printJson(data interface{}) {
	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(string(jsonData))
}
