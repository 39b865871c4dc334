package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/aeroswipe/aeroswipe/cli"
	"github.com/aeroswipe/aeroswipe/utils"
)

func main() {
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	done := make(chan error, 1)
	go func() {
		done <- cli.Execute()
	}()

	select {
	case err := <-done:
		if err != nil {
			utils.Error("%v", err)
			os.Exit(1)
		}
	case s := <-sig:
		utils.Info("received %s, shutting down", s)
		cli.Cleanup()
		os.Exit(0)
	}
}
