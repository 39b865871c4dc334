package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aeroswipe/aeroswipe/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage the control API auth token",
	Long:  `The token is stored in the system keychain and sent as a bearer token by the CLI.`,
}

var tokenGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a new token and store it in the keychain",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := server.GenerateToken()
		if err != nil {
			return fmt.Errorf("failed to generate token: %w", err)
		}
		fmt.Println(token)
		fmt.Println("restart the daemon for the new token to take effect")
		return nil
	},
}

var tokenShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the stored token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		token, err := server.LoadToken()
		if err != nil {
			return err
		}
		if token == "" {
			fmt.Println("no token set; the control API accepts unauthenticated requests")
			return nil
		}
		fmt.Println(token)
		return nil
	},
}

var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := server.ClearToken(); err != nil {
			return err
		}
		fmt.Println("token cleared")
		return nil
	},
}

func init() {
	tokenCmd.AddCommand(tokenGenerateCmd, tokenShowCmd, tokenClearCmd)
	rootCmd.AddCommand(tokenCmd)
}
