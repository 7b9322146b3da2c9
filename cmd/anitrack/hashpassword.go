package cmd

import (
	"fmt"

	"github.com/kerbaras/anitrack/pkg/auth"
	"github.com/spf13/cobra"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password",
	Short: "Print a bcrypt hash to use as the password in the config file",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		plain, err := readSecret(cmd, "New password: ")
		if err != nil {
			return err
		}
		hash, err := auth.HashSecret(plain)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}
