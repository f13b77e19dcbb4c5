package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version of the embedded Python",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := interp.Version()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Python", v)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
