package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:   "import MODULE",
	Short: "Import a Python module and list its public names",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	// the module must outlive the import
	interp.Start()
	defer interp.Stop()

	m, err := interp.Import(args[0])
	if err != nil {
		printError(cmd, err)
		return err
	}
	defer m.Close()

	names, err := m.Names()
	if err != nil {
		return err
	}

	for _, name := range names {
		fmt.Fprintln(cmd.OutOrStdout(), name)
	}
	return nil
}
