package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var callCmd = &cobra.Command{
	Use:   "call MODULE FUNC [ARG...]",
	Short: "Call a Python function",
	Long: `Call function FUNC of Python module MODULE and print the result as JSON.

Arguments are decoded as JSON values, anything that is not valid JSON is
passed as a string. Use "builtins" as MODULE for builtin functions:

  opython call builtins len '[1,2,3]'
  opython call os.path join /tmp file.txt`,
	Args: cobra.MinimumNArgs(2),
	RunE: runCall,
}

func init() {
	rootCmd.AddCommand(callCmd)
}

func runCall(cmd *cobra.Command, args []string) error {
	// opaque results are printed after the call returns
	interp.Start()
	defer interp.Stop()

	result, err := interp.CallWithModule(args[0], args[1], parseArgs(args[2:])...)
	if err != nil {
		printError(cmd, err)
		return err
	}

	out, err := formatResult(result)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), out)
	return nil
}
