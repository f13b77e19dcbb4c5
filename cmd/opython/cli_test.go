package main

import (
	"bytes"
	"errors"
	"math/big"
	"strings"
	"testing"

	"github.com/oruby/opython"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func executeCommand(root *cobra.Command, args ...string) (string, error) {
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestCLIHelp(t *testing.T) {
	output, err := executeCommand(rootCmd, "--help")
	require.NoError(t, err)

	for _, phrase := range []string{"opython", "call", "import", "repl", "version", "schema", "--config", "--path", "--log-level"} {
		assert.Contains(t, output, phrase)
	}
}

func TestCLICallHelp(t *testing.T) {
	output, err := executeCommand(rootCmd, "call", "--help")
	require.NoError(t, err)
	assert.Contains(t, output, "MODULE FUNC")
	assert.Contains(t, output, "builtins")
}

func TestCLIReplHelp(t *testing.T) {
	output, err := executeCommand(rootCmd, "repl", "--help")
	require.NoError(t, err)

	for _, phrase := range []string{"--history", "Command history", "Line editing"} {
		assert.Contains(t, output, phrase)
	}
}

func TestCLISchema(t *testing.T) {
	output, err := executeCommand(rootCmd, "schema")
	require.NoError(t, err)
	assert.Contains(t, output, `"max_depth"`)
	assert.Contains(t, output, `"preload"`)
}

func TestCLIBadLogLevel(t *testing.T) {
	_, err := executeCommand(rootCmd, "version", "--log-level", "loud")
	assert.Error(t, err)
	rootCmd.PersistentFlags().Set("log-level", "")
}

func TestParseArgs(t *testing.T) {
	args := parseArgs([]string{"1", "2.5", "text", `[1,"a"]`, `{"k":true}`, "null"})
	assert.Equal(t, []interface{}{
		int64(1),
		2.5,
		"text",
		[]interface{}{int64(1), "a"},
		map[string]interface{}{"k": true},
		nil,
	}, args)
}

func TestParseLine(t *testing.T) {
	module, fn, args, err := parseLine("builtins max 1 5 3")
	require.NoError(t, err)
	assert.Equal(t, "builtins", module)
	assert.Equal(t, "max", fn)
	assert.Equal(t, []interface{}{int64(1), int64(5), int64(3)}, args)

	for _, line := range []string{"", "builtins"} {
		_, _, _, err := parseLine(line)
		assert.True(t, errors.Is(err, opython.ErrArity), "line %q", line)
	}
}

func TestFormatResult(t *testing.T) {
	n, _ := new(big.Int).SetString("123456789012345678901234567890", 10)

	tests := []struct {
		value interface{}
		want  string
	}{
		{nil, "null"},
		{int64(3), "3"},
		{[]interface{}{"a", true}, `["a",true]`},
		{map[interface{}]interface{}{1: "one"}, `{"1":"one"}`},
		{[]byte("raw"), `"raw"`},
		{n, "123456789012345678901234567890"},
	}

	for _, tc := range tests {
		got, err := formatResult(tc.value)
		require.NoError(t, err)
		assert.Equal(t, tc.want, strings.TrimSpace(got))
	}
}

func TestCLICall(t *testing.T) {
	output, err := executeCommand(rootCmd, "call", "builtins", "len", "[1,2,3]", "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, "3", strings.TrimSpace(output))
}

func TestCLICallError(t *testing.T) {
	output, err := executeCommand(rootCmd, "call", "builtins", "no_such_function", "--log-level", "error")
	assert.Error(t, err)
	assert.Contains(t, output, "no_such_function")
}

func TestCLIImport(t *testing.T) {
	output, err := executeCommand(rootCmd, "import", "json", "--log-level", "error")
	require.NoError(t, err)

	for _, name := range []string{"dumps", "loads", "JSONDecoder"} {
		assert.Contains(t, output, name)
	}
	assert.NotContains(t, output, "stale")
}
