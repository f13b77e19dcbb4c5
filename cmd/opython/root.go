package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"strings"

	"github.com/oruby/opython"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "opython",
	Short: "Call into embedded CPython from the command line",
	Long: `opython - Embedded CPython driven from Go.

Import Python modules, call their functions with JSON encoded arguments and
print results as JSON. The interpreter is configured with a YAML file
(--config), extra module directories (--path) and the log level.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// interp is the interpreter configured by the persistent flags
var interp *opython.Interpreter

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "YAML config file")
	rootCmd.PersistentFlags().StringArray("path", nil, "Directory appended to sys.path (can be repeated)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
}

func loadConfig(cmd *cobra.Command) (*opython.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	paths, _ := cmd.Flags().GetStringArray("path")
	level, _ := cmd.Flags().GetString("log-level")

	cfg := opython.DefaultConfig()
	if file != "" {
		var err error
		if cfg, err = opython.LoadConfig(file); err != nil {
			return nil, err
		}
	}

	cfg.Path = append(cfg.Path, paths...)
	if level != "" {
		cfg.LogLevel = level
	}
	return cfg, cfg.Validate()
}

func setup(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: cfg.Level()}))
	slog.SetDefault(logger)
	opython.SetLogger(logger)

	interp, err = opython.New(cfg)
	return err
}

// parseArgs decodes every argument as JSON, falling back to plain string
func parseArgs(args []string) []interface{} {
	values := make([]interface{}, len(args))
	for n, arg := range args {
		var v interface{}
		if err := json.Unmarshal([]byte(arg), &v); err != nil {
			v = arg
		}
		values[n] = normalize(v)
	}
	return values
}

// normalize turns whole JSON numbers into ints, so Python gets int not float
func normalize(v interface{}) interface{} {
	switch x := v.(type) {
	case float64:
		if x == float64(int64(x)) {
			return int64(x)
		}
	case []interface{}:
		for n := range x {
			x[n] = normalize(x[n])
		}
	case map[string]interface{}:
		for k := range x {
			x[k] = normalize(x[k])
		}
	}
	return v
}

// printable converts a call result to a value encoding/json accepts
func printable(v interface{}) interface{} {
	switch x := v.(type) {
	case *opython.Object:
		return x.String()
	case opython.Resolver:
		return x.PyObject().String()
	case *big.Int:
		return json.Number(x.String())
	case complex128:
		return fmt.Sprint(x)
	case []byte:
		return string(x)
	case []interface{}:
		out := make([]interface{}, len(x))
		for n := range x {
			out[n] = printable(x[n])
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(x))
		for k := range x {
			out[k] = printable(x[k])
		}
		return out
	case map[interface{}]interface{}:
		out := make(map[string]interface{}, len(x))
		for k := range x {
			out[fmt.Sprint(k)] = printable(x[k])
		}
		return out
	}
	return v
}

func formatResult(v interface{}) (string, error) {
	data, err := json.Marshal(printable(v))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// parseLine splits "MODULE FUNC [ARG...]"
func parseLine(line string) (string, string, []interface{}, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return "", "", nil, fmt.Errorf("%w: expected MODULE FUNC [ARG...]", opython.ErrArity)
	}
	return fields[0], fields[1], parseArgs(fields[2:]), nil
}

func printError(cmd *cobra.Command, err error) {
	var perr *opython.Error
	if errors.As(err, &perr) && perr.Traceback != "" {
		fmt.Fprint(cmd.ErrOrStderr(), perr.Traceback)
		return
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
}
