package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Interactive loop calling Python functions",
	Long: `Start an interactive loop. Every line is a call:

  MODULE FUNC [ARG...]

Arguments are decoded like for the call command. The interpreter keeps
running between lines, so imported modules stay loaded.

Features on a terminal:
  - Command history (up/down arrows)
  - Line editing (left/right, backspace, delete)
  - History search (Ctrl+R)

Type 'exit' or 'quit' to end the session, or press Ctrl+D.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	replCmd.Flags().String("history", "", "History file path (default: ~/.opython_history)")
	rootCmd.AddCommand(replCmd)
}

// lineReader is satisfied by readline and by plain line scanning of stdin
type lineReader interface {
	Readline() (string, error)
	Close() error
}

type scanReader struct {
	s *bufio.Scanner
}

func (r *scanReader) Readline() (string, error) {
	if !r.s.Scan() {
		if err := r.s.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.s.Text(), nil
}

func (r *scanReader) Close() error { return nil }

func newLineReader(cmd *cobra.Command) (lineReader, bool, error) {
	if f, ok := cmd.InOrStdin().(*os.File); !ok || !term.IsTerminal(int(f.Fd())) {
		return &scanReader{bufio.NewScanner(cmd.InOrStdin())}, false, nil
	}

	historyFile, _ := cmd.Flags().GetString("history")
	if historyFile == "" {
		home, _ := os.UserHomeDir()
		historyFile = filepath.Join(home, ".opython_history")
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:            ">>> ",
		HistoryFile:       historyFile,
		HistoryLimit:      1000,
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		return nil, false, err
	}
	return rl, true, nil
}

func runRepl(cmd *cobra.Command, args []string) error {
	rl, interactive, err := newLineReader(cmd)
	if err != nil {
		return fmt.Errorf("initializing readline: %w", err)
	}
	defer rl.Close()

	// keep modules loaded between lines
	interp.Start()
	defer interp.Stop()

	if interactive {
		v, _ := interp.ShortVersion()
		fmt.Fprintf(cmd.ErrOrStderr(), "opython %s (type 'exit' to quit, Ctrl+D to exit)\n", v)
	}

	out := cmd.OutOrStdout()
	for {
		line, err := rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				continue
			}
			if err == io.EOF {
				if interactive {
					fmt.Fprintln(out)
				}
				return nil
			}
			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if line == "exit" || line == "quit" {
			return nil
		}

		module, fn, fargs, err := parseLine(line)
		if err != nil {
			printError(cmd, err)
			continue
		}

		result, err := interp.CallWithModule(module, fn, fargs...)
		if err != nil {
			printError(cmd, err)
			continue
		}

		s, err := formatResult(result)
		if err != nil {
			printError(cmd, err)
			continue
		}
		fmt.Fprintln(out, s)
	}
}
