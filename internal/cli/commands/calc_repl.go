package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

const calcPrompt = "calc> "

func runCalcREPL(cmd *cobra.Command, opts *CalcOptions) error {
	cc := NewCommandContext(cmd)
	showTokens := opts.Tokens

	// Keep prompt history next to the run history when that directory exists.
	var historyFile string
	if dir := filepath.Dir(cc.Cfg.History.Path); dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			historyFile = filepath.Join(dir, "calc_history")
		}
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          calcPrompt,
		HistoryFile:     historyFile,
		AutoComplete:    newCalcCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize REPL: %w", err)
	}
	defer func() { _ = rl.Close() }()

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(out, "cmpfill calculator")
	_, _ = fmt.Fprintln(out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(out)

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			continue
		}
		if errors.Is(err, io.EOF) {
			break
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ".") {
			if quit := handleCalcDotCommand(cmd, line, &showTokens); quit {
				break
			}
			continue
		}

		res, err := evaluateExpression(line, showTokens)
		if len(res.Tokens) > 0 {
			_, _ = fmt.Fprintln(out, cc.Renderer.Styles().Muted.Render(strings.Join(res.Tokens, " ")))
		}
		if err != nil {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			continue
		}
		_, _ = fmt.Fprintln(out, cc.Renderer.Styles().Value.Render(res.Value.String()))
	}

	return nil
}

// handleCalcDotCommand runs a REPL command and reports whether to quit.
func handleCalcDotCommand(cmd *cobra.Command, line string, showTokens *bool) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printCalcHelp(cmd.OutOrStdout())

	case ".tokens":
		*showTokens = !*showTokens
		state := "off"
		if *showTokens {
			state = "on"
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Token display %s\n", state)

	case ".clear":
		_, _ = fmt.Fprint(cmd.OutOrStdout(), "\033[H\033[2J")

	default:
		_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func printCalcHelp(w io.Writer) {
	help := `
Commands:
  .help           Show this help message
  .tokens         Toggle token display
  .clear          Clear the screen
  .quit / .exit   Exit the calculator

Expressions:
  - Numbers, + - * / and parentheses, e.g. (2+3)*4
  - Unary minus and plus are allowed: -5+10
  - Division by zero is an error
`
	_, _ = fmt.Fprintln(w, help)
}

func newCalcCompleter() *readline.PrefixCompleter {
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".tokens"),
		readline.PcItem(".clear"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}
