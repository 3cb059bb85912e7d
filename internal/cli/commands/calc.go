package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/leapstack-labs/cmpfill/internal/cli/output"
	"github.com/leapstack-labs/cmpfill/pkg/calc"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// CalcOptions holds options for the calc command.
type CalcOptions struct {
	Tokens bool
}

// CalcResult is the JSON view of one evaluation.
type CalcResult struct {
	Expression string       `json:"expression"`
	Value      *calc.Number `json:"value,omitempty"`
	Integer    bool         `json:"integer"`
	Tokens     []string     `json:"tokens,omitempty"`
	Error      string       `json:"error,omitempty"`
}

// NewCalcCommand creates the calc command.
func NewCalcCommand() *cobra.Command {
	opts := &CalcOptions{}

	cmd := &cobra.Command{
		Use:   "calc [expression]",
		Short: "Evaluate an arithmetic expression",
		Long: `Evaluate an expression with the same rules used for report values:
digits, '.', + - * / and parentheses. Whitespace is ignored.

Without an argument, calc starts an interactive prompt on a terminal and
evaluates one expression per line when input is piped.`,
		Example: `  # One-off evaluation
  cmpfill calc "191+0+0"

  # Show how an expression is tokenized
  cmpfill calc --tokens "(2+3)*4"

  # Evaluate a file of expressions
  cmpfill calc < formulas.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return runCalc(cmd, strings.Join(args, " "), opts)
			}
			if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) { //nolint:gosec // file descriptors fit in int
				return runCalcREPL(cmd, opts)
			}
			return runCalcLines(cmd, cmd.InOrStdin(), opts)
		},
	}

	cmd.Flags().BoolVar(&opts.Tokens, "tokens", false, "Show the tokens of the expression")

	return cmd
}

func runCalc(cmd *cobra.Command, expr string, opts *CalcOptions) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer

	res, evalErr := evaluateExpression(expr, opts.Tokens)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		if err := r.JSON(res); err != nil {
			return err
		}
	case output.ModeMarkdown:
		if res.Error == "" {
			r.Println(output.FormatKeyValue("Expression", "`"+expr+"`"))
			r.Println(output.FormatKeyValue("Result", res.Value.String()))
		}
		if opts.Tokens {
			r.Println(output.FormatKeyValue("Tokens", strings.Join(res.Tokens, " ")))
		}
	default:
		if opts.Tokens {
			r.Muted(strings.Join(res.Tokens, " "))
		}
		if res.Error == "" {
			r.Println(r.Styles().Value.Render(res.Value.String()))
		}
	}

	return evalErr
}

// runCalcLines evaluates one expression per input line. Failures are
// reported inline and do not stop the run.
func runCalcLines(cmd *cobra.Command, in io.Reader, opts *CalcOptions) error {
	cc := NewCommandContext(cmd)
	r := cc.Renderer
	jsonMode := r.EffectiveMode() == output.ModeJSON

	var results []CalcResult
	failed := 0
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		res, err := evaluateExpression(line, opts.Tokens)
		if err != nil {
			failed++
		}
		if jsonMode {
			results = append(results, res)
			continue
		}
		r.Println(formatCalcLine(res))
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read expressions: %w", err)
	}

	if jsonMode {
		if results == nil {
			results = []CalcResult{}
		}
		if err := r.JSON(results); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d expression(s) failed", failed)
	}
	return nil
}

// evaluateExpression evaluates expr and fills the JSON view. The error is
// also recorded in the view.
func evaluateExpression(expr string, withTokens bool) (CalcResult, error) {
	res := CalcResult{Expression: expr}

	if withTokens {
		tokens, err := calc.Tokenize(expr)
		if err == nil {
			for _, tok := range tokens {
				res.Tokens = append(res.Tokens, tok.String())
			}
		}
	}

	n, err := calc.Evaluate(expr)
	if err != nil {
		res.Error = err.Error()
		return res, err
	}
	res.Value = &n
	res.Integer = n.IsInteger()
	return res, nil
}

func formatCalcLine(res CalcResult) string {
	var sb strings.Builder
	sb.WriteString(res.Expression)
	if len(res.Tokens) > 0 {
		sb.WriteString("  [" + strings.Join(res.Tokens, " ") + "]")
	}
	if res.Error != "" {
		sb.WriteString("  error: " + res.Error)
		return sb.String()
	}
	sb.WriteString(" = " + res.Value.String())
	return sb.String()
}
