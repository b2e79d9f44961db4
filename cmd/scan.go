package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/karmaloop/internal/engine"
	"github.com/abhisek/karmaloop/internal/progression"
	"github.com/abhisek/karmaloop/internal/questionbank"
	"github.com/abhisek/karmaloop/internal/scan"
	"github.com/abhisek/karmaloop/internal/store"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Run the 20-question neural scan",
	Long: `Run the neural scan without the TUI.

Answers come from repeated --answer id=value flags. Choice questions take the
option tag or its 1-based number; scale questions take 1-5. Without --answer
every question is prompted on stdin, and an empty scale answer means 3.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		pairs, _ := cmd.Flags().GetStringArray("answer")
		given, err := parseAnswers(pairs)
		if err != nil {
			return err
		}

		rt, err := openRuntime(cmd, runtimeOpts{})
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		p, err := runScan(ctx, rt.engine, given, bufio.NewReader(cmd.InOrStdin()), out)
		if err != nil {
			return err
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "SCAN COMPLETE. +%d XP\n\n", p.XPEarned)
		printProfile(out, p, progression.Derive(p))
		return nil
	},
}

func init() {
	scanCmd.Flags().StringArrayP("answer", "a", nil, "Answer as id=value, repeatable (e.g. -a s1=Creative -a s2=4)")
}

// parseAnswers turns id=value pairs into a map. Every id must name a
// catalog question.
func parseAnswers(pairs []string) (map[string]string, error) {
	given := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		id, value, ok := strings.Cut(pair, "=")
		id = strings.TrimSpace(id)
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid --answer %q, want id=value", pair)
		}
		if _, err := questionbank.ByID(id); err != nil {
			return nil, fmt.Errorf("invalid --answer %q: %w", pair, err)
		}
		given[id] = strings.TrimSpace(value)
	}
	return given, nil
}

// resolveValue maps user input to an answer value: option numbers and
// case-insensitive tags become the canonical tag, an empty scale answer
// becomes the display default.
func resolveValue(q questionbank.Question, input string) string {
	input = strings.TrimSpace(input)
	switch q.Kind {
	case questionbank.KindChoice:
		if n, err := strconv.Atoi(input); err == nil && n >= 1 && n <= len(q.Options) {
			return q.Options[n-1].Tag
		}
		for _, opt := range q.Options {
			if strings.EqualFold(opt.Tag, input) {
				return opt.Tag
			}
		}
	case questionbank.KindScalar:
		if input == "" {
			return strconv.Itoa(questionbank.ScalarDisplayDefault)
		}
	}
	return input
}

// runScan answers every question in order. With answers given, a missing
// or rejected answer aborts the scan; otherwise each question is prompted
// on in until it gets a valid answer.
func runScan(ctx context.Context, eng *engine.Engine, given map[string]string, in *bufio.Reader, out io.Writer) (*store.ProfileRecord, error) {
	interactive := len(given) == 0
	q := eng.StartScan()
	total := questionbank.Len()

	for {
		var value string
		if interactive {
			askQuestion(out, q, total)
			line, err := in.ReadString('\n')
			if err != nil && (!errors.Is(err, io.EOF) || line == "") {
				eng.AbandonScan()
				return nil, fmt.Errorf("scan aborted at %s: input closed", q.ID)
			}
			value = resolveValue(q, line)
		} else {
			raw, ok := given[q.ID]
			if !ok {
				eng.AbandonScan()
				return nil, fmt.Errorf("missing --answer for %s", q.ID)
			}
			value = resolveValue(q, raw)
		}

		step, err := eng.SubmitAnswer(ctx, q.ID, value)
		var invalid *scan.InvalidAnswerError
		if errors.As(err, &invalid) && interactive {
			fmt.Fprintf(out, "  ✗ %s\n", invalid.Reason)
			continue
		}
		if err != nil {
			eng.AbandonScan()
			return nil, err
		}
		if step.Done() {
			return step.Profile, nil
		}
		q = *step.Next
	}
}

func askQuestion(out io.Writer, q questionbank.Question, total int) {
	fmt.Fprintf(out, "\n[%02d/%02d] %s\n%s\n", questionbank.IndexOf(q.ID)+1, total,
		strings.ToUpper(questionbank.SectorDisplayName(q.Sector)), q.Prompt)
	if q.Kind == questionbank.KindScalar {
		fmt.Fprintf(out, "  %d (disagree) .. %d (agree) [%d]: ", q.Min, q.Max, questionbank.ScalarDisplayDefault)
		return
	}
	for i, opt := range q.Options {
		fmt.Fprintf(out, "  %d) %s\n", i+1, opt.Label)
	}
	fmt.Fprint(out, "> ")
}
