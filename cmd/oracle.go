package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/karmaloop/internal/engine"
	"github.com/abhisek/karmaloop/internal/llm"
	"github.com/abhisek/karmaloop/internal/oracle"
	"github.com/abhisek/karmaloop/internal/progression"
	"github.com/abhisek/karmaloop/internal/screens/interview"
)

var oracleCmd = &cobra.Command{
	Use:   "oracle [message]",
	Short: "Consult the Oracle advisory chat",
	Long: `Send one message to the Oracle, or chat line by line on stdin when no
message is given. The first visit awards the advisory bonus.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, runtimeOpts{llm: true})
		if err != nil {
			return err
		}
		defer rt.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		ledger, err := rt.engine.Ledger(ctx)
		if err != nil {
			return err
		}
		if !ledger.OracleAccess {
			return fmt.Errorf("oracle locked: reach %d XP by completing a scan", progression.OracleAccessXP)
		}
		if err := visitAdvisory(ctx, rt.engine, out); err != nil {
			return err
		}

		greeting, err := rt.engine.Greeting(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "ORACLE: %s\n", greeting)

		if len(args) > 0 {
			_, err := ask(ctx, rt.engine, rt.cfg.OracleTimeout, nil, strings.Join(args, " "), out)
			return err
		}
		return chat(ctx, rt.engine, rt.cfg.OracleTimeout, bufio.NewScanner(cmd.InOrStdin()), out)
	},
}

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Open the interview simulator",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := openRuntime(cmd, runtimeOpts{})
		if err != nil {
			return err
		}
		defer rt.Close()

		outcome, err := rt.engine.VisitInterviewSurface(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if outcome.Applied {
			fmt.Fprintln(out, outcome.Bonus.Announcement)
			fmt.Fprintln(out)
		}
		for i, p := range interview.Prompts(outcome.Profile) {
			fmt.Fprintf(out, "%d. %s\n", i+1, p)
		}
		return nil
	},
}

func visitAdvisory(ctx context.Context, eng *engine.Engine, out io.Writer) error {
	outcome, err := eng.VisitAdvisorySurface(ctx)
	if err != nil {
		return err
	}
	if outcome.Applied {
		fmt.Fprintln(out, outcome.Bonus.Announcement)
	}
	if !eng.OracleOnline() {
		fmt.Fprintln(out, "(diagnostic mode: no LLM provider configured)")
	}
	return nil
}

// ask sends one message and prints the reply. It returns the history
// extended with the exchange.
func ask(ctx context.Context, eng *engine.Engine, timeout time.Duration, history []llm.Message, text string, out io.Writer) ([]llm.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reply, err := eng.Ask(ctx, history, text)
	if err != nil {
		return history, err
	}
	fmt.Fprintf(out, "ORACLE: %s\n", reply.Text)
	return append(history,
		llm.Message{Role: llm.RoleUser, Content: text},
		llm.Message{Role: llm.RoleAssistant, Content: reply.Text},
	), nil
}

// chat reads one message per line until EOF or "exit".
func chat(ctx context.Context, eng *engine.Engine, timeout time.Duration, in *bufio.Scanner, out io.Writer) error {
	var history []llm.Message
	for {
		fmt.Fprint(out, "> ")
		if !in.Scan() {
			fmt.Fprintln(out)
			return in.Err()
		}
		text := strings.TrimSpace(in.Text())
		switch text {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		var err error
		history, err = ask(ctx, eng, timeout, history, text, out)
		if errors.Is(err, oracle.ErrEmptyMessage) {
			continue
		}
		if err != nil {
			return err
		}
	}
}
