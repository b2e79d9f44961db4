package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/spf13/cobra"

	"github.com/abhisek/karmaloop/internal/config"
	"github.com/abhisek/karmaloop/internal/llm"
	"github.com/abhisek/karmaloop/internal/store"
)

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the Oracle's recorded model calls",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent model calls, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		events, err := s.EventRepo().QueryLLMEvents(cmd.Context(), store.QueryOpts{Limit: limit, Purpose: purpose})
		if err != nil {
			return fmt.Errorf("query llm events: %w", err)
		}
		renderEvents(cmd.OutOrStdout(), events)
		return nil
	},
}

var llmShowCmd = &cobra.Command{
	Use:     "show <id>",
	Aliases: []string{"view"},
	Short:   "Print one call's transcript and answer",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("event id must be a number, got %q", args[0])
		}

		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		e, err := s.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get llm event: %w", err)
		}
		if e == nil {
			return fmt.Errorf("no llm event with id %d", id)
		}
		renderEvent(cmd.OutOrStdout(), e)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Token usage per purpose and estimated cost per model",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openEventStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		byPurpose, err := s.EventRepo().LLMUsage(ctx, store.UsageByPurpose)
		if err != nil {
			return fmt.Errorf("usage by purpose: %w", err)
		}
		byModel, err := s.EventRepo().LLMUsage(ctx, store.UsageByModel)
		if err != nil {
			return fmt.Errorf("usage by model: %w", err)
		}
		renderUsage(cmd.OutOrStdout(), byPurpose, byModel)
		return nil
	},
}

func newTable(headers ...string) *table.Table {
	return table.New().Border(lipgloss.NormalBorder()).Headers(headers...)
}

func renderEvents(w io.Writer, events []store.LLMEventRecord) {
	if len(events) == 0 {
		fmt.Fprintln(w, "NO ORACLE TRAFFIC RECORDED.")
		return
	}
	t := newTable("ID", "TIME", "PURPOSE", "MODEL", "IN", "OUT", "MS", "OK")
	for _, e := range events {
		ok := "✓"
		if !e.Success {
			ok = "✗"
		}
		t.Row(
			strconv.Itoa(e.ID),
			e.Timestamp.Local().Format("2006-01-02 15:04:05"),
			e.Purpose,
			clip(e.Model, 28),
			strconv.Itoa(e.InputTokens),
			strconv.Itoa(e.OutputTokens),
			strconv.FormatInt(e.LatencyMs, 10),
			ok,
		)
	}
	fmt.Fprintln(w, t.String())
}

func renderEvent(w io.Writer, e *store.LLMEventRecord) {
	fmt.Fprintf(w, "EVENT     #%d  %s\n", e.ID, e.Timestamp.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "VENDOR    %s / %s\n", e.Provider, e.Model)
	fmt.Fprintf(w, "PURPOSE   %s\n", e.Purpose)
	fmt.Fprintf(w, "TOKENS    %d in, %d out\n", e.InputTokens, e.OutputTokens)
	fmt.Fprintf(w, "LATENCY   %dms\n", e.LatencyMs)
	if e.Success {
		fmt.Fprintln(w, "STATUS    ok")
	} else {
		fmt.Fprintf(w, "STATUS    failed: %s\n", e.ErrorMessage)
	}

	rule := strings.Repeat("─", 60)
	for _, part := range []struct{ title, body string }{
		{"REQUEST", e.RequestBody},
		{"RESPONSE", e.ResponseBody},
	} {
		body := part.body
		if body == "" {
			body = "(not captured)"
		}
		fmt.Fprintf(w, "\n%s\n%s\n%s\n%s\n", rule, part.title, rule, strings.TrimRight(body, "\n"))
	}
}

func renderUsage(w io.Writer, byPurpose, byModel []store.LLMUsageRecord) {
	if len(byPurpose) == 0 {
		fmt.Fprintln(w, "NO ORACLE TRAFFIC RECORDED.")
		return
	}

	purposes := newTable("PURPOSE", "CALLS", "INPUT", "OUTPUT", "TOTAL", "AVG MS")
	var calls, in, out int
	for _, u := range byPurpose {
		purposes.Row(u.Key, strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens), strconv.Itoa(u.OutputTokens),
			strconv.Itoa(u.InputTokens+u.OutputTokens), strconv.FormatInt(u.AvgLatencyMs, 10))
		calls, in, out = calls+u.Calls, in+u.InputTokens, out+u.OutputTokens
	}
	purposes.Row("TOTAL", strconv.Itoa(calls), strconv.Itoa(in), strconv.Itoa(out), strconv.Itoa(in+out), "")
	fmt.Fprintln(w, "USAGE BY PURPOSE")
	fmt.Fprintln(w, purposes.String())

	if len(byModel) == 0 {
		return
	}
	models := newTable("MODEL", "CALLS", "INPUT", "OUTPUT", "COST")
	var spent float64
	var unpriced []string
	for _, u := range byModel {
		cost := "?"
		if price := llm.LookupCost(u.Key); price != nil {
			c := price.Cost(u.InputTokens, u.OutputTokens)
			spent += c
			cost = formatCost(c)
		} else {
			unpriced = append(unpriced, u.Key)
		}
		models.Row(clip(u.Key, 32), strconv.Itoa(u.Calls), strconv.Itoa(u.InputTokens), strconv.Itoa(u.OutputTokens), cost)
	}
	total := "TOTAL"
	if len(unpriced) > 0 {
		total = "TOTAL (partial)"
	}
	models.Row(total, "", "", "", formatCost(spent))
	fmt.Fprintln(w, "\nESTIMATED COST (USD)")
	fmt.Fprintln(w, models.String())
	if len(unpriced) > 0 {
		fmt.Fprintf(w, "no pricing for: %s\n", strings.Join(unpriced, ", "))
	}
}

// openEventStore opens the database without booting the engine.
func openEventStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	path, err := resolveDBPath(cmd, cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	return store.Open(path)
}

func clip(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "…"
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "number of calls to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "only calls with this purpose, e.g. oracle")

	llmCmd.AddCommand(llmListCmd, llmShowCmd, llmStatsCmd)
}
