package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/karmaloop/internal/insight"
	"github.com/abhisek/karmaloop/internal/progression"
	"github.com/abhisek/karmaloop/internal/questionbank"
	"github.com/abhisek/karmaloop/internal/store"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Show the SWOT profile, level, XP and badges",
	RunE: func(cmd *cobra.Command, args []string) error {
		detail, _ := cmd.Flags().GetString("detail")
		var sector questionbank.Sector
		if detail != "" {
			s, err := insight.ParseSector(detail)
			if err != nil {
				return err
			}
			sector = s
		}

		rt, err := openRuntime(cmd, runtimeOpts{})
		if err != nil {
			return err
		}
		defer rt.Close()

		p, err := rt.engine.LatestProfile(cmd.Context())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if p == nil {
			fmt.Fprintln(out, "No neural profile yet. Run `karmaloop scan` first.")
			printBadges(out, progression.Derive(nil))
			return nil
		}

		if sector != "" {
			c, err := insight.For(*p, sector)
			if err != nil {
				return err
			}
			printContent(out, c)
			return nil
		}
		printProfile(out, p, progression.Derive(p))
		return nil
	},
}

func init() {
	ledgerCmd.Flags().StringP("detail", "d", "", "Show the analysis for one sector (strength, weakness, opportunity, threat)")
}

func printProfile(out io.Writer, p *store.ProfileRecord, l progression.Ledger) {
	for _, q := range insight.Quadrants(*p) {
		fmt.Fprintf(out, "%-12s %s\n", strings.ToUpper(string(q.Sector)), q.Title)
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "LEVEL %d  //  %d XP", l.Level, l.XP)
	if next := progression.NextThreshold(l.XP); next > 0 {
		fmt.Fprintf(out, "  (next unlock at %d)", next)
	}
	fmt.Fprintln(out)
	if l.OracleAccess {
		fmt.Fprintln(out, "Oracle access: granted")
	} else {
		fmt.Fprintf(out, "Oracle access: locked until %d XP\n", progression.OracleAccessXP)
	}
	fmt.Fprintf(out, "Scanned at: %s\n\n", p.Timestamp)
	printBadges(out, l)
}

func printBadges(out io.Writer, l progression.Ledger) {
	fmt.Fprintf(out, "BADGES %d/%d\n", l.UnlockedCount(), len(l.Badges))
	for _, b := range l.Badges {
		fmt.Fprintf(out, "  %s %s\n", b.Icon, b.Title)
	}
}

func printContent(out io.Writer, c insight.Content) {
	fmt.Fprintln(out, c.Heading)
	fmt.Fprintln(out, strings.Repeat("─", len([]rune(c.Heading))))
	fmt.Fprintln(out, c.Text())
	fmt.Fprintln(out)
	fmt.Fprintln(out, "RESOURCES")
	for _, r := range c.Resources {
		switch r.Kind {
		case insight.ResourceJob:
			fmt.Fprintf(out, "  [job]    %s, %s, %s\n", r.Title, r.Subtitle, r.Location)
		case insight.ResourceMentor:
			fmt.Fprintf(out, "  [mentor] %s %s, %s\n", r.Icon, r.Title, r.Subtitle)
		default:
			fmt.Fprintf(out, "  [%s]  %s\n", r.Kind, r.Title)
		}
	}
}
