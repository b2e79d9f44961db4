package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/karmaloop/internal/insight"
	"github.com/abhisek/karmaloop/internal/questionbank"
)

var questionsCmd = &cobra.Command{
	Use:   "questions",
	Short: "List the scan question catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		sectorFlag, _ := cmd.Flags().GetString("sector")
		questions := questionbank.All()
		if sectorFlag != "" {
			s, err := insight.ParseSector(sectorFlag)
			if err != nil {
				return err
			}
			questions = questionbank.BySector(s)
		}

		out := cmd.OutOrStdout()
		for _, q := range questions {
			fmt.Fprintf(out, "%-4s %-12s %s\n", q.ID, strings.ToUpper(string(q.Sector)), q.Prompt)
			if q.Kind == questionbank.KindScalar {
				fmt.Fprintf(out, "     scale %d-%d\n", q.Min, q.Max)
				continue
			}
			for i, opt := range q.Options {
				fmt.Fprintf(out, "     %d) %-45s [%s]\n", i+1, opt.Label, opt.Tag)
			}
		}
		return nil
	},
}

func init() {
	questionsCmd.Flags().StringP("sector", "s", "", "Only list one sector")
}
