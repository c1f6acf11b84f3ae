package main

import (
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"strpred/internal/scan"
)

func newScanCmd(a *app, defaultJobs int) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan <glob>...",
		Short: "Count word classes and statements in model files",
		Long: `Scan files matching the given glob patterns ("**" recurses) and report,
per file, how many words are numbers, identifiers, reserved words or other
tokens. Text after '#' is ignored. The first word of each line is counted as
a statement; --prefix restricts that count to statements with the prefix.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix, _ := cmd.Flags().GetString("prefix")
			fold, _ := cmd.Flags().GetBool("fold")
			jobs, _ := cmd.Flags().GetInt("jobs")
			showStatements, _ := cmd.Flags().GetBool("statements")

			paths, err := scan.Files(args)
			if err != nil {
				return err
			}

			s := scan.New(scan.Options{Prefix: prefix, Fold: fold, Jobs: jobs}, a.logger)
			reports, err := s.Run(cmd.Context(), paths)
			if err != nil {
				return err
			}

			p := newPrinter(outputFormat(cmd), cmd.OutOrStdout())
			if p.format == "json" {
				return p.json(reports)
			}
			if showStatements {
				p.table([]string{"PATH", "STATEMENT", "COUNT"}, statementRows(reports))
				return nil
			}
			p.table([]string{"PATH", "LINES", "WORDS", "NUMBERS", "IDENTIFIERS", "RESERVED", "OTHER", "MATCHED"}, reportRows(reports))
			return nil
		},
	}

	cmd.Flags().String("prefix", "", "only count statements starting with this prefix")
	cmd.Flags().Bool("fold", false, "match --prefix ignoring ASCII case")
	cmd.Flags().Int("jobs", defaultJobs, "files scanned concurrently")
	cmd.Flags().Bool("statements", false, "list statement counts instead of word classes")
	return cmd
}

func reportRows(reports []scan.Report) [][]string {
	rows := make([][]string, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, []string{
			r.Path,
			strconv.Itoa(r.Lines),
			strconv.Itoa(r.Words),
			strconv.Itoa(r.Numbers),
			strconv.Itoa(r.Identifiers),
			strconv.Itoa(r.Reserved),
			strconv.Itoa(r.Other),
			strconv.Itoa(r.Matched),
		})
	}
	return rows
}

// statementRows lists statements per file, most frequent first, ties by name.
func statementRows(reports []scan.Report) [][]string {
	var rows [][]string
	for _, r := range reports {
		names := make([]string, 0, len(r.Statements))
		for name := range r.Statements {
			names = append(names, name)
		}
		sort.Slice(names, func(i, j int) bool {
			ci, cj := r.Statements[names[i]], r.Statements[names[j]]
			if ci != cj {
				return ci > cj
			}
			return names[i] < names[j]
		})
		for _, name := range names {
			rows = append(rows, []string{r.Path, name, strconv.Itoa(r.Statements[name])})
		}
	}
	return rows
}
