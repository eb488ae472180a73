package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"jobguardian/internal/dataset"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Run one dataset lookup and print the JSON result",
	Long: `Run the same lookups the MCP tools perform, once, and print the result.

Examples:
  job-guardian query esg-hr 台積電 --year 2023
  job-guardian query labor 台灣積體電路 --since 2022 --limit 10`,
}

var queryESGCmd = &cobra.Command{
	Use:   "esg-hr <company>",
	Short: "ESG human-development disclosures",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		q := dataset.ESGQuery{Company: args[0], Limit: intFlag(cmd, "limit")}
		if cmd.Flags().Changed("year") {
			y := intFlag(cmd, "year")
			q.Year = &y
		}
		res, err := build(cfg).datasets.ESGHR(cmd.Context(), q)
		if err != nil {
			return err
		}
		return printJSON(cmd, res)
	},
}

var queryLaborCmd = &cobra.Command{
	Use:   "labor <company>",
	Short: "Labor Standards Act violations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := build(cfg).datasets.LaborViolations(cmd.Context(), violationQuery(cmd, args[0]))
		if err != nil {
			return err
		}
		return printJSON(cmd, res)
	},
}

var queryGECmd = &cobra.Command{
	Use:   "ge <company>",
	Short: "Gender Equality in Employment Act violations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := build(cfg).datasets.GenderEqualityViolations(cmd.Context(), violationQuery(cmd, args[0]))
		if err != nil {
			return err
		}
		return printJSON(cmd, res)
	},
}

func init() {
	queryESGCmd.Flags().Int("year", 0, "report year to match exactly")
	for _, c := range []*cobra.Command{queryLaborCmd, queryGECmd} {
		c.Flags().Int("since", 0, "only announcements in or after this year")
	}
	for _, c := range []*cobra.Command{queryESGCmd, queryLaborCmd, queryGECmd} {
		c.Flags().Int("limit", dataset.DefaultLimit, "maximum number of items")
		queryCmd.AddCommand(c)
	}
	rootCmd.AddCommand(queryCmd)
}

func violationQuery(cmd *cobra.Command, company string) dataset.ViolationQuery {
	q := dataset.ViolationQuery{Company: company, Limit: intFlag(cmd, "limit")}
	if cmd.Flags().Changed("since") {
		y := intFlag(cmd, "since")
		q.SinceYear = &y
	}
	return q
}

// intFlag reads a flag registered in init; a lookup error is a programming bug.
func intFlag(cmd *cobra.Command, name string) int {
	v, err := cmd.Flags().GetInt(name)
	if err != nil {
		panic(fmt.Sprintf("flag %s: %v", name, err))
	}
	return v
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
