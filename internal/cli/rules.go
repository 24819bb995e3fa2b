package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"inclint/internal/config"
)

var flagRulesJSON bool

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the active rule set",
	Long:  "List the rules that would apply to a scan: built-in defaults merged with the repository rule file.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}

		set, _, err := loadRuleSet(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		active := set.Active()

		if flagRulesJSON {
			data, err := json.MarshalIndent(active, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintln(os.Stdout, string(data))
			return nil
		}

		tw := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "PATTERN\tLEVEL\tMODE\tSUGGESTIONS")
		for _, r := range active {
			mode := string(r.Mode)
			if mode == "" {
				mode = "word"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.Pattern, r.Level, mode, strings.Join(r.Suggestions, ", "))
		}
		return tw.Flush()
	},
}

func init() {
	rulesCmd.Flags().BoolVar(&flagRulesJSON, "json", false, "Output rules as JSON")
	rulesCmd.Flags().StringVar(&flagRules, "rules", "", "Rule file path")
}
