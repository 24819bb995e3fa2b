package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"inclint/internal/annotate"
	"inclint/internal/config"
	"inclint/internal/gitctx"
	"inclint/internal/output"
	"inclint/internal/rules"
)

// Shared check flags
var (
	flagPaths        string
	flagExclude      string
	flagContextLines int
	flagMaxDiffBytes int
	flagFormat       string
	flagOut          string
	flagFailOn       string
	flagRules        string
)

func addCheckFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagPaths, "paths", "", "Include file path globs (comma-separated)")
	cmd.Flags().StringVar(&flagExclude, "exclude", "", "Exclude file path globs (comma-separated)")
	cmd.Flags().IntVar(&flagContextLines, "context-lines", 0, "Number of context lines in diff")
	cmd.Flags().IntVar(&flagMaxDiffBytes, "max-diff-bytes", 0, "Maximum diff size in bytes")
	cmd.Flags().StringVar(&flagFormat, "format", "", "Output format (text, json, markdown, sarif)")
	cmd.Flags().StringVar(&flagOut, "out", "", "Output file path (default: stdout)")
	cmd.Flags().StringVar(&flagFailOn, "fail-on", "", "Fail on level threshold (none, notice, warning, failure)")
	cmd.Flags().StringVar(&flagRules, "rules", "", "Rule file path")
}

func buildOverrides() map[string]string {
	m := make(map[string]string)
	if flagFormat != "" {
		m["format"] = flagFormat
	}
	if flagFailOn != "" {
		m["failOn"] = flagFailOn
	}
	if flagContextLines > 0 {
		m["contextLines"] = fmt.Sprintf("%d", flagContextLines)
	}
	if flagMaxDiffBytes > 0 {
		m["maxDiffBytes"] = fmt.Sprintf("%d", flagMaxDiffBytes)
	}
	if flagRules != "" {
		m["rulesFile"] = flagRules
	}
	return m
}

func buildDiffOpts(cfg config.Config) gitctx.DiffOptions {
	opts := gitctx.DiffOptions{
		ContextLines: cfg.ContextLines,
		MaxDiffBytes: cfg.MaxDiffBytes,
		Include:      cfg.Include,
		Exclude:      cfg.Exclude,
	}
	if flagPaths != "" {
		opts.Include = splitComma(flagPaths)
	}
	if flagExclude != "" {
		opts.Exclude = append(opts.Exclude, splitComma(flagExclude)...)
	}
	return opts
}

func splitComma(s string) []string {
	parts := strings.Split(s, ",")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// loadRuleSet resolves the rule file named by cfg and compiles the merged
// rule set. A missing default rule file is not an error; the built-in rules
// still apply. An explicitly requested file must exist.
func loadRuleSet(cfg config.Config) (*rules.Set, []string, error) {
	var ruleCfg rules.Config
	if cfg.RulesFile != "" {
		if _, err := os.Stat(cfg.RulesFile); err == nil {
			loaded, err := rules.LoadFile(cfg.RulesFile)
			if err != nil {
				return nil, nil, err
			}
			ruleCfg = loaded
		} else if flagRules != "" {
			return nil, nil, fmt.Errorf("rule file not found: %s", cfg.RulesFile)
		}
	}

	set, err := rules.BuildSet(ruleCfg)
	if err != nil {
		return nil, nil, err
	}
	return set, ruleCfg.IgnorePaths, nil
}

func runScan(diffRes gitctx.DiffResult, cfg config.Config, gitMs int64) {
	set, ignoreGlobs, err := loadRuleSet(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	report, err := annotate.Run(diffRes, set, ignoreGlobs, gitMs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if err := output.WriteReport(report, cfg.Format, flagOut); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
		exitCode = ExitRuntimeError
		return
	}

	if meetsFailThreshold(report.Summary.Overall, cfg.FailOn) {
		exitCode = ExitFindings
	}
}

// meetsFailThreshold reports whether the aggregate level reaches the
// configured fail-on threshold. "none" (or an off threshold) never fails.
func meetsFailThreshold(overall rules.Level, failOn string) bool {
	if failOn == "" || failOn == "none" {
		return false
	}
	threshold, err := rules.ParseLevel(failOn)
	if err != nil || threshold == rules.Off {
		return false
	}
	return overall >= threshold
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Scan changes for non-inclusive language",
	Long:  "Scan diff added lines for non-inclusive language. Use subcommands to specify what to scan.",
}

var checkUnstagedCmd = &cobra.Command{
	Use:   "unstaged",
	Short: "Scan unstaged changes (working tree vs index)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		start := time.Now()
		diff, err := gitctx.Unstaged(buildDiffOpts(cfg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		runScan(diff, cfg, time.Since(start).Milliseconds())
		return nil
	},
}

var checkStagedCmd = &cobra.Command{
	Use:   "staged",
	Short: "Scan staged changes (index vs HEAD)",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		start := time.Now()
		diff, err := gitctx.Staged(buildDiffOpts(cfg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		runScan(diff, cfg, time.Since(start).Milliseconds())
		return nil
	},
}

var checkCommitCmd = &cobra.Command{
	Use:   "commit <sha>",
	Short: "Scan a specific commit",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		start := time.Now()
		diff, err := gitctx.Commit(args[0], buildDiffOpts(cfg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		runScan(diff, cfg, time.Since(start).Milliseconds())
		return nil
	},
}

var flagMergeBase bool

var checkRangeCmd = &cobra.Command{
	Use:   "range <revRange>",
	Short: "Scan a revision range (e.g., origin/main..HEAD)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}
		start := time.Now()
		diff, err := gitctx.Range(args[0], flagMergeBase, buildDiffOpts(cfg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}
		runScan(diff, cfg, time.Since(start).Milliseconds())
		return nil
	},
}

var checkFileCmd = &cobra.Command{
	Use:   "file <path>",
	Short: "Scan a unified diff read from a file (\"-\" for stdin)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}

		var data []byte
		mode := "file"
		if args[0] == "-" {
			mode = "stdin"
			data, err = io.ReadAll(os.Stdin)
		} else {
			data, err = os.ReadFile(args[0])
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading diff: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		diffRes := gitctx.DiffResult{
			Diff: string(data),
			Mode: mode,
		}
		if mode == "file" {
			diffRes.Range = args[0]
		}
		runScan(diffRes, cfg, 0)
		return nil
	},
}

func init() {
	checkCmd.AddCommand(checkUnstagedCmd)
	checkCmd.AddCommand(checkStagedCmd)
	checkCmd.AddCommand(checkCommitCmd)
	checkCmd.AddCommand(checkRangeCmd)
	checkCmd.AddCommand(checkFileCmd)

	for _, cmd := range []*cobra.Command{
		checkUnstagedCmd,
		checkStagedCmd,
		checkCommitCmd,
		checkRangeCmd,
		checkFileCmd,
	} {
		addCheckFlags(cmd)
	}

	checkRangeCmd.Flags().BoolVar(&flagMergeBase, "merge-base", true, "Use merge base for branch comparisons")
}
