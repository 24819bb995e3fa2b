package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"inclint/internal/annotate"
	"inclint/internal/cache"
	"inclint/internal/config"
	"inclint/internal/gitctx"
	"inclint/internal/github"
	"inclint/internal/output"
)

var (
	flagGHOwner  string
	flagGHRepo   string
	flagGHDryRun bool
)

var githubCmd = &cobra.Command{
	Use:   "github <pr-number>",
	Short: "Scan a GitHub pull request",
	Long:  "Fetch a PR diff from GitHub, scan it, and publish the annotations as a check run on the PR head commit.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prNumber, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: invalid PR number %q\n", args[0])
			exitCode = ExitUsageError
			return nil
		}

		cfg, err := config.Load(buildOverrides())
		if err != nil {
			return err
		}

		// Detect owner/repo if not provided
		owner, repo := flagGHOwner, flagGHRepo
		if owner == "" || repo == "" {
			detected, detectedRepo, err := github.DetectRepo()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\nUse --owner and --repo flags to specify manually.\n", err)
				exitCode = ExitRuntimeError
				return nil
			}
			if owner == "" {
				owner = detected
			}
			if repo == "" {
				repo = detectedRepo
			}
		}

		ghClient, err := github.NewClient()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitAuthError
			return nil
		}

		ctx := context.Background()

		pr, err := ghClient.GetPR(ctx, owner, repo, prNumber)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		c, err := cache.New(cfg.Cache.Enabled, cfg.Cache.Dir, cfg.Cache.TTLSeconds)
		if err != nil {
			log.Warn().Err(err).Msg("cache unavailable, fetching without it")
			c, _ = cache.New(false, "", 0)
		}

		fetchStart := time.Now()
		key := cache.BuildCacheKey(owner, repo, prNumber, pr.HeadSHA)
		diffText, hit := c.Get(key)
		if !hit {
			fmt.Fprintf(os.Stderr, "Fetching PR #%d from %s/%s...\n", prNumber, owner, repo)
			diffText, err = ghClient.GetPRDiff(ctx, owner, repo, prNumber)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				exitCode = ExitRuntimeError
				return nil
			}
			if err := c.Put(key, diffText); err != nil {
				log.Warn().Err(err).Msg("could not write cache entry")
			}
		}
		fetchMs := time.Since(fetchStart).Milliseconds()

		if diffText == "" {
			fmt.Fprintln(os.Stdout, "PR has no diff — nothing to scan.")
			return nil
		}

		diffRes := gitctx.DiffResult{
			Diff:  diffText,
			Mode:  "github-pr",
			Range: fmt.Sprintf("#%d", prNumber),
			Repo: gitctx.RepoMeta{
				Root: fmt.Sprintf("%s/%s", owner, repo),
				Head: pr.HeadSHA,
			},
		}

		set, ignoreGlobs, err := loadRuleSet(cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		report, err := annotate.Run(diffRes, set, ignoreGlobs, fetchMs)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		if err := output.WriteReport(report, cfg.Format, flagOut); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing output: %v\n", err)
			exitCode = ExitRuntimeError
			return nil
		}

		if flagGHDryRun {
			fmt.Fprintf(os.Stderr, "Dry run: %d annotations, not publishing a check run.\n", len(report.Annotations))
		} else {
			id, err := ghClient.PublishCheck(ctx, owner, repo, pr.HeadSHA, report)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error publishing check run: %v\n", err)
				exitCode = ExitRuntimeError
				return nil
			}
			fmt.Fprintf(os.Stderr, "Check run %d published for PR #%d.\n", id, prNumber)
		}

		if meetsFailThreshold(report.Summary.Overall, cfg.FailOn) {
			exitCode = ExitFindings
		}

		return nil
	},
}

func init() {
	addCheckFlags(githubCmd)
	githubCmd.Flags().StringVar(&flagGHOwner, "owner", "", "GitHub repository owner (auto-detected if omitted)")
	githubCmd.Flags().StringVar(&flagGHRepo, "repo", "", "GitHub repository name (auto-detected if omitted)")
	githubCmd.Flags().BoolVar(&flagGHDryRun, "dry-run", false, "Scan but don't publish the check run")
}
