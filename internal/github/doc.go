// Package github provides a minimal GitHub REST API client for fetching
// pull-request diffs and publishing scan results as Check Runs.
//
// It detects the current repository from the local git remote and
// authenticates with the GITHUB_TOKEN environment variable. The aggregate
// level maps onto check-run conclusions (success / neutral / failure) and
// each annotation onto GitHub's notice / warning / failure annotation
// levels. GitHub caps annotations at 50 per request, so larger sets are
// published in batches rather than dropped.
package github
