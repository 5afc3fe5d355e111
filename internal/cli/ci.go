package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/dshills/reviewpack/internal/config"
	"github.com/dshills/reviewpack/internal/github"
	"github.com/dshills/reviewpack/internal/review"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

type ciOptions struct {
	redact bool
}

func newCIReviewCmd(a *app) *cobra.Command {
	opts := &ciOptions{}
	cmd := &cobra.Command{
		Use:   "ci-review",
		Short: "Review a pull request branch in CI and post the result",
		Long: `Review the changes between origin/$GITHUB_BASE_REF and HEAD.

When PR_NUMBER is set the review is posted as a comment on that pull request
using GITHUB_REPOSITORY and GITHUB_TOKEN. Otherwise it is printed.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCIReview(cmd.Context(), a, opts)
		},
	}
	cmd.Flags().BoolVar(&opts.redact, "redact", false, "Scrub secrets from the diff before sending it")
	return cmd
}

func runCIReview(ctx context.Context, a *app, opts *ciOptions) error {
	overrides := map[string]string{}
	if opts.redact {
		overrides["redact_secrets"] = strconv.FormatBool(true)
	}
	cfg, err := a.loadConfig(overrides)
	if err != nil {
		return err
	}
	ci := config.LoadCI(a.deps.Getenv)

	if ci.PostsComment() {
		if err := ci.ValidateComment(); err != nil {
			a.printf("Error: %v\n", err)
			return errFailed
		}
	}

	src := a.deps.NewSource(cfg.GitTimeout)
	diff, err := src.Branch(ctx, ci.BaseRef)
	if err != nil {
		a.log.Warn().Err(err).Str("base", ci.BaseRef).Msg("could not compute branch diff")
		diff = ""
	}
	files, err := src.ChangedFiles(ctx, ci.BaseRef)
	if err != nil {
		a.log.Warn().Err(err).Str("base", ci.BaseRef).Msg("could not list changed files")
		files = nil
	}
	a.log.Debug().Str("base", ci.BaseRef).Int("files", len(files)).Msg("collected branch diff")

	if review.IsEmpty(diff) {
		a.printf("No changes to review\n")
		return nil
	}

	if cfg.RedactSecrets {
		diff = scrub(a, diff)
	}

	if err := review.CheckSize(diff, cfg.MaxDiffSize); err != nil {
		a.printf("Diff too large (%s characters, max %s). Skipping AI review.\n",
			humanize.Comma(int64(review.Size(diff))), humanize.Comma(int64(cfg.MaxDiffSize)))
		a.printf("Consider breaking the PR into smaller changes.\n")
		return nil
	}

	prompt, err := review.BuildCI(diff, files)
	if err != nil {
		return err
	}
	text, err := invoke(ctx, a, cfg, prompt)
	if err != nil {
		return err
	}

	if !ci.PostsComment() {
		a.printf("%s\n", text)
		return nil
	}
	return postComment(ctx, a, cfg, ci, text)
}

func postComment(ctx context.Context, a *app, cfg config.Config, ci config.CIConfig, text string) error {
	client, err := a.deps.NewGitHub(ci.Token, ci.APIURL, cfg.CommentTimeout)
	if err != nil {
		a.printf("Failed to post PR comment: %v\n", err)
		return errFailed
	}
	code, err := client.PostReviewComment(ctx, ci.Repository, ci.PRNumber, text)

	var (
		statusErr    *github.StatusError
		transportErr *github.TransportError
	)
	switch {
	case err == nil:
		a.printf("Posted review comment: %d\n", code)
		return nil
	case errors.As(err, &statusErr):
		a.printf("Failed to post PR comment: %d - %s\n", statusErr.Code, statusErr.Reason)
		if hint := statusErr.Hint(); hint != "" {
			a.printf("Hint: %s\n", hint)
		}
	case errors.As(err, &transportErr):
		a.printf("Network error posting PR comment: %v\n", transportErr.Err)
	default:
		a.printf("Failed to post PR comment: %v\n", err)
	}
	return errFailed
}
