package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/dshills/reviewpack/internal/config"
	"github.com/dshills/reviewpack/internal/gitctx"
	"github.com/dshills/reviewpack/internal/output"
	"github.com/dshills/reviewpack/internal/packs"
	"github.com/dshills/reviewpack/internal/redact"
	"github.com/dshills/reviewpack/internal/review"
	"github.com/dshills/reviewpack/internal/ui"
	"github.com/spf13/cobra"
)

type reviewOptions struct {
	pack   string
	staged bool
	format string
	out    string
	redact bool
}

func (o *reviewOptions) overrides() map[string]string {
	m := map[string]string{"format": o.format}
	if o.redact {
		m["redact_secrets"] = strconv.FormatBool(true)
	}
	return m
}

func newReviewCmd(a *app) *cobra.Command {
	opts := &reviewOptions{}
	cmd := &cobra.Command{
		Use:   "review",
		Short: "Run an AI code review on current changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReview(cmd.Context(), a, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.pack, "pack", "p", config.DefaultPack, "Pack to use for review context")
	cmd.Flags().BoolVar(&opts.staged, "staged", false, "Review staged changes only")
	cmd.Flags().StringVar(&opts.format, "format", "", "Output format (markdown, json)")
	cmd.Flags().StringVar(&opts.out, "out", "", "Output file path (default: stdout)")
	cmd.Flags().BoolVar(&opts.redact, "redact", false, "Scrub secrets from the diff before sending it")
	return cmd
}

func runReview(ctx context.Context, a *app, opts *reviewOptions) error {
	cfg, err := a.loadConfig(opts.overrides())
	if err != nil {
		return err
	}

	lib, err := openLibrary(a, cfg)
	if err != nil {
		return err
	}
	pack, err := lib.Pack(opts.pack)
	if errors.Is(err, packs.ErrUnknownPack) {
		a.errorf("Pack not found: %s", opts.pack)
		return errFailed
	}
	if err != nil {
		return err
	}

	status(a, ui.Bold("Running code review with pack: "+opts.pack))

	src := a.deps.NewSource(cfg.GitTimeout)
	mode := "working"
	var diff string
	if opts.staged {
		mode = "staged"
		status(a, ui.Muted("Reviewing staged changes..."))
		diff, err = src.Staged(ctx)
	} else {
		status(a, ui.Muted("Reviewing working directory changes..."))
		diff, err = src.Working(ctx)
	}
	var gitErr *gitctx.GitError
	if errors.As(err, &gitErr) {
		a.errorf("Git error: %v", gitErr)
		return errFailed
	}
	if err != nil {
		return err
	}

	if review.IsEmpty(diff) {
		a.printf("%s\n", ui.Warning("No changes to review."))
		return nil
	}

	if cfg.RedactSecrets {
		diff = scrub(a, diff)
	}

	if err := review.CheckSize(diff, cfg.MaxDiffSize); err != nil {
		return reportReviewError(a, err)
	}

	rc, err := packs.LoadContext(pack)
	if err != nil {
		return err
	}
	prompt, err := review.BuildLocal(diff, rc)
	if err != nil {
		return err
	}

	text, err := invoke(ctx, a, cfg, prompt)
	if err != nil {
		return err
	}

	return output.WriteReview(a.out, output.Result{
		Pack:   opts.pack,
		Mode:   mode,
		Model:  cfg.Model,
		Review: text,
	}, cfg.Format, opts.out)
}

// invoke sends prompt through a freshly built reviewer. Failures are printed
// and returned as errFailed.
func invoke(ctx context.Context, a *app, cfg config.Config, prompt review.Prompt) (string, error) {
	reviewer, err := a.deps.NewReviewer(cfg.Model)
	if err != nil {
		return "", reportReviewError(a, err)
	}

	status(a, ui.Muted("Sending to Claude for review..."))
	iv := review.NewInvoker(reviewer, review.Options{
		MaxDiffSize: cfg.MaxDiffSize,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.APITimeout,
		Logger:      a.log,
	})
	text, err := iv.Invoke(ctx, prompt)
	if err != nil {
		return "", reportReviewError(a, err)
	}
	return text, nil
}

// scrub applies secret redaction and reports what was removed.
func scrub(a *app, diff string) string {
	clean, stats := redact.Diff(diff, redact.DefaultPaths)
	if stats.Total() > 0 {
		status(a, ui.Warn("Redacted "+strconv.Itoa(stats.Total())+" secret(s) from the diff"))
		a.log.Info().Int("secrets", stats.Secrets).Strs("files", stats.Files).Msg("redacted diff")
	}
	return clean
}

// status writes progress to stderr so stdout carries only the review.
func status(a *app, msg string) {
	a.printErr(msg)
}
