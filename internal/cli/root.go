package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/dshills/reviewpack/internal/config"
	"github.com/dshills/reviewpack/internal/gitctx"
	"github.com/dshills/reviewpack/internal/github"
	"github.com/dshills/reviewpack/internal/logging"
	"github.com/dshills/reviewpack/internal/providers"
	"github.com/dshills/reviewpack/internal/ui"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const version = "0.3.0"

// Exit codes
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// exitError ends a command with code after its message has already been
// printed.
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

var errFailed = &exitError{code: ExitFailure}

// DiffSource is the subset of git access the commands use.
type DiffSource interface {
	Staged(ctx context.Context) (string, error)
	Working(ctx context.Context) (string, error)
	Branch(ctx context.Context, baseRef string) (string, error)
	ChangedFiles(ctx context.Context, baseRef string) ([]string, error)
	GitDir(ctx context.Context) (string, error)
}

// CommentPoster publishes a review on a pull request.
type CommentPoster interface {
	PostReviewComment(ctx context.Context, repo, prNumber, review string) (int, error)
}

// Deps are the process-level collaborators of the command tree. Tests replace
// them to run commands without git, network access, or a terminal.
type Deps struct {
	Getenv      func(string) string
	Getwd       func() (string, error)
	NewSource   func(timeout time.Duration) DiffSource
	NewReviewer func(model string) (providers.Reviewer, error)
	NewGitHub   func(token, apiURL string, timeout time.Duration) (CommentPoster, error)
	// Interactive reports whether prompts may be shown.
	Interactive func() bool
	Confirm     func(question string, def bool) (bool, error)
	Select      func(title string, options []string) (string, error)
}

// DefaultDeps wires the real implementations.
func DefaultDeps() Deps {
	return Deps{
		Getenv: os.Getenv,
		Getwd:  os.Getwd,
		NewSource: func(timeout time.Duration) DiffSource {
			return gitctx.New(timeout)
		},
		NewReviewer: func(model string) (providers.Reviewer, error) {
			return providers.New("anthropic", model)
		},
		NewGitHub: func(token, apiURL string, timeout time.Duration) (CommentPoster, error) {
			c, err := github.NewClient(token, apiURL, timeout)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
		Interactive: func() bool {
			return ui.Interactive(os.Stdin, os.Stdout)
		},
		Confirm: func(question string, def bool) (bool, error) {
			ok := def
			err := huh.NewConfirm().
				Title(question).
				Affirmative("Yes").
				Negative("No").
				Value(&ok).
				Run()
			return ok, err
		},
		Select: func(title string, options []string) (string, error) {
			var choice string
			err := huh.NewSelect[string]().
				Title(title).
				Options(huh.NewOptions(options...)...).
				Value(&choice).
				Run()
			return choice, err
		},
	}
}

// app carries global flags and streams into every subcommand.
type app struct {
	deps   Deps
	out    io.Writer
	errOut io.Writer

	configPath string
	packsDir   string
	logLevel   string

	log zerolog.Logger
}

// loadConfig resolves the effective configuration and builds the logger.
// overrides holds command flag values; empty strings are ignored.
func (a *app) loadConfig(overrides map[string]string) (config.Config, error) {
	if overrides == nil {
		overrides = map[string]string{}
	}
	overrides["packs_dir"] = a.packsDir
	overrides["log_level"] = a.logLevel

	cfg, err := config.Load(a.configPath, overrides)
	if err != nil {
		return cfg, err
	}
	log, err := logging.New(cfg.LogLevel, a.errOut, ui.IsTerminal(a.errOut))
	if err != nil {
		return cfg, err
	}
	a.log = log
	a.log.Debug().Str("model", cfg.Model).Int("max_diff_size", cfg.MaxDiffSize).Msg("configuration loaded")
	return cfg, nil
}

// confirm asks question unless prompts are unavailable, in which case def
// is used.
func (a *app) confirm(question string, def bool) (bool, error) {
	if !a.deps.Interactive() {
		return def, nil
	}
	ok, err := a.deps.Confirm(question, def)
	if errors.Is(err, huh.ErrUserAborted) {
		return false, errFailed
	}
	return ok, err
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

func (a *app) printErr(msg string) {
	fmt.Fprintln(a.errOut, msg)
}

func (a *app) errorf(format string, args ...any) {
	fmt.Fprintln(a.errOut, ui.Error(fmt.Sprintf(format, args...)))
}

// NewRootCmd constructs the command tree around deps.
func NewRootCmd(deps Deps, out, errOut io.Writer) *cobra.Command {
	a := &app{deps: deps, out: out, errOut: errOut, log: zerolog.Nop()}

	cmd := &cobra.Command{
		Use:           "reviewpack",
		Short:         "Code review packs for AI coding assistants",
		Long:          "reviewpack installs AI assistant review packs into a project and runs LLM code reviews on git changes.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetVersionTemplate("reviewpack version {{.Version}}\n")

	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Path to config file (default: user config dir)")
	cmd.PersistentFlags().StringVar(&a.packsDir, "packs-dir", "", "Directory containing packs")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	cmd.AddCommand(newInitCmd(a))
	cmd.AddCommand(newListPacksCmd(a))
	cmd.AddCommand(newReviewCmd(a))
	cmd.AddCommand(newCIReviewCmd(a))
	cmd.AddCommand(newConfigCmd(a))
	cmd.AddCommand(newHookCmd(a))
	cmd.AddCommand(newVersionCmd(a))

	return cmd
}

// Execute runs the command tree with args and returns the exit code.
func Execute(ctx context.Context, args []string, deps Deps, out, errOut io.Writer) int {
	cmd := NewRootCmd(deps, out, errOut)
	cmd.SetArgs(args)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintln(errOut, ui.Error("Error: "+err.Error()))
	return ExitFailure
}

// Run executes the CLI for the current process and returns an exit code.
func Run() int {
	// A missing .env is normal.
	_ = godotenv.Load(".env")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return Execute(ctx, os.Args[1:], DefaultDeps(), os.Stdout, os.Stderr)
}

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print reviewpack version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			a.printf("reviewpack version %s\n", version)
		},
	}
}
