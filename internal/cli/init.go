package cli

import (
	"errors"
	"path"

	"github.com/charmbracelet/huh"
	"github.com/dshills/reviewpack/internal/config"
	"github.com/dshills/reviewpack/internal/packs"
	"github.com/dshills/reviewpack/internal/ui"
	"github.com/spf13/cobra"
)

type initOptions struct {
	pack   string
	target string
	yes    bool
}

func newInitCmd(a *app) *cobra.Command {
	opts := &initOptions{}
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a code review pack in a project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(a, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.pack, "pack", "p", "", "Pack name to initialize")
	cmd.Flags().StringVarP(&opts.target, "target", "t", ".", "Target directory")
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false, "Install every component without prompting")
	return cmd
}

func runInit(a *app, opts *initOptions) error {
	cfg, err := a.loadConfig(nil)
	if err != nil {
		return err
	}

	cwd, err := a.deps.Getwd()
	if err != nil {
		return err
	}
	target, outside, err := packs.ResolveTarget(opts.target, cwd)
	if errors.Is(err, packs.ErrTargetNotFound) {
		a.errorf("Target directory does not exist: %s", target)
		return errFailed
	}
	if err != nil {
		return err
	}

	if outside && !opts.yes {
		a.printf("%s\n", ui.Warning("Warning: Target is outside current directory: "+target))
		ok, err := a.confirm("Continue anyway?", false)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
	}

	lib, err := openLibrary(a, cfg)
	if err != nil {
		return err
	}
	available, err := lib.List()
	if err != nil {
		return err
	}

	name := opts.pack
	if name == "" {
		a.printf("\n%s\n", ui.Header("Available packs:"))
		for _, p := range available {
			a.printf("  - %s\n", p)
		}
		if !a.deps.Interactive() || len(available) == 0 {
			a.errorf("No pack selected. Pass --pack with one of the packs above.")
			return errFailed
		}
		name, err = a.deps.Select("Select pack", available)
		if errors.Is(err, huh.ErrUserAborted) {
			return errFailed
		}
		if err != nil {
			return err
		}
	}

	pack, err := lib.Pack(name)
	if errors.Is(err, packs.ErrUnknownPack) {
		a.errorf("Unknown pack: %s", name)
		return errFailed
	}
	if err != nil {
		return err
	}

	a.printf("\n%s\n\n", ui.Bold("Initializing "+name+" in "+target))
	a.log.Info().Str("pack", name).Str("target", target).Msg("installing pack")

	confirm := packs.ConfirmFunc(func(question string, def bool) (bool, error) {
		if opts.yes {
			return true, nil
		}
		return a.confirm(question, def)
	})
	err = packs.NewInstaller(pack, target).Run(confirm, func(o packs.Outcome) {
		reportOutcome(a, o)
	})
	if err != nil {
		return err
	}

	a.printf("\n%s\n", ui.Success("Pack initialized successfully!"))
	a.printf("\nNext steps:\n")
	a.printf("  1. Review the installed configuration files\n")
	a.printf("  2. Customize as needed for your project\n")
	a.printf("  3. Add ANTHROPIC_API_KEY to GitHub secrets for CI reviews\n")
	return nil
}

func reportOutcome(a *app, o packs.Outcome) {
	if o.Skipped {
		a.printf("%s\n", ui.Skip("Skipped "+o.Component.Name))
		return
	}
	for _, dst := range o.Installed {
		a.printf("%s\n", ui.Pass("Installed "+dst))
	}
	for _, src := range o.Missing {
		a.printf("%s\n", ui.Warn(path.Base(src)+" not found in pack"))
	}
	if len(o.Installed) == 0 {
		return
	}
	for _, note := range o.Component.Notes {
		a.printf("%s\n", ui.Warn(note))
	}
}

// openLibrary prefers a packs directory on disk and falls back to the packs
// built into the binary. An explicit packs_dir must exist.
func openLibrary(a *app, cfg config.Config) (*packs.Library, error) {
	dir, err := packs.Discover(cfg.PacksDir)
	if errors.Is(err, packs.ErrNoPacksDir) && cfg.PacksDir == "" {
		a.log.Debug().Msg("using built-in packs")
		return packs.Builtin(), nil
	}
	if err != nil {
		return nil, err
	}
	a.log.Debug().Str("dir", dir).Msg("using packs directory")
	return packs.Open(dir), nil
}
