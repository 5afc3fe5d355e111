package cli

import (
	"github.com/dshills/reviewpack/internal/ui"
	"github.com/spf13/cobra"
)

func newListPacksCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list-packs",
		Short: "List available packs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig(nil)
			if err != nil {
				return err
			}
			lib, err := openLibrary(a, cfg)
			if err != nil {
				return err
			}
			entries, err := lib.Entries()
			if err != nil {
				return err
			}

			a.printf("\n%s\n\n", ui.Header("Available Code Review Packs:"))
			for _, e := range entries {
				if !e.HasManifest {
					a.printf("%s %s\n\n", ui.Bold(e.Dir), ui.Muted("(no pack.yaml)"))
					continue
				}
				a.printf("%s v%s\n", ui.Bold(e.Manifest.Name), e.Manifest.Version)
				a.printf("  %s\n\n", e.Manifest.Description)
			}
			return nil
		},
	}
}
