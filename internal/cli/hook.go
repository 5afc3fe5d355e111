package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/reviewpack/internal/config"
	"github.com/spf13/cobra"
)

const (
	hookMarkerStart = "# >>> reviewpack pre-commit hook >>>"
	hookMarkerEnd   = "# <<< reviewpack pre-commit hook <<<"
)

func newHookCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hook",
		Short: "Manage git pre-commit hook",
	}
	cmd.AddCommand(newHookInstallCmd(a))
	cmd.AddCommand(newHookUninstallCmd(a))
	return cmd
}

func newHookInstallCmd(a *app) *cobra.Command {
	var pack string
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Review staged changes before every commit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hookPath, err := getHookPath(cmd.Context(), a)
			if err != nil {
				return err
			}

			existing, err := os.ReadFile(hookPath)
			if err != nil && !os.IsNotExist(err) {
				return fmt.Errorf("reading hook file: %w", err)
			}

			section := generateHookScript(pack)
			var content string
			if len(existing) == 0 {
				content = "#!/bin/sh\n" + section
			} else {
				content = replaceHookSection(string(existing), section)
			}

			if err := os.MkdirAll(filepath.Dir(hookPath), 0o755); err != nil {
				return fmt.Errorf("creating hooks directory: %w", err)
			}
			if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
				return fmt.Errorf("writing hook file: %w", err)
			}

			a.printf("Installed reviewpack pre-commit hook at %s\n", hookPath)
			return nil
		},
	}
	cmd.Flags().StringVarP(&pack, "pack", "p", config.DefaultPack, "Pack to use for review context")
	return cmd
}

func newHookUninstallCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall",
		Short: "Remove reviewpack pre-commit hook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			hookPath, err := getHookPath(cmd.Context(), a)
			if err != nil {
				return err
			}

			existing, err := os.ReadFile(hookPath)
			if os.IsNotExist(err) {
				a.printf("No pre-commit hook found.\n")
				return nil
			}
			if err != nil {
				return fmt.Errorf("reading hook file: %w", err)
			}

			content := removeHookSection(string(existing))

			// Only a shebang left: the file was ours alone.
			trimmed := strings.TrimSpace(content)
			if trimmed == "" || trimmed == "#!/bin/sh" || trimmed == "#!/bin/bash" {
				if err := os.Remove(hookPath); err != nil {
					return fmt.Errorf("removing hook file: %w", err)
				}
				a.printf("Removed reviewpack pre-commit hook at %s\n", hookPath)
				return nil
			}

			if err := os.WriteFile(hookPath, []byte(content), 0o755); err != nil {
				return fmt.Errorf("writing hook file: %w", err)
			}
			a.printf("Removed reviewpack section from %s\n", hookPath)
			return nil
		},
	}
}

func getHookPath(ctx context.Context, a *app) (string, error) {
	gitDir, err := a.deps.NewSource(config.DefaultGitTimeout).GitDir(ctx)
	if err != nil {
		return "", fmt.Errorf("not a git repository: %w", err)
	}
	return filepath.Join(gitDir, "hooks", "pre-commit"), nil
}

// generateHookScript returns the marked hook section. The review is
// advisory: a failed review run never blocks the commit.
func generateHookScript(pack string) string {
	var b strings.Builder
	b.WriteString(hookMarkerStart + "\n")
	b.WriteString("if [ -z \"$REVIEWPACK_SKIP_HOOK\" ]; then\n")
	b.WriteString(fmt.Sprintf("  reviewpack review --staged --pack %s\n", pack))
	b.WriteString("  REVIEWPACK_EXIT=$?\n")
	b.WriteString("  if [ $REVIEWPACK_EXIT -ne 0 ]; then\n")
	b.WriteString("    echo \"reviewpack: review failed (exit $REVIEWPACK_EXIT), allowing commit\"\n")
	b.WriteString("  fi\n")
	b.WriteString("fi\n")
	b.WriteString(hookMarkerEnd + "\n")
	return b.String()
}

func replaceHookSection(existing, section string) string {
	startIdx := strings.Index(existing, hookMarkerStart)
	endIdx := strings.Index(existing, hookMarkerEnd)

	if startIdx == -1 || endIdx == -1 {
		if !strings.HasSuffix(existing, "\n") {
			existing += "\n"
		}
		return existing + section
	}

	before := existing[:startIdx]
	after := strings.TrimPrefix(existing[endIdx+len(hookMarkerEnd):], "\n")
	return before + section + after
}

func removeHookSection(existing string) string {
	startIdx := strings.Index(existing, hookMarkerStart)
	endIdx := strings.Index(existing, hookMarkerEnd)

	if startIdx == -1 || endIdx == -1 {
		return existing
	}

	before := existing[:startIdx]
	after := strings.TrimPrefix(existing[endIdx+len(hookMarkerEnd):], "\n")
	return before + after
}
