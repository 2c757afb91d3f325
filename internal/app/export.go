package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/archsetup/internal/pacman"
	"github.com/blackwell-systems/archsetup/internal/workdir"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export the installed-package manifest",
	Long: `Write the names of all explicitly installed packages to a file, one
per line, suitable for replaying on another machine with
pacman -S --needed - < file.

Defaults to pkglist.txt in the current directory.`,
	Example: `  # Export to the default pkglist.txt
  archsetup export

  # Export to a specific file
  archsetup export ~/backups/pkglist.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	dest := "pkglist.txt"
	if len(args) == 1 {
		dest = args[0]
	}

	client := pacman.New()
	packages, err := client.ListExplicit()
	if err != nil {
		return fmt.Errorf("failed to list installed packages: %w", err)
	}

	// Stage in a scoped working directory so a failed write never leaves
	// a truncated manifest at the destination.
	err = workdir.With("archsetup-export-", func(dir string) error {
		staged := filepath.Join(dir, "pkglist.txt")
		content := strings.Join(packages, "\n") + "\n"
		if err := os.WriteFile(staged, []byte(content), 0644); err != nil {
			return fmt.Errorf("failed to stage manifest: %w", err)
		}

		data, err := os.ReadFile(staged)
		if err != nil {
			return fmt.Errorf("failed to read staged manifest: %w", err)
		}
		if err := os.WriteFile(dest, data, 0644); err != nil {
			return fmt.Errorf("failed to write manifest to %s: %w", dest, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Printf("Exported %d packages to %s\n", len(packages), dest)
	return nil
}
