package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	dbPath string

	// RootCmd is the root command for archsetup
	RootCmd = &cobra.Command{
		Use:   "archsetup",
		Short: "Idempotent Arch Linux desktop provisioning",
		Long: `archsetup installs and configures a desktop environment (window manager,
terminal, shell, fonts) on Arch Linux in batches, skipping everything
already installed and verifying each package after the installer runs.

When an NVIDIA GPU is detected, the driver variant matching the running
kernel flavor (linux, linux-lts, linux-zen, linux-hardened) is installed
and the system configuration (nouveau blacklist, early KMS modules,
session environment, Xorg output class) is applied idempotently with a
one-time backup of every file touched.

Partial failures never abort the run: each group is reported with its
own counts and exit code, and the final summary shows what passed.

Quick Start:
  1. archsetup install
  2. Reboot if the driver step asks for it
  3. archsetup history   # review past runs

Examples:
  # Full provisioning run
  archsetup install

  # Re-apply system configuration without installing anything
  archsetup install --only-config

  # Provision a machine without touching GPU drivers
  archsetup install --skip-nvidia

  # Export the installed-package manifest
  archsetup export pkglist.txt`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("archsetup: idempotent Arch Linux desktop provisioning")
			fmt.Println()
			fmt.Println("Run 'archsetup install' to provision this machine.")
			fmt.Println("Run 'archsetup --help' for the full reference.")
			return nil
		},
	}
)

func init() {
	// Global flags
	RootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "run-history database path (default: ~/.archsetup/archsetup.db)")

	RootCmd.SuggestionsMinimumDistance = 2

	// Register subcommands
	RootCmd.AddCommand(installCmd)
	RootCmd.AddCommand(exportCmd)
	RootCmd.AddCommand(historyCmd)
}

// Execute runs the root command
func Execute() error {
	return RootCmd.Execute()
}
