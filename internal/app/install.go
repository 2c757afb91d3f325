package app

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/archsetup/internal/batch"
	"github.com/blackwell-systems/archsetup/internal/config"
	"github.com/blackwell-systems/archsetup/internal/nvidia"
	"github.com/blackwell-systems/archsetup/internal/output"
	"github.com/blackwell-systems/archsetup/internal/pacman"
	"github.com/blackwell-systems/archsetup/internal/store"
	"github.com/blackwell-systems/archsetup/internal/sysinspect"
	"github.com/blackwell-systems/archsetup/internal/watcher"
)

var (
	installOnlyConfig bool
	installSkipNvidia bool
	installNoConfirm  bool

	installCmd = &cobra.Command{
		Use:   "install",
		Short: "Install and configure the desktop environment",
		Long: `Install the desktop package groups in order, then run the NVIDIA
driver flow when matching hardware is present.

Each group is partitioned against the local package database first:
packages already installed are skipped, the rest are handed to the AUR
helper (paru or yay) when one is available, falling back to pacman. A
verification pass re-queries the package database afterwards so partial
failures are reported per package, not hidden behind the installer's
exit code.

A failed non-critical group is reported and the run continues; only the
critical groups (xorg, window manager) abort the run.`,
		Example: `  # Full run
  archsetup install

  # Apply system configuration only, install nothing
  archsetup install --only-config

  # Skip the GPU driver step entirely
  archsetup install --skip-nvidia`,
		RunE: runInstall,
	}
)

func init() {
	installCmd.Flags().BoolVar(&installOnlyConfig, "only-config", false, "skip all installation, apply configuration only")
	installCmd.Flags().BoolVar(&installSkipNvidia, "skip-nvidia", false, "skip NVIDIA driver detection and configuration")
	installCmd.Flags().BoolVar(&installNoConfirm, "noconfirm", false, "do not prompt before installing")
}

func runInstall(cmd *cobra.Command, args []string) error {
	opts := config.Options{
		OnlyConfig: installOnlyConfig,
		SkipNVIDIA: installSkipNvidia,
		NoConfirm:  installNoConfirm,
		DBPath:     dbPath,
	}

	groups := config.DesktopGroups()

	if !opts.NoConfirm && !opts.OnlyConfig {
		fmt.Printf("This will install %d package groups and configure the system.\n", len(groups))
		if !askConfirm("Proceed?") {
			fmt.Println("Aborted by user.")
			return nil
		}
	}

	path, err := getDBPath()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}

	db, err := store.New(path)
	if err != nil {
		return fmt.Errorf("failed to open run-history database: %w", err)
	}
	defer db.Close()

	if err := db.CreateSchema(); err != nil {
		return fmt.Errorf("failed to create database schema: %w", err)
	}

	runID, err := db.BeginRun(time.Now(), opts.OnlyConfig)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	client := pacman.New()
	runner := batch.NewRunner(client, client, pacman.Options{Needed: true, NoConfirm: true})

	var report batch.Report
	var fatal error

	if !opts.OnlyConfig {
		fatal = installGroups(runner, groups, &report, db, runID)
	}

	if fatal == nil {
		if warn := runDriverFlow(client, runner, opts, &report, db, runID); warn != "" {
			fmt.Fprintf(os.Stderr, "warning: %s\n", warn)
		}
	}

	summary := report.Summarize()
	if err := db.FinishRun(runID, time.Now(), summary); err != nil {
		fmt.Fprintf(os.Stderr, "warning: failed to finalize run record: %v\n", err)
	}

	fmt.Println()
	fmt.Print(output.RenderReport(&report, output.IsColorEnabled()))

	if fatal != nil {
		return fatal
	}
	return nil
}

// installGroups runs every configured group in order, recording each
// result. It returns an error only for a failed critical group or a
// missing install mechanism; everything else degrades to the report.
func installGroups(runner *batch.Runner, groups []batch.Group, report *batch.Report, db *store.Store, runID int64) error {
	bar := output.NewProgress(len(groups), "provisioning")

	// Best-effort live package names from the pacman log. Missing log or
	// failed watch just means coarser progress. The callback runs on the
	// watcher goroutine; the bar serializes rendering internally.
	logWatch := watcher.New(watcher.DefaultLogPath, func(pkg string) {
		bar.SetLabel("installed " + pkg)
	})
	watching := logWatch.Start() == nil

	for i, group := range groups {
		bar.SetLabel(fmt.Sprintf("%s (%d packages)", group.Name, len(group.Members)))

		result, err := runner.InstallGroup(group)
		report.Add(result)
		if dbErr := db.InsertGroupResult(runID, i, result); dbErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record group %s: %v\n", group.Name, dbErr)
		}

		if err != nil {
			// No install mechanism at all; nothing sensible to continue with.
			if watching {
				logWatch.Stop()
			}
			bar.Finish()
			return err
		}

		if !result.OK() && group.Critical {
			if watching {
				logWatch.Stop()
			}
			bar.Finish()
			return fmt.Errorf("critical group %q failed (%d of %d installed, exit %d)",
				group.Name, result.Succeeded, len(result.Attempted), result.ExitCode)
		}

		bar.Increment()
	}

	if watching {
		logWatch.Stop()
	}
	bar.Finish()
	return nil
}

// runDriverFlow performs hardware detection, driver installation and
// system configuration. It returns a warning message when something
// non-fatal needs the user's attention (typically a required reboot).
func runDriverFlow(client *pacman.Client, runner *batch.Runner, opts config.Options, report *batch.Report, db *store.Store, runID int64) string {
	if opts.SkipNVIDIA {
		fmt.Println("NVIDIA step: skipped (--skip-nvidia)")
		return ""
	}

	multilib, err := pacman.MultilibEnabled(pacman.DefaultConfPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: multilib detection failed: %v\n", err)
	}

	insp := sysinspect.NewOS()
	profile, err := nvidia.Detect(insp, multilib)
	if err != nil {
		return fmt.Sprintf("hardware detection failed, driver step skipped: %v", err)
	}

	plan, skip := nvidia.PlanDrivers(profile, opts.SkipNVIDIA, opts.OnlyConfig)
	var installWarning string

	switch skip {
	case nvidia.SkipNoHardware:
		fmt.Printf("NVIDIA step: %s\n", skip)
		return ""
	case nvidia.SkipNone:
		fmt.Printf("NVIDIA step: installing %s for the %s kernel\n", plan.Primary, profile.KernelFlavor)

		group := batch.Group{Name: "nvidia drivers", Members: plan.Packages()}
		result, err := runner.InstallGroup(group)
		report.Add(result)
		if dbErr := db.InsertGroupResult(runID, len(report.Results())-1, result); dbErr != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to record driver group: %v\n", dbErr)
		}
		if err != nil {
			return fmt.Sprintf("driver installation unavailable: %v", err)
		}
		if !result.OK() {
			// Configuration below still runs: a partially installed
			// driver set benefits from the nouveau blacklist either way.
			installWarning = fmt.Sprintf("driver group incomplete (%d of %d installed)",
				result.Succeeded, len(result.Attempted))
		}
	default:
		// Disabled or configuration-only: no install, but configuration
		// below still runs.
		fmt.Printf("NVIDIA step: install skipped (%s)\n", skip)
	}

	configured, err := nvidia.Configure(nvidia.DefaultPaths())
	if err != nil {
		return fmt.Sprintf("driver configuration incomplete: %v", err)
	}

	if installWarning != "" {
		fmt.Fprintf(os.Stderr, "warning: %s\n", installWarning)
	}

	if configured.ChangedFile(nvidia.DefaultPaths().Mkinitcpio) {
		if err := nvidia.RegenerateInitramfs(); err != nil {
			return fmt.Sprintf("initramfs rebuild failed, run mkinitcpio -P manually: %v", err)
		}
	}

	if !nvidia.DriverActive() {
		if nvidia.NouveauLoaded(insp) {
			return nvidia.NouveauRebootWarning
		}
		return nvidia.RebootWarning
	}
	return ""
}
