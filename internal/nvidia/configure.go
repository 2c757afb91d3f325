package nvidia

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/blackwell-systems/archsetup/internal/confedit"
)

// Paths are the system files the configurator touches. Overridable so
// tests run against a temp directory.
type Paths struct {
	Blacklist   string
	Mkinitcpio  string
	Environment string
	XorgConf    string
}

// DefaultPaths returns the standard Arch locations.
func DefaultPaths() Paths {
	return Paths{
		Blacklist:   "/etc/modprobe.d/blacklist-nouveau.conf",
		Mkinitcpio:  "/etc/mkinitcpio.conf",
		Environment: "/etc/environment",
		XorgConf:    "/etc/X11/xorg.conf.d/10-nvidia-drm-outputclass.conf",
	}
}

// initramfsModules are the early-KMS modules the driver needs; nouveau
// conflicts and is stripped wherever it appears.
var (
	initramfsModules = []string{"nvidia", "nvidia_modeset", "nvidia_uvm", "nvidia_drm"}
	conflictModules  = []string{"nouveau"}
)

// environmentLines are appended to /etc/environment for Wayland
// compositors running on the proprietary driver.
var environmentLines = []string{
	"GBM_BACKEND=nvidia-drm",
	"__GLX_VENDOR_LIBRARY_NAME=nvidia",
}

// blacklistLines keep the nouveau driver from binding at boot.
var blacklistLines = []string{
	"blacklist nouveau",
	"options nouveau modeset=0",
}

const xorgOutputClass = `Section "OutputClass"
    Identifier "nvidia"
    MatchDriver "nvidia-drm"
    Driver "nvidia"
    Option "AllowEmptyInitialConfiguration"
    ModulePath "/usr/lib/nvidia/xorg"
    ModulePath "/usr/lib/xorg/modules"
EndSection
`

// ConfigResult reports which files a Configure call actually modified.
type ConfigResult struct {
	Changed []string
}

// ChangedFile reports whether the given path was modified.
func (r *ConfigResult) ChangedFile(path string) bool {
	for _, c := range r.Changed {
		if c == path {
			return true
		}
	}
	return false
}

// Configure applies the driver system configuration idempotently. Every
// target file is backed up before its first modification; a backup left
// by an earlier run is never overwritten. Files already in the desired
// state are left untouched and not reported as changed.
func Configure(paths Paths) (*ConfigResult, error) {
	result := &ConfigResult{}

	// Nouveau blacklist.
	if _, err := confedit.BackupOnce(paths.Blacklist); err != nil {
		return result, err
	}
	for _, line := range blacklistLines {
		changed, err := confedit.EnsureLine(paths.Blacklist, line, 0644)
		if err != nil {
			return result, err
		}
		if changed {
			result.record(paths.Blacklist)
		}
	}

	// Early KMS module list. Normalized rather than substituted so the
	// edit holds regardless of prior formatting.
	if _, err := confedit.BackupOnce(paths.Mkinitcpio); err != nil {
		return result, err
	}
	changed, err := confedit.NormalizeModules(paths.Mkinitcpio, conflictModules, initramfsModules)
	if err != nil {
		return result, err
	}
	if changed {
		result.record(paths.Mkinitcpio)
	}

	// Session environment.
	if _, err := confedit.BackupOnce(paths.Environment); err != nil {
		return result, err
	}
	for _, line := range environmentLines {
		changed, err := confedit.EnsureLine(paths.Environment, line, 0644)
		if err != nil {
			return result, err
		}
		if changed {
			result.record(paths.Environment)
		}
	}

	// Xorg OutputClass drop-in, written whole.
	if _, err := confedit.BackupOnce(paths.XorgConf); err != nil {
		return result, err
	}
	changed, err = ensureFileContent(paths.XorgConf, xorgOutputClass)
	if err != nil {
		return result, err
	}
	if changed {
		result.record(paths.XorgConf)
	}

	return result, nil
}

func (r *ConfigResult) record(path string) {
	if !r.ChangedFile(path) {
		r.Changed = append(r.Changed, path)
	}
}

// ensureFileContent writes content to path unless it already matches.
func ensureFileContent(path, content string) (changed bool, err error) {
	existing, readErr := os.ReadFile(path)
	if readErr == nil && string(existing) == content {
		return false, nil
	}
	if readErr != nil && !os.IsNotExist(readErr) {
		return false, fmt.Errorf("cannot read %s: %w", path, readErr)
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return false, fmt.Errorf("cannot write %s: %w", path, err)
	}
	return true, nil
}

// RegenerateInitramfs rebuilds all initramfs presets after the module
// list changed. Failure is surfaced to the caller as a warning, not a
// fatal condition.
func RegenerateInitramfs() error {
	cmd := exec.Command("mkinitcpio", "-P")
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("mkinitcpio -P failed: %w (output: %s)", err, string(output))
	}
	return nil
}
