// Package batch implements the idempotent batch package-installation
// engine: it computes the delta between desired and installed state,
// runs the installer once for the delta, and verifies the outcome per
// package so partial failures stay visible.
package batch

import (
	"time"

	"github.com/blackwell-systems/archsetup/internal/pacman"
)

// Oracle answers whether a package is currently installed. It must not
// mutate system state and must treat unknown packages as not installed.
type Oracle interface {
	IsInstalled(name string) bool
}

// Installer performs one blocking installer invocation. Implementations
// must serialize calls; the package database is a single global resource.
type Installer interface {
	Install(packages []string, opts pacman.Options) (pacman.Outcome, error)
}

// Runner executes package groups strictly sequentially.
type Runner struct {
	oracle    Oracle
	installer Installer
	opts      pacman.Options
}

// NewRunner returns a Runner installing with the given options.
func NewRunner(oracle Oracle, installer Installer, opts pacman.Options) *Runner {
	return &Runner{oracle: oracle, installer: installer, opts: opts}
}

// InstallGroup installs the delta of one group and returns its finalized
// Result. Installed-state is snapshotted once at batch start; the
// verification pass afterwards re-queries only the attempted members.
//
// The returned error is non-nil only when no install mechanism exists at
// all. Every other failure (empty group, non-zero installer exit,
// packages still missing after the run) is reported through the Result
// so the caller can decide whether it is fatal.
func (r *Runner) InstallGroup(group Group) (*Result, error) {
	result := &Result{Group: group}

	if len(group.Members) == 0 {
		result.Status = StatusEmpty
		return result, nil
	}

	// Snapshot installed-state once. No re-query mid-batch.
	var toInstall []string
	for _, pkg := range group.Members {
		if r.oracle.IsInstalled(pkg) {
			result.AlreadyInstalled++
		} else {
			toInstall = append(toInstall, pkg)
		}
	}

	if len(toInstall) == 0 {
		result.Succeeded = result.AlreadyInstalled
		result.Status = StatusOK
		return result, nil
	}

	result.Attempted = toInstall

	start := time.Now()
	outcome, err := r.installer.Install(toInstall, r.opts)
	result.Duration = time.Since(start)
	if err != nil {
		// Total installer-mechanism absence. Nothing sensible to verify.
		result.Status = StatusFailed
		return result, err
	}

	result.ExitCode = outcome.ExitCode
	result.Installer = outcome.Installer

	// Verification pass: trust the oracle, not the installer's exit
	// code. Runs even after a non-zero exit because partial success is
	// common.
	for _, pkg := range toInstall {
		if r.oracle.IsInstalled(pkg) {
			result.Succeeded++
		}
	}

	switch {
	case result.Succeeded == len(toInstall):
		result.Status = StatusOK
	case result.Succeeded > 0:
		result.Status = StatusPartial
	default:
		result.Status = StatusFailed
	}

	return result, nil
}
