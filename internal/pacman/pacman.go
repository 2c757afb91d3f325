// Package pacman wraps the Arch Linux package manager and the optional
// AUR helper. It is the only package that invokes the installer binary;
// callers never run pacman directly.
package pacman

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Client invokes pacman and, when available, an AUR helper.
// The zero value uses plain pacman only.
type Client struct {
	// Helper is the AUR helper binary name ("paru" or "yay"), or empty
	// when none is installed.
	Helper string
}

// New returns a Client using the best available AUR helper.
func New() *Client {
	return &Client{Helper: DetectHelper()}
}

// DetectHelper returns the name of the first AUR helper found on PATH,
// preferring paru over yay, or "" when neither is installed.
func DetectHelper() string {
	for _, helper := range []string{"paru", "yay"} {
		if _, err := exec.LookPath(helper); err == nil {
			return helper
		}
	}
	return ""
}

// IsInstalled reports whether the named package is currently installed.
// An unknown or missing package is simply not installed; this never
// returns an error to the caller.
func (c *Client) IsInstalled(name string) bool {
	cmd := exec.Command("pacman", "-Qi", name)
	return cmd.Run() == nil
}

// ListExplicit returns the names of explicitly installed packages
// (pacman -Qqe), the manifest exported by `archsetup export`.
func (c *Client) ListExplicit() ([]string, error) {
	cmd := exec.Command("pacman", "-Qqe")
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("pacman -Qqe failed: %w (stderr: %s)", err, string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("pacman -Qqe failed: %w", err)
	}

	var packages []string
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			packages = append(packages, line)
		}
	}
	return packages, nil
}

// Install installs the given packages. When an AUR helper is configured
// it is tried first; if the helper invocation fails for any reason the
// base pacman is tried exactly once as a fallback. The returned Outcome
// records the exit code and which installer binary completed the run.
//
// Install returns an error only when no install mechanism exists at all
// (pacman itself missing); a non-zero installer exit is reported through
// Outcome.ExitCode, not through err, so the caller can still run its
// verification pass.
func (c *Client) Install(packages []string, opts Options) (Outcome, error) {
	if _, err := exec.LookPath("pacman"); err != nil {
		return Outcome{}, fmt.Errorf("pacman not found on PATH: %w", err)
	}

	if c.Helper != "" {
		code, runErr := runInstaller(c.Helper, packages, opts)
		if runErr == nil && code == 0 {
			return Outcome{ExitCode: 0, Installer: c.Helper}, nil
		}
		// Helper failed (missing target, build failure, or could not be
		// started). Fall back to plain pacman exactly once.
		fmt.Fprintf(os.Stderr, "warning: %s failed (exit %d), retrying with pacman\n", c.Helper, code)
	}

	code, runErr := runInstaller("pacman", packages, opts)
	if runErr != nil {
		return Outcome{}, fmt.Errorf("pacman invocation failed: %w", runErr)
	}
	return Outcome{ExitCode: code, Installer: "pacman"}, nil
}

// installerArgs builds the sync arguments shared by pacman and the AUR
// helpers (the helpers accept the full pacman -S flag set).
func installerArgs(packages []string, opts Options) []string {
	args := []string{"-S"}
	if opts.Needed {
		args = append(args, "--needed")
	}
	if opts.NoConfirm {
		args = append(args, "--noconfirm")
	}
	return append(args, packages...)
}

// runInstaller executes one installer binary and returns its exit code.
// A non-zero exit is not an error; err is reserved for failures to start
// the process at all.
func runInstaller(binary string, packages []string, opts Options) (int, error) {
	args := installerArgs(packages, opts)

	// AUR helpers refuse to run as root; pacman requires it. Both are
	// satisfied by running the tool as the invoking user and letting
	// pacman escalate via sudo.
	if binary == "pacman" && os.Geteuid() != 0 {
		args = append([]string{"pacman"}, args...)
		binary = "sudo"
	}

	cmd := exec.Command(binary, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode(), nil
	}
	return -1, err
}
