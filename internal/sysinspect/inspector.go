// Package sysinspect wraps the system introspection commands the
// provisioner depends on (lspci, lsmod, pacman -Qq) behind a narrow
// interface so the hardware detection logic can be tested against fakes.
package sysinspect

import (
	"fmt"
	"os/exec"
	"strings"
)

// Inspector answers read-only questions about the running system.
type Inspector interface {
	// PCIDevices returns the raw lspci listing, one device per line.
	PCIDevices() (string, error)

	// LoadedModules returns the names of currently loaded kernel modules.
	LoadedModules() ([]string, error)

	// InstalledPackages returns the names of all installed packages,
	// including dependencies.
	InstalledPackages() ([]string, error)
}

// OS is the real Inspector backed by external commands.
type OS struct{}

// NewOS returns an Inspector that shells out to the host system.
func NewOS() *OS {
	return &OS{}
}

// PCIDevices runs lspci and returns its raw output.
func (o *OS) PCIDevices() (string, error) {
	cmd := exec.Command("lspci")
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return "", fmt.Errorf("lspci failed: %w (stderr: %s)", err, string(exitErr.Stderr))
		}
		return "", fmt.Errorf("lspci failed: %w", err)
	}
	return string(output), nil
}

// LoadedModules runs lsmod and returns the module name column, skipping
// the header line.
func (o *OS) LoadedModules() ([]string, error) {
	cmd := exec.Command("lsmod")
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("lsmod failed: %w (stderr: %s)", err, string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("lsmod failed: %w", err)
	}

	lines := strings.Split(strings.TrimSpace(string(output)), "\n")
	var modules []string
	for i, line := range lines {
		if i == 0 {
			// "Module Size Used by" header
			continue
		}
		fields := strings.Fields(line)
		if len(fields) > 0 {
			modules = append(modules, fields[0])
		}
	}
	return modules, nil
}

// InstalledPackages runs pacman -Qq and returns the package names.
func (o *OS) InstalledPackages() ([]string, error) {
	cmd := exec.Command("pacman", "-Qq")
	output, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("pacman -Qq failed: %w (stderr: %s)", err, string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("pacman -Qq failed: %w", err)
	}

	var packages []string
	for _, line := range strings.Split(strings.TrimSpace(string(output)), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			packages = append(packages, line)
		}
	}
	return packages, nil
}
