// Package nvidia implements the hardware-conditional driver flow:
// detect an NVIDIA GPU, pick the driver variant matching the installed
// kernel flavor, apply idempotent system configuration and verify the
// driver afterwards.
package nvidia

import (
	"fmt"
	"strings"

	"github.com/blackwell-systems/archsetup/internal/sysinspect"
)

// Flavor identifies the installed kernel packaging variant.
type Flavor int

const (
	FlavorStandard Flavor = iota
	FlavorLTS
	FlavorZen
	FlavorHardened
	FlavorOther
)

// String returns the kernel package suffix for the flavor.
func (f Flavor) String() string {
	switch f {
	case FlavorStandard:
		return "standard"
	case FlavorLTS:
		return "lts"
	case FlavorZen:
		return "zen"
	case FlavorHardened:
		return "hardened"
	default:
		return "other"
	}
}

// Profile is the hardware snapshot the driver plan derives from.
// Computed once per run and immutable thereafter.
type Profile struct {
	GPUPresent      bool
	KernelFlavor    Flavor
	MultilibEnabled bool
}

// kernelFlavors maps kernel package names to flavors, checked in order:
// the variant kernels win over plain linux when both are installed,
// since a variant kernel is only installed deliberately.
var kernelFlavors = []struct {
	pkg    string
	flavor Flavor
}{
	{"linux-zen", FlavorZen},
	{"linux-hardened", FlavorHardened},
	{"linux-lts", FlavorLTS},
	{"linux", FlavorStandard},
}

// Detect builds the hardware profile from system introspection.
func Detect(insp sysinspect.Inspector, multilib bool) (Profile, error) {
	profile := Profile{MultilibEnabled: multilib, KernelFlavor: FlavorOther}

	pci, err := insp.PCIDevices()
	if err != nil {
		return profile, fmt.Errorf("pci scan failed: %w", err)
	}
	profile.GPUPresent = hasNvidiaGPU(pci)

	packages, err := insp.InstalledPackages()
	if err != nil {
		return profile, fmt.Errorf("package list failed: %w", err)
	}
	profile.KernelFlavor = detectKernelFlavor(packages)

	return profile, nil
}

// hasNvidiaGPU scans lspci output for an NVIDIA display controller.
func hasNvidiaGPU(pci string) bool {
	for _, line := range strings.Split(pci, "\n") {
		lower := strings.ToLower(line)
		if !strings.Contains(lower, "nvidia") {
			continue
		}
		if strings.Contains(lower, "vga") || strings.Contains(lower, "3d controller") ||
			strings.Contains(lower, "display") {
			return true
		}
	}
	return false
}

// detectKernelFlavor matches installed package names against the known
// kernel naming scheme.
func detectKernelFlavor(packages []string) Flavor {
	installed := make(map[string]bool, len(packages))
	for _, pkg := range packages {
		installed[pkg] = true
	}

	for _, k := range kernelFlavors {
		if installed[k.pkg] {
			return k.flavor
		}
	}
	return FlavorOther
}
