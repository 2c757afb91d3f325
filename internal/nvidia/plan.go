package nvidia

// SkipReason explains why the driver install step was skipped. All skip
// conditions are benign; none aborts the run.
type SkipReason int

const (
	// SkipNone means the plan should be installed.
	SkipNone SkipReason = iota

	// SkipNoHardware means no NVIDIA GPU was detected.
	SkipNoHardware

	// SkipDisabled means the user disabled the driver step.
	SkipDisabled

	// SkipConfigOnly means the run is in configuration-only mode and
	// performs no installation at all.
	SkipConfigOnly
)

// String returns a short description for reporting.
func (s SkipReason) String() string {
	switch s {
	case SkipNone:
		return ""
	case SkipNoHardware:
		return "no NVIDIA GPU detected"
	case SkipDisabled:
		return "driver step disabled"
	case SkipConfigOnly:
		return "configuration-only mode"
	default:
		return "skipped"
	}
}

// DriverPlan is the package selection derived from a hardware profile.
type DriverPlan struct {
	// Primary is the kernel-flavor-matched driver package.
	Primary string

	// Auxiliary are the companion packages, in install order.
	Auxiliary []string
}

// Packages returns the full ordered package list for the batch installer.
func (p DriverPlan) Packages() []string {
	return append([]string{p.Primary}, p.Auxiliary...)
}

// driverByFlavor is the kernel-flavor selection table. Variant kernels
// need the DKMS driver; unknown flavors get the standard build.
var driverByFlavor = map[Flavor]string{
	FlavorStandard: "nvidia",
	FlavorLTS:      "nvidia-lts",
	FlavorZen:      "nvidia-dkms",
	FlavorHardened: "nvidia-dkms",
	FlavorOther:    "nvidia",
}

// PlanDrivers selects the driver packages for the profile, or reports
// why the install step is skipped. Selection is a pure function of the
// profile; disabled and onlyConfig are independent caller-side skips.
func PlanDrivers(profile Profile, disabled, onlyConfig bool) (DriverPlan, SkipReason) {
	switch {
	case !profile.GPUPresent:
		return DriverPlan{}, SkipNoHardware
	case disabled:
		return DriverPlan{}, SkipDisabled
	case onlyConfig:
		return DriverPlan{}, SkipConfigOnly
	}

	primary, ok := driverByFlavor[profile.KernelFlavor]
	if !ok {
		primary = driverByFlavor[FlavorOther]
	}

	aux := []string{"nvidia-utils", "nvidia-settings"}
	if profile.MultilibEnabled {
		aux = append(aux, "lib32-nvidia-utils")
	}

	return DriverPlan{Primary: primary, Auxiliary: aux}, SkipNone
}
