package nvidia

import (
	"os/exec"

	"github.com/blackwell-systems/archsetup/internal/sysinspect"
)

// RebootWarning is reported when the driver is configured but not yet
// active. Driver activation commonly requires a reboot, so this is a
// warning, never an error.
const RebootWarning = "NVIDIA driver configured but not active yet; reboot to load it"

// NouveauRebootWarning replaces RebootWarning when the in-tree nouveau
// module is still bound: the blacklist only takes effect on the next
// boot, so the proprietary driver cannot load until then.
const NouveauRebootWarning = "nouveau is still loaded; reboot so the blacklist takes effect and the NVIDIA driver can bind"

// DriverActive reports whether the installed driver responds to a
// runtime query (nvidia-smi exits zero). A missing or failing tool just
// means the driver is not active yet.
func DriverActive() bool {
	if _, err := exec.LookPath("nvidia-smi"); err != nil {
		return false
	}
	return exec.Command("nvidia-smi").Run() == nil
}

// NouveauLoaded reports whether the conflicting nouveau module is
// currently bound. An inspection failure reads as not loaded; this only
// picks between two warnings.
func NouveauLoaded(insp sysinspect.Inspector) bool {
	modules, err := insp.LoadedModules()
	if err != nil {
		return false
	}
	for _, m := range modules {
		if m == "nouveau" {
			return true
		}
	}
	return false
}
