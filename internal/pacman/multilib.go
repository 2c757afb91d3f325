package pacman

import (
	"fmt"
	"os"
	"strings"
)

// DefaultConfPath is the standard pacman configuration file.
const DefaultConfPath = "/etc/pacman.conf"

// MultilibEnabled reports whether the [multilib] repository section is
// active (present and not commented out) in the pacman configuration
// file at confPath. A missing file reports false without error so the
// caller can treat multilib as simply unavailable.
func MultilibEnabled(confPath string) (bool, error) {
	content, err := os.ReadFile(confPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("cannot read %s: %w", confPath, err)
	}

	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) == "[multilib]" {
			return true, nil
		}
	}
	return false, nil
}
