package pacman

// Options controls an installer invocation.
type Options struct {
	// Needed skips packages that already satisfy the requested version
	// (pacman --needed).
	Needed bool

	// NoConfirm suppresses interactive prompts (pacman --noconfirm).
	NoConfirm bool
}

// Outcome describes a finished installer invocation.
type Outcome struct {
	// ExitCode is the exit status of the installer process that completed
	// the invocation. When the AUR helper failed and the fallback ran,
	// this is the fallback's exit code.
	ExitCode int

	// Installer is the binary that performed the final invocation
	// ("pacman", "paru" or "yay"). The caller can use it to tell whether
	// the AUR helper path or the fallback path was taken.
	Installer string
}
