package batch

import "time"

// Group is a named, ordered batch of packages installed and reported as
// one unit.
type Group struct {
	// Name is the human-readable description shown in reports.
	Name string

	// Members are the package identifiers, in install order.
	Members []string

	// Critical marks groups whose failure should abort the run. The
	// engine itself never aborts; the caller checks this flag.
	Critical bool
}

// Status classifies the outcome of one group.
type Status int

const (
	// StatusOK means every member is installed after the batch.
	StatusOK Status = iota

	// StatusEmpty means the group had no members. Reported as that
	// group's failure, never a crash.
	StatusEmpty

	// StatusPartial means some but not all attempted members verified as
	// installed.
	StatusPartial

	// StatusFailed means no attempted member verified as installed.
	StatusFailed
)

// String returns the status label used in reports.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusEmpty:
		return "empty"
	case StatusPartial:
		return "partial"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the finalized record of one group's installation.
type Result struct {
	Group Group

	// AlreadyInstalled counts members satisfied before the batch ran.
	AlreadyInstalled int

	// Attempted lists the members handed to the installer, in order.
	// Empty when everything was already installed.
	Attempted []string

	// Succeeded counts members confirmed installed by the verification
	// pass. When no installer invocation was needed, every member counts
	// as succeeded.
	Succeeded int

	// ExitCode is the installer's exit status, 0 when it was never
	// invoked.
	ExitCode int

	// Duration is the wall-clock time of the installer invocation.
	Duration time.Duration

	// Installer records which binary performed the invocation, "" when
	// none ran. Lets the report show whether the AUR helper or the
	// pacman fallback handled the group.
	Installer string

	Status Status
}

// OK reports whether the group ended fully installed.
func (r *Result) OK() bool {
	return r.Status == StatusOK
}
