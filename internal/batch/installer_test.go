package batch

import (
	"errors"
	"testing"

	"github.com/blackwell-systems/archsetup/internal/pacman"
)

// fakeOracle reports packages in the installed set as present. The
// fakeInstaller mutates the set to simulate installs taking effect.
type fakeOracle struct {
	installed map[string]bool
}

func (f *fakeOracle) IsInstalled(name string) bool {
	return f.installed[name]
}

// fakeInstaller records invocations and applies a scripted outcome.
type fakeInstaller struct {
	invocations int
	lastPkgs    []string
	lastOpts    pacman.Options
	outcome     pacman.Outcome
	err         error

	// installs lists packages the fake "successfully installs" into the
	// oracle when invoked, simulating partial batch success.
	installs []string
	oracle   *fakeOracle
}

func (f *fakeInstaller) Install(packages []string, opts pacman.Options) (pacman.Outcome, error) {
	f.invocations++
	f.lastPkgs = packages
	f.lastOpts = opts
	for _, pkg := range f.installs {
		f.oracle.installed[pkg] = true
	}
	return f.outcome, f.err
}

func newFakes(installed ...string) (*fakeOracle, *fakeInstaller) {
	oracle := &fakeOracle{installed: make(map[string]bool)}
	for _, pkg := range installed {
		oracle.installed[pkg] = true
	}
	return oracle, &fakeInstaller{oracle: oracle}
}

func TestEmptyGroupDoesNotInvokeInstaller(t *testing.T) {
	oracle, installer := newFakes()
	runner := NewRunner(oracle, installer, pacman.Options{})

	result, err := runner.InstallGroup(Group{Name: "empty"})
	if err != nil {
		t.Fatalf("InstallGroup failed: %v", err)
	}

	if result.Status != StatusEmpty {
		t.Errorf("status = %v, want StatusEmpty", result.Status)
	}
	if installer.invocations != 0 {
		t.Errorf("installer invoked %d times for empty group", installer.invocations)
	}
}

func TestAllInstalledSkipsInstaller(t *testing.T) {
	oracle, installer := newFakes("firefox", "alacritty", "zsh")
	runner := NewRunner(oracle, installer, pacman.Options{})

	group := Group{Name: "desktop", Members: []string{"firefox", "alacritty", "zsh"}}
	result, err := runner.InstallGroup(group)
	if err != nil {
		t.Fatalf("InstallGroup failed: %v", err)
	}

	if installer.invocations != 0 {
		t.Errorf("installer invoked %d times, want 0", installer.invocations)
	}
	if result.Status != StatusOK {
		t.Errorf("status = %v, want StatusOK", result.Status)
	}
	if result.AlreadyInstalled != 3 || result.Succeeded != 3 {
		t.Errorf("alreadyInstalled = %d, succeeded = %d, want 3 and 3",
			result.AlreadyInstalled, result.Succeeded)
	}
	if len(result.Attempted) != 0 {
		t.Errorf("attempted = %v, want empty", result.Attempted)
	}
}

func TestSinglePackageInstallSuccess(t *testing.T) {
	oracle, installer := newFakes()
	installer.installs = []string{"firefox"}
	runner := NewRunner(oracle, installer, pacman.Options{Needed: true, NoConfirm: true})

	result, err := runner.InstallGroup(Group{Name: "browser", Members: []string{"firefox"}})
	if err != nil {
		t.Fatalf("InstallGroup failed: %v", err)
	}

	if result.AlreadyInstalled != 0 {
		t.Errorf("alreadyInstalled = %d, want 0", result.AlreadyInstalled)
	}
	if result.Succeeded != 1 {
		t.Errorf("succeeded = %d, want 1", result.Succeeded)
	}
	if result.ExitCode != 0 {
		t.Errorf("exitCode = %d, want 0", result.ExitCode)
	}
	if result.Status != StatusOK {
		t.Errorf("status = %v, want StatusOK", result.Status)
	}
	if !installer.lastOpts.Needed || !installer.lastOpts.NoConfirm {
		t.Errorf("install options not forwarded: %+v", installer.lastOpts)
	}
}

func TestPartialPrecheckThenInstallerFailure(t *testing.T) {
	oracle, installer := newFakes("a")
	installer.outcome = pacman.Outcome{ExitCode: 1, Installer: "pacman"}
	runner := NewRunner(oracle, installer, pacman.Options{})

	result, err := runner.InstallGroup(Group{Name: "tools", Members: []string{"a", "b"}})
	if err != nil {
		t.Fatalf("InstallGroup failed: %v", err)
	}

	if result.AlreadyInstalled != 1 {
		t.Errorf("alreadyInstalled = %d, want 1", result.AlreadyInstalled)
	}
	if len(installer.lastPkgs) != 1 || installer.lastPkgs[0] != "b" {
		t.Errorf("installer invoked for %v, want only b", installer.lastPkgs)
	}
	if result.Succeeded != 0 {
		t.Errorf("succeeded = %d, want 0", result.Succeeded)
	}
	if result.ExitCode != 1 {
		t.Errorf("exitCode = %d, want 1", result.ExitCode)
	}
	if result.Status != StatusFailed {
		t.Errorf("status = %v, want StatusFailed", result.Status)
	}
}

func TestVerificationRunsDespiteNonZeroExit(t *testing.T) {
	// Installer exits 1 but still managed to install one of two packages.
	oracle, installer := newFakes()
	installer.outcome = pacman.Outcome{ExitCode: 1, Installer: "yay"}
	installer.installs = []string{"good"}
	runner := NewRunner(oracle, installer, pacman.Options{})

	result, err := runner.InstallGroup(Group{Name: "mixed", Members: []string{"good", "bad"}})
	if err != nil {
		t.Fatalf("InstallGroup failed: %v", err)
	}

	if result.Succeeded != 1 {
		t.Errorf("succeeded = %d, want 1 (verification must run after failure)", result.Succeeded)
	}
	if result.Status != StatusPartial {
		t.Errorf("status = %v, want StatusPartial", result.Status)
	}
	if result.Installer != "yay" {
		t.Errorf("installer = %q, want yay", result.Installer)
	}
}

func TestStateSnapshotTakenOnce(t *testing.T) {
	// One oracle query per member before install plus one per attempted
	// member after: 2 members, both missing => 4 queries total.
	queries := 0
	oracle := &countingOracle{}
	oracle.fn = func(name string) bool {
		queries++
		return false
	}
	installer := &fakeInstaller{oracle: &fakeOracle{installed: map[string]bool{}}}
	runner := NewRunner(oracle, installer, pacman.Options{})

	if _, err := runner.InstallGroup(Group{Name: "g", Members: []string{"x", "y"}}); err != nil {
		t.Fatalf("InstallGroup failed: %v", err)
	}

	if queries != 4 {
		t.Errorf("oracle queried %d times, want 4 (snapshot + verification)", queries)
	}
}

type countingOracle struct {
	fn func(string) bool
}

func (c *countingOracle) IsInstalled(name string) bool {
	return c.fn(name)
}

func TestInstallerMechanismAbsenceIsFatal(t *testing.T) {
	oracle, installer := newFakes()
	installer.err = errors.New("pacman not found on PATH")
	runner := NewRunner(oracle, installer, pacman.Options{})

	result, err := runner.InstallGroup(Group{Name: "g", Members: []string{"x"}})
	if err == nil {
		t.Fatal("expected error when no install mechanism exists")
	}
	if result == nil || result.Status != StatusFailed {
		t.Errorf("result should still report failure, got %+v", result)
	}
}
