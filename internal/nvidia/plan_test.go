package nvidia

import "testing"

func TestPlanDriversFlavorTable(t *testing.T) {
	tests := []struct {
		flavor      Flavor
		wantPrimary string
	}{
		{FlavorStandard, "nvidia"},
		{FlavorLTS, "nvidia-lts"},
		{FlavorZen, "nvidia-dkms"},
		{FlavorHardened, "nvidia-dkms"},
		{FlavorOther, "nvidia"},
	}

	for _, tt := range tests {
		t.Run(tt.flavor.String(), func(t *testing.T) {
			profile := Profile{GPUPresent: true, KernelFlavor: tt.flavor}
			plan, skip := PlanDrivers(profile, false, false)
			if skip != SkipNone {
				t.Fatalf("unexpected skip: %v", skip)
			}
			if plan.Primary != tt.wantPrimary {
				t.Errorf("primary = %q, want %q", plan.Primary, tt.wantPrimary)
			}
		})
	}
}

func TestPlanSelectionIndependentOfMultilib(t *testing.T) {
	// The primary selection is a pure function of the kernel flavor.
	for _, multilib := range []bool{false, true} {
		profile := Profile{GPUPresent: true, KernelFlavor: FlavorZen, MultilibEnabled: multilib}
		plan, skip := PlanDrivers(profile, false, false)
		if skip != SkipNone {
			t.Fatalf("unexpected skip: %v", skip)
		}
		if plan.Primary != "nvidia-dkms" {
			t.Errorf("multilib=%v: primary = %q, want nvidia-dkms", multilib, plan.Primary)
		}
	}
}

func TestPlanMultilibConditional(t *testing.T) {
	count32 := func(plan DriverPlan) int {
		n := 0
		for _, pkg := range plan.Auxiliary {
			if pkg == "lib32-nvidia-utils" {
				n++
			}
		}
		return n
	}

	with, skip := PlanDrivers(Profile{GPUPresent: true, MultilibEnabled: true}, false, false)
	if skip != SkipNone {
		t.Fatalf("unexpected skip: %v", skip)
	}
	if got := count32(with); got != 1 {
		t.Errorf("multilib enabled: lib32 package appears %d times, want exactly 1", got)
	}

	without, skip := PlanDrivers(Profile{GPUPresent: true, MultilibEnabled: false}, false, false)
	if skip != SkipNone {
		t.Fatalf("unexpected skip: %v", skip)
	}
	if got := count32(without); got != 0 {
		t.Errorf("multilib disabled: lib32 package appears %d times, want 0", got)
	}
}

func TestPlanAuxiliaryAlwaysIncludesUtilsAndSettings(t *testing.T) {
	plan, _ := PlanDrivers(Profile{GPUPresent: true}, false, false)

	has := func(name string) bool {
		for _, pkg := range plan.Auxiliary {
			if pkg == name {
				return true
			}
		}
		return false
	}

	if !has("nvidia-utils") || !has("nvidia-settings") {
		t.Errorf("auxiliary = %v, want nvidia-utils and nvidia-settings", plan.Auxiliary)
	}
}

func TestPlanSkipConditions(t *testing.T) {
	tests := []struct {
		name       string
		profile    Profile
		disabled   bool
		onlyConfig bool
		want       SkipReason
	}{
		{"no gpu", Profile{GPUPresent: false}, false, false, SkipNoHardware},
		{"disabled", Profile{GPUPresent: true}, true, false, SkipDisabled},
		{"config only", Profile{GPUPresent: true}, false, true, SkipConfigOnly},
		{"no gpu wins over disabled", Profile{GPUPresent: false}, true, true, SkipNoHardware},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, skip := PlanDrivers(tt.profile, tt.disabled, tt.onlyConfig)
			if skip != tt.want {
				t.Errorf("skip = %v, want %v", skip, tt.want)
			}
		})
	}
}

func TestPlanPackagesOrder(t *testing.T) {
	plan, _ := PlanDrivers(Profile{GPUPresent: true, KernelFlavor: FlavorLTS, MultilibEnabled: true}, false, false)

	pkgs := plan.Packages()
	want := []string{"nvidia-lts", "nvidia-utils", "nvidia-settings", "lib32-nvidia-utils"}
	if len(pkgs) != len(want) {
		t.Fatalf("packages = %v, want %v", pkgs, want)
	}
	for i := range want {
		if pkgs[i] != want[i] {
			t.Errorf("packages[%d] = %q, want %q", i, pkgs[i], want[i])
		}
	}
}
