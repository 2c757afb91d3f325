package config

import "testing"

func TestDesktopGroupsWellFormed(t *testing.T) {
	groups := DesktopGroups()
	if len(groups) == 0 {
		t.Fatal("no groups defined")
	}

	seen := map[string]string{}
	for _, g := range groups {
		if g.Name == "" {
			t.Error("group with empty name")
		}
		if len(g.Members) == 0 {
			t.Errorf("group %q has no members", g.Name)
		}
		for _, pkg := range g.Members {
			if pkg == "" {
				t.Errorf("group %q has an empty member", g.Name)
			}
			if prev, dup := seen[pkg]; dup {
				t.Errorf("package %q appears in both %q and %q", pkg, prev, g.Name)
			}
			seen[pkg] = g.Name
		}
	}
}

func TestDesktopGroupsOrderStable(t *testing.T) {
	// Xorg must come first: the window manager group depends on it being
	// present at configuration time.
	groups := DesktopGroups()
	if groups[0].Name != "xorg" {
		t.Errorf("first group = %q, want xorg", groups[0].Name)
	}
	if !groups[0].Critical {
		t.Error("xorg group must be critical")
	}
}
